package autoencoder

import "compress/lzw"
import "encoding/json"
import "fmt"
import "io"
import "os"

// WriteCompressedWeightsToFile writes model weights to a lzw file
func (f Autoencoder) WriteCompressedWeightsToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	err = f.WriteCompressedWeights(file)
	file.Close()
	return err
}

// WriteCompressedWeights writes model weights to a writer
func (f Autoencoder) WriteCompressedWeights(w io.Writer) error {
	lw := lzw.NewWriter(w, lzw.LSB, 8)

	var weights [][]float32
	for _, p := range f.Params() {
		weights = append(weights, p.Data)
	}
	if err := json.NewEncoder(lw).Encode(weights); err != nil {
		return err
	}
	return lw.Close()
}

// ReadCompressedWeightsFromFile reads model weights from a lzw file
func (f Autoencoder) ReadCompressedWeightsFromFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	err = f.ReadCompressedWeights(file)
	file.Close()
	return err
}

// ReadCompressedWeights reads model weights from a reader. The weights must
// have been written by a network of the same architecture.
func (f Autoencoder) ReadCompressedWeights(r io.Reader) error {
	lr := lzw.NewReader(r, lzw.LSB, 8)
	defer lr.Close()

	var weights [][]float32
	if err := json.NewDecoder(lr).Decode(&weights); err != nil {
		return err
	}
	params := f.Params()
	if len(weights) != len(params) {
		return fmt.Errorf("weights file has %d parameter tensors, network has %d", len(weights), len(params))
	}
	for i, p := range params {
		if len(weights[i]) != len(p.Data) {
			return fmt.Errorf("parameter %d has %d scalars in file, network wants %d", i, len(weights[i]), len(p.Data))
		}
	}
	for i, p := range params {
		copy(p.Data, weights[i])
	}
	return nil
}
