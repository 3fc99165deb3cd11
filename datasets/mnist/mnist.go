// Package mnist loads the MNIST handwritten digit files for the autoencoder trainers
package mnist

import "bytes"
import "compress/gzip"
import "crypto/sha256"
import "encoding/binary"
import "fmt"
import "io"
import "os"

import "github.com/neurlang/autoencoder/datasets"

func userHomeDir() string {
	dirname, err := os.UserHomeDir()
	if err != nil {
		return "~"
	}
	return dirname + "/"
}

const tmpDirectory = `/tmp/mnist/`

var customDirectory = userHomeDir() + `.cache/mnist/`
var searchDirectories = []string{tmpDirectory, customDirectory}

const inferSetImg = "t10k-images-idx3-ubyte.gz"
const inferSetVal = "t10k-labels-idx1-ubyte.gz"
const trainSetImg = "train-images-idx3-ubyte.gz"
const trainSetVal = "train-labels-idx1-ubyte.gz"
const inferDigImg = "8d422c7b0a1c1c79245a5bcf07fe86e33eeafee792b84584aec276f5a2dbc4e6"
const inferDigVal = "f7ae60f92e00ec6debd23a6088c31dbd2371eca3ffa0defaefb259924204aec6"
const trainDigImg = "440fcabf73cc546fa21475e81ea370265605f56be210a4024d2ca8f203523609"
const trainDigVal = "3552534a0a558bbed6aed32b30c495cca23d567ec52cac8be1a0730e8010255c"

const ImgSize = 28

const imgMagic = 0x00000803
const lblMagic = 0x00000801

var files = map[string]string{
	inferSetImg: inferDigImg,
	inferSetVal: inferDigVal,
	trainSetImg: trainDigImg,
	trainSetVal: trainDigVal,
}

// New loads the train and infer sets from the first search directory that
// holds all four canonical files, or from dirs when given. Pixel bytes are
// scaled to 0..1 and labels are attached to the sets.
func New(dirs ...string) (train, infer *datasets.ImageSet, err error) {
	search := dirs
	if len(search) == 0 {
		search = searchDirectories
	}
	for _, dir := range search {
		train, infer, err = load(dir)
		if err == nil {
			return
		}
	}
	if err == nil {
		err = fmt.Errorf("mnist: no search directory holds the dataset")
	}
	return nil, nil, err
}

func load(dir string) (train, infer *datasets.ImageSet, err error) {
	trainImgs, err := readImages(dir, trainSetImg, trainDigImg)
	if err != nil {
		return nil, nil, err
	}
	trainLbls, err := readLabels(dir, trainSetVal, trainDigVal)
	if err != nil {
		return nil, nil, err
	}
	inferImgs, err := readImages(dir, inferSetImg, inferDigImg)
	if err != nil {
		return nil, nil, err
	}
	inferLbls, err := readLabels(dir, inferSetVal, inferDigVal)
	if err != nil {
		return nil, nil, err
	}
	train, err = makeSet(trainImgs, trainLbls)
	if err != nil {
		return nil, nil, err
	}
	infer, err = makeSet(inferImgs, inferLbls)
	if err != nil {
		return nil, nil, err
	}
	return
}

func makeSet(imgs [][]float32, labels []byte) (*datasets.ImageSet, error) {
	if len(imgs) != len(labels) {
		return nil, fmt.Errorf("mnist: %d images but %d labels", len(imgs), len(labels))
	}
	set, err := datasets.NewImageSet(ImgSize, ImgSize)
	if err != nil {
		return nil, err
	}
	set.Data = imgs
	set.Labels = labels
	return set, nil
}

// readVerified reads a gzip file, checks its digest and returns the
// uncompressed payload
func readVerified(path, digest string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mnist: cannot read file '%s': %w", path, err)
	}
	sum := sha256.Sum256(raw)
	if fmt.Sprintf("%x", sum) != digest {
		return nil, fmt.Errorf("mnist: file hash for file '%s' is incorrect", path)
	}
	gzipReader, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("mnist: gzip file '%s' error: %w", path, err)
	}
	defer gzipReader.Close()
	data, err := io.ReadAll(gzipReader)
	if err != nil {
		return nil, fmt.Errorf("mnist: buffering file '%s' error: %w", path, err)
	}
	return data, nil
}

func readImages(dir, name, digest string) ([][]float32, error) {
	data, err := readVerified(dir+name, digest)
	if err != nil {
		return nil, err
	}
	return parseImages(data)
}

func readLabels(dir, name, digest string) ([]byte, error) {
	data, err := readVerified(dir+name, digest)
	if err != nil {
		return nil, err
	}
	return parseLabels(data)
}

// parseImages decodes an IDX3 image payload into 0..1 floats
func parseImages(data []byte) ([][]float32, error) {
	if len(data) < 16 {
		return nil, fmt.Errorf("mnist: image payload shorter than its header")
	}
	if binary.BigEndian.Uint32(data) != imgMagic {
		return nil, fmt.Errorf("mnist: bad image magic %08x", binary.BigEndian.Uint32(data))
	}
	count := int(binary.BigEndian.Uint32(data[4:]))
	rows := int(binary.BigEndian.Uint32(data[8:]))
	cols := int(binary.BigEndian.Uint32(data[12:]))
	if rows != ImgSize || cols != ImgSize {
		return nil, fmt.Errorf("mnist: image geometry %dx%d, want %dx%d", rows, cols, ImgSize, ImgSize)
	}
	data = data[16:]
	if len(data) < count*rows*cols {
		return nil, fmt.Errorf("mnist: image payload truncated")
	}
	set := make([][]float32, count)
	for i := range set {
		img := make([]float32, rows*cols)
		base := i * rows * cols
		for j := range img {
			img[j] = float32(data[base+j]) / 255
		}
		set[i] = img
	}
	return set, nil
}

// parseLabels decodes an IDX1 label payload
func parseLabels(data []byte) ([]byte, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("mnist: label payload shorter than its header")
	}
	if binary.BigEndian.Uint32(data) != lblMagic {
		return nil, fmt.Errorf("mnist: bad label magic %08x", binary.BigEndian.Uint32(data))
	}
	count := int(binary.BigEndian.Uint32(data[4:]))
	data = data[8:]
	if len(data) < count {
		return nil, fmt.Errorf("mnist: label payload truncated")
	}
	return data[:count], nil
}
