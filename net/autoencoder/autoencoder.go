// Package autoencoder implements an encoder/decoder network type
package autoencoder

import "fmt"

import "github.com/neurlang/autoencoder/layer"
import "gorgonia.org/tensor"

// Autoencoder is a feedforward network split into an encoder stack and a
// decoder stack. The encoder compresses a batch into a latent tensor, the
// decoder reconstructs the batch from it. An undercomplete autoencoder keeps
// the latent dimensionality below the input dimensionality.
type Autoencoder struct {
	encoder []layer.Layer
	decoder []layer.Layer
}

// NewEncoderLayer adds a layer to the end of the encoder stack
func (f *Autoencoder) NewEncoderLayer(l layer.Layer) {
	f.encoder = append(f.encoder, l)
}

// NewDecoderLayer adds a layer to the end of the decoder stack
func (f *Autoencoder) NewDecoderLayer(l layer.Layer) {
	f.decoder = append(f.decoder, l)
}

// LenLayers returns the number of layers over both stacks
func (f Autoencoder) LenLayers() int {
	return len(f.encoder) + len(f.decoder)
}

// Len returns the total number of trainable scalars in the network
func (f Autoencoder) Len() (o int) {
	for _, p := range f.Params() {
		o += len(p.Data)
	}
	return
}

// Params returns the trainable parameters of all layers, encoder first
func (f Autoencoder) Params() (o []*layer.Param) {
	for _, l := range f.encoder {
		o = append(o, l.Params()...)
	}
	for _, l := range f.decoder {
		o = append(o, l.Params()...)
	}
	return
}

// ZeroGrad clears all accumulated gradients
func (f Autoencoder) ZeroGrad() {
	for _, p := range f.Params() {
		p.ZeroGrad()
	}
}

// Encode runs the encoder stack on the batch and returns the latent tensor
func (f Autoencoder) Encode(in *tensor.Dense) (*tensor.Dense, error) {
	out := in
	for i, l := range f.encoder {
		var err error
		out, err = l.Forward(out)
		if err != nil {
			return nil, fmt.Errorf("encoder layer %d: %w", i, err)
		}
	}
	return out, nil
}

// Decode runs the decoder stack on a latent tensor
func (f Autoencoder) Decode(in *tensor.Dense) (*tensor.Dense, error) {
	out := in
	for i, l := range f.decoder {
		var err error
		out, err = l.Forward(out)
		if err != nil {
			return nil, fmt.Errorf("decoder layer %d: %w", i, err)
		}
	}
	return out, nil
}

// Forward reconstructs the batch through the bottleneck
func (f Autoencoder) Forward(in *tensor.Dense) (*tensor.Dense, error) {
	latent, err := f.Encode(in)
	if err != nil {
		return nil, err
	}
	return f.Decode(latent)
}

// Backward propagates the loss gradient through the decoder and then the
// encoder in reverse, accumulating parameter gradients. Forward must have
// been called on the same batch before.
func (f Autoencoder) Backward(grad *tensor.Dense) (*tensor.Dense, error) {
	out := grad
	for i := len(f.decoder) - 1; i >= 0; i-- {
		var err error
		out, err = f.decoder[i].Backward(out)
		if err != nil {
			return nil, fmt.Errorf("decoder layer %d: %w", i, err)
		}
	}
	for i := len(f.encoder) - 1; i >= 0; i-- {
		var err error
		out, err = f.encoder[i].Backward(out)
		if err != nil {
			return nil, fmt.Errorf("encoder layer %d: %w", i, err)
		}
	}
	return out, nil
}

// Clone returns a network with copied weights sharing no mutable state,
// for use by concurrent evaluation workers
func (f Autoencoder) Clone() *Autoencoder {
	o := new(Autoencoder)
	for _, l := range f.encoder {
		o.encoder = append(o.encoder, l.Clone())
	}
	for _, l := range f.decoder {
		o.decoder = append(o.decoder, l.Clone())
	}
	return o
}

// LatentShrinks reports whether the encoder output for the given input shape
// has fewer scalars per sample than the input, i.e. whether the network is
// actually undercomplete
func (f Autoencoder) LatentShrinks(sampleShape ...int) (bool, error) {
	dims := 1
	for _, d := range sampleShape {
		dims *= d
	}
	if dims <= 0 {
		return false, fmt.Errorf("LatentShrinks: bad sample shape %v", sampleShape)
	}
	shape := append([]int{1}, sampleShape...)
	probe := tensor.New(tensor.WithShape(shape...), tensor.WithBacking(make([]float32, dims)))
	latent, err := f.Encode(probe)
	if err != nil {
		return false, err
	}
	return len(latent.Data().([]float32)) < dims, nil
}
