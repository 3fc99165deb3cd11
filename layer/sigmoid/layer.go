// Package sigmoid implements the logistic activation, used as the decoder
// output so reconstructions stay in the 0..1 pixel range
package sigmoid

import "fmt"

import "github.com/chewxy/math32"
import "github.com/neurlang/autoencoder/layer"
import "gorgonia.org/tensor"

type Sigmoid struct {
	out []float32 // saved forward output
	shp tensor.Shape
}

// New creates a new Sigmoid activation
func New() *Sigmoid {
	return new(Sigmoid)
}

// Forward squashes every element into 0..1, keeping the input shape
func (c *Sigmoid) Forward(in *tensor.Dense) (*tensor.Dense, error) {
	xs := in.Data().([]float32)
	out := make([]float32, len(xs))
	for i, v := range xs {
		out[i] = 1 / (1 + math32.Exp(-v))
	}
	c.out = out
	c.shp = in.Shape()
	outshape := make([]int, len(c.shp))
	copy(outshape, c.shp)
	// the returned tensor aliases the saved output, Backward only reads it
	return tensor.New(tensor.WithShape(outshape...), tensor.WithBacking(out)), nil
}

// Backward multiplies by the derivative out*(1-out)
func (c *Sigmoid) Backward(grad *tensor.Dense) (*tensor.Dense, error) {
	if c.out == nil {
		return nil, fmt.Errorf("Sigmoid Backward: no saved output, call Forward first")
	}
	gs := grad.Data().([]float32)
	if len(gs) != len(c.out) {
		return nil, fmt.Errorf("Sigmoid Backward: gradient size %d does not match output size %d", len(gs), len(c.out))
	}
	dx := make([]float32, len(gs))
	for i, g := range gs {
		o := c.out[i]
		dx[i] = g * o * (1 - o)
	}
	outshape := make([]int, len(c.shp))
	copy(outshape, c.shp)
	return tensor.New(tensor.WithShape(outshape...), tensor.WithBacking(dx)), nil
}

// Params returns nothing, the activation is stateless
func (c *Sigmoid) Params() []*layer.Param {
	return nil
}

// Clone returns a copy sharing no mutable state
func (c *Sigmoid) Clone() layer.Layer {
	return new(Sigmoid)
}
