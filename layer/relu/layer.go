// Package relu implements the rectified linear activation
package relu

import "fmt"

import "github.com/neurlang/autoencoder/layer"
import "gorgonia.org/tensor"

type Relu struct {
	in *tensor.Dense // saved forward input
}

// New creates a new Relu activation
func New() *Relu {
	return new(Relu)
}

// Forward clamps negatives to zero, keeping the input shape
func (c *Relu) Forward(in *tensor.Dense) (*tensor.Dense, error) {
	c.in = in
	xs := in.Data().([]float32)
	out := make([]float32, len(xs))
	for i, v := range xs {
		if v > 0 {
			out[i] = v
		}
	}
	shp := in.Shape()
	outshape := make([]int, len(shp))
	copy(outshape, shp)
	return tensor.New(tensor.WithShape(outshape...), tensor.WithBacking(out)), nil
}

// Backward zeroes the gradient where the forward input was not positive
func (c *Relu) Backward(grad *tensor.Dense) (*tensor.Dense, error) {
	if c.in == nil {
		return nil, fmt.Errorf("Relu Backward: no saved input, call Forward first")
	}
	xs := c.in.Data().([]float32)
	gs := grad.Data().([]float32)
	if len(xs) != len(gs) {
		return nil, fmt.Errorf("Relu Backward: gradient size %d does not match input size %d", len(gs), len(xs))
	}
	dx := make([]float32, len(xs))
	for i, v := range xs {
		if v > 0 {
			dx[i] = gs[i]
		}
	}
	shp := c.in.Shape()
	outshape := make([]int, len(shp))
	copy(outshape, shp)
	return tensor.New(tensor.WithShape(outshape...), tensor.WithBacking(dx)), nil
}

// Params returns nothing, the activation is stateless
func (c *Relu) Params() []*layer.Param {
	return nil
}

// Clone returns a copy sharing no mutable state
func (c *Relu) Clone() layer.Layer {
	return new(Relu)
}
