// Package full implements a fully connected layer over float32 batches
package full

import "fmt"
import "math/rand"

import "github.com/chewxy/math32"
import "github.com/neurlang/autoencoder/layer"
import "github.com/neurlang/autoencoder/vec"
import "gorgonia.org/tensor"

type Full struct {
	inF, outF int

	weight *layer.Param // outF x inF
	bias   *layer.Param // outF

	in *tensor.Dense // saved forward input
}

// MustNew creates a new Full layer with input and output widths
func MustNew(inF, outF int) *Full {
	o, err := New(inF, outF)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new Full layer with input and output widths
func New(inF, outF int) (o *Full, err error) {
	if inF <= 0 || outF <= 0 {
		return nil, fmt.Errorf("New Full: widths %d to %d must be positive", inF, outF)
	}
	o = new(Full)
	o.inF = inF
	o.outF = outF
	o.weight = layer.NewParam(outF * inF)
	o.bias = layer.NewParam(outF)
	scale := math32.Sqrt(2 / float32(inF))
	for i := range o.weight.Data {
		o.weight.Data[i] = (rand.Float32()*2 - 1) * scale
	}
	return
}

// features multiplies all trailing dims, so NCHW batches flatten per sample
func features(shp tensor.Shape) int {
	f := 1
	for _, d := range shp[1:] {
		f *= d
	}
	return f
}

// Forward multiplies the batch by the weight matrix, flattening trailing dims
func (c *Full) Forward(in *tensor.Dense) (*tensor.Dense, error) {
	if in.Dims() < 2 {
		return nil, fmt.Errorf("Full Forward: input has %d dims, want at least 2", in.Dims())
	}
	shp := in.Shape()
	n := shp[0]
	if f := features(shp); f != c.inF {
		return nil, fmt.Errorf("Full Forward: input has %d features, layer wants %d", f, c.inF)
	}
	c.in = in

	xs := in.Data().([]float32)
	out := make([]float32, n*c.outF)
	for b := 0; b < n; b++ {
		xrow := xs[b*c.inF : (b+1)*c.inF]
		for o := 0; o < c.outF; o++ {
			wrow := c.weight.Data[o*c.inF : (o+1)*c.inF]
			out[b*c.outF+o] = c.bias.Data[o] + vec.Dot(wrow, xrow)
		}
	}
	return tensor.New(tensor.WithShape(n, c.outF), tensor.WithBacking(out)), nil
}

// Backward accumulates parameter gradients and returns the input gradient
// shaped like the saved input
func (c *Full) Backward(grad *tensor.Dense) (*tensor.Dense, error) {
	if c.in == nil {
		return nil, fmt.Errorf("Full Backward: no saved input, call Forward first")
	}
	shp := c.in.Shape()
	n := shp[0]
	gshp := grad.Shape()
	if grad.Dims() != 2 || gshp[0] != n || gshp[1] != c.outF {
		return nil, fmt.Errorf("Full Backward: gradient shape %v does not match output %v", gshp, []int{n, c.outF})
	}

	xs := c.in.Data().([]float32)
	gs := grad.Data().([]float32)
	dx := make([]float32, len(xs))
	for b := 0; b < n; b++ {
		xrow := xs[b*c.inF : (b+1)*c.inF]
		dxrow := dx[b*c.inF : (b+1)*c.inF]
		for o := 0; o < c.outF; o++ {
			gv := gs[b*c.outF+o]
			if gv == 0 {
				continue
			}
			c.bias.Grad[o] += gv
			wrow := c.weight.Data[o*c.inF : (o+1)*c.inF]
			grow := c.weight.Grad[o*c.inF : (o+1)*c.inF]
			vec.Axpy(gv, xrow, grow)
			vec.Axpy(gv, wrow, dxrow)
		}
	}
	outshape := make([]int, len(shp))
	copy(outshape, shp)
	return tensor.New(tensor.WithShape(outshape...), tensor.WithBacking(dx)), nil
}

// Params returns the weight matrix and the bias
func (c *Full) Params() []*layer.Param {
	return []*layer.Param{c.weight, c.bias}
}

// Clone returns a copy sharing no mutable state
func (c *Full) Clone() layer.Layer {
	o := new(Full)
	*o = *c
	o.in = nil
	o.weight = layer.NewParam(len(c.weight.Data))
	copy(o.weight.Data, c.weight.Data)
	o.bias = layer.NewParam(len(c.bias.Data))
	copy(o.bias.Data, c.bias.Data)
	return o
}
