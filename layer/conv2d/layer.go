// Package conv2d implements a 2D convolution layer over NCHW float32 batches
package conv2d

import "fmt"
import "math/rand"

import "github.com/chewxy/math32"
import "github.com/neurlang/autoencoder/layer"
import "github.com/neurlang/autoencoder/vec"
import "gorgonia.org/tensor"

type Conv2D struct {
	inC, outC, kernel, stride, pad int

	weight *layer.Param // outC x inC x kernel x kernel
	bias   *layer.Param // outC

	in *tensor.Dense // saved forward input
}

// MustNew creates a new Conv2D layer with channels, kernel, stride and pad
func MustNew(inC, outC, kernel, stride, pad int) *Conv2D {
	o, err := New(inC, outC, kernel, stride, pad)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new Conv2D layer with channels, kernel, stride and pad
func New(inC, outC, kernel, stride, pad int) (o *Conv2D, err error) {
	if inC <= 0 || outC <= 0 {
		return nil, fmt.Errorf("New Conv2D: channels %d to %d must be positive", inC, outC)
	}
	if kernel <= 0 || stride <= 0 {
		return nil, fmt.Errorf("New Conv2D: kernel %d and stride %d must be positive", kernel, stride)
	}
	if pad < 0 || pad >= kernel {
		return nil, fmt.Errorf("New Conv2D: pad %d must be in range 0 to kernel-1", pad)
	}
	o = new(Conv2D)
	o.inC = inC
	o.outC = outC
	o.kernel = kernel
	o.stride = stride
	o.pad = pad
	o.weight = layer.NewParam(outC * inC * kernel * kernel)
	o.bias = layer.NewParam(outC)
	// He initialization over the fan-in
	scale := math32.Sqrt(2 / float32(inC*kernel*kernel))
	for i := range o.weight.Data {
		o.weight.Data[i] = (rand.Float32()*2 - 1) * scale
	}
	return
}

// OutSide computes the output spatial side for an input side
func (c *Conv2D) OutSide(side int) int {
	return (side+2*c.pad-c.kernel)/c.stride + 1
}

// Forward convolves the NCHW batch and saves the input for Backward
func (c *Conv2D) Forward(in *tensor.Dense) (*tensor.Dense, error) {
	if in.Dims() != 4 {
		return nil, fmt.Errorf("Conv2D Forward: input has %d dims, want 4", in.Dims())
	}
	shp := in.Shape()
	n, ic, h, w := shp[0], shp[1], shp[2], shp[3]
	if ic != c.inC {
		return nil, fmt.Errorf("Conv2D Forward: input has %d channels, layer wants %d", ic, c.inC)
	}
	oh, ow := c.OutSide(h), c.OutSide(w)
	if oh <= 0 || ow <= 0 {
		return nil, fmt.Errorf("Conv2D Forward: input %dx%d too small for kernel %d", h, w, c.kernel)
	}
	c.in = in

	xs := in.Data().([]float32)
	ws := c.weight.Data
	out := make([]float32, n*c.outC*oh*ow)
	k := c.kernel

	for b := 0; b < n; b++ {
		for oc := 0; oc < c.outC; oc++ {
			for oy := 0; oy < oh; oy++ {
				for ox := 0; ox < ow; ox++ {
					sum := c.bias.Data[oc]
					x0 := ox*c.stride - c.pad
					kx0, kx1 := clampKernel(x0, k, w)
					if kx1 > kx0 {
						for ic := 0; ic < c.inC; ic++ {
							for ky := 0; ky < k; ky++ {
								iy := oy*c.stride + ky - c.pad
								if iy < 0 || iy >= h {
									continue
								}
								xrow := ((b*c.inC+ic)*h+iy)*w + x0 + kx0
								wrow := ((oc*c.inC+ic)*k+ky)*k + kx0
								sum += vec.Dot(ws[wrow:wrow+kx1-kx0], xs[xrow:xrow+kx1-kx0])
							}
						}
					}
					out[((b*c.outC+oc)*oh+oy)*ow+ox] = sum
				}
			}
		}
	}
	return tensor.New(tensor.WithShape(n, c.outC, oh, ow), tensor.WithBacking(out)), nil
}

// Backward accumulates parameter gradients and returns the input gradient
func (c *Conv2D) Backward(grad *tensor.Dense) (*tensor.Dense, error) {
	if c.in == nil {
		return nil, fmt.Errorf("Conv2D Backward: no saved input, call Forward first")
	}
	shp := c.in.Shape()
	n, _, h, w := shp[0], shp[1], shp[2], shp[3]
	oh, ow := c.OutSide(h), c.OutSide(w)
	gshp := grad.Shape()
	if grad.Dims() != 4 || gshp[0] != n || gshp[1] != c.outC || gshp[2] != oh || gshp[3] != ow {
		return nil, fmt.Errorf("Conv2D Backward: gradient shape %v does not match output %v", gshp, []int{n, c.outC, oh, ow})
	}

	xs := c.in.Data().([]float32)
	gs := grad.Data().([]float32)
	ws := c.weight.Data
	dx := make([]float32, len(xs))
	k := c.kernel

	for b := 0; b < n; b++ {
		for oc := 0; oc < c.outC; oc++ {
			for oy := 0; oy < oh; oy++ {
				for ox := 0; ox < ow; ox++ {
					gv := gs[((b*c.outC+oc)*oh+oy)*ow+ox]
					if gv == 0 {
						continue
					}
					c.bias.Grad[oc] += gv
					x0 := ox*c.stride - c.pad
					kx0, kx1 := clampKernel(x0, k, w)
					if kx1 <= kx0 {
						continue
					}
					for ic := 0; ic < c.inC; ic++ {
						for ky := 0; ky < k; ky++ {
							iy := oy*c.stride + ky - c.pad
							if iy < 0 || iy >= h {
								continue
							}
							xrow := ((b*c.inC+ic)*h+iy)*w + x0 + kx0
							wrow := ((oc*c.inC+ic)*k+ky)*k + kx0
							vec.Axpy(gv, xs[xrow:xrow+kx1-kx0], c.weight.Grad[wrow:wrow+kx1-kx0])
							vec.Axpy(gv, ws[wrow:wrow+kx1-kx0], dx[xrow:xrow+kx1-kx0])
						}
					}
				}
			}
		}
	}
	return tensor.New(tensor.WithShape(shp[0], shp[1], shp[2], shp[3]), tensor.WithBacking(dx)), nil
}

// Params returns the kernel weights and the bias
func (c *Conv2D) Params() []*layer.Param {
	return []*layer.Param{c.weight, c.bias}
}

// Clone returns a copy sharing no mutable state
func (c *Conv2D) Clone() layer.Layer {
	o := new(Conv2D)
	*o = *c
	o.in = nil
	o.weight = layer.NewParam(len(c.weight.Data))
	copy(o.weight.Data, c.weight.Data)
	o.bias = layer.NewParam(len(c.bias.Data))
	copy(o.bias.Data, c.bias.Data)
	return o
}

// clampKernel clips the kernel x-range so x0+kx stays inside 0..w-1
func clampKernel(x0, k, w int) (kx0, kx1 int) {
	kx0 = 0
	if x0 < 0 {
		kx0 = -x0
	}
	kx1 = k
	if x0+kx1 > w {
		kx1 = w - x0
	}
	return
}
