// Package deconv2d implements a transposed 2D convolution layer over NCHW float32 batches
package deconv2d

import "fmt"
import "math/rand"

import "github.com/chewxy/math32"
import "github.com/neurlang/autoencoder/layer"
import "github.com/neurlang/autoencoder/vec"
import "gorgonia.org/tensor"

type Deconv2D struct {
	inC, outC, kernel, stride, pad int

	weight *layer.Param // inC x outC x kernel x kernel
	bias   *layer.Param // outC

	in *tensor.Dense // saved forward input
}

// MustNew creates a new Deconv2D layer with channels, kernel, stride and pad
func MustNew(inC, outC, kernel, stride, pad int) *Deconv2D {
	o, err := New(inC, outC, kernel, stride, pad)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new Deconv2D layer with channels, kernel, stride and pad
func New(inC, outC, kernel, stride, pad int) (o *Deconv2D, err error) {
	if inC <= 0 || outC <= 0 {
		return nil, fmt.Errorf("New Deconv2D: channels %d to %d must be positive", inC, outC)
	}
	if kernel <= 0 || stride <= 0 {
		return nil, fmt.Errorf("New Deconv2D: kernel %d and stride %d must be positive", kernel, stride)
	}
	if pad < 0 || pad >= kernel {
		return nil, fmt.Errorf("New Deconv2D: pad %d must be in range 0 to kernel-1", pad)
	}
	o = new(Deconv2D)
	o.inC = inC
	o.outC = outC
	o.kernel = kernel
	o.stride = stride
	o.pad = pad
	o.weight = layer.NewParam(inC * outC * kernel * kernel)
	o.bias = layer.NewParam(outC)
	scale := math32.Sqrt(2 / float32(inC*kernel*kernel))
	for i := range o.weight.Data {
		o.weight.Data[i] = (rand.Float32()*2 - 1) * scale
	}
	return
}

// OutSide computes the output spatial side for an input side.
// With kernel 4 stride 2 pad 1 it exactly inverts the matching Conv2D.
func (c *Deconv2D) OutSide(side int) int {
	return (side-1)*c.stride - 2*c.pad + c.kernel
}

// Forward upsamples the NCHW batch and saves the input for Backward
func (c *Deconv2D) Forward(in *tensor.Dense) (*tensor.Dense, error) {
	if in.Dims() != 4 {
		return nil, fmt.Errorf("Deconv2D Forward: input has %d dims, want 4", in.Dims())
	}
	shp := in.Shape()
	n, ic, h, w := shp[0], shp[1], shp[2], shp[3]
	if ic != c.inC {
		return nil, fmt.Errorf("Deconv2D Forward: input has %d channels, layer wants %d", ic, c.inC)
	}
	oh, ow := c.OutSide(h), c.OutSide(w)
	if oh <= 0 || ow <= 0 {
		return nil, fmt.Errorf("Deconv2D Forward: input %dx%d too small for kernel %d", h, w, c.kernel)
	}
	c.in = in

	xs := in.Data().([]float32)
	ws := c.weight.Data
	out := make([]float32, n*c.outC*oh*ow)
	k := c.kernel

	for b := 0; b < n; b++ {
		for oc := 0; oc < c.outC; oc++ {
			obase := (b*c.outC + oc) * oh * ow
			for i := 0; i < oh*ow; i++ {
				out[obase+i] = c.bias.Data[oc]
			}
		}
		for ic := 0; ic < c.inC; ic++ {
			for iy := 0; iy < h; iy++ {
				for ix := 0; ix < w; ix++ {
					v := xs[((b*c.inC+ic)*h+iy)*w+ix]
					if v == 0 {
						continue
					}
					x0 := ix*c.stride - c.pad
					kx0, kx1 := clampKernel(x0, k, ow)
					if kx1 <= kx0 {
						continue
					}
					for oc := 0; oc < c.outC; oc++ {
						for ky := 0; ky < k; ky++ {
							oy := iy*c.stride + ky - c.pad
							if oy < 0 || oy >= oh {
								continue
							}
							orow := ((b*c.outC+oc)*oh+oy)*ow + x0 + kx0
							wrow := ((ic*c.outC+oc)*k+ky)*k + kx0
							vec.Axpy(v, ws[wrow:wrow+kx1-kx0], out[orow:orow+kx1-kx0])
						}
					}
				}
			}
		}
	}
	return tensor.New(tensor.WithShape(n, c.outC, oh, ow), tensor.WithBacking(out)), nil
}

// Backward accumulates parameter gradients and returns the input gradient
func (c *Deconv2D) Backward(grad *tensor.Dense) (*tensor.Dense, error) {
	if c.in == nil {
		return nil, fmt.Errorf("Deconv2D Backward: no saved input, call Forward first")
	}
	shp := c.in.Shape()
	n, _, h, w := shp[0], shp[1], shp[2], shp[3]
	oh, ow := c.OutSide(h), c.OutSide(w)
	gshp := grad.Shape()
	if grad.Dims() != 4 || gshp[0] != n || gshp[1] != c.outC || gshp[2] != oh || gshp[3] != ow {
		return nil, fmt.Errorf("Deconv2D Backward: gradient shape %v does not match output %v", gshp, []int{n, c.outC, oh, ow})
	}

	xs := c.in.Data().([]float32)
	gs := grad.Data().([]float32)
	ws := c.weight.Data
	dx := make([]float32, len(xs))
	k := c.kernel

	for b := 0; b < n; b++ {
		for oc := 0; oc < c.outC; oc++ {
			obase := (b*c.outC + oc) * oh * ow
			c.bias.Grad[oc] += vec.Sum(gs[obase : obase+oh*ow])
		}
		for ic := 0; ic < c.inC; ic++ {
			for iy := 0; iy < h; iy++ {
				for ix := 0; ix < w; ix++ {
					xidx := ((b*c.inC+ic)*h+iy)*w + ix
					v := xs[xidx]
					x0 := ix*c.stride - c.pad
					kx0, kx1 := clampKernel(x0, k, ow)
					if kx1 <= kx0 {
						continue
					}
					var dxv float32
					for oc := 0; oc < c.outC; oc++ {
						for ky := 0; ky < k; ky++ {
							oy := iy*c.stride + ky - c.pad
							if oy < 0 || oy >= oh {
								continue
							}
							orow := ((b*c.outC+oc)*oh+oy)*ow + x0 + kx0
							wrow := ((ic*c.outC+oc)*k+ky)*k + kx0
							dxv += vec.Dot(ws[wrow:wrow+kx1-kx0], gs[orow:orow+kx1-kx0])
							vec.Axpy(v, gs[orow:orow+kx1-kx0], c.weight.Grad[wrow:wrow+kx1-kx0])
						}
					}
					dx[xidx] += dxv
				}
			}
		}
	}
	return tensor.New(tensor.WithShape(shp[0], shp[1], shp[2], shp[3]), tensor.WithBacking(dx)), nil
}

// Params returns the kernel weights and the bias
func (c *Deconv2D) Params() []*layer.Param {
	return []*layer.Param{c.weight, c.bias}
}

// Clone returns a copy sharing no mutable state
func (c *Deconv2D) Clone() layer.Layer {
	o := new(Deconv2D)
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
