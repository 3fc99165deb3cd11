// Package layer defines the float layer interface shared by the network types
package layer

import "gorgonia.org/tensor"

// Param is one trainable parameter of a layer together with its gradient.
// Data and Grad always have the same length.
type Param struct {
	Data []float32
	Grad []float32
}

// NewParam allocates a parameter of n scalars with a zero gradient.
func NewParam(n int) *Param {
	return &Param{
		Data: make([]float32, n),
		Grad: make([]float32, n),
	}
}

// ZeroGrad clears the accumulated gradient.
func (p *Param) ZeroGrad() {
	for i := range p.Grad {
		p.Grad[i] = 0
	}
}

// Layer transforms a batch tensor and propagates gradients back through it.
// Forward must be called before Backward; Backward consumes the gradient of
// the loss with respect to the layer output, accumulates parameter gradients
// and returns the gradient with respect to the layer input.
type Layer interface {
	Forward(in *tensor.Dense) (*tensor.Dense, error)
	Backward(grad *tensor.Dense) (*tensor.Dense, error)

	// Params returns the trainable parameters, empty for stateless layers.
	Params() []*Param

	// Clone returns a layer sharing no mutable state with the receiver.
	Clone() Layer
}
