package learning

import "github.com/neurlang/autoencoder/layer"
import "github.com/neurlang/autoencoder/vec"

// SGD applies stochastic gradient descent steps with momentum.
// One SGD instance belongs to one network, the velocity buffers are keyed
// by parameter position.
type SGD struct {
	LearningRate float32
	Momentum     float32

	vel [][]float32
}

// NewSGD creates an optimizer with the given step size and momentum
func NewSGD(lr, momentum float32) *SGD {
	if lr <= 0 {
		lr = 0.1
	}
	return &SGD{LearningRate: lr, Momentum: momentum}
}

// Step applies one update to the parameters from their accumulated
// gradients: v = momentum*v - lr*grad, w += v
func (s *SGD) Step(params []*layer.Param) {
	if len(s.vel) != len(params) {
		s.vel = make([][]float32, len(params))
		for i, p := range params {
			s.vel[i] = make([]float32, len(p.Data))
		}
	}
	for i, p := range params {
		v := s.vel[i]
		vec.Scale(s.Momentum, v)
		vec.Axpy(-s.LearningRate, p.Grad, v)
		vec.Axpy(1, v, p.Data)
	}
}
