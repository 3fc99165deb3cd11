package learning

import (
	"testing"

	"github.com/neurlang/autoencoder/layer"
)

func TestStepPlain(t *testing.T) {
	p := layer.NewParam(2)
	p.Data[0] = 1
	p.Data[1] = -1
	p.Grad[0] = 0.5
	p.Grad[1] = -0.5
	s := NewSGD(0.1, 0)
	s.Step([]*layer.Param{p})
	if p.Data[0] != 0.95 || p.Data[1] != -0.95 {
		t.Errorf("plain step gave %v, want [0.95 -0.95]", p.Data)
	}
}

func TestStepMomentum(t *testing.T) {
	p := layer.NewParam(1)
	p.Grad[0] = 1
	s := NewSGD(0.1, 0.9)
	s.Step([]*layer.Param{p})
	// v = -0.1, w = -0.1
	if p.Data[0] != -0.1 {
		t.Fatalf("first step gave %v, want -0.1", p.Data[0])
	}
	s.Step([]*layer.Param{p})
	// v = 0.9*-0.1 - 0.1 = -0.19, w = -0.29
	got := p.Data[0]
	if got < -0.2901 || got > -0.2899 {
		t.Errorf("second step gave %v, want -0.29", got)
	}
}

func TestDefaultLearningRate(t *testing.T) {
	s := NewSGD(0, 0)
	if s.LearningRate != 0.1 {
		t.Errorf("default learning rate %v, want 0.1", s.LearningRate)
	}
}
