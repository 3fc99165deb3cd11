package relu

import (
	"testing"

	"gorgonia.org/tensor"
)

func TestForwardBackward(t *testing.T) {
	c := New()
	in := tensor.New(tensor.WithShape(1, 1, 2, 2), tensor.WithBacking([]float32{-1, 0, 0.5, 2}))
	out, err := c.Forward(in)
	if err != nil {
		t.Fatal(err)
	}
	os := out.Data().([]float32)
	want := []float32{0, 0, 0.5, 2}
	for i := range want {
		if os[i] != want[i] {
			t.Errorf("forward [%d] == %v, want %v", i, os[i], want[i])
		}
	}
	g := tensor.New(tensor.WithShape(1, 1, 2, 2), tensor.WithBacking([]float32{10, 10, 10, 10}))
	dx, err := c.Backward(g)
	if err != nil {
		t.Fatal(err)
	}
	ds := dx.Data().([]float32)
	wantg := []float32{0, 0, 10, 10}
	for i := range wantg {
		if ds[i] != wantg[i] {
			t.Errorf("backward [%d] == %v, want %v", i, ds[i], wantg[i])
		}
	}
}

func TestBackwardBeforeForward(t *testing.T) {
	c := New()
	g := tensor.New(tensor.WithShape(1, 1), tensor.WithBacking([]float32{1}))
	if _, err := c.Backward(g); err == nil {
		t.Errorf("Backward before Forward accepted")
	}
}
