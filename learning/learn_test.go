package learning

import (
	"math/rand"
	"testing"

	"github.com/neurlang/autoencoder/datasets"
	"github.com/neurlang/autoencoder/layer/full"
	"github.com/neurlang/autoencoder/layer/relu"
	"github.com/neurlang/autoencoder/layer/sigmoid"
	"github.com/neurlang/autoencoder/net/autoencoder"
)

func epochFixture(t *testing.T) (*autoencoder.Autoencoder, *datasets.ImageSet) {
	var net autoencoder.Autoencoder
	net.NewEncoderLayer(full.MustNew(16, 4))
	net.NewEncoderLayer(relu.New())
	net.NewDecoderLayer(full.MustNew(4, 16))
	net.NewDecoderLayer(sigmoid.New())

	rng := rand.New(rand.NewSource(5))
	set, err := datasets.NewImageSet(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 32; i++ {
		img := make([]float32, 16)
		for j := range img {
			img[j] = rng.Float32()
		}
		if err := set.Append(img, 0); err != nil {
			t.Fatal(err)
		}
	}
	return &net, set
}

func TestEpochShrinksLoss(t *testing.T) {
	net, set := epochFixture(t)
	h := &HyperParameters{LearningRate: 0.5, BatchSize: 8, Flat: true}
	opt := NewSGD(h.LearningRate, h.Momentum)

	first, err := h.Epoch(net, set, opt)
	if err != nil {
		t.Fatal(err)
	}
	var last float32
	for i := 0; i < 20; i++ {
		last, err = h.Epoch(net, set, opt)
		if err != nil {
			t.Fatal(err)
		}
	}
	if last >= first {
		t.Errorf("epoch loss %f did not improve from %f", last, first)
	}
}

// a denoising pass scores against the clean images, so the loss stays finite
// and keeps shrinking even though the inputs are corrupted
func TestEpochDenoising(t *testing.T) {
	rand.Seed(6)
	net, set := epochFixture(t)
	h := &HyperParameters{LearningRate: 0.5, BatchSize: 8, Flat: true, Noise: 0.2}
	opt := NewSGD(h.LearningRate, h.Momentum)

	first, err := h.Epoch(net, set, opt)
	if err != nil {
		t.Fatal(err)
	}
	var last float32
	for i := 0; i < 20; i++ {
		last, err = h.Epoch(net, set, opt)
		if err != nil {
			t.Fatal(err)
		}
	}
	if last >= first {
		t.Errorf("denoising loss %f did not improve from %f", last, first)
	}
}

func TestEpochEmptySet(t *testing.T) {
	net, _ := epochFixture(t)
	empty, _ := datasets.NewImageSet(4, 4)
	h := &HyperParameters{}
	if _, err := h.Epoch(net, empty, NewSGD(0, 0)); err == nil {
		t.Errorf("empty set trained without error")
	}
}
