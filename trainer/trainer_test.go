package trainer

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/neurlang/autoencoder/datasets"
	"github.com/neurlang/autoencoder/layer/full"
	"github.com/neurlang/autoencoder/layer/relu"
	"github.com/neurlang/autoencoder/layer/sigmoid"
	"github.com/neurlang/autoencoder/learning"
	"github.com/neurlang/autoencoder/net/autoencoder"
	"gorgonia.org/tensor"
)

func tinyNet() *autoencoder.Autoencoder {
	var net autoencoder.Autoencoder
	net.NewEncoderLayer(full.MustNew(16, 4))
	net.NewEncoderLayer(relu.New())
	net.NewDecoderLayer(full.MustNew(4, 16))
	net.NewDecoderLayer(sigmoid.New())
	return &net
}

func tinySet(t *testing.T, n int, rng *rand.Rand) *datasets.ImageSet {
	set, err := datasets.NewImageSet(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n; i++ {
		img := make([]float32, 16)
		for j := range img {
			img[j] = rng.Float32()
		}
		if err := set.Append(img, 0); err != nil {
			t.Fatal(err)
		}
	}
	return set
}

func TestSampleSize(t *testing.T) {
	if got := sampleSize(100000, 95); got < 300 || got > 400 {
		t.Errorf("95%% sample of 100000 is %d, want a few hundred", got)
	}
	if got := sampleSize(5, 95); got > 5 {
		t.Errorf("sample %d larger than the population", got)
	}
	if zScoreFromAlpha(5) != 1.96 {
		t.Errorf("alpha 5 z-score %v, want 1.96", zScoreFromAlpha(5))
	}
	if zScoreFromAlpha(1) != 2.576 {
		t.Errorf("alpha 1 z-score %v, want 2.576", zScoreFromAlpha(1))
	}
}

func TestEvaluateFunc(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	net := tinyNet()
	set := tinySet(t, 50, rng)

	serial, err := NewEvaluateFunc(net, set, 1, 0, true)()
	if err != nil {
		t.Fatal(err)
	}
	if serial <= 0 || math.IsNaN(float64(serial)) {
		t.Fatalf("eval loss %f not a positive number", serial)
	}

	// the span partition changes with the worker count but the mean must not
	parallelLoss, err := NewEvaluateFunc(net, set, 3, 0, true)()
	if err != nil {
		t.Fatal(err)
	}
	if diff := float64(serial - parallelLoss); diff > 1e-5 || diff < -1e-5 {
		t.Errorf("serial loss %f, parallel loss %f", serial, parallelLoss)
	}

	empty, _ := datasets.NewImageSet(4, 4)
	if _, err := NewEvaluateFunc(net, empty, 1, 0, true)(); err == nil {
		t.Errorf("empty set evaluated without error")
	}
}

func TestLoopFuncImprovesAndCheckpoints(t *testing.T) {
	rand.Seed(7)
	rng := rand.New(rand.NewSource(7))
	net := tinyNet()
	set := tinySet(t, 48, rng)

	h := &learning.HyperParameters{
		Threads:      2,
		LearningRate: 0.5,
		Epochs:       8,
		BatchSize:    8,
		Flat:         true,
	}
	opt := learning.NewSGD(h.LearningRate, h.Momentum)
	evaluate := NewEvaluateFunc(net, set, h.Threads, 0, true)

	before, err := evaluate()
	if err != nil {
		t.Fatal(err)
	}

	dstmodel := filepath.Join(t.TempDir(), "tiny.json.t.lzw")
	if err := NewLoopFunc(h, net, set, opt, evaluate, &dstmodel)(); err != nil {
		t.Fatal(err)
	}

	after, err := evaluate()
	if err != nil {
		t.Fatal(err)
	}
	if after >= before {
		t.Errorf("loss %f did not improve from %f", after, before)
	}
	if _, err := os.Stat(dstmodel); err != nil {
		t.Errorf("no checkpoint written: %v", err)
	}
}

func TestResume(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	net := tinyNet()
	dstmodel := filepath.Join(t.TempDir(), "resume.json.t.lzw")
	if err := net.WriteCompressedWeightsToFile(dstmodel); err != nil {
		t.Fatal(err)
	}

	other := tinyNet()
	on := true
	Resume(other, &on, &dstmodel)

	data := make([]float32, 2*16)
	for i := range data {
		data[i] = rng.Float32()
	}
	batch := tensor.New(tensor.WithShape(2, 16), tensor.WithBacking(data))
	want, err := net.Forward(batch)
	if err != nil {
		t.Fatal(err)
	}
	got, err := other.Forward(batch)
	if err != nil {
		t.Fatal(err)
	}
	w := want.Data().([]float32)
	g := got.Data().([]float32)
	for i := range w {
		if w[i] != g[i] {
			t.Fatalf("resumed network diverges at %d: %f vs %f", i, g[i], w[i])
		}
	}

	off := false
	Resume(tinyNet(), &off, &dstmodel)
}
