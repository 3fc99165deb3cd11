package learning

import "fmt"
import "math/rand"
import crypto_rand "crypto/rand"
import "encoding/binary"

import "github.com/neurlang/autoencoder/datasets"
import "github.com/neurlang/autoencoder/loss"
import "github.com/neurlang/autoencoder/net/autoencoder"
import "gorgonia.org/tensor"

// Epoch runs one pass of minibatch SGD over the set and returns the mean
// reconstruction loss of the pass.
func (h *HyperParameters) Epoch(net *autoencoder.Autoencoder, set *datasets.ImageSet, opt *SGD) (float32, error) {
	if set.Len() == 0 {
		return 0, fmt.Errorf("Epoch: empty training set")
	}

	if h.Seed {
		var b [8]byte
		_, err := crypto_rand.Read(b[:])
		if err == nil {
			rand.Seed(int64(binary.LittleEndian.Uint64(b[:])))
		}
		h.Seed = false
	}

	if h.Shuffle {
		set.Shuffle()
	}

	bs := h.BatchSize
	if bs <= 0 {
		bs = 32
	}

	var sum float64
	var batches int
	for lo := 0; lo < set.Len(); lo += bs {
		hi := lo + bs
		if hi > set.Len() {
			hi = set.Len()
		}

		var batch *tensor.Dense
		if h.Flat {
			batch = set.Batch2(lo, hi)
		} else {
			batch = set.Batch4(lo, hi)
		}

		input := batch
		if h.Noise > 0 {
			input = datasets.Corrupt(batch, h.Noise)
		}

		out, err := net.Forward(input)
		if err != nil {
			return 0, err
		}
		l, grad, err := loss.Mse(out, batch)
		if err != nil {
			return 0, err
		}
		net.ZeroGrad()
		if _, err := net.Backward(grad); err != nil {
			return 0, err
		}
		opt.Step(net.Params())

		sum += float64(l)
		batches++
		if h.LogEvery > 0 && batches%h.LogEvery == 0 {
			fmt.Printf("batch %d loss %f\n", batches, l)
		}
	}

	mean := float32(sum / float64(batches))
	h.logf("epoch loss %f", mean)
	return mean, nil
}
