// Package learning implements minibatch gradient descent training
package learning

import (
	"log"
	"os"
)

// SetLogger sets the output logger file where per-epoch losses are written
func (h *HyperParameters) SetLogger(filename string) {
	outfile, _ := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	h.l = log.New(outfile, "", 0)
}

type HyperParameters struct {
	Threads int // number of threads for evaluation

	Shuffle bool // whether to shuffle the set before each epoch
	Seed    bool // seed prng using true rng

	LearningRate float32 // SGD step size (default: 0.1)
	Momentum     float32 // SGD velocity decay, 0 disables momentum

	Epochs    int // passes over the training set
	BatchSize int // samples per gradient step (default: 32)

	// TargetLoss stops the training loop early once the held-out
	// reconstruction error drops below it
	TargetLoss float32

	LogEvery int // print a running loss every this many batches, 0 is quiet

	// Flat feeds flattened 2-D batches instead of NCHW, for dense networks
	Flat bool

	// Noise is a salt-and-pepper corruption rate. When nonzero the network
	// sees corrupted inputs but is scored against the clean ones, which
	// trains a denoising autoencoder.
	Noise float32

	l *log.Logger
}

// logf writes to the logger file when one was set
func (h *HyperParameters) logf(format string, v ...interface{}) {
	if h.l != nil {
		h.l.Printf(format, v...)
	}
}
