package main

import "flag"
import "runtime"

import "github.com/neurlang/autoencoder/datasets/mnist"
import "github.com/neurlang/autoencoder/layer/conv2d"
import "github.com/neurlang/autoencoder/layer/deconv2d"
import "github.com/neurlang/autoencoder/layer/relu"
import "github.com/neurlang/autoencoder/layer/sigmoid"
import "github.com/neurlang/autoencoder/learning"
import "github.com/neurlang/autoencoder/net/autoencoder"
import "github.com/neurlang/autoencoder/trainer"

func main() {

	dstmodel := flag.String("dstmodel", "mnist_ae.json.t.lzw", "model destination .json.t.lzw file")
	resume := flag.Bool("resume", false, "resume training from dstmodel")
	download := flag.Bool("download", false, "download the dataset into /tmp/mnist/ when missing")
	epochs := flag.Int("epochs", 20, "passes over the training set")
	batch := flag.Int("batch", 32, "minibatch size")
	lr := flag.Float64("lr", 0.1, "learning rate")
	momentum := flag.Float64("momentum", 0.9, "SGD momentum")
	noise := flag.Float64("noise", 0, "salt-and-pepper corruption rate, nonzero trains a denoiser")
	threads := flag.Int("threads", runtime.NumCPU(), "evaluation threads")
	target := flag.Float64("target", 0, "stop once the eval loss reaches this, 0 never")
	flag.Parse()

	if *download {
		if err := mnist.Download("/tmp/mnist/"); err != nil {
			panic(err.Error())
		}
	}

	trainset, inferset, err := mnist.New()
	if err != nil {
		panic(err.Error())
	}
	println("train images:", trainset.Len(), "infer images:", inferset.Len())

	// each conv halves the 28x28 side, each deconv doubles it back
	const features1 = 8
	const features2 = 4
	const kernel = 4
	const stride = 2
	const pad = 1

	var net autoencoder.Autoencoder
	net.NewEncoderLayer(conv2d.MustNew(1, features1, kernel, stride, pad))
	net.NewEncoderLayer(relu.New())
	net.NewEncoderLayer(conv2d.MustNew(features1, features2, kernel, stride, pad))
	net.NewEncoderLayer(relu.New())
	net.NewDecoderLayer(deconv2d.MustNew(features2, features1, kernel, stride, pad))
	net.NewDecoderLayer(relu.New())
	net.NewDecoderLayer(deconv2d.MustNew(features1, 1, kernel, stride, pad))
	net.NewDecoderLayer(sigmoid.New())

	ok, err := net.LatentShrinks(1, mnist.ImgSize, mnist.ImgSize)
	if err != nil {
		panic(err.Error())
	}
	if !ok {
		panic("latent code is not smaller than the input, network is not undercomplete")
	}

	var h learning.HyperParameters
	h.Threads = *threads
	h.Shuffle = true
	h.Seed = true
	h.LearningRate = float32(*lr)
	h.Momentum = float32(*momentum)
	h.Epochs = *epochs
	h.BatchSize = *batch
	h.TargetLoss = float32(*target)
	h.Noise = float32(*noise)
	h.LogEvery = 200
	h.SetLogger("losses_mnist_ae.txt")

	opt := learning.NewSGD(h.LearningRate, h.Momentum)

	trainer.Resume(&net, resume, dstmodel)

	evaluate := trainer.NewEvaluateFunc(&net, inferset, h.Threads, 95, false)
	loop := trainer.NewLoopFunc(&h, &net, trainset, opt, evaluate, dstmodel)
	if err := loop(); err != nil {
		panic(err.Error())
	}
}
