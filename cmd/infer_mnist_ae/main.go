package main

import "flag"
import "fmt"
import "image"
import "image/color"
import "image/png"
import "os"

import "github.com/neurlang/autoencoder/datasets/mnist"
import "github.com/neurlang/autoencoder/layer/conv2d"
import "github.com/neurlang/autoencoder/layer/deconv2d"
import "github.com/neurlang/autoencoder/layer/relu"
import "github.com/neurlang/autoencoder/layer/sigmoid"
import "github.com/neurlang/autoencoder/loss"
import "github.com/neurlang/autoencoder/net/autoencoder"

// gray8 clamps a normalized pixel back to a byte
func gray8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func main() {

	dstmodel := flag.String("dstmodel", "mnist_ae.json.t.lzw", "trained model .json.t.lzw file")
	out := flag.String("out", "reconstructions.png", "contact sheet destination")
	count := flag.Int("count", 16, "held-out digits to reconstruct")
	flag.Parse()

	_, inferset, err := mnist.New()
	if err != nil {
		panic(err.Error())
	}

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

	if err := net.ReadCompressedWeightsFromFile(*dstmodel); err != nil {
		panic(err.Error())
	}

	n := *count
	if n > inferset.Len() {
		n = inferset.Len()
	}

	// originals on the top row, reconstructions below
	sheet := image.NewGray(image.Rect(0, 0, n*mnist.ImgSize, 2*mnist.ImgSize))

	var sum float64
	for i := 0; i < n; i++ {
		batch := inferset.Batch4(i, i+1)
		reconstructed, err := net.Forward(batch)
		if err != nil {
			panic(err.Error())
		}
		l, _, err := loss.Mse(reconstructed, batch)
		if err != nil {
			panic(err.Error())
		}
		sum += float64(l)
		fmt.Printf("digit %d reconstruction error %f\n", i, l)

		orig := batch.Data().([]float32)
		recon := reconstructed.Data().([]float32)
		for y := 0; y < mnist.ImgSize; y++ {
			for x := 0; x < mnist.ImgSize; x++ {
				j := y*mnist.ImgSize + x
				sheet.SetGray(i*mnist.ImgSize+x, y, color.Gray{Y: gray8(orig[j])})
				sheet.SetGray(i*mnist.ImgSize+x, mnist.ImgSize+y, color.Gray{Y: gray8(recon[j])})
			}
		}
	}
	fmt.Printf("mean reconstruction error %f over %d digits\n", sum/float64(n), n)

	f, err := os.Create(*out)
	if err != nil {
		panic(err.Error())
	}
	defer f.Close()
	if err := png.Encode(f, sheet); err != nil {
		panic(err.Error())
	}
	println("contact sheet written to", *out)
}
