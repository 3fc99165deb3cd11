package trainer

import "fmt"

import "github.com/neurlang/autoencoder/datasets"
import "github.com/neurlang/autoencoder/learning"
import "github.com/neurlang/autoencoder/net/autoencoder"

// NewLoopFunc returns a closure running the training loop: one SGD epoch
// over the set, then a held-out evaluation. Whenever the evaluation loss
// improves the weights are checkpointed, to dstmodel when one is given.
// The loop stops after h.Epochs passes or once h.TargetLoss is reached.
func NewLoopFunc(h *learning.HyperParameters, net *autoencoder.Autoencoder, set *datasets.ImageSet,
	opt *learning.SGD, evaluate func() (float32, error), dstmodel *string) func() error {

	return func() error {
		best, err := evaluate()
		if err != nil {
			return err
		}
		fmt.Printf("initial loss %f\n", best)

		epochs := h.Epochs
		if epochs <= 0 {
			epochs = 10
		}
		for epoch := 0; epoch < epochs; epoch++ {
			trainLoss, err := h.Epoch(net, set, opt)
			if err != nil {
				return err
			}
			evalLoss, err := evaluate()
			if err != nil {
				return err
			}
			fmt.Printf("epoch %d of %d: train loss %f, eval loss %f\n", epoch+1, epochs, trainLoss, evalLoss)

			if evalLoss < best {
				best = evalLoss
				name := "output." + fmt.Sprint(evalLoss) + ".json.t.lzw"
				if dstmodel != nil && *dstmodel != "" {
					name = *dstmodel
				}
				if err := net.WriteCompressedWeightsToFile(name); err != nil {
					println(err.Error())
				}
			}

			if h.TargetLoss > 0 && evalLoss <= h.TargetLoss {
				println("Target loss reached. Stopping")
				break
			}
		}
		return nil
	}
}
