// Package loss implements the mean squared reconstruction error
package loss

import "fmt"

import "gorgonia.org/tensor"

// Mse returns the mean squared error between pred and target over all
// elements, together with the gradient of the loss with respect to pred.
// Shapes must match.
func Mse(pred, target *tensor.Dense) (float32, *tensor.Dense, error) {
	if !pred.Shape().Eq(target.Shape()) {
		return 0, nil, fmt.Errorf("Mse: shapes %v and %v differ", pred.Shape(), target.Shape())
	}
	ps := pred.Data().([]float32)
	ts := target.Data().([]float32)
	n := len(ps)
	if n == 0 {
		return 0, nil, fmt.Errorf("Mse: empty tensors")
	}

	grad := make([]float32, n)
	var sum float64
	inv := 1 / float32(n)
	for i := range ps {
		d := ps[i] - ts[i]
		sum += float64(d) * float64(d)
		grad[i] = 2 * d * inv
	}

	shp := pred.Shape()
	outshape := make([]int, len(shp))
	copy(outshape, shp)
	return float32(sum / float64(n)), tensor.New(tensor.WithShape(outshape...), tensor.WithBacking(grad)), nil
}
