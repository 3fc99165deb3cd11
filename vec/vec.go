// Package vec implements the float32 kernels used by the layer math.
// The active implementation is chosen once at init time.
package vec

// Dot returns the dot product of x and y. Lengths must match.
var Dot = dotGeneric

// Axpy computes y += a*x. Lengths must match.
var Axpy = axpyGeneric

// Scale computes x *= a in place.
var Scale = scaleGeneric

// Sum returns the sum of all elements of x.
var Sum = sumGeneric

func dotGeneric(x, y []float32) (o float32) {
	for i := range x {
		o += x[i] * y[i]
	}
	return
}

func axpyGeneric(a float32, x, y []float32) {
	for i := range x {
		y[i] += a * x[i]
	}
}

func scaleGeneric(a float32, x []float32) {
	for i := range x {
		x[i] *= a
	}
}

func sumGeneric(x []float32) (o float32) {
	for i := range x {
		o += x[i]
	}
	return
}
