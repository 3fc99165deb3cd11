package trainer

import "fmt"
import "math"

import "github.com/neurlang/autoencoder/datasets"
import "github.com/neurlang/autoencoder/loss"
import "github.com/neurlang/autoencoder/net/autoencoder"
import "github.com/neurlang/autoencoder/parallel"
import "gorgonia.org/tensor"

// evalBatch is the forward pass width during evaluation
const evalBatch = 64

// sampleSize calculates the statistically sufficient sample size
// for a given dataset size N and significance level (0–100).
func sampleSize(N int, significance byte) int {

	// Convert significance level to Z-score
	z := zScoreFromAlpha(100 - significance)

	// Assume worst-case proportion p = 0.5 for max variability
	p := 0.5
	e := float64(100-significance) * 0.01 // Margin of error = 5%

	numerator := math.Pow(z, 2) * p * (1 - p)
	denominator := math.Pow(e, 2)

	// Initial sample size without population correction
	ss := numerator / denominator

	// Apply finite population correction
	correctedSS := ss * float64(N) / (float64(N) - 1 + ss)

	if int(correctedSS) > N {
		return N
	}

	return int(correctedSS)
}

// zScoreFromAlpha returns the Z-score for a given alpha level
// Common: 90% => 1.645, 95% => 1.96, 99% => 2.576
func zScoreFromAlpha(alpha byte) float64 {
	switch {
	case alpha <= 1:
		return 2.576 // 99% confidence
	case alpha <= 5:
		return 1.96 // 95% confidence
	case alpha <= 10:
		return 1.645 // 90% confidence
	default:
		return 1.96 // default fallback
	}
}

// NewEvaluateFunc returns a closure measuring the mean reconstruction loss
// of the network over the set. When significance is between 1 and 99 only a
// statistically sufficient subsample of the set is scored. Workers run over
// disjoint spans of the set, each on its own clone of the network because
// layers keep forward state.
func NewEvaluateFunc(net *autoencoder.Autoencoder, set *datasets.ImageSet, threads int,
	significance byte, flat bool) func() (float32, error) {

	return func() (float32, error) {
		n := set.Len()
		if n == 0 {
			return 0, fmt.Errorf("NewEvaluateFunc: empty evaluation set")
		}
		if significance > 0 && significance < 100 {
			n = sampleSize(n, significance)
		}

		limit := threads
		if limit < 1 {
			limit = 1
		}
		if limit > n {
			limit = n
		}

		sums := make([]float64, limit)
		counts := make([]int, limit)
		errs := make([]error, limit)

		parallel.ForSpan(n, limit, func(worker, lo, hi int) {
			clone := net.Clone()
			for b := lo; b < hi; b += evalBatch {
				e := b + evalBatch
				if e > hi {
					e = hi
				}
				var batch *tensor.Dense
				if flat {
					batch = set.Batch2(b, e)
				} else {
					batch = set.Batch4(b, e)
				}
				out, err := clone.Forward(batch)
				if err != nil {
					errs[worker] = err
					return
				}
				l, _, err := loss.Mse(out, batch)
				if err != nil {
					errs[worker] = err
					return
				}
				sums[worker] += float64(l) * float64(e-b)
				counts[worker] += e - b
			}
		})

		var sum float64
		var count int
		for w := 0; w < limit; w++ {
			if errs[w] != nil {
				return 0, errs[w]
			}
			sum += sums[w]
			count += counts[w]
		}
		return float32(sum / float64(count)), nil
	}
}
