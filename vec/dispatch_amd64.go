//go:build amd64

package vec

import "github.com/klauspost/cpuid/v2"

func init() {
	// Check if the CPU is wide enough for the unrolled kernels
	if cpuid.CPU.Supports(cpuid.AVX2, cpuid.FMA3) {
		Dot = dotUnrolled
		Axpy = axpyUnrolled
		Scale = scaleUnrolled
		Sum = sumUnrolled
	}
}
