package vec

// 4-way unrolled kernels. Wired in by the amd64 init when the CPU is wide
// enough to profit, otherwise the generic kernels stay active.

func dotUnrolled(x, y []float32) float32 {
	var s0, s1, s2, s3 float32
	n := len(x) &^ 3
	for i := 0; i < n; i += 4 {
		s0 += x[i] * y[i]
		s1 += x[i+1] * y[i+1]
		s2 += x[i+2] * y[i+2]
		s3 += x[i+3] * y[i+3]
	}
	for i := n; i < len(x); i++ {
		s0 += x[i] * y[i]
	}
	return s0 + s1 + s2 + s3
}

func axpyUnrolled(a float32, x, y []float32) {
	n := len(x) &^ 3
	for i := 0; i < n; i += 4 {
		y[i] += a * x[i]
		y[i+1] += a * x[i+1]
		y[i+2] += a * x[i+2]
		y[i+3] += a * x[i+3]
	}
	for i := n; i < len(x); i++ {
		y[i] += a * x[i]
	}
}

func scaleUnrolled(a float32, x []float32) {
	n := len(x) &^ 3
	for i := 0; i < n; i += 4 {
		x[i] *= a
		x[i+1] *= a
		x[i+2] *= a
		x[i+3] *= a
	}
	for i := n; i < len(x); i++ {
		x[i] *= a
	}
}

func sumUnrolled(x []float32) float32 {
	var s0, s1, s2, s3 float32
	n := len(x) &^ 3
	for i := 0; i < n; i += 4 {
		s0 += x[i]
		s1 += x[i+1]
		s2 += x[i+2]
		s3 += x[i+3]
	}
	for i := n; i < len(x); i++ {
		s0 += x[i]
	}
	return s0 + s1 + s2 + s3
}
