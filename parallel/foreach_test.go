package parallel

import (
	"sync/atomic"
	"testing"
)

func TestForEachCoversAll(t *testing.T) {
	const n = 1000
	var hits [n]int32
	ForEach(n, 7, func(i int) {
		atomic.AddInt32(&hits[i], 1)
	})
	for i, h := range hits {
		if h != 1 {
			t.Errorf("index %d visited %d times", i, h)
		}
	}
}

func TestForEachDegenerate(t *testing.T) {
	var count int32
	ForEach(0, 4, func(i int) { atomic.AddInt32(&count, 1) })
	ForEach(-5, 4, func(i int) { atomic.AddInt32(&count, 1) })
	if count != 0 {
		t.Errorf("empty loops ran %d bodies", count)
	}
	ForEach(3, 0, func(i int) { atomic.AddInt32(&count, 1) })
	if count != 3 {
		t.Errorf("limit 0 loop ran %d bodies, want 3", count)
	}
}

func TestForSpanCoversAllOnce(t *testing.T) {
	for _, tc := range [][2]int{{10, 3}, {10, 4}, {1, 8}, {17, 17}, {17, 100}, {1000, 7}} {
		length, limit := tc[0], tc[1]
		hits := make([]int32, length)
		workers := make(map[int]struct{})
		var mu = make(chan struct{}, 1)
		mu <- struct{}{}
		ForSpan(length, limit, func(w, lo, hi int) {
			if lo >= hi {
				t.Errorf("empty span %d..%d", lo, hi)
			}
			for i := lo; i < hi; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
			<-mu
			workers[w] = struct{}{}
			mu <- struct{}{}
		})
		for i, h := range hits {
			if h != 1 {
				t.Errorf("length=%d limit=%d: index %d visited %d times", length, limit, i, h)
			}
		}
		if len(workers) > limit {
			t.Errorf("length=%d limit=%d: %d workers ran", length, limit, len(workers))
		}
	}
}
