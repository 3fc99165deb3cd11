// Package parallel contains parallel ForEach() and ForSpan() concurrency primitives.
package parallel

import "sync"

// ForEach executes a for loop with a limited number of concurrent goroutines.
// Each goroutine processes one integer, from 0 to length.
func ForEach(length, limit int, body func(i int)) {
	if limit <= 0 {
		limit = 1 // Default to 1 if limit is zero or negative
	}
	if length <= 0 {
		return // No iterations to perform
	}

	sem := make(chan struct{}, limit) // Semaphore with buffer size 'limit'
	var wg sync.WaitGroup
	wg.Add(length)

	for i := 0; i < length; i++ {
		sem <- struct{}{} // Acquire semaphore
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }() // Release semaphore after function exits

			body(i)
		}(i)
	}

	wg.Wait() // Wait for all goroutines to finish
}

// ForSpan splits 0..length into at most limit contiguous spans and runs body
// on each span concurrently. A worker owns its whole span, so per-worker
// scratch state (like a cloned network) is touched by one goroutine only.
func ForSpan(length, limit int, body func(worker, lo, hi int)) {
	if limit <= 0 {
		limit = 1
	}
	if length <= 0 {
		return
	}
	if limit > length {
		limit = length
	}

	span := (length + limit - 1) / limit
	var wg sync.WaitGroup

	for w := 0; w < limit; w++ {
		lo := w * span
		hi := lo + span
		if lo >= length {
			break
		}
		if hi > length {
			hi = length
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			body(w, lo, hi)
		}(w, lo, hi)
	}

	wg.Wait()
}
