package tfhe

import (
	"runtime"
	"sync"

	"golang.org/x/sys/cpu"
)

// bootstrapWorker holds the evaluator owned by one goroutine, padded to a cache line.
type bootstrapWorker[T TorusInt] struct {
	_    cpu.CacheLinePad
	eval *Evaluator[T]
	_    cpu.CacheLinePad
}

// BootstrapParallel bootstraps every ciphertext of cts with the constant test vector mu in parallel,
// and returns the results in the same order.
//
// Each goroutine owns a shallow copy of this Evaluator, sharing the evaluation key.
func (e *Evaluator[T]) BootstrapParallel(cts []LWECiphertext[T], mu T) []LWECiphertext[T] {
	ctsOut := make([]LWECiphertext[T], len(cts))
	for i := range ctsOut {
		ctsOut[i] = NewLWECiphertext(e.Parameters)
	}
	e.BootstrapParallelAssign(cts, mu, ctsOut)
	return ctsOut
}

// BootstrapParallelAssign bootstraps every ciphertext of cts in parallel and writes them to ctsOut.
// cts and ctsOut should have the same length.
func (e *Evaluator[T]) BootstrapParallelAssign(cts []LWECiphertext[T], mu T, ctsOut []LWECiphertext[T]) {
	e.parallelAssign(len(cts), func(eval *Evaluator[T], i int) {
		eval.BootstrapAssign(cts[i], mu, ctsOut[i])
	})
}

// BootstrapLUTParallel bootstraps every ciphertext of cts with respect to lut in parallel,
// and returns the results in the same order.
func (e *Evaluator[T]) BootstrapLUTParallel(cts []LWECiphertext[T], lut LookUpTable[T]) []LWECiphertext[T] {
	ctsOut := make([]LWECiphertext[T], len(cts))
	for i := range ctsOut {
		ctsOut[i] = NewLWECiphertext(e.Parameters)
	}
	e.parallelAssign(len(cts), func(eval *Evaluator[T], i int) {
		eval.BootstrapLUTAssign(cts[i], lut, ctsOut[i])
	})
	return ctsOut
}

// parallelAssign calls job(eval, i) for every i in [0, workSize),
// distributing the indices over goroutines which own their own Evaluator.
func (e *Evaluator[T]) parallelAssign(workSize int, job func(eval *Evaluator[T], i int)) {
	if workSize == 0 {
		return
	}

	workers := make([]bootstrapWorker[T], min(runtime.NumCPU(), workSize))
	for w := range workers {
		workers[w].eval = e.ShallowCopy()
	}

	jobs := make(chan int)
	go func() {
		defer close(jobs)
		for i := 0; i < workSize; i++ {
			jobs <- i
		}
	}()

	var wg sync.WaitGroup
	wg.Add(len(workers))
	for w := range workers {
		go func(eval *Evaluator[T]) {
			defer wg.Done()
			for i := range jobs {
				job(eval, i)
			}
		}(workers[w].eval)
	}
	wg.Wait()
}
