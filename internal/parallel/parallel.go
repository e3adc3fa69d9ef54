// Package parallel splits element-wise kernel loops across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4096,
	}
}

// Sequential returns a Config that runs everything on the calling goroutine.
func Sequential() Config {
	return Config{Enabled: false, NumWorkers: 1, MinChunkSize: 1}
}

// Chunks returns how many chunks For would split n items into.
func (cfg Config) Chunks(n int) int {
	minChunk := max(cfg.MinChunkSize, 1)
	if n == 0 || !cfg.Enabled || cfg.NumWorkers <= 1 || n < 2*minChunk {
		return 1
	}
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, minChunk)
	return (n + chunkSize - 1) / chunkSize
}

// For executes f(start, end) over disjoint sub-ranges covering [0, n).
// Falls back to a single call on the calling goroutine when n is too small.
// Writes to disjoint indices of a shared slice are safe; For returns only
// after every chunk has finished.
func For(n int, f func(start, end int), cfg Config) {
	chunks := cfg.Chunks(n)
	if chunks <= 1 {
		if n > 0 {
			f(0, n)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := (n + chunks - 1) / chunks
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			f(s, e)
		}(start, end)
	}
	wg.Wait()
}

// Map applies f to every index in [0, n) using For.
func Map(n int, f func(i int), cfg Config) {
	For(n, func(start, end int) {
		for i := start; i < end; i++ {
			f(i)
		}
	}, cfg)
}
