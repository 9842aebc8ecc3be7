package batch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"glosaguard/internal/validator"
)

// Checker validates one raw document.
type Checker interface {
	Check(data []byte) *validator.CheckResult
}

// FileResult is the outcome of checking one file. Err is set when the file
// could not be read; Result is nil in that case.
type FileResult struct {
	Path     string                 `json:"path"`
	Result   *validator.CheckResult `json:"result,omitempty"`
	Err      error                  `json:"-"`
	Error    string                 `json:"error,omitempty"`
	Duration time.Duration          `json:"duration_ns"`
}

// Name returns the file's base name.
func (r FileResult) Name() string { return filepath.Base(r.Path) }

// Pool checks files concurrently with a bounded number of workers.
type Pool struct {
	Workers  int
	MaxBytes int64
	Checker  Checker
}

// Run checks every path and returns results in input order.
func (p *Pool) Run(ctx context.Context, paths []string) []FileResult {
	workers := p.Workers
	if workers <= 0 {
		workers = 1
	}
	results := make([]FileResult, len(paths))

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		go func(idx int, path string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results[idx] = failed(path, ctx.Err(), 0)
				return
			}
			defer func() { <-sem }()

			results[idx] = p.checkFile(path)
		}(i, path)
	}

	wg.Wait()
	return results
}

func (p *Pool) checkFile(path string) FileResult {
	start := time.Now()
	data, err := ReadDocument(path, p.MaxBytes)
	if err != nil {
		return failed(path, err, time.Since(start))
	}
	res := p.Checker.Check(data)
	return FileResult{Path: path, Result: res, Duration: time.Since(start)}
}

func failed(path string, err error, d time.Duration) FileResult {
	return FileResult{Path: path, Err: err, Error: err.Error(), Duration: d}
}
