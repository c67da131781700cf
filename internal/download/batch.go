// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/pmc-fetch/pkg/types"
)

// DefaultConcurrency bounds in-flight downloads when the config leaves the
// limit unset. Kept low to respect the service's fair-use policy.
const DefaultConcurrency = 4

// BatchResult holds the outcome of a batch download run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
	Errors     []string
	Paths      []string
}

// Total returns the total number of records processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any downloads failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// DownloadAll downloads every record through a bounded worker pool with
// staggered starts. Starts are issued strictly in record order, spaced by at
// least cfg.Delay; completion order is not guaranteed. Individual failures
// are isolated: they are reported in the result and do not cancel sibling
// downloads. Cancelling ctx stops the stagger loop and in-flight requests.
func DownloadAll(ctx context.Context, client *http.Client, records []types.Record, cfg types.DownloadConfig, w io.Writer) BatchResult {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	sw := &syncWriter{w: w}
	var (
		mu     sync.Mutex
		result BatchResult
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, rec := range records {
		if i > 0 && cfg.Delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(cfg.Delay):
			}
		}
		if ctx.Err() != nil {
			break
		}

		rec := rec
		g.Go(func() error {
			path, skipped, err := DownloadRecord(ctx, client, rec, cfg, sw)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fmt.Fprintf(sw, "failed:  %s (%v)\n", rec.PMCID, err)
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rec.PMCID, err))
				return nil
			}
			if skipped {
				result.Skipped++
			} else {
				result.Downloaded++
			}
			result.Paths = append(result.Paths, path)
			return nil
		})
	}

	g.Wait()

	fmt.Fprintf(sw, "\nBatch summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())
	return result
}

// syncWriter serializes progress output from concurrent downloads.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
