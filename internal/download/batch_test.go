// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pmc-fetch/pkg/types"
)

func batchRecords(n int) []types.Record {
	records := make([]types.Record, n)
	for i := range records {
		records[i] = types.Record{
			PMCID:    fmt.Sprintf("PMC%d", i+1),
			Citation: fmt.Sprintf("Article %d", i+1),
		}
	}
	return records
}

// newBatchServer serves PDFs and records the PMCID order in which requests
// arrive. failFor lists identifiers that should 404.
func newBatchServer(failFor ...string) (ts *httptest.Server, arrivals *[]string) {
	arrivals = &[]string{}
	var mu sync.Mutex
	failing := make(map[string]bool, len(failFor))
	for _, id := range failFor {
		failing[id] = true
	}

	ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		id := ""
		for _, p := range parts {
			if strings.HasPrefix(p, "PMC") {
				id = p
			}
		}
		mu.Lock()
		*arrivals = append(*arrivals, id)
		mu.Unlock()

		if failing[id] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("%PDF"))
	}))
	return ts, arrivals
}

func TestDownloadAll(t *testing.T) {
	ts, arrivals := newBatchServer()
	defer ts.Close()

	records := batchRecords(3)
	for i := range records {
		records[i].DownloadURL = fmt.Sprintf("%s/pmc/articles/%s/pdf/", ts.URL, records[i].PMCID)
	}

	cfg := testDownloadCfg(t.TempDir())
	cfg.Delay = 30 * time.Millisecond

	var progress bytes.Buffer
	start := time.Now()
	result := DownloadAll(context.Background(), ts.Client(), records, cfg, &progress)
	elapsed := time.Since(start)

	assert.Equal(t, 3, result.Downloaded)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 3, result.Total())
	assert.False(t, result.HasFailures())
	assert.Len(t, result.Paths, 3)

	// Starts are staggered by the configured delay and issued in order. Two
	// gaps separate three records; use one delay as a generous lower bound.
	assert.Equal(t, []string{"PMC1", "PMC2", "PMC3"}, *arrivals)
	assert.GreaterOrEqual(t, elapsed, cfg.Delay)

	assert.Contains(t, progress.String(), "Batch summary: 3 downloaded, 0 skipped, 0 failed (total: 3)")
}

func TestDownloadAllIsolatesFailures(t *testing.T) {
	ts, _ := newBatchServer("PMC2")
	defer ts.Close()

	records := batchRecords(3)
	for i := range records {
		records[i].DownloadURL = fmt.Sprintf("%s/pmc/articles/%s/pdf/", ts.URL, records[i].PMCID)
	}

	var progress bytes.Buffer
	result := DownloadAll(context.Background(), ts.Client(), records, testDownloadCfg(t.TempDir()), &progress)

	assert.Equal(t, 2, result.Downloaded)
	assert.Equal(t, 1, result.Failed)
	assert.True(t, result.HasFailures())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "PMC2")
	assert.Contains(t, result.Errors[0], "404")
	assert.Contains(t, progress.String(), "failed:  PMC2")
	assert.Contains(t, progress.String(), "1 failed")
}

func TestDownloadAllSkipsExisting(t *testing.T) {
	ts, _ := newBatchServer()
	defer ts.Close()

	records := batchRecords(2)
	for i := range records {
		records[i].DownloadURL = fmt.Sprintf("%s/pmc/articles/%s/pdf/", ts.URL, records[i].PMCID)
	}

	cfg := testDownloadCfg(t.TempDir())
	_, _, err := DownloadRecord(context.Background(), ts.Client(), records[0], cfg, &bytes.Buffer{})
	require.NoError(t, err)

	result := DownloadAll(context.Background(), ts.Client(), records, cfg, &bytes.Buffer{})
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Downloaded)
	assert.Equal(t, 2, result.Total())
}

func TestDownloadAllCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var requests int
	var mu sync.Mutex
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
		cancel() // cancel as soon as the first download starts
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	records := batchRecords(5)
	for i := range records {
		records[i].DownloadURL = fmt.Sprintf("%s/pmc/articles/%s/pdf/", ts.URL, records[i].PMCID)
	}

	cfg := testDownloadCfg(t.TempDir())
	cfg.Delay = 20 * time.Millisecond
	cfg.Concurrency = 1

	result := DownloadAll(ctx, ts.Client(), records, cfg, &bytes.Buffer{})

	// The remaining records are never started once the context is cancelled.
	mu.Lock()
	seen := requests
	mu.Unlock()
	assert.Less(t, seen, 5)
	assert.Less(t, result.Total(), 5)
	assert.Equal(t, 0, result.Downloaded)
}
