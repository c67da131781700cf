// Package download retrieves article PDFs and writes metadata records.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pmc-fetch/internal/httputil"
	"github.com/pdiddy/pmc-fetch/internal/pmc"
	"github.com/pdiddy/pmc-fetch/pkg/types"
)

const metadataDir = "metadata"

// filenameSanitizer strips characters that are unsafe in file names across
// platforms. Citations routinely contain colons and slashes.
var filenameSanitizer = strings.NewReplacer(
	"/", "-", "\\", "-", ":", " -", "*", "", "?", "", "\"", "'",
	"<", "(", ">", ")", "|", "-",
)

// SafeFilename returns the citation sanitized for use as a file name stem.
func SafeFilename(citation string) string {
	name := strings.TrimSpace(filenameSanitizer.Replace(citation))
	if name == "" {
		return "untitled"
	}
	return name
}

// Metadata is the YAML sidecar written next to each downloaded PDF.
type Metadata struct {
	Record    types.Record `yaml:"record"`
	SourceURL string       `yaml:"source_url"`
	Fetched   time.Time    `yaml:"fetched"`
}

// DownloadRecord fetches one record's PDF and saves it as "<citation>.pdf"
// in cfg.OutputDir, with a metadata sidecar under metadata/. If the target
// file already exists the download is skipped. The skipped return value
// indicates whether the download was skipped.
func DownloadRecord(ctx context.Context, client *http.Client, rec types.Record, cfg types.DownloadConfig, w io.Writer) (path string, skipped bool, err error) {
	pdfURL := rec.DownloadURL
	if pdfURL == "" {
		pdfURL = pmc.DownloadURL(rec.PMCID)
	}
	path = filepath.Join(cfg.OutputDir, SafeFilename(rec.Citation)+".pdf")

	if _, statErr := os.Stat(path); statErr == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", rec.PMCID)
		return path, true, nil
	}

	for _, dir := range []string{cfg.OutputDir, filepath.Join(cfg.OutputDir, metadataDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", false, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	fmt.Fprintf(w, "downloading: %s\n", rec.PMCID)

	if err := downloadFile(ctx, client, pdfURL, path, cfg); err != nil {
		return "", false, fmt.Errorf("downloading %s: %w", rec.PMCID, err)
	}

	metaPath := filepath.Join(cfg.OutputDir, metadataDir, rec.PMCID+".yaml")
	if err := writeMetadata(rec, pdfURL, metaPath); err != nil {
		return "", false, fmt.Errorf("writing metadata for %s: %w", rec.PMCID, err)
	}

	return path, false, nil
}

// downloadFile fetches rawURL to destPath using a temporary file that is
// renamed on success and removed on every failure path, so a partial
// download never masquerades as a finished PDF.
func downloadFile(ctx context.Context, client *http.Client, rawURL, destPath string, cfg types.DownloadConfig) error {
	reqURL := httputil.RequestURL(cfg.ProxyBaseURL, rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".download-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// writeMetadata writes the sidecar YAML for a downloaded record.
func writeMetadata(rec types.Record, sourceURL, path string) error {
	data, err := yaml.Marshal(Metadata{
		Record:    rec,
		SourceURL: sourceURL,
		Fetched:   time.Now(),
	})
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
