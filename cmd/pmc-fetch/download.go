// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pmc-fetch/internal/download"
	"github.com/pdiddy/pmc-fetch/internal/pmc"
	"github.com/pdiddy/pmc-fetch/pkg/types"
)

var downloadCmd = &cobra.Command{
	Use:   "download [pmcids...]",
	Short: "Download article PDFs individually or from a saved search",
	Long: `Download retrieves PDFs for PMC identifiers or for every record in a saved
result file. Bare identifiers are enriched first so file names carry the
citation title. Downloads start strictly in order, spaced by --delay, with
at most --concurrency requests in flight; one failure does not stop the rest.`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().String("from", "", "result file produced by search --output")
	downloadCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	downloadCmd.Flags().Duration("delay", 0, "spacing between download starts (default 1s)")
	downloadCmd.Flags().Int("concurrency", 0, "maximum in-flight downloads (default 4)")
	downloadCmd.Flags().String("out-dir", "", "directory for downloaded PDFs (default downloads)")
	downloadCmd.Flags().String("api-key", "", "NCBI Entrez API key")
	downloadCmd.Flags().String("proxy", "", "proxy base URL prefixed to request URLs")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg := downloadConfigFromFlags(cmd)
	client := &http.Client{Timeout: cfg.Timeout}
	ctx := context.Background()

	var records []types.Record
	if from, _ := cmd.Flags().GetString("from"); from != "" {
		rf, err := pmc.ReadResultFile(from)
		if err != nil {
			return err
		}
		records = rf.Records
	}
	records = append(records, recordsFromIdentifiers(ctx, client, args, cfg.HTTPConfig)...)

	if len(records) == 0 {
		return fmt.Errorf("provide PMC identifiers or a --from result file")
	}

	result := download.DownloadAll(ctx, client, records, cfg, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d download(s) failed", result.Failed)
	}
	return nil
}
