package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pmc-fetch/internal/pmc"
	"github.com/pdiddy/pmc-fetch/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [pmcids...]",
	Short: "Fetch citation details for PMC identifiers",
	Long: `Fetch retrieves the citation title for each identifier through the Entrez
detail endpoint. An identifier whose lookup fails still yields a record,
carrying a sentinel citation instead of a title.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	fetchCmd.Flags().String("api-key", "", "NCBI Entrez API key")
	fetchCmd.Flags().String("proxy", "", "proxy base URL prefixed to request URLs")
	fetchCmd.Flags().Bool("json", false, "output records as JSON")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more PMC identifiers")
	}

	cfg := httpConfigFromFlags(cmd)
	client := &http.Client{Timeout: cfg.Timeout}
	ctx := context.Background()

	session := &pmc.Session{State: pmc.StateDone}
	for _, id := range args {
		session.Records = append(session.Records,
			pmc.FetchRecordDetails(ctx, client, id, cfg, os.Stderr))
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return pmc.FormatJSON(session, os.Stdout)
	}
	pmc.FormatTable(session, os.Stdout)
	return nil
}

// recordsFromIdentifiers enriches bare identifiers so downloads carry a
// citation-based file name.
func recordsFromIdentifiers(ctx context.Context, client *http.Client, ids []string, cfg types.HTTPConfig) []types.Record {
	records := make([]types.Record, 0, len(ids))
	for _, id := range ids {
		records = append(records, pmc.FetchRecordDetails(ctx, client, id, cfg, os.Stderr))
	}
	return records
}
