package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pmc-fetch/internal/download"
	"github.com/pdiddy/pmc-fetch/internal/pmc"
)

var searchCmd = &cobra.Command{
	Use:   "search [author]",
	Short: "Search PubMed Central for articles by author",
	Long: `Search walks every result page for an author query, enriching each hit
with its citation title. Records are printed as a table by default, or as
JSON or CSL-YAML, and can be saved to a result file for the download stage.

With --download-all, every PDF is downloaded after the search completes,
with staggered starts and a bounded number of in-flight requests.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("author", "", "author name to search for")
	searchCmd.Flags().Int("page-size", 0, "identifiers per search page (default 20)")
	searchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	searchCmd.Flags().String("api-key", "", "NCBI Entrez API key")
	searchCmd.Flags().String("proxy", "", "proxy base URL prefixed to request URLs")
	searchCmd.Flags().Bool("json", false, "output records as JSON")
	searchCmd.Flags().Bool("csl", false, "output records as CSL-YAML")
	searchCmd.Flags().String("output", "", "save the search to a YAML result file")
	searchCmd.Flags().Bool("download-all", false, "download every PDF after the search completes")
	searchCmd.Flags().Duration("delay", 0, "spacing between download starts (default 1s)")
	searchCmd.Flags().Int("concurrency", 0, "maximum in-flight downloads (default 4)")
	searchCmd.Flags().String("out-dir", "", "directory for downloaded PDFs (default downloads)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	author, _ := cmd.Flags().GetString("author")
	if author == "" && len(args) > 0 {
		author = args[0]
	}

	cfg := searchConfigFromFlags(cmd)
	client := &http.Client{Timeout: cfg.Timeout}
	ctx := context.Background()

	session, err := pmc.SearchByAuthor(ctx, client, author, cfg, os.Stderr)
	if err != nil {
		if len(session.Records) > 0 {
			fmt.Fprintf(os.Stderr, "warning: keeping %d records fetched before the failure\n", len(session.Records))
		}
		return err
	}

	jsonOut, _ := cmd.Flags().GetBool("json")
	cslOut, _ := cmd.Flags().GetBool("csl")
	switch {
	case jsonOut:
		if err := pmc.FormatJSON(session, os.Stdout); err != nil {
			return err
		}
	case cslOut:
		if err := pmc.FormatCSL(session, os.Stdout); err != nil {
			return err
		}
	default:
		pmc.FormatTable(session, os.Stdout)
	}

	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		if err := pmc.WriteResultFile(outPath, session, cfg); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved %d records to %s\n", len(session.Records), outPath)
	}

	if downloadAll, _ := cmd.Flags().GetBool("download-all"); downloadAll && len(session.Records) > 0 {
		result := download.DownloadAll(ctx, client, session.Records, downloadConfigFromFlags(cmd), os.Stdout)
		if result.HasFailures() {
			return fmt.Errorf("%d download(s) failed", result.Failed)
		}
	}

	return nil
}
