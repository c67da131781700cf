// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pmc

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/pmc-fetch/internal/httputil"
	"github.com/pdiddy/pmc-fetch/pkg/types"
)

// Base URLs for the Entrez efetch endpoint and the PMC article pages.
// Declared as vars so tests can substitute an httptest server.
var (
	efetchBase   = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
	downloadBase = "https://www.ncbi.nlm.nih.gov/pmc/articles/"
)

// Sentinel citations. Enrichment never yields an empty citation: a record
// whose title could not be found or fetched carries one of these instead.
const (
	CitationNotFound = "Citation not found"
	CitationError    = "Error fetching citation"
)

// Canonicalize returns the identifier in canonical "PMC<digits>" form.
// Entrez search returns bare numeric IDs while article URLs require the PMC
// prefix; accepting both spellings keeps the two endpoints consistent.
func Canonicalize(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(strings.ToUpper(id), "PMC") {
		return "PMC" + id[3:]
	}
	return "PMC" + id
}

// DownloadURL returns the PDF endpoint for an identifier. It is derived by
// string formatting alone, with no network round-trip.
func DownloadURL(id string) string {
	return downloadBase + Canonicalize(id) + "/pdf/"
}

// efetch XML structures (JATS article set). The title lives at
// article → front → article-meta → title-group → article-title.
type articleSet struct {
	Articles []efetchArticle `xml:"article"`
}

type efetchArticle struct {
	Title string `xml:"front>article-meta>title-group>article-title"`
}

// FetchRecordDetails fetches one record's metadata and extracts its citation
// title. It is a total function: any transport or parse failure is logged to
// w and absorbed into a record with the CitationError sentinel, so every
// identifier always yields a usable record.
func FetchRecordDetails(ctx context.Context, client *http.Client, id string, cfg types.HTTPConfig, w io.Writer) types.Record {
	rec := types.Record{
		PMCID:       Canonicalize(id),
		DownloadURL: DownloadURL(id),
	}

	citation, err := fetchCitation(ctx, client, id, cfg)
	if err != nil {
		fmt.Fprintf(w, "warning: fetching details for %s: %v\n", rec.PMCID, err)
		rec.Citation = CitationError
		return rec
	}
	rec.Citation = citation
	return rec
}

// fetchCitation issues the efetch request and parses the title out of the
// response. A well-formed response without a title is not an error; it
// yields the CitationNotFound sentinel.
func fetchCitation(ctx context.Context, client *http.Client, id string, cfg types.HTTPConfig) (string, error) {
	params := url.Values{
		"db": {"pmc"},
		"id": {strings.TrimSpace(id)},
	}
	if cfg.APIKey != "" {
		params.Set("api_key", cfg.APIKey)
	}
	reqURL := httputil.RequestURL(cfg.ProxyBaseURL, efetchBase+"?"+params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("efetch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("efetch returned HTTP %d", resp.StatusCode)
	}

	var set articleSet
	if err := xml.NewDecoder(resp.Body).Decode(&set); err != nil {
		return "", fmt.Errorf("parsing efetch response: %w", err)
	}

	if len(set.Articles) == 0 {
		return CitationNotFound, nil
	}
	title := strings.TrimSpace(set.Articles[0].Title)
	if title == "" {
		return CitationNotFound, nil
	}
	return title, nil
}
