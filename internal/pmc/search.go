// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pmc queries the NCBI Entrez API for PubMed Central records: paged
// author search plus per-record citation enrichment.
package pmc

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/pmc-fetch/internal/httputil"
	"github.com/pdiddy/pmc-fetch/pkg/types"
)

// esearchBase is the Entrez search endpoint. Declared as a var so tests can
// substitute an httptest server.
var esearchBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"

// DefaultPageSize is the number of identifiers requested per search page.
const DefaultPageSize = 20

// esearch XML structures.
type esearchResult struct {
	Count int      `xml:"Count"`
	IDs   []string `xml:"IdList>Id"`
}

// SearchByAuthor walks esearch result pages for an author query, enriching
// every identifier in page order through FetchRecordDetails, and returns the
// completed session. Pages are fetched strictly in increasing offset order
// and enrichment within a page is sequential, so the record sequence
// preserves the remote-assigned ranking exactly.
//
// A whitespace-only author is valid and yields an empty done session without
// touching the network. A page-fetch failure terminates the traversal: the
// returned error (also recorded in Session.Err) embeds the HTTP status, and
// the session keeps the records accumulated before the failing page.
// Per-record enrichment failures never abort the traversal; they degrade to
// sentinel citations.
func SearchByAuthor(ctx context.Context, client *http.Client, author string, cfg types.SearchConfig, w io.Writer) (*Session, error) {
	author = strings.TrimSpace(author)
	session := &Session{Query: author, State: StateIdle}
	if author == "" {
		session.State = StateDone
		return session, nil
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	term := fmt.Sprintf("%q[AUTH]", author)

	for offset := 0; ; offset += pageSize {
		session.State = StateFetchingPage
		page, err := fetchPage(ctx, client, term, offset, pageSize, cfg)
		if err != nil {
			err = fmt.Errorf("failed to fetch articles: %w", err)
			session.State = StateFailed
			session.Err = err.Error()
			return session, err
		}
		session.PagesFetched++

		session.State = StateAggregating
		for _, id := range page.IDs {
			session.Records = append(session.Records,
				FetchRecordDetails(ctx, client, id, cfg.HTTPConfig, w))
		}

		if !hasMore(offset, len(page.IDs), pageSize, page.Count) {
			break
		}
	}

	session.State = StateDone
	return session, nil
}

// hasMore decides whether another page should be fetched. The esearch Count
// total is authoritative when present. Without it a full page is assumed
// non-final, so a final page that coincidentally matches the page size costs
// one harmless empty extra request.
func hasMore(offset, got, pageSize, count int) bool {
	if got == 0 {
		return false
	}
	if count > 0 {
		return offset+got < count
	}
	return got == pageSize
}

// fetchPage issues one esearch request at the given offset.
func fetchPage(ctx context.Context, client *http.Client, term string, offset, pageSize int, cfg types.SearchConfig) (*esearchResult, error) {
	params := url.Values{
		"db":         {"pmc"},
		"term":       {term},
		"retmax":     {strconv.Itoa(pageSize)},
		"retstart":   {strconv.Itoa(offset)},
		"usehistory": {"y"},
	}
	if cfg.APIKey != "" {
		params.Set("api_key", cfg.APIKey)
	}
	reqURL := httputil.RequestURL(cfg.ProxyBaseURL, esearchBase+"?"+params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("esearch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("esearch returned HTTP %d", resp.StatusCode)
	}

	var page esearchResult
	if err := xml.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}
	return &page, nil
}

// FormatTable writes the session's records as a human-readable table to w.
func FormatTable(s *Session, w io.Writer) {
	if len(s.Records) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-12s  %s\n", "Rank", "PMCID", "Citation")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for i, r := range s.Records {
		citation := r.Citation
		if len(citation) > 60 {
			citation = citation[:57] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-12s  %s\n", i+1, r.PMCID, citation)
	}

	fmt.Fprintf(w, "\n%d results (%d pages)\n", len(s.Records), s.PagesFetched)
}

// FormatJSON writes the session's records as indented JSON to w.
func FormatJSON(s *Session, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.Records)
}
