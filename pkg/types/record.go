// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pmc-fetch pipeline.
package types

// Record represents one PMC bibliographic record after enrichment. Every
// field is always populated: when the detail lookup fails the citation holds
// a sentinel string instead of being empty, so downstream rendering and
// download naming never have to branch on missing data.
type Record struct {
	// PMCID is the canonical PubMed Central identifier (e.g. "PMC123456").
	PMCID string `json:"pmcid" yaml:"pmcid"`

	// Citation is the article title extracted from the efetch response, or
	// a sentinel ("Citation not found", "Error fetching citation").
	Citation string `json:"citation" yaml:"citation"`

	// DownloadURL is the PDF endpoint for this record. It is derived from
	// PMCID alone and is valid even when enrichment failed.
	DownloadURL string `json:"download_url" yaml:"download_url"`
}
