// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pmc

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pmc-fetch/pkg/types"
)

// ResultFile is the on-disk representation of a search and its records. A
// search can be saved to a file and fed to the download stage later without
// re-querying the API.
type ResultFile struct {
	Query   ResultQuery    `yaml:"query"`
	Config  ResultConfig   `yaml:"config"`
	Records []types.Record `yaml:"records"`
	Summary ResultSummary  `yaml:"summary"`
}

// ResultQuery stores the query that produced the records.
type ResultQuery struct {
	Author string `yaml:"author"`
}

// ResultConfig stores the search configuration that produced the records.
type ResultConfig struct {
	PageSize int `yaml:"page_size"`
}

// ResultSummary stores result statistics and a timestamp.
type ResultSummary struct {
	Total     int       `yaml:"total"`
	Pages     int       `yaml:"pages"`
	Error     string    `yaml:"error,omitempty"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteResultFile saves a completed session to a YAML file.
func WriteResultFile(path string, s *Session, cfg types.SearchConfig) error {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	rf := ResultFile{
		Query:   ResultQuery{Author: s.Query},
		Config:  ResultConfig{PageSize: pageSize},
		Records: s.Records,
		Summary: ResultSummary{
			Total:     len(s.Records),
			Pages:     s.PagesFetched,
			Error:     s.Err,
			Timestamp: time.Now(),
		},
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved result file from disk.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &rf, nil
}
