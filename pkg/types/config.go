package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pmc-fetch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// APIKey is the NCBI Entrez api_key parameter. Optional; raises the
	// permitted request rate when set.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// ProxyBaseURL, when set, is prefixed to every request URL. Used to
	// route traffic through a relaying proxy; empty means direct access.
	ProxyBaseURL string `json:"proxy_base_url,omitempty" yaml:"proxy_base_url,omitempty"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// PageSize is the number of identifiers requested per search page
	// (retmax, default 20).
	PageSize int `json:"page_size" yaml:"page_size"`
}

// DownloadConfig holds settings for the download stage.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline"`

	// Delay is the minimum spacing between consecutive download starts
	// (default 1s).
	Delay time.Duration `json:"delay" yaml:"delay"`

	// Concurrency bounds the number of in-flight downloads (default 4).
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// OutputDir is the directory PDFs are saved into (contains metadata/).
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}
