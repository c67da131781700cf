package pmc

import (
	"io"

	"go.yaml.in/yaml/v3"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names follow the CSL-YAML schema so that output is
// consumable by Pandoc and reference managers.
type CSLItem struct {
	ID    string `yaml:"id"`
	Type  string `yaml:"type"`
	Title string `yaml:"title"`
	URL   string `yaml:"URL,omitempty"`
}

// FormatCSL writes the session's records as a CSL-YAML list to w.
func FormatCSL(s *Session, w io.Writer) error {
	items := make([]CSLItem, len(s.Records))
	for i, r := range s.Records {
		items[i] = CSLItem{
			ID:    r.PMCID,
			Type:  "article-journal",
			Title: r.Citation,
			URL:   r.DownloadURL,
		}
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}
