// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestURL(t *testing.T) {
	tests := []struct {
		name      string
		proxyBase string
		target    string
		want      string
	}{
		{
			name:      "no proxy",
			proxyBase: "",
			target:    "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi",
			want:      "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi",
		},
		{
			name:      "proxy without trailing slash",
			proxyBase: "https://proxy.example.com",
			target:    "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC1/pdf/",
			want:      "https://proxy.example.com/https://www.ncbi.nlm.nih.gov/pmc/articles/PMC1/pdf/",
		},
		{
			name:      "proxy with trailing slash",
			proxyBase: "https://proxy.example.com/",
			target:    "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC1/pdf/",
			want:      "https://proxy.example.com/https://www.ncbi.nlm.nih.gov/pmc/articles/PMC1/pdf/",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RequestURL(tt.proxyBase, tt.target))
		})
	}
}

func TestUnlockURL(t *testing.T) {
	assert.Equal(t, "", UnlockURL(""))
	assert.Equal(t, "https://proxy.example.com/corsdemo", UnlockURL("https://proxy.example.com"))
	assert.Equal(t, "https://proxy.example.com/corsdemo", UnlockURL("https://proxy.example.com/"))
}
