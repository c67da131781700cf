// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pmc-fetch/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "pmc-fetch/0.1"
	defaultOutputDir = "downloads"
)

// httpConfigFromFlags assembles shared HTTP settings from flags, the viper
// config file, and the secrets directory, in that order of precedence.
func httpConfigFromFlags(cmd *cobra.Command) types.HTTPConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = viper.GetString("api_key")
	}
	proxy, _ := cmd.Flags().GetString("proxy")
	if proxy == "" {
		proxy = viper.GetString("proxy_base_url")
	}

	return types.HTTPConfig{
		Timeout:      timeout,
		UserAgent:    defaultUserAgent,
		APIKey:       secretDefault("entrez-api-key", apiKey),
		ProxyBaseURL: secretDefault("proxy-base-url", proxy),
	}
}

func searchConfigFromFlags(cmd *cobra.Command) types.SearchConfig {
	pageSize, _ := cmd.Flags().GetInt("page-size")
	if pageSize == 0 {
		pageSize = viper.GetInt("page_size")
	}
	return types.SearchConfig{
		HTTPConfig: httpConfigFromFlags(cmd),
		PageSize:   pageSize,
	}
}

func downloadConfigFromFlags(cmd *cobra.Command) types.DownloadConfig {
	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = viper.GetDuration("download_delay")
	}
	if delay == 0 {
		delay = defaultDelay
	}

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency == 0 {
		concurrency = viper.GetInt("concurrency")
	}

	outDir, _ := cmd.Flags().GetString("out-dir")
	if outDir == "" {
		outDir = viper.GetString("output_dir")
	}
	if outDir == "" {
		outDir = defaultOutputDir
	}

	return types.DownloadConfig{
		HTTPConfig:  httpConfigFromFlags(cmd),
		Delay:       delay,
		Concurrency: concurrency,
		OutputDir:   outDir,
	}
}
