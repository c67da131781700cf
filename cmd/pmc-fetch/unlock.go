package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pmc-fetch/internal/httputil"
)

var unlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Print the relaying proxy's manual unlock page",
	Long: `Unlock prints the page where the relaying proxy grants temporary access.
Open it in a browser when proxied requests start being refused.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		proxy, _ := cmd.Flags().GetString("proxy")
		if proxy == "" {
			proxy = viper.GetString("proxy_base_url")
		}
		proxy = secretDefault("proxy-base-url", proxy)
		if proxy == "" {
			return fmt.Errorf("no proxy base URL configured")
		}
		fmt.Println(httputil.UnlockURL(proxy))
		return nil
	},
}

func init() {
	unlockCmd.Flags().String("proxy", "", "proxy base URL")

	rootCmd.AddCommand(unlockCmd)
}
