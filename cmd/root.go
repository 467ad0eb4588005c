package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig     string
	flagLang       string
	flagAPIURL     string
	flagNoColor    bool
	flagCollection string
)

var rootCmd = &cobra.Command{
	Use:   "topsearch",
	Short: "Terminal client for the TopSearch article API",
	Long: `topsearch browses article collections served by the TopSearch API.

Pick a collection, optionally narrow it to a year or a year range, or run a
similarity search, then read summaries and open PDFs from the result list.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagLang, "lang", "", "message language (fr, en)")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "override the search service base URL")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable coloured output")

	rootCmd.Flags().StringVar(&flagCollection, "collection", "", "collection to select on startup")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(articlesCmd)
	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(statsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("topsearch %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
