package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/enrich-cli/internal/scrape"
)

var sitemapDomain string

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Print the unique page URLs for a domain",
	Long:  "Fetches the domain's sitemap (following one level of sitemap-index nesting) and prints the deduplicated page list. Useful for previewing what --sitemap would feed into prompts.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		lister := scrape.NewSitemapLister(logger)
		for _, page := range lister.Pages(cmd.Context(), sitemapDomain) {
			fmt.Println(page)
		}
		return nil
	},
}

func init() {
	sitemapCmd.Flags().StringVar(&sitemapDomain, "domain", "", "domain URL, e.g. https://example.com (required)")
	_ = sitemapCmd.MarkFlagRequired("domain")
	rootCmd.AddCommand(sitemapCmd)
}
