package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/enrich-cli/internal/enrich"
	"github.com/sells-group/enrich-cli/internal/model"
	"github.com/sells-group/enrich-cli/internal/registry"
	"github.com/sells-group/enrich-cli/internal/resilience"
	"github.com/sells-group/enrich-cli/internal/scrape"
	"github.com/sells-group/enrich-cli/pkg/gemini"
)

var (
	enrichCSV         string
	enrichOutput      string
	enrichFieldsPath  string
	enrichContextPath string
	enrichURLField    string
	enrichBatchSize   int
	enrichWorkers     int
	enrichModel       string
	enrichContextURLs []string
	enrichSitemap     string
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich a CSV in concurrent, checkpointed batches",
	Long: `Reads a CSV, prompts the model for every row whose target fields are
still empty, and appends each completed batch to the output file before
starting the next one. Rows that are already enriched are skipped, so an
interrupted run can simply be restarted on its own output.

Examples:
  # Fill the fields described in fields.json
  enrich-cli enrich --csv leads.csv --output enriched.csv --fields fields.json

  # Scrape each row's Website column into the prompt
  enrich-cli enrich --csv leads.csv --fields fields.json --url-field Website

  # Seed every prompt with a domain's sitemap and a scraped page
  enrich-cli enrich --csv leads.csv --fields fields.json \
    --sitemap https://example.com --context-url https://example.com/about`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fields, err := registry.LoadFieldSpecFromFile(enrichFieldsPath)
		if err != nil {
			return eris.Wrap(err, "enrich: load field spec")
		}

		var ext model.ExternalContext
		if enrichContextPath != "" {
			ext, err = registry.LoadExternalContextFromFile(enrichContextPath)
			if err != nil {
				return eris.Wrap(err, "enrich: load external context")
			}
		}

		// Credential check happens here, before any batch work.
		client, err := gemini.NewClient(ctx)
		if err != nil {
			return err
		}

		scraper := scrape.NewTextScraper(
			scrape.WithTimeout(time.Duration(cfg.Scrape.TimeoutSecs)*time.Second),
			scrape.WithRateLimit(cfg.Scrape.RatePerSec),
			scrape.WithUserAgent(cfg.Scrape.UserAgent),
		)

		// Run-level context preparation, before the batch loop starts.
		if enrichSitemap != "" {
			enrich.FindSubPages(ctx, scrape.NewSitemapLister(logger), &ext, enrichSitemap, logger)
		}
		if len(enrichContextURLs) > 0 {
			enrich.ScrapeURLContent(ctx, scraper, &ext, enrichContextURLs, logger)
		}

		modelName := enrichModel
		if modelName == "" {
			modelName = cfg.Gemini.Model
		}
		urlField := enrichURLField
		if urlField == "" {
			urlField = cfg.Enrich.URLField
		}
		batchSize := enrichBatchSize
		if batchSize <= 0 {
			batchSize = cfg.Enrich.BatchSize
		}
		workers := enrichWorkers
		if workers <= 0 {
			workers = cfg.Enrich.MaxWorkers
		}
		output := enrichOutput
		if output == "" {
			output = enrichCSV
		}

		invoker := enrich.NewInvoker(client, modelName,
			resilience.FromConfig(cfg.Gemini.MaxRetries, cfg.Gemini.RetryDelaySecs), logger)
		proc := enrich.NewProcessor(fields, invoker, scraper, urlField, ext, logger)
		orch := enrich.NewOrchestrator(enrich.Config{
			CSVPath:    enrichCSV,
			OutputPath: output,
			BatchSize:  batchSize,
			MaxWorkers: workers,
		}, proc, logger)

		logger.Info("starting enrichment",
			zap.String("csv", enrichCSV),
			zap.String("output", output),
			zap.String("model", modelName),
			zap.Int("fields", len(fields)),
		)

		return orch.Run(ctx)
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichCSV, "csv", "", "path to the source CSV (required)")
	enrichCmd.Flags().StringVar(&enrichOutput, "output", "", "path for the enriched CSV (default: overwrite source)")
	enrichCmd.Flags().StringVar(&enrichFieldsPath, "fields", "", "path to the field spec JSON (required)")
	enrichCmd.Flags().StringVar(&enrichContextPath, "context", "", "path to an external context JSON")
	enrichCmd.Flags().StringVar(&enrichURLField, "url-field", "", "column holding a per-row URL to scrape into the prompt")
	enrichCmd.Flags().IntVar(&enrichBatchSize, "batch-size", 0, "rows per checkpointed batch (default from config)")
	enrichCmd.Flags().IntVar(&enrichWorkers, "workers", 0, "concurrent rows per batch (default from config)")
	enrichCmd.Flags().StringVar(&enrichModel, "model", "", "model name (default from config)")
	enrichCmd.Flags().StringSliceVar(&enrichContextURLs, "context-url", nil, "URL to scrape into every prompt's context (repeatable)")
	enrichCmd.Flags().StringVar(&enrichSitemap, "sitemap", "", "domain whose sitemap pages seed the context")
	_ = enrichCmd.MarkFlagRequired("csv")
	_ = enrichCmd.MarkFlagRequired("fields")
	rootCmd.AddCommand(enrichCmd)
}
