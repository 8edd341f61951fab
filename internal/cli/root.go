// Package cmd wires the crawler's command-line surface: cobra flags in,
// a built config.CrawlConfig out, then the engine does the rest.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/rohmanhakim/docscrawler/internal/build"
	"github.com/rohmanhakim/docscrawler/internal/config"
	"github.com/rohmanhakim/docscrawler/internal/engine"
	"github.com/rohmanhakim/docscrawler/internal/extractor"
	"github.com/rohmanhakim/docscrawler/internal/fetcher"
	"github.com/rohmanhakim/docscrawler/internal/manifest"
	"github.com/rohmanhakim/docscrawler/internal/metadata"
	"github.com/rohmanhakim/docscrawler/internal/storage"
)

var (
	seedURL        string
	collectionName string
	version        string
	followLinks    bool
	batchSize      int
	depthBudget    int
	configFile     string
	outputDir      string
	logFormat      string
)

var rootCmd = &cobra.Command{
	Use:   "docscrawler",
	Short: "A focused documentation crawler.",
	Long: `docscrawler discovers a software project's documentation by following
links from a seed URL, converts accepted pages to Markdown, and persists
them plus a visited-URL manifest under a named collection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedURL == "" {
			return fmt.Errorf("--seed-url is required")
		}
		if collectionName == "" {
			return fmt.Errorf("--collection is required")
		}

		cfg, err := InitConfigWithError()
		if err != nil {
			return err
		}

		logger := newLogger(logFormat)
		recorder := metadata.NewRecorder(logger)

		valCfg, err := config.LoadValidatorConfig(cfg.ConfigFilePath())
		if err != nil {
			return fmt.Errorf("loading validator config: %w", err)
		}

		eng := engine.New(
			extractor.New(recorder),
			storage.NewLocalSink(recorder),
			manifest.NewStore(recorder),
			recorder,
			&http.Client{Timeout: cfg.FetchTimeout()},
			valCfg,
			fetcher.NewBrowserSession,
		)

		summary, reason, err := eng.Run(context.Background(), cfg)
		if err != nil {
			return err
		}
		if reason != "" {
			fmt.Fprintf(os.Stdout, "seed rejected: %s\n", reason)
			return nil
		}

		fmt.Fprintf(os.Stdout, "pages saved: %d, seen: %d, rejected: %d, remaining: %d\n",
			summary.PagesSaved, summary.PagesSeen, summary.PagesRej, len(summary.ToVisit))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(os.Stdout, build.FullVersion())
		return nil
	},
}

func newLogger(format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVar(&seedURL, "seed-url", "", "starting URL to crawl")
	rootCmd.PersistentFlags().StringVar(&collectionName, "collection", "", "name of the collection to write under data/collections/<name>")
	rootCmd.PersistentFlags().StringVar(&version, "version", "", "restrict link discovery to this software version")
	rootCmd.PersistentFlags().BoolVar(&followLinks, "follow-links", true, "discover and enqueue outbound links")
	rootCmd.PersistentFlags().IntVar(&batchSize, "batch-size", 5, "number of URLs fetched per batch")
	rootCmd.PersistentFlags().IntVar(&depthBudget, "depth-budget", 1, "number of pages to save before stopping (1 crawls the frontier to exhaustion)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "path to a config_urls.json overriding the scoring defaults")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "data/collections", "root directory collections are written under")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log output format: text or json")
}

// InitConfig builds a CrawlConfig from the parsed flags, exiting the
// process on failure. Kept distinct from InitConfigWithError so tests
// can exercise the error path without os.Exit.
func InitConfig() config.CrawlConfig {
	cfg, err := InitConfigWithError()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// InitConfigWithError builds a CrawlConfig from the parsed flags,
// returning any construction error instead of exiting.
func InitConfigWithError() (config.CrawlConfig, error) {
	builder := config.WithDefault(collectionName, seedURL).
		WithVersion(version).
		WithFollowLinks(followLinks).
		WithConfigFilePath(configFile)

	if batchSize > 0 {
		builder = builder.WithBatchSize(batchSize)
	}
	if depthBudget > 0 {
		builder = builder.WithDepthBudget(depthBudget)
	}
	if outputDir != "" {
		builder = builder.WithOutputDir(outputDir)
	}

	return builder.Build()
}

// SetSeedURLForTest and SetCollectionForTest let tests drive
// InitConfigWithError without going through cobra's flag parser.
func SetSeedURLForTest(v string)    { seedURL = v }
func SetCollectionForTest(v string) { collectionName = v }

// ResetFlags restores every package-level flag variable to its flag
// default. Used between test cases so cobra's shared flag state doesn't
// leak across them.
func ResetFlags() {
	seedURL = ""
	collectionName = ""
	version = ""
	followLinks = true
	batchSize = 5
	depthBudget = 1
	configFile = ""
	outputDir = "data/collections"
	logFormat = "text"
}
