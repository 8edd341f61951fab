// Package config builds the two typed records the rest of the crawler
// depends on: CrawlConfig (run-level knobs, usually set from CLI flags)
// and ValidatorConfig (the scoring tables, loaded once from a JSON
// file). Neither is ever read from a loosely-typed map at call time —
// both are fully resolved at startup, matching the "config as a typed
// record built once" discipline the rest of the codebase follows.
package config

import (
	"fmt"
	"time"
)

// CrawlConfig holds the ambient settings of a single crawl run.
type CrawlConfig struct {
	collectionName string
	seedURL        string
	version        string
	followLinks    bool
	batchSize      int
	depthBudget    int
	outputDir      string
	fetchTimeout   time.Duration
	browserTimeout time.Duration
	userAgent      string
	configFilePath string
}

// WithDefault returns a CrawlConfig seeded with the defaults the
// distilled spec's run(params) signature implies: follow_links=true,
// batch_size=5, depth_budget=1.
func WithDefault(collectionName, seedURL string) *CrawlConfig {
	return &CrawlConfig{
		collectionName: collectionName,
		seedURL:        seedURL,
		followLinks:    true,
		batchSize:      5,
		depthBudget:    1,
		outputDir:      "data/collections",
		fetchTimeout:   10 * time.Second,
		browserTimeout: 15 * time.Second,
		userAgent:      "",
	}
}

func (c *CrawlConfig) WithVersion(v string) *CrawlConfig        { c.version = v; return c }
func (c *CrawlConfig) WithFollowLinks(v bool) *CrawlConfig      { c.followLinks = v; return c }
func (c *CrawlConfig) WithBatchSize(v int) *CrawlConfig         { c.batchSize = v; return c }
func (c *CrawlConfig) WithDepthBudget(v int) *CrawlConfig       { c.depthBudget = v; return c }
func (c *CrawlConfig) WithOutputDir(v string) *CrawlConfig      { c.outputDir = v; return c }
func (c *CrawlConfig) WithFetchTimeout(d time.Duration) *CrawlConfig {
	c.fetchTimeout = d
	return c
}
func (c *CrawlConfig) WithBrowserTimeout(d time.Duration) *CrawlConfig {
	c.browserTimeout = d
	return c
}
func (c *CrawlConfig) WithUserAgent(v string) *CrawlConfig { c.userAgent = v; return c }
func (c *CrawlConfig) WithConfigFilePath(v string) *CrawlConfig { c.configFilePath = v; return c }

// Build validates and freezes the config.
func (c *CrawlConfig) Build() (CrawlConfig, error) {
	if c.collectionName == "" {
		return CrawlConfig{}, fmt.Errorf("%w: collection name cannot be empty", ErrInvalidConfig)
	}
	if c.seedURL == "" {
		return CrawlConfig{}, fmt.Errorf("%w: seed url cannot be empty", ErrInvalidConfig)
	}
	if c.batchSize < 1 {
		return CrawlConfig{}, fmt.Errorf("%w: batch size must be >= 1", ErrInvalidConfig)
	}
	if c.depthBudget < 1 {
		return CrawlConfig{}, fmt.Errorf("%w: depth budget must be >= 1", ErrInvalidConfig)
	}
	return *c, nil
}

func (c CrawlConfig) CollectionName() string        { return c.collectionName }
func (c CrawlConfig) SeedURL() string                { return c.seedURL }
func (c CrawlConfig) Version() string                { return c.version }
func (c CrawlConfig) FollowLinks() bool              { return c.followLinks }
func (c CrawlConfig) BatchSize() int                 { return c.batchSize }
func (c CrawlConfig) DepthBudget() int               { return c.depthBudget }
func (c CrawlConfig) OutputDir() string              { return c.outputDir }
func (c CrawlConfig) FetchTimeout() time.Duration    { return c.fetchTimeout }
func (c CrawlConfig) BrowserTimeout() time.Duration  { return c.browserTimeout }
func (c CrawlConfig) UserAgent() string              { return c.userAgent }
func (c CrawlConfig) ConfigFilePath() string         { return c.configFilePath }
