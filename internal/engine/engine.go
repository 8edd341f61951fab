// Package engine owns the frontier and drives a single crawl run from
// seed to Summary: validate the seed, pop batches off the frontier,
// fetch them in parallel, extract and score each result in order, and
// expand accepted pages' links back into the frontier.
package engine

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rohmanhakim/docscrawler/internal/config"
	"github.com/rohmanhakim/docscrawler/internal/extractor"
	"github.com/rohmanhakim/docscrawler/internal/fetcher"
	"github.com/rohmanhakim/docscrawler/internal/manifest"
	"github.com/rohmanhakim/docscrawler/internal/metadata"
	"github.com/rohmanhakim/docscrawler/internal/storage"
	"github.com/rohmanhakim/docscrawler/internal/validator"
	"github.com/rohmanhakim/docscrawler/pkg/urlutil"
)

// BrowserFactory opens the single shared headless-browser session a
// run's Fetcher falls back to. Injectable so tests can swap in a
// session that never launches a real browser.
type BrowserFactory func(timeout time.Duration) (fetcher.BrowserSession, error)

// Engine ties every leaf component together for one crawl run. It
// holds no per-run state between calls to Run.
type Engine struct {
	extractor       *extractor.Extractor
	sink            storage.Sink
	manifestStore   *manifest.Store
	metadataSink    metadata.MetadataSink
	httpClient      *http.Client
	validatorConfig config.ValidatorConfig
	newBrowser      BrowserFactory
}

func New(
	e *extractor.Extractor,
	sink storage.Sink,
	manifestStore *manifest.Store,
	metadataSink metadata.MetadataSink,
	httpClient *http.Client,
	validatorConfig config.ValidatorConfig,
	newBrowser BrowserFactory,
) *Engine {
	return &Engine{
		extractor:       e,
		sink:            sink,
		manifestStore:   manifestStore,
		metadataSink:    metadataSink,
		httpClient:      httpClient,
		validatorConfig: validatorConfig,
		newBrowser:      newBrowser,
	}
}

// Run executes steps 1-7 of the crawl algorithm. On a rejected seed it
// returns a zero Summary and a human-readable reason, not an error:
// "this isn't documentation" is an expected outcome, not a failure.
func (e *Engine) Run(ctx context.Context, cfg config.CrawlConfig) (Summary, string, error) {
	seedURL, err := normalizeSeed(cfg.SeedURL())
	if err != nil {
		return Summary{}, "", fmt.Errorf("normalizing seed url: %w", err)
	}
	canonicalSeed := urlutil.Canonicalize(seedURL)

	valCfg := e.validatorConfig
	valCfg.RequestedVersion = cfg.Version()

	collectionDir := cfg.OutputDir() + "/" + cfg.CollectionName()
	priorManifest := e.manifestStore.Load(collectionDir)

	userAgent := cfg.UserAgent()
	if userAgent == "" {
		userAgent = fetcher.RandomUserAgent()
	}

	ok, reason := validator.ValidateSeed(e.httpClient, canonicalSeed, userAgent, valCfg)
	if !ok {
		return Summary{}, reason, nil
	}

	fr := newFrontier(canonicalSeed.String(), priorManifest.Visited)
	visited := append(append([]string{}, priorManifest.Visited...), canonicalSeed.String())

	browser, browserErr := e.newBrowser(cfg.BrowserTimeout())
	if browserErr != nil {
		e.metadataSink.RecordError(metadata.ErrorRecord{
			PackageName: "engine",
			Action:      "Run",
			Cause:       metadata.CauseUnknown,
			ErrorString: browserErr.Error(),
		})
		browser = nil
	}
	if browser != nil {
		defer browser.Close()
	}

	f := fetcher.New(e.metadataSink, cfg.FetchTimeout(), cfg.BrowserTimeout(), browser)

	pagesSaved := 0
	for pagesSaved < cfg.DepthBudget() && fr.toVisit.Len() > 0 {
		batch := fr.buildBatch(cfg.BatchSize())
		if len(batch) == 0 {
			break
		}

		batchURLs := make([]url.URL, len(batch))
		for i, candidate := range batch {
			u, parseErr := url.Parse(candidate)
			if parseErr != nil {
				continue
			}
			batchURLs[i] = *u
		}

		outcomes := f.FetchMany(ctx, batchURLs, userAgent)

		for i, outcome := range outcomes {
			if cfg.DepthBudget() != 1 && pagesSaved >= cfg.DepthBudget() {
				break
			}
			if !outcome.OK() {
				continue
			}

			current := batchURLs[i]
			page := e.extractor.Extract(current, outcome.HTML)

			if cfg.FollowLinks() {
				breakdown := validator.ScorePage(page, valCfg)
				e.expandLinks(fr, current, page, valCfg)
				if !breakdown.Verdict {
					continue
				}
			}

			visited = append(visited, batch[i])
			if _, writeErr := e.sink.Write(collectionDir, current, []byte(page.Markdown)); writeErr != nil {
				continue
			}
			if cfg.DepthBudget() != 1 {
				pagesSaved++
			}
		}
	}

	if saveErr := e.manifestStore.Save(collectionDir, manifest.Manifest{Visited: dedupStrings(visited)}); saveErr != nil {
		e.metadataSink.RecordError(metadata.ErrorRecord{
			PackageName: "engine",
			Action:      "Run",
			Cause:       metadata.CauseStorageFailure,
			ErrorString: saveErr.Error(),
		})
	}

	seen, toVisit, rejected := fr.summary()
	summary := Summary{
		Seen:       seen,
		ToVisit:    toVisit,
		Rejected:   rejected,
		PagesSaved: pagesSaved,
		PagesSeen:  len(seen),
		PagesRej:   len(rejected),
	}
	e.metadataSink.RecordFinalCrawlStats(metadata.CrawlStats{
		Collection: cfg.CollectionName(),
		PagesSaved: summary.PagesSaved,
		PagesSeen:  summary.PagesSeen,
		PagesRej:   summary.PagesRej,
	})

	return summary, "", nil
}

// expandLinks absolutizes and canonicalizes every raw href harvested
// from page, scores each one, and files it into the frontier's
// to_visit or rejected set. This runs even when the page itself is
// later rejected: link discovery is independent of whether the source
// page was worth keeping.
func (e *Engine) expandLinks(fr *frontier, source url.URL, page extractor.PageData, cfg config.ValidatorConfig) {
	for _, href := range page.Links {
		if href == "" {
			continue
		}
		absolute, err := urlutil.Absolutize(source, href)
		if err != nil {
			continue
		}
		canonical := urlutil.Canonicalize(absolute)
		if canonical.Path == "" && canonical.Host == "" {
			continue
		}
		candidate := canonical.String()

		if fr.seen.Has(candidate) || fr.toVisitSet.Has(candidate) || fr.rejected.Has(candidate) || fr.persistedSeen.Has(candidate) {
			continue
		}

		breakdown := validator.ScoreLink(source.String(), candidate, cfg)
		if breakdown.Verdict {
			fr.enqueue(candidate)
		} else {
			fr.reject(candidate)
		}
	}
}

func normalizeSeed(raw string) (url.URL, error) {
	withScheme := urlutil.EnsureScheme(raw)
	u, err := url.Parse(withScheme)
	if err != nil {
		return url.URL{}, err
	}
	return *u, nil
}

func dedupStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
