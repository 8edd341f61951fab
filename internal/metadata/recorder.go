// Package metadata implements observational crawl logging.
//
// Metadata Collected
//   - Fetch timestamps, transport used, HTTP status codes
//   - Classified errors, with a canonical ErrorCause for filtering
//   - Written artifacts (Markdown paths)
//   - Final crawl statistics
//
// Recording is structured (log/slog) and strictly observational: nothing
// in this package may be read back by the engine to make a decision.
package metadata

import (
	"log/slog"
	"time"
)

// MetadataSink is the interface the rest of the crawler depends on so
// that fetcher, extractor, validator, and storage never import a
// concrete logging backend directly.
type MetadataSink interface {
	RecordFetch(FetchEvent)
	RecordError(ErrorRecord)
	RecordArtifact(ArtifactRecord)
	RecordFinalCrawlStats(CrawlStats)
}

// Recorder is the slog-backed MetadataSink used in production. It holds
// no crawl state: every method call is one structured log line.
type Recorder struct {
	log *slog.Logger
}

var _ MetadataSink = (*Recorder)(nil)

// NewRecorder wraps logger. A nil logger falls back to slog.Default().
func NewRecorder(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{log: logger}
}

func (r *Recorder) RecordFetch(e FetchEvent) {
	r.log.Info("fetch",
		slog.String("url", e.FetchURL),
		slog.String("transport", e.Transport),
		slog.Int("status", e.HTTPStatus),
		slog.Duration("duration", e.Duration),
		slog.String("content_type", e.ContentType),
	)
}

func (r *Recorder) RecordError(e ErrorRecord) {
	if e.ObservedAt.IsZero() {
		e.ObservedAt = time.Now()
	}
	attrs := make([]any, 0, 4+len(e.Attrs)*2)
	attrs = append(attrs,
		slog.String("package", e.PackageName),
		slog.String("action", e.Action),
		slog.String("cause", e.Cause.String()),
		slog.String("error", e.ErrorString),
	)
	for _, a := range e.Attrs {
		attrs = append(attrs, slog.String(string(a.Key), a.Value))
	}
	r.log.Error("crawl error", attrs...)
}

func (r *Recorder) RecordArtifact(a ArtifactRecord) {
	r.log.Info("artifact written",
		slog.String("url", a.URL),
		slog.String("path", a.Path),
	)
}

func (r *Recorder) RecordFinalCrawlStats(s CrawlStats) {
	r.log.Info("crawl finished",
		slog.String("collection", s.Collection),
		slog.Int("pages_saved", s.PagesSaved),
		slog.Int("pages_seen", s.PagesSeen),
		slog.Int("pages_rejected", s.PagesRej),
		slog.Int("errors", s.TotalErrors),
		slog.Duration("duration", s.Duration),
	)
}

// NoopRecorder discards every record. Useful in tests that want a real
// MetadataSink without asserting on log output.
type NoopRecorder struct{}

var _ MetadataSink = NoopRecorder{}

func (NoopRecorder) RecordFetch(FetchEvent)             {}
func (NoopRecorder) RecordError(ErrorRecord)             {}
func (NoopRecorder) RecordArtifact(ArtifactRecord)       {}
func (NoopRecorder) RecordFinalCrawlStats(CrawlStats)    {}
