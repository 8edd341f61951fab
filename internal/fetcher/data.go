package fetcher

import (
	"net/url"
	"time"

	"github.com/rohmanhakim/docscrawler/pkg/failure"
)

// FetchOutcome is the result of fetching one URL: either HTML bytes or
// a classified error, never both. FetchMany returns one FetchOutcome
// per input URL, index-aligned with the input slice.
type FetchOutcome struct {
	URL         url.URL
	HTML        []byte
	ContentType string
	Transport   string // "http" or "browser"
	FetchedAt   time.Time
	Err         failure.ClassifiedError
}

func (o FetchOutcome) OK() bool {
	return o.Err == nil
}
