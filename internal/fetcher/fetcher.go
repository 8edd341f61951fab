// Package fetcher retrieves HTML for a batch of URLs using a cheap
// net/http client first, falling back to a shared headless-browser
// session when the plain client fails or returns non-HTML content.
//
// Fetch Semantics
//   - Only HTML responses are handed to the extractor; everything else
//     is a classified, final FetchError — there is no retry mechanism.
//   - The browser fallback is one shared page, serialized across the
//     batch, so it never competes with itself for CPU/memory.
//   - Every attempt, successful or not, is recorded through MetadataSink.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rohmanhakim/docscrawler/internal/metadata"
	"github.com/rohmanhakim/docscrawler/pkg/failure"
)

// Fetcher is safe for concurrent use except for its browser fallback,
// which the embedded BrowserSession itself serializes.
type Fetcher struct {
	httpClient     *http.Client
	browser        BrowserSession
	metadataSink   metadata.MetadataSink
	fetchTimeout   time.Duration
	browserTimeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.httpClient = c }
}

func New(metadataSink metadata.MetadataSink, fetchTimeout, browserTimeout time.Duration, browser BrowserSession, opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient:     &http.Client{Timeout: fetchTimeout},
		browser:        browser,
		metadataSink:   metadataSink,
		fetchTimeout:   fetchTimeout,
		browserTimeout: browserTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchMany fetches every url in urls, returning one FetchOutcome per
// input, index-aligned. HTTP fetches within the batch run concurrently;
// browser fallbacks are serialized by the shared BrowserSession.
func (f *Fetcher) FetchMany(ctx context.Context, urls []url.URL, userAgent string) []FetchOutcome {
	outcomes := make([]FetchOutcome, len(urls))

	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u url.URL) {
			defer wg.Done()
			outcomes[i] = f.fetchOne(ctx, u, userAgent)
		}(i, u)
	}
	wg.Wait()

	return outcomes
}

func (f *Fetcher) fetchOne(ctx context.Context, u url.URL, userAgent string) FetchOutcome {
	start := time.Now()

	outcome := f.fetchHTTP(ctx, u, userAgent)
	f.record(outcome, start)
	if outcome.OK() || f.browser == nil {
		return outcome
	}

	browserStart := time.Now()
	browserOutcome := f.fetchBrowser(ctx, u)
	f.record(browserOutcome, browserStart)
	return browserOutcome
}

func (f *Fetcher) fetchHTTP(ctx context.Context, u url.URL, userAgent string) FetchOutcome {
	reqCtx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u.String(), nil)
	if err != nil {
		return FetchOutcome{URL: u, Transport: "http", Err: &FetchError{
			Message: err.Error(), Cause: ErrCauseNetworkFailure,
		}}
	}
	for k, v := range requestHeaders(userAgent) {
		req.Header.Set(k, v)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return FetchOutcome{URL: u, Transport: "http", Err: &FetchError{
			Message: err.Error(), Cause: ErrCauseNetworkFailure,
		}}
	}
	defer resp.Body.Close()

	if failed := classifyStatus(resp.StatusCode); failed != nil {
		return FetchOutcome{URL: u, Transport: "http", Err: failed}
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTMLContent(contentType) {
		return FetchOutcome{URL: u, Transport: "http", ContentType: contentType, Err: &FetchError{
			Message: fmt.Sprintf("content-type %q", contentType), Cause: ErrCauseContentTypeInvalid,
		}}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FetchOutcome{URL: u, Transport: "http", Err: &FetchError{
			Message: err.Error(), Cause: ErrCauseReadBodyFailed,
		}}
	}

	return FetchOutcome{
		URL: u, HTML: body, ContentType: contentType,
		Transport: "http", FetchedAt: time.Now(),
	}
}

func (f *Fetcher) fetchBrowser(ctx context.Context, u url.URL) FetchOutcome {
	browserCtx, cancel := context.WithTimeout(ctx, f.browserTimeout)
	defer cancel()

	html, err := f.browser.Fetch(browserCtx, u.String())
	if err != nil {
		return FetchOutcome{URL: u, Transport: "browser", Err: &FetchError{
			Message: err.Error(), Cause: ErrCauseBrowserFailure,
		}}
	}
	return FetchOutcome{
		URL: u, HTML: []byte(html), ContentType: "text/html",
		Transport: "browser", FetchedAt: time.Now(),
	}
}

func classifyStatus(status int) *FetchError {
	switch {
	case status == 403:
		return &FetchError{Message: "access forbidden (403)", Cause: ErrCauseRequestForbidden}
	case status >= 500:
		return &FetchError{Message: fmt.Sprintf("server error: %d", status), Cause: ErrCauseRequestServerError}
	case status >= 400:
		return &FetchError{Message: fmt.Sprintf("client error: %d", status), Cause: ErrCauseRequestClientError}
	default:
		return nil
	}
}

func isHTMLContent(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return strings.Contains(contentType, "text/html") || strings.Contains(contentType, "application/xhtml")
}

func (f *Fetcher) record(o FetchOutcome, start time.Time) {
	status := 0
	if o.OK() {
		status = 200
	}
	f.metadataSink.RecordFetch(metadata.FetchEvent{
		FetchURL:    o.URL.String(),
		Transport:   o.Transport,
		HTTPStatus:  status,
		Duration:    time.Since(start),
		ContentType: o.ContentType,
	})
	if !o.OK() {
		var classified *FetchError
		cause := metadata.CauseUnknown
		if fe, ok := o.Err.(*FetchError); ok {
			classified = fe
			if classified.Cause == ErrCauseNetworkFailure || classified.Cause == ErrCauseTimeout {
				cause = metadata.CauseNetworkFailure
			} else if classified.Cause == ErrCauseContentTypeInvalid {
				cause = metadata.CauseContentInvalid
			}
		}
		f.metadataSink.RecordError(metadata.ErrorRecord{
			PackageName: "fetcher",
			Action:      "fetchOne",
			Cause:       cause,
			ErrorString: o.Err.Error(),
			ObservedAt:  time.Now(),
			Attrs:       []metadata.Attribute{metadata.NewAttr(metadata.AttrURL, o.URL.String())},
		})
	}
}

var _ failure.ClassifiedError = (*FetchError)(nil)
