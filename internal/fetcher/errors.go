package fetcher

import (
	"fmt"

	"github.com/rohmanhakim/docscrawler/pkg/failure"
)

type FetchErrorCause string

const (
	ErrCauseTimeout            FetchErrorCause = "timeout"
	ErrCauseNetworkFailure     FetchErrorCause = "network failure"
	ErrCauseReadBodyFailed     FetchErrorCause = "failed to read response body"
	ErrCauseContentTypeInvalid FetchErrorCause = "non-html content"
	ErrCauseRequestForbidden   FetchErrorCause = "forbidden"
	ErrCauseRequestClientError FetchErrorCause = "client error"
	ErrCauseRequestServerError FetchErrorCause = "server error"
	ErrCauseBrowserFailure     FetchErrorCause = "browser transport failure"
)

// FetchError classifies a single failed fetch attempt. There is no
// retry mechanism: a FetchError is always the final word on that URL
// for this run, so Severity is always Recoverable — the engine skips
// the URL and continues, it never aborts the crawl over one bad page.
type FetchError struct {
	Message string
	Cause   FetchErrorCause
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch error: %s: %s", e.Cause, e.Message)
}

func (e *FetchError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}
