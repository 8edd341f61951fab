package manifest

import (
	"fmt"

	"github.com/rohmanhakim/docscrawler/pkg/failure"
)

type ManifestErrorCause string

const (
	ErrCauseWriteFailure ManifestErrorCause = "write failed"
)

// ManifestError is always recoverable: a failure to persist the
// manifest does not unwind a completed crawl, it just means next run's
// persisted_seen set won't include this run's pages.
type ManifestError struct {
	Message string
	Cause   ManifestErrorCause
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("manifest error: %s: %s", e.Cause, e.Message)
}

func (e *ManifestError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}
