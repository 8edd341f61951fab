package extractor

import (
	"fmt"

	"github.com/rohmanhakim/docscrawler/pkg/failure"
)

type ExtractionErrorCause string

const (
	ErrCauseNotHTML   ExtractionErrorCause = "not html"
	ErrCauseNoContent ExtractionErrorCause = "no content"
)

// ExtractionError classifies an extraction failure; its Severity is
// always Recoverable. Extract does not return it: Extract records its
// failures through the MetadataSink and hands the engine a PageData
// with empty Markdown instead.
type ExtractionError struct {
	Message string
	Cause   ExtractionErrorCause
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error: %s: %s", e.Cause, e.Message)
}

func (e *ExtractionError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}
