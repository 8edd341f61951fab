package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rohmanhakim/docscrawler/pkg/failure"
)

// GetFileExtension extracts the file extension from a path, or empty string if none.
func GetFileExtension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return strings.TrimPrefix(ext, ".")
}

// EnsureDir checks whether dir joined with path exists, creating it (and
// any missing parents) if not.
func EnsureDir(dir string, path ...string) failure.ClassifiedError {
	targetPath := append([]string{dir}, path...)

	joined := filepath.Join(targetPath...)
	if err := os.MkdirAll(joined, 0o755); err != nil {
		return &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCausePathError,
		}
	}
	return nil
}

// WriteFile writes contents to dir/name, creating dir if it does not
// already exist. A pre-existing file at the same path is overwritten
// silently — the crawl engine re-running over the same collection is
// expected to refresh pages it revisits.
func WriteFile(dir, name string, contents []byte) failure.ClassifiedError {
	if err := EnsureDir(dir); err != nil {
		return err
	}
	target := filepath.Join(dir, name)
	if err := os.WriteFile(target, contents, 0o644); err != nil {
		return &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCauseWriteError,
		}
	}
	return nil
}
