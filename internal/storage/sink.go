// Package storage persists accepted pages as Markdown files under a
// per-collection directory. Filenames are derived deterministically
// from the canonical URL (host+path, unsafe characters replaced), not
// content-hashed: a human should be able to tell which page a file
// holds just by reading its name. Writes are overwrite-safe — rerunning
// a crawl over the same collection refreshes pages it revisits.
package storage

import (
	"net/url"
	"time"

	"github.com/rohmanhakim/docscrawler/internal/metadata"
	"github.com/rohmanhakim/docscrawler/pkg/failure"
	"github.com/rohmanhakim/docscrawler/pkg/fileutil"
	"github.com/rohmanhakim/docscrawler/pkg/urlutil"
)

// Sink is the interface the engine writes accepted pages through.
type Sink interface {
	Write(collectionDir string, canonicalURL url.URL, markdown []byte) (WriteResult, failure.ClassifiedError)
}

type LocalSink struct {
	metadataSink metadata.MetadataSink
}

func NewLocalSink(metadataSink metadata.MetadataSink) *LocalSink {
	return &LocalSink{metadataSink: metadataSink}
}

var _ Sink = (*LocalSink)(nil)

func (s *LocalSink) Write(collectionDir string, canonicalURL url.URL, markdown []byte) (WriteResult, failure.ClassifiedError) {
	filename := urlutil.DeriveFilename(canonicalURL)

	if err := fileutil.WriteFile(collectionDir, filename, markdown); err != nil {
		storageErr := &StorageError{
			Message: err.Error(),
			Cause:   ErrCauseWriteFailure,
			Path:    collectionDir,
		}
		s.metadataSink.RecordError(metadata.ErrorRecord{
			PackageName: "storage",
			Action:      "LocalSink.Write",
			Cause:       metadata.CauseStorageFailure,
			ErrorString: storageErr.Error(),
			ObservedAt:  time.Now(),
			Attrs: []metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, canonicalURL.String()),
				metadata.NewAttr(metadata.AttrWritePath, collectionDir),
			},
		})
		return WriteResult{}, storageErr
	}

	path := collectionDir + "/" + filename
	result := NewWriteResult(filename, path)
	s.metadataSink.RecordArtifact(metadata.ArtifactRecord{
		URL:  canonicalURL.String(),
		Path: path,
	})
	return result, nil
}
