// Package manifest persists, per collection, the set of URLs a crawl
// has visited across runs. Loading is tolerant: a missing or corrupt
// manifest file is treated as an empty manifest, never an error, so a
// fresh collection or a damaged file never blocks a crawl from
// starting. Saving is best-effort and pretty-printed for human review.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rohmanhakim/docscrawler/internal/metadata"
	"github.com/rohmanhakim/docscrawler/pkg/failure"
)

const fileName = "urls.json"

type Store struct {
	metadataSink metadata.MetadataSink
}

func NewStore(metadataSink metadata.MetadataSink) *Store {
	return &Store{metadataSink: metadataSink}
}

// Load reads <collectionDir>/urls.json, returning an empty Manifest
// (not an error) if the file is missing, unreadable, or not valid JSON.
func (s *Store) Load(collectionDir string) Manifest {
	path := filepath.Join(collectionDir, fileName)

	raw, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}
	}

	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		s.metadataSink.RecordError(metadata.ErrorRecord{
			PackageName: "manifest",
			Action:      "Store.Load",
			Cause:       metadata.CauseContentInvalid,
			ErrorString: err.Error(),
			ObservedAt:  time.Now(),
			Attrs:       []metadata.Attribute{metadata.NewAttr(metadata.AttrPath, path)},
		})
		return Manifest{}
	}
	return dedup(m)
}

// Save writes the manifest as pretty-printed JSON. It is best-effort:
// a failure is logged and returned for the caller's awareness, but the
// crawl's outcome (pages already written to disk) stands regardless.
func (s *Store) Save(collectionDir string, m Manifest) failure.ClassifiedError {
	m = dedup(m)

	if err := os.MkdirAll(collectionDir, 0o755); err != nil {
		return s.fail(collectionDir, err)
	}

	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return s.fail(collectionDir, err)
	}

	path := filepath.Join(collectionDir, fileName)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return s.fail(path, err)
	}
	return nil
}

func (s *Store) fail(path string, cause error) failure.ClassifiedError {
	err := &ManifestError{Message: cause.Error(), Cause: ErrCauseWriteFailure}
	s.metadataSink.RecordError(metadata.ErrorRecord{
		PackageName: "manifest",
		Action:      "Store.Save",
		Cause:       metadata.CauseStorageFailure,
		ErrorString: err.Error(),
		ObservedAt:  time.Now(),
		Attrs:       []metadata.Attribute{metadata.NewAttr(metadata.AttrPath, path)},
	})
	return err
}

// dedup removes duplicate URLs within Visited, preserving first-seen order.
func dedup(m Manifest) Manifest {
	seen := make(map[string]struct{}, len(m.Visited))
	out := make([]string, 0, len(m.Visited))
	for _, u := range m.Visited {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return Manifest{Visited: out}
}
