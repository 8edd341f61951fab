package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rohmanhakim/docscrawler/internal/manifest"
	"github.com/rohmanhakim/docscrawler/internal/metadata"
)

func TestStore_Load_MissingFileReturnsEmpty(t *testing.T) {
	s := manifest.NewStore(metadata.NoopRecorder{})
	m := s.Load(t.TempDir())
	if len(m.Visited) != 0 {
		t.Errorf("expected empty manifest, got %v", m.Visited)
	}
}

func TestStore_Load_CorruptFileReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "urls.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	s := manifest.NewStore(metadata.NoopRecorder{})
	m := s.Load(dir)
	if len(m.Visited) != 0 {
		t.Errorf("expected empty manifest for corrupt file, got %v", m.Visited)
	}
}

func TestStore_SaveThenLoad_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	s := manifest.NewStore(metadata.NoopRecorder{})

	want := manifest.Manifest{Visited: []string{"https://docs.example.com/a", "https://docs.example.com/b"}}
	if err := s.Save(dir, want); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	got := s.Load(dir)
	if len(got.Visited) != 2 {
		t.Fatalf("expected 2 visited URLs, got %d", len(got.Visited))
	}
	if got.Visited[0] != want.Visited[0] || got.Visited[1] != want.Visited[1] {
		t.Errorf("Load() = %v, want %v", got.Visited, want.Visited)
	}
}

func TestStore_Save_DeduplicatesPreservingOrder(t *testing.T) {
	dir := t.TempDir()
	s := manifest.NewStore(metadata.NoopRecorder{})

	in := manifest.Manifest{Visited: []string{"https://a", "https://b", "https://a"}}
	if err := s.Save(dir, in); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	got := s.Load(dir)
	if len(got.Visited) != 2 {
		t.Fatalf("expected dedup to 2 entries, got %v", got.Visited)
	}
}
