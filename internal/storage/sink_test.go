package storage_test

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/rohmanhakim/docscrawler/internal/metadata"
	"github.com/rohmanhakim/docscrawler/internal/storage"
)

func TestLocalSink_Write_Success(t *testing.T) {
	dir := t.TempDir()
	sink := storage.NewLocalSink(metadata.NoopRecorder{})

	u, _ := url.Parse("https://docs.example.com/guide/intro")
	result, err := sink.Write(dir, *u, []byte("# Intro\n"))
	if err != nil {
		t.Fatalf("Write() returned error: %v", err)
	}
	if result.Filename() != "docs.example.com_guide_intro.md" {
		t.Errorf("Filename() = %q, want docs.example.com_guide_intro.md", result.Filename())
	}

	contents, readErr := os.ReadFile(filepath.Join(dir, result.Filename()))
	if readErr != nil {
		t.Fatalf("failed to read written file: %v", readErr)
	}
	if string(contents) != "# Intro\n" {
		t.Errorf("file contents = %q, want %q", string(contents), "# Intro\n")
	}
}

func TestLocalSink_Write_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	sink := storage.NewLocalSink(metadata.NoopRecorder{})
	u, _ := url.Parse("https://docs.example.com/guide/intro")

	if _, err := sink.Write(dir, *u, []byte("old")); err != nil {
		t.Fatalf("first Write() returned error: %v", err)
	}
	if _, err := sink.Write(dir, *u, []byte("new")); err != nil {
		t.Fatalf("second Write() returned error: %v", err)
	}

	contents, err := os.ReadFile(filepath.Join(dir, "docs.example.com_guide_intro.md"))
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(contents) != "new" {
		t.Errorf("expected overwritten contents %q, got %q", "new", string(contents))
	}
}

func TestLocalSink_Write_CreatesCollectionDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "collection")
	sink := storage.NewLocalSink(metadata.NoopRecorder{})
	u, _ := url.Parse("https://docs.example.com/")

	if _, err := sink.Write(dir, *u, []byte("x")); err != nil {
		t.Fatalf("Write() returned error: %v", err)
	}
	if _, statErr := os.Stat(dir); statErr != nil {
		t.Errorf("expected collection dir to be created: %v", statErr)
	}
}
