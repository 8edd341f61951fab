package container_test

import (
	"testing"

	"github.com/rohmanhakim/docscrawler/pkg/container"
)

func TestSet_AddHasRemove(t *testing.T) {
	s := container.NewSet[string]("a", "b")
	if !s.Has("a") || !s.Has("b") {
		t.Fatal("expected initial members present")
	}
	s.Add("c")
	if !s.Has("c") {
		t.Fatal("expected c present after Add")
	}
	s.Remove("b")
	if s.Has("b") {
		t.Fatal("expected b absent after Remove")
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
}

func TestSet_Values(t *testing.T) {
	s := container.NewSet[int](1, 2, 3)
	values := s.Values()
	if len(values) != 3 {
		t.Fatalf("Values() len = %d, want 3", len(values))
	}
}
