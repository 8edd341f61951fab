package container_test

import (
	"testing"

	"github.com/rohmanhakim/docscrawler/pkg/container"
)

func TestFIFOQueue_PushPopFrontOrder(t *testing.T) {
	q := container.NewFIFOQueue[string]()
	q.Push("a")
	q.Push("b")
	q.Push("c")

	batch := q.PopFront(2)
	if len(batch) != 2 || batch[0] != "a" || batch[1] != "b" {
		t.Fatalf("PopFront(2) = %v, want [a b]", batch)
	}
	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", q.Len())
	}
}

func TestFIFOQueue_PopFrontMoreThanAvailable(t *testing.T) {
	q := container.NewFIFOQueue[int](1, 2)
	batch := q.PopFront(5)
	if len(batch) != 2 {
		t.Fatalf("PopFront(5) on 2-item queue = %v, want len 2", batch)
	}
	if !q.Empty() {
		t.Fatal("expected queue empty after draining")
	}
}

func TestFIFOQueue_Snapshot(t *testing.T) {
	q := container.NewFIFOQueue[int](1, 2, 3)
	snap := q.Snapshot()
	q.PopFront(1)
	if len(snap) != 3 {
		t.Fatalf("Snapshot() len = %d, want 3 (unaffected by later PopFront)", len(snap))
	}
}
