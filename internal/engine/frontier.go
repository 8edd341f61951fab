package engine

import "github.com/rohmanhakim/docscrawler/pkg/container"

// frontier is the crawl's bookkeeping: a strict-FIFO queue of
// canonical URLs still to visit, plus the membership sets that keep a
// URL from being enqueued, fetched, or scored more than once.
//
// toVisitSet mirrors toVisit's contents so membership checks during
// link discovery (one of the original implementation's four dedup
// checks) don't require a linear scan of the queue.
type frontier struct {
	toVisit       *container.FIFOQueue[string]
	toVisitSet    *container.Set[string]
	seen          *container.Set[string]
	rejected      *container.Set[string]
	persistedSeen *container.Set[string]
}

func newFrontier(seed string, persisted []string) *frontier {
	return &frontier{
		toVisit:       container.NewFIFOQueue(seed),
		toVisitSet:    container.NewSet(seed),
		seen:          container.NewSet[string](),
		rejected:      container.NewSet[string](),
		persistedSeen: container.NewSet(persisted...),
	}
}

// enqueue pushes u onto to_visit unless it's already seen, already
// rejected, already queued, or already persisted from a prior run.
func (fr *frontier) enqueue(u string) bool {
	if fr.seen.Has(u) || fr.rejected.Has(u) || fr.toVisitSet.Has(u) || fr.persistedSeen.Has(u) {
		return false
	}
	fr.toVisit.Push(u)
	fr.toVisitSet.Add(u)
	return true
}

func (fr *frontier) reject(u string) {
	fr.rejected.Add(u)
}

// buildBatch pops up to n unseen URLs from the front of to_visit,
// marking each as seen the instant it's chosen so a concurrent fetch
// round can never re-enqueue it.
func (fr *frontier) buildBatch(n int) []string {
	batch := make([]string, 0, n)
	for len(batch) < n && !fr.toVisit.Empty() {
		popped := fr.toVisit.PopFront(1)
		u := popped[0]
		fr.toVisitSet.Remove(u)
		if fr.seen.Has(u) {
			continue
		}
		fr.seen.Add(u)
		batch = append(batch, u)
	}
	return batch
}

func (fr *frontier) summary() (seen, toVisit, rejected []string) {
	return fr.seen.Values(), fr.toVisit.Snapshot(), fr.rejected.Values()
}
