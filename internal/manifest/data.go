package manifest

// Category names the distilled spec's manifest entities use. They are
// distinct from the Frontier's in-memory sets: persisted_seen is loaded
// from a prior run's Visited category into its own set, which is checked
// before enqueueing but not merged into the new run's seen set, and
// rejected/toVisit are never persisted — a URL that was
// rejected this run may legitimately be reconsidered next run if the
// scoring config changes.
type Manifest struct {
	Visited []string `json:"urls_vistas"`
}
