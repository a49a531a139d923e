package coordinator

type Event interface {
	event() // marker method
}

// SnapshotApplied is emitted after a table reload lands and the snapshot has
// been recomputed and republished.
type SnapshotApplied struct {
	Version uint64 `json:"version"`
	Table   string `json:"table"`
}

func (SnapshotApplied) event() {}

// ReloadFailed is emitted when a table reload fails. The previous data for
// that table stays in place.
type ReloadFailed struct {
	Table   string `json:"table"`
	Message string `json:"message"`
}

func (ReloadFailed) event() {}

// SelectionChanged is emitted when the active game filter changes.
type SelectionChanged struct {
	Game    string `json:"game"`
	Version uint64 `json:"version"`
}

func (SelectionChanged) event() {}
