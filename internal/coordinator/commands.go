package coordinator

import "github.com/howardmhl/TabletopAndBottoms/internal/gviz"

// Command is the interface for all commands sent to the coordinator.
type Command interface {
	command() // marker method
}

// Refresh requests a reload of the given tables. An empty list reloads every
// configured table. Fetches run in the background and report back through
// tableFetched commands.
type Refresh struct {
	Tables []Table
}

func (Refresh) command() {}

// SelectGame sets the active game filter. The game must be the AllGames
// sentinel or a game present in the current summaries.
type SelectGame struct {
	Game     string
	Response chan error
}

func (SelectGame) command() {}

// tableFetched delivers one completed fetch back to the loop. Seq orders
// completions per table so a slow response can never clobber a newer one.
type tableFetched struct {
	Table     Table
	Seq       uint64
	RequestID string
	Payload   *gviz.Table
	Err       error
}

func (tableFetched) command() {}

// getSnapshotCmd is an internal command to safely read the current snapshot.
type getSnapshotCmd struct {
	Response chan Snapshot
}

func (getSnapshotCmd) command() {}
