package coordinator

import (
	"time"

	"github.com/howardmhl/TabletopAndBottoms/internal/campaign"
	"github.com/howardmhl/TabletopAndBottoms/internal/sheet"
	"github.com/howardmhl/TabletopAndBottoms/internal/stats"
)

// Table identifies one spreadsheet tab tracked by the coordinator.
type Table int

const (
	TableLog Table = iota
	TablePlayers
	TableGames
	TableCampaign
)

func (t Table) String() string {
	switch t {
	case TableLog:
		return "log"
	case TablePlayers:
		return "players"
	case TableGames:
		return "games"
	case TableCampaign:
		return "campaign"
	default:
		return "unknown"
	}
}

// SyncStatus records the outcome of the most recent reload of one table.
// LastSync is the time of the last successful load; LastError is the message
// of the most recent failure, cleared by the next success.
type SyncStatus struct {
	LastSync  time.Time `json:"lastSync"`
	LastError string    `json:"lastError,omitempty"`
}

// Snapshot is the published view of all loaded data. Every field is replaced
// wholesale on reload; a handed-out Snapshot is never mutated afterwards, so
// readers may keep it without copying.
type Snapshot struct {
	Version       uint64                                      `json:"version"`
	Matches       []sheet.MatchRecord                         `json:"matches"`
	PlayerStats   map[string]stats.PlayerStats                `json:"playerStats"`
	GameSummaries map[string]stats.GameSummary                `json:"gameSummaries"`
	GamePlayers   map[string]map[string]stats.GamePlayerStats `json:"gamePlayers"`
	PlayerMeta    map[string]sheet.PlayerMeta                 `json:"playerMeta"`
	GameMeta      map[string]sheet.GameMeta                   `json:"gameMeta"`
	Campaign      *campaign.Log                               `json:"campaign,omitempty"`
	SelectedGame  string                                      `json:"selectedGame"`
	Sync          map[string]SyncStatus                       `json:"sync"`
}

// Recent returns up to limit matches, most recent first. A non-positive or
// oversized limit returns everything.
func (s Snapshot) Recent(limit int) []sheet.MatchRecord {
	if limit <= 0 || limit > len(s.Matches) {
		limit = len(s.Matches)
	}
	out := make([]sheet.MatchRecord, 0, limit)
	for i := len(s.Matches) - 1; i >= len(s.Matches)-limit; i-- {
		out = append(out, s.Matches[i])
	}
	return out
}

// State is the coordinator's mutable state. Only the coordinator goroutine
// touches it.
type State struct {
	snapshot Snapshot

	// Per-table fetch sequencing. nextSeq hands out a number per issued
	// fetch; applied remembers the highest completion accepted so far.
	nextSeq map[Table]uint64
	applied map[Table]uint64
}

func NewState() *State {
	return &State{
		snapshot: Snapshot{
			SelectedGame: stats.AllGames,
			Sync:         map[string]SyncStatus{},
		},
		nextSeq: make(map[Table]uint64),
		applied: make(map[Table]uint64),
	}
}

// setSync replaces the sync map with an updated copy. The old map may still
// be referenced by a published snapshot.
func (s *State) setSync(t Table, status SyncStatus) {
	next := make(map[string]SyncStatus, len(s.snapshot.Sync)+1)
	for k, v := range s.snapshot.Sync {
		next[k] = v
	}
	next[t.String()] = status
	s.snapshot.Sync = next
}
