package stats

import (
	"strings"

	"github.com/howardmhl/TabletopAndBottoms/internal/sheet"
)

// AllGames is the reserved selection value meaning "every game at once".
// Distinct from any real game name.
const AllGames = "__ALL__"

// UnknownGame is the grouping identity for matches whose game field is
// empty. It is a real aggregation key, not just a display label, so a game
// literally named "Unknown game" would share its bucket.
const UnknownGame = "Unknown game"

// PlayerStats is one player's global totals. Keys into the stats map are the
// names exactly as they appear in the log — "Bob" and "bob" are different
// players here, unlike the case-insensitive metadata lookup.
type PlayerStats struct {
	Games int `json:"games"`
	Wins  int `json:"wins"`
}

// WinRate returns wins as a percentage of games played, 0 when no games.
func (s PlayerStats) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games) * 100
}

// GameSummary counts how often one game was played.
type GameSummary struct {
	TimesPlayed int `json:"timesPlayed"`
}

// GamePlayerStats is one player's totals scoped to a single game.
type GamePlayerStats struct {
	Plays int `json:"plays"`
	Wins  int `json:"wins"`
}

// ComputePlayerStats folds the match list into global per-player totals.
// Each entry in Players counts one game; each entry in Winners counts one
// win. A winner who never shows up among the players still gets an entry
// with zero games. The returned map is a full snapshot, never a delta.
func ComputePlayerStats(matches []sheet.MatchRecord) map[string]PlayerStats {
	stats := make(map[string]PlayerStats)
	for _, m := range matches {
		for _, p := range m.Players {
			name := strings.TrimSpace(p)
			if name == "" {
				continue
			}
			s := stats[name]
			s.Games++
			stats[name] = s
		}
		for _, w := range m.Winners {
			name := strings.TrimSpace(w)
			if name == "" {
				continue
			}
			s := stats[name]
			s.Wins++
			stats[name] = s
		}
	}
	return stats
}

// ComputeGameStats folds the match list into per-game summaries and
// per-game per-player totals. Matches with an empty game field group under
// UnknownGame. Both maps are full snapshots.
func ComputeGameStats(matches []sheet.MatchRecord) (map[string]GameSummary, map[string]map[string]GamePlayerStats) {
	summaries := make(map[string]GameSummary)
	perGame := make(map[string]map[string]GamePlayerStats)

	for _, m := range matches {
		game := m.Game
		if game == "" {
			game = UnknownGame
		}

		sum := summaries[game]
		sum.TimesPlayed++
		summaries[game] = sum

		players := perGame[game]
		if players == nil {
			players = make(map[string]GamePlayerStats)
			perGame[game] = players
		}

		for _, p := range m.Players {
			name := strings.TrimSpace(p)
			if name == "" {
				continue
			}
			s := players[name]
			s.Plays++
			players[name] = s
		}
		for _, w := range m.Winners {
			name := strings.TrimSpace(w)
			if name == "" {
				continue
			}
			s := players[name]
			s.Wins++
			players[name] = s
		}
	}
	return summaries, perGame
}

// MergeGamePlayers folds every game's per-player map into one combined map.
// This is the AllGames view: a secondary fold over already-computed
// aggregates, not a recomputation from the match list.
func MergeGamePlayers(perGame map[string]map[string]GamePlayerStats) map[string]GamePlayerStats {
	merged := make(map[string]GamePlayerStats)
	for _, players := range perGame {
		for name, st := range players {
			m := merged[name]
			m.Plays += st.Plays
			m.Wins += st.Wins
			merged[name] = m
		}
	}
	return merged
}

// ReconcileSelection validates a game selection against the current game
// set. Unset selections and selections pointing at games that no longer
// exist reset to AllGames. Call after every recomputation, before any view
// that depends on the selection.
func ReconcileSelection(current string, games map[string]GameSummary) string {
	if current == "" || current == AllGames {
		return AllGames
	}
	if _, ok := games[current]; !ok {
		return AllGames
	}
	return current
}
