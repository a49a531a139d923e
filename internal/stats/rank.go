package stats

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// RankedPlayer is one row of the global leaderboard.
type RankedPlayer struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Wins  int    `json:"wins"`
	Games int    `json:"games"`
}

// RankedGame is one row of the games summary.
type RankedGame struct {
	Position    int    `json:"position"`
	Name        string `json:"name"`
	TimesPlayed int    `json:"timesPlayed"`
}

// Standing is one row of a per-game player table. This view is ordered but
// carries no rank numbers.
type Standing struct {
	Name  string `json:"name"`
	Plays int    `json:"plays"`
	Wins  int    `json:"wins"`
}

// newCollator returns a collator for name ordering. Locale-aware comparison,
// not byte order: names with diacritics or mixed case sort the way a list of
// people should.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}

// RankPlayers orders global player stats by wins descending, name ascending,
// and assigns dense competition ranks: tied entries share a rank, and the
// next distinct group's rank is its 1-based position in the sorted order
// (wins [5,5,3] ranks as [1,1,3]).
func RankPlayers(players map[string]PlayerStats) []RankedPlayer {
	coll := newCollator()

	entries := make([]RankedPlayer, 0, len(players))
	for name, s := range players {
		entries = append(entries, RankedPlayer{Name: name, Wins: s.Wins, Games: s.Games})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		return coll.CompareString(entries[i].Name, entries[j].Name) < 0
	})

	currentRank := 0
	lastWins := -1
	for i := range entries {
		if i == 0 || entries[i].Wins != lastWins {
			currentRank = i + 1
			lastWins = entries[i].Wins
		}
		entries[i].Rank = currentRank
	}
	return entries
}

// RankGames orders game summaries by times played descending, name
// ascending. Positions are plain sequential — no tie sharing here.
func RankGames(games map[string]GameSummary) []RankedGame {
	coll := newCollator()

	entries := make([]RankedGame, 0, len(games))
	for name, s := range games {
		entries = append(entries, RankedGame{Name: name, TimesPlayed: s.TimesPlayed})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TimesPlayed != entries[j].TimesPlayed {
			return entries[i].TimesPlayed > entries[j].TimesPlayed
		}
		return coll.CompareString(entries[i].Name, entries[j].Name) < 0
	})
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries
}

// GameNames returns the game set sorted by locale order, for selection lists.
func GameNames(games map[string]GameSummary) []string {
	coll := newCollator()
	names := make([]string, 0, len(games))
	for name := range games {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return coll.CompareString(names[i], names[j]) < 0
	})
	return names
}

// GameStandings builds the ordered player table for one selection. AllGames
// merges every per-game map; a specific game reads its own map; a selection
// with no data yields an empty table. Order: wins desc, plays desc, name asc.
func GameStandings(selected string, perGame map[string]map[string]GamePlayerStats) []Standing {
	var players map[string]GamePlayerStats
	if selected == AllGames {
		players = MergeGamePlayers(perGame)
	} else {
		players = perGame[selected]
	}

	coll := newCollator()
	entries := make([]Standing, 0, len(players))
	for name, st := range players {
		entries = append(entries, Standing{Name: name, Plays: st.Plays, Wins: st.Wins})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		if entries[i].Plays != entries[j].Plays {
			return entries[i].Plays > entries[j].Plays
		}
		return coll.CompareString(entries[i].Name, entries[j].Name) < 0
	})
	return entries
}
