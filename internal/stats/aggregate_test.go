package stats

import (
	"reflect"
	"testing"

	"github.com/howardmhl/TabletopAndBottoms/internal/sheet"
)

func match(game string, players, winners []string) sheet.MatchRecord {
	return sheet.MatchRecord{Game: game, Players: players, Winners: winners}
}

func TestComputePlayerStats(t *testing.T) {
	matches := []sheet.MatchRecord{
		match("Go", []string{"A", "B"}, []string{"A"}),
		match("Go", []string{"A", "B"}, []string{"B"}),
	}

	stats := ComputePlayerStats(matches)

	want := map[string]PlayerStats{
		"A": {Games: 2, Wins: 1},
		"B": {Games: 2, Wins: 1},
	}
	if !reflect.DeepEqual(stats, want) {
		t.Errorf("want %v, got %v", want, stats)
	}
}

func TestComputePlayerStats_WinnerWithoutParticipation(t *testing.T) {
	// A recorded winner who is missing from the players list still gets an
	// entry, with zero games.
	matches := []sheet.MatchRecord{
		match("Catan", []string{"Alice"}, []string{"Ghost"}),
	}

	stats := ComputePlayerStats(matches)

	if got := stats["Ghost"]; got.Games != 0 || got.Wins != 1 {
		t.Errorf("winner-only entry: want {0 1}, got %+v", got)
	}
	if got := stats["Alice"]; got.Games != 1 || got.Wins != 0 {
		t.Errorf("player entry: want {1 0}, got %+v", got)
	}
}

func TestComputePlayerStats_ParticipationSum(t *testing.T) {
	matches := []sheet.MatchRecord{
		match("Go", []string{"A", "B", "C"}, []string{"A"}),
		match("Chess", []string{"A", "B"}, nil),
		match("", []string{"C"}, []string{"C"}),
	}

	stats := ComputePlayerStats(matches)

	totalGames := 0
	for _, s := range stats {
		totalGames += s.Games
	}
	totalParticipations := 0
	for _, m := range matches {
		totalParticipations += len(m.Players)
	}
	if totalGames != totalParticipations {
		t.Errorf("every participation counts once: games sum %d, participations %d",
			totalGames, totalParticipations)
	}
}

func TestComputePlayerStats_CaseSensitiveKeys(t *testing.T) {
	matches := []sheet.MatchRecord{
		match("Go", []string{"Bob", "bob"}, nil),
	}
	stats := ComputePlayerStats(matches)
	if len(stats) != 2 {
		t.Errorf("aggregate keys are case-sensitive: want 2 entries, got %d", len(stats))
	}
}

func TestComputePlayerStats_SkipsBlankNames(t *testing.T) {
	matches := []sheet.MatchRecord{
		match("Go", []string{"  ", "A"}, []string{" "}),
	}
	stats := ComputePlayerStats(matches)
	if len(stats) != 1 {
		t.Errorf("blank names must be skipped, got %v", stats)
	}
}

func TestComputePlayerStats_Idempotent(t *testing.T) {
	matches := []sheet.MatchRecord{
		match("Go", []string{"A", "B"}, []string{"A"}),
		match("Catan", []string{"B"}, []string{"B"}),
	}
	first := ComputePlayerStats(matches)
	second := ComputePlayerStats(matches)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("recomputation must be deterministic: %v vs %v", first, second)
	}
}

func TestComputeGameStats(t *testing.T) {
	matches := []sheet.MatchRecord{
		match("Go", []string{"A", "B"}, []string{"A"}),
		match("Go", []string{"A", "B"}, []string{"B"}),
		match("", []string{"C"}, []string{"C"}),
	}

	summaries, perGame := ComputeGameStats(matches)

	if summaries["Go"].TimesPlayed != 2 {
		t.Errorf("Go timesPlayed: want 2, got %d", summaries["Go"].TimesPlayed)
	}
	if summaries[UnknownGame].TimesPlayed != 1 {
		t.Errorf("empty game groups under %q: got %d", UnknownGame, summaries[UnknownGame].TimesPlayed)
	}

	goPlayers := perGame["Go"]
	if got := goPlayers["A"]; got.Plays != 2 || got.Wins != 1 {
		t.Errorf("A in Go: want {2 1}, got %+v", got)
	}
	if got := perGame[UnknownGame]["C"]; got.Plays != 1 || got.Wins != 1 {
		t.Errorf("C in unknown game: want {1 1}, got %+v", got)
	}

	// Per-game maps are scoped: C never appears under Go.
	if _, ok := goPlayers["C"]; ok {
		t.Error("C must not appear under Go")
	}
}

func TestComputeGameStats_Idempotent(t *testing.T) {
	matches := []sheet.MatchRecord{
		match("Go", []string{"A"}, []string{"A"}),
		match("Chess", []string{"A", "B"}, []string{"B"}),
	}
	s1, p1 := ComputeGameStats(matches)
	s2, p2 := ComputeGameStats(matches)
	if !reflect.DeepEqual(s1, s2) || !reflect.DeepEqual(p1, p2) {
		t.Error("recomputation must yield identical maps")
	}
}

func TestMergeGamePlayers(t *testing.T) {
	perGame := map[string]map[string]GamePlayerStats{
		"Go":    {"A": {Plays: 2, Wins: 1}, "B": {Plays: 2, Wins: 1}},
		"Chess": {"A": {Plays: 1, Wins: 1}},
	}

	merged := MergeGamePlayers(perGame)

	if got := merged["A"]; got.Plays != 3 || got.Wins != 2 {
		t.Errorf("A merged: want {3 2}, got %+v", got)
	}
	if got := merged["B"]; got.Plays != 2 || got.Wins != 1 {
		t.Errorf("B merged: want {2 1}, got %+v", got)
	}
}

func TestWinRate(t *testing.T) {
	if got := (PlayerStats{Games: 4, Wins: 1}).WinRate(); got != 25.0 {
		t.Errorf("want 25.0, got %f", got)
	}
	if got := (PlayerStats{Wins: 3}).WinRate(); got != 0 {
		t.Errorf("zero games means zero rate, got %f", got)
	}
}

func TestReconcileSelection(t *testing.T) {
	games := map[string]GameSummary{"Chess": {TimesPlayed: 1}}

	cases := []struct {
		name    string
		current string
		want    string
	}{
		{"unset resets", "", AllGames},
		{"sentinel stays", AllGames, AllGames},
		{"existing game stays", "Chess", "Chess"},
		{"removed game resets", "Go", AllGames},
	}
	for _, c := range cases {
		if got := ReconcileSelection(c.current, games); got != c.want {
			t.Errorf("%s: want %q, got %q", c.name, c.want, got)
		}
	}

	// Empty game set: everything resets to the sentinel.
	if got := ReconcileSelection("Go", nil); got != AllGames {
		t.Errorf("empty game set: want sentinel, got %q", got)
	}
}
