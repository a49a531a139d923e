package stats

import (
	"reflect"
	"testing"
)

func TestRankPlayers_DenseRanks(t *testing.T) {
	players := map[string]PlayerStats{
		"A": {Wins: 5},
		"B": {Wins: 5},
		"C": {Wins: 3},
		"D": {Wins: 3},
		"E": {Wins: 1},
	}

	ranked := RankPlayers(players)

	wantRanks := []int{1, 1, 3, 3, 5}
	for i, r := range ranked {
		if r.Rank != wantRanks[i] {
			t.Errorf("position %d: want rank %d, got %d (%+v)", i, wantRanks[i], r.Rank, ranked)
		}
	}
}

func TestRankPlayers_TieBreakByName(t *testing.T) {
	players := map[string]PlayerStats{
		"zoe":   {Wins: 2},
		"Adam":  {Wins: 2},
		"Émile": {Wins: 2},
	}

	ranked := RankPlayers(players)

	// Locale order, not byte order: É sorts with E, lower case does not sink.
	got := []string{ranked[0].Name, ranked[1].Name, ranked[2].Name}
	want := []string{"Adam", "Émile", "zoe"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tie break order: want %v, got %v", want, got)
	}
	for _, r := range ranked {
		if r.Rank != 1 {
			t.Errorf("all tied entries share rank 1, got %+v", r)
		}
	}
}

func TestRankPlayers_ScenarioTiedAtTop(t *testing.T) {
	ranked := RankPlayers(map[string]PlayerStats{
		"A": {Games: 2, Wins: 1},
		"B": {Games: 2, Wins: 1},
	})
	if ranked[0].Rank != 1 || ranked[1].Rank != 1 {
		t.Errorf("both should be rank 1: %+v", ranked)
	}
}

func TestRankGames_SequentialPositions(t *testing.T) {
	games := map[string]GameSummary{
		"Catan": {TimesPlayed: 4},
		"Chess": {TimesPlayed: 4},
		"Go":    {TimesPlayed: 1},
	}

	ranked := RankGames(games)

	// Ties do not share positions on the games summary.
	wantPositions := []int{1, 2, 3}
	wantNames := []string{"Catan", "Chess", "Go"}
	for i, r := range ranked {
		if r.Position != wantPositions[i] || r.Name != wantNames[i] {
			t.Errorf("position %d: want %s@%d, got %s@%d",
				i, wantNames[i], wantPositions[i], r.Name, r.Position)
		}
	}
}

func TestGameNames_Sorted(t *testing.T) {
	names := GameNames(map[string]GameSummary{
		"Wingspan": {}, "Azul": {}, "Catan": {},
	})
	want := []string{"Azul", "Catan", "Wingspan"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("want %v, got %v", want, names)
	}
}

func TestGameStandings_SingleGame(t *testing.T) {
	perGame := map[string]map[string]GamePlayerStats{
		"Go": {
			"A": {Plays: 3, Wins: 2},
			"B": {Plays: 4, Wins: 2},
			"C": {Plays: 1, Wins: 0},
		},
	}

	standings := GameStandings("Go", perGame)

	// Wins desc, then plays desc, then name.
	wantNames := []string{"B", "A", "C"}
	for i, s := range standings {
		if s.Name != wantNames[i] {
			t.Errorf("position %d: want %s, got %s", i, wantNames[i], s.Name)
		}
	}
}

func TestGameStandings_AllGamesFold(t *testing.T) {
	perGame := map[string]map[string]GamePlayerStats{
		"Go":    {"A": {Plays: 2, Wins: 1}},
		"Chess": {"A": {Plays: 1, Wins: 1}, "B": {Plays: 1, Wins: 0}},
	}

	standings := GameStandings(AllGames, perGame)

	if len(standings) != 2 {
		t.Fatalf("want 2 entries, got %d", len(standings))
	}
	if standings[0].Name != "A" || standings[0].Plays != 3 || standings[0].Wins != 2 {
		t.Errorf("A should lead with merged totals, got %+v", standings[0])
	}
}

func TestGameStandings_UnknownSelectionEmpty(t *testing.T) {
	standings := GameStandings("Nonexistent", map[string]map[string]GamePlayerStats{})
	if len(standings) != 0 {
		t.Errorf("unknown selection yields empty standings, got %v", standings)
	}
}
