package sheet

import "testing"

func TestResolveColumn_HintWins(t *testing.T) {
	// A keyword would match "Game winners" (index 1) but the hint points at
	// "Result" (index 2). The hint must win outright.
	headers := []string{"Date", "Game winners", "Result"}
	got := ResolveColumn(headers, "result", []string{"winner"})
	if got != 2 {
		t.Errorf("hint should override keyword fallback: want 2, got %d", got)
	}
}

func TestResolveColumn_HintTrimsAndIgnoresCase(t *testing.T) {
	headers := []string{"  Played On  ", "Game"}
	got := ResolveColumn(headers, "played on", nil)
	if got != 0 {
		t.Errorf("want 0, got %d", got)
	}
}

func TestResolveColumn_KeywordOrder(t *testing.T) {
	// First keyword scans all headers before the second is tried.
	headers := []string{"Victor", "Winner"}
	got := ResolveColumn(headers, "", []string{"winner", "victor"})
	if got != 1 {
		t.Errorf("keyword order decides: want 1 (winner), got %d", got)
	}
}

func TestResolveColumn_SubstringMatch(t *testing.T) {
	headers := []string{"Session date", "The Game Played"}
	if got := ResolveColumn(headers, "", []string{"game"}); got != 1 {
		t.Errorf("want 1, got %d", got)
	}
	if got := ResolveColumn(headers, "", []string{"date"}); got != 0 {
		t.Errorf("want 0, got %d", got)
	}
}

func TestResolveColumn_Unresolved(t *testing.T) {
	headers := []string{"Date", "Game"}
	if got := ResolveColumn(headers, "", []string{"notes"}); got != -1 {
		t.Errorf("want -1 for unresolved field, got %d", got)
	}
	if got := ResolveColumn(headers, "missing", nil); got != -1 {
		t.Errorf("hint without keywords and no match: want -1, got %d", got)
	}
}

func TestResolveColumn_FieldsResolveIndependently(t *testing.T) {
	// Two fields may land on the same column without conflict.
	headers := []string{"Winner of game"}
	fi := resolveFields(headers, nil, map[string][]string{
		FieldGame:    {"game"},
		FieldWinners: {"winner"},
	})
	if fi.Index(FieldGame) != 0 || fi.Index(FieldWinners) != 0 {
		t.Errorf("both fields should resolve to column 0, got game=%d winners=%d",
			fi.Index(FieldGame), fi.Index(FieldWinners))
	}
}

func TestExactColumn(t *testing.T) {
	headers := []string{"name", "page url", "page"}
	if got := ExactColumn(headers, "page"); got != 2 {
		t.Errorf("exact match must not fall back to substring: want 2, got %d", got)
	}
	if got := ExactColumn(headers, "Name"); got != -1 {
		t.Errorf("exact match is case-sensitive: want -1, got %d", got)
	}
}
