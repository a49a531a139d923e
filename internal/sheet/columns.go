package sheet

import "strings"

// Semantic fields of the match log tab.
const (
	FieldDate    = "date"
	FieldGame    = "game"
	FieldWinners = "winners"
	FieldPlayers = "players"
	FieldNotes   = "notes"
	FieldName    = "name"
	FieldIcon    = "icon"
	FieldPage    = "page"
)

// Fallback keywords per field, tried in order when no hint matches. A header
// matches a keyword by case-insensitive substring.
var (
	matchKeywords = map[string][]string{
		FieldDate:    {"date"},
		FieldGame:    {"game"},
		FieldWinners: {"winner", "winners", "victor"},
		FieldPlayers: {"player", "players", "participants"},
		FieldNotes:   {"note", "notes", "comment"},
	}

	playerKeywords = map[string][]string{
		FieldName: {"name", "player"},
		FieldIcon: {"icon", "avatar", "image", "img", "url", "photo"},
	}
)

// FieldIndexes maps a semantic field name to its column position in one
// table, or -1 when no column matched. Built once per table per load.
type FieldIndexes map[string]int

// Index returns the resolved position for field, or -1.
func (fi FieldIndexes) Index(field string) int {
	if idx, ok := fi[field]; ok {
		return idx
	}
	return -1
}

// ResolveColumn finds the column for one semantic field. A non-empty hint is
// matched first as a case-insensitive, whitespace-trimmed exact label and
// wins outright. Otherwise keywords are scanned in order, each against every
// header in order, matching by substring. Returns -1 when nothing matches;
// unresolved fields are not an error, downstream reads treat them as empty.
func ResolveColumn(headers []string, hint string, keywords []string) int {
	if hint != "" {
		want := strings.ToLower(strings.TrimSpace(hint))
		for i, h := range headers {
			if strings.ToLower(strings.TrimSpace(h)) == want {
				return i
			}
		}
	}

	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
	}
	for _, kw := range keywords {
		for i, h := range lower {
			if strings.Contains(h, kw) {
				return i
			}
		}
	}
	return -1
}

// ExactColumn finds a column by exact trimmed label. Used for tabs whose
// schema is fixed (games, campaign) where fuzzy matching is not wanted.
func ExactColumn(headers []string, label string) int {
	for i, h := range headers {
		if strings.TrimSpace(h) == label {
			return i
		}
	}
	return -1
}

// resolveFields builds a FieldIndexes for every field in keywords, applying
// the per-field hint when present. Fields resolve independently; two fields
// may land on the same column or on none.
func resolveFields(headers []string, hints map[string]string, keywords map[string][]string) FieldIndexes {
	fi := make(FieldIndexes, len(keywords))
	for field, kws := range keywords {
		fi[field] = ResolveColumn(headers, hints[field], kws)
	}
	return fi
}
