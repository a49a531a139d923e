package sheet

import (
	"errors"
	"strings"

	"github.com/howardmhl/TabletopAndBottoms/internal/gviz"
)

// ErrEmptySchema is reported when a tab arrives with zero columns. The
// caller keeps the previously loaded state for that tab.
var ErrEmptySchema = errors.New("sheet has no columns")

// MatchRecord is one normalized row of the match log. Winners and Players
// keep their source order and are not de-duplicated. Seq is the original row
// position, used for recency ordering.
type MatchRecord struct {
	Date    string   `json:"date"`
	Game    string   `json:"game"`
	Winners []string `json:"winners"`
	Players []string `json:"players"`
	Notes   string   `json:"notes"`
	Seq     int      `json:"seq"`
}

// PlayerMeta is display metadata for one player. The map key is the
// lower-cased name: metadata lookup is case-insensitive, unlike aggregate
// keys, which stay case-sensitive. Keep the two key domains separate.
type PlayerMeta struct {
	Name    string `json:"name"`
	IconURL string `json:"icon"`
}

// GameMeta is display metadata for one game, keyed by exact game name.
type GameMeta struct {
	PageURL string `json:"page"`
}

// ParseMatchTable normalizes the match log tab into MatchRecords. Rows where
// game, players, and winners are all empty are dropped; a date or note alone
// does not keep a row. The entire slice is rebuilt on every call, never
// patched.
func ParseMatchTable(t *gviz.Table, hints map[string]string) ([]MatchRecord, error) {
	headers := t.HeaderLabels()
	if len(headers) == 0 {
		return nil, ErrEmptySchema
	}

	fields := resolveFields(headers, hints, matchKeywords)

	records := make([]MatchRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		if rec, ok := NormalizeMatchRow(row, fields, i); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// NormalizeMatchRow turns one raw row into a MatchRecord. Returns false when
// the row has no meaningful content.
func NormalizeMatchRow(row gviz.Row, fields FieldIndexes, seq int) (MatchRecord, bool) {
	rec := MatchRecord{
		Date:    row.CellString(fields.Index(FieldDate)),
		Game:    row.CellString(fields.Index(FieldGame)),
		Winners: SplitNames(row.CellString(fields.Index(FieldWinners))),
		Players: SplitNames(row.CellString(fields.Index(FieldPlayers))),
		Notes:   row.CellString(fields.Index(FieldNotes)),
		Seq:     seq,
	}
	if rec.Game == "" && len(rec.Players) == 0 && len(rec.Winners) == 0 {
		return MatchRecord{}, false
	}
	return rec, true
}

// SplitNames splits a cell on commas and semicolons, trims each piece, and
// drops empties. Order is preserved and duplicates are kept.
func SplitNames(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	names := parts[:0]
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ParsePlayerTable normalizes the players tab into a metadata map keyed by
// lower-cased name. Rows with an empty name are skipped. The map is replaced
// wholesale on each reload.
func ParsePlayerTable(t *gviz.Table, hints map[string]string) (map[string]PlayerMeta, error) {
	headers := t.HeaderLabels()
	if len(headers) == 0 {
		return nil, ErrEmptySchema
	}

	fields := resolveFields(headers, hints, playerKeywords)

	meta := make(map[string]PlayerMeta)
	for _, row := range t.Rows {
		name := strings.TrimSpace(row.CellString(fields.Index(FieldName)))
		if name == "" {
			continue
		}
		meta[strings.ToLower(name)] = PlayerMeta{
			Name:    name,
			IconURL: strings.TrimSpace(row.CellString(fields.Index(FieldIcon))),
		}
	}
	return meta, nil
}

// ParseGameTable normalizes the games tab. Its schema is fixed: columns are
// matched by exact header name only, no keyword fallback.
func ParseGameTable(t *gviz.Table) (map[string]GameMeta, error) {
	headers := t.HeaderLabels()
	if len(headers) == 0 {
		return nil, ErrEmptySchema
	}

	idxName := ExactColumn(headers, FieldName)
	idxPage := ExactColumn(headers, FieldPage)

	meta := make(map[string]GameMeta)
	for _, row := range t.Rows {
		name := strings.TrimSpace(row.CellString(idxName))
		if name == "" {
			continue
		}
		meta[name] = GameMeta{
			PageURL: strings.TrimSpace(row.CellString(idxPage)),
		}
	}
	return meta, nil
}
