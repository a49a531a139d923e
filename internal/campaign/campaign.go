// Package campaign parses the legacy-campaign tab: a chapter log plus a
// roster of family members, grouped by family.
package campaign

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/howardmhl/TabletopAndBottoms/internal/gviz"
	"github.com/howardmhl/TabletopAndBottoms/internal/sheet"
)

// UnknownFamily groups members whose family cell is empty. Like the unknown
// game bucket, it is a real grouping identity.
const UnknownFamily = "Unknown family"

// ChapterRecord is one played chapter of the campaign.
type ChapterRecord struct {
	Chapter string `json:"chapter"`
	Date    string `json:"date"`
	Haunt   string `json:"haunt"`
	Seq     int    `json:"seq"`
}

// FamilyMember is one character row of the roster.
type FamilyMember struct {
	Family  string `json:"family"`
	Name    string `json:"name"`
	Age     string `json:"age"`
	Chapter string `json:"chapter"`
	Traitor string `json:"traitor"`
	Died    string `json:"died"`
	Fate    string `json:"fate"`
	Seq     int    `json:"seq"`
}

// IsTraitor reports whether the traitor cell is the literal "true",
// ignoring case and surrounding whitespace.
func (m FamilyMember) IsTraitor() bool {
	return isTruthy(m.Traitor)
}

// HasDied reports whether the died cell is truthy.
func (m FamilyMember) HasDied() bool {
	return isTruthy(m.Died)
}

func isTruthy(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "true")
}

// Roster holds family members grouped by family name. Order preserves the
// first appearance of each family in the sheet.
type Roster struct {
	Order   []string                  `json:"order"`
	Members map[string][]FamilyMember `json:"members"`
}

// Log is the parsed campaign tab: the same rows carry chapter columns and
// roster columns side by side.
type Log struct {
	Chapters []ChapterRecord `json:"chapters"`
	Families Roster          `json:"families"`
}

// ParseTable parses the campaign tab. Column resolution is exact-label only.
// A row contributes a chapter when any of chapter/date/haunt is set, and a
// roster entry when any roster field is set; one row can contribute both.
func ParseTable(t *gviz.Table) (*Log, error) {
	headers := t.HeaderLabels()
	if len(headers) == 0 {
		return nil, sheet.ErrEmptySchema
	}

	idxChapter := sheet.ExactColumn(headers, "chapter")
	idxDate := sheet.ExactColumn(headers, "date")
	idxHaunt := sheet.ExactColumn(headers, "haunt")
	idxName := sheet.ExactColumn(headers, "name")
	idxFamily := sheet.ExactColumn(headers, "family")
	idxAge := sheet.ExactColumn(headers, "age")
	idxTraitor := sheet.ExactColumn(headers, "traitor")
	idxDied := sheet.ExactColumn(headers, "died")
	idxFate := sheet.ExactColumn(headers, "fate")

	log := &Log{
		Families: Roster{Members: make(map[string][]FamilyMember)},
	}

	for i, row := range t.Rows {
		cell := func(idx int) string {
			return strings.TrimSpace(row.CellString(idx))
		}

		ch := ChapterRecord{
			Chapter: cell(idxChapter),
			Date:    cell(idxDate),
			Haunt:   cell(idxHaunt),
			Seq:     i,
		}
		if ch.Chapter != "" || ch.Date != "" || ch.Haunt != "" {
			log.Chapters = append(log.Chapters, ch)
		}

		member := FamilyMember{
			Family:  cell(idxFamily),
			Name:    cell(idxName),
			Age:     cell(idxAge),
			Chapter: cell(idxChapter),
			Traitor: cell(idxTraitor),
			Died:    cell(idxDied),
			Fate:    cell(idxFate),
			Seq:     i,
		}
		if member.Family == "" && member.Name == "" && member.Age == "" &&
			member.Traitor == "" && member.Died == "" && member.Fate == "" {
			continue
		}
		if member.Family == "" {
			member.Family = UnknownFamily
		}
		if _, seen := log.Families.Members[member.Family]; !seen {
			log.Families.Order = append(log.Families.Order, member.Family)
		}
		log.Families.Members[member.Family] = append(log.Families.Members[member.Family], member)
	}

	for family := range log.Families.Members {
		SortMembers(log.Families.Members[family])
	}

	return log, nil
}

// SortMembers orders family members in place: by numeric chapter ascending
// when both rows carry one (name as tiebreak), otherwise by original row
// order.
func SortMembers(members []FamilyMember) {
	coll := collate.New(language.English)
	sort.SliceStable(members, func(i, j int) bool {
		a, b := members[i], members[j]
		ac, aok := chapterNumber(a.Chapter)
		bc, bok := chapterNumber(b.Chapter)
		if aok && bok {
			if ac != bc {
				return ac < bc
			}
			return coll.CompareString(strings.ToLower(a.Name), strings.ToLower(b.Name)) < 0
		}
		return a.Seq < b.Seq
	})
}

func chapterNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
