// Package report renders leaderboard views as text tables for the CLI.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/howardmhl/TabletopAndBottoms/internal/campaign"
	"github.com/howardmhl/TabletopAndBottoms/internal/sheet"
	"github.com/howardmhl/TabletopAndBottoms/internal/stats"
)

// Initials derives up to two display initials from a player name: the first
// letter of the first two words, upper-cased.
func Initials(name string) string {
	fields := strings.Fields(name)
	var b strings.Builder
	for i, f := range fields {
		if i == 2 {
			break
		}
		r := []rune(f)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintLeaderboard prints the global player ranking.
func PrintLeaderboard(w io.Writer, ranked []stats.RankedPlayer) {
	table := newTable(w)
	table.Header("RANK", "PLAYER", "WINS", "GAMES", "WIN%")

	for _, p := range ranked {
		rate := stats.PlayerStats{Games: p.Games, Wins: p.Wins}.WinRate()
		rateStr := "—"
		if p.Games > 0 {
			rateStr = fmt.Sprintf("%.0f%%", rate)
		}
		table.Append(
			strconv.Itoa(p.Rank),
			p.Name,
			strconv.Itoa(p.Wins),
			strconv.Itoa(p.Games),
			rateStr,
		)
	}
	table.Render()
}

// PrintGames prints the games summary with page links where known.
func PrintGames(w io.Writer, ranked []stats.RankedGame, meta map[string]sheet.GameMeta) {
	table := newTable(w)
	table.Header("#", "GAME", "PLAYED", "PAGE")

	for _, g := range ranked {
		page := meta[g.Name].PageURL
		if page == "" {
			page = "—"
		}
		table.Append(
			strconv.Itoa(g.Position),
			g.Name,
			strconv.Itoa(g.TimesPlayed),
			page,
		)
	}
	table.Render()
}

// PrintStandings prints the per-game player table for one selection.
func PrintStandings(w io.Writer, game string, standings []stats.Standing) {
	label := game
	if game == stats.AllGames {
		label = "all games"
	}
	fmt.Fprintf(w, "\nStandings: %s\n\n", label)

	table := newTable(w)
	table.Header("PLAYER", "WINS", "PLAYS")

	for _, s := range standings {
		table.Append(s.Name, strconv.Itoa(s.Wins), strconv.Itoa(s.Plays))
	}
	table.Render()
}

// PrintHistory prints recent matches, most recent first.
func PrintHistory(w io.Writer, matches []sheet.MatchRecord) {
	table := newTable(w)
	table.Header("DATE", "GAME", "WINNERS", "PLAYERS", "NOTES")

	for _, m := range matches {
		date := strings.TrimSpace(m.Date)
		if date == "" {
			date = "No date"
		}
		game := strings.TrimSpace(m.Game)
		if game == "" {
			game = stats.UnknownGame
		}
		winners := strings.Join(m.Winners, ", ")
		if winners == "" {
			winners = "—"
		}
		notes := strings.TrimSpace(m.Notes)
		if notes == "" {
			notes = "—"
		}
		table.Append(date, game, winners, strings.Join(m.Players, ", "), notes)
	}
	table.Render()
}

// PrintPlayers prints known player metadata, sorted by name.
func PrintPlayers(w io.Writer, meta map[string]sheet.PlayerMeta) {
	players := make([]sheet.PlayerMeta, 0, len(meta))
	for _, p := range meta {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		return strings.ToLower(players[i].Name) < strings.ToLower(players[j].Name)
	})

	table := newTable(w)
	table.Header("PLAYER", "INITIALS", "ICON")

	for _, p := range players {
		icon := p.IconURL
		if icon == "" {
			icon = "—"
		}
		table.Append(p.Name, Initials(p.Name), icon)
	}
	table.Render()
}

// PrintCampaign prints the chapter log followed by each family's roster.
func PrintCampaign(w io.Writer, log *campaign.Log) {
	fmt.Fprintf(w, "\nChapters\n\n")
	chapters := newTable(w)
	chapters.Header("CHAPTER", "DATE", "HAUNT")
	for _, ch := range log.Chapters {
		chapters.Append(ch.Chapter, ch.Date, ch.Haunt)
	}
	chapters.Render()

	for _, family := range log.Families.Order {
		fmt.Fprintf(w, "\n%s\n\n", family)

		table := newTable(w)
		table.Header("NAME", "AGE", "CHAPTER", "TRAITOR", "DIED", "FATE")
		for _, m := range log.Families.Members[family] {
			fate := m.Fate
			if fate == "" {
				fate = "—"
			}
			table.Append(
				m.Name,
				m.Age,
				m.Chapter,
				flag(m.IsTraitor()),
				flag(m.HasDied()),
				fate,
			)
		}
		table.Render()
	}
}

func flag(v bool) string {
	if v {
		return "yes"
	}
	return ""
}
