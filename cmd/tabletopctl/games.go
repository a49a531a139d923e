package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/howardmhl/TabletopAndBottoms/internal/report"
	"github.com/howardmhl/TabletopAndBottoms/internal/stats"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Print the games summary, most played first",
	Args:  cobra.NoArgs,
	RunE:  runGames,
}

func runGames(cmd *cobra.Command, args []string) error {
	if err := requireSheetID(); err != nil {
		return err
	}
	ctx, cancel := fetchContext()
	defer cancel()

	matches, err := fetchMatches(ctx)
	if err != nil {
		return err
	}
	summaries, _ := stats.ComputeGameStats(matches)

	report.PrintGames(os.Stdout, stats.RankGames(summaries), fetchGameMeta(ctx))
	return nil
}

var standingsCmd = &cobra.Command{
	Use:   "standings [game]",
	Short: "Print per-game player standings, or totals across all games",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStandings,
}

func runStandings(cmd *cobra.Command, args []string) error {
	if err := requireSheetID(); err != nil {
		return err
	}
	ctx, cancel := fetchContext()
	defer cancel()

	matches, err := fetchMatches(ctx)
	if err != nil {
		return err
	}
	_, perGame := stats.ComputeGameStats(matches)

	game := stats.AllGames
	if len(args) == 1 {
		game = args[0]
	}

	report.PrintStandings(os.Stdout, game, stats.GameStandings(game, perGame))
	return nil
}
