package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/howardmhl/TabletopAndBottoms/internal/report"
	"github.com/howardmhl/TabletopAndBottoms/internal/stats"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the global player leaderboard",
	Args:  cobra.NoArgs,
	RunE:  runLeaderboard,
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	if err := requireSheetID(); err != nil {
		return err
	}
	ctx, cancel := fetchContext()
	defer cancel()

	matches, err := fetchMatches(ctx)
	if err != nil {
		return err
	}

	report.PrintLeaderboard(os.Stdout, stats.RankPlayers(stats.ComputePlayerStats(matches)))
	return nil
}
