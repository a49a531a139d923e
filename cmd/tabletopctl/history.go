package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/howardmhl/TabletopAndBottoms/internal/report"
	"github.com/howardmhl/TabletopAndBottoms/internal/sheet"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print recent matches, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of matches to print (0 for all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := requireSheetID(); err != nil {
		return err
	}
	ctx, cancel := fetchContext()
	defer cancel()

	matches, err := fetchMatches(ctx)
	if err != nil {
		return err
	}

	report.PrintHistory(os.Stdout, recent(matches, historyLimit))
	return nil
}

func recent(matches []sheet.MatchRecord, limit int) []sheet.MatchRecord {
	if limit <= 0 || limit > len(matches) {
		limit = len(matches)
	}
	out := make([]sheet.MatchRecord, 0, limit)
	for i := len(matches) - 1; i >= len(matches)-limit; i-- {
		out = append(out, matches[i])
	}
	return out
}
