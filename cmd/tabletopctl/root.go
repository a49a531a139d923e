package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/howardmhl/TabletopAndBottoms/internal/gviz"
	"github.com/howardmhl/TabletopAndBottoms/internal/sheet"
)

var (
	sheetID      string
	logTab       string
	playersTab   string
	gamesTab     string
	campaignTab  string
	fetchTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "tabletopctl",
	Short: "Board game night leaderboard tool",
	Long:  "Fetch the group's game log from Google Sheets and print leaderboards, game summaries, and match history.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// .env first so SHEET_ID can serve as the flag default.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&sheetID, "sheet-id", os.Getenv("SHEET_ID"), "Google Sheets document ID")
	rootCmd.PersistentFlags().StringVar(&logTab, "log-tab", "Log", "name of the match log tab")
	rootCmd.PersistentFlags().StringVar(&playersTab, "players-tab", "Players", "name of the players tab")
	rootCmd.PersistentFlags().StringVar(&gamesTab, "games-tab", "Games", "name of the games tab")
	rootCmd.PersistentFlags().StringVar(&campaignTab, "campaign-tab", "Campaign", "name of the campaign tab")
	rootCmd.PersistentFlags().DurationVar(&fetchTimeout, "timeout", 30*time.Second, "fetch timeout")

	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(campaignCmd)
}

func requireSheetID() error {
	if sheetID == "" {
		return fmt.Errorf("--sheet-id or SHEET_ID is required")
	}
	return nil
}

func fetchContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), fetchTimeout)
}

func fetchMatches(ctx context.Context) ([]sheet.MatchRecord, error) {
	table, err := gviz.NewClient(sheetID).FetchTable(ctx, logTab)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", logTab, err)
	}
	records, err := sheet.ParseMatchTable(table, nil)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", logTab, err)
	}
	return records, nil
}

// fetchGameMeta loads the games tab. A missing or broken tab only costs the
// page links, so failures degrade to empty metadata with a warning.
func fetchGameMeta(ctx context.Context) map[string]sheet.GameMeta {
	table, err := gviz.NewClient(sheetID).FetchTable(ctx, gamesTab)
	if err == nil {
		meta, perr := sheet.ParseGameTable(table)
		if perr == nil {
			return meta
		}
		err = perr
	}
	fmt.Fprintf(os.Stderr, "warning: games tab unavailable: %v\n", err)
	return map[string]sheet.GameMeta{}
}
