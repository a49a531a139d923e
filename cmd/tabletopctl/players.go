package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/howardmhl/TabletopAndBottoms/internal/gviz"
	"github.com/howardmhl/TabletopAndBottoms/internal/report"
	"github.com/howardmhl/TabletopAndBottoms/internal/sheet"
)

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Print known player metadata",
	Args:  cobra.NoArgs,
	RunE:  runPlayers,
}

func runPlayers(cmd *cobra.Command, args []string) error {
	if err := requireSheetID(); err != nil {
		return err
	}
	ctx, cancel := fetchContext()
	defer cancel()

	table, err := gviz.NewClient(sheetID).FetchTable(ctx, playersTab)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", playersTab, err)
	}
	meta, err := sheet.ParsePlayerTable(table, nil)
	if err != nil {
		return fmt.Errorf("parse %s: %w", playersTab, err)
	}

	report.PrintPlayers(os.Stdout, meta)
	return nil
}
