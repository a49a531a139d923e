package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/howardmhl/TabletopAndBottoms/internal/campaign"
	"github.com/howardmhl/TabletopAndBottoms/internal/gviz"
	"github.com/howardmhl/TabletopAndBottoms/internal/report"
)

var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Print the legacy-campaign chapter log and family rosters",
	Args:  cobra.NoArgs,
	RunE:  runCampaign,
}

func runCampaign(cmd *cobra.Command, args []string) error {
	if err := requireSheetID(); err != nil {
		return err
	}
	ctx, cancel := fetchContext()
	defer cancel()

	table, err := gviz.NewClient(sheetID).FetchTable(ctx, campaignTab)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", campaignTab, err)
	}
	log, err := campaign.ParseTable(table)
	if err != nil {
		return fmt.Errorf("parse %s: %w", campaignTab, err)
	}

	report.PrintCampaign(os.Stdout, log)
	return nil
}
