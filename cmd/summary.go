package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/hoopstats/internal/query"
	"github.com/pable/hoopstats/internal/report"
	"github.com/pable/hoopstats/internal/roster"
)

// summaryCmd is the cobra command for displaying a high-level dataset overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the loaded season",
	Long: `Display aggregate facts about the season file: player count, rows skipped
at load, team and position counts, league averages for the comparison
stats, and the top scorer.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	full, err := loadTable()
	if err != nil {
		return err
	}
	t := query.Filter(full, currentCriteria())
	if t.Len() == 0 {
		fmt.Fprintln(os.Stdout, "No players match the selected filters.")
		return nil
	}
	ov, err := buildOverview(full, t)
	if err != nil {
		return err
	}
	report.PrintSummary(os.Stdout, ov)
	return nil
}

// buildOverview summarises view. Skipped rows and the top scorer come from full.
func buildOverview(full, view *roster.Table) (report.Overview, error) {
	ov := report.Overview{
		Season:    cfg.Data.Season,
		Players:   view.Len(),
		Skipped:   full.Skipped(),
		Teams:     len(view.Teams()),
		Positions: len(view.Positions()),
	}
	if view.Len() == 0 {
		return ov, nil
	}
	names := make([]string, 0, view.Len())
	for _, p := range view.Players() {
		names = append(names, p.Name)
	}
	avg, err := query.Aggregate(view, names)
	if err != nil {
		return ov, fmt.Errorf("league averages: %w", err)
	}
	ov.Averages = avg
	if top, ok := query.TopScorer(full); ok {
		ov.TopScorer = &top
	}
	return ov, nil
}
