package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/hoopstats/internal/query"
	"github.com/pable/hoopstats/internal/report"
)

var compareCmd = &cobra.Command{
	Use:   "compare <player> <player> [<player>]",
	Short: "Compare two or three players side by side",
	Long: `Compare PTS, AST, REB, STL and BLK for two or three players, in the order
given. Quote names that contain spaces.`,
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	t, err := loadFiltered()
	if err != nil {
		return err
	}
	rows, err := query.Compare(t, args)
	if err != nil {
		return withHint(err)
	}
	report.PrintComparison(os.Stdout, rows)
	return nil
}
