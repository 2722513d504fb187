package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/hoopstats/internal/report"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Show the team and position codes usable as filters",
	Args:  cobra.NoArgs,
	RunE:  runOptions,
}

func runOptions(cmd *cobra.Command, args []string) error {
	t, err := loadTable()
	if err != nil {
		return err
	}
	report.PrintOptions(os.Stdout, t.Teams(), t.Positions())
	return nil
}
