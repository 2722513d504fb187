package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/hoopstats/internal/report"
)

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List players matching --team/--pos",
	Args:  cobra.NoArgs,
	RunE:  runPlayers,
}

func runPlayers(cmd *cobra.Command, args []string) error {
	t, err := loadFiltered()
	if err != nil {
		return err
	}
	if t.Len() == 0 {
		fmt.Fprintln(os.Stdout, "No players match the selected filters.")
		return nil
	}
	report.PrintRoster(os.Stdout, t.Players())
	fmt.Fprintf(os.Stdout, "\n(%d players)\n", t.Len())
	return nil
}
