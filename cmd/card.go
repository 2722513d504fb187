package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/hoopstats/internal/query"
	"github.com/pable/hoopstats/internal/report"
)

var cardCmd = &cobra.Command{
	Use:   "card <player>",
	Short: "Show a player card with a five-game scoring trend",
	Long: `Show points, assists and rebounds for one player. The five-game trend is illustrative: it
offsets the season scoring average and is not game data.`,
	Args: cobra.ExactArgs(1),
	RunE: runCard,
}

func runCard(cmd *cobra.Command, args []string) error {
	t, err := loadFiltered()
	if err != nil {
		return err
	}
	p, ok := t.Lookup(args[0])
	if !ok {
		return withHint(fmt.Errorf("%w: %q", query.ErrPlayerNotFound, args[0]))
	}
	report.PrintPlayerCard(os.Stdout, p)
	return nil
}
