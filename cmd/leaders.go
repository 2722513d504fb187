package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/hoopstats/internal/model"
	"github.com/pable/hoopstats/internal/query"
	"github.com/pable/hoopstats/internal/report"
)

var (
	leadersStat string
	leadersTop  int
)

var leadersCmd = &cobra.Command{
	Use:   "leaders",
	Short: "Rank players by a stat",
	Long: `Rank the filtered players by one stat, highest first. Players with no
value for the stat are left out; ties keep file order.

Stats: PTS AST ORB DRB REB STL BLK TOV FG% 3P% FT%`,
	Args: cobra.NoArgs,
	RunE: runLeaders,
}

func init() {
	leadersCmd.Flags().StringVar(&leadersStat, "stat", "PTS", "stat to rank by")
	leadersCmd.Flags().IntVarP(&leadersTop, "top", "n", 10, "number of players to show")
}

func runLeaders(cmd *cobra.Command, args []string) error {
	stat, err := model.ParseStat(leadersStat)
	if err != nil {
		return withHint(err)
	}
	t, err := loadFiltered()
	if err != nil {
		return err
	}
	ranked, err := query.TopN(t, stat, leadersTop)
	if err != nil {
		return withHint(err)
	}
	if len(ranked) == 0 {
		fmt.Fprintln(os.Stdout, "No players match the selected filters.")
		return nil
	}
	report.PrintLeaderboard(os.Stdout, stat, ranked)
	return nil
}
