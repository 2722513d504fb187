package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/hoopstats/internal/query"
	"github.com/pable/hoopstats/internal/report"
)

var teamPicks = make(map[string]*string, len(query.RequiredPositions))

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Average the stats of a five-man lineup",
	Long: `Pick one player for each of PG, SG, SF, PF and C and print the lineup's
per-stat averages. Each pick must be listed at that position.`,
	Example: `  hoopstats team --pg "Stephen Curry" --sg "Devin Booker" --sf "Jayson Tatum" \
    --pf "Giannis Antetokounmpo" --c "Nikola Jokić"`,
	Args: cobra.NoArgs,
	RunE: runTeam,
}

func init() {
	for _, pos := range query.RequiredPositions {
		teamPicks[pos] = teamCmd.Flags().String(strings.ToLower(pos), "", "player at "+pos)
	}
}

func runTeam(cmd *cobra.Command, args []string) error {
	picks := make(map[string]string, len(teamPicks))
	for pos, name := range teamPicks {
		if *name != "" {
			picks[pos] = *name
		}
	}
	t, err := loadFiltered()
	if err != nil {
		return err
	}
	m, err := query.AssembleTeam(t, picks)
	if err != nil {
		return withHint(err)
	}
	report.PrintTeamAverages(os.Stdout, picks, m)
	return nil
}
