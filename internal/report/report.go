package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/hoopstats/internal/model"
	"github.com/pable/hoopstats/internal/query"
)

const missing = "—"

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// FormatStat renders a stat value; shooting percentages keep three decimals.
func FormatStat(s model.Stat, v float64, ok bool) string {
	if !ok {
		return missing
	}
	switch s {
	case model.FGPct, model.ThreePct, model.FTPct:
		return fmt.Sprintf("%.3f", v)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}

func playerStat(p model.Player, s model.Stat) string {
	v, ok := p.Stat(s)
	return FormatStat(s, v, ok)
}

func orMissing(s string) string {
	if s == "" {
		return missing
	}
	return s
}

// PrintRoster prints every row of the (filtered) dataset with all stat columns.
func PrintRoster(w io.Writer, players []model.Player) {
	table := newTable(w)
	header := []any{"PLAYER", "TM", "POS", "AGE"}
	for _, s := range model.AllStats() {
		header = append(header, s.String())
	}
	table.Header(header...)

	for _, p := range players {
		age := missing
		if p.Age > 0 {
			age = strconv.Itoa(p.Age)
		}
		row := []any{p.Name, orMissing(p.Team), orMissing(p.Position), age}
		for _, s := range model.AllStats() {
			row = append(row, playerStat(p, s))
		}
		table.Append(row...)
	}
	table.Render()
}

// PrintLeaderboard prints a ranked leaderboard for one stat.
func PrintLeaderboard(w io.Writer, stat model.Stat, ranked []model.Player) {
	fmt.Fprintf(w, "\nTop %d by %s\n\n", len(ranked), stat.Label())
	table := newTable(w)
	table.Header("#", "PLAYER", "TM", "POS", stat.Label())
	for i, p := range ranked {
		table.Append(
			strconv.Itoa(i+1),
			p.Name,
			orMissing(p.Team),
			orMissing(p.Position),
			playerStat(p, stat),
		)
	}
	table.Render()
}

// PrintComparison prints one row per compared player over the fixed stat projection.
func PrintComparison(w io.Writer, rows []query.Projection) {
	table := newTable(w)
	header := []any{"PLAYER", "TM", "POS"}
	for _, s := range model.ComparisonStats {
		header = append(header, s.Label())
	}
	table.Header(header...)

	for _, r := range rows {
		row := []any{r.Player.Name, orMissing(r.Player.Team), orMissing(r.Player.Position)}
		for _, s := range model.ComparisonStats {
			v, ok := r.Value(s)
			row = append(row, FormatStat(s, v, ok))
		}
		table.Append(row...)
	}
	table.Render()

	// Per-stat leader line, the text equivalent of the comparison chart.
	for _, s := range model.ComparisonStats {
		best, bestV := "", 0.0
		for _, r := range rows {
			if v, ok := r.Value(s); ok && (best == "" || v > bestV) {
				best, bestV = r.Player.Name, v
			}
		}
		if best != "" {
			fmt.Fprintf(w, "  %-4s %s (%.1f)\n", s.Label(), best, bestV)
		}
	}
}

// PrintTeamAverages prints the dream-team lineup and its average stats.
func PrintTeamAverages(w io.Writer, picks map[string]string, m query.Means) {
	fmt.Fprintf(w, "\nDream team\n\n")
	lineup := newTable(w)
	lineup.Header("POS", "PLAYER")
	for _, pos := range query.RequiredPositions {
		lineup.Append(pos, orMissing(picks[pos]))
	}
	lineup.Render()

	fmt.Fprintf(w, "\nTeam averages (%d players)\n\n", m.Players)
	table := newTable(w)
	table.Header("STAT", "AVG", "N")
	for _, s := range model.ComparisonStats {
		v, ok := m.Value(s)
		table.Append(s.Label(), FormatStat(s, v, ok), strconv.Itoa(m.Counts[s]))
	}
	table.Render()
}

// PrintPlayerCard prints a player's headline line, key stats and the
// illustrative five-game trend.
func PrintPlayerCard(w io.Writer, p model.Player) {
	age := missing
	if p.Age > 0 {
		age = strconv.Itoa(p.Age)
	}
	fmt.Fprintf(w, "\n%s  |  %s  |  %s  |  Age: %s\n\n", p.Name, orMissing(p.Position), orMissing(p.Team), age)
	fmt.Fprintf(w, "  PPG: %s\n", playerStat(p, model.Points))
	fmt.Fprintf(w, "  AST: %s\n", playerStat(p, model.Assists))
	fmt.Fprintf(w, "  REB: %s\n", playerStat(p, model.TotalRebounds))

	trend := model.SyntheticTrend(p)
	if trend == nil {
		return
	}
	fmt.Fprintf(w, "\n  Trend (illustrative, not per-game data)\n\n")
	table := newTable(w)
	header := make([]any, len(trend))
	row := make([]any, len(trend))
	for i, v := range trend {
		header[i] = fmt.Sprintf("GAME %d", i+1)
		row[i] = fmt.Sprintf("%.1f", v)
	}
	table.Header(header...)
	table.Append(row...)
	table.Render()
}

// PrintOptions lists the team and position codes available for filtering.
func PrintOptions(w io.Writer, teams, positions []string) {
	fmt.Fprintf(w, "Teams     (%d): %s\n", len(teams), strings.Join(teams, " "))
	fmt.Fprintf(w, "Positions (%d): %s\n", len(positions), strings.Join(positions, " "))
	stats := make([]string, 0, len(model.ComparisonStats))
	for _, s := range model.ComparisonStats {
		stats = append(stats, s.Label())
	}
	fmt.Fprintf(w, "Categories   : %s\n", strings.Join(stats, " "))
}

// Overview is the dataset summary shown by the summary command.
type Overview struct {
	Season    string
	Players   int
	Skipped   int
	Teams     int
	Positions int
	Averages  query.Means
	TopScorer *model.Player
}

// PrintSummary prints the dataset overview and the top-scorer insight line.
func PrintSummary(w io.Writer, ov Overview) {
	fmt.Fprintf(w, "\n=== Dataset Summary ===\n\n")
	if ov.Season != "" {
		fmt.Fprintf(w, "  Season        : %s\n", ov.Season)
	}
	fmt.Fprintf(w, "  Players       : %d\n", ov.Players)
	fmt.Fprintf(w, "  Rows skipped  : %d\n", ov.Skipped)
	fmt.Fprintf(w, "  Teams         : %d\n", ov.Teams)
	fmt.Fprintf(w, "  Positions     : %d\n", ov.Positions)

	if ov.Averages.Players > 0 {
		fmt.Fprintf(w, "\n--- League averages ---\n\n")
		table := newTable(w)
		table.Header("STAT", "AVG", "N")
		for _, s := range model.ComparisonStats {
			v, ok := ov.Averages.Value(s)
			table.Append(s.Label(), FormatStat(s, v, ok), strconv.Itoa(ov.Averages.Counts[s]))
		}
		table.Render()
	}

	if ov.TopScorer != nil {
		pts, _ := ov.TopScorer.Stat(model.Points)
		fmt.Fprintf(w, "\nInsight: %s is the top scorer this season with an average of %.1f points!\n",
			ov.TopScorer.Name, pts)
	}
}
