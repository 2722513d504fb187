package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pable/hoopstats/internal/model"
	"github.com/pable/hoopstats/internal/query"
	"github.com/pable/hoopstats/internal/roster"
)

func testTable() *roster.Table {
	return roster.NewTable([]model.Player{
		model.NewPlayer("Alice", "LAL", "PG", 27, map[model.Stat]float64{
			model.Points: 24.5, model.Assists: 7, model.OffRebounds: 1, model.DefRebounds: 4.5, model.Steals: 1.3,
		}),
		model.NewPlayer("Bob", "BOS", "C", 0, map[model.Stat]float64{
			model.Points: 12, model.Blocks: 2.1,
		}),
	})
}

func TestFormatStat(t *testing.T) {
	cases := []struct {
		s    model.Stat
		v    float64
		ok   bool
		want string
	}{
		{model.Points, 24.456, true, "24.5"},
		{model.FGPct, 0.4812, true, "0.481"},
		{model.Points, 0, false, "—"},
	}
	for _, c := range cases {
		if got := FormatStat(c.s, c.v, c.ok); got != c.want {
			t.Errorf("FormatStat(%v, %v, %v) = %q, want %q", c.s, c.v, c.ok, got, c.want)
		}
	}
}

func TestPrintLeaderboard(t *testing.T) {
	ranked, err := query.TopN(testTable(), model.Points, 10)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	PrintLeaderboard(&buf, model.Points, ranked)
	out := buf.String()

	if !strings.Contains(out, "Top 2 by PTS") {
		t.Errorf("missing title in output:\n%s", out)
	}
	if strings.Index(out, "Alice") > strings.Index(out, "Bob") {
		t.Errorf("expected Alice ranked above Bob:\n%s", out)
	}
}

func TestPrintComparison_MissingRendersDash(t *testing.T) {
	rows, err := query.Compare(testTable(), []string{"Alice", "Bob"})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	PrintComparison(&buf, rows)
	out := buf.String()

	if !strings.Contains(out, "—") {
		t.Errorf("expected missing values rendered as —:\n%s", out)
	}
	if !strings.Contains(out, "BLK  Bob (2.1)") {
		t.Errorf("expected Bob to lead blocks:\n%s", out)
	}
	if !strings.Contains(out, "REB") {
		t.Errorf("expected REB column:\n%s", out)
	}
}

func TestPrintPlayerCard(t *testing.T) {
	p, _ := testTable().Lookup("Alice")
	var buf bytes.Buffer
	PrintPlayerCard(&buf, p)
	out := buf.String()

	for _, want := range []string{"Alice  |  PG  |  LAL  |  Age: 27", "PPG: 24.5", "REB: 5.5", "GAME 5", "22.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("card missing %q:\n%s", want, out)
		}
	}
}

func TestPrintSummary(t *testing.T) {
	tbl := testTable()
	avg, err := query.Aggregate(tbl, []string{"Alice", "Bob"})
	if err != nil {
		t.Fatal(err)
	}
	top, _ := query.TopScorer(tbl)
	var buf bytes.Buffer
	PrintSummary(&buf, Overview{
		Season:    "2023-2024",
		Players:   tbl.Len(),
		Teams:     len(tbl.Teams()),
		Positions: len(tbl.Positions()),
		Averages:  avg,
		TopScorer: &top,
	})
	out := buf.String()
	if !strings.Contains(out, "Alice is the top scorer this season with an average of 24.5 points!") {
		t.Errorf("missing insight line:\n%s", out)
	}
	if !strings.Contains(out, "18.2") && !strings.Contains(out, "18.3") {
		t.Errorf("expected league points average 18.25 in output:\n%s", out)
	}
}

func TestPrintTeamAverages(t *testing.T) {
	m := query.Means{
		Players: 5,
		Values:  map[model.Stat]float64{model.Points: 21.8},
		Counts:  map[model.Stat]int{model.Points: 5},
	}
	picks := map[string]string{"PG": "Alice", "C": "Bob"}
	var buf bytes.Buffer
	PrintTeamAverages(&buf, picks, m)
	out := buf.String()
	if !strings.Contains(out, "21.8") || !strings.Contains(out, "Team averages (5 players)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
