package server

import (
	"context"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/pable/hoopstats/internal/model"
	"github.com/pable/hoopstats/internal/query"
	"github.com/pable/hoopstats/internal/report"
	"github.com/pable/hoopstats/internal/roster"
)

type dashboardCell struct {
	Label string
	Value string
}

type dashboardRow struct {
	Name, Team, Position string
	Cells                []dashboardCell
}

type teamSlot struct {
	Position string
	Pool     []string
	Picked   string
}

type playerCard struct {
	dashboardRow
	Age   string
	Trend []dashboardCell
}

type dashboardData struct {
	Season      string
	Teams       []string
	Positions   []string
	Categories  []string
	Criteria    query.Criteria
	Stat        string
	Leaders     []dashboardRow
	Names       []string // player names in the filtered view
	Picked      []string // names chosen for comparison
	Compare     []dashboardRow
	CompareHint string
	CardName    string
	Card        *playerCard
	CardHint    string
	Slots       []teamSlot
	TeamAvg     []dashboardCell
	TeamHint    string
	Columns     []string
	Roster      []dashboardRow
	Insight     string
}

func selected(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

var dashboardTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"selected": selected,
}).Parse(`<!doctype html>
<html lang="en"><head><meta charset="UTF-8"><title>NBA Player Performance Analyzer</title>
<style>
body{font-family:sans-serif;margin:1.5rem;background:#f7f0e6;color:#292524}
.cols{display:grid;grid-template-columns:1fr 1fr;gap:1.5rem}
section{background:#fff;border-radius:12px;padding:1rem;box-shadow:0 2px 8px #0002}
table{border-collapse:collapse;width:100%}td,th{padding:.25rem .5rem;text-align:right}
td:first-child,th:first-child{text-align:left}.hint{color:#b45309}
</style></head><body>
<h1>NBA Player Performance Analyzer</h1>
<p>Season {{.Season}}</p>
{{if .Insight}}<p><strong>Insight:</strong> {{.Insight}}</p>{{end}}
<form method="get" action="/">
<div class="cols">
<div>
<section><h2>Filters</h2>
<label>Team <select name="team" multiple size="6">{{range .Teams}}<option {{if selected $.Criteria.Teams .}}selected{{end}}>{{.}}</option>{{end}}</select></label>
<label>Position <select name="pos" multiple size="6">{{range .Positions}}<option {{if selected $.Criteria.Positions .}}selected{{end}}>{{.}}</option>{{end}}</select></label>
</section>
<section><h2>Top 10 Leaderboard</h2>
<select name="stat">{{range .Categories}}<option {{if eq . $.Stat}}selected{{end}}>{{.}}</option>{{end}}</select>
<table><tr><th>Player</th><th>Tm</th><th>Pos</th><th>{{.Stat}}</th></tr>
{{range .Leaders}}<tr><td>{{.Name}}</td><td>{{.Team}}</td><td>{{.Position}}</td>{{range .Cells}}<td>{{.Value}}</td>{{end}}</tr>{{end}}
</table></section>
</div>
<div>
<section><h2>Player Comparison</h2>
<label>Players (2–3) <select name="name" multiple size="6">{{range .Names}}<option {{if selected $.Picked .}}selected{{end}}>{{.}}</option>{{end}}</select></label>
{{if .CompareHint}}<p class="hint">{{.CompareHint}}</p>{{end}}
{{if .Compare}}<table><tr><th>Player</th>{{range (index .Compare 0).Cells}}<th>{{.Label}}</th>{{end}}</tr>
{{range .Compare}}<tr><td>{{.Name}}</td>{{range .Cells}}<td>{{.Value}}</td>{{end}}</tr>{{end}}
</table>{{end}}
</section>
<section><h2>Player Insights Card</h2>
<select name="card"><option value=""></option>{{range .Names}}<option {{if eq . $.CardName}}selected{{end}}>{{.}}</option>{{end}}</select>
{{if .CardHint}}<p class="hint">{{.CardHint}}</p>{{end}}
{{with .Card}}<h3>{{.Name}}</h3>
<p>{{.Position}} | {{.Team}} | Age: {{.Age}}</p>
<table>{{range .Cells}}<tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>{{end}}</table>
{{if .Trend}}<p>Performance trend (illustrative)</p>
<table><tr>{{range .Trend}}<th>{{.Label}}</th>{{end}}</tr><tr>{{range .Trend}}<td>{{.Value}}</td>{{end}}</tr></table>{{end}}
{{end}}
</section>
<section><h2>Build Your Dream Team</h2>
{{range .Slots}}<label>{{.Position}} <select name="{{.Position}}"><option value=""></option>{{$p := .Picked}}{{range .Pool}}<option {{if eq . $p}}selected{{end}}>{{.}}</option>{{end}}</select></label><br>{{end}}
{{if .TeamHint}}<p class="hint">{{.TeamHint}}</p>{{end}}
{{if .TeamAvg}}<table><tr><th>Stat</th><th>Team avg</th></tr>{{range .TeamAvg}}<tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>{{end}}</table>{{end}}
</section>
</div>
</div>
<p><button type="submit">Apply</button></p>
</form>
<section><h2>Explore Full Dataset</h2>
<p>{{len .Roster}} players</p>
<table><tr><th>Player</th><th>Tm</th><th>Pos</th>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Roster}}<tr><td>{{.Name}}</td><td>{{.Team}}</td><td>{{.Position}}</td>{{range .Cells}}<td>{{.Value}}</td>{{end}}</tr>{{end}}
</table></section>
</body></html>`))

// buildDashboard runs every dashboard query for one request's parameters.
func buildDashboard(t *roster.Table, season string, q url.Values) dashboardData {
	crit := criteriaFrom(q)
	view := query.Filter(t, crit)

	d := dashboardData{
		Season:    season,
		Teams:     t.Teams(),
		Positions: t.Positions(),
		Criteria:  crit,
		Stat:      model.Points.Label(),
	}
	for _, s := range model.ComparisonStats {
		d.Categories = append(d.Categories, s.Label())
	}

	stat := model.Points
	if v := q.Get("stat"); v != "" {
		if s, err := model.ParseStat(v); err == nil {
			stat = s
		}
	}
	d.Stat = stat.Label()
	if ranked, err := query.TopN(view, stat, defaultLeaders); err == nil {
		for _, p := range ranked {
			v, ok := p.Stat(stat)
			d.Leaders = append(d.Leaders, dashboardRow{
				Name: p.Name, Team: p.Team, Position: p.Position,
				Cells: []dashboardCell{{stat.Label(), report.FormatStat(stat, v, ok)}},
			})
		}
	}

	for _, p := range view.Players() {
		d.Names = append(d.Names, p.Name)
		row := dashboardRow{Name: p.Name, Team: p.Team, Position: p.Position}
		for _, st := range model.AllStats() {
			v, ok := p.Stat(st)
			row.Cells = append(row.Cells, dashboardCell{st.Label(), report.FormatStat(st, v, ok)})
		}
		d.Roster = append(d.Roster, row)
	}
	for _, st := range model.AllStats() {
		d.Columns = append(d.Columns, st.Label())
	}

	if name := q.Get("card"); name != "" {
		d.CardName = name
		if p, ok := view.Lookup(name); ok {
			d.Card = newPlayerCard(p)
		} else {
			d.CardHint = "Player not found in the current filters."
		}
	}

	if names := q["name"]; len(names) > 0 {
		d.Picked = names
		rows, err := query.Compare(view, names)
		switch {
		case errors.Is(err, query.ErrInvalidSelectionSize):
			d.CompareHint = "Select 2–3 players to compare."
		case err != nil:
			d.CompareHint = err.Error()
		}
		for _, r := range rows {
			row := dashboardRow{Name: r.Player.Name, Team: r.Player.Team, Position: r.Player.Position}
			for _, s := range model.ComparisonStats {
				v, ok := r.Value(s)
				row.Cells = append(row.Cells, dashboardCell{s.Label(), report.FormatStat(s, v, ok)})
			}
			d.Compare = append(d.Compare, row)
		}
	}

	picks := make(map[string]string, len(query.RequiredPositions))
	for _, pos := range query.RequiredPositions {
		slot := teamSlot{Position: pos, Picked: q.Get(pos)}
		for _, p := range query.PositionRoster(view, pos) {
			slot.Pool = append(slot.Pool, p.Name)
		}
		if slot.Picked != "" {
			picks[pos] = slot.Picked
		}
		d.Slots = append(d.Slots, slot)
	}
	if len(picks) > 0 {
		if len(picks) < len(query.RequiredPositions) {
			d.TeamHint = "Pick one player for every position."
		} else if m, err := query.AssembleTeam(view, picks); err != nil {
			d.TeamHint = err.Error()
		} else {
			for _, s := range model.ComparisonStats {
				v, ok := m.Value(s)
				d.TeamAvg = append(d.TeamAvg, dashboardCell{s.Label(), report.FormatStat(s, v, ok)})
			}
		}
	}

	if top, ok := query.TopScorer(t); ok {
		pts, _ := top.Stat(model.Points)
		d.Insight = top.Name + " is the top scorer this season with an average of " +
			report.FormatStat(model.Points, pts, true) + " points!"
	}
	return d
}

func newPlayerCard(p model.Player) *playerCard {
	c := &playerCard{
		dashboardRow: dashboardRow{Name: p.Name, Team: p.Team, Position: p.Position},
		Age:          "—",
	}
	if p.Age > 0 {
		c.Age = strconv.Itoa(p.Age)
	}
	for _, st := range []model.Stat{model.Points, model.Assists, model.TotalRebounds} {
		v, ok := p.Stat(st)
		c.Cells = append(c.Cells, dashboardCell{st.Label(), report.FormatStat(st, v, ok)})
	}
	for i, v := range model.SyntheticTrend(p) {
		c.Trend = append(c.Trend, dashboardCell{"Game " + strconv.Itoa(i+1), report.FormatStat(model.Points, v, true)})
	}
	return c
}

func dashboardComponent(d dashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return dashboardTmpl.Execute(w, d)
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d := buildDashboard(s.table, s.season, r.URL.Query())
	templ.Handler(dashboardComponent(d), templ.WithErrorHandler(func(r *http.Request, err error) http.Handler {
		slog.Error("render dashboard", "err", err)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "render failed", http.StatusInternalServerError)
		})
	})).ServeHTTP(w, r)
}
