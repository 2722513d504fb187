package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pable/hoopstats/internal/model"
	"github.com/pable/hoopstats/internal/roster"
)

func stats(pts, ast, orb, drb, stl, blk float64) map[model.Stat]float64 {
	return map[model.Stat]float64{
		model.Points:      pts,
		model.Assists:     ast,
		model.OffRebounds: orb,
		model.DefRebounds: drb,
		model.Steals:      stl,
		model.Blocks:      blk,
	}
}

func testServer() http.Handler {
	tbl := roster.NewTable([]model.Player{
		model.NewPlayer("Point Guard", "LAL", "PG", 25, stats(20, 9, 0.5, 3, 1.8, 0.2)),
		model.NewPlayer("Shooter", "LAL", "SG", 27, stats(24, 3, 0.6, 3.5, 1, 0.3)),
		model.NewPlayer("Wing", "BOS", "SF", 29, stats(27, 5, 1, 7, 1.1, 0.6)),
		model.NewPlayer("Big Forward", "BOS", "PF", 31, stats(18, 2, 2, 6, 0.7, 1.2)),
		model.NewPlayer("Center", "DEN", "C", 28, stats(26, 9, 3, 9, 1.4, 0.9)),
	})
	s := New(tbl, Options{Port: 0, Season: "2023-2024"})
	return s.Router(nil)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	rec := get(t, testServer(), "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var body map[string]any
	decode(t, rec, &body)
	if body["players"].(float64) != 5 {
		t.Errorf("players: %v", body["players"])
	}
}

func TestOptions(t *testing.T) {
	rec := get(t, testServer(), "/api/v1/options")
	var body struct {
		Season     string     `json:"season"`
		Teams      []string   `json:"teams"`
		Categories []string   `json:"categories"`
		Stats      []statJSON `json:"stats"`
	}
	decode(t, rec, &body)
	if body.Season != "2023-2024" {
		t.Errorf("season: %q", body.Season)
	}
	if strings.Join(body.Teams, ",") != "BOS,DEN,LAL" {
		t.Errorf("teams: %v", body.Teams)
	}
	if strings.Join(body.Categories, ",") != "PTS,AST,REB,STL,BLK" {
		t.Errorf("categories: %v", body.Categories)
	}
	if len(body.Stats) != len(model.AllStats()) {
		t.Fatalf("stats: want %d, got %d", len(model.AllStats()), len(body.Stats))
	}
	trb := body.Stats[4]
	if trb.Code != "TRB" || trb.Label != "REB" || trb.Name != "total_rebounds" {
		t.Errorf("rebound stat: %+v", trb)
	}
}

func TestPlayers_Filter(t *testing.T) {
	rec := get(t, testServer(), "/api/v1/players?team=LAL&team=DEN")
	var body struct {
		Count   int          `json:"count"`
		Players []playerJSON `json:"players"`
	}
	decode(t, rec, &body)
	if body.Count != 3 {
		t.Fatalf("count: want 3, got %d", body.Count)
	}
	if body.Players[0].Name != "Point Guard" || body.Players[2].Name != "Center" {
		t.Errorf("table order not kept: %+v", body.Players)
	}

	rec = get(t, testServer(), "/api/v1/players?team=BOS,DEN&pos=C")
	decode(t, rec, &body)
	if body.Count != 1 || body.Players[0].Name != "Center" {
		t.Errorf("comma-separated filter: %+v", body)
	}
}

func TestLeaders(t *testing.T) {
	rec := get(t, testServer(), "/api/v1/leaders?stat=reb&n=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var body struct {
		Stat    string       `json:"stat"`
		Players []playerJSON `json:"players"`
	}
	decode(t, rec, &body)
	if body.Stat != "REB" || len(body.Players) != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Players[0].Name != "Center" || body.Players[0].Stats["REB"] != 12 {
		t.Errorf("leader: %+v", body.Players[0])
	}
}

func TestLeaders_BadInput(t *testing.T) {
	h := testServer()
	for _, target := range []string{
		"/api/v1/leaders?stat=height",
		"/api/v1/leaders?n=0",
		"/api/v1/leaders?n=ten",
	} {
		if rec := get(t, h, target); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: want 400, got %d", target, rec.Code)
		}
	}
}

func TestCompare(t *testing.T) {
	h := testServer()
	rec := get(t, h, "/api/v1/compare?name=Wing&name=Center")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var body struct {
		Players []playerJSON `json:"players"`
	}
	decode(t, rec, &body)
	if len(body.Players) != 2 || body.Players[0].Name != "Wing" {
		t.Fatalf("request order not kept: %+v", body.Players)
	}
	if _, ok := body.Players[0].Stats["FG%"]; ok {
		t.Error("compare should only project the comparison stats")
	}

	if rec := get(t, h, "/api/v1/compare?name=Wing"); rec.Code != http.StatusBadRequest {
		t.Errorf("one name: want 400, got %d", rec.Code)
	}
	if rec := get(t, h, "/api/v1/compare?name=Wing&name=Nobody"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown name: want 404, got %d", rec.Code)
	}
}

func TestCard(t *testing.T) {
	h := testServer()
	rec := get(t, h, "/api/v1/players/Big%20Forward")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var body struct {
		Player playerJSON `json:"player"`
		Trend  []float64  `json:"trend"`
	}
	decode(t, rec, &body)
	if body.Player.Age != 31 || len(body.Trend) != 5 || body.Trend[0] != 16 {
		t.Errorf("unexpected card: %+v", body)
	}

	if rec := get(t, h, "/api/v1/players/Nobody"); rec.Code != http.StatusNotFound {
		t.Errorf("want 404, got %d", rec.Code)
	}
}

func TestCard_EscapedNames(t *testing.T) {
	tbl := roster.NewTable([]model.Player{
		model.NewPlayer("D'Angelo Russell", "LAL", "PG", 28, stats(18, 6, 0.5, 2.6, 0.9, 0.5)),
	})
	h := New(tbl, Options{}).Router(nil)
	for _, target := range []string{
		"/api/v1/players/D'Angelo%20Russell",
		"/api/v1/players/D%27Angelo%20Russell",
	} {
		rec := get(t, h, target)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: want 200, got %d: %s", target, rec.Code, rec.Body)
			continue
		}
		var body struct {
			Player playerJSON `json:"player"`
		}
		decode(t, rec, &body)
		if body.Player.Name != "D'Angelo Russell" {
			t.Errorf("%s: got %q", target, body.Player.Name)
		}
	}
}

func TestCard_Filtered(t *testing.T) {
	h := testServer()
	if rec := get(t, h, "/api/v1/players/Wing?team=BOS"); rec.Code != http.StatusOK {
		t.Errorf("matching filter: want 200, got %d", rec.Code)
	}
	if rec := get(t, h, "/api/v1/players/Wing?team=LAL"); rec.Code != http.StatusNotFound {
		t.Errorf("player outside filter: want 404, got %d", rec.Code)
	}
}

func TestTeam(t *testing.T) {
	h := testServer()
	post := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/team", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := post(`{"picks":{"PG":"Point Guard","SG":"Shooter","SF":"Wing","PF":"Big Forward","C":"Center"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var body struct {
		Players  int                `json:"players"`
		Averages map[string]float64 `json:"averages"`
	}
	decode(t, rec, &body)
	if body.Players != 5 || body.Averages["PTS"] != 23 {
		t.Errorf("unexpected team: %+v", body)
	}

	if rec := post(`{"picks":{"PG":"Point Guard"}}`); rec.Code != http.StatusBadRequest {
		t.Errorf("incomplete team: want 400, got %d", rec.Code)
	}
	if rec := post(`{"picks":{"PG":"Center","SG":"Shooter","SF":"Wing","PF":"Big Forward","C":"Center"}}`); rec.Code != http.StatusNotFound {
		t.Errorf("wrong position: want 404, got %d", rec.Code)
	}
	if rec := post(`not json`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad body: want 400, got %d", rec.Code)
	}
}

func TestDashboard(t *testing.T) {
	h := testServer()
	rec := get(t, h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"NBA Player Performance Analyzer", "Wing is the top scorer", "Build Your Dream Team"} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}

	rec = get(t, h, "/?name=Wing")
	if !strings.Contains(rec.Body.String(), "Select 2–3 players to compare.") {
		t.Error("expected a selection-size hint")
	}

	rec = get(t, h, "/?PG=Point+Guard&SG=Shooter&SF=Wing&PF=Big+Forward&C=Center")
	if !strings.Contains(rec.Body.String(), "Team avg") {
		t.Error("expected team averages for a full roster")
	}
}

func TestDashboard_ComparePicker(t *testing.T) {
	h := testServer()
	body := get(t, h, "/").Body.String()
	if !strings.Contains(body, `<select name="name" multiple`) {
		t.Fatal("dashboard has no comparison picker")
	}

	body = get(t, h, "/?name=Wing&name=Center").Body.String()
	for _, want := range []string{"<option selected>Wing</option>", "<option selected>Center</option>"} {
		if !strings.Contains(body, want) {
			t.Errorf("picker should keep %q selected", want)
		}
	}
	if strings.Contains(body, "Select 2–3 players") {
		t.Error("two picks are a valid comparison")
	}
}

func TestDashboard_PlayerCard(t *testing.T) {
	h := testServer()
	body := get(t, h, "/?card=Big+Forward").Body.String()
	for _, want := range []string{"Player Insights Card", "Age: 31", "Game 1", "Game 5", "16.0"} {
		if !strings.Contains(body, want) {
			t.Errorf("card missing %q", want)
		}
	}

	body = get(t, h, "/?card=Big+Forward&team=LAL").Body.String()
	if !strings.Contains(body, "Player not found in the current filters.") {
		t.Error("card should follow the filters")
	}
}

func TestDashboard_Dataset(t *testing.T) {
	h := testServer()
	body := get(t, h, "/").Body.String()
	if !strings.Contains(body, "Explore Full Dataset") || !strings.Contains(body, "5 players") {
		t.Error("expected the full dataset table")
	}

	body = get(t, h, "/?team=DEN").Body.String()
	if !strings.Contains(body, "1 players") {
		t.Error("dataset table should show the filtered rows")
	}
	if !strings.Contains(body, "Wing is the top scorer") {
		t.Error("insight line uses the whole season")
	}
}
