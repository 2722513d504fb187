package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pable/hoopstats/internal/model"
	"github.com/pable/hoopstats/internal/query"
)

const defaultLeaders = 10

type playerJSON struct {
	Name     string             `json:"name"`
	Team     string             `json:"team"`
	Position string             `json:"pos"`
	Age      int                `json:"age,omitempty"`
	Stats    map[string]float64 `json:"stats"`
}

type statJSON struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Name  string `json:"name"`
}

func toPlayerJSON(p model.Player, stats []model.Stat) playerJSON {
	out := playerJSON{
		Name:     p.Name,
		Team:     p.Team,
		Position: p.Position,
		Age:      p.Age,
		Stats:    make(map[string]float64, len(stats)),
	}
	for _, s := range stats {
		if v, ok := p.Stat(s); ok {
			out.Stats[s.Label()] = v
		}
	}
	return out
}

func toPlayersJSON(ps []model.Player, stats []model.Stat) []playerJSON {
	out := make([]playerJSON, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPlayerJSON(p, stats))
	}
	return out
}

func meansJSON(m query.Means) map[string]float64 {
	out := make(map[string]float64, len(m.Values))
	for s, v := range m.Values {
		out[s.Label()] = v
	}
	return out
}

// criteriaFrom reads repeated or comma-separated team/pos parameters.
func criteriaFrom(q url.Values) query.Criteria {
	return query.Criteria{
		Teams:     splitValues(q["team"]),
		Positions: splitValues(q["pos"]),
	}
}

func splitValues(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "hoopstats",
		"players": s.table.Len(),
	})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	categories := make([]string, 0, len(model.ComparisonStats))
	for _, st := range model.ComparisonStats {
		categories = append(categories, st.Label())
	}
	stats := make([]statJSON, 0, len(model.AllStats()))
	for _, st := range model.AllStats() {
		stats = append(stats, statJSON{Code: st.String(), Label: st.Label(), Name: st.LongName()})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"season":     s.season,
		"teams":      s.table.Teams(),
		"positions":  s.table.Positions(),
		"categories": categories,
		"stats":      stats,
		"required":   query.RequiredPositions,
	})
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	view := query.Filter(s.table, criteriaFrom(r.URL.Query()))
	respondJSON(w, http.StatusOK, map[string]any{
		"count":   view.Len(),
		"players": toPlayersJSON(view.Players(), model.AllStats()),
	})
}

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	// chi hands back the raw segment when the request path was escaped.
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid player name: %v", err))
		return
	}
	view := query.Filter(s.table, criteriaFrom(r.URL.Query()))
	p, ok := view.Lookup(name)
	if !ok {
		respondQueryError(w, fmt.Errorf("%w: %q", query.ErrPlayerNotFound, name))
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"player": toPlayerJSON(p, model.AllStats()),
		"trend":  model.SyntheticTrend(p),
	})
}

func (s *Server) handleLeaders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	statName := q.Get("stat")
	if statName == "" {
		statName = model.Points.String()
	}
	stat, err := model.ParseStat(statName)
	if err != nil {
		respondQueryError(w, err)
		return
	}
	n := defaultLeaders
	if v := q.Get("n"); v != "" {
		if n, err = strconv.Atoi(v); err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid n %q", v))
			return
		}
	}

	ranked, err := query.TopN(query.Filter(s.table, criteriaFrom(q)), stat, n)
	if err != nil {
		respondQueryError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"stat":    stat.Label(),
		"players": toPlayersJSON(ranked, []model.Stat{stat}),
	})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := query.Filter(s.table, criteriaFrom(q))
	rows, err := query.Compare(view, q["name"])
	if err != nil {
		respondQueryError(w, err)
		return
	}
	out := make([]playerJSON, 0, len(rows))
	for _, row := range rows {
		out = append(out, toPlayerJSON(row.Player, model.ComparisonStats))
	}
	respondJSON(w, http.StatusOK, map[string]any{"players": out})
}

type teamRequest struct {
	Picks     map[string]string `json:"picks"`
	Teams     []string          `json:"team"`
	Positions []string          `json:"pos"`
}

func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	view := query.Filter(s.table, query.Criteria{Teams: req.Teams, Positions: req.Positions})
	m, err := query.AssembleTeam(view, req.Picks)
	if err != nil {
		respondQueryError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"picks":    req.Picks,
		"players":  m.Players,
		"averages": meansJSON(m),
	})
}

// respondQueryError maps engine errors onto HTTP statuses.
func respondQueryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, query.ErrPlayerNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, query.ErrInvalidColumn),
		errors.Is(err, query.ErrInvalidSelectionSize),
		errors.Is(err, query.ErrEmptySelection),
		errors.Is(err, query.ErrInvalidLimit):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("query failed", "err", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response", "err", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
