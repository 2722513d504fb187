// Package query answers filter, leaderboard, comparison and team-average
// queries against a roster.Table. Every function is a pure function of its
// arguments: the table is never modified and results are fresh slices, so
// calls are safe to run concurrently against a shared table.
package query

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pable/hoopstats/internal/model"
	"github.com/pable/hoopstats/internal/roster"
)

var (
	// ErrInvalidColumn is returned for an unrecognised stat column.
	ErrInvalidColumn = model.ErrInvalidColumn
	// ErrPlayerNotFound is returned when a requested name is not in the table.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrInvalidSelectionSize is returned when a selection has the wrong number of players.
	ErrInvalidSelectionSize = errors.New("invalid selection size")
	// ErrEmptySelection is returned when averaging over zero players.
	ErrEmptySelection = errors.New("empty selection")
	// ErrInvalidLimit is returned when a leaderboard size is below 1.
	ErrInvalidLimit = errors.New("invalid limit")
)

// Comparison bounds.
const (
	MinCompare = 2
	MaxCompare = 3
)

// RequiredPositions are the roles a dream team fills, one player each.
var RequiredPositions = []string{"PG", "SG", "SF", "PF", "C"}

// Criteria selects rows by team and position. An empty slice leaves that
// dimension unfiltered.
type Criteria struct {
	Teams     []string
	Positions []string
}

// IsEmpty reports whether no filtering would be applied.
func (c Criteria) IsEmpty() bool {
	return len(c.Teams) == 0 && len(c.Positions) == 0
}

// Filter returns the rows matching c in table order. A result with zero rows
// is not an error.
func Filter(t *roster.Table, c Criteria) *roster.Table {
	if c.IsEmpty() {
		return t
	}
	teams := toSet(c.Teams)
	positions := toSet(c.Positions)

	out := make([]model.Player, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		p := t.At(i)
		if teams != nil {
			if _, ok := teams[p.Team]; !ok {
				continue
			}
		}
		if positions != nil {
			if _, ok := positions[p.Position]; !ok {
				continue
			}
		}
		out = append(out, p)
	}
	return roster.NewTable(out)
}

// TopN returns up to n rows ranked by stat, highest first. Rows missing the
// stat are left out. Ties keep table order.
func TopN(t *roster.Table, stat model.Stat, n int) ([]model.Player, error) {
	if !stat.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidColumn, stat)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}

	ranked := make([]model.Player, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		if p := t.At(i); p.Has(stat) {
			ranked = append(ranked, p)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, _ := ranked[i].Stat(stat)
		b, _ := ranked[j].Stat(stat)
		return a > b
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// TopScorer returns the player with the highest points average.
func TopScorer(t *roster.Table) (model.Player, bool) {
	top, err := TopN(t, model.Points, 1)
	if err != nil || len(top) == 0 {
		return model.Player{}, false
	}
	return top[0], true
}

// Projection is one player's values for the fixed comparison stats.
type Projection struct {
	Player model.Player
	Values map[model.Stat]float64 // missing stats are absent
}

// Value returns the projected value of s and whether it is present.
func (p Projection) Value(s model.Stat) (float64, bool) {
	v, ok := p.Values[s]
	return v, ok
}

// Compare projects 2–3 players onto model.ComparisonStats, in request order.
// Duplicate names produce one projection per occurrence.
func Compare(t *roster.Table, names []string) ([]Projection, error) {
	if len(names) < MinCompare || len(names) > MaxCompare {
		return nil, fmt.Errorf("%w: compare needs %d–%d players, got %d",
			ErrInvalidSelectionSize, MinCompare, MaxCompare, len(names))
	}
	out := make([]Projection, 0, len(names))
	for _, name := range names {
		p, ok := t.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrPlayerNotFound, name)
		}
		proj := Projection{Player: p, Values: make(map[model.Stat]float64, len(model.ComparisonStats))}
		for _, s := range model.ComparisonStats {
			if v, ok := p.Stat(s); ok {
				proj.Values[s] = v
			}
		}
		out = append(out, proj)
	}
	return out, nil
}

// Means holds per-stat averages over a selection.
type Means struct {
	Players int                    // rows that matched the selection
	Values  map[model.Stat]float64 // stats with no present value are absent
	Counts  map[model.Stat]int     // how many rows contributed to each mean
}

// Value returns the mean of s and whether any row contributed to it.
func (m Means) Value(s model.Stat) (float64, bool) {
	v, ok := m.Values[s]
	return v, ok
}

// Aggregate averages every stat over the rows whose name is in names. A value
// missing on one row is left out of that stat's mean rather than counted as
// zero. Callers that need an exact selection size (a five-man team) check it
// before calling.
func Aggregate(t *roster.Table, names []string) (Means, error) {
	if len(names) == 0 {
		return Means{}, ErrEmptySelection
	}
	want := toSet(names)
	found := make(map[string]bool, len(want))

	sums := make(map[model.Stat]float64)
	counts := make(map[model.Stat]int)
	matched := 0
	for i := 0; i < t.Len(); i++ {
		p := t.At(i)
		if _, ok := want[p.Name]; !ok {
			continue
		}
		found[p.Name] = true
		matched++
		for _, s := range model.AllStats() {
			if v, ok := p.Stat(s); ok {
				sums[s] += v
				counts[s]++
			}
		}
	}
	for _, name := range names {
		if !found[name] {
			return Means{}, fmt.Errorf("%w: %q", ErrPlayerNotFound, name)
		}
	}

	m := Means{
		Players: matched,
		Values:  make(map[model.Stat]float64, len(sums)),
		Counts:  counts,
	}
	for s, sum := range sums {
		m.Values[s] = sum / float64(counts[s])
	}
	return m, nil
}

// PositionRoster returns the rows whose position equals pos exactly
// (case-sensitive), in table order.
func PositionRoster(t *roster.Table, pos string) []model.Player {
	var out []model.Player
	for i := 0; i < t.Len(); i++ {
		if p := t.At(i); p.Position == pos {
			out = append(out, p)
		}
	}
	return out
}

// AssembleTeam checks that picks fills every required position with a player
// from that position's pool and returns the team's averages.
func AssembleTeam(t *roster.Table, picks map[string]string) (Means, error) {
	names := make([]string, 0, len(RequiredPositions))
	for _, pos := range RequiredPositions {
		name := picks[pos]
		if name == "" {
			return Means{}, fmt.Errorf("%w: no player picked for %s", ErrInvalidSelectionSize, pos)
		}
		if !inPool(PositionRoster(t, pos), name) {
			return Means{}, fmt.Errorf("%w: %q is not listed at %s", ErrPlayerNotFound, name, pos)
		}
		names = append(names, name)
	}
	return Aggregate(t, names)
}

func inPool(pool []model.Player, name string) bool {
	for _, p := range pool {
		if p.Name == name {
			return true
		}
	}
	return false
}

// toSet returns nil for an empty slice.
func toSet(items []string) map[string]struct{} {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
