package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidColumn is returned when a stat column name is not recognised.
var ErrInvalidColumn = errors.New("invalid stat column")

// Stat identifies one numeric column of a Player record.
type Stat int

const (
	StatUnknown Stat = iota
	Points
	Assists
	OffRebounds
	DefRebounds
	TotalRebounds
	Steals
	Blocks
	Turnovers
	FGPct
	ThreePct
	FTPct

	statCount
)

// statInfo holds the CSV header code and long name for each Stat.
var statInfo = [statCount]struct {
	code, long string
}{
	StatUnknown:   {"?", "unknown"},
	Points:        {"PTS", "points"},
	Assists:       {"AST", "assists"},
	OffRebounds:   {"ORB", "rebounds_offensive"},
	DefRebounds:   {"DRB", "rebounds_defensive"},
	TotalRebounds: {"TRB", "total_rebounds"},
	Steals:        {"STL", "steals"},
	Blocks:        {"BLK", "blocks"},
	Turnovers:     {"TOV", "turnovers"},
	FGPct:         {"FG%", "fg_pct"},
	ThreePct:      {"3P%", "three_pct"},
	FTPct:         {"FT%", "ft_pct"},
}

// statAliases maps extra accepted spellings onto a Stat. REB is what the
// dashboards label the derived ORB+DRB column.
var statAliases = map[string]Stat{
	"reb":      TotalRebounds,
	"rebounds": TotalRebounds,
	"pts":      Points,
	"ast":      Assists,
	"stl":      Steals,
	"blk":      Blocks,
	"tov":      Turnovers,
}

var statByName = func() map[string]Stat {
	m := make(map[string]Stat, 3*int(statCount))
	for s := Points; s < statCount; s++ {
		m[strings.ToLower(statInfo[s].code)] = s
		m[statInfo[s].long] = s
	}
	for k, v := range statAliases {
		m[k] = v
	}
	return m
}()

// ParseStat resolves a column name (header code such as "PTS" or "FG%", or a
// long name such as "total_rebounds") to a Stat. Matching is case-insensitive.
func ParseStat(name string) (Stat, error) {
	s, ok := statByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return StatUnknown, fmt.Errorf("%w: %q", ErrInvalidColumn, name)
	}
	return s, nil
}

// AllStats returns every recognised stat in column order.
func AllStats() []Stat {
	out := make([]Stat, 0, statCount-1)
	for s := Points; s < statCount; s++ {
		out = append(out, s)
	}
	return out
}

// Valid reports whether s is one of the recognised stat columns.
func (s Stat) Valid() bool {
	return s > StatUnknown && s < statCount
}

// String returns the CSV header code, e.g. "PTS".
func (s Stat) String() string {
	if !s.Valid() {
		return statInfo[StatUnknown].code
	}
	return statInfo[s].code
}

// Label returns the dashboard label; TotalRebounds is shown as REB.
func (s Stat) Label() string {
	if s == TotalRebounds {
		return "REB"
	}
	return s.String()
}

// LongName returns the snake_case column name, e.g. "total_rebounds".
func (s Stat) LongName() string {
	if !s.Valid() {
		return statInfo[StatUnknown].long
	}
	return statInfo[s].long
}

// ComparisonStats is the fixed projection used by comparisons, leaderboard
// categories and team averages.
var ComparisonStats = []Stat{Points, Assists, TotalRebounds, Steals, Blocks}

// Player is one row of the roster table.
type Player struct {
	Name     string
	Team     string
	Position string
	Age      int // 0 if unknown

	stats map[Stat]float64 // absent key = missing value
}

// NewPlayer builds a Player. Entries in stats with an invalid key are dropped.
// TotalRebounds is derived from OffRebounds+DefRebounds when both are present.
func NewPlayer(name, team, position string, age int, stats map[Stat]float64) Player {
	p := Player{
		Name:     name,
		Team:     team,
		Position: position,
		Age:      age,
		stats:    make(map[Stat]float64, len(stats)+1),
	}
	for s, v := range stats {
		if s.Valid() {
			p.stats[s] = v
		}
	}
	orb, okO := p.stats[OffRebounds]
	drb, okD := p.stats[DefRebounds]
	if okO && okD {
		p.stats[TotalRebounds] = orb + drb
	}
	return p
}

// Stat returns the value of s and whether it is present.
func (p Player) Stat(s Stat) (float64, bool) {
	v, ok := p.stats[s]
	return v, ok
}

// Has reports whether s is present for the player.
func (p Player) Has(s Stat) bool {
	_, ok := p.stats[s]
	return ok
}

// trendOffsets are the fixed point deltas of the five synthetic games.
var trendOffsets = []float64{-2, 0, 1, -1, 0}

// SyntheticTrend returns five illustrative "games" around the player's points
// average. The dataset carries season averages only, so this is not real
// per-game data. Returns nil when points are missing.
func SyntheticTrend(p Player) []float64 {
	pts, ok := p.Stat(Points)
	if !ok {
		return nil
	}
	out := make([]float64, len(trendOffsets))
	for i, d := range trendOffsets {
		out[i] = pts + d
	}
	return out
}
