// Package roster loads a season stats file into an immutable Table of players.
package roster

import (
	"sort"

	"github.com/pable/hoopstats/internal/model"
)

// Table is the read-only roster loaded once at startup. It holds no locks;
// nothing mutates it after construction, so concurrent readers are safe.
type Table struct {
	players []model.Player
	skipped int
}

// NewTable builds a Table from players, copying the slice.
func NewTable(players []model.Player) *Table {
	cp := make([]model.Player, len(players))
	copy(cp, players)
	return &Table{players: cp}
}

// Len returns the number of players.
func (t *Table) Len() int {
	return len(t.players)
}

// At returns the player at index i.
func (t *Table) At(i int) model.Player {
	return t.players[i]
}

// Players returns a copy of all rows in table order.
func (t *Table) Players() []model.Player {
	out := make([]model.Player, len(t.players))
	copy(out, t.players)
	return out
}

// Skipped returns how many input rows were dropped at load time.
func (t *Table) Skipped() int {
	return t.skipped
}

// Lookup returns the first player whose name matches exactly.
func (t *Table) Lookup(name string) (model.Player, bool) {
	for _, p := range t.players {
		if p.Name == name {
			return p, true
		}
	}
	return model.Player{}, false
}

// Teams returns the distinct non-empty team codes, sorted.
func (t *Table) Teams() []string {
	return t.distinct(func(p model.Player) string { return p.Team })
}

// Positions returns the distinct non-empty position codes, sorted.
func (t *Table) Positions() []string {
	return t.distinct(func(p model.Player) string { return p.Position })
}

func (t *Table) distinct(key func(model.Player) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range t.players {
		k := key(p)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
