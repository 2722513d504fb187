package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pable/hoopstats/internal/model"
	"github.com/pable/hoopstats/internal/query"
)

// hintFor returns a short suggestion for an engine error, or "" if none applies.
func hintFor(err error) string {
	switch {
	case errors.Is(err, query.ErrInvalidColumn):
		codes := make([]string, 0, len(model.AllStats()))
		for _, s := range model.AllStats() {
			codes = append(codes, s.Label())
		}
		return "stats are " + strings.Join(codes, " ")
	case errors.Is(err, query.ErrPlayerNotFound):
		return "names must match exactly; run 'players' to list them"
	case errors.Is(err, query.ErrInvalidSelectionSize):
		return fmt.Sprintf("select %d–%d players to compare, or one player per position for a team",
			query.MinCompare, query.MaxCompare)
	case errors.Is(err, query.ErrEmptySelection):
		return "select at least one player"
	case errors.Is(err, query.ErrInvalidLimit):
		return "the leaderboard size must be at least 1"
	}
	return ""
}

// withHint appends the hint for err, if any, to the error text.
func withHint(err error) error {
	if h := hintFor(err); h != "" {
		return fmt.Errorf("%w\n  hint: %s", err, h)
	}
	return err
}
