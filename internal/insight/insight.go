// Package insight answers free-form questions about a roster using the
// Anthropic API, grounded on a compact JSON summary of the rows.
package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/pable/hoopstats/internal/model"
	"github.com/pable/hoopstats/internal/query"
	"github.com/pable/hoopstats/internal/roster"
)

// ErrNoAPIKey is returned when neither the config nor the environment holds a key.
var ErrNoAPIKey = errors.New("no API key: set ANTHROPIC_API_KEY or analyze.api_key")

const systemPrompt = `You are a basketball analyst. You are given season-average statistics
for a set of players and a question from the user.

Rules:
- Answer ONLY from the data provided. Never invent statistics.
- Cite specific numbers when making a claim.
- If the data is insufficient, say so explicitly.
- Be concise.

Glossary:
- PTS, AST, REB, STL, BLK: per-game averages. REB = offensive + defensive rebounds.
- FG%, 3P%, FT%: shooting percentages as fractions (0.481 = 48.1%).
- Missing values are omitted, not zero.`

// maxPlayers caps how many rows are sent, ranked by points.
const maxPlayers = 60

type playerEntry struct {
	Name     string             `json:"name"`
	Team     string             `json:"team,omitempty"`
	Position string             `json:"pos,omitempty"`
	Age      int                `json:"age,omitempty"`
	Stats    map[string]float64 `json:"stats"`
}

// BuildContext serialises the table (already filtered by the caller) into
// compact JSON. At most maxPlayers rows are included, highest scorers first.
func BuildContext(t *roster.Table, filters query.Criteria, season string) (string, error) {
	ranked, err := query.TopN(t, model.Points, maxPlayers)
	if err != nil {
		return "", err
	}

	players := make([]playerEntry, 0, len(ranked))
	for _, p := range ranked {
		e := playerEntry{
			Name:     p.Name,
			Team:     p.Team,
			Position: p.Position,
			Age:      p.Age,
			Stats:    make(map[string]float64),
		}
		for _, s := range model.AllStats() {
			if v, ok := p.Stat(s); ok {
				e.Stats[s.Label()] = round3(v)
			}
		}
		players = append(players, e)
	}

	doc := map[string]interface{}{
		"season":          season,
		"players_total":   t.Len(),
		"players_sent":    len(players),
		"filter_teams":    filters.Teams,
		"filter_position": filters.Positions,
		"players":         players,
	}
	if avg, err := query.Aggregate(t, names(t)); err == nil {
		league := make(map[string]float64)
		for _, s := range model.ComparisonStats {
			if v, ok := avg.Value(s); ok {
				league[s.Label()] = round3(v)
			}
		}
		doc["averages"] = league
	}

	b, err := json.Marshal(doc)
	return string(b), err
}

func names(t *roster.Table) []string {
	out := make([]string, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		out = append(out, t.At(i).Name)
	}
	return out
}

func round3(v float64) float64 {
	if v < 0 {
		return -round3(-v)
	}
	return float64(int64(v*1000+0.5)) / 1000
}

// ResolveKey returns apiKey, or $ANTHROPIC_API_KEY when apiKey is empty.
func ResolveKey(apiKey string) (string, error) {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return "", ErrNoAPIKey
	}
	return apiKey, nil
}

// Ask streams an answer to question, grounded on dataJSON, to w.
func Ask(ctx context.Context, w io.Writer, apiKey, modelID, dataJSON, question string) error {
	apiKey, err := ResolveKey(apiKey)
	if err != nil {
		return err
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(w, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(w)

	if err := stream.Err(); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed: check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
