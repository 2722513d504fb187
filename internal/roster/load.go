package roster

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/pable/hoopstats/internal/model"
)

// Options controls how a stats file is parsed.
type Options struct {
	// Comma is the field delimiter. Zero means detect ';' or ',' from the header.
	Comma rune
}

// Header names of the non-stat columns.
const (
	colPlayer = "Player"
	colTeam   = "Tm"
	colPos    = "Pos"
	colAge    = "Age"
)

// statColumns maps CSV header codes onto stat columns.
var statColumns = map[string]model.Stat{
	"PTS": model.Points,
	"AST": model.Assists,
	"ORB": model.OffRebounds,
	"DRB": model.DefRebounds,
	"TRB": model.TotalRebounds,
	"STL": model.Steals,
	"BLK": model.Blocks,
	"TOV": model.Turnovers,
	"FG%": model.FGPct,
	"3P%": model.ThreePct,
	"FT%": model.FTPct,
}

// Load opens path (optionally .gz, .zst or .bz2 compressed) and reads it.
func Load(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var src io.Reader = f
	switch {
	case strings.HasSuffix(path, ".bz2"):
		src = bzip2.NewReader(f)
	case strings.HasSuffix(path, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		src = dec
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	t, err := Read(src, opts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// Read parses a delimited stats file with a header row. Rows with an empty
// player name or a missing PTS value are dropped and counted in Skipped.
func Read(r io.Reader, opts Options) (*Table, error) {
	br := bufio.NewReader(r)
	comma := opts.Comma
	if comma == 0 {
		first, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read header: %w", err)
		}
		comma = detectComma(first)
		r = io.MultiReader(strings.NewReader(first), br)
	} else {
		r = br
	}

	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("empty file: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	for _, required := range []string{colPlayer, "PTS"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	t := &Table{}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		name := cell(row, idx, colPlayer)
		stats := make(map[model.Stat]float64, len(statColumns))
		for col, s := range statColumns {
			if v, ok := parseNumber(cell(row, idx, col)); ok {
				stats[s] = v
			}
		}
		if name == "" {
			t.skipped++
			continue
		}
		if _, ok := stats[model.Points]; !ok {
			t.skipped++
			continue
		}

		age := 0
		if v, ok := parseNumber(cell(row, idx, colAge)); ok {
			age = int(v)
		}
		t.players = append(t.players, model.NewPlayer(
			name, cell(row, idx, colTeam), cell(row, idx, colPos), age, stats,
		))
	}
	return t, nil
}

// detectComma picks ';' when the header line has more semicolons than commas.
func detectComma(header string) rune {
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

// cell returns the trimmed value of column col, or "" if absent.
func cell(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseNumber parses a numeric cell. Empty, NA and NaN cells are missing.
// Percentages may be written ".456" or "45.6%"; both are kept as written
// minus the percent sign.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSuffix(s, "%")
	if s == "" || strings.EqualFold(s, "na") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
