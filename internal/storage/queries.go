package storage

import (
	"fmt"
	"strconv"

	"github.com/pable/hoopstats/internal/model"
)

// statColumns lists the players table columns in model.AllStats order.
var statColumns = []struct {
	col  string
	stat model.Stat
}{
	{"pts", model.Points},
	{"ast", model.Assists},
	{"orb", model.OffRebounds},
	{"drb", model.DefRebounds},
	{"trb", model.TotalRebounds},
	{"stl", model.Steals},
	{"blk", model.Blocks},
	{"tov", model.Turnovers},
	{"fg_pct", model.FGPct},
	{"three_pct", model.ThreePct},
	{"ft_pct", model.FTPct},
}

// InsertPlayers bulk-inserts players in a transaction. Missing stats are stored as NULL.
func (db *DB) InsertPlayers(players []model.Player) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO players(
			name, team, position, age,
			pts, ast, orb, drb, trb, stl, blk, tov,
			fg_pct, three_pct, ft_pct
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		args := make([]any, 0, 4+len(statColumns))
		args = append(args, p.Name, p.Team, p.Position, nullInt(p.Age))
		for _, c := range statColumns {
			args = append(args, nullStat(p, c.stat))
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("insert player %q: %w", p.Name, err)
		}
	}
	return tx.Commit()
}

// CountPlayers returns the number of mirrored rows.
func (db *DB) CountPlayers() (int, error) {
	var n int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM players").Scan(&n)
	return n, err
}

// QueryRaw runs an arbitrary query and returns column names and rows as
// strings. NULL values are rendered as "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range raw {
			row[i] = formatValue(v)
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}

func nullInt(v int) any {
	if v == 0 {
		return nil
	}
	return v
}

func nullStat(p model.Player, s model.Stat) any {
	v, ok := p.Stat(s)
	if !ok {
		return nil
	}
	return v
}
