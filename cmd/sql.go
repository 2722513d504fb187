package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pable/hoopstats/internal/roster"
	"github.com/pable/hoopstats/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against an in-memory copy of the roster",
	Long: `Copy the filtered roster into an in-memory SQLite database and run an
arbitrary SQL query against it. Nothing is written to disk.

Schema:
  players(row_id, name, team, position, age, pts, ast, orb, drb, trb,
    stl, blk, tov, fg_pct, three_pct, ft_pct)

Missing values are NULL. Example:
  hoopstats sql "SELECT team, ROUND(AVG(pts),1) FROM players GROUP BY team ORDER BY 2 DESC"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	t, err := loadFiltered()
	if err != nil {
		return err
	}
	db, err := openMirror(t)
	if err != nil {
		return err
	}
	defer db.Close()
	return printQuery(os.Stdout, db, strings.Join(args, " "))
}

// openMirror loads t into a fresh in-memory database.
func openMirror(t *roster.Table) (*storage.DB, error) {
	db, err := storage.Open(storage.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.InsertPlayers(t.Players()); err != nil {
		db.Close()
		return nil, fmt.Errorf("load players: %w", err)
	}
	n, err := db.CountPlayers()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("count players: %w", err)
	}
	slog.Debug("sql mirror ready", "players", n)
	return db, nil
}

func printQuery(w io.Writer, db *storage.DB, query string) error {
	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return nil
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
	return nil
}
