package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/hoopstats/internal/model"
	"github.com/pable/hoopstats/internal/query"
	"github.com/pable/hoopstats/internal/report"
	"github.com/pable/hoopstats/internal/roster"
	"github.com/pable/hoopstats/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long: `Load the roster once and explore it interactively. Filters set with
'filter' apply to every later command. Type 'help' for available commands.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	t, err := loadTable()
	if err != nil {
		return err
	}
	s := newShellSession(t, currentCriteria(), os.Stdout, os.Stderr)
	defer s.close()
	return s.run(os.Stdin)
}

// shellSession is one REPL: the full table, the active filters and a lazily
// built SQL mirror of the filtered view.
type shellSession struct {
	full   *roster.Table
	crit   query.Criteria
	view   *roster.Table
	db     *storage.DB
	out    io.Writer
	errOut io.Writer
}

func newShellSession(t *roster.Table, crit query.Criteria, out, errOut io.Writer) *shellSession {
	s := &shellSession{full: t, out: out, errOut: errOut}
	s.setCriteria(crit)
	return s
}

func (s *shellSession) setCriteria(c query.Criteria) {
	s.crit = c
	s.view = query.Filter(s.full, c)
	s.closeDB()
}

func (s *shellSession) closeDB() {
	if s.db != nil {
		s.db.Close()
		s.db = nil
	}
}

func (s *shellSession) close() {
	s.closeDB()
}

func (s *shellSession) run(in io.Reader) error {
	cGreeting.Fprintln(s.out, "hoopstats shell")
	cMuted.Fprintf(s.out, "%d players loaded; type 'help' or 'exit'\n\n", s.full.Len())

	scanner := bufio.NewScanner(in)
	for {
		cPrompt.Fprint(s.out, "hoopstats")
		cMuted.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			break
		}
		if !s.exec(strings.TrimSpace(scanner.Text())) {
			return nil
		}
	}
	return scanner.Err()
}

// exec runs one input line and reports whether the session should continue.
func (s *shellSession) exec(line string) bool {
	if line == "" {
		return true
	}
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "exit", "quit":
		return false
	case "help":
		s.help()
	case "filter":
		s.filter(rest)
	case "players":
		s.players()
	case "options":
		report.PrintOptions(s.out, s.full.Teams(), s.full.Positions())
	case "leaders":
		s.leaders(strings.Fields(rest))
	case "compare":
		rows, err := query.Compare(s.view, splitList(rest))
		if err != nil {
			s.fail(err)
			return true
		}
		report.PrintComparison(s.out, rows)
	case "card":
		p, ok := s.view.Lookup(rest)
		if !ok {
			s.fail(fmt.Errorf("%w: %q", query.ErrPlayerNotFound, rest))
			return true
		}
		report.PrintPlayerCard(s.out, p)
	case "team":
		s.team(rest)
	case "summary":
		ov, err := buildOverview(s.full, s.view)
		if err != nil {
			s.fail(err)
			return true
		}
		report.PrintSummary(s.out, ov)
	case "sql":
		s.sql(rest)
	default:
		cWarn.Fprintf(s.errOut, "unknown command %q, type 'help'\n", cmd)
	}
	return true
}

func (s *shellSession) help() {
	fmt.Fprintln(s.out)
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"filter team=BOS,LAL pos=PG", "set filters for later commands"},
		{"filter clear", "remove all filters"},
		{"players", "list players matching the filters"},
		{"options", "list team and position codes"},
		{"leaders [stat] [n]", "top n players by stat (default PTS 10)"},
		{"compare A, B[, C]", "compare two or three players"},
		{"card <player>", "player card with five-game trend"},
		{"team PG=A, SG=B, SF=C, PF=D, C=E", "average a five-man lineup"},
		{"summary", "dataset overview and top scorer"},
		{"sql <query>", "SQL over the filtered players table"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Fprint(s.out, "  ")
		cCmd.Fprintf(s.out, "%-36s", r.cmd)
		fmt.Fprintln(s.out, r.desc)
	}
	fmt.Fprintln(s.out)
}

// fail prints an engine error with its hint; the session continues.
func (s *shellSession) fail(err error) {
	cError.Fprintf(s.errOut, "error: %v\n", err)
	if h := hintFor(err); h != "" {
		cMuted.Fprintf(s.errOut, "  hint: %s\n", h)
	}
}

func (s *shellSession) filter(arg string) {
	if arg == "clear" {
		s.setCriteria(query.Criteria{})
		cMuted.Fprintf(s.out, "filters cleared (%d players)\n", s.view.Len())
		return
	}
	c := s.crit
	for _, field := range strings.Fields(arg) {
		key, val, ok := strings.Cut(field, "=")
		switch {
		case ok && key == "team":
			c.Teams = splitList(val)
		case ok && key == "pos":
			c.Positions = splitList(val)
		default:
			cWarn.Fprintf(s.errOut, "expected team=... or pos=..., got %q\n", field)
			return
		}
	}
	s.setCriteria(c)
	cHeader.Fprintf(s.out, "team=%s pos=%s", listOrAll(c.Teams), listOrAll(c.Positions))
	cMuted.Fprintf(s.out, " (%d players)\n", s.view.Len())
}

func (s *shellSession) players() {
	if s.view.Len() == 0 {
		cMuted.Fprintln(s.out, "No players match the selected filters.")
		return
	}
	report.PrintRoster(s.out, s.view.Players())
}

func (s *shellSession) leaders(args []string) {
	stat, n := model.Points, 10
	for _, a := range args {
		if v, err := strconv.Atoi(a); err == nil {
			n = v
			continue
		}
		st, err := model.ParseStat(a)
		if err != nil {
			s.fail(err)
			return
		}
		stat = st
	}
	ranked, err := query.TopN(s.view, stat, n)
	if err != nil {
		s.fail(err)
		return
	}
	if len(ranked) == 0 {
		cMuted.Fprintln(s.out, "No players match the selected filters.")
		return
	}
	report.PrintLeaderboard(s.out, stat, ranked)
}

func (s *shellSession) team(arg string) {
	picks := make(map[string]string)
	for _, part := range splitList(arg) {
		pos, name, ok := strings.Cut(part, "=")
		if !ok {
			cWarn.Fprintf(s.errOut, "expected POS=player, got %q\n", part)
			return
		}
		picks[strings.ToUpper(strings.TrimSpace(pos))] = strings.TrimSpace(name)
	}
	m, err := query.AssembleTeam(s.view, picks)
	if err != nil {
		s.fail(err)
		return
	}
	report.PrintTeamAverages(s.out, picks, m)
}

func (s *shellSession) sql(q string) {
	if q == "" {
		cWarn.Fprintln(s.errOut, "usage: sql <query>")
		return
	}
	if s.db == nil {
		db, err := openMirror(s.view)
		if err != nil {
			s.fail(err)
			return
		}
		s.db = db
	}
	if err := printQuery(s.out, s.db, q); err != nil {
		s.fail(err)
	}
}

// splitList splits a comma-separated list, trimming blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func listOrAll(items []string) string {
	if len(items) == 0 {
		return "all"
	}
	return strings.Join(items, ",")
}
