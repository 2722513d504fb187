package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/hoopstats/internal/config"
	"github.com/pable/hoopstats/internal/query"
	"github.com/pable/hoopstats/internal/roster"
)

var (
	configPath string
	dataPath   string
	logLevel   string

	filterTeams     []string
	filterPositions []string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "hoopstats",
	Short: "NBA season stats explorer",
	Long: `Load a season of per-player NBA averages and explore it: filter by team
and position, rank leaders, compare players, build a five-man team, or
serve the same queries over HTTP.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "hoopstats.yaml", "path to YAML config file")
	pf.StringVar(&dataPath, "data", "", "season CSV (.gz/.zst/.bz2 accepted); overrides data.path")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error; overrides logger.level")
	pf.StringSliceVar(&filterTeams, "team", nil, "only include these team codes (repeatable or comma-separated)")
	pf.StringSliceVar(&filterPositions, "pos", nil, "only include these positions (repeatable or comma-separated)")

	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(leadersCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
}

// setup loads the config file, applies flag overrides and installs the logger.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dataPath != "" {
		c.Data.Path = dataPath
	}
	if logLevel != "" {
		c.Logger.Level = logLevel
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	config.InitLogger(os.Stderr, cfg.Logger)
	return nil
}

// loadTable reads the configured season file.
func loadTable() (*roster.Table, error) {
	comma, err := cfg.Data.CommaRune()
	if err != nil {
		return nil, err
	}
	t, err := roster.Load(cfg.Data.Path, roster.Options{Comma: comma})
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	slog.Info("roster loaded", "path", cfg.Data.Path, "players", t.Len(), "skipped", t.Skipped())
	return t, nil
}

// currentCriteria returns the --team/--pos filters.
func currentCriteria() query.Criteria {
	return query.Criteria{Teams: filterTeams, Positions: filterPositions}
}

// loadFiltered loads the roster and applies the --team/--pos filters.
func loadFiltered() (*roster.Table, error) {
	t, err := loadTable()
	if err != nil {
		return nil, err
	}
	return query.Filter(t, currentCriteria()), nil
}
