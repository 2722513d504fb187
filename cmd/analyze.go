package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/hoopstats/internal/insight"
)

var (
	analyzeModel  string
	analyzeAPIKey string
	analyzeDump   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <question>",
	Short: "AI-powered grounded analysis (requires ANTHROPIC_API_KEY)",
	Long: `Send the filtered roster, as compact JSON, together with a question to the
Anthropic API and stream the answer. The model is told to answer only from
the data. Use --team/--pos to narrow what is sent.`,
	Example: `  hoopstats analyze --team BOS "Who is the most efficient scorer?"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "Anthropic model to use; overrides analyze.model")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	analyzeCmd.Flags().BoolVar(&analyzeDump, "dump", false, "print the JSON context instead of calling the API")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	t, err := loadFiltered()
	if err != nil {
		return err
	}
	if t.Len() == 0 {
		return fmt.Errorf("no players match the selected filters")
	}
	data, err := insight.BuildContext(t, currentCriteria(), cfg.Data.Season)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	if analyzeDump {
		fmt.Fprintln(os.Stdout, data)
		return nil
	}

	modelID := cfg.Analyze.Model
	if analyzeModel != "" {
		modelID = analyzeModel
	}
	key := cfg.Analyze.APIKey
	if analyzeAPIKey != "" {
		key = analyzeAPIKey
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return insight.Ask(ctx, os.Stdout, key, modelID, data, strings.Join(args, " "))
}
