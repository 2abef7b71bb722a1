package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrWong99/rapport/internal/config"
	"github.com/MrWong99/rapport/internal/report"
	"github.com/MrWong99/rapport/pkg/depth"
)

var (
	analyzeJSON       bool
	analyzeConfigPath string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <transcript-file>",
	Short: "Score a transcript file",
	Long: `Analyze reads a conversation transcript from a file and prints the
connection depth report. Lines starting with a speaker label such as
"Human:" or "AI:" open a turn; unlabeled lines continue the current turn.
A transcript without any recognizable labels scores zero on every
dimension.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "emit the JSON report instead of the boxed summary")
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "optional YAML config supplying analysis options")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	analyzer, err := newAnalyzer(analyzeConfigPath)
	if err != nil {
		return err
	}

	analysis, err := analyzer.Analyze(cmd.Context(), string(data))
	if err != nil {
		return err
	}
	return render(analysis, analyzeJSON)
}

// newAnalyzer builds an analyzer, applying the analysis section of the given
// config file when a path is provided.
func newAnalyzer(configPath string) (*depth.Analyzer, error) {
	if configPath == "" {
		return depth.NewAnalyzer(), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return depth.NewAnalyzer(cfg.Analysis.Options()...), nil
}

func render(a *depth.Analysis, asJSON bool) error {
	if asJSON {
		return report.WriteJSON(os.Stdout, a)
	}
	report.Console(os.Stdout, a)
	return nil
}
