package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrWong99/rapport/internal/demo"
	"github.com/MrWong99/rapport/internal/report"
)

var demoJSON bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Compare the built-in transactional and connected fixtures",
	Long: `Demo scores the two built-in example conversations, one deliberately
transactional and one deliberately connected, and prints both reports so
the scoring dimensions can be seen pulling apart.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().BoolVar(&demoJSON, "json", false, "emit both reports as one JSON document")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	analyzer, err := newAnalyzer("")
	if err != nil {
		return err
	}

	low, err := analyzer.Analyze(cmd.Context(), demo.Low)
	if err != nil {
		return err
	}
	high, err := analyzer.Analyze(cmd.Context(), demo.High)
	if err != nil {
		return err
	}

	if demoJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Low  report.Result `json:"low"`
			High report.Result `json:"high"`
		}{report.FromAnalysis(low), report.FromAnalysis(high)})
	}

	fmt.Println("Transactional exchange:")
	report.Console(os.Stdout, low)
	fmt.Println()
	fmt.Println("Connected exchange:")
	report.Console(os.Stdout, high)
	return nil
}
