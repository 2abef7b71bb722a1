package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// maxPasteBytes caps a single pasted line. Matches the transcript cap of the
// other surfaces.
const maxPasteBytes = 1 << 20

var (
	pasteJSON       bool
	pasteConfigPath string
)

var pasteCmd = &cobra.Command{
	Use:   "paste",
	Short: "Score a transcript pasted on stdin",
	Long: `Paste reads a transcript from standard input until end of input or a
line containing only END, then prints the connection depth report.`,
	Args: cobra.NoArgs,
	RunE: runPaste,
}

func init() {
	pasteCmd.Flags().BoolVar(&pasteJSON, "json", false, "emit the JSON report instead of the boxed summary")
	pasteCmd.Flags().StringVar(&pasteConfigPath, "config", "", "optional YAML config supplying analysis options")
	rootCmd.AddCommand(pasteCmd)
}

func runPaste(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(os.Stderr, "Paste the transcript, then finish with a line containing only END (or Ctrl+D).")

	var b strings.Builder
	sc := bufio.NewScanner(os.Stdin)
	sc.Buffer(make([]byte, 0, 64*1024), maxPasteBytes)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "END" {
			break
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	analyzer, err := newAnalyzer(pasteConfigPath)
	if err != nil {
		return err
	}

	analysis, err := analyzer.Analyze(cmd.Context(), b.String())
	if err != nil {
		return err
	}
	return render(analysis, pasteJSON)
}
