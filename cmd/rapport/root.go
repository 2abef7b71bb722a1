package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool

	// logLevel backs the default slog handler. Serve mode hands it to the
	// application so config reloads can adjust verbosity at runtime.
	logLevel = new(slog.LevelVar)
)

var rootCmd = &cobra.Command{
	Use:   "rapport",
	Short: "Score the connection depth of human/AI conversations",
	Long: `Rapport scores conversation transcripts between a human and an AI across
five dimensions of connection depth (mutual curiosity, emotional
acknowledgment, space for reflection, thread continuity and vulnerability
reciprocity) and reports an overall 0-100 score with a red/yellow/green
label.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func setupLogging() {
	logLevel.Set(slog.LevelInfo)
	if verbose {
		logLevel.Set(slog.LevelDebug)
	}
	if quiet {
		logLevel.Set(slog.LevelError)
	}

	// Stderr keeps stdout clean for reports and for the MCP stdio protocol.
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
}
