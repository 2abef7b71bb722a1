package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MrWong99/rapport/internal/mcptool"
)

var mcpConfigPath string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the analyzer as an MCP tool over stdio",
	Long: `Mcp runs a Model Context Protocol server on stdin/stdout exposing the
analyze_depth tool, so MCP-capable clients can score transcripts. Logs go
to stderr; stdout belongs to the protocol.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpConfigPath, "config", "", "optional YAML config supplying analysis options")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	analyzer, err := newAnalyzer(mcpConfigPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return mcptool.New(analyzer, version).Run(ctx)
}
