// Package mcptool exposes transcript analysis as a Model Context Protocol
// tool. MCP-capable clients (editors, agent frameworks) connect over stdio
// and call analyze_depth without going through the HTTP surface.
package mcptool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MrWong99/rapport/internal/report"
	"github.com/MrWong99/rapport/pkg/depth"
)

// analyzeInput is the analyze_depth tool input.
type analyzeInput struct {
	Transcript string `json:"transcript" jsonschema:"transcript text with Human:/AI: speaker labels, one label per line"`
}

// Server wraps an MCP server carrying the analyze_depth tool.
type Server struct {
	analyzer *depth.Analyzer
	server   *mcp.Server
}

// New builds a Server around the given analyzer. version is reported to
// clients during the MCP handshake.
func New(analyzer *depth.Analyzer, version string) *Server {
	s := &Server{analyzer: analyzer}

	srv := mcp.NewServer(&mcp.Implementation{Name: "rapport", Version: version}, nil)
	mcp.AddTool(srv, &mcp.Tool{
		Name: "analyze_depth",
		Description: "Score a human/AI conversation transcript for connection depth. " +
			"Returns five dimension scores (curiosity, acknowledgment, space, continuity, " +
			"reciprocity), an overall score with a red/yellow/green label, turn statistics " +
			"and noteworthy moments. Transcripts without recognisable speaker labels score zero.",
	}, s.analyzeDepth)
	s.server = srv

	return s
}

// analyzeDepth runs one transcript through the analyzer. The structured
// output is the same JSON document every other surface emits. Unparseable
// transcripts are not a tool error; they score zero.
func (s *Server) analyzeDepth(ctx context.Context, req *mcp.CallToolRequest, in analyzeInput) (*mcp.CallToolResult, report.Result, error) {
	analysis, err := s.analyzer.Analyze(ctx, in.Transcript)
	if err != nil {
		return nil, report.Result{}, fmt.Errorf("analyze transcript: %w", err)
	}
	return nil, report.FromAnalysis(analysis), nil
}

// Run serves MCP over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	if err := s.server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("mcptool: serve: %w", err)
	}
	return nil
}
