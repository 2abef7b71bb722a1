// Command rapport scores the connection depth of human/AI conversation
// transcripts, either one-shot on the command line or as a long-running
// web server with an optional Discord bot and MCP tool surface.
package main

import "os"

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
