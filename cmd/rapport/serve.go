package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrWong99/rapport/internal/app"
	"github.com/MrWong99/rapport/internal/config"
	"github.com/MrWong99/rapport/internal/observe"
	"github.com/MrWong99/rapport/pkg/depth"
)

// shutdownGrace bounds the teardown after the serve context is cancelled.
const shutdownGrace = 15 * time.Second

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server and optional Discord bot",
	Long: `Serve runs the analysis web server with its JSON API, live WebSocket
endpoint and embedded UI. When the config contains a Discord token the
slash-command bot is started alongside it. The config file is watched so
analysis options and the log level can change without a restart.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "rapport.yaml", "path to the YAML configuration file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file %q not found — copy configs/example.yaml to get started", serveConfigPath)
		}
		return err
	}

	// The config file sets the level unless a verbosity flag was given.
	if !verbose && !quiet && cfg.Server.LogLevel != "" {
		logLevel.Set(cfg.Server.LogLevel.Slog())
	}

	slog.Info("rapport starting",
		"version", version,
		"config", serveConfigPath,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
	)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Telemetry ─────────────────────────────────────────────────────────────
	otelShutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    "rapport",
		ServiceVersion: version,
	})
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(flushCtx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()

	// ── Application ───────────────────────────────────────────────────────────
	application, err := app.New(ctx, cfg,
		app.WithVersion(version),
		app.WithConfigWatch(serveConfigPath),
		app.WithLogLevel(logLevel),
	)
	if err != nil {
		return err
	}

	printStartupSummary(cfg)
	slog.Info("server ready — press Ctrl+C to shut down")

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	slog.Info("shutdown signal received, stopping…")

	if err := application.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("goodbye")
	return nil
}

// ── Startup summary ───────────────────────────────────────────────────────────

func printStartupSummary(cfg *config.Config) {
	addr := cfg.Server.ListenAddr
	if addr == "" {
		addr = app.DefaultListenAddr
	}
	rounding := cfg.Analysis.Rounding
	if rounding == "" {
		rounding = depth.RoundHalfUp
	}
	fuzzy := "off"
	if cfg.Analysis.FuzzyMatching {
		fuzzy = "on"
		if cfg.Analysis.FuzzyThreshold != 0 {
			fuzzy = fmt.Sprintf("on (%.2f)", cfg.Analysis.FuzzyThreshold)
		}
	}

	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Println("║          Rapport — startup            ║")
	fmt.Println("╠═══════════════════════════════════════╣")
	printRow("Listen addr", addr)
	printRow("Dimensions", fmt.Sprintf("%d", len(depth.Dimensions)))
	printRow("Rounding", string(rounding))
	printRow("Fuzzy matching", fuzzy)
	if cfg.Discord.Token != "" {
		printRow("Discord", "enabled")
	} else {
		printRow("Discord", "(disabled)")
	}
	printRow("Config watch", serveConfigPath)
	fmt.Println("╚═══════════════════════════════════════╝")
}

func printRow(name, value string) {
	if len(value) > 19 {
		value = value[:16] + "…"
	}
	fmt.Printf("║  %-16s: %-19s ║\n", name, value)
}
