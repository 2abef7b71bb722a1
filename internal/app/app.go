// Package app wires the rapport server subsystems into a running
// application: the analyzer, metrics, health checks, the HTTP surface, the
// optional Discord bot and the config hot-reload watcher.
//
// The App struct owns the full lifecycle: New creates and connects all
// subsystems, Run blocks while the surfaces serve, and Shutdown tears
// everything down in order.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/MrWong99/rapport/internal/config"
	"github.com/MrWong99/rapport/internal/discord"
	"github.com/MrWong99/rapport/internal/discord/commands"
	"github.com/MrWong99/rapport/internal/health"
	"github.com/MrWong99/rapport/internal/observe"
	"github.com/MrWong99/rapport/internal/web"
	"github.com/MrWong99/rapport/pkg/depth"
)

// DefaultListenAddr is used when server.listen_addr is not configured.
const DefaultListenAddr = ":8080"

// App owns all subsystem lifetimes for the serve mode.
type App struct {
	cfg     *config.Config
	version string

	// watchPath, when set, enables config hot reload.
	watchPath string

	// logLevel, when set, is adjusted on config reload.
	logLevel *slog.LevelVar

	// Subsystems — initialised in New, torn down in Shutdown.
	metrics   *observe.Metrics
	health    *health.Handler
	web       *web.Server
	bot       *discord.Bot
	depthCmds *commands.DepthCommands
	watcher   *config.Watcher

	// closers are called in order during Shutdown.
	closers []func() error

	// stopOnce guards the Shutdown path.
	stopOnce sync.Once
}

// Option is a functional option for New. Use these to inject test doubles
// or wire optional behaviour.
type Option func(*App)

// WithVersion sets the version string reported by the health endpoint.
func WithVersion(v string) Option {
	return func(a *App) { a.version = v }
}

// WithConfigWatch enables hot reload by watching the config file at path.
func WithConfigWatch(path string) Option {
	return func(a *App) { a.watchPath = path }
}

// WithLogLevel hands the app the level var behind the process logger so a
// config reload can adjust verbosity.
func WithLogLevel(lv *slog.LevelVar) Option {
	return func(a *App) { a.logLevel = lv }
}

// WithMetrics injects a metrics bundle instead of creating one from the
// global meter provider.
func WithMetrics(m *observe.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// ─── New ─────────────────────────────────────────────────────────────────────

// New creates an App by wiring all subsystems together. The Discord surface
// is created only when a bot token is configured; the watcher only when
// [WithConfigWatch] is given.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	a := &App{cfg: cfg}
	for _, o := range opts {
		o(a)
	}

	// ── 1. Analyzer ──────────────────────────────────────────────────────
	analyzer := depth.NewAnalyzer(cfg.Analysis.Options()...)

	// ── 2. Metrics ───────────────────────────────────────────────────────
	if a.metrics == nil {
		m, err := observe.NewMetrics(otel.GetMeterProvider())
		if err != nil {
			return nil, fmt.Errorf("app: init metrics: %w", err)
		}
		a.metrics = m
	}

	// ── 3. Discord bot (optional) ────────────────────────────────────────
	if err := a.initDiscord(ctx, analyzer); err != nil {
		return nil, fmt.Errorf("app: init discord: %w", err)
	}

	// ── 4. Health checks ─────────────────────────────────────────────────
	a.initHealth()

	// ── 5. Web server ────────────────────────────────────────────────────
	addr := cfg.Server.ListenAddr
	if addr == "" {
		addr = DefaultListenAddr
	}
	a.web = web.New(addr, analyzer, a.metrics, a.health)

	// ── 6. Config watcher (optional) ─────────────────────────────────────
	if err := a.initWatcher(); err != nil {
		return nil, fmt.Errorf("app: init watcher: %w", err)
	}

	return a, nil
}

// ─── Init helpers ────────────────────────────────────────────────────────────

// initDiscord connects the bot and registers the /depth command group.
// An empty token leaves the Discord surface disabled.
func (a *App) initDiscord(ctx context.Context, analyzer *depth.Analyzer) error {
	if a.cfg.Discord.Token == "" {
		return nil
	}

	bot, err := discord.New(ctx, discord.Config{
		Token:         a.cfg.Discord.Token,
		GuildID:       a.cfg.Discord.GuildID,
		CommandRoleID: a.cfg.Discord.CommandRoleID,
	})
	if err != nil {
		return err
	}
	a.bot = bot
	a.closers = append(a.closers, bot.Close)

	a.depthCmds = commands.NewDepthCommands(bot.Permissions(), analyzer, a.metrics)
	a.depthCmds.Register(bot.Router())

	slog.Info("discord bot connected", "guild_id", a.cfg.Discord.GuildID)
	return nil
}

// initHealth builds the health handler. Readiness covers the subsystems
// that actually exist: with no bot configured, /readyz has nothing to fail.
func (a *App) initHealth() {
	var checkers []health.Checker
	if a.bot != nil {
		bot := a.bot
		checkers = append(checkers, health.Checker{
			Name: "discord",
			Check: func(context.Context) error {
				if !bot.Connected() {
					return fmt.Errorf("gateway not connected")
				}
				return nil
			},
		})
	}

	a.health = health.New(checkers...)
	a.health.Version = a.version
}

// initWatcher starts the config file watcher when hot reload is enabled.
func (a *App) initWatcher() error {
	if a.watchPath == "" {
		return nil
	}

	w, err := config.NewWatcher(a.watchPath, a.onConfigChange)
	if err != nil {
		return err
	}
	a.watcher = w
	a.closers = append(a.closers, func() error {
		w.Stop()
		return nil
	})

	slog.Info("config hot reload enabled", "path", a.watchPath)
	return nil
}

// onConfigChange reacts to a validated config reload. Analysis options swap
// in a rebuilt analyzer; the listen address and Discord settings are bound
// at startup and only log a restart hint.
func (a *App) onConfigChange(old, new *config.Config) {
	d := config.Diff(old, new)

	if d.AnalysisChanged {
		rebuilt := depth.NewAnalyzer(new.Analysis.Options()...)
		a.web.SetAnalyzer(rebuilt)
		if a.depthCmds != nil {
			a.depthCmds.SetAnalyzer(rebuilt)
		}
		slog.Info("analysis options reloaded",
			"rounding", new.Analysis.Rounding,
			"fuzzy_matching", new.Analysis.FuzzyMatching,
		)
	}

	if d.LogLevelChanged && a.logLevel != nil {
		a.logLevel.Set(d.NewLogLevel.Slog())
		slog.Info("log level changed", "level", d.NewLogLevel)
	}

	if d.RestartNeeded {
		slog.Warn("listen address or discord settings changed; restart to apply")
	}
}

// ─── Run ─────────────────────────────────────────────────────────────────────

// Run starts all surfaces and blocks until ctx is cancelled or one of them
// fails. The first failure cancels the rest.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.web.Run(gctx)
	})
	if a.bot != nil {
		g.Go(func() error {
			return a.bot.Run(gctx)
		})
	}

	slog.Info("app running", "discord", a.bot != nil, "hot_reload", a.watcher != nil)
	return g.Wait()
}

// ─── Shutdown ────────────────────────────────────────────────────────────────

// Shutdown tears down all subsystems. It respects the context deadline: if
// ctx expires before all closers finish, remaining closers are skipped and
// the context error is returned.
func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error
	a.stopOnce.Do(func() {
		slog.Info("shutting down", "closers", len(a.closers))

		for i, closer := range a.closers {
			select {
			case <-ctx.Done():
				slog.Warn("shutdown deadline exceeded", "remaining", len(a.closers)-i)
				shutdownErr = ctx.Err()
				return
			default:
			}
			if err := closer(); err != nil {
				slog.Warn("closer error", "index", i, "err", err)
			}
		}

		slog.Info("shutdown complete")
	})
	return shutdownErr
}

// Health exposes the health handler, mainly for tests.
func (a *App) Health() *health.Handler {
	return a.health
}

// Web exposes the web server, mainly for tests.
func (a *App) Web() *web.Server {
	return a.web
}
