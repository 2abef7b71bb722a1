package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/MrWong99/rapport/internal/app"
	"github.com/MrWong99/rapport/internal/config"
	"github.com/MrWong99/rapport/internal/observe"
	"github.com/MrWong99/rapport/internal/report"
)

const connectedTranscript = "Human: What's it like for you to think about this?\n" +
	"AI: Honestly, I think I find it fascinating, though I'm not fully sure.\n" +
	"Human: That's really interesting, I hadn't thought of it that way.\n"

// testConfig returns a minimal config without a Discord token, so New never
// reaches for the gateway.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			ListenAddr: "127.0.0.1:0",
			LogLevel:   config.LogInfo,
		},
	}
}

func testMetrics(t *testing.T) *observe.Metrics {
	t.Helper()
	m, err := observe.NewMetrics(sdkmetric.NewMeterProvider())
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}
	return m
}

func TestNew_WithoutDiscord(t *testing.T) {
	t.Parallel()

	application, err := app.New(
		context.Background(),
		testConfig(),
		app.WithVersion("v9.9.9-test"),
		app.WithMetrics(testMetrics(t)),
	)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if application.Web() == nil {
		t.Fatal("New() built no web server")
	}

	rec := httptest.NewRecorder()
	application.Health().Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Healthz status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "v9.9.9-test") {
		t.Errorf("Healthz body = %q, want version included", rec.Body.String())
	}
}

func TestNew_AnalyzeThroughWeb(t *testing.T) {
	t.Parallel()

	application, err := app.New(context.Background(), testConfig(), app.WithMetrics(testMetrics(t)))
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(connectedTranscript))
	rec := httptest.NewRecorder()
	application.Web().Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("POST /api/analyze status = %d, want %d", rec.Code, http.StatusOK)
	}

	var res report.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Overall.Value != 61 || res.Overall.Label != "yellow" {
		t.Errorf("overall = %d %q, want 61 yellow", res.Overall.Value, res.Overall.Label)
	}
	if res.Stats.Turns != 3 || res.Stats.HumanTurns != 2 || res.Stats.AITurns != 1 {
		t.Errorf("stats = %+v, want 3 turns (2 human / 1 AI)", res.Stats)
	}
}

func TestNew_RespectsAnalysisConfig(t *testing.T) {
	t.Parallel()

	// One callback turn out of eight gives 12.5%, which the truncate policy
	// must floor while half-up would round to 13.
	transcript := "Human: you said it would rain\nAI: it did.\n" +
		strings.Repeat("Human: next task please\nAI: done.\n", 7)

	cfg := testConfig()
	cfg.Analysis.Rounding = "truncate"

	application, err := app.New(context.Background(), cfg, app.WithMetrics(testMetrics(t)))
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(transcript))
	rec := httptest.NewRecorder()
	application.Web().Handler().ServeHTTP(rec, req)

	var res report.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	found := false
	for _, dim := range res.Dimensions {
		if dim.Name != "continuity" {
			continue
		}
		found = true
		if dim.Value != 12 {
			t.Errorf("continuity = %d with truncate rounding, want 12", dim.Value)
		}
	}
	if !found {
		t.Fatal("response contains no continuity dimension")
	}
}

func TestNew_ConfigWatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rapport.yaml")
	yaml := "server:\n  listen_addr: \"127.0.0.1:0\"\n  log_level: info\nanalysis:\n  rounding: half-up\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	application, err := app.New(
		context.Background(),
		testConfig(),
		app.WithConfigWatch(path),
		app.WithMetrics(testMetrics(t)),
	)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := application.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error: %v", err)
	}
}

func TestNew_ConfigWatchMissingFile(t *testing.T) {
	t.Parallel()

	_, err := app.New(
		context.Background(),
		testConfig(),
		app.WithConfigWatch(filepath.Join(t.TempDir(), "absent.yaml")),
		app.WithMetrics(testMetrics(t)),
	)
	if err == nil {
		t.Fatal("New() with missing watch file succeeded, want error")
	}
}

func TestApp_RunAndShutdown(t *testing.T) {
	t.Parallel()

	application, err := app.New(context.Background(), testConfig(), app.WithMetrics(testMetrics(t)))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Run(ctx)
	}()

	// Give Run a moment to bind the listener.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Fatalf("Run() returned unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return within 5s after context cancellation")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := application.Shutdown(shutdownCtx); err != nil {
		t.Fatalf("Shutdown() error: %v", err)
	}
}

func TestApp_ShutdownTwice(t *testing.T) {
	t.Parallel()

	application, err := app.New(context.Background(), testConfig(), app.WithMetrics(testMetrics(t)))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := application.Shutdown(ctx); err != nil {
		t.Fatalf("first Shutdown() error: %v", err)
	}
	if err := application.Shutdown(ctx); err != nil {
		t.Fatalf("second Shutdown() error: %v", err)
	}
}
