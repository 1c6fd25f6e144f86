package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/hnsearch/internal/prefs"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Endpoint != defaultEndpoint {
		t.Fatalf("Endpoint = %q, want %q", cfg.Endpoint, defaultEndpoint)
	}
	if cfg.DefaultQuery != "React" {
		t.Fatalf("DefaultQuery = %q, want React", cfg.DefaultQuery)
	}
	if cfg.Store != prefs.KindTOML {
		t.Fatalf("Store = %q, want %q", cfg.Store, prefs.KindTOML)
	}
	if cfg.StorePath != "" {
		t.Fatalf("StorePath = %q, want empty", cfg.StorePath)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.RequestTimeout != 0 {
		t.Fatalf("RequestTimeout = %v, want none", cfg.RequestTimeout)
	}
	if cfg.RequestsPerSecond != 0 {
		t.Fatalf("RequestsPerSecond = %v, want 0", cfg.RequestsPerSecond)
	}
	if cfg.MetricsAddr != "" {
		t.Fatalf("MetricsAddr = %q, want disabled", cfg.MetricsAddr)
	}

	wantLog := filepath.Join(home, ".local/state/hnsearch/hnsearch.log")
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
endpoint = "  http://127.0.0.1:9999/api/v1/search  "
default_query = "Go"
store = " Bolt "
store_path = "  ~/hn/state.db  "
log_file = "~/hn/log.json"
log_level = "debug"
metrics_addr = "127.0.0.1:9100"
requests_per_second = 2.5
request_timeout = "3s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Endpoint != "http://127.0.0.1:9999/api/v1/search" {
		t.Fatalf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.DefaultQuery != "Go" {
		t.Fatalf("DefaultQuery = %q, want Go", cfg.DefaultQuery)
	}
	if cfg.Store != prefs.KindBolt {
		t.Fatalf("Store = %q, want %q", cfg.Store, prefs.KindBolt)
	}
	if cfg.StorePath != filepath.Join(home, "hn/state.db") {
		t.Fatalf("StorePath = %q, want it under HOME %q", cfg.StorePath, home)
	}
	if cfg.LogFile != filepath.Join(home, "hn/log.json") {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.MetricsAddr != "127.0.0.1:9100" {
		t.Fatalf("MetricsAddr = %q", cfg.MetricsAddr)
	}
	if cfg.RequestsPerSecond != 2.5 {
		t.Fatalf("RequestsPerSecond = %v, want 2.5", cfg.RequestsPerSecond)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("RequestTimeout = %v, want 3s", cfg.RequestTimeout)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, `
endpoint = "   "
store = ""
log_level = ""
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Endpoint != defaultEndpoint {
		t.Fatalf("Endpoint = %q, want %q", cfg.Endpoint, defaultEndpoint)
	}
	if cfg.Store != prefs.KindTOML {
		t.Fatalf("Store = %q, want %q", cfg.Store, prefs.KindTOML)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.LogFile == "" {
		t.Fatalf("LogFile is empty, want default when the key is absent")
	}
}

func TestLoad_EmptyLogFileDisablesLogging(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(writeConfig(t, `log_file = ""`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogFile != "" {
		t.Fatalf("LogFile = %q, want empty", cfg.LogFile)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("HNSEARCH_ENDPOINT", "http://localhost:1/search")
	t.Setenv("HNSEARCH_DEFAULT_QUERY", "redux")
	t.Setenv("HNSEARCH_STORE", "memory")
	t.Setenv("HNSEARCH_RPS", "4")
	t.Setenv("HNSEARCH_REQUEST_TIMEOUT", "750ms")
	t.Setenv("HNSEARCH_LOG_FILE", "")

	path := writeConfig(t, `
endpoint = "http://example.invalid/search"
store = "bolt"
log_file = "~/from-file.log"
request_timeout = "10s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Endpoint != "http://localhost:1/search" {
		t.Fatalf("Endpoint = %q, want env override", cfg.Endpoint)
	}
	if cfg.DefaultQuery != "redux" {
		t.Fatalf("DefaultQuery = %q, want redux", cfg.DefaultQuery)
	}
	if cfg.Store != prefs.KindMemory {
		t.Fatalf("Store = %q, want %q", cfg.Store, prefs.KindMemory)
	}
	if cfg.RequestsPerSecond != 4 {
		t.Fatalf("RequestsPerSecond = %v, want 4", cfg.RequestsPerSecond)
	}
	if cfg.RequestTimeout != 750*time.Millisecond {
		t.Fatalf("RequestTimeout = %v, want 750ms", cfg.RequestTimeout)
	}
	if cfg.LogFile != "" {
		t.Fatalf("LogFile = %q, want logging disabled by empty env", cfg.LogFile)
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "toml", body: `endpoint = [`, want: "parse config"},
		{name: "store", body: `store = "redis"`, want: "store"},
		{name: "log level", body: `log_level = "loud"`, want: "log_level"},
		{name: "timeout", body: `request_timeout = "soon"`, want: "request_timeout"},
		{name: "negative timeout", body: `request_timeout = "-1s"`, want: "request_timeout"},
		{name: "negative rps", body: `requests_per_second = -1.0`, want: "requests_per_second"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatalf("Load returned nil error, want parse error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %q, want it to mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
