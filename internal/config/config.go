package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/hnsearch/internal/prefs"
)

// Config holds the resolved hnsearch settings.
type Config struct {
	Endpoint          string
	DefaultQuery      string
	Store             string
	StorePath         string
	LogFile           string
	LogLevel          slog.Level
	MetricsAddr       string
	RequestsPerSecond float64
	RequestTimeout    time.Duration
}

const (
	defaultConfigPath   = "~/.config/hnsearch/config.toml"
	defaultEndpoint     = "https://hn.algolia.com/api/v1/search"
	defaultQuery        = "React"
	defaultLogFile      = "~/.local/state/hnsearch/hnsearch.log"
	defaultLogLevelName = "info"
)

// file mirrors the TOML keys. Environment variables override whatever the
// file set.
type file struct {
	Endpoint          string  `toml:"endpoint" env:"HNSEARCH_ENDPOINT"`
	DefaultQuery      string  `toml:"default_query" env:"HNSEARCH_DEFAULT_QUERY"`
	Store             string  `toml:"store" env:"HNSEARCH_STORE"`
	StorePath         string  `toml:"store_path" env:"HNSEARCH_STORE_PATH"`
	LogFile           string  `toml:"log_file" env:"HNSEARCH_LOG_FILE"`
	LogLevel          string  `toml:"log_level" env:"HNSEARCH_LOG_LEVEL"`
	MetricsAddr       string  `toml:"metrics_addr" env:"HNSEARCH_METRICS_ADDR"`
	RequestsPerSecond float64 `toml:"requests_per_second" env:"HNSEARCH_RPS"`
	RequestTimeout    string  `toml:"request_timeout" env:"HNSEARCH_REQUEST_TIMEOUT"`
}

// An explicitly empty log_file disables logging, so presence matters.
const logFileEnv = "HNSEARCH_LOG_FILE"

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Endpoint:     defaultEndpoint,
		DefaultQuery: defaultQuery,
		Store:        prefs.KindTOML,
		LogFile:      mustExpand(defaultLogFile),
		LogLevel:     slog.LevelInfo,
	}
}

// Load locates and parses the hnsearch config, falling back to defaults when
// missing, then applies HNSEARCH_* environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw file
	logFileSet := false
	handle, err := os.Open(resolved)
	switch {
	case err == nil:
		defer handle.Close()
		bytes, err := io.ReadAll(handle)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		var keys map[string]any
		if err := toml.Unmarshal(bytes, &keys); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		_, logFileSet = keys["log_file"]
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	if err := cleanenv.ReadEnv(&raw); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if v, ok := os.LookupEnv(logFileEnv); ok {
		raw.LogFile = v
		logFileSet = true
	}

	return resolve(raw, logFileSet)
}

func resolve(raw file, logFileSet bool) (Config, error) {
	cfg := Default()

	if v := strings.TrimSpace(raw.Endpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := strings.TrimSpace(raw.DefaultQuery); v != "" {
		cfg.DefaultQuery = v
	}

	switch v := strings.ToLower(strings.TrimSpace(raw.Store)); v {
	case "":
	case prefs.KindTOML, prefs.KindBolt, prefs.KindMemory:
		cfg.Store = v
	default:
		return Config{}, fmt.Errorf("parse config: store %q: want toml, bolt or memory", raw.Store)
	}

	if v := strings.TrimSpace(raw.StorePath); v != "" {
		expanded, err := expandPath(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: store_path: %w", err)
		}
		cfg.StorePath = expanded
	}

	if logFileSet {
		v := strings.TrimSpace(raw.LogFile)
		if v == "" {
			cfg.LogFile = ""
		} else {
			expanded, err := expandPath(v)
			if err != nil {
				return Config{}, fmt.Errorf("parse config: log_file: %w", err)
			}
			cfg.LogFile = expanded
		}
	}

	level := strings.TrimSpace(raw.LogLevel)
	if level == "" {
		level = defaultLogLevelName
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return Config{}, fmt.Errorf("parse config: log_level: %w", err)
	}

	cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)

	if raw.RequestsPerSecond < 0 {
		return Config{}, fmt.Errorf("parse config: requests_per_second must not be negative")
	}
	cfg.RequestsPerSecond = raw.RequestsPerSecond

	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: request_timeout: %w", err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("parse config: request_timeout must not be negative")
		}
		cfg.RequestTimeout = d
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
