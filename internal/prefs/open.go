package prefs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Backend kinds accepted by OpenBackend.
const (
	KindTOML   = "toml"
	KindBolt   = "bolt"
	KindMemory = "memory"
)

const (
	defaultTOMLPath = "~/.config/hnsearch/prefs.toml"
	defaultBoltPath = "~/.local/share/hnsearch/state.db"
)

// DefaultPath returns the default location for a backend kind, or "" for
// memory.
func DefaultPath(kind string) string {
	switch kind {
	case KindTOML:
		return defaultTOMLPath
	case KindBolt:
		return defaultBoltPath
	default:
		return ""
	}
}

// OpenBackend opens the backend named by kind at path (empty path uses the
// default). When a durable backend cannot be opened it logs a warning and
// returns a Memory backend instead, so startup never fails on storage.
func OpenBackend(kind, path string, logger *slog.Logger) Backend {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if strings.TrimSpace(path) == "" {
		path = DefaultPath(kind)
	}

	var (
		backend Backend
		err     error
	)
	switch kind {
	case KindTOML:
		backend, err = OpenTOMLFile(path)
	case KindBolt:
		backend, err = OpenBolt(path)
	case KindMemory:
		return NewMemory()
	default:
		err = fmt.Errorf("unknown store kind %q", kind)
	}
	if err != nil {
		logger.Warn("prefs backend unavailable, using memory",
			slog.String("kind", kind),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return NewMemory()
	}
	logger.Debug("prefs backend opened", slog.String("kind", kind), slog.String("path", path))
	return backend
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
