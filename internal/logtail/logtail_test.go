package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "hnsearch.log")

	var content strings.Builder
	var all []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		all = append(all, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "zero", maxLines: 0, expected: nil},
		{name: "negative", maxLines: -1, expected: nil},
		{name: "partial", maxLines: 5, expected: all[5:]},
		{name: "exact", maxLines: 10, expected: all},
		{name: "more than exists", maxLines: 20, expected: all},
		{name: "wraps ring", maxLines: 3, expected: all[7:]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read returned error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Fatalf("Read = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if got != nil {
		t.Fatalf("Read = %v, want nil", got)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "slog record",
			line: `{"time":"2026-10-16T09:30:05.123Z","level":"INFO","msg":"fetch succeeded","query":"react","items":2}`,
			want: `09:30:05 INFO  fetch succeeded items=2 query=react`,
		},
		{
			name: "warn without time",
			line: `{"level":"WARN","msg":"prefs storage unavailable, keeping values in memory"}`,
			want: `WARN  prefs storage unavailable, keeping values in memory`,
		},
		{
			name: "not json",
			line: `plain text`,
			want: `plain text`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.line); got != tt.want {
				t.Fatalf("Format = %q, want %q", got, tt.want)
			}
		})
	}
}
