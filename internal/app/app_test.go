package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/hnsearch/internal/fixture"
	"github.com/five82/hnsearch/internal/hn"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRun_OnceOfflinePrintsSeededQuery(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgPath := writeConfig(t, `
store = "memory"
log_file = ""
`)

	var out bytes.Buffer
	err := Run(context.Background(), Options{ConfigPath: cfgPath, Offline: true, Once: true, Out: &out})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, `1 results for "React"`) {
		t.Fatalf("output = %q, want the React result count", got)
	}
	if !strings.Contains(got, "https://reactjs.org/") || !strings.Contains(got, "by Jordan Walke | 4 points | 3 comments") {
		t.Fatalf("output = %q, want the React story", got)
	}
	if strings.Contains(got, "Redux") {
		t.Fatalf("output = %q, want Redux filtered out", got)
	}
}

func TestRun_QueryOverridePersists(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	storePath := filepath.Join(home, "prefs.toml")
	cfgPath := writeConfig(t, `
store = "toml"
store_path = "`+storePath+`"
log_file = ""
`)

	var first bytes.Buffer
	if err := Run(context.Background(), Options{ConfigPath: cfgPath, Offline: true, Once: true, Query: "redux", Out: &first}); err != nil {
		t.Fatalf("first Run returned error: %v", err)
	}
	if !strings.Contains(first.String(), "Dan Abramov, Andrew Clark") {
		t.Fatalf("first output = %q, want the Redux story", first.String())
	}

	var second bytes.Buffer
	if err := Run(context.Background(), Options{ConfigPath: cfgPath, Offline: true, Once: true, Out: &second}); err != nil {
		t.Fatalf("second Run returned error: %v", err)
	}
	if !strings.Contains(second.String(), `results for "redux"`) {
		t.Fatalf("second output = %q, want the persisted redux query", second.String())
	}
}

func TestRun_OnceAgainstConfiguredEndpoint(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	srv := httptest.NewServer(fixture.Router(fixture.Stories()))
	t.Cleanup(srv.Close)

	cfgPath := writeConfig(t, `
endpoint = "`+srv.URL+fixture.SearchPath+`"
default_query = "re"
store = "memory"
log_file = ""
requests_per_second = 10.0
request_timeout = "5s"
`)

	var out bytes.Buffer
	if err := Run(context.Background(), Options{ConfigPath: cfgPath, Once: true, Out: &out}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(out.String(), `2 results for "re"`) {
		t.Fatalf("output = %q, want both stories", out.String())
	}
}

func TestRun_OnceReportsFetchFailure(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	cfgPath := writeConfig(t, `
endpoint = "`+srv.URL+`"
store = "memory"
log_file = ""
`)

	err := Run(context.Background(), Options{ConfigPath: cfgPath, Once: true, Out: &bytes.Buffer{}})
	if err == nil {
		t.Fatal("Run returned nil error, want fetch failure")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Fatalf("error = %q, want it to carry the status", err.Error())
	}
}

func TestRun_ConfigParseErrorIsFatal(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	err := Run(context.Background(), Options{ConfigPath: writeConfig(t, `store = "redis"`), Once: true})
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("Run error = %v, want load config failure", err)
	}
}

func TestRun_UnusableStoreFallsBackToMemory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	blocker := filepath.Join(home, "blocker")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfgPath := writeConfig(t, `
store = "bolt"
store_path = "`+filepath.Join(blocker, "state.db")+`"
log_file = ""
`)

	var out bytes.Buffer
	if err := Run(context.Background(), Options{ConfigPath: cfgPath, Offline: true, Once: true, Out: &out}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(out.String(), "React") {
		t.Fatalf("output = %q, want results despite storage failure", out.String())
	}
}

func TestPrintItems_UnknownAuthorAndMissingURL(t *testing.T) {
	var out bytes.Buffer
	err := printItems(&out, "q", []hn.Item{{ID: "1", Title: "Ask HN", Points: 1}})
	if err != nil {
		t.Fatalf("printItems returned error: %v", err)
	}
	want := "1 results for \"q\"\n\nAsk HN\n  by unknown | 1 points | 0 comments\n"
	if out.String() != want {
		t.Fatalf("printItems = %q, want %q", out.String(), want)
	}
}

func TestRun_LogsPrintsRecordsFromEarlierRun(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	logPath := filepath.Join(home, "logs", "hnsearch.log")
	cfgPath := writeConfig(t, `
store = "memory"
log_file = "`+logPath+`"
log_level = "debug"
`)

	if err := Run(context.Background(), Options{ConfigPath: cfgPath, Offline: true, Once: true, Out: &bytes.Buffer{}}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	var out bytes.Buffer
	if err := Run(context.Background(), Options{ConfigPath: cfgPath, Logs: 50, Out: &out}); err != nil {
		t.Fatalf("Run -logs returned error: %v", err)
	}
	got := out.String()
	for _, want := range []string{"hnsearch starting", "fetch succeeded", "query=React"} {
		if !strings.Contains(got, want) {
			t.Fatalf("logs output = %q, want it to contain %q", got, want)
		}
	}
}

func TestRun_LogsWithLoggingDisabled(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgPath := writeConfig(t, `log_file = ""`)
	if err := Run(context.Background(), Options{ConfigPath: cfgPath, Logs: 5}); err == nil {
		t.Fatal("Run returned nil error, want logging disabled error")
	}
}
