package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/five82/hnsearch/internal/config"
	"github.com/five82/hnsearch/internal/fetch"
	"github.com/five82/hnsearch/internal/fixture"
	"github.com/five82/hnsearch/internal/hn"
	"github.com/five82/hnsearch/internal/logger"
	"github.com/five82/hnsearch/internal/logtail"
	"github.com/five82/hnsearch/internal/metrics"
	"github.com/five82/hnsearch/internal/prefs"
	"github.com/five82/hnsearch/internal/query"
	"github.com/five82/hnsearch/internal/state"
	"github.com/five82/hnsearch/internal/ui"
)

// Options configure the hnsearch application.
type Options struct {
	ConfigPath string
	// Offline serves the built-in stories from a loopback endpoint instead of
	// calling the configured one.
	Offline bool
	// Once runs a single search, prints the results to Out and exits.
	Once bool
	// Query replaces the persisted search term before startup.
	Query string
	// Logs prints the last Logs records of the log file to Out and exits.
	Logs int
	Out  io.Writer
}

// Run boots hnsearch until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if opts.Logs > 0 {
		return printLogs(out, cfg.LogFile, opts.Logs)
	}

	log, closeLog, err := logger.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hnsearch: logging disabled: %v\n", err)
		log, closeLog = logger.Discard(), io.NopCloser(nil)
	}
	defer closeLog.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	endpoint := cfg.Endpoint
	if opts.Offline {
		addr, err := startFixture(ctx, log)
		if err != nil {
			return fmt.Errorf("start offline endpoint: %w", err)
		}
		endpoint = "http://" + addr + fixture.SearchPath
	}

	rec := startMetrics(ctx, cfg.MetricsAddr, log)

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	client, err := hn.NewClient(endpoint, hn.ClientOptions{
		Timeout: cfg.RequestTimeout,
		Limiter: limiter,
	})
	if err != nil {
		return fmt.Errorf("init search client: %w", err)
	}

	userPrefs := prefs.NewStore(prefs.OpenBackend(cfg.Store, cfg.StorePath, log), log)
	defer func() {
		if err := userPrefs.Close(); err != nil {
			log.Warn("close prefs", slog.String("error", err.Error()))
		}
	}()
	if opts.Query != "" {
		userPrefs.Write(query.DefaultKey, opts.Query)
	}

	store := &state.Store{}
	fetcher := fetch.NewController(client, store, fetch.Options{Logger: log, Metrics: rec})
	queries := query.NewController(userPrefs, query.Options{Fallback: cfg.DefaultQuery})

	log.Info("hnsearch starting",
		slog.String("endpoint", endpoint),
		slog.String("store", cfg.Store),
		slog.Bool("offline", opts.Offline),
		slog.Bool("once", opts.Once),
	)

	if opts.Once {
		return runOnce(ctx, out, fetcher, queries, store)
	}

	return ui.Run(ctx, ui.Options{
		Fetch:     fetcher,
		Query:     queries,
		Store:     store,
		Prefs:     userPrefs,
		SearchURL: client.SearchURL,
		Metrics:   rec,
		Logger:    log,
	})
}

// runOnce drives the same query, fetch and store path the TUI uses, without
// the terminal program.
func runOnce(ctx context.Context, out io.Writer, fetcher *fetch.Controller, queries *query.Controller, store *state.Store) error {
	q, _ := queries.Sync()
	fetcher.Run(ctx, q)

	snap := store.Snapshot()
	if snap.IsError {
		return fmt.Errorf("search %q: %w", q, snap.LastError)
	}
	return printItems(out, q, snap.Items)
}

func printItems(out io.Writer, q string, items []hn.Item) error {
	if _, err := fmt.Fprintf(out, "%d results for %q\n", len(items), q); err != nil {
		return err
	}
	for _, item := range items {
		author := item.Author
		if author == "" {
			author = "unknown"
		}
		if _, err := fmt.Fprintf(out, "\n%s\n", item.Title); err != nil {
			return err
		}
		if item.URL != "" {
			if _, err := fmt.Fprintf(out, "  %s\n", item.URL); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(out, "  by %s | %d points | %d comments\n", author, item.Points, item.NumComments); err != nil {
			return err
		}
	}
	return nil
}

func printLogs(out io.Writer, path string, n int) error {
	if path == "" {
		return fmt.Errorf("logging is disabled (log_file is empty)")
	}
	lines, err := logtail.Read(path, n)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, logtail.Format(line)); err != nil {
			return err
		}
	}
	return nil
}

// startFixture serves the offline stories on a loopback port until ctx ends.
func startFixture(ctx context.Context, log *slog.Logger) (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	srv := &http.Server{
		Handler:           fixture.Router(fixture.Stories()),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("offline endpoint stopped", slog.String("error", err.Error()))
		}
	}()
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	addr := ln.Addr().String()
	log.Info("offline endpoint listening", slog.String("addr", addr))
	return addr, nil
}

// startMetrics returns a Collector served on addr, or Nop when addr is empty.
func startMetrics(ctx context.Context, addr string, log *slog.Logger) metrics.Recorder {
	if addr == "" {
		return metrics.Nop{}
	}
	reg := prometheus.NewRegistry()
	rec := metrics.NewCollector(reg)
	go func() {
		if err := metrics.Serve(ctx, addr, reg, log); err != nil {
			log.Warn("metrics server stopped", slog.String("addr", addr), slog.String("error", err.Error()))
		}
	}()
	return rec
}
