// Package metrics collects fetch lifecycle counters with Prometheus.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the fetch path reports to.
type Recorder interface {
	RecordFetchStarted()
	RecordFetchSuccess(items int)
	RecordFetchFailure()
	RecordStaleDiscard()
	RecordFetchLatency(d time.Duration)
	RecordDelete()
}

// Nop discards every observation.
type Nop struct{}

func (Nop) RecordFetchStarted()                {}
func (Nop) RecordFetchSuccess(int)             {}
func (Nop) RecordFetchFailure()                {}
func (Nop) RecordStaleDiscard()                {}
func (Nop) RecordFetchLatency(_ time.Duration) {}
func (Nop) RecordDelete()                      {}

var (
	_ Recorder = Nop{}
	_ Recorder = (*Collector)(nil)
)

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	started   prometheus.Counter
	succeeded prometheus.Counter
	failed    prometheus.Counter
	stale     prometheus.Counter
	items     prometheus.Histogram
	latency   prometheus.Histogram
	deleted   prometheus.Counter
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		started: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hnsearch_fetch_started_total",
			Help: "Search requests issued.",
		}),
		succeeded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hnsearch_fetch_success_total",
			Help: "Search requests whose result was applied.",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hnsearch_fetch_fail_total",
			Help: "Search requests that failed and were applied as errors.",
		}),
		stale: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hnsearch_fetch_stale_total",
			Help: "Search results discarded because a newer request superseded them.",
		}),
		items: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hnsearch_fetch_items",
			Help:    "Items per applied search result.",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hnsearch_fetch_latency_seconds",
			Help:    "Search request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hnsearch_items_deleted_total",
			Help: "Items removed from the list by the user.",
		}),
	}

	reg.MustRegister(
		c.started,
		c.succeeded,
		c.failed,
		c.stale,
		c.items,
		c.latency,
		c.deleted,
	)
	return c
}

func (c *Collector) RecordFetchStarted() { c.started.Inc() }

func (c *Collector) RecordFetchSuccess(items int) {
	c.succeeded.Inc()
	c.items.Observe(float64(items))
}

func (c *Collector) RecordFetchFailure() { c.failed.Inc() }

func (c *Collector) RecordStaleDiscard() { c.stale.Inc() }

func (c *Collector) RecordFetchLatency(d time.Duration) { c.latency.Observe(d.Seconds()) }

func (c *Collector) RecordDelete() { c.deleted.Inc() }

// Router mounts the scrape handler for gatherer at /metrics.
func Router(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return r
}

// Serve exposes Router on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Router(gatherer),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics listening", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
