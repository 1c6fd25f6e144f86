// Package fetch turns a query into a search request and feeds the outcome
// into the list store, discarding results that a newer request superseded.
package fetch

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/five82/hnsearch/internal/hn"
	"github.com/five82/hnsearch/internal/metrics"
	"github.com/five82/hnsearch/internal/state"
)

// Token identifies one fetch attempt.
type Token string

func newToken() Token {
	return Token(uuid.NewString())
}

// ResultMsg carries a finished request back to the update loop.
type ResultMsg struct {
	Token   Token
	Query   string
	Items   []hn.Item
	Err     error
	Elapsed time.Duration
}

// Options configure a Controller.
type Options struct {
	Logger  *slog.Logger
	Metrics metrics.Recorder
}

// Controller issues searches and applies their results to a Store. Fetch and
// Resolve must be called from the same goroutine that dispatches to the store.
type Controller struct {
	searcher hn.Searcher
	store    *state.Store
	logger   *slog.Logger
	metrics  metrics.Recorder

	current Token
}

// NewController builds a Controller over searcher and store.
func NewController(searcher hn.Searcher, store *state.Store, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rec := opts.Metrics
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Controller{
		searcher: searcher,
		store:    store,
		logger:   logger,
		metrics:  rec,
	}
}

// Fetch starts a request for query. FetchStart is dispatched before Fetch
// returns; the returned command performs the request and yields a ResultMsg
// for Resolve. Earlier in-flight requests are not cancelled, only outdated.
func (c *Controller) Fetch(ctx context.Context, query string) tea.Cmd {
	token := newToken()
	c.current = token
	c.store.Dispatch(state.FetchStart{})
	c.metrics.RecordFetchStarted()
	c.logger.Debug("fetch started", slog.String("query", query), slog.String("token", string(token)))

	searcher := c.searcher
	return func() tea.Msg {
		started := time.Now()
		items, err := searcher.Search(ctx, query)
		return ResultMsg{
			Token:   token,
			Query:   query,
			Items:   items,
			Err:     err,
			Elapsed: time.Since(started),
		}
	}
}

// Resolve applies msg if it belongs to the most recent Fetch and reports
// whether it did. A superseded result changes nothing.
func (c *Controller) Resolve(msg ResultMsg) bool {
	c.metrics.RecordFetchLatency(msg.Elapsed)
	if msg.Token == "" || msg.Token != c.current {
		c.metrics.RecordStaleDiscard()
		c.logger.Debug("stale fetch result discarded",
			slog.String("query", msg.Query),
			slog.String("token", string(msg.Token)),
		)
		return false
	}
	c.current = ""

	if msg.Err != nil {
		c.metrics.RecordFetchFailure()
		c.logger.Warn("fetch failed",
			slog.String("query", msg.Query),
			slog.String("error", msg.Err.Error()),
		)
		c.store.Dispatch(state.FetchFailure{Err: msg.Err})
		return true
	}

	c.metrics.RecordFetchSuccess(len(msg.Items))
	c.logger.Info("fetch succeeded",
		slog.String("query", msg.Query),
		slog.Int("items", len(msg.Items)),
		slog.Duration("elapsed", msg.Elapsed),
	)
	c.store.Dispatch(state.FetchSuccess{Items: msg.Items})
	return true
}

// Pending reports whether a request is awaiting Resolve.
func (c *Controller) Pending() bool {
	return c.current != ""
}

// Run performs a blocking fetch for query and resolves it.
func (c *Controller) Run(ctx context.Context, query string) {
	msg, _ := c.Fetch(ctx, query)().(ResultMsg)
	c.Resolve(msg)
}
