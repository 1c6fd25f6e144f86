package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/hnsearch/internal/fetch"
	"github.com/five82/hnsearch/internal/metrics"
	"github.com/five82/hnsearch/internal/prefs"
	"github.com/five82/hnsearch/internal/query"
	"github.com/five82/hnsearch/internal/state"
)

// ThemeKey is the prefs key holding the selected theme name.
const ThemeKey = "theme"

// Options configures the UI.
type Options struct {
	Fetch *fetch.Controller
	Query *query.Controller
	Store *state.Store

	// Prefs persists the theme choice. Optional.
	Prefs *prefs.Store
	// SearchURL renders the request URL for the header. Optional.
	SearchURL func(query string) string

	Metrics metrics.Recorder
	Logger  *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	fetch     *fetch.Controller
	query     *query.Controller
	store     *state.Store
	prefs     *prefs.Store
	searchURL func(string) string
	metrics   metrics.Recorder
	logger    *slog.Logger

	keys    keyMap
	theme   Theme
	input   textinput.Model
	spinner spinner.Model

	width    int
	height   int
	selected int
}

// New creates a new Bubble Tea model.
func New(ctx context.Context, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	rec := opts.Metrics
	if rec == nil {
		rec = metrics.Nop{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	themeName := ""
	if opts.Prefs != nil {
		themeName = opts.Prefs.Read(ThemeKey, "")
	}
	theme := GetTheme(themeName)

	input := textinput.New()
	input.Prompt = "search: "
	input.Placeholder = "type a query and press enter"
	input.SetValue(opts.Query.Draft())
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = theme.Styles().Accent

	return Model{
		ctx:       ctx,
		fetch:     opts.Fetch,
		query:     opts.Query,
		store:     opts.Store,
		prefs:     opts.Prefs,
		searchURL: opts.SearchURL,
		metrics:   rec,
		logger:    logger,
		keys:      DefaultKeyMap(),
		theme:     theme,
		input:     input,
		spinner:   spin,
	}
}

// Init implements tea.Model. It issues the startup fetch for the seeded query.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	if q, changed := m.query.Sync(); changed {
		cmds = append(cmds, m.fetch.Fetch(m.ctx, q))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-len(m.input.Prompt)-6, 10)
		return m, nil

	case fetch.ResultMsg:
		m.fetch.Resolve(msg)
		m.clampSelection()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		if strings.TrimSpace(m.query.Draft()) == "" {
			return m, nil
		}
		q, changed := m.query.Submit()
		if !changed {
			return m, nil
		}
		m.selected = 0
		return m, m.fetch.Fetch(m.ctx, q)

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.selected++
		m.clampSelection()
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		m.deleteSelected()
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.spinner.Style = m.theme.Styles().Accent
		if m.prefs != nil {
			m.prefs.Write(ThemeKey, m.theme.Name)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.query.OnDraftChange(m.input.Value())
	return m, cmd
}

func (m *Model) deleteSelected() {
	items := m.store.Snapshot().Items
	if m.selected < 0 || m.selected >= len(items) {
		return
	}
	id := items[m.selected].ID
	m.store.Dispatch(state.Delete{ID: id})
	m.metrics.RecordDelete()
	m.logger.Debug("item removed", slog.String("id", string(id)))
	m.clampSelection()
}

func (m *Model) clampSelection() {
	n := len(m.store.Snapshot().Items)
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
