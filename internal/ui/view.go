package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/hnsearch/internal/hn"
	"github.com/five82/hnsearch/internal/state"
)

// View implements tea.Model.
func (m Model) View() string {
	snap := m.store.Snapshot()
	styles := m.theme.Styles()

	sections := []string{
		m.renderHeader(styles),
		styles.Input.Render(m.input.View()),
		m.renderStatus(styles, snap),
		m.renderItems(styles, snap.Items),
		m.renderFooter(styles),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(styles Styles) string {
	parts := []string{styles.Logo.Render("hnsearch")}
	if m.searchURL != nil {
		parts = append(parts, styles.Header.Render(m.searchURL(m.query.Active())))
	}
	header := strings.Join(parts, styles.Header.Render("  "))
	if m.width > 0 {
		return styles.Header.Width(m.width).Render(header)
	}
	return header
}

// renderStatus shows the loading and error lines. An error stays until the
// next successful fetch; items from the last success remain listed below it.
func (m Model) renderStatus(styles Styles, snap state.ListState) string {
	var lines []string
	if snap.IsLoading {
		lines = append(lines, m.spinner.View()+styles.MutedText.Render(" Loading..."))
	}
	if snap.IsError {
		msg := "Request failed"
		if snap.LastError != nil {
			msg = fmt.Sprintf("Request failed: %v", snap.LastError)
		}
		lines = append(lines, styles.Error.Render(msg))
	}
	if len(lines) == 0 {
		return styles.FaintText.Render(fmt.Sprintf("%d results for %q", len(snap.Items), m.query.Active()))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderItems(styles Styles, items []hn.Item) string {
	if len(items) == 0 {
		return styles.MutedText.Render("No stories.")
	}
	rows := make([]string, 0, len(items))
	for i, item := range items {
		rows = append(rows, m.renderItem(styles, item, i == m.selected))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderItem(styles Styles, item hn.Item, selected bool) string {
	title := item.Title
	if title == "" {
		title = "(untitled)"
	}
	marker := "  "
	titleStyle := styles.Title
	if selected {
		marker = styles.Accent.Render("▶ ")
		titleStyle = styles.Selected
	}

	first := marker + titleStyle.Render(title)
	if item.URL != "" {
		first += " " + styles.FaintText.Render(item.URL)
	}
	second := "  " + styles.MutedText.Render(fmt.Sprintf("by %s · ", authorOrUnknown(item.Author))) +
		styles.Points.Render(fmt.Sprintf("%d points", item.Points)) +
		styles.MutedText.Render(fmt.Sprintf(" · %d comments", item.NumComments))
	return first + "\n" + second
}

func (m Model) renderFooter(styles Styles) string {
	bindings := m.keys.footerBindings()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	footer := styles.Footer.Render(strings.Join(parts, "  ") + "  [" + m.theme.Name + "]")
	if m.prefs != nil && m.prefs.Degraded() {
		footer += "  " + styles.Error.Render("settings are not being saved")
	}
	return footer
}

func authorOrUnknown(author string) string {
	if strings.TrimSpace(author) == "" {
		return "unknown"
	}
	return author
}
