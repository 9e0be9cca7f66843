package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{
		bg.Render("kisan", styles.Logo),
		m.renderTabs(styles, bg),
	}

	if commodity := m.snapshot.Commodity; commodity != "" {
		parts = append(parts, bg.Render(titleCase(commodity), styles.Text.Bold(true)))
	}

	parts = append(parts, m.renderStatus(styles, bg))

	if m.width >= LayoutCompactWidth {
		parts = append(parts, m.renderPrefsBadge(styles, bg))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(styles.Header.Render(bg.Join(parts, "  ")))
}

// renderTabs shows the two views with the active one highlighted.
func (m Model) renderTabs(styles Styles, bg BgStyle) string {
	tab := func(v View, key string) string {
		label := T(m.lang, key)
		if m.currentView == v {
			return styles.Selected.Bold(true).Padding(0, 1).Render(label)
		}
		return bg.Render(label, styles.MutedText)
	}
	return tab(ViewPrices, "view.prices") + bg.Sep(" | ") + tab(ViewAssistant, "view.assistant")
}

// renderStatus reports search and connectivity state, most urgent first.
func (m Model) renderStatus(styles Styles, bg BgStyle) string {
	snap := m.snapshot
	switch {
	case m.searchState.IsDebouncing:
		return bg.Render(T(m.lang, "status.waiting"), styles.WarningText)
	case m.searchState.Loading:
		return bg.Render(m.spinner.View(), styles.AccentText) + bg.Space() +
			bg.Render(T(m.lang, "status.loading"), styles.AccentText)
	case snap.IsOffline():
		status := bg.Render("● "+T(m.lang, "status.offline"), styles.DangerText) + bg.Space() +
			bg.Render(classifyConnectionError(snap.LastError), styles.MutedText)
		if m.config != nil && m.config.LogFile != "" && m.width >= LayoutWideWidth {
			status += bg.Spaces(2) + bg.Render("logs", styles.FaintText) + bg.Space() +
				bg.Render(truncateMiddle(m.config.LogFile, 40), styles.MutedText)
		}
		return status
	case snap.LastError != nil:
		return bg.Render(classifyConnectionError(snap.LastError), styles.WarningText.Bold(true)) + bg.Space() +
			bg.Render(T(m.lang, "status.retrying"), styles.MutedText)
	case !snap.LastUpdated.IsZero():
		return bg.Render("●", styles.SuccessText) + bg.Space() +
			bg.Render(T(m.lang, "status.updated")+" "+humanizeDuration(time.Since(snap.LastUpdated)), styles.MutedText)
	default:
		return bg.Render(T(m.lang, "status.connecting"), styles.WarningText.Bold(true))
	}
}

// renderPrefsBadge shows the theme mode and language.
func (m Model) renderPrefsBadge(styles Styles, bg BgStyle) string {
	mode := "◐"
	if m.prefs != nil {
		st := m.prefs.State()
		mode += " " + m.modeLabel(st.Mode)
		if !st.Persistent {
			mode += "*"
		}
	}
	return bg.Render(mode, styles.FaintText) + bg.Space() +
		bg.Render(LanguageName(m.lang), styles.FaintText)
}

// classifyConnectionError maps transport failures onto a short label.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "status 404"), strings.Contains(msg, "not found"):
		return "NOT FOUND"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the input line or the key hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var content string
	switch {
	case m.searching:
		content = m.searchInput.View()
	case m.currentView == ViewAssistant && m.askInput.Focused():
		content = m.askInput.View()
	default:
		hints := make([]string, 0, len(m.keys.ShortHelp()))
		for _, b := range m.keys.ShortHelp() {
			h := b.Help()
			hints = append(hints, bg.Render("<"+h.Key+">", styles.AccentText)+bg.Space()+bg.Render(h.Desc, styles.MutedText))
		}
		content = bg.Join(hints, "  ")
	}

	return styles.Footer.Width(m.width).Render(content)
}
