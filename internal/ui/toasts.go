package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kisanportal/kisan/internal/notify"
)

// renderToasts renders the newest notifications, right aligned, padded to
// ToastLimit rows so the layout does not jump.
func (m Model) renderToasts() string {
	styles := m.theme.Styles()

	items := m.items
	if len(items) > ToastLimit {
		items = items[len(items)-ToastLimit:]
	}

	lines := make([]string, 0, ToastLimit)
	for range ToastLimit - len(items) {
		lines = append(lines, "")
	}
	for _, item := range items {
		lines = append(lines, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, m.renderToast(styles, item)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderToast(styles Styles, item notify.Item) string {
	badge := item.Kind.String()
	if item.Kind == notify.KindLoading {
		badge = m.spinner.View()
	}
	msg := truncate(item.Message, max(m.width-len(badge)-4, 10))
	return styles.ToastStyle(item.Kind).Render(badge) + " " + styles.Text.Render(msg)
}
