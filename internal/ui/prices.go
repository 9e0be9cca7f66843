package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/language"

	"github.com/kisanportal/kisan/internal/market"
)

// updatePricesViewport re-renders the prices pane.
func (m *Model) updatePricesViewport() {
	if !m.ready {
		return
	}
	m.pricesViewport.SetContent(m.renderPrices())
}

// renderPrices renders the summary block and the price table.
func (m Model) renderPrices() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	if !snap.HasSeries {
		switch {
		case snap.LastError != nil:
			return styles.DangerText.Render(snap.LastError.Error())
		case snap.LastUpdated.IsZero():
			return styles.MutedText.Render(T(m.lang, "status.connecting"))
		default:
			return styles.MutedText.Render(T(m.lang, "prices.empty"))
		}
	}
	if len(snap.Series.Records) == 0 {
		return styles.MutedText.Render(T(m.lang, "prices.empty"))
	}

	var b strings.Builder
	b.WriteString(m.renderSummary(market.Summarize(snap.Series, market.DefaultWindow)))
	b.WriteString("\n\n")
	b.WriteString(RenderPriceTable(snap.Series, m.theme, m.lang, m.width, PriceRowLimit))
	return b.String()
}

// renderSummary renders the headline figures for the tracked commodity.
func (m Model) renderSummary(sum market.Summary) string {
	styles := m.theme.Styles()
	unit := m.snapshot.Series.Unit

	label := func(key string) string {
		return styles.MutedText.Render(T(m.lang, key))
	}

	title := styles.Text.Bold(true).Render(titleCase(m.snapshot.Commodity))
	if unit != "" {
		title += styles.FaintText.Render(" · " + T(m.lang, "prices.per") + " " + unit)
	}

	latest := label("prices.latest") + " " + styles.AccentText.Bold(true).Render(formatRupees(sum.Latest))

	change := label("prices.change") + " "
	if sum.HasChange {
		change += m.trendStyle(sum.Trend).Render(
			fmt.Sprintf("%s %s %s", trendArrow(sum.Trend), formatPercent(sum.ChangePct), T(m.lang, "trend."+sum.Trend.String())),
		)
	} else {
		change += styles.FaintText.Render("—")
	}

	average := label("prices.average") + " " + styles.Text.Render(formatRupees(sum.Average))
	span := label("prices.range") + " " + styles.Text.Render(formatRupees(sum.Min)+" – "+formatRupees(sum.Max))
	projected := label("prices.projected") + " " + styles.InfoText.Render(formatRupees(sum.Projected))

	if m.width > 0 && m.width < LayoutCompactWidth {
		return lipgloss.JoinVertical(lipgloss.Left, title, latest, change, average, span, projected)
	}
	gap := "   "
	return title + "\n" + strings.Join([]string{latest, change, average, span, projected}, gap)
}

func (m Model) trendStyle(t market.Trend) lipgloss.Style {
	styles := m.theme.Styles()
	switch t {
	case market.TrendUp:
		return styles.SuccessText
	case market.TrendDown:
		return styles.DangerText
	default:
		return styles.MutedText
	}
}

func trendArrow(t market.Trend) string {
	switch t {
	case market.TrendUp:
		return "↑"
	case market.TrendDown:
		return "↓"
	default:
		return "→"
	}
}

// RenderPriceTable renders the newest limit records as a table. Width zero
// lets the table size itself.
func RenderPriceTable(series market.PriceSeries, theme Theme, lang language.Tag, width, limit int) string {
	records := series.Sorted()
	slices.Reverse(records)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	wide := width == 0 || width >= LayoutWideWidth

	headers := []string{T(lang, "prices.date"), T(lang, "prices.market")}
	if wide {
		headers = append(headers, T(lang, "prices.district"), T(lang, "prices.variety"))
	}
	headers = append(headers, T(lang, "prices.min"), T(lang, "prices.max"), T(lang, "prices.modal"))
	numericFrom := len(headers) - 3

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := []string{r.Date, truncate(r.Market, 24)}
		if wide {
			row = append(row, truncate(r.District, 18), truncate(r.Variety, 18))
		}
		row = append(row, formatRupees(r.MinPrice), formatRupees(r.MaxPrice), formatRupees(r.ModalPrice))
		rows = append(rows, row)
	}

	styles := theme.Styles()
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if col >= numericFrom {
				style = style.Align(lipgloss.Right)
			}
			switch {
			case row == table.HeaderRow:
				return style.Inherit(styles.AccentText).Bold(true)
			case col == len(headers)-1:
				return style.Inherit(styles.Text).Bold(true)
			case row%2 == 1:
				return style.Inherit(styles.MutedText)
			default:
				return style.Inherit(styles.Text)
			}
		})
	if width > 0 {
		t = t.Width(width)
	}
	return t.String()
}
