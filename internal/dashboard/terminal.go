package dashboard

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"campaignpulse/pkg/contracts/domain"
)

var (
	colorPrimary = lipgloss.Color("#5e4ae3")
	colorAccent  = lipgloss.Color("#7b6cf6")
	colorWarm    = lipgloss.Color("#ffb347")
	colorText    = lipgloss.Color("#dbe1ff")
	colorMuted   = lipgloss.Color("#8a90b5")
	colorError   = lipgloss.Color("#e53935")
)

const (
	kpisPerLine = 4
	barWidth    = 30
)

type termStyles struct {
	title   lipgloss.Style
	section lipgloss.Style
	card    lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	muted   lipgloss.Style
	bar     lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	border  lipgloss.Style
	errBox  lipgloss.Style
}

// TerminalRenderer draws a DashboardView for a terminal. Colors are
// dropped automatically when the writer is not a TTY.
type TerminalRenderer struct {
	styles termStyles
	fmt    *Formatter
}

// NewTerminalRenderer creates a renderer whose color profile is detected
// from w. f formats the chart values.
func NewTerminalRenderer(w io.Writer, f *Formatter) *TerminalRenderer {
	if f == nil {
		f = DefaultFormatter()
	}
	r := lipgloss.NewRenderer(w)
	return &TerminalRenderer{
		styles: termStyles{
			title:   r.NewStyle().Bold(true).Foreground(colorPrimary).MarginBottom(1),
			section: r.NewStyle().Bold(true).Foreground(colorAccent).MarginTop(1),
			card:    r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 1).Width(22),
			label:   r.NewStyle().Foreground(colorMuted),
			value:   r.NewStyle().Bold(true).Foreground(colorText),
			muted:   r.NewStyle().Foreground(colorMuted),
			bar:     r.NewStyle().Foreground(colorWarm),
			header:  r.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1),
			cell:    r.NewStyle().Padding(0, 1),
			border:  r.NewStyle().Foreground(colorMuted),
			errBox:  r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorError).Padding(0, 1),
		},
		fmt: f,
	}
}

// Render draws the full dashboard.
func (t *TerminalRenderer) Render(v *domain.DashboardView) string {
	if v == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(t.styles.title.Render("Campaign Performance Dashboard"))
	sb.WriteString("\n")
	sb.WriteString(t.KPIs(v.KPIs))
	sb.WriteString("\n")
	sb.WriteString(t.styles.section.Render("Spend by Platform"))
	sb.WriteString("\n")
	sb.WriteString(t.Bars(v.Charts.PlatformSpend, t.fmt.Currency))
	sb.WriteString(t.styles.section.Render("Top Campaigns by ROAS"))
	sb.WriteString("\n")
	sb.WriteString(t.Bars(v.Charts.TopCampaigns, t.fmt.Ratio))
	sb.WriteString(t.styles.section.Render("Monthly Revenue"))
	sb.WriteString("\n")
	sb.WriteString(t.Bars(v.Charts.RevenueTrend, t.fmt.Currency))
	sb.WriteString(t.styles.section.Render("Campaign Leaderboard"))
	sb.WriteString("\n")
	sb.WriteString(t.Leaderboard(v.Leaderboard))
	sb.WriteString("\n")
	sb.WriteString(t.styles.section.Render("Insights"))
	sb.WriteString("\n")
	sb.WriteString(t.Insights(v.Insights))
	return sb.String()
}

// RenderError draws the single diagnostic shown instead of the dashboard.
func (t *TerminalRenderer) RenderError(msg string) string {
	return t.styles.errBox.Render(msg) + "\n"
}

// KPIs draws the tiles as cards, kpisPerLine to a line.
func (t *TerminalRenderer) KPIs(tiles []domain.KPITile) string {
	var lines []string
	for start := 0; start < len(tiles); start += kpisPerLine {
		end := min(start+kpisPerLine, len(tiles))
		cards := make([]string, 0, end-start)
		for _, k := range tiles[start:end] {
			cards = append(cards, t.styles.card.Render(
				t.styles.label.Render(k.Label)+"\n"+t.styles.value.Render(k.Formatted)))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Bars draws the first dataset of a chart as horizontal bars scaled to
// the largest value.
func (t *TerminalRenderer) Bars(c domain.Chart, format func(float64) string) string {
	if len(c.Datasets) == 0 || len(c.Labels) == 0 {
		return t.styles.muted.Render("no data") + "\n"
	}
	data := c.Datasets[0].Data

	labelWidth, peak := 0, 0.0
	for i, l := range c.Labels {
		labelWidth = max(labelWidth, lipgloss.Width(l))
		if i < len(data) {
			peak = max(peak, data[i])
		}
	}

	var sb strings.Builder
	for i, l := range c.Labels {
		var v float64
		if i < len(data) {
			v = data[i]
		}
		n := 0
		if peak > 0 && v > 0 {
			n = max(1, int(v/peak*barWidth))
		}
		sb.WriteString(l)
		sb.WriteString(strings.Repeat(" ", labelWidth-lipgloss.Width(l)+1))
		sb.WriteString(t.styles.bar.Render(strings.Repeat("█", n)))
		sb.WriteString(" ")
		sb.WriteString(format(v))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Leaderboard draws the ranked campaign table.
func (t *TerminalRenderer) Leaderboard(rows []domain.LeaderboardRow) string {
	if len(rows) == 0 {
		return t.styles.muted.Render("no campaigns") + "\n"
	}

	headers := append([]string{"#"}, domain.LeaderboardHeaders...)
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = append([]string{strconv.Itoa(r.Rank)}, r.Cells()...)
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(t.styles.border).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.styles.header
			}
			return t.styles.cell
		})
	return tbl.String()
}

// Insights draws one titled line per insight.
func (t *TerminalRenderer) Insights(insights []domain.Insight) string {
	var sb strings.Builder
	for _, in := range insights {
		sb.WriteString(t.styles.value.Render(in.Title))
		sb.WriteString("  ")
		sb.WriteString(in.Body)
		sb.WriteString("\n")
	}
	return sb.String()
}
