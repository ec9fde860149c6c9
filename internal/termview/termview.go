// Package termview renders panel states for the terminal.
//
// Colours degrade automatically: lipgloss detects the output's colour
// profile, so piping the CLI into a file yields plain text.
package termview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jpalmerr/emojistatus/internal/store"
)

// level colours, best to worst
var levelColors = map[string]lipgloss.Color{
	"excellent": lipgloss.Color("#73BF69"),
	"good":      lipgloss.Color("#A3D977"),
	"ok":        lipgloss.Color("#FADE2A"),
	"warning":   lipgloss.Color("#FF9830"),
	"critical":  lipgloss.Color("#F2495C"),
}

var (
	mutedColor = lipgloss.Color("#8E8E9A")

	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)
	alertStyle = lipgloss.NewStyle().Foreground(levelColors["critical"]).Bold(true)
)

func levelColor(level string) lipgloss.Color {
	if c, ok := levelColors[level]; ok {
		return c
	}
	return mutedColor
}

// Render returns a bordered card for one panel state.
func Render(state store.PanelState) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(levelColor(state.Level)).
		Padding(0, 1)

	lines := []string{titleStyle.Render(state.Name)}

	fields := make([]string, 0, len(state.Fields))
	for _, f := range state.Fields {
		fields = append(fields, renderField(f, len(state.Fields) > 1))
	}
	switch state.DisplayMode {
	case "grid":
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, spaced(fields)...))
	default:
		lines = append(lines, fields...)
	}

	if state.Label != "" {
		lines = append(lines, mutedStyle.Render(state.Label))
	}
	if state.Error != nil {
		lines = append(lines, alertStyle.Render("error: "+*state.Error))
	}

	return border.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderAll renders every state, one card per panel.
func RenderAll(states []store.PanelState) string {
	cards := make([]string, 0, len(states))
	for _, s := range states {
		cards = append(cards, Render(s))
	}
	return strings.Join(cards, "\n")
}

func renderField(f store.FieldState, named bool) string {
	valueStyle := lipgloss.NewStyle().Foreground(levelColor(f.Level)).Bold(true)

	head := f.Emoji + " " + valueStyle.Render(f.Formatted)
	if named {
		head += " " + mutedStyle.Render(f.Field)
	}
	lines := []string{head}

	if f.Trend != nil {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("%s %s (%s)",
			f.Trend.Glyph, f.Trend.Direction, percent(f.Trend.ChangePercent))))
	}
	if f.History != nil {
		lines = append(lines, historyBar(f.History))
	}
	if s := f.Statistics; s != nil {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("min %s  max %s  avg %s  n %d",
			number(s.Min), number(s.Max), number(s.Avg), s.Count)))
	}
	if c := f.Comparison; c != nil {
		lines = append(lines, mutedStyle.Render(comparison(c)))
	}
	if f.Alert != "" {
		lines = append(lines, alertStyle.Render(f.Alert))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// historyBar draws one coloured block per windowed sample, best levels
// first.
func historyBar(h *store.HistoryState) string {
	var b strings.Builder
	counts := []struct {
		level string
		n     int
	}{
		{"excellent", h.Excellent},
		{"good", h.Good},
		{"ok", h.OK},
		{"warning", h.Warning},
		{"critical", h.Critical},
	}
	for _, c := range counts {
		if c.n == 0 {
			continue
		}
		b.WriteString(lipgloss.NewStyle().Foreground(levelColor(c.level)).Render(strings.Repeat("█", c.n)))
	}
	return fmt.Sprintf("%s %s", b.String(), mutedStyle.Render(fmt.Sprintf("%d samples", h.Total)))
}

func spaced(blocks []string) []string {
	out := make([]string, 0, 2*len(blocks))
	for i, b := range blocks {
		if i > 0 {
			out = append(out, "   ")
		}
		out = append(out, b)
	}
	return out
}

func number(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", *v)
}

func signed(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f", *v)
}

// comparison shows attainment against a target, or the change from the
// previous sample.
func comparison(c *store.ComparisonState) string {
	if c.Mode == "target" {
		mark := "❌"
		if c.Met {
			mark = "✅"
		}
		attained := "n/a"
		if c.Percent != nil {
			attained = fmt.Sprintf("%.0f%%", *c.Percent)
		}
		return fmt.Sprintf("vs target %s: %s %s (%s)", number(c.Reference), mark, attained, signed(c.Difference))
	}
	return fmt.Sprintf("vs %s %s: %s (%s)", c.Mode, number(c.Reference), signed(c.Difference), percent(c.Percent))
}

func percent(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f%%", *v)
}
