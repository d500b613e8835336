package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// styles are derived from a Theme once per theme change.
type styles struct {
	header      lipgloss.Style
	title       lipgloss.Style
	panel       lipgloss.Style
	label       lipgloss.Style
	value       lipgloss.Style
	keyHint     lipgloss.Style
	status      lipgloss.Style
	message     lipgloss.Style
	errMessage  lipgloss.Style
	prompt      lipgloss.Style
	sparkHigh   lipgloss.Style
	sparkMid    lipgloss.Style
	sparkLow    lipgloss.Style
	subtle      lipgloss.Style
	cursorStyle lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		title: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		label:       lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:       lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		keyHint:     lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		status:      lipgloss.NewStyle().Foreground(t.Text),
		message:     lipgloss.NewStyle().Foreground(t.Success),
		errMessage:  lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		prompt:      lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		sparkHigh:   lipgloss.NewStyle().Foreground(t.Success),
		sparkMid:    lipgloss.NewStyle().Foreground(t.Warning),
		sparkLow:    lipgloss.NewStyle().Foreground(t.Error),
		subtle:      lipgloss.NewStyle().Foreground(t.Muted),
		cursorStyle: lipgloss.NewStyle().Reverse(true),
	}
}

// GradientText blends each rune from start to end in Lab space.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	from, err1 := colorful.Hex(string(start))
	to, err2 := colorful.Hex(string(end))
	if err1 != nil || err2 != nil {
		return lipgloss.NewStyle().Foreground(start).Render(text)
	}

	var result strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := lipgloss.Color(from.BlendLab(to, t).Clamped().Hex())
		result.WriteString(lipgloss.NewStyle().Foreground(c).Render(string(r)))
	}
	return result.String()
}

// ProgressBar shows how far through the replay the current turn is.
func (s styles) ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return s.value.Render(strings.Repeat("█", filled)) + s.subtle.Render(strings.Repeat("░", width-filled))
}

// SparklineChart renders values in width columns, sampling when there are more values than columns.
func (s styles) SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var result strings.Builder
	cols := min(width, len(values))
	for i := 0; i < cols; i++ {
		v := values[i*len(values)/cols]
		norm := (v - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(s.sparkHigh.Render(c))
		case norm > 0.3:
			result.WriteString(s.sparkMid.Render(c))
		default:
			result.WriteString(s.sparkLow.Render(c))
		}
	}
	return result.String()
}

func (s styles) Separator(width int) string {
	if width < 8 {
		return s.subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return s.subtle.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}
