package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles the CLI renders with.
type Styles struct {
	Title       lipgloss.Style
	Header      lipgloss.Style
	Warn        lipgloss.Style
	MetricLabel lipgloss.Style
	MetricValue lipgloss.Style
	Prey        lipgloss.Style
	Predator    lipgloss.Style
	Subtle      lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Header:      lipgloss.NewStyle().Bold(true).Underline(true),
		Warn:        lipgloss.NewStyle().Foreground(t.Warning),
		MetricLabel: lipgloss.NewStyle().Foreground(t.Muted),
		MetricValue: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Prey:        lipgloss.NewStyle().Foreground(t.Prey),
		Predator:    lipgloss.NewStyle().Foreground(t.Predator),
		Subtle:      lipgloss.NewStyle().Foreground(t.Muted),
	}
}

// Metric renders one "label value" line padded to width.
func (s Styles) Metric(label string, value float64, width int) string {
	return s.MetricLabel.Render(fmt.Sprintf("%-*s", width, label)) + " " +
		s.MetricValue.Render(fmt.Sprintf("%.6f", value))
}

// Separator is a muted rule of the given width.
func (s Styles) Separator(width int) string {
	if width < 1 {
		return ""
	}
	return s.Subtle.Render(strings.Repeat("─", width))
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline downsamples values to at most width glyphs scaled between the
// finite minimum and maximum. A flat series renders at the lowest level;
// NaN and ±Inf samples render as '·'.
func Sparkline(values []float64, width int) string {
	if width < 1 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if finite(v) {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	rng := hi - lo
	if rng == 0 || !finite(rng) {
		rng = 1
	}

	n := min(width, len(values))
	var sb strings.Builder
	for i := 0; i < n; i++ {
		v := values[i*len(values)/n]
		if !finite(v) {
			sb.WriteRune('·')
			continue
		}
		idx := int(math.Round((v - lo) / rng * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		sb.WriteRune(sparkChars[idx])
	}
	return sb.String()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
