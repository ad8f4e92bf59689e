package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BalanceChart renders a projected balance series as a column chart with a
// money-scaled y-axis. Balances can dip below zero; negative columns hang
// downward from the zero line in red.
func BalanceChart(values []float64, labels []string, width, height int, th Theme) string {
	if len(values) == 0 || width < 15 || height < 4 {
		return ""
	}

	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	tick := chartTickStep(math.Max(maxVal, -minVal))
	ceiling := 0.0
	if maxVal > 0 {
		ceiling = math.Ceil(maxVal/tick) * tick
	}
	floor := 0.0
	if minVal < 0 {
		floor = math.Floor(minVal/tick) * tick
	}
	if ceiling == floor {
		ceiling = tick
	}
	span := ceiling - floor

	yLabelW := len(formatChartLabel(ceiling))
	if w := len(formatChartLabel(floor)); w > yLabelW {
		yLabelW = w
	}
	if yLabelW < 5 {
		yLabelW = 5
	}

	chartW := width - yLabelW - 1
	if chartW < 5 {
		chartW = 5
	}

	// One column per character cell; sample long series down.
	if len(values) > chartW {
		sampled := make([]float64, chartW)
		sampledLabels := make([]string, chartW)
		for i := range sampled {
			srcIdx := i * (len(values) - 1) / (chartW - 1)
			sampled[i] = values[srcIdx]
			if len(labels) == len(values) {
				sampledLabels[i] = labels[srcIdx]
			}
		}
		values, labels = sampled, sampledLabels
	}

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	axisStyle := lipgloss.NewStyle().Foreground(th.TextDim)
	posStyle := lipgloss.NewStyle().Foreground(th.Green)
	negStyle := lipgloss.NewStyle().Foreground(th.Red)

	rowLabel := func(edge float64) string {
		return fmt.Sprintf("%*s", yLabelW, formatChartLabel(edge))
	}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		rowTop := floor + span*float64(row)/float64(height)
		rowBottom := floor + span*float64(row-1)/float64(height)

		switch {
		case row == height:
			b.WriteString(axisStyle.Render(rowLabel(ceiling)))
		case row == 1:
			b.WriteString(axisStyle.Render(rowLabel(floor)))
		case rowBottom <= 0 && rowTop > 0:
			b.WriteString(axisStyle.Render(rowLabel(0)))
		default:
			b.WriteString(strings.Repeat(" ", yLabelW))
		}
		b.WriteString(axisStyle.Render("│"))

		for _, v := range values {
			b.WriteString(chartCell(v, rowTop, rowBottom, blocks, posStyle, negStyle, axisStyle))
		}
		b.WriteString("\n")
	}

	// X-axis with first and last date labels.
	b.WriteString(strings.Repeat(" ", yLabelW))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", len(values))))
	if len(labels) == len(values) && labels[0] != "" {
		first, last := labels[0], labels[len(labels)-1]
		gap := len(values) - len(first) - len(last)
		if gap < 1 {
			gap = 1
		}
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", yLabelW+1))
		b.WriteString(axisStyle.Render(first + strings.Repeat(" ", gap) + last))
	}

	return b.String()
}

// chartCell picks the glyph for one column within one row band.
func chartCell(v, rowTop, rowBottom float64, blocks []rune, pos, neg, axis lipgloss.Style) string {
	if v >= 0 {
		// Upward column from the zero line.
		if rowBottom >= 0 && v >= rowTop {
			return pos.Render("█")
		}
		if rowBottom >= 0 && v > rowBottom {
			frac := (v - rowBottom) / (rowTop - rowBottom)
			idx := int(frac * 8)
			if idx < 1 {
				idx = 1
			}
			if idx > 8 {
				idx = 8
			}
			return pos.Render(string(blocks[idx]))
		}
		if rowBottom <= 0 && rowTop > 0 {
			return axis.Render("─")
		}
		return " "
	}

	// Downward column below the zero line.
	if rowTop <= 0 && v <= rowBottom {
		return neg.Render("█")
	}
	if rowTop <= 0 && v < rowTop {
		return neg.Render("▄")
	}
	if rowBottom <= 0 && rowTop > 0 {
		return axis.Render("─")
	}
	return " "
}

// chartTickStep computes a nice tick interval targeting ~4 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 4
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	if v < 0 {
		return "-" + formatChartLabel(-v)
	}
	switch {
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
