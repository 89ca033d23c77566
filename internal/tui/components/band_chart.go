package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/glidepath/glidepath/internal/domain"
)

// BandChart renders the per-year portfolio percentile bands as a simple
// ASCII chart: the p10-p90 envelope as a shaded column with the median
// marked.
type BandChart struct {
	Title  string
	Series []domain.YearlyPercentile
	Width  int
	Height int

	MedianColor   lipgloss.Color
	EnvelopeColor lipgloss.Color
}

// NewBandChart creates a chart with default dimensions.
func NewBandChart(title string, series []domain.YearlyPercentile) *BandChart {
	return &BandChart{
		Title:         title,
		Series:        series,
		Width:         60,
		Height:        12,
		MedianColor:   lipgloss.Color("39"),
		EnvelopeColor: lipgloss.Color("241"),
	}
}

// WithSize sets the chart dimensions.
func (c *BandChart) WithSize(width, height int) *BandChart {
	c.Width = width
	c.Height = height
	return c
}

// Render returns the styled chart.
func (c *BandChart) Render() string {
	if len(c.Series) == 0 {
		return "No data to display"
	}

	width := maxInt(1, c.Width)
	height := maxInt(1, c.Height)

	var content strings.Builder

	if c.Title != "" {
		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(c.MedianColor)
		content.WriteString(titleStyle.Render(c.Title))
		content.WriteString("\n\n")
	}

	maxValue := 0.0
	for _, yp := range c.Series {
		if v, _ := yp.P90.Float64(); v > maxValue {
			maxValue = v
		}
	}
	if maxValue == 0 {
		maxValue = 1
	}

	cols := len(c.Series)
	if cols > width {
		cols = width
	}
	step := float64(len(c.Series)) / float64(cols)

	envelopeStyle := lipgloss.NewStyle().Foreground(c.EnvelopeColor)
	medianStyle := lipgloss.NewStyle().Foreground(c.MedianColor).Bold(true)

	// Render top to bottom; each cell is median, envelope or blank.
	for row := height - 1; row >= 0; row-- {
		lo := maxValue * float64(row) / float64(height)
		hi := maxValue * float64(row+1) / float64(height)

		var line strings.Builder
		for col := 0; col < cols; col++ {
			yp := c.Series[int(float64(col)*step)]
			p10, _ := yp.P10.Float64()
			p50, _ := yp.P50.Float64()
			p90, _ := yp.P90.Float64()

			switch {
			case p50 >= lo && p50 < hi:
				line.WriteString(medianStyle.Render("─"))
			case p10 < hi && p90 >= lo:
				line.WriteString(envelopeStyle.Render("░"))
			default:
				line.WriteString(" ")
			}
		}
		content.WriteString(fmt.Sprintf("%10s │%s\n", formatAxisValue(hi), line.String()))
	}

	content.WriteString(fmt.Sprintf("%10s └%s\n", "", strings.Repeat("─", cols)))
	content.WriteString(fmt.Sprintf("%12cage %d%s%d\n", ' ',
		c.Series[0].Age,
		strings.Repeat(" ", maxInt(1, cols-12)),
		c.Series[len(c.Series)-1].Age))

	legend := lipgloss.JoinHorizontal(lipgloss.Top,
		medianStyle.Render("─ median  "),
		envelopeStyle.Render("░ p10-p90 band"))
	content.WriteString("\n" + legend + "\n")

	return content.String()
}

func formatAxisValue(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("$%.0fk", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
