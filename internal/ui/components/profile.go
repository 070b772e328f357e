package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/GefSum/internal/model"
)

// CPTChart draws cone resistance and friction ratio as horizontal bars
type CPTChart struct {
	CPT          *model.CPT
	QCMax        float64
	RfMax        float64
	MinElevation float64
	Width        int
	Height       int
}

// Render renders one row per sample, thinned to fit the height
func (c *CPTChart) Render() string {
	n := c.CPT.SamplesAbove(c.MinElevation)
	if n == 0 {
		return lipgloss.NewStyle().Foreground(secondaryColor).Render("no samples above the plot limit")
	}

	rows := max(c.Height-2, 1)
	step := (n + rows - 1) / rows
	barWidth := max((c.Width-12)/2, 4)

	qcStyle := lipgloss.NewStyle().Foreground(qcColor)
	rfStyle := lipgloss.NewStyle().Foreground(rfColor)
	muted := lipgloss.NewStyle().Foreground(secondaryColor)

	lines := []string{muted.Render(fmt.Sprintf("%8s %-*s %-*s", "z [m]",
		barWidth, fmt.Sprintf("qc (max %.0f)", c.QCMax), barWidth, fmt.Sprintf("Rf (max %.0f)", c.RfMax)))}
	for i := 0; i < n; i += step {
		s := c.CPT.Sample(i)
		lines = append(lines, fmt.Sprintf("%8.2f %s %s",
			s.Z,
			qcStyle.Render(bar(s.QC, c.QCMax, barWidth)),
			rfStyle.Render(bar(s.Rf, c.RfMax, barWidth)),
		))
	}
	return strings.Join(lines, "\n")
}

// bar renders v clipped to limit as a fixed-width block bar
func bar(v, limit float64, width int) string {
	filled := 0
	if limit > 0 && v > 0 {
		filled = int(math.Round(math.Min(v, limit) / limit * float64(width)))
	}
	return strings.Repeat("█", filled) + strings.Repeat("·", width-filled)
}

// LayerColumn draws borehole layers as coloured blocks proportional to their height
type LayerColumn struct {
	Layers       []model.SoilLayer
	MinElevation float64
	Height       int
}

// Render renders the column; every visible layer gets at least one row
func (c *LayerColumn) Render() string {
	layers := model.ClipLayers(c.Layers, c.MinElevation)
	if len(layers) == 0 {
		return lipgloss.NewStyle().Foreground(secondaryColor).Render("no layers above the plot limit")
	}

	total := layers[0].ZTop - layers[len(layers)-1].ZBottom
	rows := max(c.Height, len(layers))

	var lines []string
	for _, layer := range layers {
		n := 1
		if total > 0 {
			n = max(int(math.Round(layer.Height()/total*float64(rows))), 1)
		}
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(layer.Color())).Render(strings.Repeat(" ", 6))
		for r := 0; r < n; r++ {
			label := ""
			if r == 0 {
				label = fmt.Sprintf("%7.2f  %s", layer.ZTop, layer.SoilCode)
			}
			lines = append(lines, swatch+" "+label)
		}
	}
	lines = append(lines, fmt.Sprintf("%s %7.2f", strings.Repeat(" ", 6), layers[len(layers)-1].ZBottom))
	return strings.Join(lines, "\n")
}
