package formatter

import (
	"fmt"

	"github.com/yildizm/GefSum/internal/model"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(record model.Record) ([]byte, error)
}

// PlotOptions limits what the profile views draw
type PlotOptions struct {
	QCMax        float64 // cone resistance is clipped to this value
	RfMax        float64 // friction ratio is clipped to this value
	MinElevation float64 // nothing below this elevation is drawn
}

// DefaultPlotOptions returns the plot limits used by the profile views
func DefaultPlotOptions() PlotOptions {
	return PlotOptions{QCMax: 10.0, RfMax: 10.0, MinElevation: -10.0}
}

// New returns the formatter for an output format name
func New(format string, color bool, plot PlotOptions) (Formatter, error) {
	switch format {
	case "", "text":
		return NewTerminal(color, plot), nil
	case "json":
		return NewJSON(), nil
	case "yaml":
		return NewYAML(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
