package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"

	"github.com/yildizm/GefSum/internal/model"
)

// maxProfileRows limits the number of CPT rows drawn in the text view
const maxProfileRows = 40

// terminalFormatter renders a record summary and profile for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
	plot PlotOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool, plot PlotOptions) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = true
	return &terminalFormatter{opts: opts, plot: plot}
}

func (f *terminalFormatter) Format(record model.Record) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b, record)
	f.writeSummary(&b, record)

	switch r := record.(type) {
	case *model.CPT:
		f.writeCPTProfile(&b, r)
	case *model.Borehole:
		f.writeLayers(&b, r)
	default:
		return nil, fmt.Errorf("unsupported record type %T", record)
	}

	return []byte(b.String()), nil
}

// writeHeader writes the record name in a box
func (f *terminalFormatter) writeHeader(b *strings.Builder, record model.Record) {
	title := fmt.Sprintf("%s %s", strings.ToUpper(record.Kind().String()), orDash(record.Info().Name))
	width := len([]rune(title))

	b.WriteString("╔" + strings.Repeat("═", width+2) + "╗\n")
	b.WriteString("║ " + title + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", width+2) + "╝\n\n")
}

// writeSummary writes the header facts as a tree
func (f *terminalFormatter) writeSummary(b *strings.Builder, record model.Record) {
	b.WriteString(getKindEmoji(record.Kind(), f.opts) + " Summary\n")

	facts := Summarize(record)
	items := make([]termfmt.TreeItem, 0, len(facts))
	for i, fact := range facts {
		items = append(items, termfmt.TreeItem{Label: fact.Label, Value: fact.Value, Last: i == len(facts)-1})
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeCPTProfile draws qc and Rf bars per sample, thinned to maxProfileRows
func (f *terminalFormatter) writeCPTProfile(b *strings.Builder, cpt *model.CPT) {
	b.WriteString(termfmt.GetEmoji("insights", f.opts) + " Profile\n")

	n := cpt.SamplesAbove(f.plot.MinElevation)
	if n == 0 {
		b.WriteString("└─ no samples\n")
		return
	}

	step := (n + maxProfileRows - 1) / maxProfileRows
	fmt.Fprintf(b, "   %8s  %-24s  %-24s\n", "z [m]", fmt.Sprintf("qc [MPa] (max %.0f)", f.plot.QCMax), fmt.Sprintf("Rf [%%] (max %.0f)", f.plot.RfMax))
	for i := 0; i < n; i += step {
		s := cpt.Sample(i)
		qcBar := termfmt.CreateConfidenceBar(fraction(s.QC, f.plot.QCMax), f.opts)
		rfBar := termfmt.CreateConfidenceBar(fraction(s.Rf, f.plot.RfMax), f.opts)
		fmt.Fprintf(b, "   %8.2f  %s %6.2f  %s %6.2f\n", s.Z, qcBar, s.QC, rfBar, s.Rf)
	}

	if cpt.HasWaterPressure() {
		b.WriteString("\n• pore pressure recorded\n")
	}
}

// writeLayers lists the soil layers down to the plot limit
func (f *terminalFormatter) writeLayers(b *strings.Builder, borehole *model.Borehole) {
	b.WriteString(termfmt.GetEmoji("insights", f.opts) + " Layers\n")

	layers := model.ClipLayers(borehole.Layers, f.plot.MinElevation)
	if len(layers) == 0 {
		b.WriteString("└─ no layers\n")
		return
	}

	items := make([]termfmt.TreeItem, 0, len(layers))
	for i, layer := range layers {
		items = append(items, termfmt.TreeItem{
			Label: fmt.Sprintf("%7.2f .. %7.2f", layer.ZTop, layer.ZBottom),
			Value: fmt.Sprintf("%s (%.2f m)", layer.SoilCode, layer.Height()),
			Last:  i == len(layers)-1,
		})
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
}
