package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/GefSum/internal/model"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(record model.Record) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s %s\n\n", strings.ToUpper(record.Kind().String()), orDash(record.Info().Name))

	f.writeSummaryTable(&b, record)

	switch r := record.(type) {
	case *model.CPT:
		f.writeSamples(&b, r)
	case *model.Borehole:
		f.writeLayers(&b, r)
	default:
		return nil, fmt.Errorf("unsupported record type %T", record)
	}

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, record model.Record) {
	b.WriteString("## Summary\n\n")
	b.WriteString("| Property | Value |\n")
	b.WriteString("|----------|-------|\n")
	for _, fact := range Summarize(record) {
		fmt.Fprintf(b, "| %s | %s |\n", fact.Label, escapeMarkdown(fact.Value))
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeSamples(b *strings.Builder, cpt *model.CPT) {
	b.WriteString("## Samples\n\n")
	if cpt.Len() == 0 {
		b.WriteString("_No samples._\n")
		return
	}

	b.WriteString("| z [m] | qc [MPa] | fs [MPa] | Rf [%] | u [MPa] |\n")
	b.WriteString("|------:|---------:|---------:|-------:|--------:|\n")
	for _, row := range cpt.Rows() {
		fmt.Fprintf(b, "| %.2f | %.3f | %.4f | %.2f | %.4f |\n", row[0], row[1], row[2], row[3], row[4])
	}
}

func (f *markdownFormatter) writeLayers(b *strings.Builder, borehole *model.Borehole) {
	b.WriteString("## Layers\n\n")
	if len(borehole.Layers) == 0 {
		b.WriteString("_No layers._\n")
		return
	}

	b.WriteString("| Top [m] | Bottom [m] | Height [m] | Soil | Code |\n")
	b.WriteString("|--------:|-----------:|-----------:|------|------|\n")
	for _, layer := range borehole.Layers {
		fmt.Fprintf(b, "| %.2f | %.2f | %.2f | %s | %s |\n",
			layer.ZTop, layer.ZBottom, layer.Height(), escapeMarkdown(layer.SoilCode), escapeMarkdown(layer.ShortCode()))
	}
}

// escapeMarkdown escapes characters that would break a table cell
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "_", "\\_")
}
