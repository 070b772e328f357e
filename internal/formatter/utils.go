package formatter

import (
	"fmt"
	"math"

	"github.com/yildizm/go-termfmt"

	"github.com/yildizm/GefSum/internal/model"
)

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

// clip caps v at limit
func clip(v, limit float64) float64 {
	return math.Min(v, limit)
}

// fraction maps v onto [0, 1] relative to limit for bar rendering
func fraction(v, limit float64) float64 {
	if limit <= 0 || v <= 0 {
		return 0
	}
	return clip(v, limit) / limit
}

// getKindEmoji returns the symbol for an investigation kind using go-termfmt
func getKindEmoji(kind model.Kind, opts *termfmt.TerminalOptions) string {
	switch kind {
	case model.KindCPT:
		return termfmt.GetEmoji("statistics", opts)
	case model.KindBorehole:
		return termfmt.GetEmoji("pattern", opts)
	default:
		return termfmt.GetEmoji("info", opts)
	}
}

// Fact is one labelled value shown in every summary
type Fact struct {
	Label string
	Value string
}

// Summarize collects the facts shared by the text, markdown and TUI views
func Summarize(record model.Record) []Fact {
	h := record.Info()
	facts := []Fact{
		{"Name", orDash(h.Name)},
		{"Type", record.Kind().String()},
		{"Position", fmt.Sprintf("%.2f, %.2f", h.X, h.Y)},
		{"Reference level", fmt.Sprintf("%.2f m", h.ZTop)},
	}

	if date, err := h.Date(); err == nil {
		facts = append(facts, Fact{"Date", date})
	} else {
		facts = append(facts, Fact{"Date", "-"})
	}

	if zMin, err := record.ZMin(); err == nil {
		length, _ := record.Length()
		facts = append(facts,
			Fact{"Deepest level", fmt.Sprintf("%.2f m", zMin)},
			Fact{"Length", fmt.Sprintf("%.2f m", length)},
		)
	}

	switch r := record.(type) {
	case *model.CPT:
		facts = append(facts, Fact{"Samples", formatNumber(r.Len())})
		if r.Skipped > 0 {
			facts = append(facts, Fact{"Voided rows", formatNumber(r.Skipped)})
		}
		if r.PreExcavatedDepth > 0 {
			facts = append(facts, Fact{"Pre-excavated", fmt.Sprintf("%.2f m", r.PreExcavatedDepth)})
		}
	case *model.Borehole:
		facts = append(facts, Fact{"Layers", formatNumber(len(r.Layers))})
	}

	if h.Filename != "" {
		facts = append(facts, Fact{"File", h.Filename})
	}
	return facts
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
