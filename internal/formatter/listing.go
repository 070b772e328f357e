package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yildizm/go-termfmt"
	"gopkg.in/yaml.v3"

	"github.com/yildizm/GefSum/internal/model"
)

// Entry is one investigation in a listing, with its distance to the search point when known
type Entry struct {
	model.Investigation `yaml:",inline"`
	Distance            *float64 `yaml:"distance,omitempty" json:"distance,omitempty"`
}

// FormatEntries renders a list of investigations in the given output format
func FormatEntries(format string, color bool, title string, entries []Entry) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "text", "terminal":
		return entriesText(color, title, entries), nil
	case "json":
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		data, err := yaml.Marshal(entries)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return data, nil
	case "markdown", "md":
		return entriesMarkdown(title, entries), nil
	case "csv":
		return entriesCSV(entries)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func entriesText(color bool, title string, entries []Entry) []byte {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = true

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (%s)\n", termfmt.GetEmoji("target", opts), title, formatNumber(len(entries)))
	if len(entries) == 0 {
		b.WriteString("└─ none\n")
		return []byte(b.String())
	}

	items := make([]termfmt.TreeItem, 0, len(entries))
	for i, e := range entries {
		value := fmt.Sprintf("%s at %.2f, %.2f", e.Kind, e.X, e.Y)
		if e.Distance != nil {
			value += fmt.Sprintf(" (%.1f m)", *e.Distance)
		}
		items = append(items, termfmt.TreeItem{
			Label: filepath.Base(e.Filename),
			Value: value,
			Last:  i == len(entries)-1,
		})
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, opts) + "\n")
	return []byte(b.String())
}

func entriesMarkdown(title string, entries []Entry) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	b.WriteString("| File | Kind | X | Y | Distance |\n")
	b.WriteString("|------|------|---|---|----------|\n")
	for _, e := range entries {
		distance := "-"
		if e.Distance != nil {
			distance = fmt.Sprintf("%.1f", *e.Distance)
		}
		fmt.Fprintf(&b, "| %s | %s | %.2f | %.2f | %s |\n",
			escapeMarkdown(filepath.Base(e.Filename)), e.Kind, e.X, e.Y, distance)
	}
	return []byte(b.String())
}

func entriesCSV(entries []Entry) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	if err := writer.Write([]string{"kind", "filename", "x", "y", "distance"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, e := range entries {
		distance := ""
		if e.Distance != nil {
			distance = formatFloat(*e.Distance)
		}
		if err := writer.Write([]string{e.Kind.String(), e.Filename, formatFloat(e.X), formatFloat(e.Y), distance}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return b.Bytes(), nil
}
