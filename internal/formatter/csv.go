package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/yildizm/GefSum/internal/model"
)

// csvFormatter writes CPT samples or borehole layers as CSV rows
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(record model.Record) ([]byte, error) {
	headers, rows, err := recordTable(record)
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}

// recordTable returns the tabular view shared by the CSV and XLSX writers
func recordTable(record model.Record) ([]string, [][]string, error) {
	switch r := record.(type) {
	case *model.CPT:
		rows := make([][]string, 0, r.Len())
		for _, row := range r.Rows() {
			rows = append(rows, []string{
				formatFloat(row[0]), formatFloat(row[1]), formatFloat(row[2]), formatFloat(row[3]), formatFloat(row[4]),
			})
		}
		return []string{"z", "qc", "fs", "rf", "u"}, rows, nil
	case *model.Borehole:
		rows := make([][]string, 0, len(r.Layers))
		for _, layer := range r.Layers {
			rows = append(rows, []string{
				formatFloat(layer.ZTop), formatFloat(layer.ZBottom), layer.SoilCode, layer.ShortCode(), formatFloat(layer.Height()),
			})
		}
		return []string{"z_top", "z_bottom", "soil_code", "short_code", "height"}, rows, nil
	default:
		return nil, nil, fmt.Errorf("unsupported record type %T", record)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
