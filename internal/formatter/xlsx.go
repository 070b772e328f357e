package formatter

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yildizm/GefSum/internal/model"
)

// maxSheetName is the longest sheet name Excel accepts
const maxSheetName = 31

// WriteXLSX writes one worksheet per record to w. CPT sheets hold the samples,
// borehole sheets the layers; numbers are stored as numbers.
func WriteXLSX(w io.Writer, records []model.Record) error {
	if len(records) == 0 {
		return fmt.Errorf("no records to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	used := make(map[string]bool)
	for i, record := range records {
		name := uniqueSheetName(sheetName(record, i), used)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}

		if err := writeSheet(f, name, record); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", name, err)
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, record model.Record) error {
	headers, rows, err := recordTable(record)
	if err != nil {
		return err
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for r, row := range rows {
		cells := make([]interface{}, len(row))
		for c, value := range row {
			cells[c] = cellValue(value)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
	}
	return nil
}

// cellValue stores numeric text as a number
func cellValue(s string) interface{} {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return s
}

func sheetName(record model.Record, index int) string {
	h := record.Info()
	name := h.Name
	if name == "" && h.Filename != "" {
		name = strings.TrimSuffix(filepath.Base(h.Filename), filepath.Ext(h.Filename))
	}
	if name == "" {
		name = fmt.Sprintf("%s %d", record.Kind(), index+1)
	}

	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(name, "'")
	if name == "" {
		name = fmt.Sprintf("%s %d", record.Kind(), index+1)
	}
	return truncateRunes(name, maxSheetName)
}

// uniqueSheetName appends " (n)" until the case-insensitive name is unused
func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncateRunes(name, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
