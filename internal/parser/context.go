package parser

import (
	"fmt"
	"sort"
	"strings"
)

// ParseContext holds the data layout a GEF file declares in its header.
// It is built by the header pass and only read by the data pass.
type ParseContext struct {
	// RecordSeparator marks "no value" on data lines
	RecordSeparator string

	// ColumnSeparator delimits the values on a data line
	ColumnSeparator string

	// ColumnIndex maps a quantity number to a zero-based column
	ColumnIndex map[int]int

	// ColumnVoid maps a zero-based column to its void value (CPT only)
	ColumnVoid map[int]float64

	// LastColumn is the first column of the soil description (borehole only)
	LastColumn int
}

// NewParseContext returns a context with the GEF defaults
func NewParseContext() *ParseContext {
	return &ParseContext{
		RecordSeparator: "",
		ColumnSeparator: " ",
		ColumnIndex:     make(map[int]int),
		ColumnVoid:      make(map[int]float64),
		LastColumn:      defaultLastColumn,
	}
}

// Column returns the zero-based column declared for a quantity
func (c *ParseContext) Column(quantity int) (int, error) {
	col, ok := c.ColumnIndex[quantity]
	if !ok {
		return 0, fmt.Errorf("%w: quantity %d", ErrMissingColumn, quantity)
	}
	return col, nil
}

// voidColumns returns the columns with a void value in ascending order
func (c *ParseContext) voidColumns() []int {
	cols := make([]int, 0, len(c.ColumnVoid))
	for col := range c.ColumnVoid {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	return cols
}

// splitColumns splits a data line on the column separator and drops empty tokens.
// A blank separator splits on any run of whitespace.
func (c *ParseContext) splitColumns(line string) []string {
	if strings.TrimSpace(c.ColumnSeparator) == "" {
		return strings.Fields(line)
	}

	parts := strings.Split(line, c.ColumnSeparator)
	tokens := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// valueAt returns the value of a column, failing if the line is too short
func valueAt[T any](values []T, col int) (T, error) {
	var zero T
	if col < 0 || col >= len(values) {
		return zero, fmt.Errorf("%w: column %d of %d", ErrColumnOutOfRange, col+1, len(values))
	}
	return values[col], nil
}
