package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yildizm/GefSum/internal/model"
)

// headerHandler applies the arguments of one keyword to the header state
type headerHandler func(s *headerState, args []string) error

// keywordTable maps a GEF header keyword to its handler
type keywordTable map[string]headerHandler

// headerState is folded over the header lines of a single file
type headerState struct {
	ctx               *ParseContext
	header            model.Header
	preExcavatedDepth float64

	// set once a corrected depth column has been declared
	correctedDepth bool
}

func newHeaderState() *headerState {
	return &headerState{ctx: NewParseContext()}
}

// commonKeywords are interpreted the same way for every record type
var commonKeywords = keywordTable{
	"RECORDSEPARATOR": setRecordSeparator,
	"COLUMNSEPARATOR": setColumnSeparator,
	"XYID":            setPosition,
	"TESTID":          setName,
	"FILEDATE":        setFileDate,
	"STARTDATE":       setStartDate,
}

var cptKeywords = commonKeywords.with(keywordTable{
	"COLUMNINFO":     columnInfo(registerCPTColumn),
	"COLUMNVOID":     setColumnVoid,
	"ZID":            setZTop,
	"MEASUREMENTVAR": setMeasurementVar,
})

var boreholeKeywords = commonKeywords.with(keywordTable{
	"COLUMN":     setLastColumn,
	"COLUMNINFO": columnInfo(registerColumn),
	"ZID":        requireArgCount(3, setZTop),
})

// with returns a copy of the table extended with extra handlers
func (t keywordTable) with(extra keywordTable) keywordTable {
	merged := make(keywordTable, len(t)+len(extra))
	for k, h := range t {
		merged[k] = h
	}
	for k, h := range extra {
		merged[k] = h
	}
	return merged
}

// apply interprets every header line in order
func (s *headerState) apply(lines []string, table keywordTable) error {
	for _, line := range lines {
		if err := s.applyLine(line, table); err != nil {
			return err
		}
	}
	return nil
}

// applyLine interprets one header line; unknown keywords are ignored
func (s *headerState) applyLine(line string, table keywordTable) error {
	keyword, args, err := splitHeaderLine(line)
	if err != nil {
		return &HeaderLineError{Line: line, Err: err}
	}

	handler, ok := table[keyword]
	if !ok {
		return nil
	}

	if err := handler(s, args); err != nil {
		return &HeaderLineError{Line: line, Keyword: keyword, Err: err}
	}
	return nil
}

// splitHeaderLine splits "#KEYWORD= a, b, c" into its keyword and trimmed arguments
func splitHeaderLine(line string) (string, []string, error) {
	if strings.Count(line, "=") != 1 {
		return "", nil, ErrNoSeparator
	}

	keyword, argline, _ := strings.Cut(line, "=")
	keyword = strings.ReplaceAll(strings.TrimSpace(keyword), "#", "")

	args := strings.Split(strings.TrimSpace(argline), ",")
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	return keyword, args, nil
}

// arg returns the i-th argument or ErrMissingArgument
func arg(args []string, i int) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("%w: expected at least %d", ErrMissingArgument, i+1)
	}
	return args[i], nil
}

func intArg(args []string, i int) (int, error) {
	s, err := arg(args, i)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(s)
}

func floatArg(args []string, i int) (float64, error) {
	s, err := arg(args, i)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(s, 64)
}

// round2 rounds to two decimals
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func setRecordSeparator(s *headerState, args []string) error {
	s.ctx.RecordSeparator = args[0]
	return nil
}

func setColumnSeparator(s *headerState, args []string) error {
	s.ctx.ColumnSeparator = args[0]
	return nil
}

func setLastColumn(s *headerState, args []string) error {
	n, err := intArg(args, 0)
	if err != nil {
		return err
	}
	s.ctx.LastColumn = n
	return nil
}

// columnInfo parses "column, unit, description, quantity" and registers the
// 1-based column as zero-based
func columnInfo(register func(s *headerState, quantity, column int)) headerHandler {
	return func(s *headerState, args []string) error {
		column, err := intArg(args, 0)
		if err != nil {
			return err
		}
		quantity, err := intArg(args, 3)
		if err != nil {
			return err
		}
		register(s, quantity, column-1)
		return nil
	}
}

func registerColumn(s *headerState, quantity, column int) {
	s.ctx.ColumnIndex[quantity] = column
}

// registerCPTColumn folds the corrected depth into the depth quantity.
// Once a corrected depth is known, plain depth declarations are ignored.
func registerCPTColumn(s *headerState, quantity, column int) {
	switch quantity {
	case ColumnCorrectedDepth:
		s.correctedDepth = true
		quantity = ColumnDepth
	case ColumnDepth:
		if s.correctedDepth {
			return
		}
	}
	s.ctx.ColumnIndex[quantity] = column
}

func setColumnVoid(s *headerState, args []string) error {
	column, err := intArg(args, 0)
	if err != nil {
		return err
	}
	void, err := floatArg(args, 1)
	if err != nil {
		return err
	}
	s.ctx.ColumnVoid[column-1] = void
	return nil
}

func setPosition(s *headerState, args []string) error {
	x, err := floatArg(args, 1)
	if err != nil {
		return err
	}
	y, err := floatArg(args, 2)
	if err != nil {
		return err
	}
	s.header.X = round2(x)
	s.header.Y = round2(y)
	return nil
}

func setZTop(s *headerState, args []string) error {
	z, err := floatArg(args, 1)
	if err != nil {
		return err
	}
	s.header.ZTop = z
	return nil
}

// requireArgCount guards against vendors writing a decimal comma in ZID,
// e.g. "#ZID= 0, -1,24, 0.01" which would otherwise read as -1.
func requireArgCount(n int, next headerHandler) headerHandler {
	return func(s *headerState, args []string) error {
		if len(args) != n {
			return fmt.Errorf("%w: expected %d, got %d", ErrArgumentCount, n, len(args))
		}
		return next(s, args)
	}
}

func setMeasurementVar(s *headerState, args []string) error {
	if args[0] != measurementPreExcavatedDepth {
		return nil
	}
	depth, err := floatArg(args, 1)
	if err != nil {
		return fmt.Errorf("invalid pre-excavated depth: %w", err)
	}
	s.preExcavatedDepth = depth
	return nil
}

func setName(s *headerState, args []string) error {
	s.header.Name = args[0]
	return nil
}

func setFileDate(s *headerState, args []string) error {
	s.header.FileDate = parseDate(args)
	return nil
}

func setStartDate(s *headerState, args []string) error {
	s.header.StartDate = parseDate(args)
	return nil
}

// parseDate formats "yyyy, mm, dd" as YYYYMMDD. Dates are best effort:
// anything unparsable or out of range yields an empty string.
func parseDate(args []string) string {
	if len(args) < 3 {
		return ""
	}

	var parts [3]int
	for i := range parts {
		n, err := strconv.Atoi(args[i])
		if err != nil {
			return ""
		}
		parts[i] = n
	}

	yyyy, mm, dd := parts[0], parts[1], parts[2]
	if yyyy < 1900 || yyyy > 2100 || mm < 1 || mm > 12 || dd < 1 || dd > 31 {
		return ""
	}
	return fmt.Sprintf("%04d%02d%02d", yyyy, mm, dd)
}
