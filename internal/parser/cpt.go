package parser

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/yildizm/GefSum/internal/model"
)

// CPTParser assembles cone penetration tests from GEF-CPT files
type CPTParser struct {
	BaseParser
}

// NewCPTParser creates a new CPT parser
func NewCPTParser(opts Options) *CPTParser {
	return &CPTParser{
		BaseParser: BaseParser{name: "cpt", kind: model.KindCPT, opts: opts},
	}
}

// Parse implements Parser
func (p *CPTParser) Parse(lines []string) (model.Record, error) {
	cpt, err := ParseCPT(lines)
	if err != nil {
		return nil, err
	}
	return cpt, nil
}

// ParseReader implements Parser
func (p *CPTParser) ParseReader(reader io.Reader) (model.Record, error) {
	lines, err := p.readLines(reader)
	if err != nil {
		return nil, err
	}
	return p.Parse(lines)
}

// CanParse reports whether the header declares a CPT report
func (p *CPTParser) CanParse(lines []string) bool {
	return strings.Contains(reportCode(lines), "CPT")
}

// ParseCPT reconstructs a CPT from the raw lines of a GEF file
func ParseCPT(lines []string) (*model.CPT, error) {
	header, data := Classify(lines)

	state := newHeaderState()
	if err := state.apply(header, cptKeywords); err != nil {
		return nil, err
	}

	samples := make([]model.Sample, 0, len(data))
	skipped := 0
	for _, line := range data {
		sample, ok, err := decodeCPTLine(state.ctx, state.header.ZTop, line)
		if err != nil {
			return nil, &DataLineError{Line: line, Err: err}
		}
		if !ok {
			skipped++
			continue
		}
		samples = append(samples, sample)
	}

	return model.NewCPT(state.header, state.preExcavatedDepth, samples, skipped), nil
}

// decodeCPTLine decodes one data line. ok is false when the line holds a void value.
func decodeCPTLine(ctx *ParseContext, zTop float64, line string) (sample model.Sample, ok bool, err error) {
	if ctx.RecordSeparator != "" {
		line = strings.ReplaceAll(line, ctx.RecordSeparator, "")
	}

	tokens := ctx.splitColumns(line)
	values := make([]float64, len(tokens))
	for i, token := range tokens {
		if values[i], err = strconv.ParseFloat(token, 64); err != nil {
			return sample, false, err
		}
	}

	voided, err := isVoided(ctx, values)
	if err != nil || voided {
		return sample, false, err
	}

	depth, err := cptValue(ctx, values, ColumnDepth)
	if err != nil {
		return sample, false, err
	}
	qc, err := cptValue(ctx, values, ColumnConeResistance)
	if err != nil {
		return sample, false, err
	}
	fs, err := cptValue(ctx, values, ColumnSleeveFriction)
	if err != nil {
		return sample, false, err
	}

	u := 0.0
	if _, declared := ctx.ColumnIndex[ColumnPorePressure]; declared {
		if u, err = cptValue(ctx, values, ColumnPorePressure); err != nil {
			return sample, false, err
		}
	}

	qc, fs = clampReadings(qc, fs)
	return model.Sample{
		Z:  elevationFromDepth(zTop, depth),
		QC: qc,
		FS: fs,
		U:  u,
		Rf: frictionRatio(qc, fs),
	}, true, nil
}

// isVoided reports whether any column holds exactly its declared void value
func isVoided(ctx *ParseContext, values []float64) (bool, error) {
	for _, col := range ctx.voidColumns() {
		v, err := valueAt(values, col)
		if err != nil {
			return false, err
		}
		if v == ctx.ColumnVoid[col] {
			return true, nil
		}
	}
	return false, nil
}

func cptValue(ctx *ParseContext, values []float64, quantity int) (float64, error) {
	col, err := ctx.Column(quantity)
	if err != nil {
		return 0, err
	}
	return valueAt(values, col)
}

// elevationFromDepth converts a file depth to an elevation. Vendors disagree
// on the sign of the depth, it is always taken as a downward offset.
func elevationFromDepth(zTop, depth float64) float64 {
	return zTop - math.Abs(depth)
}

// clampReadings replaces non-positive readings by a small positive floor
func clampReadings(qc, fs float64) (float64, float64) {
	if qc <= 0 {
		qc = minConeResistance
	}
	if fs <= 0 {
		fs = minSleeveFriction
	}
	return qc, fs
}

// frictionRatio returns fs/qc in percent
func frictionRatio(qc, fs float64) float64 {
	if fs > 0 {
		return fs / qc * 100.0
	}
	return defaultFrictionRatio
}
