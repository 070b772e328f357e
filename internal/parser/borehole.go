package parser

import (
	"io"
	"strconv"
	"strings"

	"github.com/yildizm/GefSum/internal/model"
)

// BoreholeParser assembles borehole logs from GEF-BORE files
type BoreholeParser struct {
	BaseParser
}

// NewBoreholeParser creates a new borehole parser
func NewBoreholeParser(opts Options) *BoreholeParser {
	return &BoreholeParser{
		BaseParser: BaseParser{name: "borehole", kind: model.KindBorehole, opts: opts},
	}
}

// Parse implements Parser
func (p *BoreholeParser) Parse(lines []string) (model.Record, error) {
	borehole, err := ParseBorehole(lines)
	if err != nil {
		return nil, err
	}
	return borehole, nil
}

// ParseReader implements Parser
func (p *BoreholeParser) ParseReader(reader io.Reader) (model.Record, error) {
	lines, err := p.readLines(reader)
	if err != nil {
		return nil, err
	}
	return p.Parse(lines)
}

// CanParse reports whether the header declares a borehole report
func (p *BoreholeParser) CanParse(lines []string) bool {
	return strings.Contains(reportCode(lines), "BORE")
}

// ParseBorehole reconstructs a borehole log from the raw lines of a GEF file.
// Adjacent layers with the same soil code are merged once all lines are read.
func ParseBorehole(lines []string) (*model.Borehole, error) {
	header, data := Classify(lines)

	state := newHeaderState()
	if err := state.apply(header, boreholeKeywords); err != nil {
		return nil, err
	}

	layers := make([]model.SoilLayer, 0, len(data))
	for _, line := range data {
		layer, err := decodeBoreholeLine(state.ctx, state.header.ZTop, line)
		if err != nil {
			return nil, &DataLineError{Line: line, Err: err}
		}
		layers = append(layers, layer)
	}

	return model.NewBorehole(state.header, model.MergeLayers(layers)), nil
}

// decodeBoreholeLine decodes one soil layer
func decodeBoreholeLine(ctx *ParseContext, zTop float64, line string) (model.SoilLayer, error) {
	tokens := boreholeTokens(ctx, line)

	top, err := boreholeValue(ctx, tokens, ColumnLayerTop)
	if err != nil {
		return model.SoilLayer{}, err
	}
	bottom, err := boreholeValue(ctx, tokens, ColumnLayerBottom)
	if err != nil {
		return model.SoilLayer{}, err
	}

	top, bottom = depthsToElevations(zTop, top, bottom)
	return model.SoilLayer{
		ZTop:     round2(top),
		ZBottom:  round2(bottom),
		SoilCode: soilCode(tokens, ctx.LastColumn),
	}, nil
}

// boreholeTokens splits a line and drops record separator tokens
func boreholeTokens(ctx *ParseContext, line string) []string {
	tokens := ctx.splitColumns(line)
	if ctx.RecordSeparator == "" {
		return tokens
	}

	kept := tokens[:0]
	for _, t := range tokens {
		if t != ctx.RecordSeparator {
			kept = append(kept, t)
		}
	}
	return kept
}

func boreholeValue(ctx *ParseContext, tokens []string, quantity int) (float64, error) {
	col, err := ctx.Column(quantity)
	if err != nil {
		return 0, err
	}
	token, err := valueAt(tokens, col)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(token, 64)
}

// depthsToElevations handles files that store positive depths below the
// reference level instead of elevations. A bottom above the top can only be
// a depth, so both values are converted.
func depthsToElevations(zTop, top, bottom float64) (float64, float64) {
	if bottom > top {
		return zTop - top, zTop - bottom
	}
	return top, bottom
}

// soilCode joins the free text columns into a single underscore separated code
func soilCode(tokens []string, firstColumn int) string {
	if firstColumn < 0 || firstColumn >= len(tokens) {
		return ""
	}
	code := strings.Join(tokens[firstColumn:], "_")
	code = strings.NewReplacer(`"`, "", "'", "", " ", "_").Replace(code)
	return code
}
