package parser

import (
	"fmt"
	"sync"

	"github.com/yildizm/GefSum/internal/model"
)

// DefaultFactory is the default parser factory
var DefaultFactory = NewFactory(DefaultOptions())

// parserFactory implements the Factory interface
type parserFactory struct {
	parsers map[model.Kind]Parser
	mu      sync.RWMutex
}

// NewFactory creates a new parser factory
func NewFactory(opts Options) Factory {
	f := &parserFactory{
		parsers: make(map[model.Kind]Parser),
	}

	// Register default parsers
	f.RegisterParser(NewCPTParser(opts))
	f.RegisterParser(NewBoreholeParser(opts))

	return f
}

// CreateParser returns the parser for the specified kind
func (f *parserFactory) CreateParser(kind model.Kind) (Parser, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if parser, ok := f.parsers[kind]; ok {
		return parser, nil
	}

	return nil, fmt.Errorf("no parser for investigation kind: %s", kind)
}

// DetectKind determines the record type from the report code in the header
func (f *parserFactory) DetectKind(lines []string) (model.Kind, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	// Check in order of preference
	for _, kind := range []model.Kind{model.KindCPT, model.KindBorehole} {
		if parser, ok := f.parsers[kind]; ok && parser.CanParse(lines) {
			return kind, nil
		}
	}

	return model.KindNone, ErrUnknownKind
}

// RegisterParser registers a parser for its kind
func (f *parserFactory) RegisterParser(parser Parser) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.parsers[parser.Kind()] = parser
}

// ParseAuto detects the record type and parses the lines with the default factory
func ParseAuto(lines []string) (model.Record, error) {
	return parseWith(DefaultFactory, lines, model.KindNone)
}

func parseWith(f Factory, lines []string, kind model.Kind) (model.Record, error) {
	if kind == model.KindNone {
		detected, err := f.DetectKind(lines)
		if err != nil {
			return nil, err
		}
		kind = detected
	}

	parser, err := f.CreateParser(kind)
	if err != nil {
		return nil, err
	}
	return parser.Parse(lines)
}
