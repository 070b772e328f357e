package parser

import (
	"io"

	"github.com/yildizm/GefSum/internal/model"
)

// Parser defines the interface for GEF record parsers
type Parser interface {
	// Parse assembles a record from the raw lines of one file
	Parse(lines []string) (model.Record, error)

	// ParseReader reads and assembles a record from a reader
	ParseReader(reader io.Reader) (model.Record, error)

	// CanParse checks whether the header declares this parser's record type
	CanParse(lines []string) bool

	// Name returns the parser name
	Name() string

	// Kind returns the record type produced by the parser
	Kind() model.Kind
}

// Factory creates parsers for record types
type Factory interface {
	// CreateParser returns the parser registered for a kind
	CreateParser(kind model.Kind) (Parser, error)

	// DetectKind determines the record type from the header lines
	DetectKind(lines []string) (model.Kind, error)

	// RegisterParser registers a parser for its kind
	RegisterParser(parser Parser)
}
