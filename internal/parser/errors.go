package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSeparator is returned for header lines without exactly one '='
	ErrNoSeparator = errors.New("header line must contain exactly one '='")

	// ErrMissingArgument is returned when a keyword lacks a required argument
	ErrMissingArgument = errors.New("missing argument")

	// ErrArgumentCount is returned when a keyword has an unexpected number of arguments
	ErrArgumentCount = errors.New("unexpected number of arguments")

	// ErrMissingColumn is returned when a data line needs a column the header never declared
	ErrMissingColumn = errors.New("column not declared in header")

	// ErrColumnOutOfRange is returned when a declared column is missing from a data line
	ErrColumnOutOfRange = errors.New("column index out of range")

	// ErrUnknownKind is returned when the investigation type cannot be determined
	ErrUnknownKind = errors.New("cannot determine investigation type")
)

// HeaderLineError reports a header line that could not be interpreted
type HeaderLineError struct {
	Line    string
	Keyword string
	Err     error
}

func (e *HeaderLineError) Error() string {
	if e.Keyword == "" {
		return fmt.Sprintf("error reading headerline '%s': %v", e.Line, e.Err)
	}
	return fmt.Sprintf("error reading %s headerline '%s': %v", e.Keyword, e.Line, e.Err)
}

func (e *HeaderLineError) Unwrap() error {
	return e.Err
}

// DataLineError reports a data line that could not be decoded
type DataLineError struct {
	Line string
	Err  error
}

func (e *DataLineError) Error() string {
	return fmt.Sprintf("error reading dataline '%s': %v", e.Line, e.Err)
}

func (e *DataLineError) Unwrap() error {
	return e.Err
}

// UnsupportedExtensionError is returned for files that are not GEF files
type UnsupportedExtensionError struct {
	Ext string
}

func (e *UnsupportedExtensionError) Error() string {
	return fmt.Sprintf("unknown and unhandled file extension %q", e.Ext)
}
