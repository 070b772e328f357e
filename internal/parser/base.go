package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/yildizm/GefSum/internal/model"
)

// Encoding names the text encoding used to decode GEF files
type Encoding string

const (
	EncodingUTF8   Encoding = "utf-8"
	EncodingLatin1 Encoding = "latin-1"
)

// ParseEncoding parses an encoding name
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8, nil
	case "latin-1", "latin1", "iso-8859-1":
		return EncodingLatin1, nil
	default:
		return "", fmt.Errorf("unsupported encoding: %s", s)
	}
}

// decoder returns a decoder that never fails on invalid input
func (e Encoding) decoder() *encoding.Decoder {
	if e == EncodingLatin1 {
		return charmap.ISO8859_1.NewDecoder()
	}
	// invalid UTF-8 is replaced by U+FFFD, a leading BOM is dropped
	return unicode.UTF8BOM.NewDecoder()
}

// Options configures how files are read
type Options struct {
	Encoding      Encoding
	MaxLineLength int
}

// DefaultOptions returns the reader defaults
func DefaultOptions() Options {
	return Options{
		Encoding:      EncodingUTF8,
		MaxLineLength: 1024 * 1024, // 1MB
	}
}

// BaseParser provides common functionality for all parsers
type BaseParser struct {
	name string
	kind model.Kind
	opts Options
}

// Name returns parser name
func (b *BaseParser) Name() string {
	return b.name
}

// Kind returns the record type of the parser
func (b *BaseParser) Kind() model.Kind {
	return b.kind
}

func (b *BaseParser) readLines(reader io.Reader) ([]string, error) {
	return ReadLines(reader, b.opts)
}

// NewLineScanner returns a line scanner that decodes the reader permissively
func NewLineScanner(reader io.Reader, opts Options) *bufio.Scanner {
	maxLine := opts.MaxLineLength
	if maxLine <= 0 {
		maxLine = DefaultOptions().MaxLineLength
	}

	scanner := bufio.NewScanner(transform.NewReader(reader, opts.Encoding.decoder()))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	return scanner
}

// ReadLines decodes a reader into lines
func ReadLines(reader io.Reader, opts Options) ([]string, error) {
	scanner := NewLineScanner(reader, opts)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return lines, fmt.Errorf("scanner error: %w", err)
	}

	return lines, nil
}

// reportCode returns the upper-cased PROCEDURECODE and REPORTCODE values of a header
func reportCode(lines []string) string {
	var codes []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.Contains(line, EndOfHeader) {
			break
		}
		keyword, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		switch strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(keyword), "#"))) {
		case "PROCEDURECODE", "REPORTCODE":
			codes = append(codes, strings.ToUpper(value))
		}
	}
	return strings.Join(codes, " ")
}
