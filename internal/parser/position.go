package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoPosition is returned when a header ends without an XYID line
var ErrNoPosition = errors.New("no #XYID found in header")

var positionKeywords = keywordTable{"XYID": setPosition}

// ReadPosition reads the header only as far as the first #XYID line and
// returns its coordinates. The rest of the file is never decoded.
func ReadPosition(reader io.Reader, opts Options) (x, y float64, err error) {
	scanner := NewLineScanner(reader, opts)
	state := newHeaderState()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, EndOfHeader) {
			break
		}
		if !strings.Contains(line, "#XYID") {
			continue
		}
		if err := state.applyLine(line, positionKeywords); err != nil {
			return 0, 0, err
		}
		return state.header.X, state.header.Y, nil
	}

	if err := scanner.Err(); err != nil {
		return 0, 0, fmt.Errorf("scanner error: %w", err)
	}
	return 0, 0, ErrNoPosition
}
