package parser

import "strings"

// Classify trims every line, drops empty ones and splits the rest into the
// header and data sections. The line holding the end-of-header marker belongs
// to neither section. Without a marker every line is a header line.
func Classify(lines []string) (header, data []string) {
	inHeader := true
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if inHeader {
			if strings.Contains(line, EndOfHeader) {
				inHeader = false
				continue
			}
			header = append(header, line)
			continue
		}
		data = append(data, line)
	}
	return header, data
}
