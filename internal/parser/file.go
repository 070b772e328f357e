package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yildizm/GefSum/internal/model"
)

// CheckExtension returns an UnsupportedExtensionError for anything but .gef
func CheckExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != Extension {
		return &UnsupportedExtensionError{Ext: ext}
	}
	return nil
}

// ReadFile reads the lines of a GEF file
func ReadFile(path string, opts Options) ([]string, error) {
	if err := CheckExtension(path); err != nil {
		return nil, err
	}

	// #nosec G304 - callers pass user selected investigation files
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	return ReadLines(file, opts)
}

// ParseFile reads and parses a GEF file. KindNone detects the type from the header.
func ParseFile(path string, kind model.Kind, opts Options) (model.Record, error) {
	lines, err := ReadFile(path, opts)
	if err != nil {
		return nil, err
	}

	record, err := parseWith(NewFactory(opts), lines, kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	setFilename(record, path)
	return record, nil
}

// ParseCPTFile reads and parses a GEF-CPT file
func ParseCPTFile(path string, opts Options) (*model.CPT, error) {
	lines, err := ReadFile(path, opts)
	if err != nil {
		return nil, err
	}
	cpt, err := ParseCPT(lines)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cpt.Filename = path
	return cpt, nil
}

// ParseBoreholeFile reads and parses a GEF-BORE file
func ParseBoreholeFile(path string, opts Options) (*model.Borehole, error) {
	lines, err := ReadFile(path, opts)
	if err != nil {
		return nil, err
	}
	borehole, err := ParseBorehole(lines)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	borehole.Filename = path
	return borehole, nil
}

func setFilename(record model.Record, path string) {
	switch r := record.(type) {
	case *model.CPT:
		r.Filename = path
	case *model.Borehole:
		r.Filename = path
	}
}
