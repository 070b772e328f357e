package model

import (
	"fmt"
	"strings"
)

// Kind identifies the type of soil investigation stored in a GEF file
type Kind int

const (
	KindNone Kind = iota
	KindCPT
	KindBorehole
)

// String returns the lower-case name of the kind
func (k Kind) String() string {
	switch k {
	case KindCPT:
		return "cpt"
	case KindBorehole:
		return "borehole"
	default:
		return "none"
	}
}

// ParseKind parses a kind name as used on the command line and in config files
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cpt", "sondering":
		return KindCPT, nil
	case "borehole", "bore", "boring":
		return KindBorehole, nil
	case "", "none":
		return KindNone, nil
	default:
		return KindNone, fmt.Errorf("unknown investigation kind: %s", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Header holds the GEF header fields shared by CPTs and boreholes
type Header struct {
	X         float64 `yaml:"x" json:"x"`
	Y         float64 `yaml:"y" json:"y"`
	ZTop      float64 `yaml:"z_top" json:"z_top"`
	Name      string  `yaml:"name" json:"name"`
	FileDate  string  `yaml:"file_date,omitempty" json:"file_date,omitempty"`
	StartDate string  `yaml:"start_date,omitempty" json:"start_date,omitempty"`
	Filename  string  `yaml:"filename,omitempty" json:"filename,omitempty"`
}

// Date returns the start date if set, otherwise the file date, as YYYYMMDD
func (h Header) Date() (string, error) {
	if h.StartDate != "" {
		return h.StartDate, nil
	}
	if h.FileDate != "" {
		return h.FileDate, nil
	}
	return "", ErrNoDate
}

// Record is implemented by every parsed soil investigation
type Record interface {
	// Kind returns the investigation type
	Kind() Kind

	// Info returns the header fields of the record
	Info() Header

	// ZMin returns the deepest elevation reached
	ZMin() (float64, error)

	// Length returns the distance between the reference level and ZMin
	Length() (float64, error)
}
