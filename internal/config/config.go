package config

import (
	"fmt"
	"time"

	"github.com/yildizm/GefSum/internal/model"
	"github.com/yildizm/GefSum/internal/parser"
)

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Parse   ParseConfig   `yaml:"parse" json:"parse"`
	Scan    ScanConfig    `yaml:"scan" json:"scan"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Export  ExportConfig  `yaml:"export" json:"export"`
	Watch   WatchConfig   `yaml:"watch" json:"watch"`
	Project ProjectConfig `yaml:"project" json:"project"`
}

// ParseConfig configures how GEF files are read
type ParseConfig struct {
	Encoding      string `yaml:"encoding" json:"encoding"`               // utf-8|latin-1
	MaxLineLength int    `yaml:"max_line_length" json:"max_line_length"` // scanner buffer size
	Kind          string `yaml:"kind" json:"kind"`                       // auto|cpt|borehole
}

// ScanConfig configures directory scanning and nearest searches
type ScanConfig struct {
	CPTDir         string        `yaml:"cpt_dir" json:"cpt_dir"`                 // directory with GEF-CPT files
	BoreholeDir    string        `yaml:"borehole_dir" json:"borehole_dir"`       // directory with GEF-BORE files
	Workers        int           `yaml:"workers" json:"workers"`                 // parallel parses
	SearchDistance float64       `yaml:"search_distance" json:"search_distance"` // metres
	MaxResults     int           `yaml:"max_results" json:"max_results"`
	Timeout        time.Duration `yaml:"timeout" json:"timeout"`
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat    string  `yaml:"default_format" json:"default_format"` // text|json|yaml|markdown|csv
	ColorMode        string  `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose          bool    `yaml:"verbose" json:"verbose"`
	PlotMinElevation float64 `yaml:"plot_min_elevation" json:"plot_min_elevation"` // lowest elevation drawn
	QCMax            float64 `yaml:"qc_max" json:"qc_max"`                         // cone resistance clip for bars
	RfMax            float64 `yaml:"rf_max" json:"rf_max"`                         // friction ratio clip for bars
}

// ExportConfig configures the DAM soil profile export
type ExportConfig struct {
	TopLevel  float64 `yaml:"top_level" json:"top_level"` // top level written for the first layer
	Separator string  `yaml:"separator" json:"separator"`
	SoilName  string  `yaml:"soil_name" json:"soil_name"` // short|full
}

// WatchConfig configures the directory watcher
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" json:"debounce"`
}

// ProjectConfig configures project persistence
type ProjectConfig struct {
	Path string `yaml:"path" json:"path"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Parse: ParseConfig{
			Encoding:      "utf-8",
			MaxLineLength: 1024 * 1024, // 1MB
			Kind:          "auto",
		},
		Scan: ScanConfig{
			CPTDir:         "./sonderingen",
			BoreholeDir:    "./boringen",
			Workers:        4,
			SearchDistance: 100,
			MaxResults:     5,
			Timeout:        120 * time.Second,
		},
		Output: OutputConfig{
			DefaultFormat:    "text",
			ColorMode:        "auto",
			Verbose:          false,
			PlotMinElevation: -10.0,
			QCMax:            10.0,
			RfMax:            10.0,
		},
		Export: ExportConfig{
			TopLevel:  10.0,
			Separator: ";",
			SoilName:  "short",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
		Project: ProjectConfig{
			Path: "./gefsum-project.yaml",
		},
	}
}

// ParserOptions converts the parse section into reader options
func (c *Config) ParserOptions() (parser.Options, error) {
	enc, err := parser.ParseEncoding(c.Parse.Encoding)
	if err != nil {
		return parser.Options{}, err
	}
	return parser.Options{Encoding: enc, MaxLineLength: c.Parse.MaxLineLength}, nil
}

// Kind returns the configured record kind, KindNone for auto detection
func (c *Config) Kind() (model.Kind, error) {
	if c.Parse.Kind == "auto" {
		return model.KindNone, nil
	}
	return model.ParseKind(c.Parse.Kind)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateParseConfig(); err != nil {
		return err
	}
	if err := c.validateScanConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateExportConfig(); err != nil {
		return err
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("debounce must be non-negative")
	}
	return nil
}

// validateParseConfig validates parse-related configuration
func (c *Config) validateParseConfig() error {
	if _, err := parser.ParseEncoding(c.Parse.Encoding); err != nil {
		return fmt.Errorf("invalid encoding: %s (must be one of: utf-8, latin-1)", c.Parse.Encoding)
	}
	if c.Parse.MaxLineLength < 1 {
		return fmt.Errorf("max_line_length must be greater than 0")
	}
	if _, err := c.Kind(); err != nil {
		return fmt.Errorf("invalid kind: %s (must be one of: auto, cpt, borehole)", c.Parse.Kind)
	}
	return nil
}

// validateScanConfig validates scan-related configuration
func (c *Config) validateScanConfig() error {
	if c.Scan.Workers < 1 {
		return fmt.Errorf("workers must be greater than 0")
	}
	if c.Scan.SearchDistance <= 0 {
		return fmt.Errorf("search_distance must be greater than 0")
	}
	if c.Scan.MaxResults < 1 {
		return fmt.Errorf("max_results must be greater than 0")
	}
	if c.Scan.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"text":     true,
			"json":     true,
			"yaml":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: text, json, yaml, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	if c.Output.QCMax <= 0 || c.Output.RfMax <= 0 {
		return fmt.Errorf("qc_max and rf_max must be greater than 0")
	}
	return nil
}

// validateExportConfig validates export-related configuration
func (c *Config) validateExportConfig() error {
	if c.Export.Separator == "" {
		return fmt.Errorf("export separator must not be empty")
	}
	if c.Export.SoilName != "short" && c.Export.SoilName != "full" {
		return fmt.Errorf("invalid soil_name: %s (must be one of: short, full)", c.Export.SoilName)
	}
	return nil
}
