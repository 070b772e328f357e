package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.gefsum.yaml",               // Project-specific config (highest priority)
	"~/.config/gefsum/config.yaml", // User config
	"/etc/gefsum/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	getenv      func(string) string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		getenv:      os.Getenv,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. GEFSUM_* environment variables
// 3. ./.gefsum.yaml
// 4. ~/.config/gefsum/config.yaml
// 5. /etc/gefsum/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// lowest priority first so that later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			path := expandPath(l.configPaths[i])
			if !fileExists(path) {
				continue
			}
			if err := l.loadFromFile(config, path); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", path, err)
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file and merges it with existing config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	mergeConfigs(config, &fileConfig)
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Parse Config
		"GEFSUM_PARSE_ENCODING":        func(v string) error { config.Parse.Encoding = v; return nil },
		"GEFSUM_PARSE_MAX_LINE_LENGTH": func(v string) error { return parseInt(v, &config.Parse.MaxLineLength) },
		"GEFSUM_PARSE_KIND":            func(v string) error { config.Parse.Kind = v; return nil },

		// Scan Config
		"GEFSUM_SCAN_CPT_DIR":         func(v string) error { config.Scan.CPTDir = v; return nil },
		"GEFSUM_SCAN_BOREHOLE_DIR":    func(v string) error { config.Scan.BoreholeDir = v; return nil },
		"GEFSUM_SCAN_WORKERS":         func(v string) error { return parseInt(v, &config.Scan.Workers) },
		"GEFSUM_SCAN_SEARCH_DISTANCE": func(v string) error { return parseFloat(v, &config.Scan.SearchDistance) },
		"GEFSUM_SCAN_MAX_RESULTS":     func(v string) error { return parseInt(v, &config.Scan.MaxResults) },
		"GEFSUM_SCAN_TIMEOUT":         func(v string) error { return parseDuration(v, &config.Scan.Timeout) },

		// Output Config
		"GEFSUM_OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"GEFSUM_OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		"GEFSUM_OUTPUT_VERBOSE":        func(v string) error { return parseBool(v, &config.Output.Verbose) },

		// Export Config
		"GEFSUM_EXPORT_TOP_LEVEL": func(v string) error { return parseFloat(v, &config.Export.TopLevel) },
		"GEFSUM_EXPORT_SEPARATOR": func(v string) error { config.Export.Separator = v; return nil },
		"GEFSUM_EXPORT_SOIL_NAME": func(v string) error { config.Export.SoilName = v; return nil },

		// Watch / Project Config
		"GEFSUM_WATCH_DEBOUNCE": func(v string) error { return parseDuration(v, &config.Watch.Debounce) },
		"GEFSUM_PROJECT_PATH":   func(v string) error { config.Project.Path = v; return nil },
	}

	for envVar, setter := range envMappings {
		if value := l.getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	if strings.HasPrefix(absPath, "/proc/") || strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// mergeConfigs merges source config into destination config.
// Only non-zero values from source overwrite destination.
func mergeConfigs(dst, src *Config) {
	if src.Version != "" {
		dst.Version = src.Version
	}

	mergeParseConfig(&dst.Parse, &src.Parse)
	mergeScanConfig(&dst.Scan, &src.Scan)
	mergeOutputConfig(&dst.Output, &src.Output)
	mergeExportConfig(&dst.Export, &src.Export)

	if src.Watch.Debounce != 0 {
		dst.Watch.Debounce = src.Watch.Debounce
	}
	if src.Project.Path != "" {
		dst.Project.Path = src.Project.Path
	}
}

func mergeParseConfig(dst, src *ParseConfig) {
	if src.Encoding != "" {
		dst.Encoding = src.Encoding
	}
	if src.MaxLineLength != 0 {
		dst.MaxLineLength = src.MaxLineLength
	}
	if src.Kind != "" {
		dst.Kind = src.Kind
	}
}

func mergeScanConfig(dst, src *ScanConfig) {
	if src.CPTDir != "" {
		dst.CPTDir = src.CPTDir
	}
	if src.BoreholeDir != "" {
		dst.BoreholeDir = src.BoreholeDir
	}
	if src.Workers != 0 {
		dst.Workers = src.Workers
	}
	if src.SearchDistance != 0 {
		dst.SearchDistance = src.SearchDistance
	}
	if src.MaxResults != 0 {
		dst.MaxResults = src.MaxResults
	}
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
}

func mergeOutputConfig(dst, src *OutputConfig) {
	if src.DefaultFormat != "" {
		dst.DefaultFormat = src.DefaultFormat
	}
	if src.ColorMode != "" {
		dst.ColorMode = src.ColorMode
	}
	if src.Verbose {
		dst.Verbose = true
	}
	if src.PlotMinElevation != 0 {
		dst.PlotMinElevation = src.PlotMinElevation
	}
	if src.QCMax != 0 {
		dst.QCMax = src.QCMax
	}
	if src.RfMax != 0 {
		dst.RfMax = src.RfMax
	}
}

func mergeExportConfig(dst, src *ExportConfig) {
	// a zero top level is a legitimate value, so it only merges through the env override
	if src.TopLevel != 0 {
		dst.TopLevel = src.TopLevel
	}
	if src.Separator != "" {
		dst.Separator = src.Separator
	}
	if src.SoilName != "" {
		dst.SoilName = src.SoilName
	}
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseFloat(s string, dst *float64) error {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
