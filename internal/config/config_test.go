package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yildizm/GefSum/internal/model"
	"github.com/yildizm/GefSum/internal/parser"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", cfg.Version)
	}
	if cfg.Parse.Encoding != "utf-8" {
		t.Errorf("Expected encoding utf-8, got %s", cfg.Parse.Encoding)
	}
	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Expected output format text, got %s", cfg.Output.DefaultFormat)
	}
	if cfg.Export.TopLevel != 10.0 {
		t.Errorf("Expected export top level 10.0, got %v", cfg.Export.TopLevel)
	}
	if cfg.Export.Separator != ";" {
		t.Errorf("Expected export separator ';', got %q", cfg.Export.Separator)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{
			name:   "valid config",
			modify: func(*Config) {},
		},
		{
			name:   "invalid encoding",
			modify: func(c *Config) { c.Parse.Encoding = "ebcdic" },
			errMsg: "invalid encoding: ebcdic (must be one of: utf-8, latin-1)",
		},
		{
			name:   "zero line length",
			modify: func(c *Config) { c.Parse.MaxLineLength = 0 },
			errMsg: "max_line_length must be greater than 0",
		},
		{
			name:   "invalid kind",
			modify: func(c *Config) { c.Parse.Kind = "trench" },
			errMsg: "invalid kind: trench (must be one of: auto, cpt, borehole)",
		},
		{
			name:   "no workers",
			modify: func(c *Config) { c.Scan.Workers = 0 },
			errMsg: "workers must be greater than 0",
		},
		{
			name:   "negative search distance",
			modify: func(c *Config) { c.Scan.SearchDistance = -1 },
			errMsg: "search_distance must be greater than 0",
		},
		{
			name:   "invalid output format",
			modify: func(c *Config) { c.Output.DefaultFormat = "pdf" },
			errMsg: "invalid output format: pdf (must be one of: text, json, yaml, markdown, csv)",
		},
		{
			name:   "invalid color mode",
			modify: func(c *Config) { c.Output.ColorMode = "sometimes" },
			errMsg: "invalid color mode: sometimes (must be one of: auto, always, never)",
		},
		{
			name:   "empty separator",
			modify: func(c *Config) { c.Export.Separator = "" },
			errMsg: "export separator must not be empty",
		},
		{
			name:   "invalid soil name",
			modify: func(c *Config) { c.Export.SoilName = "long" },
			errMsg: "invalid soil_name: long (must be one of: short, full)",
		},
		{
			name:   "negative debounce",
			modify: func(c *Config) { c.Watch.Debounce = -time.Second },
			errMsg: "debounce must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.errMsg, err.Error())
		})
	}
}

func TestParserOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Parse.Encoding = "latin-1"
	cfg.Parse.MaxLineLength = 4096

	opts, err := cfg.ParserOptions()
	require.NoError(t, err)
	assert.Equal(t, parser.EncodingLatin1, opts.Encoding)
	assert.Equal(t, 4096, opts.MaxLineLength)

	cfg.Parse.Encoding = "utf-16"
	_, err = cfg.ParserOptions()
	assert.Error(t, err)
}

func TestConfigKind(t *testing.T) {
	cfg := DefaultConfig()
	kind, err := cfg.Kind()
	require.NoError(t, err)
	assert.Equal(t, model.KindNone, kind)

	cfg.Parse.Kind = "borehole"
	kind, err = cfg.Kind()
	require.NoError(t, err)
	assert.Equal(t, model.KindBorehole, kind)
}

func TestConfigMerging(t *testing.T) {
	dst := DefaultConfig()
	src := &Config{
		Parse:  ParseConfig{Encoding: "latin-1"},
		Scan:   ScanConfig{Workers: 8},
		Output: OutputConfig{Verbose: true},
		Export: ExportConfig{Separator: ","},
	}

	mergeConfigs(dst, src)

	assert.Equal(t, "latin-1", dst.Parse.Encoding)
	assert.Equal(t, 8, dst.Scan.Workers)
	assert.True(t, dst.Output.Verbose)
	assert.Equal(t, ",", dst.Export.Separator)

	// zero values leave the destination alone
	assert.Equal(t, 1024*1024, dst.Parse.MaxLineLength)
	assert.Equal(t, "text", dst.Output.DefaultFormat)
	assert.Equal(t, 10.0, dst.Export.TopLevel)
	assert.Equal(t, 500*time.Millisecond, dst.Watch.Debounce)
}

func TestSampleConfigsAreValid(t *testing.T) {
	for name, content := range map[string]string{
		"full":    SampleConfig(),
		"minimal": MinimalSampleConfig(),
	} {
		t.Run(name, func(t *testing.T) {
			var fileConfig Config
			require.NoError(t, yaml.Unmarshal([]byte(content), &fileConfig))

			cfg := DefaultConfig()
			mergeConfigs(cfg, &fileConfig)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	var fileConfig Config
	require.NoError(t, yaml.Unmarshal([]byte(SampleConfig()), &fileConfig))
	assert.Equal(t, *DefaultConfig(), fileConfig)
}

func TestExpandPath(t *testing.T) {
	assert.Equal(t, "/etc/gefsum/config.yaml", expandPath("/etc/gefsum/config.yaml"))
	assert.Equal(t, "./.gefsum.yaml", expandPath("./.gefsum.yaml"))

	expanded := expandPath("~/.config/gefsum/config.yaml")
	assert.False(t, strings.HasPrefix(expanded, "~"))
	assert.True(t, strings.HasSuffix(expanded, ".config/gefsum/config.yaml"))
}

func TestGetConfigPaths(t *testing.T) {
	paths := GetConfigPaths()
	require.Len(t, paths, len(ConfigPaths))
	assert.Equal(t, "./.gefsum.yaml", paths[0])
	assert.Equal(t, "/etc/gefsum/config.yaml", paths[2])
}
