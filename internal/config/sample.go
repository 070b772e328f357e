package config

// SampleConfig returns a fully documented configuration file
func SampleConfig() string {
	return `# GefSum configuration
version: "1.0"

# How GEF files are read
parse:
  # Character encoding of the files: utf-8 or latin-1
  encoding: utf-8
  # Longest accepted line in bytes
  max_line_length: 1048576
  # Record kind: auto, cpt or borehole
  kind: auto

# Directory scanning and nearest searches
scan:
  cpt_dir: ./sonderingen
  borehole_dir: ./boringen
  # Number of files parsed in parallel
  workers: 4
  # Search radius in metres
  search_distance: 100
  max_results: 5
  timeout: 2m

# Output formatting
output:
  # text, json, yaml, markdown or csv
  default_format: text
  # auto, always or never
  color_mode: auto
  verbose: false
  # Lowest elevation drawn in profile views
  plot_min_elevation: -10
  # Bar charts clip cone resistance and friction ratio at these values
  qc_max: 10
  rf_max: 10

# DAM soil profile export
export:
  # Top level written for the first layer of every profile
  top_level: 10
  separator: ";"
  # short (code up to the first '_') or full
  soil_name: short

watch:
  debounce: 500ms

project:
  path: ./gefsum-project.yaml
`
}

// MinimalSampleConfig returns a compact configuration file
func MinimalSampleConfig() string {
	return `version: "1.0"
parse:
  encoding: utf-8
scan:
  cpt_dir: ./sonderingen
  borehole_dir: ./boringen
output:
  default_format: text
`
}
