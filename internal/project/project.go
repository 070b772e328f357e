package project

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yildizm/GefSum/internal/model"
)

// ErrUnknownLocation is returned when a location name is not part of the project
var ErrUnknownLocation = errors.New("unknown location")

// DefaultSoilTypesCSV is the soil type list a new project starts with
const DefaultSoilTypesCSV = `Veen,#8b4513
Klei,#2e8b57
Klei_zandig,#66a266
Leem,#c0c080
Zand,#e5e500
Zand_kleiig,#d4d46a
Grind,#708090
Ophoging,#bfbfbf
`

// Project is the set of soil types and locations a user interprets
type Project struct {
	SoilTypes []model.SoilType `yaml:"soil_types" json:"soil_types"`
	Locations []model.Location `yaml:"locations" json:"locations"`
}

// New creates a project with the default soil types
func New() *Project {
	p := &Project{}
	// the built-in list is well formed
	_ = p.LoadSoilTypesCSV(DefaultSoilTypesCSV)
	return p
}

// HasLocations reports whether any location was imported
func (p *Project) HasLocations() bool {
	return len(p.Locations) > 0
}

// Reset removes all locations and keeps the soil types
func (p *Project) Reset() {
	p.Locations = nil
}

// LoadSoilTypesCSV appends "name,color" lines. Empty lines are ignored.
func (p *Project) LoadSoilTypesCSV(s string) error {
	for i, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		args := splitCSVLine(line)
		if len(args) < 2 {
			return fmt.Errorf("soil type line %d: expected name,color got '%s'", i+1, line)
		}
		p.SoilTypes = append(p.SoilTypes, model.SoilType{Name: args[0], Color: args[1]})
	}
	return nil
}

// SoilType returns the soil type with the given name
func (p *Project) SoilType(name string) (model.SoilType, bool) {
	for _, st := range p.SoilTypes {
		if st.Name == name {
			return st, true
		}
	}
	return model.SoilType{}, false
}

// RowError describes a CSV row that was skipped
type RowError struct {
	Line int
	Text string
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("could not read location from line %d '%s': %v", e.Line, e.Text, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// LoadLocationsCSV appends locations from "name,x,y" rows. The first line is a
// header. Rows that cannot be read are skipped and returned.
func (p *Project) LoadLocationsCSV(r io.Reader) ([]*RowError, error) {
	scanner := bufio.NewScanner(r)
	var skipped []*RowError

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			continue
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		loc, err := parseLocation(splitCSVLine(text))
		if err != nil {
			skipped = append(skipped, &RowError{Line: lineNo, Text: text, Err: err})
			continue
		}
		p.Locations = append(p.Locations, loc)
	}

	if err := scanner.Err(); err != nil {
		return skipped, fmt.Errorf("failed to read locations: %w", err)
	}
	return skipped, nil
}

// LoadLocationsFile reads locations from a CSV file
func (p *Project) LoadLocationsFile(path string) ([]*RowError, error) {
	file, err := os.Open(path) // #nosec G304 - user selected locations file
	if err != nil {
		return nil, fmt.Errorf("failed to open locations file: %w", err)
	}
	defer file.Close()
	return p.LoadLocationsCSV(file)
}

func parseLocation(args []string) (model.Location, error) {
	if len(args) < 3 {
		return model.Location{}, fmt.Errorf("expected name,x,y")
	}
	x, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return model.Location{}, fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return model.Location{}, fmt.Errorf("invalid y: %w", err)
	}
	return model.Location{Name: args[0], X: x, Y: y}, nil
}

func splitCSVLine(line string) []string {
	args := strings.Split(line, ",")
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	return args
}

// Location returns the location with the given name
func (p *Project) Location(name string) (*model.Location, error) {
	for i := range p.Locations {
		if p.Locations[i].Name == name {
			return &p.Locations[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownLocation, name)
}

// AssignLayers replaces the interpreted soil layers of a location
func (p *Project) AssignLayers(name string, layers []model.SoilLayer) error {
	loc, err := p.Location(name)
	if err != nil {
		return err
	}
	loc.Layers = append([]model.SoilLayer(nil), layers...)
	return nil
}

// Save writes the project as YAML
func (p *Project) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// Load reads a project written by Save
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path) // #nosec G304 - user selected project file
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}
	return &p, nil
}
