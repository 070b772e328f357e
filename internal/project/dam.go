package project

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/yildizm/GefSum/internal/model"
)

// Profile is a named sequence of soil layers as exported to DAM
type Profile struct {
	ID     string
	Layers []model.SoilLayer
}

// ExportOptions configures WriteSoilProfiles
type ExportOptions struct {
	// TopLevel replaces the top of the first layer of every profile
	TopLevel  float64
	Separator string
	// ShortNames writes the soil code up to the first '_'
	ShortNames bool
}

// DefaultExportOptions returns the DAM defaults
func DefaultExportOptions() ExportOptions {
	return ExportOptions{TopLevel: 10.0, Separator: ";", ShortNames: true}
}

// ProfileFromBorehole turns a borehole log into a profile named after the
// borehole, or after its file when the header has no TESTID.
func ProfileFromBorehole(b *model.Borehole) Profile {
	id := b.Name
	if id == "" && b.Filename != "" {
		id = strings.TrimSuffix(filepath.Base(b.Filename), filepath.Ext(b.Filename))
	}
	return Profile{ID: id, Layers: b.Layers}
}

// Profiles returns a profile for every location with interpreted layers
func (p *Project) Profiles() []Profile {
	profiles := make([]Profile, 0, len(p.Locations))
	for _, loc := range p.Locations {
		if len(loc.Layers) == 0 {
			continue
		}
		profiles = append(profiles, Profile{ID: loc.Name, Layers: loc.Layers})
	}
	return profiles
}

// WriteSoilProfiles writes profiles in the DAM soilprofiles.csv layout:
//
//	soilprofile_id;top_level;soil_name
func WriteSoilProfiles(w io.Writer, profiles []Profile, opts ExportOptions) error {
	sep, size := utf8.DecodeRuneInString(opts.Separator)
	if size == 0 || size != len(opts.Separator) {
		return fmt.Errorf("separator must be a single character, got %q", opts.Separator)
	}

	writer := csv.NewWriter(w)
	writer.Comma = sep

	if err := writer.Write([]string{"soilprofile_id", "top_level", "soil_name"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, profile := range profiles {
		for i, layer := range profile.Layers {
			top := layer.ZTop
			if i == 0 {
				top = opts.TopLevel
			}
			name := layer.SoilCode
			if opts.ShortNames {
				name = layer.ShortCode()
			}
			record := []string{profile.ID, fmt.Sprintf("%.2f", top), name}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write profile %s: %w", profile.ID, err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	return nil
}
