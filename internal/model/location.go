package model

import "math"

// Investigation is a lightweight index entry for a GEF file on disk
type Investigation struct {
	Kind     Kind    `yaml:"kind" json:"kind"`
	Filename string  `yaml:"filename" json:"filename"`
	X        float64 `yaml:"x" json:"x"`
	Y        float64 `yaml:"y" json:"y"`
}

// DistanceTo returns the planar distance to a point
func (i Investigation) DistanceTo(x, y float64) float64 {
	return math.Hypot(i.X-x, i.Y-y)
}

// Location is a named point for which a soil profile is compiled
type Location struct {
	Name   string      `yaml:"name" json:"name"`
	X      float64     `yaml:"x" json:"x"`
	Y      float64     `yaml:"y" json:"y"`
	Layers []SoilLayer `yaml:"layers,omitempty" json:"layers,omitempty"`
}

// SoilType is a named soil with a display colour
type SoilType struct {
	Name  string `yaml:"name" json:"name"`
	Color string `yaml:"color" json:"color"`
}
