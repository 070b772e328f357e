package model

import "strings"

// DefaultLayerColor is used for soil codes without a legend entry
const DefaultLayerColor = "#ccccc8"

// layerColors maps the first letter of a short soil code to its legend colour
var layerColors = map[byte]string{
	'G': "#708090", // gravel
	'Z': "#e5e500", // sand
	'K': "#2e8b57", // clay
	'L': "#c0c080", // loam
	'V': "#8b4513", // peat
	'H': "#4d4d33", // humus
	'A': "#bfbfbf", // fill
}

// SoilLayer is one classified interval of a borehole log
type SoilLayer struct {
	ZTop     float64 `yaml:"z_top" json:"z_top"`
	ZBottom  float64 `yaml:"z_bottom" json:"z_bottom"`
	SoilCode string  `yaml:"soil_code" json:"soil_code"`
}

// Height returns the thickness of the layer
func (l SoilLayer) Height() float64 {
	return l.ZTop - l.ZBottom
}

// ShortCode returns the part of the soil code before the first underscore
func (l SoilLayer) ShortCode() string {
	if i := strings.IndexByte(l.SoilCode, '_'); i >= 0 {
		return l.SoilCode[:i]
	}
	return l.SoilCode
}

// Color returns the legend colour of the layer
func (l SoilLayer) Color() string {
	return ColorFor(l.ShortCode())
}

// ColorFor returns the legend colour for a short soil code
func ColorFor(shortCode string) string {
	if shortCode == "" {
		return DefaultLayerColor
	}
	if c, ok := layerColors[shortCode[0]]; ok {
		return c
	}
	return DefaultLayerColor
}

// MergeLayers collapses adjacent layers sharing a soil code into one layer.
// The first layer of a run keeps its top and takes the bottom of the last one.
// The input slice is not modified.
func MergeLayers(layers []SoilLayer) []SoilLayer {
	result := make([]SoilLayer, 0, len(layers))
	for _, layer := range layers {
		if n := len(result); n > 0 && result[n-1].SoilCode == layer.SoilCode {
			result[n-1].ZBottom = layer.ZBottom
			continue
		}
		result = append(result, layer)
	}
	return result
}

// ClipLayers returns the layers down to minElevation. Layers starting below it
// are dropped and the last visible layer is cut off at it. The input is not modified.
func ClipLayers(layers []SoilLayer, minElevation float64) []SoilLayer {
	out := make([]SoilLayer, 0, len(layers))
	for _, layer := range layers {
		if layer.ZTop < minElevation {
			break
		}
		if layer.ZBottom < minElevation {
			layer.ZBottom = minElevation
		}
		out = append(out, layer)
	}
	return out
}
