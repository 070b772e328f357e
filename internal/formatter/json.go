package formatter

import (
	"encoding/json"
	"fmt"

	"github.com/yildizm/GefSum/internal/model"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(record model.Record) ([]byte, error) {
	output, err := newRecordOutput(record)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(output, "", "  ")
}

// RecordOutput is the structure written by the JSON and YAML formatters
type RecordOutput struct {
	Kind    model.Kind     `json:"kind" yaml:"kind"`
	Header  model.Header   `json:"header" yaml:"header"`
	Summary *SummaryOutput `json:"summary" yaml:"summary"`
	Samples []model.Sample `json:"samples,omitempty" yaml:"samples,omitempty"`
	Layers  []*LayerOutput `json:"layers,omitempty" yaml:"layers,omitempty"`
}

// SummaryOutput holds the derived values of a record
type SummaryOutput struct {
	Date              string   `json:"date,omitempty" yaml:"date,omitempty"`
	ZMin              *float64 `json:"z_min,omitempty" yaml:"z_min,omitempty"`
	Length            *float64 `json:"length,omitempty" yaml:"length,omitempty"`
	Samples           int      `json:"samples,omitempty" yaml:"samples,omitempty"`
	Skipped           int      `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	PreExcavatedDepth float64  `json:"pre_excavated_depth,omitempty" yaml:"pre_excavated_depth,omitempty"`
	HasWaterPressure  bool     `json:"has_water_pressure,omitempty" yaml:"has_water_pressure,omitempty"`
	Layers            int      `json:"layers,omitempty" yaml:"layers,omitempty"`
}

// LayerOutput is a soil layer with its derived values
type LayerOutput struct {
	ZTop      float64 `json:"z_top" yaml:"z_top"`
	ZBottom   float64 `json:"z_bottom" yaml:"z_bottom"`
	SoilCode  string  `json:"soil_code" yaml:"soil_code"`
	ShortCode string  `json:"short_code" yaml:"short_code"`
	Height    float64 `json:"height" yaml:"height"`
	Color     string  `json:"color" yaml:"color"`
}

func newRecordOutput(record model.Record) (*RecordOutput, error) {
	output := &RecordOutput{
		Kind:    record.Kind(),
		Header:  record.Info(),
		Summary: &SummaryOutput{},
	}

	if date, err := record.Info().Date(); err == nil {
		output.Summary.Date = date
	}
	if zMin, err := record.ZMin(); err == nil {
		length, _ := record.Length()
		output.Summary.ZMin = &zMin
		output.Summary.Length = &length
	}

	switch r := record.(type) {
	case *model.CPT:
		output.Summary.Samples = r.Len()
		output.Summary.Skipped = r.Skipped
		output.Summary.PreExcavatedDepth = r.PreExcavatedDepth
		output.Summary.HasWaterPressure = r.HasWaterPressure()
		output.Samples = make([]model.Sample, r.Len())
		for i := range output.Samples {
			output.Samples[i] = r.Sample(i)
		}
	case *model.Borehole:
		output.Summary.Layers = len(r.Layers)
		output.Layers = createLayerOutputs(r.Layers)
	default:
		return nil, fmt.Errorf("unsupported record type %T", record)
	}

	return output, nil
}

func createLayerOutputs(layers []model.SoilLayer) []*LayerOutput {
	outputs := make([]*LayerOutput, 0, len(layers))
	for _, layer := range layers {
		outputs = append(outputs, &LayerOutput{
			ZTop:      layer.ZTop,
			ZBottom:   layer.ZBottom,
			SoilCode:  layer.SoilCode,
			ShortCode: layer.ShortCode(),
			Height:    layer.Height(),
			Color:     layer.Color(),
		})
	}
	return outputs
}
