package formatter

import (
	"gopkg.in/yaml.v3"

	"github.com/yildizm/GefSum/internal/model"
)

// yamlFormatter formats output as YAML
type yamlFormatter struct{}

// NewYAML creates a new YAML formatter
func NewYAML() Formatter {
	return &yamlFormatter{}
}

func (f *yamlFormatter) Format(record model.Record) ([]byte, error) {
	output, err := newRecordOutput(record)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(output)
}
