package output

import (
	"github.com/goccy/go-json"
	"github.com/rgehrsitz/paygo/internal/domain"
	"gopkg.in/yaml.v3"
)

// JSONFormatter renders a payslip as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(slip *domain.Payslip) ([]byte, error) {
	if j.Pretty {
		data, err := json.MarshalIndent(slip, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return json.Marshal(slip)
}

// YAMLFormatter renders a payslip as YAML
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(slip *domain.Payslip) ([]byte, error) {
	return yaml.Marshal(slip)
}
