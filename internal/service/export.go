package service

import (
	"encoding/json"
	"strings"

	"github.com/siteplan/duration-planner/internal/model"
	"github.com/siteplan/duration-planner/internal/validator"
	"github.com/siteplan/duration-planner/pkg/metrics"
	"sigs.k8s.io/yaml"
)

type ExportFormat string

const (
	ExportFormatYAML ExportFormat = "yaml"
	ExportFormatJSON ExportFormat = "json"
)

// ExportFormats lists the accepted export formats, the default first.
var ExportFormats = []string{string(ExportFormatYAML), string(ExportFormatJSON)}

var inputValidator = func() *validator.Validator {
	v := validator.NewValidator()
	v.Register(validator.NewProjectInputValidationRules()...)
	return v
}()

// ParseExportFormat maps a user supplied format name to an ExportFormat.
// An empty name selects yaml.
func ParseExportFormat(name string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(ExportFormatYAML), "yml":
		return ExportFormatYAML, nil
	case string(ExportFormatJSON):
		return ExportFormatJSON, nil
	default:
		return "", NewErrUnsupportedFormat("export", name)
	}
}

// ExportInput serializes input as a key-value document holding every
// parameter.
func ExportInput(input model.ProjectInput, format ExportFormat) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	switch format {
	case ExportFormatYAML, "":
		data, err = yaml.Marshal(input)
	case ExportFormatJSON:
		data, err = json.MarshalIndent(input, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	default:
		return nil, NewErrUnsupportedFormat("export", string(format))
	}
	if err != nil {
		return nil, err
	}

	if format == "" {
		format = ExportFormatYAML
	}
	metrics.IncreaseExportsTotalMetric(string(format))

	return data, nil
}

// ParseInput reads a document produced by ExportInput. Both yaml and json are
// accepted. Keys absent from the document keep their default value; unknown
// keys and out-of-range values are rejected with an *ErrInvalidInput.
func ParseInput(data []byte) (model.ProjectInput, error) {
	input := model.DefaultProjectInput()

	if err := yaml.UnmarshalStrict(data, &input); err != nil {
		return model.ProjectInput{}, NewErrInvalidInput("failed to parse project document: %v", err)
	}

	if err := ValidateInput(input); err != nil {
		return model.ProjectInput{}, err
	}

	return input, nil
}

// ValidateInput checks every parameter against its documented range.
func ValidateInput(input model.ProjectInput) error {
	if err := inputValidator.Struct(input); err != nil {
		return NewErrInvalidInput("invalid project document: %v", err)
	}
	return nil
}
