// Package output renders deck options responses for the terminal or for
// other programs.
package output

import (
	"fmt"
	"io"

	"github.com/reglet-dev/deckconf/internal/application/ports"
)

// FormatterFactory implements ports.OutputFormatterFactory.
type FormatterFactory struct{}

// NewFormatterFactory creates a new formatter factory.
func NewFormatterFactory() *FormatterFactory {
	return &FormatterFactory{}
}

// Create returns a formatter for the given format name. When options.Filter
// is set, presets not matching the expression are left out of the output.
func (f *FormatterFactory) Create(
	format string,
	writer io.Writer,
	options ports.FormatterOptions,
) (ports.OutputFormatter, error) {
	var formatter ports.OutputFormatter
	switch format {
	case "table":
		table := NewTableFormatter(writer)
		table.EnableColor = options.Color
		formatter = table
	case "json":
		formatter = NewJSONFormatter(writer, options.Indent)
	case "yaml":
		formatter = NewYAMLFormatter(writer)
	default:
		return nil, fmt.Errorf(
			"unknown format: %s (supported: %v)",
			format, f.SupportedFormats(),
		)
	}

	if options.Filter == "" {
		return formatter, nil
	}
	filter, err := NewConfigFilter(options.Filter)
	if err != nil {
		return nil, err
	}
	return &filteringFormatter{next: formatter, filter: filter}, nil
}

// SupportedFormats returns list of available format names.
func (f *FormatterFactory) SupportedFormats() []string {
	return []string{"table", "json", "yaml"}
}
