package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/reglet-dev/deckconf/internal/application/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatterFactory_Create(t *testing.T) {
	factory := NewFormatterFactory()
	buf := &bytes.Buffer{}

	tests := []struct {
		name        string
		format      string
		options     ports.FormatterOptions
		wantErr     bool
		wantType    interface{}
		errContains string
	}{
		{
			name:     "table format",
			format:   "table",
			wantType: &TableFormatter{},
		},
		{
			name:     "table format with color",
			format:   "table",
			options:  ports.FormatterOptions{Color: true},
			wantType: &TableFormatter{},
		},
		{
			name:     "json format",
			format:   "json",
			options:  ports.FormatterOptions{Indent: true},
			wantType: &JSONFormatter{},
		},
		{
			name:     "yaml format",
			format:   "yaml",
			wantType: &YAMLFormatter{},
		},
		{
			name:     "filter wraps formatter",
			format:   "json",
			options:  ports.FormatterOptions{Filter: "use_count > 0"},
			wantType: &filteringFormatter{},
		},
		{
			name:        "bad filter",
			format:      "json",
			options:     ports.FormatterOptions{Filter: "use_count >"},
			wantErr:     true,
			errContains: "invalid filter expression",
		},
		{
			name:        "unknown format",
			format:      "sarif",
			wantErr:     true,
			errContains: "unknown format: sarif",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter, err := factory.Create(tt.format, buf, tt.options)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, formatter)
		})
	}
}

func TestFormatterFactory_SupportedFormats(t *testing.T) {
	assert.Equal(t, []string{"table", "json", "yaml"}, NewFormatterFactory().SupportedFormats())
}

func TestFormatterFactory_CreateTableColor(t *testing.T) {
	factory := NewFormatterFactory()

	for _, color := range []bool{true, false} {
		buf := &bytes.Buffer{}
		formatter, err := factory.Create("table", buf, ports.FormatterOptions{Color: color})
		require.NoError(t, err)

		table, ok := formatter.(*TableFormatter)
		require.True(t, ok)
		assert.Equal(t, color, table.EnableColor)

		require.NoError(t, formatter.Format(sampleResponse()))
		assert.Equal(t, color, strings.Contains(buf.String(), colorReset))
	}
}
