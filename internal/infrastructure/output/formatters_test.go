package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/reglet-dev/deckconf/internal/application/dto"
	"github.com/reglet-dev/deckconf/internal/application/ports"
	"github.com/reglet-dev/deckconf/internal/domain/entities"
	"github.com/reglet-dev/deckconf/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResponse() *dto.DeckConfigForUpdateResponse {
	return &dto.DeckConfigForUpdateResponse{
		AllConfig: []dto.ConfigWithExtra{
			{Config: entities.DeckConfig{ID: 1, Name: "Basic"}, UseCount: 3},
			{Config: entities.DeckConfig{ID: 5, Name: "Languages"}, UseCount: 1},
			{Config: entities.DeckConfig{ID: 2, Name: "Zen"}, UseCount: 0},
		},
		CurrentDeck: dto.CurrentDeck{
			Name:            "Lang::Spanish",
			ConfigID:        1,
			ParentConfigIDs: []values.DeckConfigID{5},
		},
		Defaults: entities.DefaultDeckConfig(),
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewJSONFormatter(buf, false).Format(sampleResponse()))

	var decoded struct {
		AllConfig []struct {
			Config   struct{ Name string } `json:"config"`
			UseCount int                   `json:"use_count"`
		} `json:"all_config"`
		CurrentDeck struct {
			Name            string  `json:"name"`
			ConfigID        int64   `json:"config_id"`
			ParentConfigIDs []int64 `json:"parent_config_ids"`
		} `json:"current_deck"`
		Defaults struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"defaults"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.AllConfig, 3)
	assert.Equal(t, "Basic", decoded.AllConfig[0].Config.Name)
	assert.Equal(t, 3, decoded.AllConfig[0].UseCount)
	assert.Equal(t, "Lang::Spanish", decoded.CurrentDeck.Name)
	assert.Equal(t, []int64{5}, decoded.CurrentDeck.ParentConfigIDs)
	assert.Equal(t, "Default", decoded.Defaults.Name)
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestJSONFormatter_Indent(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewJSONFormatter(buf, true).Format(sampleResponse()))
	assert.Contains(t, buf.String(), "\n  \"all_config\": [")
}

func TestYAMLFormatter_Format(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewYAMLFormatter(buf).Format(sampleResponse()))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "all_config")
	assert.Contains(t, decoded, "current_deck")
	assert.Contains(t, decoded, "defaults")
}

func TestTableFormatter_Format(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewTableFormatter(buf).Format(sampleResponse()))
	out := buf.String()

	assert.Contains(t, out, "Deck: Lang::Spanish")
	assert.Contains(t, out, "Parent presets: 5")
	assert.Contains(t, out, "*  1      Basic     3")
	assert.Contains(t, out, "^  5      Languages 1")
	assert.Contains(t, out, "   2      Zen       0")
	assert.Contains(t, out, "Default: 20 new/day, 200 reviews/day")
	assert.NotContains(t, out, colorReset)
}

func TestTableFormatter_NoPresets(t *testing.T) {
	resp := sampleResponse()
	resp.AllConfig = nil
	buf := &bytes.Buffer{}

	require.NoError(t, NewTableFormatter(buf).Format(resp))
	assert.Contains(t, buf.String(), "No presets.")
}

func TestTableFormatter_Color(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := NewTableFormatter(buf)
	formatter.EnableColor = true

	require.NoError(t, formatter.Format(sampleResponse()))
	assert.Contains(t, buf.String(), colorGreen)
}

func TestConfigFilter_Apply(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		want       []string
	}{
		{"unused presets", "use_count == 0", []string{"Zen"}},
		{"by name", `name startsWith "L"`, []string{"Languages"}},
		{"by id", "id in [1, 2]", []string{"Basic", "Zen"}},
		{"nothing", "false", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := NewConfigFilter(tt.expression)
			require.NoError(t, err)

			resp := sampleResponse()
			got, err := filter.Apply(resp)
			require.NoError(t, err)

			names := make([]string, 0, len(got.AllConfig))
			for _, item := range got.AllConfig {
				names = append(names, item.Config.Name)
			}
			assert.Equal(t, tt.want, names)
			// The original response is left alone
			assert.Len(t, resp.AllConfig, 3)
			assert.Equal(t, resp.CurrentDeck, got.CurrentDeck)
		})
	}
}

func TestConfigFilter_RejectsNonBoolean(t *testing.T) {
	_, err := NewConfigFilter("use_count + 1")
	assert.Error(t, err)
}

func TestFilteringFormatter(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter, err := NewFormatterFactory().Create("table", buf, ports.FormatterOptions{Filter: "use_count > 0"})
	require.NoError(t, err)

	require.NoError(t, formatter.Format(sampleResponse()))
	assert.Contains(t, buf.String(), "Basic")
	assert.NotContains(t, buf.String(), "Zen")
}
