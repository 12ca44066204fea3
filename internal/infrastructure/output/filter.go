package output

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/reglet-dev/deckconf/internal/application/dto"
	"github.com/reglet-dev/deckconf/internal/application/ports"
)

const maxFilterNodes = 100

// filterEnv is the environment a filter expression sees for each preset.
type filterEnv struct {
	Name     string `expr:"name"`
	ID       int64  `expr:"id"`
	UseCount int    `expr:"use_count"`
}

// ConfigFilter selects presets by an expression such as
// `use_count == 0 || name startsWith "Lang"`.
type ConfigFilter struct {
	program *vm.Program
	source  string
}

// NewConfigFilter compiles a filter expression.
func NewConfigFilter(expression string) (*ConfigFilter, error) {
	program, err := expr.Compile(expression,
		expr.Env(filterEnv{}),
		expr.AsBool(),
		expr.MaxNodes(maxFilterNodes),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression %q: %w", expression, err)
	}
	return &ConfigFilter{program: program, source: expression}, nil
}

// Match reports whether the preset passes the filter.
func (f *ConfigFilter) Match(item dto.ConfigWithExtra) (bool, error) {
	out, err := expr.Run(f.program, filterEnv{
		Name:     item.Config.Name,
		ID:       int64(item.Config.ID),
		UseCount: int(item.UseCount),
	})
	if err != nil {
		return false, fmt.Errorf("filter %q failed on preset %s: %w", f.source, item.Config.ID, err)
	}
	return out.(bool), nil
}

// Apply returns a shallow copy of resp keeping only matching presets.
func (f *ConfigFilter) Apply(resp *dto.DeckConfigForUpdateResponse) (*dto.DeckConfigForUpdateResponse, error) {
	filtered := *resp
	filtered.AllConfig = make([]dto.ConfigWithExtra, 0, len(resp.AllConfig))
	for _, item := range resp.AllConfig {
		ok, err := f.Match(item)
		if err != nil {
			return nil, err
		}
		if ok {
			filtered.AllConfig = append(filtered.AllConfig, item)
		}
	}
	return &filtered, nil
}

// filteringFormatter applies a ConfigFilter before delegating.
type filteringFormatter struct {
	next   ports.OutputFormatter
	filter *ConfigFilter
}

func (f *filteringFormatter) Format(resp *dto.DeckConfigForUpdateResponse) error {
	filtered, err := f.filter.Apply(resp)
	if err != nil {
		return err
	}
	return f.next.Format(filtered)
}
