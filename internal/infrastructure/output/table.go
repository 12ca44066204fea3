package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/reglet-dev/deckconf/internal/application/dto"
	"github.com/reglet-dev/deckconf/internal/domain/values"
)

const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"

	ruleWidth = 60
)

// TableFormatter formats deck options as a human-readable table.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// colorize returns the string wrapped in ANSI color codes if enabled.
func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// Format writes the response as a table.
// The current deck's preset is marked "*", presets used by parents "^".
//
//nolint:errcheck // Table formatting errors are non-critical (best-effort terminal output)
func (f *TableFormatter) Format(resp *dto.DeckConfigForUpdateResponse) error {
	current := resp.CurrentDeck

	fmt.Fprintf(f.writer, "Deck: %s\n", f.colorize(current.Name, colorBold))
	fmt.Fprintf(f.writer, "Preset: %s\n", current.ConfigID)
	if len(current.ParentConfigIDs) > 0 {
		fmt.Fprintf(f.writer, "Parent presets: %s\n", joinIDs(current.ParentConfigIDs))
	}
	fmt.Fprintln(f.writer)

	if len(resp.AllConfig) == 0 {
		fmt.Fprintln(f.writer, "No presets.")
	} else {
		f.formatPresets(resp.AllConfig, current)
	}

	defaults := resp.Defaults.Settings
	fmt.Fprintln(f.writer)
	fmt.Fprintf(f.writer, "%s %s: %d new/day, %d reviews/day\n",
		f.colorize("New presets start from", colorGray),
		resp.Defaults.Name,
		defaults.NewPerDay,
		defaults.ReviewsPerDay)
	return nil
}

//nolint:errcheck // best-effort terminal output
func (f *TableFormatter) formatPresets(items []dto.ConfigWithExtra, current dto.CurrentDeck) {
	parents := make(map[values.DeckConfigID]bool, len(current.ParentConfigIDs))
	for _, id := range current.ParentConfigIDs {
		parents[id] = true
	}

	nameWidth := len("NAME")
	for _, item := range items {
		nameWidth = max(nameWidth, len(item.Config.Name))
	}

	fmt.Fprintf(f.writer, "   %-6s %-*s %s\n", "ID", nameWidth, "NAME", "DECKS")
	fmt.Fprintln(f.writer, strings.Repeat("─", ruleWidth))
	for _, item := range items {
		marker := " "
		switch {
		case item.Config.ID == current.ConfigID:
			marker = "*"
		case parents[item.Config.ID]:
			marker = "^"
		}
		line := fmt.Sprintf("%s  %-6s %-*s %d", marker, item.Config.ID, nameWidth, item.Config.Name, item.UseCount)
		if marker == "*" {
			line = f.colorize(line, colorGreen)
		}
		fmt.Fprintln(f.writer, line)
	}
	fmt.Fprintln(f.writer, strings.Repeat("─", ruleWidth))
}

func joinIDs(ids []values.DeckConfigID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}
