package main

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"
)

var validFormats = []string{"table", "json", "yaml"}

// CommonOptions contains output flags shared by commands that print a response.
type CommonOptions struct {
	// Output
	Format  string
	OutFile string
	Filter  string

	// Execution
	Timeout time.Duration

	Indent  bool
	NoColor bool

	// Color is resolved from NoColor and the output destination
	Color bool
}

// DefaultCommonOptions returns sensible defaults.
func DefaultCommonOptions() CommonOptions {
	return CommonOptions{
		Timeout: 30 * time.Second,
		Format:  "table",
		Indent:  true,
	}
}

// RegisterFlags adds common flags to a cobra command.
func (opts *CommonOptions) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout,
		"Timeout for reading the collection (0 to disable)")

	// Output
	cmd.Flags().StringVar(&opts.Format, "format", opts.Format,
		"Output format: table, json, yaml")
	cmd.Flags().StringVarP(&opts.OutFile, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().StringVar(&opts.Filter, "filter", "",
		"Only list presets matching the expression (e.g. \"use_count > 0\")")
	cmd.Flags().BoolVar(&opts.Indent, "indent", opts.Indent,
		"Indent JSON output")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false,
		"Disable colored table output")
}

// ApplyToContext applies timeout to context.
// Returns new context and cancel function.
func (opts *CommonOptions) ApplyToContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	// No timeout - return no-op cancel
	return ctx, func() {}
}

// ValidateFlags validates common options.
func (opts *CommonOptions) ValidateFlags() error {
	if !slices.Contains(validFormats, opts.Format) {
		return fmt.Errorf("invalid format: %s (valid: table, json, yaml)", opts.Format)
	}
	if opts.Timeout < 0 {
		return fmt.Errorf("--timeout must not be negative")
	}
	return nil
}
