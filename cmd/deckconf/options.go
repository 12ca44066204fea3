package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/reglet-dev/deckconf/internal/application/dto"
	"github.com/reglet-dev/deckconf/internal/application/ports"
	"github.com/reglet-dev/deckconf/internal/domain/values"
	"github.com/reglet-dev/deckconf/internal/infrastructure/container"
	"github.com/spf13/cobra"
)

var optionsOpts = DefaultCommonOptions()

// optionsCmd prints the deck options of one deck.
var optionsCmd = &cobra.Command{
	Use:   "options <deck-id>",
	Short: "Show the option presets available to a deck",
	Long: `List every option preset with its use count, mark the preset of the
given deck and the presets used by its parent decks, and show the default
preset new presets start from.

Filtering:
  --filter "use_count > 0"          Only presets used by at least one deck
  --filter "name startsWith 'Lang'" Presets by name`,
	Args: cobra.ExactArgs(1),
	RunE: withContainer(func(cctx *CommandContext, cmd *cobra.Command, args []string) error {
		opts := optionsOpts
		applyOutputDefaults(cmd, cctx.Container, &opts)
		if err := opts.ValidateFlags(); err != nil {
			return err
		}

		ctx, cancel := opts.ApplyToContext(cctx.Context)
		defer cancel()

		if opts.OutFile != "" {
			cctx.Logger.Info("writing output", "file", opts.OutFile, "format", opts.Format)
			return runOptionsToFile(ctx, cctx.Container, opts.OutFile, args[0], opts)
		}

		opts.Color = colorEnabled(opts, os.Stdout)
		return runOptionsAction(ctx, cctx.Container, os.Stdout, args[0], opts)
	}),
}

func init() {
	rootCmd.AddCommand(optionsCmd)
	optionsOpts.RegisterFlags(optionsCmd)
}

// applyOutputDefaults takes format and indentation from the system config
// unless they were given on the command line.
func applyOutputDefaults(cmd *cobra.Command, c *container.Container, opts *CommonOptions) {
	out := c.SystemConfig().Output
	if !cmd.Flags().Changed("format") && out.Format != "" {
		opts.Format = out.Format
	}
	if !cmd.Flags().Changed("indent") {
		opts.Indent = out.Indent
	}
}

// colorEnabled reports whether table output to out should be colored.
func colorEnabled(opts CommonOptions, out *os.File) bool {
	if opts.NoColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(out.Fd())
}

// runOptionsToFile renders the deck options in memory and only writes path
// once the whole response was produced, so a failed query leaves any
// existing file untouched.
func runOptionsToFile(ctx context.Context, c *container.Container, path, deckArg string, opts CommonOptions) error {
	var buf bytes.Buffer
	opts.Color = false
	if err := runOptionsAction(ctx, c, &buf, deckArg, opts); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// runOptionsAction loads the deck options of deckArg and writes them to w.
func runOptionsAction(ctx context.Context, c *container.Container, w io.Writer, deckArg string, opts CommonOptions) error {
	deckID, err := values.ParseDeckID(deckArg)
	if err != nil {
		return err
	}

	formatter, err := c.FormatterFactory().Create(opts.Format, w, ports.FormatterOptions{
		Filter: opts.Filter,
		Indent: opts.Indent,
		Color:  opts.Color,
	})
	if err != nil {
		return err
	}

	resp, err := c.DeckConfigForUpdateUseCase().Execute(ctx, dto.DeckConfigForUpdateRequest{
		Metadata: dto.RequestMetadata{RequestID: uuid.NewString()},
		DeckID:   deckID,
	})
	if err != nil {
		return err
	}

	if err := formatter.Format(resp); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return nil
}
