package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tempuslib/tempus/internal/system"
	"github.com/tempuslib/tempus/internal/zone"
	"github.com/tempuslib/tempus/internal/zone/tzdb"
)

// RootOptions holds global flags and the ambient dependencies shared by
// all commands. Tests override System and Resolver for determinism.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	System   system.System
	Resolver *zone.Resolver
	Logger   *slog.Logger
}

// logger returns the configured logger, or a discarding one when the
// command runs without the root's PersistentPreRunE (unit tests).
func (o *RootOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the tempus CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{
		System:   system.Default(),
		Resolver: zone.NewResolver(tzdb.New()),
	}

	cmd := &cobra.Command{
		Use:   "tempus",
		Short: "Tempus - calendar-aware date and time arithmetic",
		Long:  "A calendar- and zone-aware engine for exact time, wall-clock values, and duration arithmetic.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewNowCommand(opts))
	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewDiffCommand(opts))
	cmd.AddCommand(NewRoundCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
