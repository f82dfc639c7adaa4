package cli

import (
	"github.com/spf13/cobra"

	"github.com/tempuslib/tempus/internal/iso"
	"github.com/tempuslib/tempus/internal/values"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	Zone           string
	Disambiguation string
	Offset         string
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <date-time>",
		Short: "Project a date-time into a time zone",
		Long: `Project a date-time into a target time zone.

An input with an offset or Z fixes the instant and reprojects it; a
bracketed zoned input changes zones instant-preserving; a plain
date-time resolves its wall clock in the target zone under the
disambiguation policy.

Examples:
  tempus convert 2020-03-08T10:00:00Z --zone America/Los_Angeles
  tempus convert 2020-03-08T02:30:00 --zone America/Los_Angeles --disambiguation earlier`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Zone, "zone", "", "target zone identifier")
	cmd.Flags().StringVar(&opts.Disambiguation, "disambiguation", "compatible", "gap/overlap policy (compatible|earlier|later|reject)")
	cmd.Flags().StringVar(&opts.Offset, "offset", "reject", "offset policy for zoned input (use|prefer|ignore|reject)")
	_ = cmd.MarkFlagRequired("zone")

	return cmd
}

func runConvert(opts *ConvertOptions, input string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	dis, err := parseDisambiguationFlag(opts.Disambiguation)
	if err != nil {
		return out.Error(err)
	}
	policy, err := parseOffsetFlag(opts.Offset)
	if err != nil {
		return out.Error(err)
	}

	var z values.ZonedDateTime
	switch {
	case classifyOperand(input) == kindZoned:
		parsed, err := iso.ParseZonedDateTime(input, opts.Resolver, policy, dis)
		if err != nil {
			return out.Error(err)
		}
		z, err = parsed.WithZone(opts.Zone)
		if err != nil {
			return out.Error(err)
		}

	default:
		// An instant-shaped input reprojects; a plain one resolves.
		at, instErr := iso.ParseInstant(input)
		if instErr == nil {
			z, err = values.NewZonedDateTime(opts.Resolver, "iso8601", opts.Zone, at)
			if err != nil {
				return out.Error(err)
			}
			break
		}
		dt, err := iso.ParsePlainDateTime(input)
		if err != nil {
			return out.Error(err)
		}
		z, err = values.ZonedFromDateTime(opts.Resolver, opts.Zone, dt, dis)
		if err != nil {
			return out.Error(err)
		}
	}

	opts.logger().Debug("converted", "zone", opts.Zone, "result", iso.FormatZonedDateTime(z, iso.PrecisionAuto))
	return out.Success(iso.FormatZonedDateTime(z, iso.PrecisionAuto))
}
