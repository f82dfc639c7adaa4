package cli

import (
	"github.com/spf13/cobra"

	"github.com/tempuslib/tempus/internal/iso"
	"github.com/tempuslib/tempus/internal/temporal"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Overflow string
	Offset   string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <date-time> <duration>",
		Short: "Add an ISO 8601 duration to a date, date-time, or zoned date-time",
		Long: `Add an ISO 8601 duration to a date, date-time, or zoned date-time.

Calendar units respect the operand's calendar; for zoned operands date
units move in wall-clock time and time units in exact time.

Examples:
  tempus add 2020-01-31 P1M
  tempus add "2020-03-08T00:00:00-08:00[America/Los_Angeles]" PT4H`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Overflow, "overflow", "constrain", "out-of-range handling (constrain|reject)")
	cmd.Flags().StringVar(&opts.Offset, "offset", "reject", "offset policy for zoned input (use|prefer|ignore|reject)")

	return cmd
}

func runAdd(opts *AddOptions, input, durText string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	dur, err := iso.ParseDuration(durText)
	if err != nil {
		return out.Error(err)
	}
	overflow, err := parseOverflowFlag(opts.Overflow)
	if err != nil {
		return out.Error(err)
	}
	policy, err := parseOffsetFlag(opts.Offset)
	if err != nil {
		return out.Error(err)
	}

	switch classifyOperand(input) {
	case kindZoned:
		z, err := iso.ParseZonedDateTime(input, opts.Resolver, policy, temporal.DisambiguationCompatible)
		if err != nil {
			return out.Error(err)
		}
		sum, err := z.Add(dur, overflow)
		if err != nil {
			return out.Error(err)
		}
		return out.Success(iso.FormatZonedDateTime(sum, iso.PrecisionAuto))

	case kindDateTime:
		dt, err := iso.ParsePlainDateTime(input)
		if err != nil {
			return out.Error(err)
		}
		sum, err := dt.Add(dur, overflow)
		if err != nil {
			return out.Error(err)
		}
		return out.Success(iso.FormatPlainDateTime(sum, iso.PrecisionAuto))

	default:
		d, err := iso.ParsePlainDate(input)
		if err != nil {
			return out.Error(err)
		}
		sum, err := d.Add(dur, overflow)
		if err != nil {
			return out.Error(err)
		}
		return out.Success(iso.FormatPlainDate(sum))
	}
}
