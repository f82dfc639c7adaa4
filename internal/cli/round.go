package cli

import (
	"github.com/spf13/cobra"

	"github.com/tempuslib/tempus/internal/calendar"
	"github.com/tempuslib/tempus/internal/duration"
	"github.com/tempuslib/tempus/internal/iso"
	"github.com/tempuslib/tempus/internal/temporal"
)

// RoundOptions holds flags for the round command.
type RoundOptions struct {
	*RootOptions
	SmallestUnit string
	LargestUnit  string
	Increment    int64
	Mode         string
	Relative     string
	Offset       string
}

// NewRoundCommand creates the round command.
func NewRoundCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RoundOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "round <date-time|duration>",
		Short: "Round a date-time or duration to a unit increment",
		Long: `Round a date-time, zoned date-time, or duration.

Durations with calendar units need --relative to give the calendar
anchor; zoned date-times rounded to days use the actual day length of
their zone.

Examples:
  tempus round 2020-06-15T12:34:56 --smallest-unit hour
  tempus round P400D --smallest-unit month --relative 2020-01-01 --mode trunc`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRound(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.SmallestUnit, "smallest-unit", "", "unit to round to")
	cmd.Flags().StringVar(&opts.LargestUnit, "largest-unit", "", "largest unit in a rounded duration")
	cmd.Flags().Int64Var(&opts.Increment, "increment", 0, "rounding increment of the smallest unit")
	cmd.Flags().StringVar(&opts.Mode, "mode", "", "rounding mode")
	cmd.Flags().StringVar(&opts.Relative, "relative", "", "anchor date for calendar-unit durations")
	cmd.Flags().StringVar(&opts.Offset, "offset", "reject", "offset policy for zoned input (use|prefer|ignore|reject)")
	_ = cmd.MarkFlagRequired("smallest-unit")

	return cmd
}

func (opts *RoundOptions) anchor() (*duration.Anchor, error) {
	if opts.Relative == "" {
		return nil, nil
	}
	d, err := iso.ParsePlainDate(opts.Relative)
	if err != nil {
		return nil, err
	}
	cal, err := calendar.Get(d.CalendarID())
	if err != nil {
		return nil, err
	}
	return duration.NewAnchor(cal, d.EpochDay(), 0), nil
}

func runRound(opts *RoundOptions, input string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	smallest, err := parseUnitFlag(opts.SmallestUnit)
	if err != nil {
		return out.Error(err)
	}
	mode, err := parseModeFlag(opts.Mode)
	if err != nil {
		return out.Error(err)
	}

	switch classifyOperand(input) {
	case kindDuration:
		d, err := iso.ParseDuration(input)
		if err != nil {
			return out.Error(err)
		}
		largest, err := parseUnitFlag(opts.LargestUnit)
		if err != nil {
			return out.Error(err)
		}
		anchor, err := opts.anchor()
		if err != nil {
			return out.Error(err)
		}
		rounded, err := d.Round(duration.RoundOptions{
			LargestUnit:  largest,
			SmallestUnit: smallest,
			Increment:    opts.Increment,
			Mode:         mode,
			RelativeTo:   anchor,
		})
		if err != nil {
			return out.Error(err)
		}
		return out.Success(iso.FormatDuration(rounded))

	case kindZoned:
		policy, err := parseOffsetFlag(opts.Offset)
		if err != nil {
			return out.Error(err)
		}
		z, err := iso.ParseZonedDateTime(input, opts.Resolver, policy, temporal.DisambiguationCompatible)
		if err != nil {
			return out.Error(err)
		}
		rounded, err := z.Round(smallest, opts.Increment, mode)
		if err != nil {
			return out.Error(err)
		}
		return out.Success(iso.FormatZonedDateTime(rounded, iso.PrecisionAuto))

	default:
		dt, err := iso.ParsePlainDateTime(input)
		if err != nil {
			return out.Error(err)
		}
		rounded, err := dt.Round(smallest, opts.Increment, mode)
		if err != nil {
			return out.Error(err)
		}
		return out.Success(iso.FormatPlainDateTime(rounded, iso.PrecisionAuto))
	}
}
