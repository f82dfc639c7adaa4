package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tempuslib/tempus/internal/iso"
	"github.com/tempuslib/tempus/internal/temporal"
	"github.com/tempuslib/tempus/internal/values"
)

// DiffOptions holds flags for the diff command.
type DiffOptions struct {
	*RootOptions
	LargestUnit  string
	SmallestUnit string
	Increment    int64
	Mode         string
	Offset       string
}

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DiffOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "diff <from> <to>",
		Short: "Compute the duration between two date-times",
		Long: `Compute the duration from one value to another of the same kind.

Both operands must be dates, date-times, or zoned date-times. The
result is balanced up to --largest-unit and optionally rounded at
--smallest-unit.

Examples:
  tempus diff 2020-01-01 2021-03-03 --largest-unit year
  tempus diff 2020-01-01T00:00:00 2020-02-29T18:00:00`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.LargestUnit, "largest-unit", "", "largest unit in the result")
	cmd.Flags().StringVar(&opts.SmallestUnit, "smallest-unit", "", "smallest unit in the result")
	cmd.Flags().Int64Var(&opts.Increment, "increment", 0, "rounding increment of the smallest unit")
	cmd.Flags().StringVar(&opts.Mode, "mode", "", "rounding mode")
	cmd.Flags().StringVar(&opts.Offset, "offset", "reject", "offset policy for zoned input (use|prefer|ignore|reject)")

	return cmd
}

func (opts *DiffOptions) differenceOptions() (values.DifferenceOptions, error) {
	largest, err := parseUnitFlag(opts.LargestUnit)
	if err != nil {
		return values.DifferenceOptions{}, err
	}
	smallest, err := parseUnitFlag(opts.SmallestUnit)
	if err != nil {
		return values.DifferenceOptions{}, err
	}
	mode, err := parseModeFlag(opts.Mode)
	if err != nil {
		return values.DifferenceOptions{}, err
	}
	return values.DifferenceOptions{
		LargestUnit:  largest,
		SmallestUnit: smallest,
		Increment:    opts.Increment,
		Mode:         mode,
	}, nil
}

func runDiff(opts *DiffOptions, from, to string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	kind := classifyOperand(from)
	if other := classifyOperand(to); other != kind {
		return WrapExitError(ExitCommandError, "operands must be the same kind",
			fmt.Errorf("%s is a %s but %s is a %s", from, kind, to, other))
	}
	diffOpts, err := opts.differenceOptions()
	if err != nil {
		return out.Error(err)
	}
	policy, err := parseOffsetFlag(opts.Offset)
	if err != nil {
		return out.Error(err)
	}

	switch kind {
	case kindZoned:
		a, err := iso.ParseZonedDateTime(from, opts.Resolver, policy, temporal.DisambiguationCompatible)
		if err != nil {
			return out.Error(err)
		}
		b, err := iso.ParseZonedDateTime(to, opts.Resolver, policy, temporal.DisambiguationCompatible)
		if err != nil {
			return out.Error(err)
		}
		d, err := a.Until(b, diffOpts)
		if err != nil {
			return out.Error(err)
		}
		return out.Success(iso.FormatDuration(d))

	case kindDateTime:
		a, err := iso.ParsePlainDateTime(from)
		if err != nil {
			return out.Error(err)
		}
		b, err := iso.ParsePlainDateTime(to)
		if err != nil {
			return out.Error(err)
		}
		d, err := a.Until(b, diffOpts)
		if err != nil {
			return out.Error(err)
		}
		return out.Success(iso.FormatDuration(d))

	default:
		a, err := iso.ParsePlainDate(from)
		if err != nil {
			return out.Error(err)
		}
		b, err := iso.ParsePlainDate(to)
		if err != nil {
			return out.Error(err)
		}
		d, err := a.Until(b, diffOpts)
		if err != nil {
			return out.Error(err)
		}
		return out.Success(iso.FormatDuration(d))
	}
}
