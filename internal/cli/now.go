package cli

import (
	"github.com/spf13/cobra"

	"github.com/tempuslib/tempus/internal/iso"
)

// NowOptions holds flags for the now command.
type NowOptions struct {
	*RootOptions
	Zone     string
	Calendar string
}

// NewNowCommand creates the now command.
func NewNowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "now",
		Short: "Print the current zoned date-time",
		Long: `Print the current date-time in a zone and calendar.

Defaults to the process-local zone and the ISO calendar.

Example:
  tempus now --zone Asia/Tokyo`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNow(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Zone, "zone", "", "IANA zone identifier or fixed offset")
	cmd.Flags().StringVar(&opts.Calendar, "calendar", "", "calendar identifier")

	return cmd
}

func runNow(opts *NowOptions, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	sys := opts.System
	if opts.Zone != "" {
		sys.TimeZone = opts.Zone
	}
	if opts.Calendar != "" {
		sys.Calendar = opts.Calendar
	}

	opts.logger().Debug("resolving now", "zone", sys.TimeZone, "calendar", sys.Calendar)
	z, err := sys.NowZoned(opts.Resolver)
	if err != nil {
		return out.Error(err)
	}
	return out.Success(iso.FormatZonedDateTime(z, iso.PrecisionAuto))
}
