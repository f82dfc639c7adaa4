package harness

import (
	"fmt"
	"strconv"

	"github.com/tempuslib/tempus/internal/calendar"
	"github.com/tempuslib/tempus/internal/duration"
	"github.com/tempuslib/tempus/internal/iso"
	"github.com/tempuslib/tempus/internal/temporal"
	"github.com/tempuslib/tempus/internal/values"
	"github.com/tempuslib/tempus/internal/zone"
	"github.com/tempuslib/tempus/internal/zone/tzdb"
)

// StepResult records the observed outcome of one step.
type StepResult struct {
	Op        string `json:"op"`
	Output    string `json:"output,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every step's expectation matched.
	Pass bool `json:"pass"`

	// Steps contains the per-step transcript in order. Used for golden
	// comparison.
	Steps []StepResult `json:"steps"`

	// Errors contains validation error messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{Pass: true}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

func errorKind(err error) string {
	switch {
	case temporal.IsRangeError(err):
		return "range"
	case temporal.IsTypeError(err):
		return "type"
	default:
		return "error"
	}
}

// Runner executes scenarios against a fixed time zone database.
type Runner struct {
	resolver *zone.Resolver
}

// NewRunner creates a runner backed by the compiled zone database.
func NewRunner() *Runner {
	return &Runner{resolver: zone.NewResolver(tzdb.New())}
}

// Run executes every step of the scenario and validates expectations.
// Step failures are recorded in the result, not returned; an error means
// the scenario itself is unusable.
func (rn *Runner) Run(s *Scenario) (*Result, error) {
	result := NewResult()
	for i, step := range s.Steps {
		out, err := rn.runStep(step)

		sr := StepResult{Op: step.Op, Output: out}
		if err != nil {
			sr.Output = ""
			sr.ErrorKind = errorKind(err)
		}
		result.Steps = append(result.Steps, sr)

		switch {
		case step.ExpectError != "" && err == nil:
			result.AddError("step %d (%s): expected %s error, got %q", i+1, step.Op, step.ExpectError, out)
		case step.ExpectError != "" && sr.ErrorKind != step.ExpectError:
			result.AddError("step %d (%s): expected %s error, got %s: %v", i+1, step.Op, step.ExpectError, sr.ErrorKind, err)
		case step.ExpectError == "" && err != nil:
			result.AddError("step %d (%s): unexpected error: %v", i+1, step.Op, err)
		case step.Expect != "" && out != step.Expect:
			result.AddError("step %d (%s): expected %q, got %q", i+1, step.Op, step.Expect, out)
		}
	}
	return result, nil
}

func (rn *Runner) runStep(step Step) (string, error) {
	switch step.Op {
	case "parse_date":
		d, err := iso.ParsePlainDate(step.Input)
		if err != nil {
			return "", err
		}
		return iso.FormatPlainDate(d), nil

	case "parse_time":
		t, err := iso.ParsePlainTime(step.Input)
		if err != nil {
			return "", err
		}
		return iso.FormatPlainTime(t, iso.PrecisionAuto), nil

	case "parse_datetime":
		dt, err := iso.ParsePlainDateTime(step.Input)
		if err != nil {
			return "", err
		}
		return iso.FormatPlainDateTime(dt, iso.PrecisionAuto), nil

	case "parse_duration":
		d, err := iso.ParseDuration(step.Input)
		if err != nil {
			return "", err
		}
		return iso.FormatDuration(d), nil

	case "zoned":
		z, err := rn.parseZoned(step, step.Input)
		if err != nil {
			return "", err
		}
		return iso.FormatZonedDateTime(z, iso.PrecisionAuto), nil

	case "add_date":
		d, err := iso.ParsePlainDate(step.Input)
		if err != nil {
			return "", err
		}
		dur, err := iso.ParseDuration(step.Duration)
		if err != nil {
			return "", err
		}
		overflow, err := parseOverflow(step.Overflow)
		if err != nil {
			return "", err
		}
		sum, err := d.Add(dur, overflow)
		if err != nil {
			return "", err
		}
		return iso.FormatPlainDate(sum), nil

	case "add_zoned":
		z, err := rn.parseZoned(step, step.Input)
		if err != nil {
			return "", err
		}
		dur, err := iso.ParseDuration(step.Duration)
		if err != nil {
			return "", err
		}
		overflow, err := parseOverflow(step.Overflow)
		if err != nil {
			return "", err
		}
		sum, err := z.Add(dur, overflow)
		if err != nil {
			return "", err
		}
		return iso.FormatZonedDateTime(sum, iso.PrecisionAuto), nil

	case "add_duration":
		a, err := iso.ParseDuration(step.Input)
		if err != nil {
			return "", err
		}
		b, err := iso.ParseDuration(step.Duration)
		if err != nil {
			return "", err
		}
		anchor, err := rn.parseAnchor(step.Relative)
		if err != nil {
			return "", err
		}
		sum, err := a.Add(b, anchor)
		if err != nil {
			return "", err
		}
		return iso.FormatDuration(sum), nil

	case "diff_datetime":
		a, err := iso.ParsePlainDateTime(step.Input)
		if err != nil {
			return "", err
		}
		b, err := iso.ParsePlainDateTime(step.Other)
		if err != nil {
			return "", err
		}
		opts, err := parseDifferenceOptions(step)
		if err != nil {
			return "", err
		}
		d, err := a.Until(b, opts)
		if err != nil {
			return "", err
		}
		return iso.FormatDuration(d), nil

	case "diff_zoned":
		a, err := rn.parseZoned(step, step.Input)
		if err != nil {
			return "", err
		}
		b, err := rn.parseZoned(step, step.Other)
		if err != nil {
			return "", err
		}
		opts, err := parseDifferenceOptions(step)
		if err != nil {
			return "", err
		}
		d, err := a.Until(b, opts)
		if err != nil {
			return "", err
		}
		return iso.FormatDuration(d), nil

	case "round_duration":
		d, err := iso.ParseDuration(step.Input)
		if err != nil {
			return "", err
		}
		smallest, err := parseUnit(step.SmallestUnit)
		if err != nil {
			return "", err
		}
		largest, err := parseUnit(step.LargestUnit)
		if err != nil {
			return "", err
		}
		mode, err := parseMode(step.Mode)
		if err != nil {
			return "", err
		}
		anchor, err := rn.parseAnchor(step.Relative)
		if err != nil {
			return "", err
		}
		rounded, err := d.Round(duration.RoundOptions{
			LargestUnit:  largest,
			SmallestUnit: smallest,
			Increment:    step.Increment,
			Mode:         mode,
			RelativeTo:   anchor,
		})
		if err != nil {
			return "", err
		}
		return iso.FormatDuration(rounded), nil

	case "round_zoned":
		z, err := rn.parseZoned(step, step.Input)
		if err != nil {
			return "", err
		}
		smallest, err := parseUnit(step.SmallestUnit)
		if err != nil {
			return "", err
		}
		mode, err := parseMode(step.Mode)
		if err != nil {
			return "", err
		}
		rounded, err := z.Round(smallest, step.Increment, mode)
		if err != nil {
			return "", err
		}
		return iso.FormatZonedDateTime(rounded, iso.PrecisionAuto), nil

	case "total":
		d, err := iso.ParseDuration(step.Input)
		if err != nil {
			return "", err
		}
		unit, err := parseUnit(step.Unit)
		if err != nil {
			return "", err
		}
		anchor, err := rn.parseAnchor(step.Relative)
		if err != nil {
			return "", err
		}
		v, err := d.Total(unit, anchor)
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(v, 'g', -1, 64), nil

	default:
		return "", temporal.NewTypeError("harness.run", "unknown op %q", step.Op)
	}
}

func (rn *Runner) parseZoned(step Step, input string) (values.ZonedDateTime, error) {
	policy := temporal.OffsetReject
	if step.Offset != "" {
		var err error
		policy, err = temporal.ParseOffsetPolicy("harness.run", step.Offset)
		if err != nil {
			return values.ZonedDateTime{}, err
		}
	}
	dis := temporal.DisambiguationCompatible
	if step.Disambiguation != "" {
		var err error
		dis, err = temporal.ParseDisambiguation("harness.run", step.Disambiguation)
		if err != nil {
			return values.ZonedDateTime{}, err
		}
	}
	return iso.ParseZonedDateTime(input, rn.resolver, policy, dis)
}

// parseAnchor turns an optional plain date into a calendar anchor for
// duration arithmetic. Empty means no anchor.
func (rn *Runner) parseAnchor(relative string) (*duration.Anchor, error) {
	if relative == "" {
		return nil, nil
	}
	d, err := iso.ParsePlainDate(relative)
	if err != nil {
		return nil, err
	}
	cal, err := calendar.Get(d.CalendarID())
	if err != nil {
		return nil, err
	}
	return duration.NewAnchor(cal, d.EpochDay(), 0), nil
}

func parseUnit(s string) (temporal.Unit, error) {
	if s == "" {
		return temporal.UnitAuto, nil
	}
	return temporal.ParseUnit("harness.run", s, false)
}

func parseMode(s string) (temporal.RoundingMode, error) {
	if s == "" {
		return temporal.RoundHalfExpand, nil
	}
	return temporal.ParseRoundingMode("harness.run", s)
}

func parseOverflow(s string) (temporal.Overflow, error) {
	if s == "" {
		return temporal.OverflowConstrain, nil
	}
	return temporal.ParseOverflow("harness.run", s)
}

func parseDifferenceOptions(step Step) (values.DifferenceOptions, error) {
	largest, err := parseUnit(step.LargestUnit)
	if err != nil {
		return values.DifferenceOptions{}, err
	}
	smallest, err := parseUnit(step.SmallestUnit)
	if err != nil {
		return values.DifferenceOptions{}, err
	}
	mode, err := parseMode(step.Mode)
	if err != nil {
		return values.DifferenceOptions{}, err
	}
	return values.DifferenceOptions{
		LargestUnit:  largest,
		SmallestUnit: smallest,
		Increment:    step.Increment,
		Mode:         mode,
	}, nil
}
