// Package calendar maps ISO-epoch day counts to human-meaningful calendar
// fields and back.
//
// Calendars are pluggable: every implementation satisfies the single
// Calendar interface and is reached through dynamic dispatch via the
// registry; call sites never special-case a calendar id. The ISO 8601
// calendar is the mandatory built-in and is always registered. Non-ISO
// calendars may have eras, variable month counts per year, intercalary
// months (disambiguated by monthCode), or no week concept at all.
package calendar

import (
	"sort"
	"sync"

	"github.com/tempuslib/tempus/internal/temporal"
)

// Fields is the full field set a calendar derives from an epoch day.
// Year, Month, and Day are always in the calendar's own numbering.
// MonthCode disambiguates leap/intercalary months independently of the
// numeric month. Week fields are calendar-defined and absent (HasWeek
// false) for calendars without a week concept.
type Fields struct {
	Era     string
	EraYear int
	HasEra  bool

	Year      int
	Month     int
	MonthCode string
	Day       int

	DayOfWeek  int
	DayOfYear  int
	WeekOfYear int
	YearOfWeek int
	HasWeek    bool

	DaysInWeek   int
	DaysInMonth  int
	DaysInYear   int
	MonthsInYear int
	InLeapYear   bool
}

// FieldInputs carries partially specified calendar fields into a field
// calculation. Every present field has its Has flag set; the calendar
// decides which combinations are sufficient and consistent.
type FieldInputs struct {
	Year    int
	HasYear bool

	Era     string
	EraYear int
	HasEra  bool

	Month     int
	HasMonth  bool
	MonthCode string

	Day    int
	HasDay bool
}

// DateDiff is a calendar-balanced date difference. All nonzero fields
// share one sign.
type DateDiff struct {
	Years  int64
	Months int64
	Weeks  int64
	Days   int64
}

// Calendar converts between epoch day counts and calendar fields.
//
// Conversions must round-trip: for any valid epoch day d,
// EpochDayFromFields of FieldsFromEpochDay(d) yields d again. Month
// arithmetic must be calendar-aware: AddDate lands on the monthCode
// semantics the calendar defines, never on a fixed day count.
type Calendar interface {
	// ID returns the calendar identifier, e.g. "iso8601".
	ID() string

	// FieldsFromEpochDay derives the full field set for an epoch day.
	FieldsFromEpochDay(day int64) Fields

	// EpochDayFromFields computes the epoch day for the given fields,
	// applying the overflow policy when fields are out of the calendar's
	// valid range for that year/month.
	EpochDayFromFields(in FieldInputs, overflow temporal.Overflow) (int64, error)

	// DaysInMonth returns the day count of the given month.
	DaysInMonth(year, month int) int

	// MonthsInYear returns the month count of the given year.
	MonthsInYear(year int) int

	// AddDate shifts an epoch day by a calendar-aware date duration.
	// Years and months move through the calendar's own month sequence
	// with the day-of-month constrained or rejected per overflow; weeks
	// and days are plain day shifts.
	AddDate(day int64, years, months, weeks, days int64, overflow temporal.Overflow) (int64, error)

	// DateUntil balances the difference from one epoch day to another
	// into units no larger than largestUnit (year, month, week, or day).
	DateUntil(from, to int64, largestUnit temporal.Unit) (DateDiff, error)
}

// MaxEpochDay bounds epoch days to the engine's supported instant range.
const MaxEpochDay = int64(100_000_000)

var (
	registryMu sync.RWMutex
	registry   = map[string]Calendar{isoID: ISO{}}
)

// Get returns the registered calendar for id, or a RangeError-kind error
// for an unknown identifier.
func Get(id string) (Calendar, error) {
	registryMu.RLock()
	c, ok := registry[id]
	registryMu.RUnlock()
	if !ok {
		return nil, temporal.NewRangeError("calendar.Get", "unknown calendar %q", id)
	}
	return c, nil
}

// Register adds a calendar to the registry. Re-registering an existing id
// (including the built-in ISO calendar) is rejected.
func Register(c Calendar) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[c.ID()]; exists {
		return temporal.NewRangeError("calendar.Register", "calendar %q already registered", c.ID())
	}
	registry[c.ID()] = c
	return nil
}

// IDs returns the registered calendar identifiers, sorted.
func IDs() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
