package iso

import (
	"math/big"
	"strings"

	"github.com/tempuslib/tempus/internal/calendar"
	"github.com/tempuslib/tempus/internal/exact"
	"github.com/tempuslib/tempus/internal/temporal"
	"github.com/tempuslib/tempus/internal/values"
	"github.com/tempuslib/tempus/internal/zone"
)

// components is the result of scanning a composite date-time string.
type components struct {
	year   int
	month  int
	day    int
	hasDay bool

	timeNs  int64
	hasTime bool

	offsetSec        int
	hasOffset        bool
	utcDesignator    bool
	offsetHasSeconds bool

	zoneID string

	calendarID string
}

type scanner struct {
	op  string
	s   string
	pos int
}

func (sc *scanner) err(format string, args ...any) error {
	return temporal.NewRangeError(sc.op, format, args...)
}

func (sc *scanner) eof() bool { return sc.pos >= len(sc.s) }

func (sc *scanner) peek() byte {
	if sc.eof() {
		return 0
	}
	return sc.s[sc.pos]
}

func (sc *scanner) take(c byte) bool {
	if sc.peek() == c {
		sc.pos++
		return true
	}
	return false
}

func (sc *scanner) digits(n int) (int, error) {
	if sc.pos+n > len(sc.s) {
		return 0, sc.err("unexpected end of input in %q", sc.s)
	}
	v := 0
	for i := 0; i < n; i++ {
		c := sc.s[sc.pos+i]
		if c < '0' || c > '9' {
			return 0, sc.err("expected digit at position %d in %q", sc.pos+i, sc.s)
		}
		v = v*10 + int(c-'0')
	}
	sc.pos += n
	return v, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// scanYear reads a 4-digit year or a sign followed by exactly 6 digits.
func (sc *scanner) scanYear() (int, error) {
	if sc.peek() == '+' || sc.peek() == '-' {
		neg := sc.s[sc.pos] == '-'
		sc.pos++
		y, err := sc.digits(6)
		if err != nil {
			return 0, err
		}
		if neg && y == 0 {
			return 0, sc.err("negative zero year in %q", sc.s)
		}
		if neg {
			y = -y
		}
		return y, nil
	}
	return sc.digits(4)
}

func (sc *scanner) scanDate(c *components) error {
	y, err := sc.scanYear()
	if err != nil {
		return err
	}
	if !sc.take('-') {
		return sc.err("expected - after year in %q", sc.s)
	}
	m, err := sc.digits(2)
	if err != nil {
		return err
	}
	c.year, c.month = y, m

	// The day is optional so year-month strings share this path.
	if sc.peek() == '-' && sc.pos+2 < len(sc.s) && isDigit(sc.s[sc.pos+1]) {
		sc.pos++
		d, err := sc.digits(2)
		if err != nil {
			return err
		}
		c.day, c.hasDay = d, true
	}
	return nil
}

// scanFraction reads '.' or ',' plus 1..9 fractional digits, returning
// nanoseconds.
func (sc *scanner) scanFraction() (int64, error) {
	start := sc.pos
	for !sc.eof() && isDigit(sc.s[sc.pos]) {
		sc.pos++
	}
	n := sc.pos - start
	if n == 0 {
		return 0, sc.err("expected fractional digits in %q", sc.s)
	}
	if n > 9 {
		return 0, sc.err("more than 9 fractional digits in %q", sc.s)
	}
	var ns int64
	for i := 0; i < 9; i++ {
		ns *= 10
		if i < n {
			ns += int64(sc.s[start+i] - '0')
		}
	}
	return ns, nil
}

func (sc *scanner) scanTime(c *components) error {
	h, err := sc.digits(2)
	if err != nil {
		return err
	}
	if h > 23 {
		return sc.err("hour %d is out of range in %q", h, sc.s)
	}
	ns := int64(h) * 3_600_000_000_000
	if sc.take(':') {
		m, err := sc.digits(2)
		if err != nil {
			return err
		}
		if m > 59 {
			return sc.err("minute %d is out of range in %q", m, sc.s)
		}
		ns += int64(m) * 60_000_000_000
		if sc.take(':') {
			s, err := sc.digits(2)
			if err != nil {
				return err
			}
			if s > 59 {
				return sc.err("second %d is out of range in %q", s, sc.s)
			}
			ns += int64(s) * 1_000_000_000
			if sc.take('.') || sc.take(',') {
				frac, err := sc.scanFraction()
				if err != nil {
					return err
				}
				ns += frac
			}
		}
	}
	c.timeNs, c.hasTime = ns, true
	return nil
}

func (sc *scanner) scanOffset(c *components) error {
	if sc.take('Z') || sc.take('z') {
		c.utcDesignator, c.hasOffset = true, true
		return nil
	}
	neg := sc.peek() == '-'
	sc.pos++
	h, err := sc.digits(2)
	if err != nil {
		return err
	}
	if h > 23 {
		return sc.err("offset hour %d is out of range in %q", h, sc.s)
	}
	sec := h * 3600
	if sc.take(':') {
		m, err := sc.digits(2)
		if err != nil {
			return err
		}
		if m > 59 {
			return sc.err("offset minute %d is out of range in %q", m, sc.s)
		}
		sec += m * 60
		if sc.take(':') {
			s, err := sc.digits(2)
			if err != nil {
				return err
			}
			if s > 59 {
				return sc.err("offset second %d is out of range in %q", s, sc.s)
			}
			if s != 0 {
				c.offsetHasSeconds = true
			}
			sec += s
		}
	}
	if neg {
		sec = -sec
	}
	c.offsetSec, c.hasOffset = sec, true
	return nil
}

// scanAnnotations reads the bracketed RFC 9557 suffix. A bare bracket is
// the time zone and must come first; key=value annotations follow.
// Unknown keys are ignored unless critical-flagged.
func (sc *scanner) scanAnnotations(c *components) error {
	first := true
	for sc.take('[') {
		critical := sc.take('!')
		end := strings.IndexByte(sc.s[sc.pos:], ']')
		if end < 0 {
			return sc.err("unterminated annotation in %q", sc.s)
		}
		body := sc.s[sc.pos : sc.pos+end]
		sc.pos += end + 1
		if body == "" {
			return sc.err("empty annotation in %q", sc.s)
		}

		eq := strings.IndexByte(body, '=')
		if eq < 0 {
			if !first {
				return sc.err("time zone annotation must come first in %q", sc.s)
			}
			if c.zoneID != "" {
				return sc.err("duplicate time zone annotation in %q", sc.s)
			}
			c.zoneID = body
			first = false
			continue
		}
		key, value := body[:eq], body[eq+1:]
		switch key {
		case "u-ca":
			if c.calendarID != "" {
				return sc.err("duplicate u-ca annotation in %q", sc.s)
			}
			if value == "" {
				return sc.err("empty u-ca annotation in %q", sc.s)
			}
			c.calendarID = value
		default:
			if critical {
				return sc.err("unsupported critical annotation %q in %q", key, sc.s)
			}
		}
		first = false
	}
	return nil
}

// scanComposite parses [date][Ttime][offset][annotations] and demands the
// whole input is consumed.
func (sc *scanner) scanComposite() (components, error) {
	var c components
	if err := sc.scanDate(&c); err != nil {
		return components{}, err
	}
	if sc.take('T') || sc.take('t') || sc.take(' ') {
		if err := sc.scanTime(&c); err != nil {
			return components{}, err
		}
		if p := sc.peek(); p == 'Z' || p == 'z' || p == '+' || p == '-' {
			if err := sc.scanOffset(&c); err != nil {
				return components{}, err
			}
		}
	}
	if err := sc.scanAnnotations(&c); err != nil {
		return components{}, err
	}
	if !sc.eof() {
		return components{}, sc.err("unexpected trailing input at position %d in %q", sc.pos, sc.s)
	}
	return c, nil
}

func (c components) calendarOrISO() string {
	if c.calendarID == "" {
		return "iso8601"
	}
	return c.calendarID
}

// datePart builds the ISO date named by the components, rejecting
// impossible ones.
func (c components) datePart(op string) (values.PlainDate, error) {
	if !c.hasDay {
		return values.PlainDate{}, temporal.NewRangeError(op, "missing day of month")
	}
	d, err := values.NewPlainDate("iso8601", c.year, c.month, c.day, temporal.OverflowReject)
	if err != nil {
		return values.PlainDate{}, err
	}
	return d.WithCalendar(c.calendarOrISO())
}

// ParsePlainDate parses a date string, tolerating and validating any
// trailing time and offset portion.
func ParsePlainDate(s string) (values.PlainDate, error) {
	const op = "iso.ParsePlainDate"
	sc := &scanner{op: op, s: s}
	c, err := sc.scanComposite()
	if err != nil {
		return values.PlainDate{}, err
	}
	if c.utcDesignator {
		return values.PlainDate{}, temporal.NewRangeError(op,
			"a UTC designator is not valid for a plain date: %q", s)
	}
	return c.datePart(op)
}

// ParsePlainTime parses a wall-clock time, with or without the T prefix.
func ParsePlainTime(s string) (values.PlainTime, error) {
	const op = "iso.ParsePlainTime"
	sc := &scanner{op: op, s: s}

	var c components
	if sc.take('T') || sc.take('t') {
		if err := sc.scanTime(&c); err != nil {
			return values.PlainTime{}, err
		}
	} else if len(s) >= 3 && isDigit(s[0]) && isDigit(s[1]) && s[2] == ':' {
		if err := sc.scanTime(&c); err != nil {
			return values.PlainTime{}, err
		}
	} else {
		// A composite string; use its time portion.
		cc, err := sc.scanComposite()
		if err != nil {
			return values.PlainTime{}, err
		}
		if !cc.hasTime {
			return values.PlainTime{}, temporal.NewRangeError(op, "no time portion in %q", s)
		}
		if cc.utcDesignator {
			return values.PlainTime{}, temporal.NewRangeError(op,
				"a UTC designator is not valid for a plain time: %q", s)
		}
		return values.TimeFromNanosecondOfDay(cc.timeNs)
	}

	// An offset after a bare time is tolerated and ignored.
	if p := sc.peek(); p == '+' || p == '-' {
		if err := sc.scanOffset(&c); err != nil {
			return values.PlainTime{}, err
		}
	} else if p == 'Z' || p == 'z' {
		return values.PlainTime{}, temporal.NewRangeError(op,
			"a UTC designator is not valid for a plain time: %q", s)
	}
	if err := sc.scanAnnotations(&c); err != nil {
		return values.PlainTime{}, err
	}
	if !sc.eof() {
		return values.PlainTime{}, sc.err("unexpected trailing input at position %d in %q", sc.pos, s)
	}
	return values.TimeFromNanosecondOfDay(c.timeNs)
}

// ParsePlainDateTime parses a date-time; a date alone means midnight.
func ParsePlainDateTime(s string) (values.PlainDateTime, error) {
	const op = "iso.ParsePlainDateTime"
	sc := &scanner{op: op, s: s}
	c, err := sc.scanComposite()
	if err != nil {
		return values.PlainDateTime{}, err
	}
	if c.utcDesignator {
		return values.PlainDateTime{}, temporal.NewRangeError(op,
			"a UTC designator is not valid for a plain date-time: %q", s)
	}
	d, err := c.datePart(op)
	if err != nil {
		return values.PlainDateTime{}, err
	}
	t, err := values.TimeFromNanosecondOfDay(c.timeNs)
	if err != nil {
		return values.PlainDateTime{}, err
	}
	return d.ToPlainDateTime(t), nil
}

// ParsePlainYearMonth parses a year-month or full date string.
func ParsePlainYearMonth(s string) (values.PlainYearMonth, error) {
	const op = "iso.ParsePlainYearMonth"
	sc := &scanner{op: op, s: s}
	c, err := sc.scanComposite()
	if err != nil {
		return values.PlainYearMonth{}, err
	}
	if c.utcDesignator {
		return values.PlainYearMonth{}, temporal.NewRangeError(op,
			"a UTC designator is not valid for a year-month: %q", s)
	}
	return values.NewPlainYearMonth(c.calendarOrISO(), c.year, c.month, temporal.OverflowReject)
}

// ParsePlainMonthDay parses MM-DD, --MM-DD, or a full date string.
func ParsePlainMonthDay(s string) (values.PlainMonthDay, error) {
	const op = "iso.ParsePlainMonthDay"

	body := strings.TrimPrefix(s, "--")
	if len(body) >= 5 && isDigit(body[0]) && isDigit(body[1]) && body[2] == '-' {
		sc := &scanner{op: op, s: body}
		m, err := sc.digits(2)
		if err != nil {
			return values.PlainMonthDay{}, err
		}
		sc.pos++ // separator
		d, err := sc.digits(2)
		if err != nil {
			return values.PlainMonthDay{}, err
		}
		var c components
		if err := sc.scanAnnotations(&c); err != nil {
			return values.PlainMonthDay{}, err
		}
		if !sc.eof() {
			return values.PlainMonthDay{}, sc.err("unexpected trailing input at position %d in %q", sc.pos, body)
		}
		return values.NewPlainMonthDay(c.calendarOrISO(), m, d, temporal.OverflowReject)
	}

	sc := &scanner{op: op, s: s}
	c, err := sc.scanComposite()
	if err != nil {
		return values.PlainMonthDay{}, err
	}
	if !c.hasDay {
		return values.PlainMonthDay{}, temporal.NewRangeError(op, "missing day of month in %q", s)
	}
	d, err := c.datePart(op)
	if err != nil {
		return values.PlainMonthDay{}, err
	}
	return d.ToPlainMonthDay()
}

// wallOf returns the epoch day and nanosecond of day named by the ISO
// date and time fields.
func (c components) wallOf(op string) (int64, int64, error) {
	epochDay, err := calendar.ISO{}.EpochDayFromFields(calendar.FieldInputs{
		Year: c.year, HasYear: true,
		Month: c.month, HasMonth: true,
		Day: c.day, HasDay: true,
	}, temporal.OverflowReject)
	if err != nil {
		return 0, 0, err
	}
	return epochDay, c.timeNs, nil
}

// ParseInstant parses a date-time with a required offset or UTC
// designator into an exact time.
func ParseInstant(s string) (exact.Time, error) {
	const op = "iso.ParseInstant"
	sc := &scanner{op: op, s: s}
	c, err := sc.scanComposite()
	if err != nil {
		return exact.Time{}, err
	}
	if !c.hasTime || !c.hasOffset {
		return exact.Time{}, temporal.NewRangeError(op,
			"an instant requires a time and a UTC offset: %q", s)
	}
	if !c.hasDay {
		return exact.Time{}, temporal.NewRangeError(op, "missing day of month in %q", s)
	}
	epochDay, timeNs, err := c.wallOf(op)
	if err != nil {
		return exact.Time{}, err
	}
	offset := c.offsetSec
	if c.utcDesignator {
		offset = 0
	}
	pos := new(big.Int).SetInt64(epochDay)
	pos.Mul(pos, big.NewInt(temporal.NanosPerDay))
	pos.Add(pos, big.NewInt(timeNs))
	pos.Sub(pos, big.NewInt(int64(offset)*1_000_000_000))
	return exact.FromEpochNanoseconds(pos)
}

// ParseZonedDateTime parses a date-time carrying a bracketed zone
// identifier and resolves it. An explicit offset participates per the
// offset policy; a UTC designator fixes the instant directly.
func ParseZonedDateTime(s string, r *zone.Resolver, policy temporal.OffsetPolicy, dis temporal.Disambiguation) (values.ZonedDateTime, error) {
	const op = "iso.ParseZonedDateTime"
	sc := &scanner{op: op, s: s}
	c, err := sc.scanComposite()
	if err != nil {
		return values.ZonedDateTime{}, err
	}
	if c.zoneID == "" {
		return values.ZonedDateTime{}, temporal.NewRangeError(op,
			"a zoned date-time requires a bracketed zone identifier: %q", s)
	}
	if !c.hasDay {
		return values.ZonedDateTime{}, temporal.NewRangeError(op, "missing day of month in %q", s)
	}
	if c.offsetHasSeconds {
		return values.ZonedDateTime{}, temporal.NewRangeError(op,
			"sub-minute offsets are not valid with a zone identifier: %q", s)
	}
	epochDay, timeNs, err := c.wallOf(op)
	if err != nil {
		return values.ZonedDateTime{}, err
	}

	var t exact.Time
	switch {
	case c.utcDesignator:
		pos := new(big.Int).SetInt64(epochDay)
		pos.Mul(pos, big.NewInt(temporal.NanosPerDay))
		pos.Add(pos, big.NewInt(timeNs))
		t, err = exact.FromEpochNanoseconds(pos)
	case c.hasOffset:
		t, err = r.ExactForWithOffset(c.zoneID, epochDay, timeNs, c.offsetSec, policy, dis)
	default:
		t, _, err = r.ExactFor(c.zoneID, epochDay, timeNs, dis)
	}
	if err != nil {
		return values.ZonedDateTime{}, err
	}
	return values.NewZonedDateTime(r, c.calendarOrISO(), c.zoneID, t)
}
