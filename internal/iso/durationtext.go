package iso

import (
	"github.com/tempuslib/tempus/internal/duration"
)

// integer reads a run of decimal digits. ok is false when no digit is
// present at the cursor.
func (sc *scanner) integer() (v int64, ok bool, err error) {
	start := sc.pos
	for !sc.eof() && isDigit(sc.s[sc.pos]) {
		sc.pos++
	}
	n := sc.pos - start
	if n == 0 {
		return 0, false, nil
	}
	if n > 18 {
		return 0, false, sc.err("number too large in %q", sc.s)
	}
	for i := start; i < sc.pos; i++ {
		v = v*10 + int64(sc.s[i]-'0')
	}
	return v, true, nil
}

// ParseDuration parses ISO 8601 duration text. Components must appear in
// canonical order, each at most once. A fraction is permitted on the
// hours, minutes, or seconds component, but only on the last component
// present; hour and minute fractions lower exactly into the smaller
// fields, so PT0.5H parses as 30 minutes.
func ParseDuration(s string) (duration.Duration, error) {
	const op = "iso.ParseDuration"
	sc := &scanner{op: op, s: s}

	sign := int64(1)
	if sc.take('-') {
		sign = -1
	} else {
		sc.take('+')
	}
	if !sc.take('P') && !sc.take('p') {
		return duration.Duration{}, sc.err("expected P designator in %q", s)
	}

	var f duration.Fields
	sawAny := false

	datePart := []struct {
		designator byte
		field      *int64
	}{
		{'Y', &f.Years},
		{'M', &f.Months},
		{'W', &f.Weeks},
		{'D', &f.Days},
	}
	for _, p := range datePart {
		save := sc.pos
		v, ok, err := sc.integer()
		if err != nil {
			return duration.Duration{}, err
		}
		if !ok {
			continue
		}
		if !sc.take(p.designator) && !sc.take(p.designator+'a'-'A') {
			sc.pos = save
			continue
		}
		*p.field = sign * v
		sawAny = true
	}

	if sc.take('T') || sc.take('t') {
		sawTimeComponent := false
		fractional := false

		// spread lowers a sub-unit nanosecond total into the fields below
		// the fractional component.
		spread := func(totalNs int64) {
			f.Minutes += sign * (totalNs / 60_000_000_000)
			totalNs %= 60_000_000_000
			f.Seconds += sign * (totalNs / 1_000_000_000)
			totalNs %= 1_000_000_000
			f.Milliseconds += sign * (totalNs / 1_000_000)
			f.Microseconds += sign * (totalNs / 1_000 % 1_000)
			f.Nanoseconds += sign * (totalNs % 1_000)
		}

		timePart := []struct {
			designator byte
			field      *int64
			fracScale  int64 // nanoseconds per second of fraction
		}{
			{'H', &f.Hours, 3600},
			{'M', &f.Minutes, 60},
		}
		for _, p := range timePart {
			save := sc.pos
			v, ok, err := sc.integer()
			if err != nil {
				return duration.Duration{}, err
			}
			if !ok {
				continue
			}
			fracNs := int64(-1)
			if sc.take('.') || sc.take(',') {
				fracNs, err = sc.scanFraction()
				if err != nil {
					return duration.Duration{}, err
				}
			}
			if !sc.take(p.designator) && !sc.take(p.designator+'a'-'A') {
				// Not this component; a seen fraction belongs to a later
				// designator, so rewind past it too.
				sc.pos = save
				continue
			}
			*p.field += sign * v
			if fracNs >= 0 {
				spread(fracNs * p.fracScale)
				fractional = true
			}
			sawTimeComponent = true
			if fractional {
				break
			}
		}

		if !fractional {
			v, ok, err := sc.integer()
			if err != nil {
				return duration.Duration{}, err
			}
			if ok {
				var fracNs int64
				if sc.take('.') || sc.take(',') {
					fracNs, err = sc.scanFraction()
					if err != nil {
						return duration.Duration{}, err
					}
				}
				if !sc.take('S') && !sc.take('s') {
					return duration.Duration{}, sc.err("expected S designator in %q", s)
				}
				f.Seconds = sign * v
				f.Milliseconds = sign * (fracNs / 1_000_000)
				f.Microseconds = sign * (fracNs / 1_000 % 1_000)
				f.Nanoseconds = sign * (fracNs % 1_000)
				sawTimeComponent = true
			}
		}

		if !sawTimeComponent {
			return duration.Duration{}, sc.err("empty time part in %q", s)
		}
		sawAny = true
	}

	if !sawAny {
		return duration.Duration{}, sc.err("duration has no components: %q", s)
	}
	if !sc.eof() {
		return duration.Duration{}, sc.err("unexpected trailing input at position %d in %q", sc.pos, s)
	}
	return duration.FromFields(f)
}
