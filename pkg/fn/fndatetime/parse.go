package fndatetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandrolain/gomodifier/pkg/types"
)

// Parse reads value according to the pattern and returns the wall-clock
// date-time it describes in loc. Zone and offset fields are consumed but do
// not influence the result.
//
// A year and either month plus day-of-month or day-of-year are required;
// missing time fields default to midnight.
func (p *Pattern) Parse(value string, loc *time.Location) (time.Time, error) {
	f := parsedFields{value: value, vals: make(map[rune]int)}
	pos := 0
	for i, tok := range p.tokens {
		if tok.isLiteral() {
			if !strings.HasPrefix(value[pos:], tok.text) {
				return time.Time{}, parseError(value, pos, nil)
			}
			pos += len(tok.text)
			continue
		}

		var err error
		if tok.isNumeric() {
			pos, err = f.parseNumber(p.tokens[i+1:], tok, pos)
		} else {
			pos, err = f.parseText(tok, pos)
		}
		if err != nil {
			return time.Time{}, err
		}
	}
	if pos != len(value) {
		return time.Time{}, types.NewError(types.ErrDateParse,
			fmt.Sprintf("text %q could not be parsed, unparsed text found at index %d", value, pos), -1)
	}
	return f.resolve(loc)
}

// parsedFields collects raw field values keyed by a canonical letter:
// 'y' year, 'M' month, 'd' day, 'D' day-of-year, 'H' hour-of-day, 'k'
// clock-hour-of-day, 'h' hour-of-am-pm (0-11), 'a' am/pm, 'm' minute,
// 's' second, 'n' nano-of-second, 'E' weekday.
type parsedFields struct {
	value string
	vals  map[rune]int
}

func (f *parsedFields) set(key rune, v, pos int) error {
	if prev, ok := f.vals[key]; ok && prev != v {
		return parseError(f.value, pos, fmt.Errorf("%w: %q is %d and %d", errFieldConflict, key, prev, v))
	}
	f.vals[key] = v
	return nil
}

func (f *parsedFields) parseNumber(following []token, tok token, pos int) (int, error) {
	lo, hi := tok.width()
	run := digitRun(f.value, pos)
	if !tok.fixedWidth() {
		// leave room for adjacent fixed-width numeric fields, as in yyyyMMdd
		reserved := 0
		for _, next := range following {
			if !next.fixedWidth() {
				break
			}
			w, _ := next.width()
			reserved += w
		}
		if reserved > 0 && run-reserved < hi {
			hi = run - reserved
		}
	}
	n := min(run, hi)
	if n < lo {
		return pos, parseError(f.value, pos, nil)
	}
	v, err := strconv.Atoi(f.value[pos : pos+n])
	if err != nil {
		return pos, parseError(f.value, pos, err)
	}

	switch tok.letter {
	case 'y', 'u':
		if tok.count == 2 {
			v += 2000
		}
		err = f.set('y', v, pos)
	case 'M', 'L':
		err = f.set('M', v, pos)
	case 'd', 'D', 'H', 'k', 'm', 's':
		err = f.set(tok.letter, v, pos)
	case 'h':
		if v < 1 || v > 12 {
			return pos, parseError(f.value, pos, fmt.Errorf("%w: clock hour %d", errFieldRange, v))
		}
		err = f.set('h', v%12, pos)
	case 'K':
		if v > 11 {
			return pos, parseError(f.value, pos, fmt.Errorf("%w: hour of am/pm %d", errFieldRange, v))
		}
		err = f.set('h', v, pos)
	case 'S':
		for i := n; i < 9; i++ {
			v *= 10
		}
		err = f.set('n', v, pos)
	case 'n':
		err = f.set('n', v, pos)
	default:
		return pos, parseError(f.value, pos, fmt.Errorf("%w: %q", errNotParseable, tok.letter))
	}
	if err != nil {
		return pos, err
	}
	return pos + n, nil
}

func (f *parsedFields) parseText(tok token, pos int) (int, error) {
	rest := f.value[pos:]
	switch tok.letter {
	case 'M', 'L':
		if tok.count > 4 {
			return pos, parseError(f.value, pos, fmt.Errorf("%w: narrow month", errNotParseable))
		}
		for m := time.January; m <= time.December; m++ {
			name := m.String()
			if tok.count == 3 {
				name = name[:3]
			}
			if strings.HasPrefix(rest, name) {
				return pos + len(name), f.set('M', int(m), pos)
			}
		}
	case 'E':
		if tok.count > 4 {
			return pos, parseError(f.value, pos, fmt.Errorf("%w: narrow day name", errNotParseable))
		}
		for d := time.Sunday; d <= time.Saturday; d++ {
			name := d.String()
			if tok.count < 4 {
				name = name[:3]
			}
			if strings.HasPrefix(rest, name) {
				return pos + len(name), f.set('E', int(d), pos)
			}
		}
	case 'a':
		switch {
		case strings.HasPrefix(rest, "AM"):
			return pos + 2, f.set('a', 0, pos)
		case strings.HasPrefix(rest, "PM"):
			return pos + 2, f.set('a', 1, pos)
		}
	case 'V', 'z':
		n := 0
		for n < len(rest) && isZoneChar(rest[n]) {
			n++
		}
		if n > 0 {
			return pos + n, nil
		}
	case 'Z', 'X', 'x':
		if end, ok := consumeOffset(f.value, pos); ok {
			return end, nil
		}
	}
	return pos, parseError(f.value, pos, nil)
}

func (f *parsedFields) resolve(loc *time.Location) (time.Time, error) {
	fail := func(cause error) (time.Time, error) {
		return time.Time{}, types.NewError(types.ErrDateParse,
			fmt.Sprintf("text %q could not be parsed", f.value), -1).WithCause(cause)
	}

	year, ok := f.vals['y']
	if !ok {
		return fail(fmt.Errorf("%w: year", errMissingField))
	}

	var month time.Month
	var day int
	if m, ok := f.vals['M']; ok {
		d, ok := f.vals['d']
		if !ok {
			return fail(fmt.Errorf("%w: day of month", errMissingField))
		}
		if m < 1 || m > 12 {
			return fail(fmt.Errorf("%w: month %d", errFieldRange, m))
		}
		if d < 1 || d > 31 {
			return fail(fmt.Errorf("%w: day of month %d", errFieldRange, d))
		}
		// days past the end of a short month clamp to its last day
		if last := daysIn(time.Month(m), year); d > last {
			d = last
		}
		month, day = time.Month(m), d
		if doy, ok := f.vals['D']; ok && doy != time.Date(year, month, day, 0, 0, 0, 0, time.UTC).YearDay() {
			return fail(fmt.Errorf("%w: day of year %d", errFieldConflict, doy))
		}
	} else if doy, ok := f.vals['D']; ok {
		if doy < 1 || doy > time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay() {
			return fail(fmt.Errorf("%w: day of year %d", errFieldRange, doy))
		}
		first := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, doy-1)
		month, day = first.Month(), first.Day()
	} else {
		return fail(fmt.Errorf("%w: month", errMissingField))
	}

	hour := -1
	if h, ok := f.vals['H']; ok {
		if h > 23 {
			return fail(fmt.Errorf("%w: hour %d", errFieldRange, h))
		}
		hour = h
	}
	if k, ok := f.vals['k']; ok {
		if k < 1 || k > 24 {
			return fail(fmt.Errorf("%w: clock hour %d", errFieldRange, k))
		}
		if hour >= 0 && hour != k%24 {
			return fail(fmt.Errorf("%w: hour", errFieldConflict))
		}
		hour = k % 24
	}
	ampm, hasAmPm := f.vals['a']
	if h12, ok := f.vals['h']; ok {
		if !hasAmPm {
			return fail(fmt.Errorf("%w: am/pm marker for 12-hour clock", errMissingField))
		}
		if hour >= 0 && hour != h12+12*ampm {
			return fail(fmt.Errorf("%w: hour", errFieldConflict))
		}
		hour = h12 + 12*ampm
	} else if hasAmPm && hour >= 0 && hour/12 != ampm {
		return fail(fmt.Errorf("%w: am/pm", errFieldConflict))
	}
	if hour < 0 {
		hour = 0
	}

	minute := f.vals['m']
	if minute > 59 {
		return fail(fmt.Errorf("%w: minute %d", errFieldRange, minute))
	}
	second := f.vals['s']
	if second > 59 {
		return fail(fmt.Errorf("%w: second %d", errFieldRange, second))
	}

	t := zonedDate(year, month, day, hour, minute, second, f.vals['n'], loc)
	if wd, ok := f.vals['E']; ok && time.Weekday(wd) != t.Weekday() {
		return fail(fmt.Errorf("%w: %s is not a %s", errFieldConflict, t.Format("2006-01-02"), time.Weekday(wd)))
	}
	return t, nil
}

func parseError(value string, pos int, cause error) *types.Error {
	e := types.NewError(types.ErrDateParse, fmt.Sprintf("text %q could not be parsed at index %d", value, pos), -1)
	if cause != nil {
		e = e.WithCause(cause)
	}
	return e
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func digitRun(s string, pos int) int {
	n := 0
	for pos+n < len(s) && s[pos+n] >= '0' && s[pos+n] <= '9' {
		n++
	}
	return n
}

func isZoneChar(c byte) bool {
	return isASCIILetter(rune(c)) || (c >= '0' && c <= '9') || strings.IndexByte("/_+-:", c) >= 0
}

// consumeOffset skips a UTC offset such as Z, +05, +0530, +05:30 or GMT+05:30.
func consumeOffset(s string, pos int) (int, bool) {
	rest := s[pos:]
	for _, prefix := range []string{"GMT", "UTC", "UT"} {
		if strings.HasPrefix(rest, prefix) {
			pos += len(prefix)
			rest = rest[len(prefix):]
			if rest == "" || (rest[0] != '+' && rest[0] != '-') {
				return pos, true
			}
			break
		}
	}
	if strings.HasPrefix(rest, "Z") {
		return pos + 1, true
	}
	if rest == "" || (rest[0] != '+' && rest[0] != '-') {
		return pos, false
	}
	pos++
	n := min(digitRun(s, pos), 4)
	if n == 0 {
		return pos, false
	}
	pos += n
	if n == 2 && pos < len(s) && s[pos] == ':' && digitRun(s, pos+1) >= 2 {
		pos += 3
	}
	return pos, true
}
