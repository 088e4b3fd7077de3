package fndatetime

import (
	"strconv"
	"strings"
	"time"
)

// Format renders t, in its own location, according to the pattern.
func (p *Pattern) Format(t time.Time) string {
	var b strings.Builder
	for _, tok := range p.tokens {
		if tok.isLiteral() {
			b.WriteString(tok.text)
			continue
		}
		formatField(&b, tok, t)
	}
	return b.String()
}

func formatField(b *strings.Builder, tok token, t time.Time) {
	switch tok.letter {
	case 'y', 'u':
		year := t.Year()
		if tok.letter == 'y' && year <= 0 {
			// year-of-era: 1 BC is year 1
			year = 1 - year
		}
		if tok.count == 2 {
			writeNumber(b, ((year%100)+100)%100, 2)
			return
		}
		// four or more letters: a year wider than the field carries its sign
		if tok.count >= 4 && year > 0 && len(strconv.Itoa(year)) > tok.count {
			b.WriteByte('+')
		}
		writeNumber(b, year, tok.count)
	case 'M', 'L':
		writeMonth(b, tok.count, t.Month())
	case 'd':
		writeNumber(b, t.Day(), tok.count)
	case 'D':
		writeNumber(b, t.YearDay(), tok.count)
	case 'E':
		name := t.Weekday().String()
		switch {
		case tok.count == 4:
			b.WriteString(name)
		case tok.count == 5:
			b.WriteString(name[:1])
		default:
			b.WriteString(name[:3])
		}
	case 'a':
		if t.Hour() < 12 {
			b.WriteString("AM")
		} else {
			b.WriteString("PM")
		}
	case 'H':
		writeNumber(b, t.Hour(), tok.count)
	case 'k':
		h := t.Hour()
		if h == 0 {
			h = 24
		}
		writeNumber(b, h, tok.count)
	case 'K':
		writeNumber(b, t.Hour()%12, tok.count)
	case 'h':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		writeNumber(b, h, tok.count)
	case 'm':
		writeNumber(b, t.Minute(), tok.count)
	case 's':
		writeNumber(b, t.Second(), tok.count)
	case 'S':
		frac := strconv.Itoa(t.Nanosecond())
		frac = strings.Repeat("0", 9-len(frac)) + frac
		b.WriteString(frac[:tok.count])
	case 'n':
		writeNumber(b, t.Nanosecond(), tok.count)
	case 'A':
		h, m, s := t.Clock()
		writeNumber(b, ((h*60+m)*60+s)*1000+t.Nanosecond()/1e6, tok.count)
	case 'V':
		b.WriteString(zoneID(t.Location()))
	case 'z':
		if tok.count == 4 {
			b.WriteString(zoneID(t.Location()))
			return
		}
		name, _ := t.Zone()
		b.WriteString(name)
	case 'Z':
		_, offset := t.Zone()
		switch tok.count {
		case 4:
			b.WriteString("GMT")
			if offset != 0 {
				writeOffset(b, offset, true, false)
			}
		case 5:
			if offset == 0 {
				b.WriteByte('Z')
				return
			}
			writeOffset(b, offset, true, false)
		default:
			writeOffset(b, offset, false, false)
		}
	case 'X', 'x':
		_, offset := t.Zone()
		if offset == 0 && tok.letter == 'X' {
			b.WriteByte('Z')
			return
		}
		switch tok.count {
		case 1:
			writeOffset(b, offset, false, true)
		case 2:
			writeOffset(b, offset, false, false)
		default:
			writeOffset(b, offset, true, false)
		}
	}
}

// writeNumber writes n zero-padded to width digits.
func writeNumber(b *strings.Builder, n, width int) {
	if n < 0 {
		b.WriteByte('-')
		n = -n
	}
	s := strconv.Itoa(n)
	for i := len(s); i < width; i++ {
		b.WriteByte('0')
	}
	b.WriteString(s)
}

func writeMonth(b *strings.Builder, count int, m time.Month) {
	switch count {
	case 1, 2:
		writeNumber(b, int(m), count)
	case 3:
		b.WriteString(m.String()[:3])
	case 4:
		b.WriteString(m.String())
	default:
		b.WriteString(m.String()[:1])
	}
}

// writeOffset writes a UTC offset as +HHMM, +HH:MM, or, when short is set,
// +HH with minutes only if they are non-zero.
func writeOffset(b *strings.Builder, offset int, colon, short bool) {
	sign := byte('+')
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	hours := offset / 3600
	minutes := (offset % 3600) / 60
	b.WriteByte(sign)
	writeNumber(b, hours, 2)
	if short && minutes == 0 {
		return
	}
	if colon {
		b.WriteByte(':')
	}
	writeNumber(b, minutes, 2)
}

func zoneID(loc *time.Location) string {
	if loc == time.UTC {
		return "UTC"
	}
	return loc.String()
}
