package fndatetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandrolain/gomodifier/pkg/cache"
	"github.com/sandrolain/gomodifier/pkg/types"
)

const maxOffsetSeconds = 18 * 3600

var zones = cache.New[*time.Location](cache.DefaultCapacity)

// ResolveZone returns the location named by name: "UTC", "GMT", "Z", a fixed
// offset such as "+05:30", "-0800" or "UTC+01", or an IANA identifier such as
// "Europe/Rome". Blank names resolve to UTC. "Local" is rejected.
func ResolveZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC, nil
	}
	return zones.GetOrCreate(name, func() (*time.Location, error) {
		return resolveZone(name)
	})
}

func resolveZone(name string) (*time.Location, error) {
	switch strings.ToUpper(name) {
	case "UTC", "GMT", "Z", "UT":
		return time.UTC, nil
	case "LOCAL":
		return nil, zoneError(name, errLocalZone)
	}

	rest := name
	for _, prefix := range []string{"UTC", "GMT", "UT"} {
		if strings.HasPrefix(rest, prefix) && len(rest) > len(prefix) && isSign(rest[len(prefix)]) {
			rest = rest[len(prefix):]
			break
		}
	}
	if isSign(rest[0]) {
		offset, err := parseOffset(rest)
		if err != nil {
			return nil, zoneError(name, err)
		}
		if offset == 0 {
			return time.UTC, nil
		}
		return time.FixedZone(name, offset), nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, zoneError(name, err)
	}
	return loc, nil
}

// parseOffset reads ±H, ±HH, ±HHMM, ±HH:MM, ±HHMMSS or ±HH:MM:SS.
func parseOffset(s string) (int, error) {
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	body := s[1:]
	var parts []string
	if strings.Contains(body, ":") {
		parts = strings.Split(body, ":")
	} else {
		switch len(body) {
		case 1, 2:
			parts = []string{body}
		case 4:
			parts = []string{body[:2], body[2:]}
		case 6:
			parts = []string{body[:2], body[2:4], body[4:]}
		default:
			return 0, errInvalidOffset
		}
	}
	if len(parts) > 3 {
		return 0, errInvalidOffset
	}

	limits := []int{18, 59, 59}
	seconds := 0
	for i, part := range parts {
		if part == "" || len(part) > 2 || (i > 0 && len(part) != 2) {
			return 0, errInvalidOffset
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > limits[i] {
			return 0, errInvalidOffset
		}
		seconds = seconds*60 + n
	}
	for i := len(parts); i < 3; i++ {
		seconds *= 60
	}
	if seconds > maxOffsetSeconds {
		return 0, errInvalidOffset
	}
	return sign * seconds, nil
}

func isSign(c byte) bool {
	return c == '+' || c == '-'
}

func zoneError(name string, cause error) *types.Error {
	return types.NewError(types.ErrUnknownTimezone, fmt.Sprintf("unknown time zone %q", name), -1).WithCause(cause)
}

// zonedDate is time.Date with a fixed rule for wall-clock times that do not
// exist in loc: a time inside a gap moves forward by the length of the gap,
// keeping the offset in force before the transition. Times inside an overlap
// keep the earlier offset.
func zonedDate(year int, month time.Month, day, hour, minute, second, nsec int, loc *time.Location) time.Time {
	t := time.Date(year, month, day, hour, minute, second, nsec, loc)
	if t.Day() == day && t.Hour() == hour && t.Minute() == minute {
		return t
	}

	_, off := t.Zone()
	start, end := t.ZoneBounds()
	var edge time.Time
	switch {
	case start.IsZero() && end.IsZero():
		return t
	case end.IsZero():
		edge = start.Add(-time.Nanosecond)
	case start.IsZero():
		edge = end
	case t.Sub(start) < end.Sub(t):
		edge = start.Add(-time.Nanosecond)
	default:
		edge = end
	}
	if _, other := edge.In(loc).Zone(); other < off {
		off = other
	}
	wall := time.Date(year, month, day, hour, minute, second, nsec, time.UTC)
	return wall.Add(-time.Duration(off) * time.Second).In(loc)
}
