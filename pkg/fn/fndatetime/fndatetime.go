// Package fndatetime provides the transformDate function together with the
// date/time pattern engine behind it.
//
// Patterns use the familiar letter syntax ("yyyy-MM-dd'T'HH:mm:ss.SSSXXX").
// Besides a pattern the input side accepts EPOCH_MILLI, EPOCH_SECOND and
// AUTO, the last one guessing among common layouts.
//
// Failures inside transformDate are reported in-band: the result is a
// present string starting with ErrorPrefix. Go callers that need a real error
// should use Transform.
package fndatetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oarkflow/date"

	"github.com/sandrolain/gomodifier/pkg/fn/fnutil"
	"github.com/sandrolain/gomodifier/pkg/functions"
	"github.com/sandrolain/gomodifier/pkg/types"
)

// Special input patterns.
const (
	EpochMilli  = "EPOCH_MILLI"
	EpochSecond = "EPOCH_SECOND"
	Auto        = "AUTO"
)

// ErrorPrefix starts every transformDate result that reports a failure.
const ErrorPrefix = "ERROR: "

// Epoch seconds accepted by EPOCH_SECOND: -1000000000-01-01T00:00:00Z to
// 1000000000-12-31T23:59:59Z.
const (
	minEpochSecond = -31557014167219200
	maxEpochSecond = 31556889864403199
)

// Years a formatted date may carry.
const (
	minYear = -999999999
	maxYear = 999999999
)

// All returns every date function definition.
func All() []functions.Function {
	return []functions.Function{TransformDate()}
}

// TransformDate returns the definition for
// transformDate(date, inputPattern, outputPattern, originalZone?, newZone?).
//
// When either pattern is not a string the date is returned unchanged.
func TransformDate() functions.Function {
	return functions.NewDriverList("transformDate", func(value string, args []interface{}) functions.Optional {
		in, ok := fnutil.String(args, 0)
		if !ok {
			return functions.Some(value)
		}
		out, ok := fnutil.String(args, 1)
		if !ok {
			return functions.Some(value)
		}
		from, err := zoneArg(args, 2)
		if err != nil {
			return functions.Some(ErrorPrefix + err.Error())
		}
		to, err := zoneArg(args, 3)
		if err != nil {
			return functions.Some(ErrorPrefix + err.Error())
		}

		result, err := Transform(value, in, out, from, to)
		if err != nil {
			return functions.Some(ErrorPrefix + err.Error())
		}
		return functions.Some(result)
	})
}

// zoneArg returns the zone name at args[i]; absent and null both mean blank.
func zoneArg(args []interface{}, i int) (string, error) {
	v, ok := fnutil.Optional(args, i)
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", types.Errorf(types.ErrUnknownTimezone, "time zone argument %d is a %s, not a string", i+1, types.KindOf(v))
	}
	return s, nil
}

// Transform reads value with the input pattern in fromZone (UTC when blank),
// converts it to toZone when that is not blank and renders it with the
// output pattern.
//
// Epoch inputs are absolute instants: they are shown in fromZone and toZone is
// ignored for them.
func Transform(value, in, out, fromZone, toZone string) (string, error) {
	from, err := ResolveZone(fromZone)
	if err != nil {
		return "", err
	}

	var t time.Time
	switch {
	case strings.EqualFold(in, EpochMilli):
		n, err := parseEpoch(value)
		if err != nil {
			return "", err
		}
		t = time.UnixMilli(n).In(from)
	case strings.EqualFold(in, EpochSecond):
		n, err := parseEpoch(value)
		if err != nil {
			return "", err
		}
		if n < minEpochSecond || n > maxEpochSecond {
			return "", types.NewError(types.ErrDateParse,
				fmt.Sprintf("epoch second %d is outside the supported range", n), -1).WithCause(errFieldRange)
		}
		t = time.Unix(n, 0).In(from)
	default:
		if strings.EqualFold(in, Auto) {
			t, err = parseAuto(value, from)
		} else {
			t, err = parseWith(value, in, from)
		}
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(toZone) != "" {
			to, err := ResolveZone(toZone)
			if err != nil {
				return "", err
			}
			t = t.In(to)
		}
	}

	if y := t.Year(); y < minYear || y > maxYear {
		return "", types.NewError(types.ErrDateParse,
			fmt.Sprintf("year %d is outside the supported range", y), -1).WithCause(errFieldRange)
	}

	p, err := CompilePattern(out)
	if err != nil {
		return "", err
	}
	return p.Format(t), nil
}

func parseWith(value, pattern string, loc *time.Location) (time.Time, error) {
	p, err := CompilePattern(pattern)
	if err != nil {
		return time.Time{}, err
	}
	return p.Parse(value, loc)
}

// parseAuto keeps the wall-clock fields the layout guesser finds and attaches
// them to loc.
func parseAuto(value string, loc *time.Location) (time.Time, error) {
	guessed, err := date.Parse(value)
	if err != nil {
		return time.Time{}, types.NewError(types.ErrDateParse,
			fmt.Sprintf("text %q could not be parsed", value), -1).WithCause(err)
	}
	y, m, d := guessed.Date()
	hh, mm, ss := guessed.Clock()
	return zonedDate(y, m, d, hh, mm, ss, guessed.Nanosecond(), loc), nil
}

func parseEpoch(value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, types.NewError(types.ErrDateParse,
			fmt.Sprintf("text %q is not an epoch count", value), -1).WithCause(err)
	}
	return n, nil
}
