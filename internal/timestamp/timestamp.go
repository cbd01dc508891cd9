// Package timestamp recognizes and renders the two UTC timestamp shapes
// found in Django fixture files: date-only values ("2023-01-15") and full
// instants ("2023-01-15T10:30:00.123Z"). Parsing keeps just enough metadata
// to render a shifted instant back in the exact textual precision of the
// original value.
package timestamp

import (
	"fmt"
	"regexp"
	"time"
)

// Shape identifies which of the two supported textual forms a value used.
type Shape int

const (
	DateOnly Shape = iota
	DateTime
)

var (
	dateTimePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})T(\d{2}:\d{2}:\d{2})(?:\.(\d{1,6}))?Z$`)
	dateOnlyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Value is a parsed UTC instant plus the attributes needed to render it back
// in its original textual form. FractionLen is the number of fractional-second
// digits present in the source text (0-6); it is only meaningful for DateTime.
type Value struct {
	Instant     time.Time
	Shape       Shape
	FractionLen int
}

// Parse attempts to interpret text as one of the two supported UTC timestamp
// shapes. The whole string must match; partial matches and any other format
// return ok=false. Text that is shaped like a timestamp but is not a valid
// calendar date (month 13, day 32) is also not recognized.
func Parse(text string) (Value, bool) {
	if m := dateTimePattern.FindStringSubmatch(text); m != nil {
		t, err := time.Parse("2006-01-02T15:04:05Z", m[1]+"T"+m[2]+"Z")
		if err != nil {
			return Value{}, false
		}
		fraction := m[3]
		micros := 0
		for i := 0; i < 6; i++ {
			micros *= 10
			if i < len(fraction) {
				micros += int(fraction[i] - '0')
			}
		}
		return Value{
			Instant:     t.Add(time.Duration(micros) * time.Microsecond),
			Shape:       DateTime,
			FractionLen: len(fraction),
		}, true
	}

	if dateOnlyPattern.MatchString(text) {
		t, err := time.Parse("2006-01-02", text)
		if err != nil {
			return Value{}, false
		}
		return Value{Instant: t, Shape: DateOnly}, true
	}

	return Value{}, false
}

// Render is the exact inverse of Parse: it emits the instant in the value's
// original shape, truncating the microsecond component to FractionLen digits.
// The instant is converted to UTC first.
func (v Value) Render() string {
	t := v.Instant.UTC()
	if v.Shape == DateOnly {
		return t.Format("2006-01-02")
	}

	base := t.Format("2006-01-02T15:04:05")
	if v.FractionLen > 0 {
		micro := fmt.Sprintf("%06d", t.Nanosecond()/1000)
		return base + "." + micro[:v.FractionLen] + "Z"
	}
	return base + "Z"
}

// Shifted returns a copy of the value moved by delta, keeping the original
// shape and fraction length so it renders with identical precision.
func (v Value) Shifted(delta time.Duration) Value {
	return Value{Instant: v.Instant.Add(delta), Shape: v.Shape, FractionLen: v.FractionLen}
}

// ParseTarget parses a user-supplied target time argument. It accepts the
// same two shapes as Parse and rejects everything else before any file is
// touched.
func ParseTarget(text string) (time.Time, error) {
	v, ok := Parse(text)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid target time %q: expected YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS(.fraction)Z", text)
	}
	return v.Instant, nil
}
