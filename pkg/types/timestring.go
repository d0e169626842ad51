// Package types holds small shared value types used across layers.
package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/intellectif-llc/intellectif-website-sub002/pkg/interval"
)

// TimeString is a time of day in "HH:MM" (24h) form. It is the wire, storage
// and in-memory representation for schedule times: lexicographic order equals
// chronological order, and it maps directly onto Postgres TIME columns.
type TimeString string

// TimeFormat is the canonical layout of a TimeString.
const TimeFormat = "15:04"

var (
	// ErrInvalidTimeString is returned for values not in HH:MM form.
	ErrInvalidTimeString = errors.New("types: invalid time string format, expected HH:MM")

	// ErrTimeOutOfRange is returned when an arithmetic result leaves the day.
	ErrTimeOutOfRange = errors.New("types: time out of range")
)

// NewTimeString builds a TimeString from the time-of-day part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString parses and validates an "HH:MM" value.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes converts minutes from midnight into a TimeString.
// Valid range is [0, 1440); 1440 itself is not representable.
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= interval.MinutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// String returns the raw "HH:MM" value.
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero reports whether the value is unset.
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate checks the "HH:MM" format and range.
func (ts TimeString) Validate() error {
	if _, err := time.Parse(TimeFormat, string(ts)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return nil
}

// Minutes returns the value as minutes from midnight.
// The value must be valid; call Validate at the boundary first.
func (ts TimeString) Minutes() (int, error) {
	t, err := time.Parse(TimeFormat, string(ts))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// IsBefore reports whether ts is strictly earlier than other.
// Lexicographic comparison is correct for zero-padded HH:MM.
func (ts TimeString) IsBefore(other TimeString) bool {
	return string(ts) < string(other)
}

// IsAfter reports whether ts is strictly later than other.
func (ts TimeString) IsAfter(other TimeString) bool {
	return string(ts) > string(other)
}

// AddMinutes returns the time n minutes later. Crossing midnight is an error:
// schedule windows never wrap days in this system.
func (ts TimeString) AddMinutes(n int) (TimeString, error) {
	m, err := ts.Minutes()
	if err != nil {
		return "", err
	}
	sum := m + n
	if sum < 0 || sum > interval.MinutesPerDay {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrTimeOutOfRange, ts, n)
	}
	if sum == interval.MinutesPerDay {
		// Representable as the exclusive end of a day-long interval only;
		// callers compare against it, they never store it.
		return TimeString("24:00"), nil
	}
	return NewTimeStringFromMinutes(sum)
}

// Scan implements sql.Scanner. Postgres TIME columns arrive as "HH:MM:SS"
// strings or as time.Time depending on the driver path.
func (ts *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*ts = ""
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case []byte:
		return ts.scanString(string(v))
	case string:
		return ts.scanString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, value)
	}
}

func (ts *TimeString) scanString(s string) error {
	if len(s) >= 5 {
		s = s[:5] // drop seconds and fractional part
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// Value implements driver.Valuer.
func (ts TimeString) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}
