package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeFormat формат времени HH:MM (24-часовой)
const TimeFormat = "15:04"

// TimeString represents a wall-clock time of day with minute precision,
// stored as an "HH:MM" string (e.g. "09:30").
type TimeString string

// NewTimeString creates a TimeString from a time.Time (date part is discarded)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString creates a TimeString from an "HH:MM" string
func NewTimeStringFromString(s string) (TimeString, error) {
	t := TimeString(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Validate checks that the value is a well-formed "HH:MM" time
func (t TimeString) Validate() error {
	if _, err := time.Parse(TimeFormat, string(t)); err != nil {
		return fmt.Errorf("invalid time format %q, expected HH:MM: %v", string(t), err)
	}
	return nil
}

// IsZero returns true if the value is empty
func (t TimeString) IsZero() bool {
	return t == ""
}

// String returns the "HH:MM" representation
func (t TimeString) String() string {
	return string(t)
}

// minutes возвращает время в минутах от полуночи
// Второе значение false, если строка некорректна
func (t TimeString) minutes() (int, bool) {
	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return 0, false
	}
	return parsed.Hour()*60 + parsed.Minute(), true
}

// Hour returns the hour-of-day component (0-23), or -1 for a malformed value
func (t TimeString) Hour() int {
	m, ok := t.minutes()
	if !ok {
		return -1
	}
	return m / 60
}

// IsBefore returns true if t is strictly earlier than other.
// Malformed values compare as false.
func (t TimeString) IsBefore(other TimeString) bool {
	a, okA := t.minutes()
	b, okB := other.minutes()
	return okA && okB && a < b
}

// IsAfter returns true if t is strictly later than other.
// Malformed values compare as false.
func (t TimeString) IsAfter(other TimeString) bool {
	a, okA := t.minutes()
	b, okB := other.minutes()
	return okA && okB && a > b
}

// AddMinutes returns the time shifted forward by the given number of minutes.
// Returns an error if the value is malformed or the result crosses midnight.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	m, ok := t.minutes()
	if !ok {
		return "", fmt.Errorf("invalid time format %q, expected HH:MM", string(t))
	}

	total := m + minutes
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("time %s + %d minutes is outside the day", string(t), minutes)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// Combine attaches the time of day to the given date in the date's location
func (t TimeString) Combine(date time.Time) (time.Time, error) {
	m, ok := t.minutes()
	if !ok {
		return time.Time{}, fmt.Errorf("invalid time format %q, expected HH:MM", string(t))
	}
	return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, date.Location()), nil
}

// Value implements driver.Valuer for storing into a TIME column
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner, accepting TIME column values
func (t *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into TimeString", value)
	}
}

// scanString обрезает секунды из значений вида "10:00:00"
func (t *TimeString) scanString(s string) error {
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
