package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	DateLayout          = "2006-01-02"
	LocalDateTimeLayout = "2006-01-02T15:04:05"
)

// localDateTimeLayouts are the accepted inputs for LocalDateTime, most
// specific first.
var localDateTimeLayouts = []string{
	LocalDateTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339Nano,
}

// Date is a calendar date without time of day, encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate truncates t to its UTC calendar day.
func NewDate(t time.Time) Date {
	t = t.UTC()
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.UTC().Format(DateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string in %s format", DateLayout)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected %s", s, DateLayout)
	}
	d.Time = t
	return nil
}

// LocalDateTime is a wall-clock timestamp without zone semantics. Values are
// held in UTC and rendered without an offset.
type LocalDateTime struct {
	time.Time
}

// NewLocalDateTime wraps t, normalised to UTC.
func NewLocalDateTime(t time.Time) LocalDateTime {
	return LocalDateTime{t.UTC()}
}

// ParseLocalDateTime accepts YYYY-MM-DDTHH:MM[:SS] (or a space separator) and
// RFC 3339 timestamps.
func ParseLocalDateTime(s string) (LocalDateTime, error) {
	for _, layout := range localDateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewLocalDateTime(t), nil
		}
	}
	return LocalDateTime{}, fmt.Errorf("invalid date-time %q: expected %s", s, LocalDateTimeLayout)
}

func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(LocalDateTimeLayout))
}

func (t *LocalDateTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date-time must be a string in %s format", LocalDateTimeLayout)
	}
	parsed, err := ParseLocalDateTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
