package timex

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// localLayout is a timestamp without a zone offset, as SQL DateTime columns
// are serialised by the API. Up to seven fractional digits are accepted.
const localLayout = "2006-01-02T15:04:05.9999999"

// Time is a time.Time that also unmarshals timestamps without an offset.
// Those are read as UTC. null and "" decode to the zero time.
type Time struct {
	time.Time
}

// NewTime wraps t.
func NewTime(t time.Time) Time {
	return Time{Time: t}
}

// Equal reports whether both wrap the same instant.
func (t Time) Equal(u Time) bool {
	return t.Time.Equal(u.Time)
}

func (t Time) MarshalJSON() ([]byte, error) {
	return t.Time.MarshalJSON()
}

func (t *Time) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid time %s: %w", b, err)
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// ParseTime accepts RFC 3339 with or without an offset.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return parsed, nil
	}
	parsed, err := time.ParseInLocation(localLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return parsed, nil
}
