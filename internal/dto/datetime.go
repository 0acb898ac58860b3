package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateTimeLayouts are tried in order. Values without a zone are UTC.
var DateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	time.DateOnly,
}

// DateTimeError reports a value none of DateTimeLayouts could parse.
type DateTimeError struct {
	Value string
}

func (e *DateTimeError) Error() string {
	return fmt.Sprintf("%q is not an RFC 3339 timestamp, YYYY-MM-DDTHH:MM:SS or YYYY-MM-DD date", e.Value)
}

func ParseDateTime(raw string) (time.Time, error) {
	for _, layout := range DateTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &DateTimeError{Value: raw}
}

// DateTime decodes the timestamp forms browsers and form inputs send,
// including a bare date from <input type="date">.
type DateTime struct {
	time.Time
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return &DateTimeError{Value: string(b)}
	}
	t, err := ParseDateTime(raw)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
