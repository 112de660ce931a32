package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar day encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate wraps t, returning nil for nil input.
func NewDate(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	return &Date{Time: *t}
}

// Ptr returns the wrapped time or nil.
func (d *Date) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return fmt.Errorf("date has wrong format, use YYYY-MM-DD: %w", err)
	}
	d.Time = t
	return nil
}
