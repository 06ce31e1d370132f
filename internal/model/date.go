package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// DateLayout is the plain calendar form used by the fixture and most of the
// remote payloads. Full ISO-8601 timestamps are accepted as a fallback.
const DateLayout = "2006-01-02"

// Date is a timestamp that reads either DateLayout or RFC 3339 and always
// writes RFC 3339.
type Date struct {
	time.Time
}

// NewDate wraps t.
func NewDate(t time.Time) *Date {
	return &Date{Time: t}
}

// ParseDate parses s as DateLayout, then as RFC 3339.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Date{Time: t}, nil
	}
	return Date{}, fmt.Errorf("cannot decode date string %q", s)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.UTC().Format(time.RFC3339))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// PseudoDates derives placeholder introduced/updated dates from a bill id.
// It is a display aid for records that carry no dates and is not a business
// rule: the same id and reference day always give the same pair.
// Introduced falls 30-394 days before ref, updated 1-60 days after introduced.
func PseudoDates(id string, ref time.Time) (introduced, updated time.Time) {
	h := xxhash.Sum64String(id)
	day := ref.UTC().Truncate(24 * time.Hour)
	daysAgo := int(h%365) + 30
	introduced = day.AddDate(0, 0, -daysAgo)
	updated = introduced.AddDate(0, 0, int(h%60)+1)
	return introduced, updated
}
