package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// timestampLayouts are tried in order. Zone-less forms are read as local
// time, which is how older journal files store every date.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// ParseTimestamp parses s keeping the time of day. An RFC 3339 offset is
// honoured; timestamps without one are local.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// timeField pairs a raw JSON timestamp with its destination.
type timeField struct {
	name string
	raw  *string
	dst  *time.Time
}

func decodeTimes(fields ...timeField) error {
	for _, f := range fields {
		if *f.raw == "" {
			continue
		}
		t, err := ParseTimestamp(*f.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = t
	}
	return nil
}

// UnmarshalJSON accepts zone-less trip dates.
func (t *Trip) UnmarshalJSON(data []byte) error {
	type plain Trip
	aux := struct {
		*plain
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	return decodeTimes(
		timeField{"trip startDate", &aux.StartDate, &t.StartDate},
		timeField{"trip endDate", &aux.EndDate, &t.EndDate},
	)
}

// UnmarshalJSON accepts a zone-less capture date.
func (p *Photo) UnmarshalJSON(data []byte) error {
	type plain Photo
	aux := struct {
		*plain
		CaptureDate string `json:"captureDate"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	return decodeTimes(timeField{"photo captureDate", &aux.CaptureDate, &p.CaptureDate})
}

// UnmarshalJSON accepts a zone-less expense date.
func (e *Expense) UnmarshalJSON(data []byte) error {
	type plain Expense
	aux := struct {
		*plain
		Date string `json:"date"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	return decodeTimes(timeField{"expense date", &aux.Date, &e.Date})
}

// UnmarshalJSON accepts a zone-less creation date.
func (n *Note) UnmarshalJSON(data []byte) error {
	type plain Note
	aux := struct {
		*plain
		CreatedDate string `json:"createdDate"`
	}{plain: (*plain)(n)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	return decodeTimes(timeField{"note createdDate", &aux.CreatedDate, &n.CreatedDate})
}
