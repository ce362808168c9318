package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2023-05-01T09:30:00", time.Date(2023, 5, 1, 9, 30, 0, 0, time.Local)},
		{"2023-05-01T09:30:00.1234567", time.Date(2023, 5, 1, 9, 30, 0, 123456700, time.Local)},
		{"2023-05-01 09:30:00", time.Date(2023, 5, 1, 9, 30, 0, 0, time.Local)},
		{"2023-05-01", time.Date(2023, 5, 1, 0, 0, 0, 0, time.Local)},
		{"2023-05-01T09:30:00Z", time.Date(2023, 5, 1, 9, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if err != nil {
				t.Fatalf("ParseTimestamp() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := ParseTimestamp("May 1st"); err == nil {
		t.Error("ParseTimestamp() expected error")
	}
}

func TestEntities_UnmarshalZonelessDates(t *testing.T) {
	var trip Trip
	if err := json.Unmarshal([]byte(`{"Id":3,"Name":"Old","StartDate":"2023-05-01T00:00:00","EndDate":"2023-05-04T00:00:00"}`), &trip); err != nil {
		t.Fatalf("Unmarshal(trip) error = %v", err)
	}
	if trip.ID != 3 || trip.Name != "Old" {
		t.Errorf("trip = %+v", trip)
	}
	if want := time.Date(2023, 5, 4, 0, 0, 0, 0, time.Local); !trip.EndDate.Equal(want) {
		t.Errorf("EndDate = %v, want %v", trip.EndDate, want)
	}

	var expense Expense
	if err := json.Unmarshal([]byte(`{"Id":9,"Amount":20.5,"Date":"2023-05-02T12:45:10"}`), &expense); err != nil {
		t.Fatalf("Unmarshal(expense) error = %v", err)
	}
	if want := time.Date(2023, 5, 2, 12, 45, 10, 0, time.Local); !expense.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", expense.Date, want)
	}
	if expense.Amount.String() != "20.5" {
		t.Errorf("Amount = %s, want 20.5", expense.Amount)
	}

	var photo Photo
	if err := json.Unmarshal([]byte(`{"captureDate":"2023-05-02T08:00:00","tags":["sea"]}`), &photo); err != nil {
		t.Fatalf("Unmarshal(photo) error = %v", err)
	}
	if photo.CaptureDate.Hour() != 8 || !photo.HasTag("sea") {
		t.Errorf("photo = %+v", photo)
	}

	var note Note
	if err := json.Unmarshal([]byte(`{"title":"Arrived"}`), &note); err != nil {
		t.Fatalf("Unmarshal(note) error = %v", err)
	}
	if !note.CreatedDate.IsZero() || note.Title != "Arrived" {
		t.Errorf("note = %+v", note)
	}

	if err := json.Unmarshal([]byte(`{"createdDate":"yesterday"}`), &note); err == nil {
		t.Error("Unmarshal(note) with bad date: expected error")
	}
}

func TestEntities_RoundTripKeepsInstant(t *testing.T) {
	in := Expense{ID: 1, Date: time.Date(2024, 6, 2, 14, 0, 0, 0, time.UTC)}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var out Expense
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !out.Date.Equal(in.Date) {
		t.Errorf("Date = %v, want %v", out.Date, in.Date)
	}
}
