package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDailyLogEntry_JSONShape(t *testing.T) {
	entry := NewDailyLogEntry(3, 7, time.Date(2024, 6, 2, 15, 4, 0, 0, time.Local), "custom text", false)

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"id":3,"tripId":7,"date":"2024-06-02","summary":"custom text","isAutoGenerated":false}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var got DailyLogEntry
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.ID != 3 || got.TripID != 7 {
		t.Errorf("ids = (%d, %d), want (3, 7)", got.ID, got.TripID)
	}
	if got.IsAutoGenerated() {
		t.Error("IsAutoGenerated() = true, want false")
	}
	if got.Text() != "custom text" {
		t.Errorf("Text() = %q, want %q", got.Text(), "custom text")
	}
	if got.Date.Hour() != 0 || got.Date.Minute() != 0 {
		t.Errorf("Date = %v, want midnight", got.Date)
	}
}

func TestDailyLogEntry_UnmarshalTimestampDate(t *testing.T) {
	data := []byte(`{"id":1,"tripId":2,"date":"2024-06-02T00:00:00","summary":"x","isAutoGenerated":true}`)

	var got DailyLogEntry
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !got.IsAutoGenerated() {
		t.Error("IsAutoGenerated() = false, want true")
	}
	if got.Date.Format(DateLayout) != "2024-06-02" {
		t.Errorf("Date = %s, want 2024-06-02", got.Date.Format(DateLayout))
	}
}

func TestDailyLogEntry_UnmarshalBadDate(t *testing.T) {
	var got DailyLogEntry
	err := json.Unmarshal([]byte(`{"id":1,"tripId":2,"date":"June 2nd"}`), &got)
	if err == nil {
		t.Fatal("Unmarshal() expected error for bad date")
	}
}

func TestSameDay(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{
			name: "same day different times",
			a:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2024, 1, 15, 23, 59, 59, 0, time.UTC),
			want: true,
		},
		{
			name: "adjacent days",
			a:    time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC),
			b:    time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "same month different year",
			a:    time.Date(2023, 1, 15, 12, 0, 0, 0, time.UTC),
			b:    time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameDay(tt.a, tt.b); got != tt.want {
				t.Errorf("SameDay() = %v, want %v", got, tt.want)
			}
		})
	}
}
