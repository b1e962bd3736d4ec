package availability

import (
	"testing"

	"github.com/BruksfildServices01/booking-slots/internal/httperr"
	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

func TestNewRule(t *testing.T) {
	cases := []struct {
		name      string
		resource  string
		day       int
		start     string
		end       string
		duration  int
		wantField string
	}{
		{"ok", "r1", 1, "09:00", "17:00", 30, ""},
		{"seconds ok", "r1", 0, "09:00:00", "09:45:30", 15, ""},
		{"missing resource", " ", 1, "09:00", "17:00", 30, "resource_id"},
		{"day too high", "r1", 7, "09:00", "17:00", 30, "day_of_week"},
		{"day negative", "r1", -1, "09:00", "17:00", 30, "day_of_week"},
		{"bad start", "r1", 1, "9am", "17:00", 30, "start_time"},
		{"bad end", "r1", 1, "09:00", "25:00", 30, "end_time"},
		{"start equals end", "r1", 1, "09:00", "09:00", 30, "end_time"},
		{"start after end", "r1", 1, "18:00", "09:00", 30, "end_time"},
		{"zero duration", "r1", 1, "09:00", "17:00", 0, "slot_duration"},
		{"full day duration", "r1", 1, "09:00", "17:00", MaxSlotDuration, ""},
		{"duration over a day", "r1", 1, "09:00", "17:00", MaxSlotDuration + 1, "slot_duration"},
		{"overflowing duration", "r1", 1, "09:00", "17:00", 1 << 62, "slot_duration"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewRule(tc.resource, tc.day, tc.start, tc.end, tc.duration)
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if r.StartTime >= r.EndTime {
					t.Fatalf("rule not normalised: %+v", r)
				}
				return
			}
			ve, ok := httperr.AsValidation(err)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			if ve.Field != tc.wantField {
				t.Fatalf("field = %q, want %q", ve.Field, tc.wantField)
			}
		})
	}
}

func TestNewBlockedDate(t *testing.T) {
	b, err := NewBlockedDate("r1", "2026-12-25", "  Christmas ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Date != wallclock.MustDate("2026-12-25") || b.Reason != "Christmas" {
		t.Fatalf("unexpected blocked date %+v", b)
	}

	if _, err := NewBlockedDate("r1", "25/12/2026", ""); err == nil {
		t.Fatal("expected validation error for bad date")
	}
}
