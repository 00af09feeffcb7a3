package timeutil

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{90 * time.Minute, "01:30:00"},
		{6*time.Hour + 5*time.Second, "06:00:05"},
		{-time.Minute, "00:00:00"},
	}

	for _, tc := range cases {
		if got := FormatDuration(tc.in); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMinsToHoursAndMins(t *testing.T) {
	hrs, mins := MinsToHoursAndMins(545)
	if hrs != 9 || mins != 5 {
		t.Fatalf("expected 9h 5m, got %dh %dm", hrs, mins)
	}
}

func TestPrevDate(t *testing.T) {
	if got := PrevDate("2024-03-01"); got != "2024-02-29" {
		t.Errorf("PrevDate across leap-month boundary = %q", got)
	}

	if got := PrevDate("not-a-date"); got != "" {
		t.Errorf("PrevDate on bad input = %q, want empty", got)
	}
}

func TestRoundToStartAndEnd(t *testing.T) {
	now := time.Date(2024, 6, 14, 13, 45, 12, 0, time.UTC)

	start := RoundToStart(now)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Errorf("RoundToStart = %v", start)
	}

	end := RoundToEnd(now)
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("RoundToEnd = %v", end)
	}
}
