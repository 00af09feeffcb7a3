package compliance

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func codes(r Result) []Code {
	var out []Code

	for _, v := range r.Violations {
		out = append(out, v.Code)
	}

	return out
}

func TestEvaluateEmptyDay(t *testing.T) {
	got := Evaluate(Input{})

	if got.Score != 100 || len(got.Violations) != 0 {
		t.Fatalf("expected a vacuously compliant result, got: %+v", got)
	}
}

func TestEvaluateBreakSufficiency(t *testing.T) {
	cases := []struct {
		name     string
		day      DayTotals
		expected []Code
		score    int
	}{
		{
			name:     "long day with short break",
			day:      DayTotals{WorkMinutes: 541, BreakMinutes: 44},
			expected: []Code{InsufficientBreakFor9h},
			score:    80,
		},
		{
			name:     "medium day with short break",
			day:      DayTotals{WorkMinutes: 400, BreakMinutes: 20},
			expected: []Code{Exceeded6hWork},
			score:    80,
		},
		{
			name:  "medium day with sufficient break",
			day:   DayTotals{WorkMinutes: 400, BreakMinutes: 30},
			score: 100,
		},
		{
			name:  "short day",
			day:   DayTotals{WorkMinutes: 360, BreakMinutes: 0},
			score: 100,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(Input{Day: tc.day, HasSessions: true})

			if diff := cmp.Diff(tc.expected, codes(got)); diff != "" {
				t.Fatalf("violation mismatch (-want +got):\n%s", diff)
			}

			if got.Score != tc.score {
				t.Fatalf("expected score %d, got: %d", tc.score, got.Score)
			}
		})
	}
}

func TestEvaluateDailyDriving(t *testing.T) {
	cases := []struct {
		name       string
		driving    int
		extensions int
		expected   []Code
		score      int
	}{
		{
			name:    "within daily limit",
			driving: 540,
			score:   100,
		},
		{
			name:     "first extension of the week",
			driving:  590,
			expected: []Code{Used10hDrivingExtension},
			score:    100,
		},
		{
			name:       "extensions exhausted",
			driving:    590,
			extensions: 2,
			expected:   []Code{ExceededDailyDriving},
			score:      80,
		},
		{
			name:     "past ten hours",
			driving:  601,
			expected: []Code{ExceededDailyDriving},
			score:    80,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(Input{
				Day:                  DayTotals{DrivingMinutes: tc.driving},
				WeeklyExtensionsUsed: tc.extensions,
				HasSessions:          true,
			})

			if diff := cmp.Diff(tc.expected, codes(got)); diff != "" {
				t.Fatalf("violation mismatch (-want +got):\n%s", diff)
			}

			if got.Score != tc.score {
				t.Fatalf("expected score %d, got: %d", tc.score, got.Score)
			}
		})
	}
}

func TestEvaluateFortnightlyDriving(t *testing.T) {
	got := Evaluate(Input{
		FortnightDrivingMinutes: 90*60 + 30,
		HasSessions:             true,
	})

	expected := []Code{FortnightlyDriving}

	if diff := cmp.Diff(expected, codes(got)); diff != "" {
		t.Fatalf("violation mismatch (-want +got):\n%s", diff)
	}

	if got.Violations[0].Overage != 30*time.Minute {
		t.Fatalf("expected 30m overage, got: %s", got.Violations[0].Overage)
	}
}

func TestEvaluateDailyRest(t *testing.T) {
	start := time.Date(2024, 3, 5, 6, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		rest     time.Duration
		expected []Code
		score    int
	}{
		{
			name:     "eight hours rest",
			rest:     8 * time.Hour,
			expected: []Code{InsufficientDailyRest},
			score:    80,
		},
		{
			name:     "exactly nine hours rest",
			rest:     9 * time.Hour,
			expected: []Code{ReducedDailyRestTaken},
			score:    100,
		},
		{
			name:     "ten hours rest",
			rest:     10 * time.Hour,
			expected: []Code{ReducedDailyRestTaken},
			score:    100,
		},
		{
			name:  "eleven hours rest",
			rest:  11 * time.Hour,
			score: 100,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(Input{
				FirstStart:  start,
				PrevDayEnd:  start.Add(-tc.rest),
				HasSessions: true,
			})

			if diff := cmp.Diff(tc.expected, codes(got)); diff != "" {
				t.Fatalf("violation mismatch (-want +got):\n%s", diff)
			}

			if got.Score != tc.score {
				t.Fatalf("expected score %d, got: %d", tc.score, got.Score)
			}
		})
	}
}

func TestEvaluateNoPriorDaySkipsRestCheck(t *testing.T) {
	got := Evaluate(Input{
		FirstStart:  time.Date(2024, 3, 5, 6, 0, 0, 0, time.UTC),
		HasSessions: true,
	})

	if len(got.Violations) != 0 {
		t.Fatalf("expected no violations without a prior day, got: %v", got.Violations)
	}
}

func TestEvaluateScoreFloor(t *testing.T) {
	got := Evaluate(Input{
		Day: DayTotals{
			WorkMinutes:    700,
			DrivingMinutes: 620,
			BreakMinutes:   0,
		},
		FirstStart:              time.Date(2024, 3, 5, 6, 0, 0, 0, time.UTC),
		PrevDayEnd:              time.Date(2024, 3, 5, 2, 0, 0, 0, time.UTC),
		FortnightDrivingMinutes: 6000,
		HasSessions:             true,
	})

	if got.Score != 20 {
		t.Fatalf("expected score 20, got: %d", got.Score)
	}

	expected := []Code{
		InsufficientBreakFor9h,
		ExceededDailyDriving,
		FortnightlyDriving,
		InsufficientDailyRest,
	}

	if diff := cmp.Diff(expected, codes(got)); diff != "" {
		t.Fatalf("violation mismatch (-want +got):\n%s", diff)
	}
}
