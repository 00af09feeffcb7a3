// Package compliance scores a day's aggregated driver activity against EU
// working-time and driving-time rules
package compliance

import "time"

// Code identifies a rule breach from the closed catalog.
type Code string

const (
	Exceeded6hWork          Code = "EXCEEDED_6H_WORK"
	InsufficientBreakFor9h  Code = "INSUFFICIENT_BREAK_FOR_9H_WORK"
	ExceededDailyDriving    Code = "EXCEEDED_DAILY_DRIVING_LIMIT"
	Used10hDrivingExtension Code = "USED_10H_DRIVING_EXTENSION"
	FortnightlyDriving      Code = "FORTNIGHTLY_DRIVING_LIMIT_EXCEEDED"
	InsufficientDailyRest   Code = "INSUFFICIENT_DAILY_REST"
	ReducedDailyRestTaken   Code = "REDUCED_DAILY_REST_TAKEN"
)

// Informational reports whether the code is advisory only. Informational
// codes appear in the violation list but never reduce the score.
func (c Code) Informational() bool {
	return c == Used10hDrivingExtension || c == ReducedDailyRestTaken
}

// Violation is a single rule breach. Overage carries how far past the limit
// the day went where that is meaningful, and is zero otherwise.
type Violation struct {
	Code    Code
	Overage time.Duration
}

// DayTotals is a calendar day's activity summed over its finalized shifts.
type DayTotals struct {
	WorkMinutes    int
	DrivingMinutes int
	BreakMinutes   int
}

// Input carries everything Evaluate needs. FirstStart is the day's earliest
// shift start; PrevDayEnd is the latest shift end on the most recent prior
// day with activity, or the zero time when there is none.
type Input struct {
	Day                     DayTotals
	FirstStart              time.Time
	PrevDayEnd              time.Time
	FortnightDrivingMinutes int
	WeeklyExtensionsUsed    int
	HasSessions             bool
}

// Result is a day's compliance outcome.
type Result struct {
	Score      int
	Violations []Violation
}

const (
	sixHourWorkMins   = 6 * 60
	nineHourWorkMins  = 9 * 60
	shortBreakMins    = 30
	qualifyingBreak   = 45
	dailyDrivingMins  = 9 * 60
	extendedDriveMins = 10 * 60
	fortnightMins     = 90 * 60
	fullRest          = 11 * time.Hour
	reducedRest       = 9 * time.Hour
	maxExtensionsWeek = 2
)

// Evaluate applies every rule independently and unions the outcomes. A day
// with no sessions is vacuously compliant.
func Evaluate(in Input) Result {
	if !in.HasSessions {
		return Result{Score: 100}
	}

	var violations []Violation

	violations = append(violations, checkBreaks(in.Day)...)
	violations = append(violations, checkDailyDriving(in)...)
	violations = append(violations, checkFortnight(in)...)
	violations = append(violations, checkRest(in)...)

	scored := 0

	for _, v := range violations {
		if !v.Code.Informational() {
			scored++
		}
	}

	score := 100 - 20*scored
	if score < 0 {
		score = 0
	}

	return Result{Score: score, Violations: violations}
}

// checkBreaks enforces break sufficiency. Only the higher-severity check
// fires for a given day.
func checkBreaks(day DayTotals) []Violation {
	if day.WorkMinutes > nineHourWorkMins && day.BreakMinutes < qualifyingBreak {
		return []Violation{{
			Code:    InsufficientBreakFor9h,
			Overage: time.Duration(qualifyingBreak-day.BreakMinutes) * time.Minute,
		}}
	}

	if day.WorkMinutes > sixHourWorkMins && day.BreakMinutes < shortBreakMins {
		return []Violation{{
			Code:    Exceeded6hWork,
			Overage: time.Duration(shortBreakMins-day.BreakMinutes) * time.Minute,
		}}
	}

	return nil
}

func checkDailyDriving(in Input) []Violation {
	if in.Day.DrivingMinutes <= dailyDrivingMins {
		return nil
	}

	if in.Day.DrivingMinutes > extendedDriveMins ||
		in.WeeklyExtensionsUsed >= maxExtensionsWeek {
		return []Violation{{
			Code:    ExceededDailyDriving,
			Overage: time.Duration(in.Day.DrivingMinutes-dailyDrivingMins) * time.Minute,
		}}
	}

	return []Violation{{Code: Used10hDrivingExtension}}
}

func checkFortnight(in Input) []Violation {
	if in.FortnightDrivingMinutes <= fortnightMins {
		return nil
	}

	return []Violation{{
		Code:    FortnightlyDriving,
		Overage: time.Duration(in.FortnightDrivingMinutes-fortnightMins) * time.Minute,
	}}
}

// checkRest compares the gap between the previous day's last shift end and
// today's first shift start against the daily-rest requirement.
func checkRest(in Input) []Violation {
	if in.PrevDayEnd.IsZero() || in.FirstStart.IsZero() {
		return nil
	}

	rest := in.FirstStart.Sub(in.PrevDayEnd)

	if rest < reducedRest {
		return []Violation{{
			Code:    InsufficientDailyRest,
			Overage: reducedRest - rest,
		}}
	}

	if rest < fullRest {
		return []Violation{{Code: ReducedDailyRestTaken}}
	}

	return nil
}
