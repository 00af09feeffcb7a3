// Package models defines the data persisted to the local store.
package models

import "time"

// Snapshot is the serializable state of an in-progress shift. It is written
// on every transition and on suspend hints, and removed when the shift ends:
// the absence of a snapshot is the idle representation.
type Snapshot struct {
	ShiftStart   time.Time `json:"shift_start"`
	SegmentStart time.Time `json:"segment_start"`
	Status       string    `json:"status"`
	TimerMode    string    `json:"timer_mode"`
	SessionID    string    `json:"session_id,omitempty"`
	WorkSecs     int64     `json:"work_secs"`
	POASecs      int64     `json:"poa_secs"`
	BreakSecs    int64     `json:"break_secs"`
	DrivingSecs  int64     `json:"driving_secs"`
	// WorkCycleSecs is work+driving time since the last qualifying break,
	// distinct from WorkSecs which spans the whole shift.
	WorkCycleSecs  int64 `json:"work_cycle_secs"`
	DriveCycleSecs int64 `json:"drive_cycle_secs"`
	FifteenTaken   bool  `json:"fifteen_taken"`
	LastBreakSecs  int64 `json:"last_break_secs"`
	IsDriving      bool  `json:"is_driving"`
}

// ShiftRecord is a finalized shift.
type ShiftRecord struct {
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Date           string    `json:"date"` // local calendar date, YYYY-MM-DD
	Timezone       string    `json:"timezone,omitempty"`
	SessionID      string    `json:"session_id,omitempty"`
	WorkMinutes    int       `json:"total_work_minutes"`
	POAMinutes     int       `json:"total_poa_minutes"`
	BreakMinutes   int       `json:"total_break_minutes"`
	DrivingMinutes int       `json:"driving_minutes"`
	Score          int       `json:"compliance_score"`
	Violations     []string  `json:"compliance_violations,omitempty"`
}
