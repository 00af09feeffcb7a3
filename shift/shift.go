// Package shift operates the driver's working-time state machine: which
// activity is current, the regulatory work cycle and its break-driven
// resets, and the running totals for the shift
package shift

import (
	"time"

	"github.com/dutylog/dutylog/internal/models"
)

// Status is the driver's current activity.
type Status string

const (
	Idle    Status = "idle"
	Working Status = "working"
	POA     Status = "poa"
	Break   Status = "break"
)

// Mode is the regulatory work-time ceiling for the current work cycle. A
// shift starts in the six-hour mode and is promoted to nine hours once a
// break of at least fifteen minutes has been taken in the cycle.
type Mode string

const (
	SixHour  Mode = "6h"
	NineHour Mode = "9h"
)

// Ceiling returns the work-cycle limit for the mode.
func (m Mode) Ceiling() time.Duration {
	if m == NineHour {
		return 9 * time.Hour
	}

	return 6 * time.Hour
}

const (
	// QualifyingBreak on its own resets the work cycle.
	QualifyingBreak = 45 * time.Minute
	// SplitBreakFirst and SplitBreakSecond reset the cycle as a pair, in
	// either order.
	SplitBreakFirst  = 15 * time.Minute
	SplitBreakSecond = 30 * time.Minute
	// DrivingAllowance is the continuous driving limit between qualifying
	// breaks.
	DrivingAllowance = 4*time.Hour + 30*time.Minute
)

// Totals are the shift's accumulated durations over completed segments. The
// open segment is never folded in; display code adds it transiently.
type Totals struct {
	Work    time.Duration
	POA     time.Duration
	Break   time.Duration
	Driving time.Duration
}

// BreakTracker remembers break history for the current work cycle.
type BreakTracker struct {
	// FifteenTaken records whether a break of at least fifteen minutes has
	// completed in this cycle.
	FifteenTaken bool
	// LastBreak is the duration of the most recently completed break
	// segment, for matching the split reset pattern.
	LastBreak time.Duration
}

// Store is the slice of persistence the engine needs. The snapshot is the
// sole representation of an in-progress shift: its absence means Idle.
type Store interface {
	SaveSnapshot(snap *models.Snapshot) error
	ClearSnapshot() error
	SaveShift(rec *models.ShiftRecord) error
}

// Observer receives the remaining-time countdowns once per tick while the
// driver is actively working.
type Observer interface {
	Observe(workRemaining, driveRemaining time.Duration)
	Reset()
}

// Config assembles an Engine's collaborators.
type Config struct {
	DriverID string
	Timezone string
	Store    Store
	Sessions SessionService
	Alerts   Observer
}

// Display is the live view of a shift, recomputed from wall-clock time on
// every tick. The open segment's elapsed time is included.
type Display struct {
	Status         Status
	Mode           Mode
	Work           time.Duration
	POA            time.Duration
	Break          time.Duration
	Driving        time.Duration
	Shift          time.Duration
	Segment        time.Duration
	WorkRemaining  time.Duration
	DriveRemaining time.Duration
	IsDriving      bool
}
