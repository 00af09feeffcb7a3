package shift

import (
	"time"

	"github.com/dutylog/dutylog/internal/models"
)

func (e *Engine) toSnapshot() *models.Snapshot {
	return &models.Snapshot{
		ShiftStart:     e.shiftStart,
		SegmentStart:   e.segmentStart,
		Status:         string(e.status),
		TimerMode:      string(e.mode),
		SessionID:      e.sessionID,
		WorkSecs:       int64(e.totals.Work.Seconds()),
		POASecs:        int64(e.totals.POA.Seconds()),
		BreakSecs:      int64(e.totals.Break.Seconds()),
		DrivingSecs:    int64(e.totals.Driving.Seconds()),
		WorkCycleSecs:  int64(e.cycle.Seconds()),
		DriveCycleSecs: int64(e.driveCycle.Seconds()),
		LastBreakSecs:  int64(e.breaks.LastBreak.Seconds()),
		FifteenTaken:   e.breaks.FifteenTaken,
		IsDriving:      e.driving,
	}
}

// Restore rebuilds an interrupted shift from its snapshot. Segment durations
// are derived from the stored start times and current wall-clock time, so a
// suspension of any length is attributed to the open segment's status. The
// driving verdict always restarts from stopped; live sensor evidence has to
// re-accumulate.
func (e *Engine) Restore(snap *models.Snapshot) {
	e.status = Status(snap.Status)
	e.mode = Mode(snap.TimerMode)
	e.shiftStart = snap.ShiftStart
	e.segmentStart = snap.SegmentStart
	e.sessionID = snap.SessionID
	e.totals = Totals{
		Work:    time.Duration(snap.WorkSecs) * time.Second,
		POA:     time.Duration(snap.POASecs) * time.Second,
		Break:   time.Duration(snap.BreakSecs) * time.Second,
		Driving: time.Duration(snap.DrivingSecs) * time.Second,
	}
	e.cycle = time.Duration(snap.WorkCycleSecs) * time.Second
	e.driveCycle = time.Duration(snap.DriveCycleSecs) * time.Second
	e.breaks = BreakTracker{
		FifteenTaken: snap.FifteenTaken,
		LastBreak:    time.Duration(snap.LastBreakSecs) * time.Second,
	}
	e.driving = false

	if e.mode != NineHour {
		e.mode = SixHour
	}
}
