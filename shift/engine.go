package shift

import (
	"context"
	"log/slog"
	"time"

	"github.com/dutylog/dutylog/internal/models"
)

// Engine is the working-time state machine for one driver. It is driven by
// a single event loop: a once-per-second tick, sensor-derived driving
// updates, and driver-initiated transitions. It is not safe for concurrent
// use.
type Engine struct {
	driverID string
	timezone string
	store    Store
	sessions SessionService
	alerts   Observer

	status       Status
	mode         Mode
	shiftStart   time.Time
	segmentStart time.Time
	totals       Totals
	cycle        time.Duration
	driveCycle   time.Duration
	breaks       BreakTracker
	driving      bool
	drivingSince time.Time
	sessionID    string
}

// SessionService mirrors session.Service without importing it into every
// test double.
type SessionService interface {
	Start(ctx context.Context, driverID, timezone string) (string, error)
	End(ctx context.Context, sessionID string, workMins, poaMins, breakMins, drivingMins int) error
}

func New(cfg Config) *Engine {
	return &Engine{
		driverID: cfg.DriverID,
		timezone: cfg.Timezone,
		store:    cfg.Store,
		sessions: cfg.Sessions,
		alerts:   cfg.Alerts,
		status:   Idle,
		mode:     SixHour,
	}
}

func (e *Engine) Status() Status { return e.status }

func (e *Engine) Mode() Mode { return e.mode }

func (e *Engine) SessionID() string { return e.sessionID }

// StartShift opens a Working segment at now. The backend session id is
// requested best-effort: tracking proceeds locally when the backend is
// unreachable.
func (e *Engine) StartShift(ctx context.Context, now time.Time) error {
	if e.status != Idle {
		return errShiftInProgress
	}

	if e.driverID == "" {
		return errNoDriverID
	}

	e.status = Working
	e.mode = SixHour
	e.shiftStart = now
	e.segmentStart = now
	e.totals = Totals{}
	e.cycle = 0
	e.driveCycle = 0
	e.breaks = BreakTracker{}
	e.driving = false
	e.sessionID = ""

	if e.sessions != nil {
		id, err := e.sessions.Start(ctx, e.driverID, e.timezone)
		if err != nil {
			slog.Warn("unable to register session with backend",
				slog.Any("error", err),
			)
		} else {
			e.sessionID = id
		}
	}

	if e.alerts != nil {
		e.alerts.Reset()
	}

	e.persist()

	return nil
}

// ToggleBreak moves between Break and Working. Closing a break applies the
// cycle reset and mode promotion rules in that break's terms: a qualifying
// break (45 minutes, or the 15+30 split completed in either order) zeroes
// the work cycle, and any break of fifteen minutes or more promotes a
// six-hour cycle to nine hours. Promotion is not undone by the reset.
func (e *Engine) ToggleBreak(now time.Time) error {
	switch e.status {
	case Idle:
		return errNoActiveShift
	case Break:
		d := now.Sub(e.segmentStart)

		qualifies := d >= QualifyingBreak ||
			(e.breaks.LastBreak >= SplitBreakFirst && d >= SplitBreakSecond) ||
			(e.breaks.LastBreak >= SplitBreakSecond && d >= SplitBreakFirst)

		e.totals.Break += d

		if d >= SplitBreakFirst && e.mode == SixHour {
			e.mode = NineHour
		}

		if qualifies {
			e.cycle = 0
			e.driveCycle = 0
			e.breaks = BreakTracker{}
		} else {
			e.breaks.LastBreak = d
			e.breaks.FifteenTaken = e.breaks.FifteenTaken || d >= SplitBreakFirst
		}

		e.status = Working
		e.segmentStart = now
	default:
		e.closeSegment(now)

		e.status = Break
		e.segmentStart = now
	}

	e.persist()

	return nil
}

// TogglePOA moves between Working and POA. During a break it is ignored, a
// break must resume into Working first.
func (e *Engine) TogglePOA(now time.Time) error {
	switch e.status {
	case Idle:
		return errNoActiveShift
	case Break:
		return nil
	case POA:
		e.closeSegment(now)

		e.status = Working
		e.segmentStart = now
	case Working:
		e.closeSegment(now)

		e.status = POA
		e.segmentStart = now
	}

	e.persist()

	return nil
}

// EndShift closes the open segment, whatever its status, finalizes the
// totals into a shift record, and returns the machine to Idle. The record
// is stored locally and the backend session is closed best-effort.
func (e *Engine) EndShift(ctx context.Context, now time.Time) (*models.ShiftRecord, error) {
	if e.status == Idle {
		return nil, errNoActiveShift
	}

	if e.status == Break {
		e.totals.Break += now.Sub(e.segmentStart)
	} else {
		e.closeSegment(now)
	}

	rec := &models.ShiftRecord{
		StartTime:      e.shiftStart,
		EndTime:        now,
		Date:           e.shiftStart.Format(time.DateOnly),
		Timezone:       e.timezone,
		SessionID:      e.sessionID,
		WorkMinutes:    int(e.totals.Work.Minutes()),
		POAMinutes:     int(e.totals.POA.Minutes()),
		BreakMinutes:   int(e.totals.Break.Minutes()),
		DrivingMinutes: int(e.totals.Driving.Minutes()),
	}

	err := e.store.SaveShift(rec)
	if err != nil {
		return nil, err
	}

	err = e.store.ClearSnapshot()
	if err != nil {
		slog.Warn("unable to clear shift snapshot", slog.Any("error", err))
	}

	if e.sessions != nil && e.sessionID != "" {
		err = e.sessions.End(
			ctx,
			e.sessionID,
			rec.WorkMinutes,
			rec.POAMinutes,
			rec.BreakMinutes,
			rec.DrivingMinutes,
		)
		if err != nil {
			slog.Warn("unable to close session with backend",
				slog.Any("error", err),
			)
		}
	}

	e.status = Idle
	e.mode = SixHour
	e.shiftStart = time.Time{}
	e.segmentStart = time.Time{}
	e.totals = Totals{}
	e.cycle = 0
	e.driveCycle = 0
	e.breaks = BreakTracker{}
	e.driving = false
	e.sessionID = ""

	if e.alerts != nil {
		e.alerts.Reset()
	}

	return rec, nil
}

// SetDriving records the driving detector's verdict. Driving time counts
// only while Working; verdicts arriving in any other status are dropped.
func (e *Engine) SetDriving(v bool, now time.Time) {
	if e.status != Working {
		v = false
	}

	if v == e.driving {
		return
	}

	if v {
		e.driving = true
		e.drivingSince = now

		return
	}

	spell := now.Sub(e.drivingSince)
	e.totals.Driving += spell
	e.driveCycle += spell
	e.driving = false
}

// Tick recomputes the live display from wall-clock time. It never mutates
// the persisted totals; the open segment and open driving spell are added
// transiently. While Working, the remaining-time countdowns are handed to
// the alert observer.
func (e *Engine) Tick(now time.Time) Display {
	disp := Display{
		Status:         e.status,
		Mode:           e.mode,
		Work:           e.totals.Work,
		POA:            e.totals.POA,
		Break:          e.totals.Break,
		Driving:        e.totals.Driving,
		WorkRemaining:  remaining(e.mode.Ceiling(), e.cycle),
		DriveRemaining: remaining(DrivingAllowance, e.driveCycle),
		IsDriving:      e.driving,
	}

	if e.status == Idle {
		return disp
	}

	open := now.Sub(e.segmentStart)
	disp.Shift = now.Sub(e.shiftStart)
	disp.Segment = open

	switch e.status {
	case Working:
		disp.Work += open
		disp.WorkRemaining = remaining(e.mode.Ceiling(), e.cycle+open)
	case POA:
		disp.POA += open
	case Break:
		disp.Break += open
	}

	if e.driving {
		spell := now.Sub(e.drivingSince)
		disp.Driving += spell
		disp.DriveRemaining = remaining(DrivingAllowance, e.driveCycle+spell)
	}

	if e.status == Working && e.alerts != nil {
		e.alerts.Observe(disp.WorkRemaining, disp.DriveRemaining)
	}

	return disp
}

// OnSuspendHint flushes state ahead of a possible process suspension. The
// open driving spell is rolled up first so the snapshot stands on its own;
// the open activity segment stays derived from its start time so totals
// survive an arbitrarily long suspension.
func (e *Engine) OnSuspendHint(now time.Time) {
	if e.status == Idle {
		return
	}

	if e.driving {
		e.SetDriving(false, now)
	}

	e.persist()
}

// OnResumeHint recomputes the display after a suspension. Driving evidence
// is stale by now, so the verdict restarts from stopped.
func (e *Engine) OnResumeHint(now time.Time) Display {
	return e.Tick(now)
}

func (e *Engine) closeSegment(now time.Time) {
	d := now.Sub(e.segmentStart)

	switch e.status {
	case Working:
		if e.driving {
			e.SetDriving(false, now)
		}

		e.totals.Work += d
		e.cycle += d
	case POA:
		e.totals.POA += d
	case Break:
		e.totals.Break += d
	}
}

// persist is best-effort. A failed write is logged and superseded by the
// next transition's write; in-memory state stays authoritative.
func (e *Engine) persist() {
	if e.status == Idle {
		return
	}

	err := e.store.SaveSnapshot(e.toSnapshot())
	if err != nil {
		slog.Warn("unable to persist shift snapshot", slog.Any("error", err))
	}
}

func remaining(limit, used time.Duration) time.Duration {
	if used >= limit {
		return 0
	}

	return limit - used
}
