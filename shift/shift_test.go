package shift

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dutylog/dutylog/internal/models"
)

var shiftStart = time.Date(2024, 3, 4, 6, 0, 0, 0, time.UTC)

type memStore struct {
	snapshot *models.Snapshot
	shifts   []*models.ShiftRecord
	saves    int
}

func (m *memStore) SaveSnapshot(snap *models.Snapshot) error {
	m.snapshot = snap
	m.saves++

	return nil
}

func (m *memStore) ClearSnapshot() error {
	m.snapshot = nil
	return nil
}

func (m *memStore) SaveShift(rec *models.ShiftRecord) error {
	m.shifts = append(m.shifts, rec)
	return nil
}

type stubSessions struct {
	id       string
	startErr error
	ended    []string
}

func (s *stubSessions) Start(_ context.Context, _, _ string) (string, error) {
	return s.id, s.startErr
}

func (s *stubSessions) End(_ context.Context, id string, _, _, _, _ int) error {
	s.ended = append(s.ended, id)
	return nil
}

func newTestEngine(t *testing.T) (*Engine, *memStore) {
	t.Helper()

	db := &memStore{}

	e := New(Config{
		DriverID: "driver-7",
		Timezone: "Europe/Berlin",
		Store:    db,
	})

	return e, db
}

func startedEngine(t *testing.T) (*Engine, *memStore) {
	t.Helper()

	e, db := newTestEngine(t)

	err := e.StartShift(context.Background(), shiftStart)
	if err != nil {
		t.Fatal(err)
	}

	return e, db
}

func TestStartShiftRequiresIdle(t *testing.T) {
	e, _ := startedEngine(t)

	err := e.StartShift(context.Background(), shiftStart.Add(time.Hour))
	if err == nil {
		t.Fatal("expected an error when a shift is already in progress")
	}
}

func TestStartShiftRequiresDriverID(t *testing.T) {
	e := New(Config{Store: &memStore{}})

	err := e.StartShift(context.Background(), shiftStart)
	if err == nil {
		t.Fatal("expected an error without a driver id")
	}

	if e.Status() != Idle {
		t.Fatalf("expected the engine to stay idle, got: %s", e.Status())
	}
}

func TestStartShiftSurvivesBackendFailure(t *testing.T) {
	db := &memStore{}

	e := New(Config{
		DriverID: "driver-7",
		Store:    db,
		Sessions: &stubSessions{startErr: errors.New("backend down")},
	})

	err := e.StartShift(context.Background(), shiftStart)
	if err != nil {
		t.Fatal(err)
	}

	if e.Status() != Working {
		t.Fatalf("expected working, got: %s", e.Status())
	}

	if e.SessionID() != "" {
		t.Fatalf("expected no session id, got: %s", e.SessionID())
	}
}

func TestNoTimeIsLostAcrossTransitions(t *testing.T) {
	e, _ := startedEngine(t)

	now := shiftStart.Add(50 * time.Minute)

	err := e.TogglePOA(now)
	if err != nil {
		t.Fatal(err)
	}

	now = now.Add(20 * time.Minute)

	err = e.ToggleBreak(now)
	if err != nil {
		t.Fatal(err)
	}

	now = now.Add(10 * time.Minute)

	err = e.ToggleBreak(now)
	if err != nil {
		t.Fatal(err)
	}

	now = now.Add(35 * time.Minute)
	disp := e.Tick(now)

	total := disp.Work + disp.POA + disp.Break

	if total != now.Sub(shiftStart) {
		t.Fatalf("expected %s accounted for, got: %s",
			now.Sub(shiftStart), total)
	}
}

func TestBreakJustUnderQualifyingDoesNotReset(t *testing.T) {
	e, _ := startedEngine(t)

	now := shiftStart.Add(2 * time.Hour)

	_ = e.ToggleBreak(now)

	now = now.Add(44*time.Minute + 59*time.Second)

	_ = e.ToggleBreak(now)

	disp := e.Tick(now)

	// The cycle keeps its two hours of work, but the break still promoted
	// the ceiling to nine hours.
	expected := 9*time.Hour - 2*time.Hour

	if disp.WorkRemaining != expected {
		t.Fatalf("expected %s remaining, got: %s", expected, disp.WorkRemaining)
	}
}

func TestQualifyingBreakResetsCycle(t *testing.T) {
	e, _ := startedEngine(t)

	now := shiftStart.Add(2 * time.Hour)

	_ = e.ToggleBreak(now)

	now = now.Add(45 * time.Minute)

	_ = e.ToggleBreak(now)

	disp := e.Tick(now)

	if disp.WorkRemaining != 9*time.Hour {
		t.Fatalf("expected a full nine-hour cycle, got: %s", disp.WorkRemaining)
	}

	if disp.Mode != NineHour {
		t.Fatalf("expected promotion to nine hours, got: %s", disp.Mode)
	}
}

func TestSplitBreakResetsOnceAtSecondClose(t *testing.T) {
	e, _ := startedEngine(t)

	now := shiftStart.Add(time.Hour)

	_ = e.ToggleBreak(now)

	now = now.Add(15 * time.Minute)

	_ = e.ToggleBreak(now)

	disp := e.Tick(now)

	// First half of the split: no reset yet.
	if disp.WorkRemaining != 9*time.Hour-time.Hour {
		t.Fatalf("expected no reset after the first half, got: %s",
			disp.WorkRemaining)
	}

	now = now.Add(time.Hour)

	_ = e.ToggleBreak(now)

	now = now.Add(30 * time.Minute)

	_ = e.ToggleBreak(now)

	disp = e.Tick(now)

	if disp.WorkRemaining != 9*time.Hour {
		t.Fatalf("expected a reset at the second half's close, got: %s",
			disp.WorkRemaining)
	}
}

func TestSplitBreakWorksInReverseOrder(t *testing.T) {
	e, _ := startedEngine(t)

	now := shiftStart.Add(time.Hour)

	_ = e.ToggleBreak(now)

	now = now.Add(30 * time.Minute)

	_ = e.ToggleBreak(now)

	now = now.Add(time.Hour)

	_ = e.ToggleBreak(now)

	now = now.Add(15 * time.Minute)

	_ = e.ToggleBreak(now)

	disp := e.Tick(now)

	if disp.WorkRemaining != 9*time.Hour {
		t.Fatalf("expected a reset for the 30+15 split, got: %s",
			disp.WorkRemaining)
	}
}

func TestShortBreaksNeverComposeWithoutFifteen(t *testing.T) {
	e, _ := startedEngine(t)

	now := shiftStart.Add(time.Hour)

	for range 4 {
		_ = e.ToggleBreak(now)

		now = now.Add(10 * time.Minute)

		_ = e.ToggleBreak(now)

		now = now.Add(30 * time.Minute)
	}

	disp := e.Tick(now)

	if disp.WorkRemaining == disp.Mode.Ceiling() {
		t.Fatal("short breaks must never reset the cycle")
	}

	if disp.Mode != SixHour {
		t.Fatalf("ten-minute breaks must not promote the mode, got: %s", disp.Mode)
	}
}

func TestPromotionSurvivesLaterReset(t *testing.T) {
	e, _ := startedEngine(t)

	now := shiftStart.Add(time.Hour)

	// Promote with a 20-minute break, then reset with a 45-minute one.
	_ = e.ToggleBreak(now)

	now = now.Add(20 * time.Minute)

	_ = e.ToggleBreak(now)

	now = now.Add(time.Hour)

	_ = e.ToggleBreak(now)

	now = now.Add(45 * time.Minute)

	_ = e.ToggleBreak(now)

	if e.Mode() != NineHour {
		t.Fatalf("expected the promotion to survive the reset, got: %s", e.Mode())
	}
}

func TestModeReturnsToSixHourOnNewShift(t *testing.T) {
	e, _ := startedEngine(t)

	now := shiftStart.Add(time.Hour)

	_ = e.ToggleBreak(now)

	now = now.Add(45 * time.Minute)

	_ = e.ToggleBreak(now)

	now = now.Add(time.Hour)

	_, err := e.EndShift(context.Background(), now)
	if err != nil {
		t.Fatal(err)
	}

	err = e.StartShift(context.Background(), now.Add(12*time.Hour))
	if err != nil {
		t.Fatal(err)
	}

	if e.Mode() != SixHour {
		t.Fatalf("expected a fresh shift to start at six hours, got: %s", e.Mode())
	}
}

func TestTogglePOADuringBreakIsNoOp(t *testing.T) {
	e, db := startedEngine(t)

	now := shiftStart.Add(time.Hour)

	_ = e.ToggleBreak(now)

	before := *db.snapshot
	saves := db.saves

	err := e.TogglePOA(now.Add(5 * time.Minute))
	if err != nil {
		t.Fatal(err)
	}

	if e.Status() != Break {
		t.Fatalf("expected to stay on break, got: %s", e.Status())
	}

	if db.saves != saves {
		t.Fatal("a no-op must not persist")
	}

	if diff := cmp.Diff(&before, db.snapshot); diff != "" {
		t.Fatalf("state changed on a no-op (-want +got):\n%s", diff)
	}
}

func TestTransitionsRejectedWhileIdle(t *testing.T) {
	e, _ := newTestEngine(t)

	if err := e.ToggleBreak(shiftStart); err == nil {
		t.Fatal("expected an error from ToggleBreak while idle")
	}

	if err := e.TogglePOA(shiftStart); err == nil {
		t.Fatal("expected an error from TogglePOA while idle")
	}

	if _, err := e.EndShift(context.Background(), shiftStart); err == nil {
		t.Fatal("expected an error from EndShift while idle")
	}
}

func TestEndShiftDuringBreakRollsOpenSegment(t *testing.T) {
	e, db := startedEngine(t)

	now := shiftStart.Add(4 * time.Hour)

	_ = e.ToggleBreak(now)

	now = now.Add(25 * time.Minute)

	rec, err := e.EndShift(context.Background(), now)
	if err != nil {
		t.Fatal(err)
	}

	if rec.BreakMinutes != 25 {
		t.Fatalf("expected 25 break minutes, got: %d", rec.BreakMinutes)
	}

	if rec.WorkMinutes != 240 {
		t.Fatalf("expected 240 work minutes, got: %d", rec.WorkMinutes)
	}

	if e.Status() != Idle {
		t.Fatalf("expected idle after end, got: %s", e.Status())
	}

	if db.snapshot != nil {
		t.Fatal("expected the snapshot to be cleared")
	}

	if len(db.shifts) != 1 {
		t.Fatalf("expected one stored shift, got: %d", len(db.shifts))
	}
}

func TestEndShiftClosesBackendSession(t *testing.T) {
	db := &memStore{}
	sessions := &stubSessions{id: "sess-9"}

	e := New(Config{
		DriverID: "driver-7",
		Store:    db,
		Sessions: sessions,
	})

	err := e.StartShift(context.Background(), shiftStart)
	if err != nil {
		t.Fatal(err)
	}

	rec, err := e.EndShift(context.Background(), shiftStart.Add(8*time.Hour))
	if err != nil {
		t.Fatal(err)
	}

	if rec.SessionID != "sess-9" {
		t.Fatalf("expected session id on the record, got: %s", rec.SessionID)
	}

	if len(sessions.ended) != 1 || sessions.ended[0] != "sess-9" {
		t.Fatalf("expected the backend session to be closed, got: %v", sessions.ended)
	}
}

func TestDrivingCountsOnlyWhileWorking(t *testing.T) {
	e, _ := startedEngine(t)

	now := shiftStart.Add(time.Hour)

	e.SetDriving(true, now)

	now = now.Add(30 * time.Minute)

	e.SetDriving(false, now)

	disp := e.Tick(now)

	if disp.Driving != 30*time.Minute {
		t.Fatalf("expected 30m driving, got: %s", disp.Driving)
	}

	// Verdicts arriving during a break are dropped.
	_ = e.ToggleBreak(now)

	e.SetDriving(true, now.Add(time.Minute))

	now = now.Add(10 * time.Minute)

	disp = e.Tick(now)

	if disp.Driving != 30*time.Minute {
		t.Fatalf("driving must not accumulate on break, got: %s", disp.Driving)
	}
}

func TestOpenDrivingSpellClosedOnBreak(t *testing.T) {
	e, _ := startedEngine(t)

	now := shiftStart.Add(time.Hour)

	e.SetDriving(true, now)

	now = now.Add(time.Hour)

	// Break starts mid-spell; the spell closes with the work segment.
	_ = e.ToggleBreak(now)

	disp := e.Tick(now)

	if disp.Driving != time.Hour {
		t.Fatalf("expected 1h driving, got: %s", disp.Driving)
	}

	if disp.IsDriving {
		t.Fatal("expected the driving flag cleared on break")
	}
}

func TestDriveRemainingResetOnQualifyingBreak(t *testing.T) {
	e, _ := startedEngine(t)

	now := shiftStart

	e.SetDriving(true, now)

	now = now.Add(2 * time.Hour)

	e.SetDriving(false, now)

	disp := e.Tick(now)

	if disp.DriveRemaining != 2*time.Hour+30*time.Minute {
		t.Fatalf("expected 2h30m driving remaining, got: %s", disp.DriveRemaining)
	}

	_ = e.ToggleBreak(now)

	now = now.Add(45 * time.Minute)

	_ = e.ToggleBreak(now)

	disp = e.Tick(now)

	if disp.DriveRemaining != DrivingAllowance {
		t.Fatalf("expected a full driving allowance, got: %s", disp.DriveRemaining)
	}

	// Shift-level driving total is untouched by the reset.
	if disp.Driving != 2*time.Hour {
		t.Fatalf("expected the shift total to keep 2h, got: %s", disp.Driving)
	}
}

func TestTickIsPure(t *testing.T) {
	e, db := startedEngine(t)

	saves := db.saves
	now := shiftStart.Add(30 * time.Minute)

	first := e.Tick(now)
	second := e.Tick(now)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("tick mutated state (-want +got):\n%s", diff)
	}

	if db.saves != saves {
		t.Fatal("tick must never persist")
	}
}

func TestRestoreAfterSuspension(t *testing.T) {
	e, db := startedEngine(t)

	now := shiftStart.Add(time.Hour)

	e.SetDriving(true, now.Add(-10*time.Minute))
	e.OnSuspendHint(now)

	restored := New(Config{DriverID: "driver-7", Store: db})
	restored.Restore(db.snapshot)

	// Two hours pass while the process is suspended. The whole gap belongs
	// to the open working segment.
	now = now.Add(2 * time.Hour)
	disp := restored.OnResumeHint(now)

	if disp.Work != 3*time.Hour {
		t.Fatalf("expected 3h work after resuming, got: %s", disp.Work)
	}

	if disp.Driving != 10*time.Minute {
		t.Fatalf("expected the closed driving spell kept, got: %s", disp.Driving)
	}

	if disp.IsDriving {
		t.Fatal("the driving verdict must restart from stopped")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	e, db := startedEngine(t)

	now := shiftStart.Add(time.Hour)

	_ = e.ToggleBreak(now)

	now = now.Add(20 * time.Minute)

	_ = e.ToggleBreak(now)

	restored := New(Config{DriverID: "driver-7", Store: db})
	restored.Restore(db.snapshot)

	if restored.Status() != Working {
		t.Fatalf("expected working, got: %s", restored.Status())
	}

	if restored.Mode() != NineHour {
		t.Fatalf("expected the promotion restored, got: %s", restored.Mode())
	}

	now = now.Add(time.Hour)

	want := e.Tick(now)
	got := restored.Tick(now)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("restored display mismatch (-want +got):\n%s", diff)
	}
}
