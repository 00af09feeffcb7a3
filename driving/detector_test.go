package driving

import (
	"testing"
	"time"

	"github.com/dutylog/dutylog/sensor"
)

var epoch = time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)

func movingMotion(at time.Time) sensor.Motion {
	return sensor.Motion{At: at, X: 0.4, Y: 0.3, Z: 1.2}
}

func restingMotion(at time.Time) sensor.Motion {
	return sensor.Motion{At: at, X: 0, Y: 0, Z: 1.0}
}

func TestStepRequiresSustainedEvidence(t *testing.T) {
	d := NewDetector(DefaultConfig())

	d.OnLocation(sensor.Location{At: epoch, SpeedKmh: 50, AccuracyM: 10})
	d.OnMotion(movingMotion(epoch))

	if d.Step(epoch) {
		t.Fatal("a single sample must not flip the verdict")
	}

	if !d.Step(epoch.Add(500 * time.Millisecond)) {
		t.Fatal("expected driving after the score crossed the threshold")
	}
}

func TestStepStopsAfterSustainedLowSpeed(t *testing.T) {
	d := NewDetector(DefaultConfig())

	d.OnLocation(sensor.Location{At: epoch, SpeedKmh: 50, AccuracyM: 10})
	d.OnMotion(movingMotion(epoch))

	now := epoch

	for range 3 {
		now = now.Add(500 * time.Millisecond)
		d.Step(now)
	}

	if !d.Driving() {
		t.Fatal("expected driving after sustained high speed")
	}

	// Vehicle stops. One low-speed sample lands in the dead zone and the
	// verdict must hold.
	now = now.Add(500 * time.Millisecond)
	d.OnLocation(sensor.Location{At: now, SpeedKmh: 0, AccuracyM: 10})
	d.OnMotion(restingMotion(now))

	if !d.Step(now) {
		t.Fatal("verdict must hold inside the dead zone")
	}

	for range 5 {
		now = now.Add(500 * time.Millisecond)
		d.OnLocation(sensor.Location{At: now, SpeedKmh: 0, AccuracyM: 10})
		d.Step(now)
	}

	if d.Driving() {
		t.Fatal("expected stopped after sustained low speed")
	}
}

func TestPoorAccuracyFixIsDiscarded(t *testing.T) {
	d := NewDetector(DefaultConfig())

	d.OnLocation(sensor.Location{At: epoch, SpeedKmh: 80, AccuracyM: 120})
	d.OnMotion(restingMotion(epoch))

	for i := range 10 {
		d.Step(epoch.Add(time.Duration(i) * 500 * time.Millisecond))
	}

	if d.Driving() {
		t.Fatal("a poor-accuracy fix must not count as evidence")
	}
}

func TestStaleSpeedNudgesOnMotionAlone(t *testing.T) {
	d := NewDetector(DefaultConfig())

	// Speed sample is well past the freshness window by the time Step runs.
	d.OnLocation(sensor.Location{At: epoch.Add(-time.Minute), SpeedKmh: 50, AccuracyM: 10})
	d.OnMotion(movingMotion(epoch))

	d.Step(epoch)

	if got := d.Score(); got != 0.2 {
		t.Fatalf("expected a +0.2 nudge, got: %f", got)
	}

	// Brisk walking alone should never reach the flip threshold quickly.
	for i := 1; i < 10; i++ {
		now := epoch.Add(time.Duration(i) * 500 * time.Millisecond)
		d.OnMotion(movingMotion(now))
		d.Step(now)
	}

	if d.Driving() {
		t.Fatal("motion-only evidence accumulates too slowly to flip in ten ticks")
	}
}

func TestBothStaleHoldsScore(t *testing.T) {
	d := NewDetector(DefaultConfig())

	d.OnLocation(sensor.Location{At: epoch.Add(-time.Minute), SpeedKmh: 50, AccuracyM: 10})
	d.OnMotion(sensor.Motion{At: epoch.Add(-time.Minute), X: 0.4, Y: 0.3, Z: 1.2})

	d.Step(epoch)

	if got := d.Score(); got != 0 {
		t.Fatalf("expected the score to hold with no fresh samples, got: %f", got)
	}
}

func TestScoreIsClamped(t *testing.T) {
	d := NewDetector(DefaultConfig())

	now := epoch

	for range 20 {
		now = now.Add(500 * time.Millisecond)
		d.OnLocation(sensor.Location{At: now, SpeedKmh: 90, AccuracyM: 5})
		d.OnMotion(movingMotion(now))
		d.Step(now)
	}

	if got := d.Score(); got != 6 {
		t.Fatalf("expected the score clamped to 6, got: %f", got)
	}
}

func TestResetForcesStopped(t *testing.T) {
	d := NewDetector(DefaultConfig())

	now := epoch

	for range 3 {
		now = now.Add(500 * time.Millisecond)
		d.OnLocation(sensor.Location{At: now, SpeedKmh: 50, AccuracyM: 10})
		d.OnMotion(movingMotion(now))
		d.Step(now)
	}

	if !d.Driving() {
		t.Fatal("expected driving before reset")
	}

	d.Reset()

	if d.Driving() || d.Score() != 0 {
		t.Fatal("expected a cleared detector after reset")
	}
}
