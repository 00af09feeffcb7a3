// Package driving infers whether the vehicle is moving by fusing GPS speed
// and accelerometer magnitude with a hysteresis score
package driving

import (
	"time"

	"github.com/dutylog/dutylog/sensor"
)

const (
	scoreMax       = 6.0
	scoreMin       = -6.0
	flipThreshold  = 3.0
	staleNudge     = 0.2
	restMagnitudeG = 1.0
)

// Config tunes the detector. Zero values are not usable; start from
// DefaultConfig.
type Config struct {
	// StartSpeedKmh is the speed at or above which a fresh fix argues for
	// driving.
	StartSpeedKmh float64
	// StopSpeedKmh is the speed at or below which a fresh fix argues
	// against driving.
	StopSpeedKmh float64
	// MaxAccuracyMeters discards location fixes with worse horizontal
	// accuracy.
	MaxAccuracyMeters float64
	// MotionDelta is how far the accelerometer magnitude must stray from
	// rest gravity before motion is assumed.
	MotionDelta float64
	// Freshness is how long a sample stays trustworthy.
	Freshness time.Duration
}

func DefaultConfig() Config {
	return Config{
		StartSpeedKmh:     8.0,
		StopSpeedKmh:      3.0,
		MaxAccuracyMeters: 60.0,
		MotionDelta:       0.12,
		Freshness:         8 * time.Second,
	}
}

// Detector accumulates evidence from sensor samples. It is not safe for
// concurrent use; the event loop that feeds it serializes all calls.
type Detector struct {
	cfg       Config
	lastSpeed sensor.Location
	hasSpeed  bool
	lastMove  sensor.Motion
	hasMove   bool
	score     float64
	driving   bool
}

func NewDetector(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// OnLocation records a location fix. Fixes with poor accuracy are dropped
// entirely, they do not even decay the score.
func (d *Detector) OnLocation(loc sensor.Location) {
	if loc.AccuracyM > d.cfg.MaxAccuracyMeters {
		return
	}

	d.lastSpeed = loc
	d.hasSpeed = true
}

func (d *Detector) OnMotion(m sensor.Motion) {
	d.lastMove = m
	d.hasMove = true
}

// Step folds the latest samples into the score and returns the driving
// verdict. It is meant to run roughly twice a second. Inside the dead zone
// between the flip thresholds the previous verdict holds.
func (d *Detector) Step(now time.Time) bool {
	speedFresh := d.hasSpeed && now.Sub(d.lastSpeed.At) < d.cfg.Freshness
	motionFresh := d.hasMove && now.Sub(d.lastMove.At) < d.cfg.Freshness

	moving := motionFresh && d.motionSuggestsMoving()

	switch {
	case speedFresh:
		aboveStart := d.lastSpeed.SpeedKmh >= d.cfg.StartSpeedKmh
		belowStop := d.lastSpeed.SpeedKmh <= d.cfg.StopSpeedKmh

		switch {
		case aboveStart && moving:
			d.score += 2
		case aboveStart:
			d.score++
		case belowStop:
			d.score -= 2
		case !moving:
			d.score--
		}
	case motionFresh:
		// GPS is unavailable or stale. Lean gently on motion so brisk
		// walking indoors doesn't get classified as driving.
		if moving {
			d.score += staleNudge
		} else {
			d.score -= staleNudge
		}
	}

	if d.score > scoreMax {
		d.score = scoreMax
	}

	if d.score < scoreMin {
		d.score = scoreMin
	}

	if d.score >= flipThreshold {
		d.driving = true
	} else if d.score <= -flipThreshold {
		d.driving = false
	}

	return d.driving
}

func (d *Detector) motionSuggestsMoving() bool {
	delta := d.lastMove.Magnitude() - restMagnitudeG
	if delta < 0 {
		delta = -delta
	}

	return delta > d.cfg.MotionDelta
}

// Driving returns the current verdict without advancing the score.
func (d *Detector) Driving() bool { return d.driving }

func (d *Detector) Score() float64 { return d.score }

// Reset clears all accumulated evidence and forces the verdict to false.
// Called when the detector is torn down on Break or at shift end.
func (d *Detector) Reset() {
	d.score = 0
	d.driving = false
	d.hasSpeed = false
	d.hasMove = false
}
