// Package alert turns remaining-time threshold crossings into one-shot
// driver warnings
package alert

import "time"

// Alert keys handed to sinks. Sinks map them to whatever wording or sound
// suits the medium.
const (
	KeyWork45  = "work_45_minutes_remaining"
	KeyWork30  = "work_30_minutes_remaining"
	KeyWork5   = "work_5_minutes_remaining"
	KeyDrive30 = "driving_30_minutes_remaining"
	KeyDrive15 = "driving_15_minutes_remaining"
	KeyDrive5  = "driving_5_minutes_remaining"
)

var (
	workThresholds = []threshold{
		{45 * time.Minute, KeyWork45},
		{30 * time.Minute, KeyWork30},
		{5 * time.Minute, KeyWork5},
	}

	driveThresholds = []threshold{
		{30 * time.Minute, KeyDrive30},
		{15 * time.Minute, KeyDrive15},
		{5 * time.Minute, KeyDrive5},
	}
)

type threshold struct {
	at  time.Duration
	key string
}

// Sink delivers one alert. Delivery is fire-and-forget: a muted device or a
// failed notification must not affect tracking.
type Sink interface {
	Speak(key string)
}

// Dispatcher watches the remaining-time countdowns and fires each threshold
// exactly once per downward crossing. Crossing back above a threshold, which
// happens after a qualifying break resets the cycle, re-arms it.
type Dispatcher struct {
	sink      Sink
	prevWork  time.Duration
	prevDrive time.Duration
}

const unset = time.Duration(1<<63 - 1)

func NewDispatcher(sink Sink) *Dispatcher {
	return &Dispatcher{
		sink:      sink,
		prevWork:  unset,
		prevDrive: unset,
	}
}

// Observe feeds the current remaining values. It is called once per tick
// while the driver is actively working.
func (d *Dispatcher) Observe(workRemaining, driveRemaining time.Duration) {
	d.fire(workThresholds, d.prevWork, workRemaining)
	d.fire(driveThresholds, d.prevDrive, driveRemaining)

	d.prevWork = workRemaining
	d.prevDrive = driveRemaining
}

func (d *Dispatcher) fire(ts []threshold, prev, cur time.Duration) {
	for _, t := range ts {
		if prev > t.at && cur <= t.at {
			go d.sink.Speak(t.key)
		}
	}
}

// Reset forgets the previous observations so a new shift starts with every
// threshold armed.
func (d *Dispatcher) Reset() {
	d.prevWork = unset
	d.prevDrive = unset
}
