// Package sensor defines the location and motion sample feeds consumed by
// the driving detector.
package sensor

import (
	"context"
	"math"
	"time"
)

// Location is a single positioning fix.
type Location struct {
	At        time.Time `json:"at"`
	SpeedKmh  float64   `json:"speed_kmh"`
	AccuracyM float64   `json:"accuracy_m"`
}

// Motion is a single three-axis acceleration sample in g-units.
type Motion struct {
	At time.Time `json:"at"`
	X  float64   `json:"x"`
	Y  float64   `json:"y"`
	Z  float64   `json:"z"`
}

// Magnitude returns the acceleration vector magnitude. At rest this is
// approximately 1.0 (gravity).
func (m Motion) Magnitude() float64 {
	return math.Sqrt(m.X*m.X + m.Y*m.Y + m.Z*m.Z)
}

// Source is a feed of location and motion samples. Start begins delivery and
// Stop cancels it; Stop is idempotent and safe to call when Start was never
// called.
type Source interface {
	Locations() <-chan Location
	Motions() <-chan Motion
	Start(ctx context.Context) error
	Stop()
}

// Nop is a Source that never delivers samples. Its channels stay open so
// receivers block rather than spin.
type Nop struct {
	locations chan Location
	motions   chan Motion
}

func NewNop() *Nop {
	return &Nop{
		locations: make(chan Location),
		motions:   make(chan Motion),
	}
}

func (n *Nop) Locations() <-chan Location { return n.locations }

func (n *Nop) Motions() <-chan Motion { return n.motions }

func (n *Nop) Start(_ context.Context) error { return nil }

func (n *Nop) Stop() {}
