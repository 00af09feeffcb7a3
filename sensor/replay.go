package sensor

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// replayLine is one JSONL entry in a replay file. AfterMs is the delay
// relative to the previous line; the sample timestamp is assigned at
// delivery time so replays behave like a live feed.
type replayLine struct {
	Kind      string  `json:"kind"` // "location" or "motion"
	AfterMs   int64   `json:"after_ms"`
	SpeedKmh  float64 `json:"speed_kmh,omitempty"`
	AccuracyM float64 `json:"accuracy_m,omitempty"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	Z         float64 `json:"z,omitempty"`
}

// Replay delivers samples recorded in a JSONL file, preserving the recorded
// inter-sample delays. It is used for demonstrations and tests in place of a
// live phone feed.
type Replay struct {
	lines     []replayLine
	locations chan Location
	motions   chan Motion
	cancel    context.CancelFunc
	stopOnce  sync.Once
}

// NewReplay loads a replay file. The file is read eagerly so malformed input
// fails at startup rather than mid-shift.
func NewReplay(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening replay file: %w", err)
	}

	defer f.Close()

	var lines []replayLine

	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}

		var line replayLine

		err := json.Unmarshal(scanner.Bytes(), &line)
		if err != nil {
			return nil, fmt.Errorf("parsing replay file: %w", err)
		}

		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading replay file: %w", err)
	}

	return &Replay{
		lines:     lines,
		locations: make(chan Location),
		motions:   make(chan Motion),
	}, nil
}

func (r *Replay) Locations() <-chan Location { return r.locations }

func (r *Replay) Motions() <-chan Motion { return r.motions }

// Start begins sample delivery in the background. Delivery ends when the
// file is exhausted, the context is cancelled, or Stop is called.
func (r *Replay) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	go r.run(ctx)

	return nil
}

func (r *Replay) run(ctx context.Context) {
	for _, line := range r.lines {
		if line.AfterMs > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(line.AfterMs) * time.Millisecond):
			}
		}

		switch line.Kind {
		case "location":
			sample := Location{
				At:        time.Now(),
				SpeedKmh:  line.SpeedKmh,
				AccuracyM: line.AccuracyM,
			}

			select {
			case <-ctx.Done():
				return
			case r.locations <- sample:
			}
		case "motion":
			sample := Motion{
				At: time.Now(),
				X:  line.X,
				Y:  line.Y,
				Z:  line.Z,
			}

			select {
			case <-ctx.Done():
				return
			case r.motions <- sample:
			}
		}
	}
}

// Stop cancels delivery. It may be called multiple times and without a
// preceding Start.
func (r *Replay) Stop() {
	r.stopOnce.Do(func() {
		if r.cancel != nil {
			r.cancel()
		}
	})
}
