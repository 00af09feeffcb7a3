package sensor

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMagnitude(t *testing.T) {
	cases := []struct {
		name     string
		motion   Motion
		expected float64
	}{
		{
			name:     "at rest",
			motion:   Motion{X: 0, Y: 0, Z: 1.0},
			expected: 1.0,
		},
		{
			name:     "moving",
			motion:   Motion{X: 0.5, Y: 0.3, Z: 1.1},
			expected: math.Sqrt(0.25 + 0.09 + 1.21),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.motion.Magnitude()

			if math.Abs(got-tc.expected) > 1e-9 {
				t.Fatalf("expected magnitude %f, got: %f", tc.expected, got)
			}
		})
	}
}

func TestReplayDeliversSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replay.jsonl")

	content := `{"kind":"location","after_ms":0,"speed_kmh":50,"accuracy_m":10}
{"kind":"motion","after_ms":0,"x":0.2,"y":0.1,"z":1.2}
{"kind":"location","after_ms":0,"speed_kmh":0,"accuracy_m":10}
`

	err := os.WriteFile(path, []byte(content), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	r, err := NewReplay(path)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = r.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}

	defer r.Stop()

	loc := <-r.Locations()
	if loc.SpeedKmh != 50 {
		t.Fatalf("expected speed 50, got: %f", loc.SpeedKmh)
	}

	mot := <-r.Motions()
	if mot.Z != 1.2 {
		t.Fatalf("expected z 1.2, got: %f", mot.Z)
	}

	loc = <-r.Locations()
	if loc.SpeedKmh != 0 {
		t.Fatalf("expected speed 0, got: %f", loc.SpeedKmh)
	}
}

func TestReplayRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replay.jsonl")

	err := os.WriteFile(path, []byte("not json\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	_, err = NewReplay(path)
	if err == nil {
		t.Fatal("expected an error for a malformed replay file")
	}
}

func TestReplayStopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replay.jsonl")

	err := os.WriteFile(path, []byte(""), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	r, err := NewReplay(path)
	if err != nil {
		t.Fatal(err)
	}

	err = r.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	r.Stop()
	r.Stop()
}
