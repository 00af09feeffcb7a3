package tracker

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/dutylog/dutylog/sensor"
	"github.com/dutylog/dutylog/shift"
)

func (t *Tracker) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	t.display = t.engine.Tick(time.Time(msg))

	_ = t.writeStatusFile()

	return t, tick()
}

// handleDetect advances the driving detector. The detector only runs while
// the driver is on duty; on break or off shift its evidence is cleared so a
// new work segment starts from a stopped verdict.
func (t *Tracker) handleDetect(msg detectMsg) (tea.Model, tea.Cmd) {
	now := time.Time(msg)

	switch t.engine.Status() {
	case shift.Working, shift.POA:
		t.engine.SetDriving(t.detector.Step(now), now)
	default:
		t.detector.Reset()
		t.engine.SetDriving(false, now)
	}

	return t, detectTick()
}

func (t *Tracker) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := time.Now()

	switch {
	case key.Matches(msg, t.keymap.startShift):
		t.summary = nil
		t.lastErr = t.engine.StartShift(context.Background(), now)

	case key.Matches(msg, t.keymap.toggleBreak):
		t.lastErr = t.engine.ToggleBreak(now)

		if t.engine.Status() == shift.Break {
			t.detector.Reset()
		}

	case key.Matches(msg, t.keymap.togglePOA):
		t.lastErr = t.engine.TogglePOA(now)

	case key.Matches(msg, t.keymap.endShift):
		rec, err := t.engine.EndShift(context.Background(), now)

		t.lastErr = err

		if err == nil {
			t.detector.Reset()

			if t.finalize != nil {
				err = t.finalize(rec)
				if err != nil {
					slog.Warn("unable to finalize shift",
						slog.Any("error", err),
					)
				}
			}

			t.summary = rec
		}

	case key.Matches(msg, t.keymap.suspend):
		return t, tea.Suspend

	case key.Matches(msg, t.keymap.quit):
		t.engine.OnSuspendHint(now)
		t.source.Stop()

		return t, tea.Batch(tea.ClearScreen, tea.Quit)

	default:
		return t, nil
	}

	if t.opts.System.Debug {
		slog.Debug(spew.Sdump(t.display))
	}

	t.display = t.engine.Tick(now)

	return t, nil
}

func (t *Tracker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return t.handleTick(msg)

	case detectMsg:
		return t.handleDetect(msg)

	case locationMsg:
		t.detector.OnLocation(sensor.Location(msg))

		return t, t.waitLocation()

	case motionMsg:
		t.detector.OnMotion(sensor.Motion(msg))

		return t, t.waitMotion()

	case tea.KeyMsg:
		return t.handleKey(msg)

	case tea.SuspendMsg:
		t.engine.OnSuspendHint(time.Now())

		return t, nil

	case tea.ResumeMsg:
		t.display = t.engine.OnResumeHint(time.Now())
		t.detector.Reset()

		return t, nil

	case tea.WindowSizeMsg:
		t.progress.Width = msg.Width - padding*2 - 4
		if t.progress.Width > maxWidth {
			t.progress.Width = maxWidth
		}

		return t, nil

	case progress.FrameMsg:
		progressModel, cmd := t.progress.Update(msg)
		t.progress, _ = progressModel.(progress.Model)

		return t, cmd
	}

	return t, nil
}
