package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/dutylog/dutylog/internal/timeutil"
	"github.com/dutylog/dutylog/shift"
)

const lowRemaining = 30 * time.Minute

func (t *Tracker) statusLabel() string {
	switch t.display.Status {
	case shift.Working:
		return t.styles.working.Render("[Working]")
	case shift.POA:
		return t.styles.poa.Render("[POA]")
	case shift.Break:
		return t.styles.onBreak.Render("[Break]")
	default:
		return t.styles.idle.Render("[Off duty]")
	}
}

func (t *Tracker) remainingLabel(d time.Duration) string {
	label := timeutil.FormatDuration(d)

	if d <= lowRemaining {
		return t.styles.warn.Render(label)
	}

	return label
}

func (t *Tracker) idleView() string {
	var s strings.Builder

	s.WriteString(t.styles.title.Render("dutylog") + " " + t.statusLabel())
	s.WriteString("\n\nNo shift in progress.")

	if t.lastErr != nil {
		s.WriteString("\n\n" + t.styles.warn.Render(t.lastErr.Error()))
	}

	s.WriteString("\n\n" + t.help.ShortHelpView([]key.Binding{
		t.keymap.startShift,
		t.keymap.quit,
	}))

	return s.String()
}

func (t *Tracker) summaryView() string {
	var s strings.Builder

	rec := t.summary

	s.WriteString(t.styles.title.Render("Shift complete") + "\n\n")

	s.WriteString(fmt.Sprintf("Work:    %s\n", timeutil.FormatMins(rec.WorkMinutes)))
	s.WriteString(fmt.Sprintf("POA:     %s\n", timeutil.FormatMins(rec.POAMinutes)))
	s.WriteString(fmt.Sprintf("Breaks:  %s\n", timeutil.FormatMins(rec.BreakMinutes)))
	s.WriteString(fmt.Sprintf("Driving: %s\n", timeutil.FormatMins(rec.DrivingMinutes)))

	s.WriteString(fmt.Sprintf("\nCompliance score: %d\n", rec.Score))

	if len(rec.Violations) > 0 {
		s.WriteString(t.styles.warn.Render("Violations:") + "\n")

		for _, v := range rec.Violations {
			s.WriteString("  - " + v + "\n")
		}
	}

	s.WriteString("\n" + t.help.ShortHelpView([]key.Binding{
		t.keymap.startShift,
		t.keymap.quit,
	}))

	return s.String()
}

func (t *Tracker) shiftHelpView() string {
	if t.display.Status == shift.Break {
		return "\n\n" + t.help.ShortHelpView([]key.Binding{
			t.keymap.toggleBreak,
			t.keymap.endShift,
			t.keymap.quit,
		})
	}

	return "\n\n" + t.help.ShortHelpView([]key.Binding{
		t.keymap.toggleBreak,
		t.keymap.togglePOA,
		t.keymap.endShift,
		t.keymap.quit,
	})
}

func (t *Tracker) shiftView() string {
	var s strings.Builder

	s.WriteString(t.styles.title.Render("dutylog") + " " + t.statusLabel())

	if t.display.IsDriving {
		s.WriteString(" " + t.styles.driving.Render("DRIVING"))
	}

	s.WriteString(" " + t.styles.hint.Render(
		fmt.Sprintf("(%s cycle)", t.display.Mode),
	))

	s.WriteString("\n\n")

	s.WriteString(fmt.Sprintf("Work:    %s\n", timeutil.FormatDuration(t.display.Work)))
	s.WriteString(fmt.Sprintf("POA:     %s\n", timeutil.FormatDuration(t.display.POA)))
	s.WriteString(fmt.Sprintf("Breaks:  %s\n", timeutil.FormatDuration(t.display.Break)))
	s.WriteString(fmt.Sprintf("Driving: %s\n", timeutil.FormatDuration(t.display.Driving)))

	s.WriteString("\n")

	s.WriteString(fmt.Sprintf(
		"Work remaining:    %s\n",
		t.remainingLabel(t.display.WorkRemaining),
	))
	s.WriteString(fmt.Sprintf(
		"Driving remaining: %s\n",
		t.remainingLabel(t.display.DriveRemaining),
	))

	ceiling := t.display.Mode.Ceiling()
	used := ceiling - t.display.WorkRemaining

	s.WriteString("\n")
	s.WriteString(t.progress.ViewAs(float64(used) / float64(ceiling)))

	s.WriteString("\n\n" + t.styles.hint.Render(
		"on shift for "+timeutil.FormatDuration(t.display.Shift),
	))

	if t.lastErr != nil {
		s.WriteString("\n\n" + t.styles.warn.Render(t.lastErr.Error()))
	}

	s.WriteString(t.shiftHelpView())

	return s.String()
}

func (t *Tracker) View() string {
	var view string

	switch {
	case t.display.Status != shift.Idle:
		view = t.shiftView()
	case t.summary != nil:
		view = t.summaryView()
	default:
		view = t.idleView()
	}

	return t.styles.base.Render(view)
}
