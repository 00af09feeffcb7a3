// Package tracker runs the interactive duty dashboard
package tracker

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dutylog/dutylog/driving"
	"github.com/dutylog/dutylog/internal/config"
	"github.com/dutylog/dutylog/internal/models"
	"github.com/dutylog/dutylog/sensor"
	"github.com/dutylog/dutylog/shift"
)

const (
	padding  = 2
	maxWidth = 80

	// detectInterval is how often detector evidence is folded into a
	// driving verdict; sensor samples arrive independently.
	detectInterval = 500 * time.Millisecond
)

type keymap struct {
	startShift  key.Binding
	toggleBreak key.Binding
	togglePOA   key.Binding
	endShift    key.Binding
	suspend     key.Binding
	quit        key.Binding
}

var defaultKeymap = keymap{
	startShift: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "start shift"),
	),
	toggleBreak: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "break"),
	),
	togglePOA: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "poa"),
	),
	endShift: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "end shift"),
	),
	suspend: key.NewBinding(
		key.WithKeys("ctrl+z"),
		key.WithHelp("ctrl+z", "suspend"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type styles struct {
	base    lipgloss.Style
	title   lipgloss.Style
	working lipgloss.Style
	poa     lipgloss.Style
	onBreak lipgloss.Style
	idle    lipgloss.Style
	driving lipgloss.Style
	hint    lipgloss.Style
	warn    lipgloss.Style
}

func newStyles() styles {
	return styles{
		base:    lipgloss.NewStyle().Padding(1, padding),
		title:   lipgloss.NewStyle().Bold(true),
		working: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		poa:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		onBreak: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		idle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("8")),
		driving: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("3")).Padding(0, 1),
		hint: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		warn: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
}

type (
	tickMsg   time.Time
	detectMsg time.Time

	locationMsg sensor.Location
	motionMsg   sensor.Motion
)

// Tracker is the bubbletea model for a tracking session.
type Tracker struct {
	engine   *shift.Engine
	detector *driving.Detector
	source   sensor.Source
	opts     *config.Config
	finalize func(*models.ShiftRecord) error

	display shift.Display
	summary *models.ShiftRecord
	lastErr error

	keymap   keymap
	styles   styles
	help     help.Model
	progress progress.Model
}

// New assembles the dashboard. finalize is called with each completed shift
// record to attach its compliance outcome.
func New(
	engine *shift.Engine,
	detector *driving.Detector,
	source sensor.Source,
	opts *config.Config,
	finalize func(*models.ShiftRecord) error,
) *Tracker {
	return &Tracker{
		engine:   engine,
		detector: detector,
		source:   source,
		opts:     opts,
		finalize: finalize,
		keymap:   defaultKeymap,
		styles:   newStyles(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient()),
		display:  engine.Tick(time.Now()),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func detectTick() tea.Cmd {
	return tea.Tick(detectInterval, func(t time.Time) tea.Msg {
		return detectMsg(t)
	})
}

func (t *Tracker) waitLocation() tea.Cmd {
	return func() tea.Msg {
		loc, ok := <-t.source.Locations()
		if !ok {
			return nil
		}

		return locationMsg(loc)
	}
}

func (t *Tracker) waitMotion() tea.Cmd {
	return func() tea.Msg {
		m, ok := <-t.source.Motions()
		if !ok {
			return nil
		}

		return motionMsg(m)
	}
}

func (t *Tracker) Init() tea.Cmd {
	return tea.Batch(tick(), detectTick(), t.waitLocation(), t.waitMotion())
}
