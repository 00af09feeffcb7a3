package app

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/dutylog/dutylog/alert"
	"github.com/dutylog/dutylog/driving"
	"github.com/dutylog/dutylog/internal/config"
	"github.com/dutylog/dutylog/internal/log"
	"github.com/dutylog/dutylog/internal/ui"
	"github.com/dutylog/dutylog/sensor"
	"github.com/dutylog/dutylog/session"
	"github.com/dutylog/dutylog/shift"
	"github.com/dutylog/dutylog/stats"
	"github.com/dutylog/dutylog/store"
	"github.com/dutylog/dutylog/tracker"
)

const (
	envNoColor        = "NO_COLOR"
	envDutylogNoColor = "DUTYLOG_NO_COLOR"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// newSensorSource returns the sample source for this run: a JSONL replay
// when one was requested, otherwise a source that never delivers.
func newSensorSource(cfg *config.Config) (sensor.Source, error) {
	if cfg.System.ReplayFile != "" {
		return sensor.NewReplay(cfg.System.ReplayFile)
	}

	return sensor.NewNop(), nil
}

// newAlertObserver assembles the warning pipeline from the alert settings.
// It returns nil when warnings are disabled so the engine skips them
// entirely.
func newAlertObserver(cfg *config.Config) shift.Observer {
	if !cfg.Alerts.Enabled {
		return nil
	}

	var sinks alert.MultiSink

	if cfg.Alerts.Notify {
		sinks = append(sinks, alert.NotifySink{})
	}

	if cfg.Alerts.Sound != "" {
		sinks = append(sinks, alert.SoundSink{Sound: cfg.Alerts.Sound})
	}

	if cfg.Alerts.Cmd != "" {
		sinks = append(sinks, alert.CmdSink{Command: cfg.Alerts.Cmd})
	}

	if len(sinks) == 0 {
		return nil
	}

	return alert.NewDispatcher(sinks)
}

// reportHelper opens the shift store for a reporting command and points the
// stats package at it.
func reportHelper(ctx *cli.Context) error {
	conf := config.Filter(ctx)

	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return err
	}

	stats.Init(db, conf)

	return nil
}

// editConfigAction handles the edit-config command which opens the dutylog
// config file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, config.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

// reportAction prints daily compliance for the specified time period.
func reportAction(ctx *cli.Context) error {
	if err := reportHelper(ctx); err != nil {
		return err
	}

	return stats.Show(os.Stdout, ctx.Bool("json"))
}

// shiftsAction prints a table or JSON dump of recorded shifts.
func shiftsAction(ctx *cli.Context) error {
	if err := reportHelper(ctx); err != nil {
		return err
	}

	return stats.List(os.Stdout, ctx.Bool("json"))
}

// statusAction prints the status of the current shift.
func statusAction(_ *cli.Context) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	return tracker.ReportStatus(cfg)
}

// defaultAction starts the tracking dashboard.
func defaultAction(ctx *cli.Context) error {
	cfg, err := config.New(
		config.WithPromptConfig(config.ConfigFilePath()),
		config.WithViperConfig(config.ConfigFilePath()),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		return err
	}

	log.Init(cfg.System.LogPath, cfg.System.Debug)

	ui.DarkTheme = cfg.Display.DarkTheme

	dbClient, err := store.NewClient(cfg.System.DBPath)
	if err != nil {
		return err
	}

	var sessions shift.SessionService = session.Noop{}
	if cfg.Sync.URL != "" {
		sessions = session.NewClient(cfg.Sync.URL, cfg.Sync.Token)
	}

	engine := shift.New(shift.Config{
		DriverID: cfg.Driver.ID,
		Timezone: cfg.Driver.Timezone,
		Store:    dbClient,
		Sessions: sessions,
		Alerts:   newAlertObserver(cfg),
	})

	snap, err := dbClient.LoadSnapshot()
	if err != nil {
		return err
	}

	if snap != nil {
		engine.Restore(snap)
	}

	detector := driving.NewDetector(driving.Config{
		StartSpeedKmh:     cfg.Detector.StartSpeedKmh,
		StopSpeedKmh:      cfg.Detector.StopSpeedKmh,
		MaxAccuracyMeters: cfg.Detector.MaxAccuracyMeters,
		MotionDelta:       cfg.Detector.MotionDelta,
		Freshness:         cfg.Detector.Freshness,
	})

	source, err := newSensorSource(cfg)
	if err != nil {
		return err
	}

	if err := source.Start(ctx.Context); err != nil {
		return err
	}

	stats.Init(dbClient, &config.FilterConfig{})

	t := tracker.New(engine, detector, source, cfg, stats.Finalize)

	p := tea.NewProgram(t)

	_, err = p.Run()

	return err
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	// Override the default version printer
	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf(
			"https://github.com/dutylog/dutylog/releases/%s\n",
			c.App.Version,
		)
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envDutylogNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	config.InitializePaths()

	return nil
}
