package app

import "github.com/urfave/cli/v2"

var (
	driverFlag = &cli.StringFlag{
		Name:    "driver",
		Aliases: []string{"d"},
		Usage:   "Driver identifier reported to the fleet backend",
	}

	replayFlag = &cli.StringFlag{
		Name:  "replay",
		Usage: "Replay location and motion samples from a JSONL file instead of reading live sensors",
	}

	alertSoundFlag = &cli.StringFlag{
		Name:  "alert-sound",
		Usage: "Play a sound file when a working-time warning fires. Disable with 'off'",
	}

	alertCmdFlag = &cli.StringFlag{
		Name:    "alert-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command when a warning fires. The warning key is appended as the last argument",
	}

	syncURLFlag = &cli.StringFlag{
		Name:  "sync-url",
		Usage: "Base URL of the fleet backend used to open and close shift sessions",
	}

	disableAlertsFlag = &cli.BoolFlag{
		Name:  "disable-alerts",
		Usage: "Disable all working-time warnings for this run",
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Specify a time period for the report. Accepts: today, 7days, 14days, 30days, 90days, all-time",
		Value:   "7days",
	}

	startFlag = &cli.StringFlag{
		Name:    "start",
		Aliases: []string{"s"},
		Usage:   "Specify a start date in the format: YYYY-MM-DD [HH:MM:SS PM] (defaults to the beginning of the day)",
	}

	endFlag = &cli.StringFlag{
		Name:    "end",
		Aliases: []string{"e"},
		Usage:   "Specify an end date in the format: YYYY-MM-DD [HH:MM:SS PM] (defaults to the end of the day)",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print shift records in JSON format",
	}
)
