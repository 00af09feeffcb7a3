package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/dutylog/dutylog/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the dutylog app instance.
func Get() *cli.App {
	dutylogApp := &cli.App{
		Name: "dutylog",
		Usage: `
		Dutylog tracks driver working time against EU drivers' hours rules from
		the terminal. It records work, periods of availability, and breaks,
		detects driving from location and motion samples, and warns before the
		working-time and driving ceilings are reached.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
			{
				Name: "report",
				Usage: `
				Review recorded days with their compliance outcomes. Defaults to a
				reporting period of 7 days`,
				Action: reportAction,
				Flags: []cli.Flag{
					periodFlag,
					startFlag,
					endFlag,
					jsonFlag,
					noColorFlag,
				},
			},
			{
				Name:   "shifts",
				Usage:  "Print a table of recorded shifts within a time period",
				Action: shiftsAction,
				Flags: []cli.Flag{
					periodFlag,
					startFlag,
					endFlag,
					jsonFlag,
					noColorFlag,
				},
			},
			{
				Name:   "status",
				Usage:  "Print the status of the current shift",
				Action: statusAction,
			},
		},
		Flags: []cli.Flag{
			driverFlag,
			replayFlag,
			alertSoundFlag,
			alertCmdFlag,
			syncURLFlag,
			disableAlertsFlag,
			debugFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
	}

	return dutylogApp
}
