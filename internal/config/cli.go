package config

import (
	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Driver   string
	Replay   string
	Sound    string
	AlertCmd string
	SyncURL  string
	Debug    bool
	NoAlerts bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Driver:   ctx.String("driver"),
			Replay:   ctx.String("replay"),
			Sound:    ctx.String("alert-sound"),
			AlertCmd: ctx.String("alert-cmd"),
			SyncURL:  ctx.String("sync-url"),
			Debug:    ctx.Bool("debug"),
			NoAlerts: ctx.Bool("disable-alerts"),
		}

		applyCLIOptions(c, opts)

		return nil
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) {
	if opts.Driver != "" {
		c.Driver.ID = opts.Driver
	}

	if opts.Replay != "" {
		c.System.ReplayFile = opts.Replay
	}

	if opts.Sound != "" {
		if opts.Sound == "off" {
			c.Alerts.Sound = ""
		} else {
			c.Alerts.Sound = opts.Sound
		}
	}

	if opts.AlertCmd != "" {
		c.Alerts.Cmd = opts.AlertCmd
	}

	if opts.SyncURL != "" {
		c.Sync.URL = opts.SyncURL
	}

	if opts.Debug {
		c.System.Debug = true
	}

	if opts.NoAlerts {
		c.Alerts.Enabled = false
	}
}
