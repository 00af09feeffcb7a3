package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const asciiLogo = `
██████╗ ██╗   ██╗████████╗██╗   ██╗██╗      ██████╗  ██████╗
██╔══██╗██║   ██║╚══██╔══╝╚██╗ ██╔╝██║     ██╔═══██╗██╔════╝
██║  ██║██║   ██║   ██║    ╚████╔╝ ██║     ██║   ██║██║  ███╗
██║  ██║██║   ██║   ██║     ╚██╔╝  ██║     ██║   ██║██║   ██║
██████╔╝╚██████╔╝   ██║      ██║   ███████╗╚██████╔╝╚██████╔╝
╚═════╝  ╚═════╝    ╚═╝      ╚═╝   ╚══════╝ ╚═════╝  ╚═════╝`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	DriverID       string
	Timezone       string
	SpokenAlerts   bool
	TwentyFourHour bool
}

// WithPromptConfig returns an Option that configures settings via interactive
// prompts on first run.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		applyPromptOptions(c, opts)

		return nil
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	opts := PromptOptions{
		SpokenAlerts:   true,
		TwentyFourHour: true,
	}

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure dutylog for the first time.
Fill in your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'dutylog edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Driver ID").
				Description("Used to attribute synced shifts. Leave empty to track locally only.").
				Value(&opts.DriverID),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Timezone").
				Description("IANA name, e.g. Europe/Berlin. 'Local' uses the system timezone.").
				Placeholder("Local").
				Value(&opts.Timezone),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable break and driving-time alerts?").
				Value(&opts.SpokenAlerts),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Use a 24-hour clock?").
				Value(&opts.TwentyFourHour),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) {
	c.Driver.ID = opts.DriverID
	c.Driver.Timezone = opts.Timezone
	c.Alerts.Enabled = opts.SpokenAlerts
	c.Alerts.Notify = opts.SpokenAlerts
	c.Display.TwentyFourHour = opts.TwentyFourHour
}
