package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyDriverID        = "driver.id"
	keyDriverTimezone  = "driver.timezone"
	keyStartSpeed      = "detector.start_speed_kmh"
	keyStopSpeed       = "detector.stop_speed_kmh"
	keyMaxAccuracy     = "detector.max_accuracy_meters"
	keyMotionDelta     = "detector.motion_delta"
	keySampleFreshness = "detector.freshness"
	keyAlertsEnabled   = "alerts.enabled"
	keyAlertsNotify    = "alerts.notify"
	keyAlertsSound     = "alerts.sound"
	keyAlertsCmd       = "alerts.cmd"
	keySyncURL         = "sync.url"
	keySyncToken       = "sync.token"
	keyDarkTheme       = "display.dark_theme"
	keyTwentyFourHour  = "display.24hr_clock"
)

// WithViperConfig returns an Option that loads configuration from Viper.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading config file failed: %w", err)
		}

		if err := v.WriteConfig(); err != nil {
			return fmt.Errorf("writing default config failed: %w", err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper defaults. Values already present on the Config
// (from the first-run prompt) take precedence over the built-in defaults so
// that they end up in the file written on first run.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyDriverID, c.Driver.ID)
	v.SetDefault(keyDriverTimezone, firstNonEmpty(c.Driver.Timezone, "Local"))
	v.SetDefault(keyStartSpeed, 8.0)
	v.SetDefault(keyStopSpeed, 3.0)
	v.SetDefault(keyMaxAccuracy, 60.0)
	v.SetDefault(keyMotionDelta, 0.12)
	v.SetDefault(keySampleFreshness, "8s")
	v.SetDefault(keyAlertsEnabled, true)
	v.SetDefault(keyAlertsNotify, true)
	v.SetDefault(keyAlertsSound, "")
	v.SetDefault(keyAlertsCmd, "")
	v.SetDefault(keySyncURL, "")
	v.SetDefault(keySyncToken, "")
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyTwentyFourHour, c.Display.TwentyFourHour)
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	c.Driver.ID = v.GetString(keyDriverID)
	c.Driver.Timezone = v.GetString(keyDriverTimezone)

	c.Detector.StartSpeedKmh = v.GetFloat64(keyStartSpeed)
	c.Detector.StopSpeedKmh = v.GetFloat64(keyStopSpeed)
	c.Detector.MaxAccuracyMeters = v.GetFloat64(keyMaxAccuracy)
	c.Detector.MotionDelta = v.GetFloat64(keyMotionDelta)

	freshness, err := time.ParseDuration(v.GetString(keySampleFreshness))
	if err != nil {
		return fmt.Errorf("invalid detector freshness: %w", err)
	}

	c.Detector.Freshness = freshness

	c.Alerts.Enabled = v.GetBool(keyAlertsEnabled)
	c.Alerts.Notify = v.GetBool(keyAlertsNotify)
	c.Alerts.Sound = v.GetString(keyAlertsSound)
	c.Alerts.Cmd = v.GetString(keyAlertsCmd)

	c.Sync.URL = v.GetString(keySyncURL)
	c.Sync.Token = v.GetString(keySyncToken)

	c.Display.DarkTheme = v.GetBool(keyDarkTheme)
	c.Display.TwentyFourHour = v.GetBool(keyTwentyFourHour)

	return nil
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}
