// Package config is responsible for setting the program config from
// the config file and command-line arguments.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Driver   DriverConfig
		Detector DetectorConfig
		Alerts   AlertConfig
		Sync     SyncConfig
		Display  DisplayConfig
		System   SystemConfig
	}

	// DriverConfig identifies the driver being tracked.
	DriverConfig struct {
		ID       string
		Timezone string
	}

	// DetectorConfig holds the driving-detector thresholds.
	DetectorConfig struct {
		StartSpeedKmh     float64
		StopSpeedKmh      float64
		MaxAccuracyMeters float64
		MotionDelta       float64
		Freshness         time.Duration
	}

	// AlertConfig holds alert delivery settings.
	AlertConfig struct {
		Enabled bool
		Notify  bool
		Sound   string
		Cmd     string
	}

	// SyncConfig holds remote session service settings.
	SyncConfig struct {
		URL   string
		Token string
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme      bool
		TwentyFourHour bool
	}

	// SystemConfig holds system-related settings.
	SystemConfig struct {
		ConfigPath string
		DBPath     string
		StatusPath string
		LogPath    string
		ReplayFile string
		Debug      bool
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.1"

var (
	configDir      = "dutylog"
	configFileName = "config.yml"
	dbFileName     = "dutylog.db"
	statusFileName = "status.json"
	logFileName    = "dutylog.log"
	dbFilePath     string
	configFilePath string
	statusFilePath string
	logFilePath    string
)

func DBFilePath() string {
	return dbFilePath
}

func ConfigFilePath() string {
	return configFilePath
}

func InitializePaths() {
	dutylogEnv := strings.TrimSpace(os.Getenv("DUTYLOG_ENV"))
	if dutylogEnv != "" {
		configFileName = fmt.Sprintf("config_%s.yml", dutylogEnv)
		dbFileName = fmt.Sprintf("dutylog_%s.db", dutylogEnv)
		statusFileName = fmt.Sprintf("status_%s.json", dutylogEnv)
		logFileName = fmt.Sprintf("dutylog_%s.log", dutylogEnv)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dataDir, err := xdg.DataFile(configDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dbFilePath = filepath.Join(dataDir, dbFileName)

	statusFilePath = filepath.Join(dataDir, statusFileName)

	logFilePath = filepath.Join(dataDir, "log", logFileName)
}

// New creates a new Config with default values and applies options.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	cfg.System.ConfigPath = configFilePath
	cfg.System.DBPath = dbFilePath
	cfg.System.StatusPath = statusFilePath
	cfg.System.LogPath = logFilePath

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("config option error: %w", err)
		}
	}

	return cfg, nil
}
