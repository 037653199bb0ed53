package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"hypernate/internal/core/model"
)

const (
	fileName = "config.yaml"

	envInterval = "HYPERNATE_INTERVAL"
	envStartOff = "HYPERNATE_START_OFF"
	envIcon     = "HYPERNATE_ICON"
	envLogDir   = "HYPERNATE_LOG_DIR"
)

// Config holds the resolved startup configuration.
type Config struct {
	Interval    time.Duration
	StartActive bool
	IconPath    string
	LogDir      string
}

// TaskConfig converts the configuration to model.TaskConfig.
func (config Config) TaskConfig() model.TaskConfig {
	return model.TaskConfig{
		Interval:    config.Interval,
		StartActive: config.StartActive,
	}
}

// Overrides carries values from command-line flags. Nil fields are unset.
type Overrides struct {
	IntervalSeconds *int
	StartOff        *bool
	IconPath        *string
	LogDir          *string
}

type yamlConfig struct {
	IntervalSeconds int    `yaml:"interval_seconds"`
	StartOff        *bool  `yaml:"start_off"`
	IconPath        string `yaml:"icon_path"`
	LogDir          string `yaml:"log_dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	task := model.DefaultTaskConfig()
	return Config{
		Interval:    task.Interval,
		StartActive: task.StartActive,
	}
}

// Load resolves configuration from file < environment < flags.
// A missing file is not an error. The interval is clamped to model.MinInterval.
func Load(path string, overrides Overrides) (Config, error) {
	config := Default()

	if path != "" {
		if err := applyFile(&config, path); err != nil {
			return config, err
		}
	}
	if err := applyEnv(&config, os.Getenv); err != nil {
		return config, err
	}
	applyOverrides(&config, overrides)

	config.Interval = model.ClampInterval(config.Interval, model.MinInterval)
	return config, nil
}

// DefaultPath returns <configDir>/<appName>/config.yaml.
func DefaultPath(configDir, appName string) string {
	return filepath.Join(configDir, strings.ToLower(appName), fileName)
}

func applyFile(config *Config, path string) error {
	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}

	if fileData.IntervalSeconds > 0 {
		config.Interval = time.Duration(fileData.IntervalSeconds) * time.Second
	}
	if fileData.StartOff != nil {
		config.StartActive = !*fileData.StartOff
	}
	if fileData.IconPath != "" {
		config.IconPath = fileData.IconPath
	}
	if fileData.LogDir != "" {
		config.LogDir = fileData.LogDir
	}
	return nil
}

func applyEnv(config *Config, getenv func(string) string) error {
	if value := strings.TrimSpace(getenv(envInterval)); value != "" {
		seconds, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parse %s: %w", envInterval, err)
		}
		config.Interval = time.Duration(seconds) * time.Second
	}
	if value := strings.TrimSpace(getenv(envStartOff)); value != "" {
		startOff, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parse %s: %w", envStartOff, err)
		}
		config.StartActive = !startOff
	}
	if value := getenv(envIcon); value != "" {
		config.IconPath = value
	}
	if value := getenv(envLogDir); value != "" {
		config.LogDir = value
	}
	return nil
}

func applyOverrides(config *Config, overrides Overrides) {
	if overrides.IntervalSeconds != nil {
		config.Interval = time.Duration(*overrides.IntervalSeconds) * time.Second
	}
	if overrides.StartOff != nil {
		config.StartActive = !*overrides.StartOff
	}
	if overrides.IconPath != nil && *overrides.IconPath != "" {
		config.IconPath = *overrides.IconPath
	}
	if overrides.LogDir != nil && *overrides.LogDir != "" {
		config.LogDir = *overrides.LogDir
	}
}
