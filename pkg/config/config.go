// Package config provides configuration management for qlapps.
// It handles loading and merging the embedded defaults with a user or
// system config file.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

//go:embed default.toml
var defaultConfigData string

// DefaultPickerCommand is the picker invocation used when neither the
// command line nor the config names one.
const DefaultPickerCommand = "rofi -dmenu -i -normal-window -theme Pop-Dark -p '> '"

// DefaultPtyPrefix marks exec lines that must run inside a pty.
const DefaultPtyPrefix = "/run/appimg/run-in-image"

// Config структура
type Config struct {
	DefaultPicker   string             `toml:"default_picker"`
	PtyPrefix       string             `toml:"pty_prefix"`
	LogLevel        string             `toml:"log_level"`
	ApplicationDirs []string           `toml:"application_dirs"`
	Pickers         PickersConfig      `toml:"pickers"`
	Notifications   NotificationConfig `toml:"notifications"`
}

// NotificationConfig описва как се показват фаталните грешки
type NotificationConfig struct {
	Enabled        bool   `toml:"enabled"`
	Tool           string `toml:"tool"`
	Timeout        int    `toml:"timeout"`
	Urgency        string `toml:"urgency"`
	ShowInTerminal bool   `toml:"show_in_terminal"`
}

// NotificationConfigFile е за четене от TOML (с pointers за optional полета)
type NotificationConfigFile struct {
	Enabled        *bool   `toml:"enabled"`
	Tool           *string `toml:"tool"`
	Timeout        *int    `toml:"timeout"`
	Urgency        *string `toml:"urgency"`
	ShowInTerminal *bool   `toml:"show_in_terminal"`
}

// ConfigFile е за четене от TOML файл
type ConfigFile struct {
	DefaultPicker   *string                `toml:"default_picker"`
	PtyPrefix       *string                `toml:"pty_prefix"`
	LogLevel        *string                `toml:"log_level"`
	ApplicationDirs []string               `toml:"application_dirs"`
	Pickers         PickersConfig          `toml:"pickers"`
	Notifications   NotificationConfigFile `toml:"notifications"`
}

// GetUserConfigPath връща пътя до user config
func GetUserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "qlapps", "config.toml")
}

// GetSystemConfigPath връща пътя до system config
func GetSystemConfigPath() string {
	return "/etc/qlapps/config.toml"
}

// Load зарежда config с merge на defaults + user (или system) config.
// A broken user or system file is reported as an error; a missing one is not.
func Load() (*Config, error) {
	defaultCfg, err := loadDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	for _, path := range []string{GetUserConfigPath(), GetSystemConfigPath()} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		fileCfg, err := loadConfigFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		return mergeConfigs(defaultCfg, fileCfg), nil
	}

	return defaultCfg, nil
}

// LoadFile зарежда defaults и ги merge-ва с конкретен файл
func LoadFile(path string) (*Config, error) {
	defaultCfg, err := loadDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	fileCfg, err := loadConfigFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return mergeConfigs(defaultCfg, fileCfg), nil
}

// loadDefaultConfig зарежда вградения default config
func loadDefaultConfig() (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(defaultConfigData, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadConfigFromFile зарежда config от файл
func loadConfigFromFile(path string) (*ConfigFile, error) {
	var cfg ConfigFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return &cfg, nil
}

// mergeConfigs merge user config с defaults (user override defaults)
func mergeConfigs(defaultCfg *Config, userCfg *ConfigFile) *Config {
	merged := *defaultCfg

	if userCfg.DefaultPicker != nil && *userCfg.DefaultPicker != "" {
		merged.DefaultPicker = *userCfg.DefaultPicker
	}
	// Празен pty_prefix изключва pty wrapper-а
	if userCfg.PtyPrefix != nil {
		merged.PtyPrefix = *userCfg.PtyPrefix
	}
	if userCfg.LogLevel != nil && *userCfg.LogLevel != "" {
		merged.LogLevel = *userCfg.LogLevel
	}
	if len(userCfg.ApplicationDirs) > 0 {
		merged.ApplicationDirs = userCfg.ApplicationDirs
	}

	mergePickerConfigs(&merged.Pickers, &userCfg.Pickers)
	mergeNotificationConfig(&merged.Notifications, &userCfg.Notifications)

	return &merged
}

// mergeNotificationConfig мерджва notification конфигурация
func mergeNotificationConfig(merged *NotificationConfig, user *NotificationConfigFile) {
	if user.Enabled != nil {
		merged.Enabled = *user.Enabled
	}
	if user.Tool != nil && *user.Tool != "" {
		merged.Tool = *user.Tool
	}
	if user.Timeout != nil {
		merged.Timeout = *user.Timeout
	}
	if user.Urgency != nil && *user.Urgency != "" {
		merged.Urgency = *user.Urgency
	}
	if user.ShowInTerminal != nil {
		merged.ShowInTerminal = *user.ShowInTerminal
	}
}

// InitUserConfig копира default config в user config директорията
func InitUserConfig() (string, error) {
	userConfigPath := GetUserConfigPath()
	userConfigDir := filepath.Dir(userConfigPath)

	if _, err := os.Stat(userConfigPath); err == nil {
		return "", fmt.Errorf("config already exists: %s", userConfigPath)
	}

	if err := os.MkdirAll(userConfigDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(userConfigPath, []byte(defaultConfigData), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return userConfigPath, nil
}
