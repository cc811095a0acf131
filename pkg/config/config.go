// Package config loads tasksheet settings from defaults, an optional YAML file,
// a .env file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/caarlos0/env/v9"
	"github.com/harrisonrobin/tasksheet/pkg/mapping"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	xdgAppName = "tasksheet"
	configFile = "config.yaml"
	envFile    = ".env"
)

// Store drivers.
const (
	DriverSheets = "sheets"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

type StoreConfig struct {
	Driver string `yaml:"driver" env:"DRIVER"`
	Path   string `yaml:"path" env:"PATH"`
}

type SheetsConfig struct {
	Tasks string `yaml:"tasks" env:"TASKS"`
	Users string `yaml:"users" env:"USERS"`
}

type LogConfig struct {
	Level      string `yaml:"level" env:"LEVEL"`
	Format     string `yaml:"format" env:"FORMAT"`
	File       string `yaml:"file" env:"FILE"`
	MaxSize    int    `yaml:"maxSize" env:"MAX_SIZE"`
	MaxBackups int    `yaml:"maxBackups" env:"MAX_BACKUPS"`
	MaxAge     int    `yaml:"maxAge" env:"MAX_AGE"`
	Compress   bool   `yaml:"compress" env:"COMPRESS"`
}

type Config struct {
	SheetID     string       `yaml:"sheetId" env:"SHEET_ID"`
	Port        int          `yaml:"port" env:"PORT"`
	StaticDir   string       `yaml:"staticDir" env:"TASKSHEET_STATIC_DIR"`
	Credentials string       `yaml:"credentials" env:"TASKSHEET_CREDENTIALS"`
	TokenDir    string       `yaml:"tokenDir" env:"TASKSHEET_TOKEN_DIR"`
	CORSOrigins []string     `yaml:"corsOrigins" env:"TASKSHEET_CORS_ORIGINS" envSeparator:","`
	Store       StoreConfig  `yaml:"store" envPrefix:"TASKSHEET_STORE_"`
	Sheets      SheetsConfig `yaml:"sheets" envPrefix:"TASKSHEET_SHEET_"`
	Log         LogConfig    `yaml:"log" envPrefix:"TASKSHEET_LOG_"`

	// Headers maps extra sheet header texts to field names, e.g.
	// "Deskripsi": "taskDescription".
	Headers map[string]string `yaml:"headers"`
	// StatusSynonyms maps extra stored status texts to display statuses.
	StatusSynonyms map[string]string `yaml:"statusSynonyms"`
}

func Default() *Config {
	return &Config{
		Port:        3001,
		StaticDir:   "client/dist",
		Credentials: "service-account.json",
		CORSOrigins: []string{"*"},
		Store: StoreConfig{
			Driver: DriverSheets,
			Path:   "tasksheet.db",
		},
		Sheets: SheetsConfig{
			Tasks: "Tasks",
			Users: "Users",
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// GetConfigPath returns ~/.config/tasksheet/config.yaml.
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName, configFile), nil
}

// Load builds the configuration. An explicit path must exist; with an empty
// path ./config.yaml and then GetConfigPath are tried and may be absent.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	if data != nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return data, nil
	}
	candidates := []string{configFile}
	if p, err := GetConfigPath(); err == nil {
		candidates = append(candidates, p)
	}
	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil, nil
}

// Validate rejects settings no store or server could run with. A missing
// sheet id is not an error here: requests report it.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSheets, DriverMemory:
	case DriverSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the %s driver", DriverSQLite)
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Mapper returns the default mapper extended with the configured header
// aliases and status synonyms.
func (c *Config) Mapper() *mapping.Mapper {
	m := mapping.NewMapper()
	if len(c.Headers) > 0 {
		m.Headers = m.Headers.With(c.Headers)
	}
	for storage, display := range c.StatusSynonyms {
		m.Vocabulary.AddSynonym(storage, display)
	}
	return m
}

// Save writes cfg as YAML to path, creating its directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	return nil
}
