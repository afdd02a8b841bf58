package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid configuration")
)

const defaultSourceURL = "https://raw.githubusercontent.com/MrLeaw/aws-clf-c02-quiz/refs/heads/main/all.json"

// Storage drivers for persisted progress.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env     string  `mapstructure:"env"`      // current application environment (local, dev, production)
	Source  Source  `mapstructure:"source"`   // question catalog section
	Storage Storage `mapstructure:"storage"`  // progress storage section
	DB      DB      `mapstructure:"database"` // database configuration section
	Log     Log     `mapstructure:"log"`      // logging section
}

// Source describes where the question catalog comes from.
type Source struct {
	URL      string        `mapstructure:"url"`      // remote all.json location
	Path     string        `mapstructure:"path"`     // local catalog file, overrides URL when set
	Timeout  time.Duration `mapstructure:"timeout"`  // HTTP timeout for one fetch
	Attempts int           `mapstructure:"attempts"` // fetch attempts before giving up
}

// Storage describes where progress is persisted.
type Storage struct {
	Driver  string `mapstructure:"driver"`  // file, sqlite, postgres or memory
	Dir     string `mapstructure:"dir"`     // per-user data directory
	File    string `mapstructure:"file"`    // progress file name inside Dir
	Profile string `mapstructure:"profile"` // row key for database drivers
}

// ProgressPath returns the full path of the progress file.
func (s Storage) ProgressPath() string {
	return filepath.Join(s.Dir, s.File)
}

// SQLitePath returns the path of the sqlite database inside Dir.
func (s Storage) SQLitePath() string {
	return filepath.Join(s.Dir, "progress.db")
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Log contains logging parameters.
type Log struct {
	File string `mapstructure:"file"` // log destination, defaults to quiz.log in the data directory
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists.
	_ = godotenv.Load()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("source.url", defaultSourceURL)
	v.SetDefault("source.path", "")
	v.SetDefault("source.timeout", "30s")
	v.SetDefault("source.attempts", 1)
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.dir", filepath.Join(home, ".aws-clf-c02-quiz"))
	v.SetDefault("storage.file", "progress.json")
	v.SetDefault("storage.profile", "default")
	v.SetDefault("database.max_connections", 4)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("log.file", "")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("source.url", "QUIZ_SOURCE_URL")
	_ = v.BindEnv("source.path", "QUIZ_SOURCE_PATH")
	_ = v.BindEnv("storage.driver", "QUIZ_STORAGE_DRIVER")
	_ = v.BindEnv("storage.dir", "QUIZ_STORAGE_DIR")
	_ = v.BindEnv("storage.profile", "QUIZ_PROFILE")
	_ = v.BindEnv("log.file", "QUIZ_LOG_FILE")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.DB.URL = v.GetString("database_url")

	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.Storage.Dir, "quiz.log")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverFile, DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.DB.URL == "" {
			return ErrMissingEnvironmentVariables
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.Source.URL == "" && c.Source.Path == "" {
		return fmt.Errorf("%w: no question source configured", ErrInvalidConfig)
	}

	if c.Source.Attempts < 1 {
		c.Source.Attempts = 1
	}

	return nil
}
