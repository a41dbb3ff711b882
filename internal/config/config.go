package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DriverSQLite   DatabaseDriver = "sqlite"   // Local file database (default)
	DriverPostgres DatabaseDriver = "postgres" // External PostgreSQL server
)

type (
	Config struct {
		HTTP
		Global
		Database
		Pagination
		Log
		CORS
		Audit
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
		Environment              string
	}
	Database struct {
		Driver   DatabaseDriver
		Path     string // SQLite file path
		URL      string // PostgreSQL DSN
		LogLevel string // gorm log level: silent, error, warn, info
	}
	Pagination struct {
		DefaultLimit int
		MaxLimit     int // 0 means unbounded
	}
	Log struct {
		Level  string
		Format string // console or json
	}
	CORS struct {
		AllowedOrigins []string
	}
	Audit struct {
		Enabled         bool
		RetentionDays   int
		CleanupSchedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		Dir             string // Where the queue database lives when the main store is not a SQLite file
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

// loadDotEnv loads a .env file from the working directory when one exists.
// Real environment variables always take precedence.
func loadDotEnv() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not load .env file")
	}
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func NewConfig() *Config {
	loadDotEnv()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("environment", "development")

	v.SetDefault("database_driver", string(DriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_url", "")
	v.SetDefault("database_log_level", "warn")

	v.SetDefault("pagination_default_limit", DefaultPageLimit)
	v.SetDefault("pagination_max_limit", 0)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	v.SetDefault("cors_origins", "*")

	v.SetDefault("audit_enabled", true)
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *") // Daily at 03:00

	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("tasks_dir", ".")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
			Environment:              v.GetString("ENVIRONMENT"),
		},
		Database: Database{
			Driver:   DatabaseDriver(strings.ToLower(v.GetString("DATABASE_DRIVER"))),
			Path:     v.GetString("DATABASE_PATH"),
			URL:      v.GetString("DATABASE_URL"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Pagination: Pagination{
			DefaultLimit: v.GetInt("PAGINATION_DEFAULT_LIMIT"),
			MaxLimit:     v.GetInt("PAGINATION_MAX_LIMIT"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		CORS: CORS{
			AllowedOrigins: splitList(v.GetString("CORS_ORIGINS")),
		},
		Audit: Audit{
			Enabled:         v.GetBool("AUDIT_ENABLED"),
			RetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
			CleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			Dir:             v.GetString("TASKS_DIR"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		problems = append(problems, "PORT must be between 1 and 65535")
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			problems = append(problems, "DATABASE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			problems = append(problems, "DATABASE_URL is required for the postgres driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("DATABASE_DRIVER must be %q or %q", DriverSQLite, DriverPostgres))
	}

	if c.Pagination.DefaultLimit < 0 {
		problems = append(problems, "PAGINATION_DEFAULT_LIMIT must not be negative")
	}
	if c.Pagination.MaxLimit < 0 {
		problems = append(problems, "PAGINATION_MAX_LIMIT must not be negative")
	}
	if c.Pagination.MaxLimit > 0 && c.Pagination.DefaultLimit > c.Pagination.MaxLimit {
		problems = append(problems, "PAGINATION_DEFAULT_LIMIT must not exceed PAGINATION_MAX_LIMIT")
	}

	if c.Log.Format != "console" && c.Log.Format != "json" {
		problems = append(problems, "LOG_FORMAT must be one of: console, json")
	}

	if c.Audit.Enabled && c.Tasks.Enabled {
		if _, err := cron.ParseStandard(c.Audit.CleanupSchedule); err != nil {
			problems = append(problems, fmt.Sprintf("AUDIT_CLEANUP_SCHEDULE is invalid: %v", err))
		}
	}

	if c.Tasks.Enabled && c.Tasks.Workers < 1 {
		problems = append(problems, "TASK_WORKERS must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Global.Environment == "development"
}

// TasksDBPath returns where the task queue keeps its own SQLite database.
// For a SQLite store it sits next to the main file with a "-tasks" suffix.
func (c *Config) TasksDBPath() string {
	if c.Database.Driver == DriverSQLite && c.Database.Path != "" && !strings.Contains(c.Database.Path, ":memory:") {
		dir := filepath.Dir(c.Database.Path)
		base := filepath.Base(c.Database.Path)
		ext := filepath.Ext(base)
		name := strings.TrimSuffix(base, ext)
		return filepath.Join(dir, name+"-tasks"+ext)
	}
	return filepath.Join(c.Tasks.Dir, DefaultTasksDatabaseName)
}
