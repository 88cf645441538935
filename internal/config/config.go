package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection
	DataBackend string

	// SQLite
	SQLiteDBPath string

	// Google Sheets
	SpreadsheetID string

	// Tab names inside the store
	ProjectsTab string
	ExpensesTab string
	UsersTab    string

	// Cache lifetimes
	SnapshotTTL time.Duration
	UsersTTL    time.Duration

	// Sessions
	SessionCookie string
	SessionTTL    time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8081"),
		DataBackend: getEnv("DATA_BACKEND", "memory"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/obras.db"),

		SpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),

		ProjectsTab: getEnv("PROJECTS_TAB", "Obras_Info"),
		ExpensesTab: getEnv("EXPENSES_TAB", "Despesas_Semanas"),
		UsersTab:    getEnv("USERS_TAB", "Usuarios"),

		SnapshotTTL: getEnvDuration("SNAPSHOT_TTL", 10*time.Minute),
		UsersTTL:    getEnvDuration("USERS_TTL", time.Hour),

		SessionCookie: getEnv("SESSION_COOKIE", "obras_session"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "memory", "sheets", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [memory sheets sqlite]", c.DataBackend))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.DataBackend == "sheets" && c.SpreadsheetID == "" {
		errs = append(errs, "GOOGLE_SPREADSHEET_ID is required when using sheets backend")
	}

	for _, tab := range []struct{ name, value string }{
		{"PROJECTS_TAB", c.ProjectsTab},
		{"EXPENSES_TAB", c.ExpensesTab},
		{"USERS_TAB", c.UsersTab},
	} {
		if strings.TrimSpace(tab.value) == "" {
			errs = append(errs, fmt.Sprintf("%s cannot be empty", tab.name))
		}
	}

	if c.SnapshotTTL < time.Second || c.SnapshotTTL > 24*time.Hour {
		errs = append(errs, fmt.Sprintf("invalid snapshot TTL %v: must be between 1s and 24h", c.SnapshotTTL))
	}
	if c.UsersTTL < time.Second || c.UsersTTL > 24*time.Hour {
		errs = append(errs, fmt.Sprintf("invalid users TTL %v: must be between 1s and 24h", c.UsersTTL))
	}
	if c.SessionTTL < time.Minute || c.SessionTTL > 30*24*time.Hour {
		errs = append(errs, fmt.Sprintf("invalid session TTL %v: must be between 1m and 720h", c.SessionTTL))
	}
	if strings.TrimSpace(c.SessionCookie) == "" {
		errs = append(errs, "SESSION_COOKIE cannot be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
