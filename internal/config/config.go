package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the configuration for the application.
type Config struct {
	DataDir        string
	FacilitiesPath string
	CategoriesPath string
	DatabasePath   string
	UpdatedBy      string
	AutosaveDelay  time.Duration

	GeminiAPIKey string

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
}

// NewFromEnv creates a new Config object from environment variables. All
// keys have workable defaults; components requiring an API token validate
// via the Require helpers.
func NewFromEnv() (*Config, error) {
	dataDir := os.Getenv("MENUPLAN_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	facilitiesPath := os.Getenv("MENUPLAN_FACILITIES_FILE")
	if facilitiesPath == "" {
		facilitiesPath = filepath.Join(dataDir, "einrichtungen.json")
	}

	categoriesPath := os.Getenv("MENUPLAN_CATEGORIES_FILE")
	if categoriesPath == "" {
		categoriesPath = filepath.Join(dataDir, "kategorien.json")
	}

	databasePath := os.Getenv("MENUPLAN_DB_PATH")
	if databasePath == "" {
		databasePath = filepath.Join(dataDir, "menuplan.db")
	}

	updatedBy := os.Getenv("MENUPLAN_USER")
	if updatedBy == "" {
		if u, err := user.Current(); err == nil {
			updatedBy = u.Username
		} else {
			updatedBy = "unknown"
		}
	}

	autosaveDelay := 1500 * time.Millisecond
	if v := os.Getenv("AUTOSAVE_DELAY_MS"); v != "" {
		var ms int
		if _, err := fmt.Sscanf(v, "%d", &ms); err != nil || ms <= 0 {
			return nil, fmt.Errorf("invalid AUTOSAVE_DELAY_MS value %q", v)
		}
		autosaveDelay = time.Duration(ms) * time.Millisecond
	}

	var allowedIDs []int64
	if v := os.Getenv("TELEGRAM_ALLOW_USER_IDS"); v != "" {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			var id int64
			if _, err := fmt.Sscanf(part, "%d", &id); err != nil {
				return nil, fmt.Errorf("invalid TELEGRAM_ALLOW_USER_IDS entry %q", part)
			}
			allowedIDs = append(allowedIDs, id)
		}
	}

	return &Config{
		DataDir:                dataDir,
		FacilitiesPath:         facilitiesPath,
		CategoriesPath:         categoriesPath,
		DatabasePath:           databasePath,
		UpdatedBy:              updatedBy,
		AutosaveDelay:          autosaveDelay,
		GeminiAPIKey:           os.Getenv("GEMINI_API_KEY"),
		TelegramBotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:     os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedUserIDs: allowedIDs,
	}, nil
}

// RequireGemini returns an error when the Gemini API key is missing.
func (c *Config) RequireGemini() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	return nil
}

// RequireTelegram returns an error when the Telegram bot settings are
// incomplete.
func (c *Config) RequireTelegram() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if c.TelegramWebhookURL == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}
	return nil
}
