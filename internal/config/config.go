package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	DatabasePath     string
	LogLevel         string
	UndoDepth        int
	Currency         string
	HealthAddr       string
	DiscordBotToken  string
	DiscordChannelId string
}

func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}
	return defaultVal
}

// Load reads the configuration from the environment. Call godotenv.Load
// first to pick up a .env file.
func Load() (*Config, error) {
	cfg := &Config{
		DatabasePath:     getEnv("SMS_DB_PATH", "campaign.db"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		UndoDepth:        50,
		Currency:         strings.ToUpper(getEnv("CURRENCY", "INR")),
		HealthAddr:       getEnv("HEALTH_ADDR", ":8080"),
		DiscordBotToken:  os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordChannelId: os.Getenv("DISCORD_CHANNEL_ID"),
	}

	if depth := os.Getenv("UNDO_DEPTH"); depth != "" {
		n, err := strconv.Atoi(depth)
		if err != nil {
			return nil, fmt.Errorf("UNDO_DEPTH must be an integer: %w", err)
		}
		cfg.UndoDepth = n
	}

	return cfg, nil
}

// RequireDiscord checks the settings the bot cannot run without.
func (c *Config) RequireDiscord() error {
	if c.DiscordBotToken == "" {
		return fmt.Errorf("Bot token is not set")
	}
	if c.DiscordChannelId == "" {
		return fmt.Errorf("Channel ID is not set")
	}
	return nil
}
