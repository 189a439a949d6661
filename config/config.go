package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries everything main wires together, read from the environment
// (a local .env is loaded first when present).
type Config struct {
	DatabaseURL     string
	DiscordToken    string
	ReportChannelID string
	SettlementCron  string
	SportsFile      string
	Workers         int
	GameCacheTTL    time.Duration
}

func Load() (*Config, error) {
	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		return nil, fmt.Errorf("DATABASE_URL not set in environment variables")
	}

	cfg := &Config{
		DatabaseURL:     connString,
		DiscordToken:    os.Getenv("DISCORD_BOT_TOKEN"),
		ReportChannelID: os.Getenv("REPORT_CHANNEL_ID"),
		SettlementCron:  os.Getenv("SETTLEMENT_CRON"),
		SportsFile:      os.Getenv("SPORTS_FILE"),
		Workers:         4,
		GameCacheTTL:    5 * time.Minute,
	}

	if cfg.SettlementCron == "" {
		// Every 15 minutes, lining up behind score ingestion.
		cfg.SettlementCron = "0 */15 * * * *"
	}
	if cfg.SportsFile == "" {
		cfg.SportsFile = "sports.yaml"
	}

	if workersStr := os.Getenv("SETTLEMENT_WORKERS"); workersStr != "" {
		workers, err := strconv.Atoi(workersStr)
		if err != nil || workers < 1 {
			return nil, fmt.Errorf("invalid SETTLEMENT_WORKERS value %q", workersStr)
		}
		cfg.Workers = workers
	}

	return cfg, nil
}
