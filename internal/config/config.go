package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DataDir            string
	DatabaseURL        string
	APIPort            string
	InboxDir           string
	PollInterval       time.Duration
	NumPipelineWorkers int

	SlackWebhookURL string
	TeamsWebhookURL string

	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
	FromEmail     string
	OperatorEmail string
}

func New() (*Config, error) {
	cfg := &Config{
		DataDir:            getEnv("DATA_DIR", "data/db"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		APIPort:            getEnv("API_PORT", "8080"),
		InboxDir:           getEnv("INBOX_DIR", "data/inbox"),
		NumPipelineWorkers: 4,
		SlackWebhookURL:    os.Getenv("SLACK_WEBHOOK_URL"),
		TeamsWebhookURL:    os.Getenv("TEAMS_WEBHOOK_URL"),
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPort:           587,
		SMTPUser:           os.Getenv("SMTP_USER"),
		SMTPPass:           os.Getenv("SMTP_PASS"),
		FromEmail:          getEnv("FROM_EMAIL", "no-reply@claims.local"),
		OperatorEmail:      os.Getenv("TO_EMAIL"),
	}

	var err error
	cfg.NumPipelineWorkers, err = getEnvAsInt("NUM_PIPELINE_WORKERS", cfg.NumPipelineWorkers)
	if err != nil {
		return nil, err
	}

	cfg.SMTPPort, err = getEnvAsInt("SMTP_PORT", cfg.SMTPPort)
	if err != nil {
		return nil, err
	}

	pollSeconds, err := getEnvAsInt("POLL_INTERVAL_SECONDS", 5)
	if err != nil {
		return nil, err
	}
	cfg.PollInterval = time.Duration(pollSeconds) * time.Second

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: expected an integer, got '%s'", key, valueStr)
	}

	return value, nil
}
