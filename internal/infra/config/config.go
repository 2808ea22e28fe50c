package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env                   string
	HTTPAddr              string
	MongoURI              string
	MongoDB               string
	KafkaBrokers          []string
	EventTopic            string
	NotifyTopic           string
	GuestCancelNoticeDays int
	ShutdownTimeout       time.Duration
}

// Load parses configuration from the current environment. Mongo and Kafka
// are optional: a missing MONGO_URI selects the in-memory store and missing
// KAFKA_BROKERS routes notifications and events to the log.
func Load() (Config, error) {
	cfg := Config{
		Env:         getEnv("APP_ENV", "dev"),
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDB:     getEnv("MONGO_DB", "stayhub"),
		EventTopic:  getEnv("KAFKA_EVENT_TOPIC", "stayhub.events"),
		NotifyTopic: getEnv("KAFKA_NOTIFY_TOPIC", "stayhub.notifications"),
	}
	brokers := getEnv("KAFKA_BROKERS", "")
	if brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	notice, err := parseIntEnv("GUEST_CANCEL_NOTICE_DAYS", 2)
	if err != nil {
		return Config{}, err
	}
	if notice < 0 {
		return Config{}, fmt.Errorf("GUEST_CANCEL_NOTICE_DAYS must not be negative")
	}
	cfg.GuestCancelNoticeDays = notice

	shutdown, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.ShutdownTimeout = shutdown
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s integer: %w", key, err)
	}
	return n, nil
}
