package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaHazardTopic string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	// Chat assistant configuration.
	ChatReplyDelay time.Duration
	ChatQueueSize  int

	// Routing provider configuration.
	DirectionsAPIKey    string
	DirectionsEnabled   bool
	DirectionsTimeout   time.Duration
	DirectionsCacheSize int

	// Hazard feed configuration.
	HazardFeedEnabled bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	replyDelay, err := parseDuration("CHAT_REPLY_DELAY", "1500ms")
	if err != nil {
		return nil, err
	}

	directionsTimeout, err := parseDuration("DIRECTIONS_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	apiKey := os.Getenv("DIRECTIONS_API_KEY")
	directionsEnabled := apiKey != ""
	if v := os.Getenv("DIRECTIONS_ENABLED"); v != "" {
		directionsEnabled = v == "true"
	}

	feedEnabled := true
	if v := os.Getenv("HAZARD_FEED_ENABLED"); v != "" {
		feedEnabled = v == "true"
	}

	cfg := &Config{
		KafkaBrokers:     parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaHazardTopic: envOrDefault("KAFKA_HAZARD_TOPIC", "flood-risk-segments"),
		KafkaGroupID:     envOrDefault("KAFKA_GROUP_ID", "flood-route-advisor"),
		HTTPAddr:         envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
		LogFormat:        envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:  shutdownTimeout,

		ChatReplyDelay: replyDelay,
		ChatQueueSize:  parsePositiveInt("CHAT_QUEUE_SIZE", 8),

		DirectionsAPIKey:    apiKey,
		DirectionsEnabled:   directionsEnabled,
		DirectionsTimeout:   directionsTimeout,
		DirectionsCacheSize: parsePositiveInt("DIRECTIONS_CACHE_SIZE", 500),

		HazardFeedEnabled: feedEnabled,
	}

	if cfg.HazardFeedEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.HazardFeedEnabled && cfg.KafkaHazardTopic == "" {
		return nil, errors.New("KAFKA_HAZARD_TOPIC is required")
	}
	if cfg.DirectionsEnabled && cfg.DirectionsAPIKey == "" {
		return nil, errors.New("DIRECTIONS_ENABLED is true but DIRECTIONS_API_KEY is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
