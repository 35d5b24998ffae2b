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
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Google Maps places configuration.
	GoogleMapsAPIKey    string
	GoogleMapsEnabled   bool
	GoogleMapsTimeout   time.Duration
	GoogleMapsCacheSize int

	// Offline timezone fallback (tzf polygon lookup).
	TimezoneFallbackEnabled bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	mapsTimeout, err := parseDuration("GOOGLE_MAPS_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	batchSize, err := parseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := parseDuration("BATCH_FLUSH_INTERVAL", "1s")
	if err != nil {
		return nil, err
	}

	mapsAPIKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	mapsEnabled := mapsAPIKey != ""
	if v := os.Getenv("GOOGLE_MAPS_ENABLED"); v != "" {
		mapsEnabled = v == "true"
	}

	tzFallback := true
	if v := os.Getenv("TIMEZONE_FALLBACK_ENABLED"); v != "" {
		tzFallback = v == "true"
	}

	cfg := &Config{
		KafkaBrokers:       parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   envOrDefault("KAFKA_SOURCE_TOPIC", "raw-entity-records"),
		KafkaSinkTopic:     envOrDefault("KAFKA_SINK_TOPIC", "normalized-entity-records"),
		KafkaGroupID:       envOrDefault("KAFKA_GROUP_ID", "location-normalizer"),
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		LogFormat:          envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		GoogleMapsAPIKey:    mapsAPIKey,
		GoogleMapsEnabled:   mapsEnabled,
		GoogleMapsTimeout:   mapsTimeout,
		GoogleMapsCacheSize: parseCacheSize(),

		TimezoneFallbackEnabled: tzFallback,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.GoogleMapsEnabled && cfg.GoogleMapsAPIKey == "" {
		return nil, errors.New("GOOGLE_MAPS_ENABLED is true but GOOGLE_MAPS_API_KEY is not set")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseBrokers splits a comma-separated broker list, dropping empty entries.
func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

// maxBatchSize bounds memory per batch; a batch is held entirely in memory
// between extract and load.
const maxBatchSize = 500

func parseBatchSize() (int, error) {
	s := envOrDefault("BATCH_SIZE", "20")
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > maxBatchSize {
		return 0, errors.New("invalid BATCH_SIZE")
	}
	return n, nil
}

func parseCacheSize() int {
	if s := os.Getenv("GOOGLE_MAPS_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
