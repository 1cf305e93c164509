package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	MongoURI string
	MongoDB  string
	Port     string

	// Optional shared cache; empty means the in-process cache is used.
	RedisAddr string
	CacheTTL  time.Duration

	// Optional notification fan-out; empty means events are discarded.
	KafkaBrokers []string
	KafkaTopic   string

	// Optional email delivery; empty key means mail is discarded.
	SendGridAPIKey string
	MailFromName   string
	MailFromAddr   string
}

// Load reads configuration from the environment. A local .env file is loaded
// when present; in deployed environments the variables come from the platform.
func Load() *Config {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Warn().Err(err).Msg("could not load .env file")
		}
	}

	return &Config{
		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "backoffice"),
		Port:     getEnv("PORT", "8080"),

		RedisAddr: getEnv("REDIS_ADDR", ""),
		CacheTTL:  getDuration("CACHE_TTL_SECONDS", 5*time.Minute),

		KafkaBrokers: splitNonEmpty(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "backoffice.notifications"),

		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		MailFromName:   getEnv("MAIL_FROM_NAME", "Back Office"),
		MailFromAddr:   getEnv("MAIL_FROM_ADDR", "noreply@example.com"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

func splitNonEmpty(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
