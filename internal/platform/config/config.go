package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration. Values come from the
// environment so main stays lean.
type Server struct {
	Addr          string
	JWTSigningKey string
	TokenTTL      time.Duration

	// PostgresDSN selects the durable store; empty means in-memory stores.
	PostgresDSN string

	// RedisURL enables the reference-data cache; empty disables it.
	RedisURL string

	// KafkaBrokers enables the audit mirror; empty disables it.
	KafkaBrokers []string
	AuditTopic   string

	// SignatureCost is the bcrypt work factor for signature stamps.
	SignatureCost int
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("VERIDOC_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	tokenTTL := 12 * time.Hour
	if raw := os.Getenv("VERIDOC_TOKEN_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			tokenTTL = d
		}
	}

	var brokers []string
	if raw := os.Getenv("VERIDOC_KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	topic := os.Getenv("VERIDOC_AUDIT_TOPIC")
	if topic == "" {
		topic = "veridoc.audit"
	}

	cost := 8
	if raw := os.Getenv("VERIDOC_SIGNATURE_COST"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cost = n
		}
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		TokenTTL:      tokenTTL,
		PostgresDSN:   os.Getenv("VERIDOC_POSTGRES_DSN"),
		RedisURL:      os.Getenv("VERIDOC_REDIS_URL"),
		KafkaBrokers:  brokers,
		AuditTopic:    topic,
		SignatureCost: cost,
	}
}
