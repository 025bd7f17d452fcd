package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server needs at startup so main stays lean.
type Config struct {
	Addr            string
	ProviderBaseURL string
	ProviderAPIKey  string
	ConsolePassword string
	JWTSigningKey   string
	InitialCredits  int
	Redis           RedisConfig
	PostgresURL     string
	Kafka           KafkaConfig
}

// RedisConfig covers the optional redis-backed API key store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig covers the optional audit event sink. An empty broker list
// disables Kafka publishing entirely.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	addr := os.Getenv("EKOSHIELD_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	baseURL := os.Getenv("EKO_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.eko.in/v3"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	initialCredits := 1000
	if raw := os.Getenv("EKOSHIELD_INITIAL_CREDITS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			initialCredits = n
		}
	}

	kafkaTopic := os.Getenv("AUDIT_KAFKA_TOPIC")
	if kafkaTopic == "" {
		kafkaTopic = "ekoshield.audit"
	}

	var brokers []string
	if raw := os.Getenv("AUDIT_KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Config{
		Addr:            addr,
		ProviderBaseURL: baseURL,
		ProviderAPIKey:  os.Getenv("EKO_API_KEY"),
		ConsolePassword: os.Getenv("EKOSHIELD_CONSOLE_PASSWORD"),
		JWTSigningKey:   jwtSigningKey,
		InitialCredits:  initialCredits,
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		PostgresURL: os.Getenv("POSTGRES_URL"),
		Kafka: KafkaConfig{
			Brokers: brokers,
			Topic:   kafkaTopic,
		},
	}
}
