package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings.
type Config struct {
	Port        string
	MetricsPort string

	UseMemoryStore bool
	SeedDir        string

	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DBName string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBroker string
	OrdersTopic string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
}

// Load reads configuration from the environment, with .env support for
// local development and defaults for everything non-secret.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found - using environment variables")
	}

	return &Config{
		Port:        getEnv("PORT", "3000"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),

		UseMemoryStore: os.Getenv("USE_MEMORY_STORE") == "true",
		SeedDir:        getEnv("SEED_DIR", "data"),

		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "seva"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		OrdersTopic: getEnv("ORDERS_TOPIC", "seva.orders"),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFrom:       os.Getenv("TWILIO_FROM"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️  Invalid value for %s, using default", key)
		return fallback
	}
	return value
}
