package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings. Everything comes from the environment;
// a .env file is honoured when present.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string

	// QuestionBankFile optionally overrides the built-in question bank.
	QuestionBankFile string

	// SimulatedDelay is the artificial pacing applied to question fetch and
	// scoring, kept from the original flow. Zero disables it.
	SimulatedDelay time.Duration

	LogJSON  bool
	LogDebug bool
}

// Load reads configuration from the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		RedisURL:         getEnv("REDIS_URL", ""),
		QuestionBankFile: getEnv("QUESTION_BANK_FILE", ""),
		SimulatedDelay:   time.Duration(getEnvAsInt("SIMULATED_DELAY_MS", 0)) * time.Millisecond,
		LogJSON:          getEnvAsBool("LOG_JSON", false),
		LogDebug:         getEnvAsBool("LOG_DEBUG", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
