package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	OpenAIAPIKey string
	DatabaseURL  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[INFO] No .env file found, reading configuration from environment")
	}

	return &Config{
		Port:         getEnv("PORT", "8000"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		DatabaseURL:  os.Getenv("DB_URL"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
