package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL  string
	HTTPTimeout int // seconds
	LogFile     string
	LogLevel    string
}

var AppConfig Config

func LoadConfig() {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = Config{
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:8080/api"),
		HTTPTimeout: getEnvAsInt("HTTP_TIMEOUT_SECONDS", 30),
		LogFile:     getEnv("LOG_FILE", "inventory-chat.log"),
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
	}
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
