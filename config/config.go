package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port    string
	BaseURL string
}

// StorageConfig selects the durable home for per-day batches.
// Driver is "file" (JSON files under DataDir) or "postgres".
type StorageConfig struct {
	Driver  string
	DataDir string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	DB       DatabaseConfig
	Timezone string
	Env      string
}

func LoadConfig() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "3000"),
			BaseURL: getEnv("BASE_URL", "http://localhost:3000"),
		},
		Storage: StorageConfig{
			Driver:  getEnv("STORAGE_DRIVER", "file"),
			DataDir: getEnv("DATA_DIR", "data"),
		},
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "analytics"),
			Password: getEnv("DB_PASS", "analytics"),
			DBName:   getEnv("DB_NAME", "site_analytics"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Timezone: getEnv("TIMEZONE", ""),
		Env:      getEnv("ENV", "prod"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
