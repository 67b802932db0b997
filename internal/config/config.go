package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// CORS origins additionally allowed besides the localhost defaults.
	ClientURL string

	// Client side
	APIBaseURL    string
	LocalStoreDir string
	MuniListPath  string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "5000"),
		Env:  getEnv("ENV", "development"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "munibudget"),
		DBPassword: getEnv("DB_PASSWORD", "munibudget"),
		DBName:     getEnv("DB_NAME", "municipality_budget"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		ClientURL: getEnv("CLIENT_URL", ""),

		// Client side
		APIBaseURL:    getEnv("API_URL", "http://localhost:5000/api"),
		LocalStoreDir: getEnv("LOCAL_STORE_DIR", ".munibudget"),
		MuniListPath:  getEnv("MUNI_LIST_PATH", "data/muni-list.csv"),
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// CORSOrigins returns the allowed CORS origins: the local development
// defaults plus CLIENT_URL when set. The literal "null" origin is
// allowed so the form still works when opened from a file:// page.
func (c *Config) CORSOrigins() []string {
	origins := []string{"http://localhost:3000", "http://127.0.0.1:3000", "null"}
	if c.ClientURL != "" {
		origins = append(origins, strings.TrimRight(c.ClientURL, "/"))
	}
	return origins
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
