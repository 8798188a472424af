package config

import "os"

// Config holds the environment-driven settings for the server.
type Config struct {
	Port         string
	JWTSecret    string
	MLServiceURL string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

// Load reads configuration from the environment, falling back to
// development defaults.
func Load() Config {
	return Config{
		Port:         getEnv("PORT", "5000"),
		JWTSecret:    getEnv("JWT_SECRET", "smart-learn-dev-signing-key"),
		MLServiceURL: os.Getenv("ML_SERVICE_URL"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "smartlearn_user"),
		DBPassword: getEnv("DB_PASSWORD", "smartlearn_password"),
		DBName:     getEnv("DB_NAME", "smartlearn"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
