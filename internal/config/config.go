package config

import (
	"os"
)

type Config struct {
	Port           string
	GinMode        string
	SessionSecret  string
	AdminPassword  string
	StorageBackend string
	DataDir        string
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3KeyPrefix    string
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "5010"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		SessionSecret:  getEnv("SESSION_SECRET", "dev-secret-key-change-in-production"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "admin123"),
		StorageBackend: getEnv("STORAGE_BACKEND", "local"),
		DataDir:        getEnv("DATA_DIR", "data"),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", "ap-northeast-1"),
		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3KeyPrefix:    getEnv("S3_KEY_PREFIX", "data/"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
