package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr string
	Backend    string // "mysql" or "memory"
	MysqlDSN   string
	JWTSecret  string
	UploadDir  string
	LogEnabled bool
}

var Cfg *Config

func Load() {
	// a missing .env is fine; the environment wins either way
	_ = godotenv.Load()

	Cfg = &Config{
		ServerAddr: ":" + getEnv("PORT", "8080"),
		Backend:    getEnv("BACKEND", "mysql"),
		MysqlDSN:   getEnv("MYSQL_DSN", "root:root@tcp(localhost:3306)/homeroom?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:  getEnv("JWT_SECRET", "homeroom-secret-key-change-in-production"),
		UploadDir:  getEnv("UPLOAD_DIR", "./uploads"),
		LogEnabled: getEnv("LOG_ENABLED", "true") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
