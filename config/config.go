package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	PORT        string
	DB_URL      string
	DB_DRIVER   string
	CORS_ORIGIN string
	LOG_MODE    string
	GIN_MODE    string

	IMPORT_MAX_BYTES int64 = DefaultImportMaxBytes
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	DefaultImportMaxBytes int64 = 64 << 20
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = getEnv("DB_URL", "movies.db")
	DB_DRIVER = getEnv("DB_DRIVER", DriverFor(DB_URL))
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "*")
	LOG_MODE = getEnv("LOG_MODE", "dev")
	GIN_MODE = getEnv("GIN_MODE", "")

	IMPORT_MAX_BYTES = getEnvInt64("IMPORT_MAX_BYTES", DefaultImportMaxBytes)
}

// DriverFor infers the gorm dialect from a DSN.
// Anything that is not a postgres URL or key/value DSN is treated as a sqlite path.
func DriverFor(dsn string) string {
	d := strings.ToLower(strings.TrimSpace(dsn))
	switch {
	case strings.HasPrefix(d, "postgres://"), strings.HasPrefix(d, "postgresql://"):
		return DriverPostgres
	case strings.Contains(d, "host=") && strings.Contains(d, "dbname="):
		return DriverPostgres
	default:
		return DriverSQLite
	}
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		log.Printf("Invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return v
}
