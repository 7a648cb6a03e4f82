package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	BaseURL          string
	PagesToScrape    int
	RequestTimeoutMs int

	StoreDriver string // "sqlite" or "postgres"

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	DataDir       string
	SnapshotPath  string
	CSVOutputPath string

	MinRating  int
	BestValueN int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	dataDir := getEnv("DATA_DIR", "./scraped_data")

	return &Config{
		BaseURL:          getEnv("BASE_URL", "http://books.toscrape.com/"),
		PagesToScrape:    getEnvInt("PAGES_TO_SCRAPE", 1),
		RequestTimeoutMs: getEnvInt("REQUEST_TIMEOUT_MS", 15000),

		StoreDriver: getEnv("STORE_DRIVER", "sqlite"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "books_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		DataDir:       dataDir,
		SnapshotPath:  getEnv("SNAPSHOT_PATH", filepath.Join(dataDir, "books.json")),
		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", filepath.Join(dataDir, "raw_books.csv")),

		MinRating:  getEnvInt("MIN_RATING", 4),
		BestValueN: getEnvInt("BEST_VALUE_N", 5),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// SQLitePath returns the on-disk location of the SQLite database file.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "books.db")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
