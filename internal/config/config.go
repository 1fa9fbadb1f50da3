package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Session SessionConfig
	CORS    CORSConfig
}

type AppConfig struct {
	Env  string
	Port string
}

// IsProduction reports whether internal error detail should be hidden from callers
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

// Supported values for DB_DRIVER
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

type DBConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	// Path is the SQLite database file (DB_DRIVER=sqlite only)
	Path string
}

// DSN returns the driver-specific connection string
func (d DBConfig) DSN() string {
	switch d.Driver {
	case DriverMySQL:
		return d.User + ":" + d.Password +
			"@tcp(" + d.Host + ":" + d.Port + ")/" + d.Name +
			"?charset=utf8mb4&parseTime=True&loc=Local"
	case DriverSQLite:
		return d.Path
	default:
		return "host=" + d.Host +
			" user=" + d.User +
			" password=" + d.Password +
			" dbname=" + d.Name +
			" port=" + d.Port +
			" sslmode=" + d.SSLMode +
			" TimeZone=UTC"
	}
}

// URL returns the PostgreSQL connection URL (for golang-migrate)
func (d DBConfig) URL() string {
	return "postgres://" + d.User + ":" + d.Password +
		"@" + d.Host + ":" + d.Port +
		"/" + d.Name + "?sslmode=" + d.SSLMode
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns the Redis address
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

type CORSConfig struct {
	Origins []string
}

// AllowAll reports whether any origin may call the API
func (c CORSConfig) AllowAll() bool {
	for _, o := range c.Origins {
		if strings.TrimSpace(o) == "*" {
			return true
		}
	}
	return false
}

// Load reads configuration from .env file and environment variables
func Load() *Config {
	// Load .env file (ignore error if not exists - e.g. in Docker)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading from environment variables")
	}

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		sessionTTL = 24 * time.Hour
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		redisDB = 0
	}

	return &Config{
		App: AppConfig{
			Env:  getEnv("APP_ENV", "development"),
			Port: getEnv("APP_PORT", "8080"),
		},
		DB: DBConfig{
			Driver:   getEnv("DB_DRIVER", DriverPostgres),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "smartify"),
			Password: getEnv("DB_PASSWORD", "smartify"),
			Name:     getEnv("DB_NAME", "smartify24"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "./smartify24.db"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", "default-secret"),
			TTL:        sessionTTL,
			CookieName: getEnv("SESSION_COOKIE_NAME", "smartify_session"),
			Secure:     getEnv("SESSION_COOKIE_SECURE", "false") == "true",
		},
		CORS: CORSConfig{
			Origins: strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
