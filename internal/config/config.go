package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	AppPort     string
	AppEnv      string
	LogLevel    string
	StoreDriver string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	JWTSecret   string
	AMQPURL     string
	DevStaffPIN string
	CORSOrigin  string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:     getEnv("APP_PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "development"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		StoreDriver: getEnv("STORE_DRIVER", StorePostgres),
		DBHost:      os.Getenv("DB_HOST"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		AMQPURL:     os.Getenv("AMQP_URL"),
		DevStaffPIN: os.Getenv("DEV_STAFF_PIN"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "*"),
	}

	if err := cfg.validate(); err != "" {
		log.Fatal(err)
	}

	return cfg
}

func (c *Config) validate() string {
	switch c.StoreDriver {
	case StoreMemory:
		return ""
	case StorePostgres:
		if c.DBHost == "" {
			return "DB_HOST is required for the postgres store"
		}
		return ""
	default:
		return "STORE_DRIVER must be memory or postgres, got " + c.StoreDriver
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
