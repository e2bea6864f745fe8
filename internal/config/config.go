package config

import (
	"log"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config holds application configuration.
type Config struct {
	DataDir          string
	ProductsFile     string
	TransactionsFile string

	LogMode  string // development or production
	LogLevel string
	LogFile  string // Rotated by lumberjack; empty disables file logging
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("PRODUCTS_FILE", "products.bin")
	v.SetDefault("TRANSACTIONS_FILE", "transactions.bin")
	v.SetDefault("LOG_MODE", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.AutomaticEnv()

	cfg := &Config{
		DataDir:          v.GetString("DATA_DIR"),
		ProductsFile:     v.GetString("PRODUCTS_FILE"),
		TransactionsFile: v.GetString("TRANSACTIONS_FILE"),
		LogMode:          v.GetString("LOG_MODE"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFile:          v.GetString("LOG_FILE"),
	}

	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
		log.Printf("Warning: DATA_DIR is empty. Defaulting to %s\n", cfg.DataDir)
	}
	if cfg.ProductsFile == "" || filepath.Base(cfg.ProductsFile) != cfg.ProductsFile {
		log.Printf("Warning: invalid PRODUCTS_FILE ('%s'). Defaulting to products.bin.\n", cfg.ProductsFile)
		cfg.ProductsFile = "products.bin"
	}
	if cfg.TransactionsFile == "" || filepath.Base(cfg.TransactionsFile) != cfg.TransactionsFile {
		log.Printf("Warning: invalid TRANSACTIONS_FILE ('%s'). Defaulting to transactions.bin.\n", cfg.TransactionsFile)
		cfg.TransactionsFile = "transactions.bin"
	}
	if cfg.ProductsFile == cfg.TransactionsFile {
		log.Println("Warning: PRODUCTS_FILE and TRANSACTIONS_FILE are the same. Using the defaults.")
		cfg.ProductsFile = "products.bin"
		cfg.TransactionsFile = "transactions.bin"
	}
	if cfg.LogMode != "development" && cfg.LogMode != "production" {
		log.Printf("Warning: invalid LOG_MODE ('%s'). Defaulting to development.\n", cfg.LogMode)
		cfg.LogMode = "development"
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		log.Printf("Warning: invalid LOG_LEVEL ('%s'). Defaulting to info.\n", cfg.LogLevel)
		cfg.LogLevel = "info"
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "minimart.log")
	}

	return cfg, nil
}
