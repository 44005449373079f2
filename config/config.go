package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port              string
	SquareAccessToken string
	SquareLocationID  string
	SquareItemID      string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		SquareAccessToken: os.Getenv("SQUARE_ACCESS_TOKEN"),
		SquareLocationID:  os.Getenv("SQUARE_LOCATION_ID"),
		SquareItemID:      os.Getenv("SQUARE_ITEM_ID"),
	}

	if cfg.SquareAccessToken == "" || cfg.SquareLocationID == "" || cfg.SquareItemID == "" {
		return nil, fmt.Errorf("missing required environment variables")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
