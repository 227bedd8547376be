package application

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines report branding and export limits.
type Config struct {
	Product        string `yaml:"product"`
	CurrencySymbol string `yaml:"currency_symbol"`
	TopAssets      int    `yaml:"top_assets"`
	MaxAssetSheets int    `yaml:"max_asset_sheets"`
}

// LoadConfig loads config from yaml or env.
func LoadConfig() (Config, error) {
	cfg := Config{
		Product:        getenvDefault("REPORTS_PRODUCT", "MaintainIQ"),
		CurrencySymbol: getenvDefault("REPORTS_CURRENCY_SYMBOL", "$"),
		TopAssets:      getenvIntDefault("REPORTS_TOP_ASSETS", 6),
		MaxAssetSheets: getenvIntDefault("REPORTS_MAX_ASSET_SHEETS", 200),
	}

	if path := os.Getenv("REPORTS_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.Product == "" {
		return cfg, errors.New("reports config: product required")
	}
	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = "$"
	}
	if cfg.TopAssets < 1 {
		cfg.TopAssets = 6
	}
	if cfg.MaxAssetSheets < 1 {
		cfg.MaxAssetSheets = 200
	}
	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
