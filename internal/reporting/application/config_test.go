package application

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("REPORTS_CONFIG", "")
	t.Setenv("REPORTS_PRODUCT", "")
	t.Setenv("REPORTS_CURRENCY_SYMBOL", "")
	t.Setenv("REPORTS_TOP_ASSETS", "")
	t.Setenv("REPORTS_MAX_ASSET_SHEETS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Product != "MaintainIQ" || cfg.CurrencySymbol != "$" {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.TopAssets != 6 || cfg.MaxAssetSheets != 200 {
		t.Fatalf("limits = %+v", cfg)
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.yaml")
	data := []byte("product: FleetWatch\ncurrency_symbol: \"€\"\ntop_assets: 4\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("REPORTS_CONFIG", path)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Product != "FleetWatch" || cfg.CurrencySymbol != "€" || cfg.TopAssets != 4 {
		t.Fatalf("yaml config = %+v", cfg)
	}
	if cfg.MaxAssetSheets != 200 {
		t.Fatalf("unset yaml field should keep default, got %d", cfg.MaxAssetSheets)
	}
}
