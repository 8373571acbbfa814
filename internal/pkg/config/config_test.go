package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/99minutos/carrier-rating/internal/core/rating"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Mongo.Database != "carrier_rating" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Redis.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", cfg.Redis.CacheTTL)
	}
	if cfg.Rating.DefaultCurrency != "CAD" || cfg.Rating.ShopConcurrency != 8 || cfg.Rating.RateLimitRPS != 20 {
		t.Errorf("unexpected rating defaults: %+v", cfg.Rating)
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":                 "production",
		"SHOP_CONCURRENCY":    "3",
		"RATE_CARD_CACHE_TTL": "30s",
		"DEFAULT_CURRENCY":    "USD",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.IsProduction() || cfg.Rating.ShopConcurrency != 3 || cfg.Redis.CacheTTL != 30*time.Second || cfg.Rating.DefaultCurrency != "USD" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadTables(t *testing.T) {
	defaults, err := LoadTables("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if defaults.AccessorialFees["liftgate"].Fee != 75 {
		t.Errorf("defaults not returned")
	}

	path := filepath.Join(t.TempDir(), "tables.yaml")
	body := `
region_distances:
  QC-ON: 340
accessorial_fees:
  White_Glove:
    label: White Glove
    fee: 120
postal_regions:
  z: ZZ
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	tables, err := LoadTables(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d := tables.RegionDistances[rating.RegionPairKey("ON", "QC")]; d != 340 {
		t.Errorf("ON-QC = %v, want 340", d)
	}
	if a := tables.AccessorialFees["white_glove"]; a.Fee != 120 || a.Label != "White Glove" {
		t.Errorf("white_glove = %+v", a)
	}
	if tables.PostalRegions["Z"] != "ZZ" {
		t.Errorf("postal override missing")
	}
	if tables.AccessorialFees["tailgate"].Fee != 45 {
		t.Errorf("defaults should survive the overlay")
	}
}

func TestLoadTables_Errors(t *testing.T) {
	if _, err := LoadTables(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	_ = os.WriteFile(path, []byte("region_distances: [1, 2"), 0o600)
	if _, err := LoadTables(path); err == nil {
		t.Error("expected parse error")
	}
}
