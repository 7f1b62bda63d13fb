package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_PORT", "LOG_LEVEL", "PROPERTY_SOURCE", "PROPERTY_FILE",
		"MONGODB_URI", "MONGODB_DB_NAME", "MONGODB_COLLECTION",
		"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_DATABASE_ID", "GOOGLE_SHEET_RANGE",
		"LISTINGS_FEED_URL", "LISTINGS_FEED_TOKEN", "REFRESH_CRON", "TIMEZONE",
		"SCORING_TABLE_PATH", "MARKET_PRICE_CHANGE_30D", "MARKET_RENT_CHANGE_30D",
		"MARKET_INVENTORY_CHANGE", "AFFORDABLE_PRICE", "ANTHROPIC_API_KEY",
	} {
		// Setenv registers the restore, Unsetenv lets godotenv fill the key.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(missingEnvFile(t))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Source.Kind != SourceMock {
		t.Errorf("Source.Kind = %q, want %q", cfg.Source.Kind, SourceMock)
	}
	if cfg.Market.AffordablePrice != 300000 {
		t.Errorf("AffordablePrice = %v, want 300000", cfg.Market.AffordablePrice)
	}
	if cfg.MongoDB.Collection != "properties" {
		t.Errorf("MongoDB.Collection = %q, want properties", cfg.MongoDB.Collection)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	content := strings.Join([]string{
		"APP_PORT=9090",
		"PROPERTY_SOURCE=file",
		"PROPERTY_FILE=/tmp/listings.json",
		"MARKET_PRICE_CHANGE_30D=2.3",
		"MARKET_INVENTORY_CHANGE=-4.5",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Source.File != "/tmp/listings.json" {
		t.Errorf("Source.File = %q", cfg.Source.File)
	}
	if cfg.Market.Trends.PriceChange30Days != 2.3 || cfg.Market.Trends.InventoryChange != -4.5 {
		t.Errorf("Trends = %+v", cfg.Market.Trends)
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("AFFORDABLE_PRICE", "cheap")

	if _, err := Load(missingEnvFile(t)); err == nil {
		t.Fatal("expected error for non-numeric AFFORDABLE_PRICE")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: "8080"},
			Source:  SourceConfig{Kind: SourceMock},
			Refresh: RefreshConfig{Timezone: "UTC"},
			Market:  MarketConfig{AffordablePrice: 300000},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "mock source", mutate: func(*Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: "APP_PORT"},
		{name: "unknown source", mutate: func(c *Config) { c.Source.Kind = "ftp" }, wantErr: "PROPERTY_SOURCE"},
		{name: "file without path", mutate: func(c *Config) { c.Source.Kind = SourceFile }, wantErr: "PROPERTY_FILE"},
		{name: "mongodb without uri", mutate: func(c *Config) {
			c.Source.Kind = SourceMongoDB
		}, wantErr: "MONGODB_URI"},
		{name: "sheets without credentials", mutate: func(c *Config) {
			c.Source.Kind = SourceSheets
			c.Sheets.SpreadsheetID = "sheet"
		}, wantErr: "GOOGLE_SHEETS_CREDENTIALS_PATH"},
		{name: "feed without url", mutate: func(c *Config) { c.Source.Kind = SourceFeed }, wantErr: "LISTINGS_FEED_URL"},
		{name: "feed with url", mutate: func(c *Config) {
			c.Source.Kind = SourceFeed
			c.Feed.URL = "https://feed.example.com/listings"
		}},
		{name: "zero affordable price", mutate: func(c *Config) { c.Market.AffordablePrice = 0 }, wantErr: "AFFORDABLE_PRICE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate returned error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}
