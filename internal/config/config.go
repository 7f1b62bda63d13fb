package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/mamadbah2/realty/internal/domain/models"
)

// Source names accepted in PROPERTY_SOURCE.
const (
	SourceMock    = "mock"
	SourceFile    = "file"
	SourceMongoDB = "mongodb"
	SourceSheets  = "sheets"
	SourceFeed    = "feed"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Source  SourceConfig
	MongoDB MongoDBConfig
	Sheets  SheetsConfig
	Feed    FeedConfig
	Refresh RefreshConfig
	Scoring ScoringConfig
	Market  MarketConfig
	AI      AIConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig selects the minimum log level.
type LogConfig struct {
	Level string
}

// SourceConfig selects where listings are loaded from.
type SourceConfig struct {
	Kind string
	File string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI        string
	DBName     string
	Collection string
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

// FeedConfig points at an HTTP listings feed.
type FeedConfig struct {
	URL   string
	Token string
}

// RefreshConfig holds scheduler-related settings.
type RefreshConfig struct {
	CronSchedule string
	Timezone     string
}

// ScoringConfig points at an optional YAML recalibration of the scoring constants.
type ScoringConfig struct {
	TablePath string
}

// MarketConfig carries the figures the analytics cannot derive from the listings.
type MarketConfig struct {
	Trends          models.MarketTrends
	AffordablePrice float64
}

// AIConfig holds settings for LLM providers.
type AIConfig struct {
	AnthropicKey string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// A missing .env is fine when the environment is set directly.
		_ = godotenv.Load()
	}

	trends, err := loadTrends()
	if err != nil {
		return nil, err
	}
	affordable, err := getenvFloat("AFFORDABLE_PRICE", 300000)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Source: SourceConfig{
			Kind: getenvWithDefault("PROPERTY_SOURCE", SourceMock),
			File: os.Getenv("PROPERTY_FILE"),
		},
		MongoDB: MongoDBConfig{
			URI:        os.Getenv("MONGODB_URI"),
			DBName:     getenvWithDefault("MONGODB_DB_NAME", "realty"),
			Collection: getenvWithDefault("MONGODB_COLLECTION", "properties"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			Range:           getenvWithDefault("GOOGLE_SHEET_RANGE", "Properties!A:AF"),
		},
		Feed: FeedConfig{
			URL:   os.Getenv("LISTINGS_FEED_URL"),
			Token: os.Getenv("LISTINGS_FEED_TOKEN"),
		},
		Refresh: RefreshConfig{
			CronSchedule: getenvWithDefault("REFRESH_CRON", "0 */6 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "America/Chicago"),
		},
		Scoring: ScoringConfig{
			TablePath: os.Getenv("SCORING_TABLE_PATH"),
		},
		Market: MarketConfig{
			Trends:          trends,
			AffordablePrice: affordable,
		},
		AI: AIConfig{
			AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Source.Kind {
	case SourceMock:
	case SourceFile:
		if c.Source.File == "" {
			return errors.New("PROPERTY_FILE must be provided when PROPERTY_SOURCE=file")
		}
	case SourceMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided when PROPERTY_SOURCE=mongodb")
		}
		if c.MongoDB.DBName == "" || c.MongoDB.Collection == "" {
			return errors.New("MONGODB_DB_NAME and MONGODB_COLLECTION must not be empty")
		}
	case SourceSheets:
		switch {
		case c.Sheets.CredentialsPath == "":
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when PROPERTY_SOURCE=sheets")
		case c.Sheets.SpreadsheetID == "":
			return errors.New("GOOGLE_SHEET_DATABASE_ID must be provided when PROPERTY_SOURCE=sheets")
		case c.Sheets.Range == "":
			return errors.New("GOOGLE_SHEET_RANGE must not be empty")
		}
	case SourceFeed:
		if c.Feed.URL == "" {
			return errors.New("LISTINGS_FEED_URL must be provided when PROPERTY_SOURCE=feed")
		}
	default:
		return fmt.Errorf("unknown PROPERTY_SOURCE %q", c.Source.Kind)
	}

	if c.Refresh.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	if c.Market.AffordablePrice <= 0 {
		return errors.New("AFFORDABLE_PRICE must be positive")
	}

	return nil
}

func loadTrends() (models.MarketTrends, error) {
	var (
		trends models.MarketTrends
		err    error
	)
	if trends.PriceChange30Days, err = getenvFloat("MARKET_PRICE_CHANGE_30D", 2.3); err != nil {
		return trends, err
	}
	if trends.RentChange30Days, err = getenvFloat("MARKET_RENT_CHANGE_30D", 1.8); err != nil {
		return trends, err
	}
	if trends.InventoryChange, err = getenvFloat("MARKET_INVENTORY_CHANGE", -5.2); err != nil {
		return trends, err
	}
	return trends, nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return v, nil
}
