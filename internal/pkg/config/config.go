package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, store URL, etc.), security settings
// - default: Values common across all environments (page sizes, timeouts, intervals), standard settings
// - API tokens are NOT required at startup: a missing token fails the operation that needs it
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Source    SourceConfig
	Store     StoreConfig
	Sync      SyncConfig
	Revenue   RevenueConfig
	Cache     CacheConfig
	Redis     RedisConfig
	Scheduler SchedulerConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Dubai"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"14400"` // 4*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// SourceConfig points at the booking provider (PMS).
type SourceConfig struct {
	BaseURL       string        `envconfig:"SOURCE_BASE_URL" default:"https://api.hostaway.com/v1"`
	APIToken      string        `envconfig:"SOURCE_API_TOKEN"`
	PageSize      int           `envconfig:"SOURCE_PAGE_SIZE" default:"100"`
	MaxPages      int           `envconfig:"SOURCE_MAX_PAGES" default:"50"`
	ListingLimit  int           `envconfig:"SOURCE_LISTING_LIMIT" default:"500"`
	Timeout       time.Duration `envconfig:"SOURCE_TIMEOUT" default:"20s"`
	TargetCountry string        `envconfig:"SOURCE_TARGET_COUNTRY" default:"United Arab Emirates"`
}

// StoreConfig points at the tabular record store.
type StoreConfig struct {
	BaseURL            string        `envconfig:"STORE_BASE_URL" required:"true"`
	APITokens          []string      `envconfig:"STORE_API_TOKENS"`
	ReservationTableID string        `envconfig:"STORE_RESERVATION_TABLE_ID" required:"true"`
	RevenueTableID     string        `envconfig:"STORE_REVENUE_TABLE_ID" required:"true"`
	RevenueTableDated  bool          `envconfig:"STORE_REVENUE_TABLE_DATED" default:"true"`
	CategoryTableID    string        `envconfig:"STORE_CATEGORY_TABLE_ID" required:"true"`
	PageSize           int           `envconfig:"STORE_PAGE_SIZE" default:"100"`
	MaxPages           int           `envconfig:"STORE_MAX_PAGES" default:"100"`
	PageDelay          time.Duration `envconfig:"STORE_PAGE_DELAY" default:"50ms"`
	Timeout            time.Duration `envconfig:"STORE_TIMEOUT" default:"20s"`
}

type SyncConfig struct {
	// Reservations whose arrival or departure fell within this many trailing days stay in the
	// authoritative set. Anything older drops out and is removed from the store by the diff.
	RecentWindowDays int `envconfig:"SYNC_RECENT_WINDOW_DAYS" default:"30"`
}

type RevenueConfig struct {
	// Zero means "measure achievement against expected revenue".
	Target   float64 `envconfig:"REVENUE_TARGET" default:"0"`
	TimeZone string  `envconfig:"REVENUE_TIMEZONE" default:"Asia/Dubai"`
}

type CacheConfig struct {
	RevenueTTL time.Duration `envconfig:"CACHE_REVENUE_TTL" default:"5m"`
}

type RedisConfig struct {
	Addr        string        `envconfig:"REDIS_ADDR"`
	Password    string        `envconfig:"REDIS_PASSWORD"`
	DB          int           `envconfig:"REDIS_DB" default:"0"`
	KeyPrefix   string        `envconfig:"REDIS_KEY_PREFIX" default:"revenue-sync:"`
	SnapshotTTL time.Duration `envconfig:"REDIS_SNAPSHOT_TTL" default:"24h"`
}

type SchedulerConfig struct {
	Enabled         bool          `envconfig:"SCHEDULER_ENABLED" default:"true"`
	SyncInterval    time.Duration `envconfig:"SCHEDULER_SYNC_INTERVAL" default:"20m"`
	RevenueInterval time.Duration `envconfig:"SCHEDULER_REVENUE_INTERVAL" default:"20m"`
	RunOnStart      bool          `envconfig:"SCHEDULER_RUN_ON_START" default:"false"`
}

func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Addr) != ""
}

func (c RevenueConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func LoadConfig() (Config, error) {
	// .env is optional; real deployments inject the environment directly
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Dubai",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 14400,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Source: SourceConfig{
			APIToken:      "test-source-token",
			PageSize:      100,
			MaxPages:      50,
			ListingLimit:  500,
			Timeout:       5 * time.Second,
			TargetCountry: "United Arab Emirates",
		},
		Store: StoreConfig{
			APITokens:          []string{"test-store-token"},
			ReservationTableID: "tblReservations",
			RevenueTableID:     "tblRevenue",
			RevenueTableDated:  true,
			CategoryTableID:    "tblCategories",
			PageSize:           100,
			MaxPages:           100,
			PageDelay:          0,
			Timeout:            5 * time.Second,
		},
		Sync: SyncConfig{
			RecentWindowDays: 30,
		},
		Revenue: RevenueConfig{
			TimeZone: "UTC",
		},
		Cache: CacheConfig{
			RevenueTTL: 5 * time.Minute,
		},
		Scheduler: SchedulerConfig{
			Enabled: false,
		},
	}
}
