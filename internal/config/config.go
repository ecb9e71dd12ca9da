package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/nurpe/fleet-reports/internal/metrics"
)

const (
	DataSourcePostgres = "postgres"
	DataSourceMemory   = "memory"
)

type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type ReportsConfig struct {
	AverageSpeedKmh    float64
	OnTimeGraceHours   float64
	DriverShareRate    decimal.Decimal
	DefaultPageSize    int
	RecentLoadsLimit   int
	TopPerformersLimit int
}

// Policy converts the on-time and driver-share settings for the report engine.
func (c ReportsConfig) Policy() metrics.Policy {
	return metrics.Policy{
		AverageSpeedKmh: c.AverageSpeedKmh,
		OnTimeGrace:     time.Duration(c.OnTimeGraceHours * float64(time.Hour)),
		DriverShareRate: c.DriverShareRate,
	}
}

type ExportConfig struct {
	S3Bucket    string
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3PathStyle bool
}

// ArchiveEnabled reports whether rendered exports should be copied to S3.
func (c ExportConfig) ArchiveEnabled() bool {
	return c.S3Bucket != ""
}

type Config struct {
	Environment string
	DataSource  string
	SeedFile    string
	HTTP        HTTPConfig
	DB          DBConfig
	Reports     ReportsConfig
	Export      ExportConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 7090)
	v.SetDefault("DATA_SOURCE", DataSourcePostgres)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("REPORTS_AVERAGE_SPEED_KMH", 60)
	v.SetDefault("REPORTS_ON_TIME_GRACE_HOURS", 24)
	v.SetDefault("REPORTS_DRIVER_SHARE_RATE", "0.3")
	v.SetDefault("REPORTS_DEFAULT_PAGE_SIZE", 25)
	v.SetDefault("REPORTS_RECENT_LOADS_LIMIT", 10)
	v.SetDefault("REPORTS_TOP_PERFORMERS_LIMIT", 10)
	v.SetDefault("EXPORT_S3_REGION", "us-east-1")

	shareRate, err := decimal.NewFromString(strings.TrimSpace(v.GetString("REPORTS_DRIVER_SHARE_RATE")))
	if err != nil {
		return nil, fmt.Errorf("REPORTS_DRIVER_SHARE_RATE: %w", err)
	}

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		DataSource:  strings.ToLower(strings.TrimSpace(v.GetString("DATA_SOURCE"))),
		SeedFile:    v.GetString("SEED_FILE"),
		HTTP: HTTPConfig{
			Host:           v.GetString("HTTP_HOST"),
			Port:           v.GetInt("HTTP_PORT"),
			AllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Reports: ReportsConfig{
			AverageSpeedKmh:    v.GetFloat64("REPORTS_AVERAGE_SPEED_KMH"),
			OnTimeGraceHours:   v.GetFloat64("REPORTS_ON_TIME_GRACE_HOURS"),
			DriverShareRate:    shareRate,
			DefaultPageSize:    v.GetInt("REPORTS_DEFAULT_PAGE_SIZE"),
			RecentLoadsLimit:   v.GetInt("REPORTS_RECENT_LOADS_LIMIT"),
			TopPerformersLimit: v.GetInt("REPORTS_TOP_PERFORMERS_LIMIT"),
		},
		Export: ExportConfig{
			S3Bucket:    v.GetString("EXPORT_S3_BUCKET"),
			S3Endpoint:  v.GetString("EXPORT_S3_ENDPOINT"),
			S3Region:    v.GetString("EXPORT_S3_REGION"),
			S3AccessKey: v.GetString("EXPORT_S3_ACCESS_KEY"),
			S3SecretKey: v.GetString("EXPORT_S3_SECRET_KEY"),
			S3PathStyle: v.GetBool("EXPORT_S3_PATH_STYLE"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.DataSource {
	case DataSourcePostgres:
		if cfg.DB.DSN == "" {
			return fmt.Errorf("DB_DSN is required")
		}
	case DataSourceMemory:
	default:
		return fmt.Errorf("DATA_SOURCE must be %q or %q, got %q", DataSourcePostgres, DataSourceMemory, cfg.DataSource)
	}
	if cfg.HTTP.Port <= 0 {
		return fmt.Errorf("HTTP_PORT must be positive")
	}
	if cfg.Reports.AverageSpeedKmh <= 0 {
		return fmt.Errorf("REPORTS_AVERAGE_SPEED_KMH must be positive")
	}
	if cfg.Reports.OnTimeGraceHours < 0 {
		return fmt.Errorf("REPORTS_ON_TIME_GRACE_HOURS must not be negative")
	}
	if cfg.Reports.DriverShareRate.IsNegative() || cfg.Reports.DriverShareRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("REPORTS_DRIVER_SHARE_RATE must be within [0, 1]")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
