package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bookings-insights-service/internal/insights/core/timeline"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingDSN = errors.New("postgres.dsn is required (POSTGRES_DSN)")

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Migrate  MigrateConfig  `mapstructure:"migrate"`
	Log      LogConfig      `mapstructure:"log"`
	Insights InsightsConfig `mapstructure:"insights"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type MigrateConfig struct {
	OnStart bool `mapstructure:"on_start"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type InsightsConfig struct {
	SuccessPolicy     string `mapstructure:"success_policy"`
	HourlyMaxSpanDays int    `mapstructure:"hourly_max_span_days"`
	MaxBuckets        int    `mapstructure:"max_buckets"`
	BreakdownLimit    int    `mapstructure:"breakdown_limit"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "bookings-insights")
	v.SetDefault("app.env", "development")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", 5*time.Second)

	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.max_open_conns", 20)
	v.SetDefault("postgres.max_idle_conns", 10)
	v.SetDefault("postgres.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("migrate.on_start", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("insights.success_policy", string(timeline.DefaultSuccessPolicy))
	v.SetDefault("insights.hourly_max_span_days", timeline.DefaultHourlyMaxSpanDays)
	v.SetDefault("insights.max_buckets", timeline.DefaultMaxBuckets)
	v.SetDefault("insights.breakdown_limit", 20)

	v.SetDefault("metrics.enabled", true)
}

// Load reads .env, an optional insights.yml and the environment, in that
// order of increasing precedence. POSTGRES_DSN overrides postgres.dsn.
func Load() (Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	setDefaults(v)

	v.SetConfigName("insights")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/bookings-insights")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Postgres.DSN) == "" {
		return ErrMissingDSN
	}
	if _, err := c.SuccessPolicy(); err != nil {
		return err
	}
	if c.Insights.HourlyMaxSpanDays < 0 || c.Insights.MaxBuckets < 0 || c.Insights.BreakdownLimit < 0 {
		return errors.New("insights limits must not be negative")
	}
	return nil
}

// SuccessPolicy is the parsed insights.success_policy.
func (c Config) SuccessPolicy() (timeline.SuccessPolicy, error) {
	return timeline.ParseSuccessPolicy(c.Insights.SuccessPolicy)
}
