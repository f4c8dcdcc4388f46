package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"25"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"1m"`
	QueryTimeout    time.Duration `yaml:"QUERY_TIMEOUT" env:"PG_QUERY_TIMEOUT" env-default:"5s"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15s"`
}

type SendGrid struct {
	APIKey    string `yaml:"API_KEY" env:"SENDGRID_API_KEY"`
	FromEmail string `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"alerts@savedate.app"`
	FromName  string `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Save Date"`
	// BaseURL selects a regional API host; empty means the global one.
	BaseURL   string `yaml:"BASE_URL" env:"SENDGRID_BASE_URL"`
}

type Security struct {
	JWTKey         string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
	JWTExpiryHours int    `yaml:"JWT_EXPIRY_HOURS" env:"JWT_EXPIRY_HOURS" env-default:"24"`
}

type OTel struct {
	Enabled          bool    `yaml:"ENABLED" env:"OTEL_ENABLED" env-default:"false"`
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"save-date"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4318"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
}

// Sweep controls the daily expiry sweep. Hour and Minute are wall-clock
// values in Timezone.
type Sweep struct {
	Enabled        bool          `yaml:"ENABLED" env:"SWEEP_ENABLED" env-default:"true"`
	Hour           int           `yaml:"HOUR" env:"SWEEP_HOUR" env-default:"8"`
	Minute         int           `yaml:"MINUTE" env:"SWEEP_MINUTE" env-default:"0"`
	Timezone       string        `yaml:"TIMEZONE" env:"SWEEP_TIMEZONE" env-default:"UTC"`
	WarnWithinDays int           `yaml:"WARN_WITHIN_DAYS" env:"SWEEP_WARN_WITHIN_DAYS" env-default:"7"`
	LeaseTTL       time.Duration `yaml:"LEASE_TTL" env:"SWEEP_LEASE_TTL" env-default:"30m"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Security     Security     `yaml:"security"`
	OTel         OTel         `yaml:"otel"`
	Cache        CacheConfig  `yaml:"cache"`
	Sweep        Sweep        `yaml:"sweep"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "path to the yaml config file")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg

}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.Sweep.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}

// Location resolves Timezone, falling back to UTC when it is empty.
func (s *Sweep) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}

	return time.LoadLocation(s.Timezone)
}

func (s *Sweep) validate() error {
	if s.Hour < 0 || s.Hour > 23 {
		return fmt.Errorf("sweep hour must be between 0 and 23, got %d", s.Hour)
	}

	if s.Minute < 0 || s.Minute > 59 {
		return fmt.Errorf("sweep minute must be between 0 and 59, got %d", s.Minute)
	}

	if s.WarnWithinDays < 0 {
		return fmt.Errorf("sweep warn window cannot be negative, got %d", s.WarnWithinDays)
	}

	if _, err := s.Location(); err != nil {
		return fmt.Errorf("invalid sweep timezone %q: %w", s.Timezone, err)
	}

	return nil
}
