package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, перекрывающих значения из файла
// (например, TURF_DATABASE_PASSWORD, TURF_NOTIFICATIONS_WHATSAPP_TOKEN)
const EnvPrefix = "TURF"

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Redis         RedisConfig         `toml:"redis"`
	Kafka         KafkaConfig         `toml:"kafka"`
	Notifications NotificationsConfig `toml:"notifications"`
	Booking       BookingConfig       `toml:"booking"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns" envconfig:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" envconfig:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" envconfig:"CONN_MAX_LIFETIME"`
	ApplyMigrations bool   `toml:"apply_migrations" envconfig:"APPLY_MIGRATIONS"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" envconfig:"SERVICE_NAME"`
}

type RedisConfig struct {
	Enabled        bool   `toml:"enabled"`
	Addr           string `toml:"addr"`
	Password       string `toml:"password"`
	DB             int    `toml:"db"`
	HoldTTLSeconds int    `toml:"hold_ttl_seconds" envconfig:"HOLD_TTL_SECONDS"`
	LockTTLSeconds int    `toml:"lock_ttl_seconds" envconfig:"LOCK_TTL_SECONDS"`
}

func (r RedisConfig) HoldTTL() time.Duration {
	return time.Duration(r.HoldTTLSeconds) * time.Second
}

func (r RedisConfig) LockTTL() time.Duration {
	return time.Duration(r.LockTTLSeconds) * time.Second
}

type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

type NotificationsConfig struct {
	PushRelayURL       string `toml:"push_relay_url" envconfig:"PUSH_RELAY_URL"`
	WhatsAppAPIURL     string `toml:"whatsapp_api_url" envconfig:"WHATSAPP_API_URL"`
	WhatsAppPhoneID    string `toml:"whatsapp_phone_number_id" envconfig:"WHATSAPP_PHONE_NUMBER_ID"`
	WhatsAppToken      string `toml:"whatsapp_token" envconfig:"WHATSAPP_TOKEN"`
	WhatsAppTemplate   string `toml:"whatsapp_template" envconfig:"WHATSAPP_TEMPLATE"`
	Timeout            int    `toml:"timeout"`
	BreakerThreshold   int64  `toml:"breaker_threshold" envconfig:"BREAKER_THRESHOLD"`
	DispatchTimeoutSec int    `toml:"dispatch_timeout" envconfig:"DISPATCH_TIMEOUT"`
}

type BookingConfig struct {
	Timezone string `toml:"timezone"`
}

// Location часовой пояс площадок (даты бронирований хранятся без зоны)
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

// Load читает TOML-файл, применяет значения по умолчанию и переменные окружения TURF_*
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("%w: database host, dbname and user are required", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		return fmt.Errorf("%w: kafka.brokers and kafka.topic are required when kafka is enabled", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			ApplyMigrations: true,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "turf-manager",
		},
		Redis: RedisConfig{
			HoldTTLSeconds: 300,
			LockTTLSeconds: 10,
		},
		Notifications: NotificationsConfig{
			WhatsAppAPIURL:     "https://graph.facebook.com/v18.0",
			WhatsAppTemplate:   "booking_confirmation",
			Timeout:            5,
			BreakerThreshold:   5,
			DispatchTimeoutSec: 10,
		},
		Booking: BookingConfig{
			Timezone: "Asia/Kolkata",
		},
	}
}
