package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	Redis          RedisConfig          `toml:"redis"`
	RabbitMQ       RabbitMQConfig       `toml:"rabbitmq"`
	GoogleCalendar GoogleCalendarConfig `toml:"google_calendar"`
	Billing        BillingConfig        `toml:"billing"`
	Sync           SyncConfig           `toml:"sync"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования, пустой file - вывод в stdout
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig настройки распределенной блокировки помещений
// При enabled = false используется блокировка в памяти процесса
type RedisConfig struct {
	Enabled         bool   `toml:"enabled"`
	Addr            string `toml:"addr"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	KeyPrefix       string `toml:"key_prefix"`
	LockTTLMs       int    `toml:"lock_ttl_ms"`
	RetryIntervalMs int    `toml:"retry_interval_ms"`
}

// LockTTL время жизни блокировки
func (r RedisConfig) LockTTL() time.Duration {
	return time.Duration(r.LockTTLMs) * time.Millisecond
}

// RetryInterval интервал повторных попыток захвата блокировки
func (r RedisConfig) RetryInterval() time.Duration {
	return time.Duration(r.RetryIntervalMs) * time.Millisecond
}

// RabbitMQConfig настройки публикации уведомлений
// Пустой url - уведомления только пишутся в лог
type RabbitMQConfig struct {
	URL        string   `toml:"url"`
	Exchange   string   `toml:"exchange"`
	RoutingKey string   `toml:"routing_key"`
	Channels   []string `toml:"channels"`
}

// GoogleCalendarConfig настройки клиента календаря
// Пустой credentials_file отключает синхронизацию
type GoogleCalendarConfig struct {
	CredentialsFile string `toml:"credentials_file"`
	Endpoint        string `toml:"endpoint"`
	Timeout         int    `toml:"timeout"` // секунды на один вызов
}

// Enabled returns true when calendar credentials are configured
func (g GoogleCalendarConfig) Enabled() bool {
	return g.CredentialsFile != ""
}

// BillingConfig настройки расчета стоимости
type BillingConfig struct {
	Rounding string `toml:"rounding"` // floor | ceil
}

// SyncConfig настройки синхронизации с календарем
type SyncConfig struct {
	MaxWindowDays int `toml:"max_window_days"`
}

// MaxWindow максимальная длина окна синхронизации
func (s SyncConfig) MaxWindow() time.Duration {
	return time.Duration(s.MaxWindowDays) * 24 * time.Hour
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "amenity_service",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "amenity_service",
		},
		Redis: RedisConfig{
			Addr:            "localhost:6379",
			KeyPrefix:       "amenity",
			LockTTLMs:       5000,
			RetryIntervalMs: 50,
		},
		RabbitMQ: RabbitMQConfig{
			Exchange:   "notifications",
			RoutingKey: "reservation.event",
			Channels:   []string{"email"},
		},
		GoogleCalendar: GoogleCalendarConfig{
			Timeout: 10,
		},
		Billing: BillingConfig{
			Rounding: "floor",
		},
		Sync: SyncConfig{
			MaxWindowDays: 90,
		},
	}
}

// Load читает конфигурацию из TOML файла поверх значений по умолчанию
// Секреты переопределяются переменными окружения.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		c.Database.Password = v
	}
	if v, ok := os.LookupEnv("REDIS_PASSWORD"); ok {
		c.Redis.Password = v
	}
	if v, ok := os.LookupEnv("RABBITMQ_URL"); ok {
		c.RabbitMQ.URL = v
	}
	if v, ok := os.LookupEnv("GOOGLE_CREDENTIALS_FILE"); ok {
		c.GoogleCalendar.CredentialsFile = v
	}
}

// Validate проверяет значения, с которыми сервис не сможет работать
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port must be in 1..65535, got %d", c.Server.HTTPPort))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		errs = append(errs, errors.New("database.host and database.dbname are required"))
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, fmt.Errorf("database.max_idle_conns (%d) exceeds max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns))
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("metrics.path must start with '/', got %q", c.Metrics.Path))
	}
	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("redis.addr is required when redis is enabled"))
		}
		if c.Redis.LockTTLMs <= 0 || c.Redis.RetryIntervalMs <= 0 {
			errs = append(errs, errors.New("redis.lock_ttl_ms and redis.retry_interval_ms must be positive"))
		}
	}
	if c.RabbitMQ.URL != "" && c.RabbitMQ.Exchange == "" {
		errs = append(errs, errors.New("rabbitmq.exchange is required when rabbitmq.url is set"))
	}
	if c.GoogleCalendar.Timeout <= 0 {
		errs = append(errs, errors.New("google_calendar.timeout must be positive"))
	}
	switch c.Billing.Rounding {
	case "floor", "ceil":
	default:
		errs = append(errs, fmt.Errorf("billing.rounding must be floor or ceil, got %q", c.Billing.Rounding))
	}
	if c.Sync.MaxWindowDays <= 0 {
		errs = append(errs, errors.New("sync.max_window_days must be positive"))
	}

	return errors.Join(errs...)
}
