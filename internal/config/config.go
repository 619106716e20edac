package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Booking   BookingConfig   `toml:"booking"`
	Reviews   ReviewsConfig   `toml:"reviews"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к БД.
// Driver = "postgres" (production) или "sqlite" (локальный запуск, тесты)
type DatabaseConfig struct {
	Driver          string `toml:"driver"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	Path            string `toml:"path"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	Migrate         bool   `toml:"migrate"`
}

// DSN строка подключения для выбранного драйвера
func (c DatabaseConfig) DSN() string {
	if c.Driver == "sqlite" {
		return fmt.Sprintf("file:%s?_txlock=immediate&_busy_timeout=5000&_foreign_keys=on", c.Path)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Address  string `toml:"address"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	PoolSize int    `toml:"pool_size"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig параметры движка бронирования
type BookingConfig struct {
	SlotStepMinutes         int    `toml:"slot_step_minutes"`
	DefaultOpen             string `toml:"default_open"`
	DefaultClose            string `toml:"default_close"`
	FailOpenHours           *bool  `toml:"fail_open_hours"`
	SkipMalformed           *bool  `toml:"skip_malformed_appointments"`
	RollbackDealClaim       *bool  `toml:"rollback_deal_claim_on_failure"`
	AdvanceBookingDays      int    `toml:"advance_booking_days"`
	MinBookingNoticeMinutes int    `toml:"min_booking_notice_minutes"`
	LockTTLSeconds          int    `toml:"lock_ttl_seconds"`
	LockWaitSeconds         int    `toml:"lock_wait_seconds"`
	TxRetries               int    `toml:"tx_retries"`
}

// LockTTL время жизни блокировки слота
func (c BookingConfig) LockTTL() time.Duration {
	return time.Duration(c.LockTTLSeconds) * time.Second
}

// LockWait максимальное ожидание блокировки слота
func (c BookingConfig) LockWait() time.Duration {
	return time.Duration(c.LockWaitSeconds) * time.Second
}

type ReviewsConfig struct {
	AnonymousFallback *bool `toml:"anonymous_fallback"`
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

// Load загружает конфигурацию из TOML файла.
// Перед разбором подгружается .env (если есть) и подставляются переменные окружения вида ${VAR}
func Load(path string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(os.ExpandEnv(string(data)))
}

// Parse разбирает TOML, применяет значения по умолчанию и валидирует результат
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "salon-booking-service"
	}

	if c.Booking.SlotStepMinutes == 0 {
		c.Booking.SlotStepMinutes = 5
	}
	if c.Booking.DefaultOpen == "" {
		c.Booking.DefaultOpen = "09:00"
	}
	if c.Booking.DefaultClose == "" {
		c.Booking.DefaultClose = "18:00"
	}
	if c.Booking.FailOpenHours == nil {
		c.Booking.FailOpenHours = ptr.Ptr(true)
	}
	if c.Booking.SkipMalformed == nil {
		c.Booking.SkipMalformed = ptr.Ptr(true)
	}
	if c.Booking.RollbackDealClaim == nil {
		c.Booking.RollbackDealClaim = ptr.Ptr(true)
	}
	if c.Booking.LockTTLSeconds == 0 {
		c.Booking.LockTTLSeconds = 10
	}
	if c.Booking.LockWaitSeconds == 0 {
		c.Booking.LockWaitSeconds = 3
	}
	if c.Booking.TxRetries == 0 {
		c.Booking.TxRetries = 3
	}

	if c.Reviews.AnonymousFallback == nil {
		c.Reviews.AnonymousFallback = ptr.Ptr(true)
	}

	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 5
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" || c.Database.DBName == "" {
			return errors.New("database host and dbname are required for postgres")
		}
	case "sqlite":
		if c.Database.Path == "" {
			return errors.New("database path is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Redis.Enabled && c.Redis.Address == "" {
		return errors.New("redis address is required when redis is enabled")
	}

	if c.Booking.SlotStepMinutes < 0 {
		return errors.New("booking.slot_step_minutes must be positive")
	}
	if c.Booking.AdvanceBookingDays < 0 || c.Booking.MinBookingNoticeMinutes < 0 {
		return errors.New("booking limits must not be negative")
	}

	open, err := types.NewTimeStringFromString(c.Booking.DefaultOpen)
	if err != nil {
		return fmt.Errorf("booking.default_open: %w", err)
	}
	closeTime, err := types.NewTimeStringFromString(c.Booking.DefaultClose)
	if err != nil {
		return fmt.Errorf("booking.default_close: %w", err)
	}
	if !open.IsBefore(closeTime) {
		return errors.New("booking.default_open must be before booking.default_close")
	}

	return nil
}
