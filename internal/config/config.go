package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Database   DatabaseConfig   `yaml:"database"`
	JWT        JWTConfig        `yaml:"jwt"`
	Redis      RedisConfig      `yaml:"redis"`
	Cron       CronConfig       `yaml:"cron"`
	Attendance AttendanceConfig `yaml:"attendance"`
	Bootstrap  BootstrapConfig  `yaml:"bootstrap"`
	Audit      AuditConfig      `yaml:"audit"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int      `yaml:"port"`
	Env         string   `yaml:"env"`
	LogLevel    string   `yaml:"log_level"`
	Timezone    string   `yaml:"timezone"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SSLMode            string        `yaml:"ssl_mode"`
	MaxConns           int32         `yaml:"max_conns"`
	MinConns           int32         `yaml:"min_conns"`
	MaxConnLifetimeRaw string        `yaml:"max_conn_lifetime"`
	MaxConnLifetime    time.Duration `yaml:"-"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string        `yaml:"secret"`
	AccessExpiration  string        `yaml:"access_expiration"`
	RefreshExpiration string        `yaml:"refresh_expiration"`
	AccessTTL         time.Duration `yaml:"-"`
	RefreshTTL        time.Duration `yaml:"-"`
}

// RedisConfig is optional. An empty Addr keeps token revocation in memory.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CronConfig struct {
	DailySpec  string `yaml:"daily_spec"`
	WeeklySpec string `yaml:"weekly_spec"`
	StaleSpec  string `yaml:"stale_spec"`
	RunOnStart bool   `yaml:"run_on_start"`
	Workers    int    `yaml:"workers"`
}

type AttendanceConfig struct {
	// MaxSessionRaw of "0" disables the stale session sweep.
	MaxSessionRaw string        `yaml:"max_session"`
	MaxSession    time.Duration `yaml:"-"`
}

// AuditConfig sizes the queue between request handlers and the audit table.
type AuditConfig struct {
	QueueSize int `yaml:"queue_size"`
}

type BootstrapConfig struct {
	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`
}

func defaults() *Config {
	return &Config{
		App: AppConfig{
			Port:     8080,
			Env:      "development",
			LogLevel: "info",
			Timezone: "UTC",
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Name:     "employee_management",
			SSLMode:  "disable",
			MaxConns: 25,
			MinConns: 5,
		},
		JWT: JWTConfig{
			AccessExpiration:  "1h",
			RefreshExpiration: "168h",
		},
		Cron: CronConfig{
			DailySpec:  "0 0 * * *",
			WeeklySpec: "0 1 * * 1",
			StaleSpec:  "0 * * * *",
			Workers:    4,
		},
		Attendance: AttendanceConfig{
			MaxSessionRaw: "16h",
		},
		Audit: AuditConfig{
			QueueSize: 256,
		},
	}
}

// Load reads .env (optional), then CONFIG_FILE (optional YAML), then the
// environment. Later sources win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	config := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := config.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("config: parse yaml: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var err error

	// Application configuration
	if c.App.Port, err = getEnvInt("APP_PORT", c.App.Port); err != nil {
		return err
	}
	c.App.Env = getEnv("APP_ENV", c.App.Env)
	c.App.LogLevel = getEnv("LOG_LEVEL", c.App.LogLevel)
	c.App.Timezone = getEnv("APP_TIMEZONE", c.App.Timezone)
	c.App.CORSOrigins = getEnvSlice("CORS_ALLOWED_ORIGINS", c.App.CORSOrigins)

	// Database configuration
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	if c.Database.Port, err = getEnvInt("DB_PORT", c.Database.Port); err != nil {
		return err
	}
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnv("DB_SSL_MODE", c.Database.SSLMode)
	maxConns, err := getEnvInt("DB_MAX_CONNS", int(c.Database.MaxConns))
	if err != nil {
		return err
	}
	c.Database.MaxConns = int32(maxConns)
	minConns, err := getEnvInt("DB_MIN_CONNS", int(c.Database.MinConns))
	if err != nil {
		return err
	}
	c.Database.MinConns = int32(minConns)
	c.Database.MaxConnLifetimeRaw = getEnv("DB_MAX_CONN_LIFETIME", c.Database.MaxConnLifetimeRaw)

	// JWT configuration
	c.JWT.Secret = getEnv("JWT_SECRET_KEY", c.JWT.Secret)
	c.JWT.AccessExpiration = getEnv("JWT_ACCESS_EXPIRATION_TIME", c.JWT.AccessExpiration)
	c.JWT.RefreshExpiration = getEnv("JWT_REFRESH_EXPIRATION_TIME", c.JWT.RefreshExpiration)

	// Redis configuration
	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	if c.Redis.DB, err = getEnvInt("REDIS_DB", c.Redis.DB); err != nil {
		return err
	}

	// Scheduler configuration
	c.Cron.DailySpec = getEnv("CRON_DAILY_SPEC", c.Cron.DailySpec)
	c.Cron.WeeklySpec = getEnv("CRON_WEEKLY_SPEC", c.Cron.WeeklySpec)
	c.Cron.StaleSpec = getEnv("CRON_STALE_SPEC", c.Cron.StaleSpec)
	if c.Cron.RunOnStart, err = getEnvBool("METRICS_RUN_ON_START", c.Cron.RunOnStart); err != nil {
		return err
	}
	if c.Cron.Workers, err = getEnvInt("METRICS_WORKERS", c.Cron.Workers); err != nil {
		return err
	}

	c.Attendance.MaxSessionRaw = getEnv("ATTENDANCE_MAX_SESSION", c.Attendance.MaxSessionRaw)

	if c.Audit.QueueSize, err = getEnvInt("AUDIT_QUEUE_SIZE", c.Audit.QueueSize); err != nil {
		return err
	}

	c.Bootstrap.AdminEmail = getEnv("BOOTSTRAP_ADMIN_EMAIL", c.Bootstrap.AdminEmail)
	c.Bootstrap.AdminPassword = getEnv("BOOTSTRAP_ADMIN_PASSWORD", c.Bootstrap.AdminPassword)
	return nil
}

func (c *Config) normalize() error {
	var err error
	if c.JWT.AccessTTL, err = time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.JWT.RefreshTTL, err = time.ParseDuration(c.JWT.RefreshExpiration); err != nil {
		return fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_TIME: %w", err)
	}
	if c.Database.MaxConnLifetime, err = parseDurationAllowEmpty(c.Database.MaxConnLifetimeRaw); err != nil {
		return fmt.Errorf("invalid DB_MAX_CONN_LIFETIME: %w", err)
	}
	if c.Attendance.MaxSession, err = parseDurationAllowEmpty(c.Attendance.MaxSessionRaw); err != nil {
		return fmt.Errorf("invalid ATTENDANCE_MAX_SESSION: %w", err)
	}
	c.Bootstrap.AdminEmail = strings.ToLower(strings.TrimSpace(c.Bootstrap.AdminEmail))
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return fmt.Errorf("JWT expirations must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if (c.Bootstrap.AdminEmail == "") != (c.Bootstrap.AdminPassword == "") {
		return fmt.Errorf("BOOTSTRAP_ADMIN_EMAIL and BOOTSTRAP_ADMIN_PASSWORD must be set together")
	}
	return nil
}

// Location is the timezone calendar days are computed in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.App.Timezone, err)
	}
	return loc, nil
}

func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	return time.ParseDuration(raw)
}
