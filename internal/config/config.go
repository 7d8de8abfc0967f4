package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Paging   PagingConfig
	Security SecurityConfig
	Events   EventsConfig
	Log      LogConfig

	MetricsEnabled bool
}

type AppConfig struct {
	Name    string
	Version string
	Env     string
	Debug   bool
}

type ServerConfig struct {
	Addr            string
	TLSCert         string
	TLSKey          string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func (s ServerConfig) TLSEnabled() bool { return s.TLSCert != "" && s.TLSKey != "" }

type DatabaseConfig struct {
	Driver          string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
}

type PagingConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

type SecurityConfig struct {
	CORSOrigins    []string
	MaxBodySize    int64
	StrictSecurity bool
}

type EventsConfig struct {
	RedisURL string
	Channel  string
	Buffer   int
	Workers  int
}

func (e EventsConfig) Enabled() bool { return e.RedisURL != "" }

type LogConfig struct {
	Level string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "Smart Library API")
	v.SetDefault("APP_VERSION", "1.0.0")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DEBUG", false)

	v.SetDefault("HTTP_ADDR", ":8000")
	v.SetDefault("HTTP_READ_TIMEOUT", 10*time.Second)
	v.SetDefault("HTTP_WRITE_TIMEOUT", 15*time.Second)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)

	v.SetDefault("DB_DRIVER", DriverPgx)
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 5*time.Minute)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	v.SetDefault("DB_CONNECT_TIMEOUT", 3*time.Second)

	v.SetDefault("DEFAULT_PAGE_SIZE", 100)
	v.SetDefault("MAX_PAGE_SIZE", 1000)

	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("MAX_BODY_SIZE", 1<<20)
	v.SetDefault("STRICT_SECURITY", false)

	v.SetDefault("EVENTS_CHANNEL", "library:books:changes")
	v.SetDefault("EVENTS_BUFFER", 1024)
	v.SetDefault("EVENTS_WORKERS", 1)

	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("LOG_LEVEL", "info")
}

// Load reads envFiles (missing files are ignored) into the process
// environment, then resolves every setting from the environment.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Version: v.GetString("APP_VERSION"),
			Env:     v.GetString("APP_ENV"),
			Debug:   v.GetBool("DEBUG"),
		},
		Server: ServerConfig{
			Addr:            v.GetString("HTTP_ADDR"),
			TLSCert:         v.GetString("TLS_CERT"),
			TLSKey:          v.GetString("TLS_KEY"),
			ReadTimeout:     v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("HTTP_WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			URL:             v.GetString("DATABASE_URL"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxIdleTime: v.GetDuration("DB_CONN_MAX_IDLE_TIME"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnectTimeout:  v.GetDuration("DB_CONNECT_TIMEOUT"),
		},
		Paging: PagingConfig{
			DefaultPageSize: v.GetInt("DEFAULT_PAGE_SIZE"),
			MaxPageSize:     v.GetInt("MAX_PAGE_SIZE"),
		},
		Security: SecurityConfig{
			CORSOrigins:    splitList(v.GetString("CORS_ORIGINS")),
			MaxBodySize:    v.GetInt64("MAX_BODY_SIZE"),
			StrictSecurity: v.GetBool("STRICT_SECURITY"),
		},
		Events: EventsConfig{
			RedisURL: v.GetString("REDIS_URL"),
			Channel:  v.GetString("EVENTS_CHANNEL"),
			Buffer:   v.GetInt("EVENTS_BUFFER"),
			Workers:  v.GetInt("EVENTS_WORKERS"),
		},
		Log:            LogConfig{Level: v.GetString("LOG_LEVEL")},
		MetricsEnabled: v.GetBool("METRICS_ENABLED"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate fails fast on settings that cannot work together.
func (c *Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case DriverPgx, DriverPostgres:
		if c.Database.URL == "" {
			errs = append(errs, fmt.Errorf("DATABASE_URL not set (DB_DRIVER=%s)", c.Database.Driver))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be one of pgx, postgres, memory; got %q", c.Database.Driver))
	}
	if c.Paging.MaxPageSize < 1 {
		errs = append(errs, errors.New("MAX_PAGE_SIZE must be positive"))
	}
	if c.Paging.DefaultPageSize < 1 || c.Paging.DefaultPageSize > c.Paging.MaxPageSize {
		errs = append(errs, fmt.Errorf("DEFAULT_PAGE_SIZE must be between 1 and MAX_PAGE_SIZE (%d)", c.Paging.MaxPageSize))
	}
	if (c.Server.TLSCert == "") != (c.Server.TLSKey == "") {
		errs = append(errs, errors.New("TLS_CERT and TLS_KEY must be set together"))
	}
	if c.Security.MaxBodySize <= 0 {
		errs = append(errs, errors.New("MAX_BODY_SIZE must be positive"))
	}
	if c.Security.StrictSecurity && containsStar(c.Security.CORSOrigins) {
		errs = append(errs, errors.New("CORS_ORIGINS=* is not allowed with STRICT_SECURITY"))
	}
	if c.Events.Enabled() && c.Events.Channel == "" {
		errs = append(errs, errors.New("EVENTS_CHANNEL must be set when REDIS_URL is"))
	}
	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func containsStar(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
