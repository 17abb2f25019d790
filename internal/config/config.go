package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server           ServerConfig           `toml:"server"`
	Database         DatabaseConfig         `toml:"database"`
	Logs             LogsConfig             `toml:"logs"`
	Metrics          MetricsConfig          `toml:"metrics"`
	App              AppConfig              `toml:"app"`
	Auriga           AurigaConfig           `toml:"auriga"`
	Auth             AuthConfig             `toml:"auth"`
	Mail             MailConfig             `toml:"mail"`
	Redis            RedisConfig            `toml:"redis"`
	RateLimit        RateLimitConfig        `toml:"rate_limit"`
	PersistenceRetry PersistenceRetryConfig `toml:"persistence_retry"`
	CORS             CORSConfig             `toml:"cors"`
}

type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	IdleTimeout     int      `toml:"idle_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	TrustedProxies  []string `toml:"trusted_proxies"` // только им доверяем X-Forwarded-For
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
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

// AppConfig общие настройки приложения
type AppConfig struct {
	Name     string `toml:"name"`
	Timezone string `toml:"timezone"` // Часовой пояс для дат бронирования без смещения
}

// AurigaConfig параметры подключения к провайдеру бронирований
type AurigaConfig struct {
	URL       string `toml:"url"`
	ClientID  string `toml:"client_id"`
	ClientKey string `toml:"client_key"`
	Timeout   int    `toml:"timeout"` // секунды
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	TokenTTL  int    `toml:"token_ttl"` // секунды
	Issuer    string `toml:"issuer"`
}

// MailConfig SMTP и адреса уведомлений
type MailConfig struct {
	Enabled    bool   `toml:"enabled"`
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	Username   string `toml:"username"`
	Password   string `toml:"password"`
	From       string `toml:"from"`
	FromName   string `toml:"from_name"`
	AdminEmail string `toml:"admin_email"`
	Timeout    int    `toml:"timeout"` // секунды на отправку одного письма
}

type RedisConfig struct {
	Enabled      bool   `toml:"enabled"`
	Addr         string `toml:"addr"`
	Password     string `toml:"password"`
	DB           int    `toml:"db"`
	LocationsTTL int    `toml:"locations_ttl"` // секунды
}

// RateLimitConfig лимит на создание бронирований для одного пользователя
type RateLimitConfig struct {
	RPS   float64 `toml:"rps"`
	Burst int     `toml:"burst"`
}

// PersistenceRetryConfig повторные попытки записи в БД после успешного ответа провайдера
type PersistenceRetryConfig struct {
	MaxRetries     int     `toml:"max_retries"`
	InitialDelayMs int     `toml:"initial_delay_ms"`
	MaxDelayMs     int     `toml:"max_delay_ms"`
	BackoffFactor  float64 `toml:"backoff_factor"`
	QueueSize      int     `toml:"queue_size"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Load загружает конфигурацию из TOML файла
// Перед чтением подхватывает .env (если есть); секреты из окружения перекрывают значения файла
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "reservation_service"},
		App:     AppConfig{Name: "TaxiClass", Timezone: "Europe/Madrid"},
		Auriga:  AurigaConfig{Timeout: 20},
		Auth:    AuthConfig{TokenTTL: 3600, Issuer: "taxiclass"},
		Mail:    MailConfig{Port: 587, FromName: "TaxiClass", Timeout: 30},
		Redis:   RedisConfig{Addr: "localhost:6379", LocationsTTL: 600},
		RateLimit: RateLimitConfig{
			RPS:   0.5,
			Burst: 3,
		},
		PersistenceRetry: PersistenceRetryConfig{
			MaxRetries:     5,
			InitialDelayMs: 500,
			MaxDelayMs:     30000,
			BackoffFactor:  2,
			QueueSize:      100,
		},
	}
}

// envOverrides переменные окружения, перекрывающие значения из файла
var envOverrides = map[string]func(c *Config, v string){
	"AURIGA_API_URL":    func(c *Config, v string) { c.Auriga.URL = v },
	"AURIGA_CLIENT_ID":  func(c *Config, v string) { c.Auriga.ClientID = v },
	"AURIGA_CLIENT_KEY": func(c *Config, v string) { c.Auriga.ClientKey = v },
	"JWT_SECRET":        func(c *Config, v string) { c.Auth.JWTSecret = v },
	"DB_PASSWORD":       func(c *Config, v string) { c.Database.Password = v },
	"MAIL_PASSWORD":     func(c *Config, v string) { c.Mail.Password = v },
	"REDIS_PASSWORD":    func(c *Config, v string) { c.Redis.Password = v },
	"ADMIN_EMAIL":       func(c *Config, v string) { c.Mail.AdminEmail = v },
	"HTTP_PORT": func(c *Config, v string) {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.HTTPPort = port
		}
	},
}

func applyEnv(cfg *Config) {
	for key, apply := range envOverrides {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			apply(cfg, strings.TrimSpace(v))
		}
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port must be in 1..65535, got %d", c.Server.HTTPPort))
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		errs = append(errs, errors.New("database.host and database.dbname are required"))
	}
	if c.Auriga.URL == "" {
		errs = append(errs, errors.New("auriga.url is required"))
	}
	if c.Auriga.ClientID == "" || c.Auriga.ClientKey == "" {
		errs = append(errs, errors.New("auriga.client_id and auriga.client_key are required"))
	}
	if c.Auriga.Timeout <= 0 {
		errs = append(errs, errors.New("auriga.timeout must be positive"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}
	if c.Mail.Enabled && (c.Mail.Host == "" || c.Mail.From == "") {
		errs = append(errs, errors.New("mail.host and mail.from are required when mail is enabled"))
	}
	if c.RateLimit.RPS <= 0 {
		errs = append(errs, errors.New("rate_limit.rps must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
