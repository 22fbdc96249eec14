package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Storefront StorefrontConfig `mapstructure:"storefront"`
	Commerce   CommerceConfig   `mapstructure:"commerce"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Cache      CacheConfig      `mapstructure:"cache"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            int    `mapstructure:"port"`
	Host            string `mapstructure:"host"`
	ReadTimeout     int    `mapstructure:"read_timeout"`
	WriteTimeout    int    `mapstructure:"write_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

// Addr returns the listen address for the HTTP server
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// StorefrontConfig holds storefront behaviour that the catalog and account flows depend on
type StorefrontConfig struct {
	Name                 string `mapstructure:"name"`
	HomePath             string `mapstructure:"home_path"`
	DefaultCatalog       string `mapstructure:"default_catalog"`
	UsersDomain          string `mapstructure:"users_domain"`
	MaxNumberOfAddresses int    `mapstructure:"max_addresses"`
	RecentOrdersDays     int    `mapstructure:"recent_orders_days"`
	RecentOrdersLimit    int    `mapstructure:"recent_orders_limit"`
}

// CommerceConfig holds commerce engine API configuration
type CommerceConfig struct {
	BaseURL              string `mapstructure:"base_url"`
	APIKey               string `mapstructure:"api_key"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRetries           int    `mapstructure:"max_retries"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
	NotificationWorkers  int    `mapstructure:"notification_workers"`
}

// AuthConfig holds session token settings
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
	TokenTTL  int    `mapstructure:"token_ttl"`
}

// TTL returns the token lifetime
func (a AuthConfig) TTL() time.Duration {
	return time.Duration(a.TokenTTL) * time.Second
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Migrate  bool   `mapstructure:"migrate"`
}

// DSN returns a postgres URL usable by both pgxpool and golang-migrate
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Name,
	)
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	Password      string `mapstructure:"password"`
	Database      int    `mapstructure:"database"`
	ConsumerGroup string `mapstructure:"consumer_group"`
	MinIdleTime   int    `mapstructure:"min_idle_time"`
}

// Addr returns host:port for the redis client
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// CacheConfig selects the friendly URL cache provider
type CacheConfig struct {
	Provider string `mapstructure:"provider"` // redis | memory
	Prefix   string `mapstructure:"prefix"`
	TTL      int    `mapstructure:"ttl"` // seconds, 0 keeps entries until deleted
}

// Expiration returns how long a cached entry lives
func (c CacheConfig) Expiration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

// Load loads configuration from YAML file with environment variable overrides
func Load() (*Config, error) {
	// .env is only expected during local development
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if config.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret must be set")
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.shutdown_timeout", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("storefront.name", "storefront")
	v.SetDefault("storefront.home_path", "/content/home")
	v.SetDefault("storefront.default_catalog", "")
	v.SetDefault("storefront.users_domain", "CommerceUsers")
	v.SetDefault("storefront.max_addresses", 10)
	v.SetDefault("storefront.recent_orders_days", 30)
	v.SetDefault("storefront.recent_orders_limit", 5)

	v.SetDefault("commerce.base_url", "http://localhost:5000/api")
	v.SetDefault("commerce.api_key", "")
	v.SetDefault("commerce.timeout", 30)
	v.SetDefault("commerce.max_retries", 3)
	v.SetDefault("commerce.max_requests_per_second", 50)
	v.SetDefault("commerce.notification_workers", 2)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "storefront")
	v.SetDefault("auth.token_ttl", 86400)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "storefront")
	v.SetDefault("database.user", "storefront_user")
	v.SetDefault("database.password", "storefront_pass")
	v.SetDefault("database.migrate", true)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.consumer_group", "storefront_notifier")
	v.SetDefault("redis.min_idle_time", 120)

	v.SetDefault("cache.provider", "redis")
	v.SetDefault("cache.prefix", "storefront")
	v.SetDefault("cache.ttl", 3600)
}
