package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/flexprice/paystack-gateway/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Paystack   PaystackConfig   `validate:"required"`
	Store      StoreConfig      `validate:"required"`
	Auth       AuthConfig
	Cache      CacheConfig
	Redis      RedisConfig
	Sentry     SentryConfig
	Metrics    MetricsConfig
	CORS       CORSConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// PaystackConfig holds the gateway connection settings. Merchant credentials live in the
// settings store, not here.
type PaystackConfig struct {
	BaseURL       string        `mapstructure:"base_url" validate:"required,url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	CallbackPath  string        `mapstructure:"callback_path" validate:"required"`
	AutoProvision bool          `mapstructure:"auto_provision"`
}

// StoreConfig describes the host storefront this plugin redirects customers back to
// AllowedURLs lists further storefront origins a request may name in X-Store-URL; the origin
// of BaseURL is always allowed.
type StoreConfig struct {
	BaseURL     string      `mapstructure:"base_url" validate:"required,url"`
	AllowedURLs []string    `mapstructure:"allowed_urls" validate:"dive,url"`
	Routes      StoreRoutes `mapstructure:"routes"`
}

// StoreRoutes are the host page paths; %d is replaced with the order id
type StoreRoutes struct {
	CheckoutCompleted string `mapstructure:"checkout_completed"`
	OrderDetails      string `mapstructure:"order_details"`
	Homepage          string `mapstructure:"homepage"`
}

type AuthConfig struct {
	AdminKey string `mapstructure:"admin_key"`
}

type CacheConfig struct {
	Enabled  bool                `mapstructure:"enabled"`
	Provider types.CacheProvider `mapstructure:"provider"`
	TTL      time.Duration       `mapstructure:"ttl"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// CORSConfig lists the browser origins allowed to call the API. "*" allows any origin.
type CORSConfig struct {
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	MaxAge         time.Duration `mapstructure:"max_age"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

const (
	DefaultPaystackBaseURL = "https://api.paystack.co"
	DefaultGatewayTimeout  = 5 * time.Second
	DefaultCallbackPath    = "Plugins/PaymentGateway/Callback"
)

func NewConfig() (*Configuration, error) {
	// a local .env may carry PAYSTACK_* overrides; it is optional
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/paystack")

	setDefaults(v)

	// Set up environment variables support
	v.SetEnvPrefix("PAYSTACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("paystack.base_url", DefaultPaystackBaseURL)
	v.SetDefault("paystack.timeout", DefaultGatewayTimeout)
	v.SetDefault("paystack.callback_path", DefaultCallbackPath)
	v.SetDefault("store.base_url", "http://localhost:5000/")
	v.SetDefault("store.routes.checkout_completed", "/checkout/completed/%d")
	v.SetDefault("store.routes.order_details", "/orderdetails/%d")
	v.SetDefault("store.routes.homepage", "/")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.provider", types.CacheProviderMemory)
	v.SetDefault("cache.ttl", 30*time.Minute)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("cors.max_age", 24*time.Hour)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development and tests
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Paystack: PaystackConfig{
			BaseURL:      DefaultPaystackBaseURL,
			Timeout:      DefaultGatewayTimeout,
			CallbackPath: DefaultCallbackPath,
		},
		Store: StoreConfig{
			BaseURL: "http://localhost:5000/",
			Routes: StoreRoutes{
				CheckoutCompleted: "/checkout/completed/%d",
				OrderDetails:      "/orderdetails/%d",
				Homepage:          "/",
			},
		},
		Cache: CacheConfig{
			Enabled:  true,
			Provider: types.CacheProviderMemory,
			TTL:      30 * time.Minute,
		},
		Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
		CORS:    CORSConfig{MaxAge: 24 * time.Hour},
	}
}

// GatewayTimeout returns the bounded timeout applied to every gateway call
func (c PaystackConfig) GatewayTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultGatewayTimeout
	}
	return c.Timeout
}

// AllowsURL reports whether raw is an http(s) URL on the origin of BaseURL or of one of
// AllowedURLs
func (c StoreConfig) AllowsURL(raw string) bool {
	origin, ok := urlOrigin(raw)
	if !ok {
		return false
	}
	for _, allowed := range append([]string{c.BaseURL}, c.AllowedURLs...) {
		if o, ok := urlOrigin(allowed); ok && o == origin {
			return true
		}
	}
	return false
}

func urlOrigin(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || u.User != nil {
		return "", false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", false
	}
	return scheme + "://" + strings.ToLower(u.Host), true
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
