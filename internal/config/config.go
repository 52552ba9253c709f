package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	JWTSecret       string
	TokenTTL        time.Duration
	PasswordCost    int
	ShutdownTimeout time.Duration

	AdminEmail    string
	AdminPassword string

	PayPal PayPalConfig
	SMTP   SMTPConfig

	FrontendURL  string
	SupportEmail string

	DeliveryPollInterval time.Duration
	DeliveryWorkers      int
	DeliveryBatchSize    int
	DeliveryMaxAttempts  int
}

// PayPalConfig configures the payment gateway.
type PayPalConfig struct {
	ClientID           string
	ClientSecret       string
	Mode               string
	Timeout            time.Duration
	ExchangeRate       decimal.Decimal
	SettlementCurrency string
	BrandName          string
}

// Live reports whether the live PayPal API should be used instead of the sandbox.
func (c PayPalConfig) Live() bool {
	return c.Mode == "live"
}

// SMTPConfig configures the outgoing mail transport.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

const (
	defaultRunAddress           = ":4000"
	defaultJWTSecret            = "change-me-in-production"
	defaultTokenTTL             = 24 * time.Hour
	defaultShutdownTimeout      = 10 * time.Second
	defaultPayPalMode           = "sandbox"
	defaultPayPalTimeout        = 10 * time.Second
	defaultExchangeRate         = "0.012"
	defaultSettlementCurrency   = "USD"
	defaultBrandName            = "TriVima Studio"
	defaultFrontendURL          = "http://localhost:5173"
	defaultSMTPHost             = "smtp.gmail.com"
	defaultSMTPPort             = 587
	defaultDeliveryPollInterval = 2 * time.Second
	defaultDeliveryWorkers      = 2
	defaultDeliveryBatchSize    = 16
	defaultDeliveryMaxAttempts  = 5
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		JWTSecret:       getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:        getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		PasswordCost:    getInt(lookup, "BCRYPT_COST", 0),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		AdminEmail:      getString(lookup, "ADMIN_EMAIL", ""),
		AdminPassword:   getString(lookup, "ADMIN_PASSWORD", ""),
		PayPal: PayPalConfig{
			ClientID:           getString(lookup, "PAYPAL_CLIENT_ID", ""),
			ClientSecret:       getString(lookup, "PAYPAL_CLIENT_SECRET", ""),
			Mode:               getString(lookup, "PAYPAL_MODE", defaultPayPalMode),
			Timeout:            getDuration(lookup, "PAYPAL_TIMEOUT", defaultPayPalTimeout),
			SettlementCurrency: getString(lookup, "PAYPAL_CURRENCY", defaultSettlementCurrency),
			BrandName:          getString(lookup, "BRAND_NAME", defaultBrandName),
		},
		SMTP: SMTPConfig{
			Host:     getString(lookup, "SMTP_HOST", defaultSMTPHost),
			Port:     getInt(lookup, "SMTP_PORT", defaultSMTPPort),
			Username: getString(lookup, "SMTP_EMAIL", ""),
			Password: getString(lookup, "SMTP_PASS", ""),
		},
		FrontendURL:          getString(lookup, "FRONTEND_URL", defaultFrontendURL),
		SupportEmail:         getString(lookup, "SUPPORT_EMAIL", ""),
		DeliveryPollInterval: getDuration(lookup, "DELIVERY_POLL_INTERVAL", defaultDeliveryPollInterval),
		DeliveryWorkers:      getInt(lookup, "DELIVERY_WORKERS", defaultDeliveryWorkers),
		DeliveryBatchSize:    getInt(lookup, "DELIVERY_BATCH_SIZE", defaultDeliveryBatchSize),
		DeliveryMaxAttempts:  getInt(lookup, "DELIVERY_MAX_ATTEMPTS", defaultDeliveryMaxAttempts),
	}

	fs := flag.NewFlagSet("assetstore", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.DeliveryPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		exchangeRateStr    = getString(lookup, "PAYPAL_EXCHANGE_RATE", defaultExchangeRate)
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.PayPal.Mode, "paypal-mode", cfg.PayPal.Mode, "PayPal environment: sandbox or live")
	fs.StringVar(&exchangeRateStr, "exchange-rate", exchangeRateStr, "Store currency to settlement currency rate")
	fs.IntVar(&cfg.DeliveryWorkers, "delivery-workers", cfg.DeliveryWorkers, "Number of concurrent delivery workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between delivery outbox polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.DeliveryPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.PayPal.ExchangeRate, err = decimal.NewFromString(exchangeRateStr); err != nil {
		return nil, fmt.Errorf("invalid exchange rate: %w", err)
	}
	if !cfg.PayPal.ExchangeRate.IsPositive() {
		return nil, fmt.Errorf("exchange rate must be positive")
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.PayPal.Mode != "sandbox" && cfg.PayPal.Mode != "live" {
		return nil, fmt.Errorf("paypal mode must be sandbox or live, got %q", cfg.PayPal.Mode)
	}

	if cfg.DeliveryWorkers <= 0 {
		cfg.DeliveryWorkers = defaultDeliveryWorkers
	}

	if cfg.DeliveryBatchSize <= 0 {
		cfg.DeliveryBatchSize = defaultDeliveryBatchSize
	}

	if cfg.DeliveryMaxAttempts <= 0 {
		cfg.DeliveryMaxAttempts = defaultDeliveryMaxAttempts
	}

	if cfg.DeliveryPollInterval <= 0 {
		cfg.DeliveryPollInterval = defaultDeliveryPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.PayPal.Timeout <= 0 {
		cfg.PayPal.Timeout = defaultPayPalTimeout
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
