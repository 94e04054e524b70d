package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

type Params struct {
	BackendAddr     string
	ExchangeAddr    string
	ExchangeAPIKey  string
	PlacesAddr      string
	PlacesAPIKey    string
	SessionStore    string
	LogLevel        string
	DefaultCurrency string
	BillerEmail     string
	RequestTimeout  time.Duration
	RefreshInterval time.Duration
}

var Config Params = Default()

func Default() Params {
	return Params{
		BackendAddr:     "http://localhost:8000",
		ExchangeAddr:    "https://v6.exchangerate-api.com/v6",
		PlacesAddr:      "https://maps.googleapis.com/maps/api/place",
		SessionStore:    "sqlite://bankcli.db",
		LogLevel:        "info",
		DefaultCurrency: "XAF",
		BillerEmail:     "billing@bank.local",
		RequestTimeout:  5 * time.Second,
		RefreshInterval: 30 * time.Second,
	}
}

// Parse fills Params from the global flag set and then lets environment
// variables override them.
func (f *Params) Parse() error {
	return f.ParseArgs(flag.CommandLine, os.Args[1:])
}

func (f *Params) ParseArgs(fs *flag.FlagSet, args []string) error {
	fs.StringVar(&f.BackendAddr, "b", f.BackendAddr, "banking backend base URL")
	fs.StringVar(&f.ExchangeAddr, "x", f.ExchangeAddr, "exchange rate API base URL")
	fs.StringVar(&f.ExchangeAPIKey, "k", f.ExchangeAPIKey, "exchange rate API key")
	fs.StringVar(&f.PlacesAddr, "p", f.PlacesAddr, "places API base URL")
	fs.StringVar(&f.PlacesAPIKey, "g", f.PlacesAPIKey, "places API key")
	fs.StringVar(&f.SessionStore, "s", f.SessionStore, "session store DSN: sqlite://path, postgres://..., redis://..., memory://")
	fs.StringVar(&f.LogLevel, "l", f.LogLevel, "log level")
	fs.StringVar(&f.DefaultCurrency, "c", f.DefaultCurrency, "default ISO 4217 currency")
	fs.StringVar(&f.BillerEmail, "e", f.BillerEmail, "account that receives bill payments")
	fs.DurationVar(&f.RequestTimeout, "t", f.RequestTimeout, "timeout for a single API request")
	fs.DurationVar(&f.RefreshInterval, "i", f.RefreshInterval, "balance refresh interval for watch")

	if err := fs.Parse(args); err != nil {
		return err
	}

	return f.applyEnv()
}

func (f *Params) applyEnv() error {
	if v := os.Getenv("BACKEND_ADDRESS"); v != "" {
		f.BackendAddr = v
	}

	if v := os.Getenv("EXCHANGE_API_ADDRESS"); v != "" {
		f.ExchangeAddr = v
	}

	if v := os.Getenv("EXCHANGE_API_KEY"); v != "" {
		f.ExchangeAPIKey = v
	}

	if v := os.Getenv("PLACES_API_ADDRESS"); v != "" {
		f.PlacesAddr = v
	}

	if v := os.Getenv("PLACES_API_KEY"); v != "" {
		f.PlacesAPIKey = v
	}

	if v := os.Getenv("SESSION_STORE"); v != "" {
		f.SessionStore = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		f.LogLevel = strings.ToLower(v)
	}

	if v := os.Getenv("DEFAULT_CURRENCY"); v != "" {
		f.DefaultCurrency = strings.ToUpper(v)
	}

	if v := os.Getenv("BILLER_EMAIL"); v != "" {
		f.BillerEmail = v
	}

	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
		}
		f.RequestTimeout = d
	}

	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
		}
		f.RefreshInterval = d
	}

	return nil
}

func (f Params) Validate() error {
	if f.BackendAddr == "" {
		return errors.New("backend address must be set")
	}

	if f.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}

	if f.RefreshInterval <= 0 {
		return errors.New("refresh interval must be positive")
	}

	return nil
}

func (f Params) String() string {
	return fmt.Sprintf("backend=%s exchange=%s places=%s store=%s timeout=%s",
		f.BackendAddr, f.ExchangeAddr, f.PlacesAddr, redactDSN(f.SessionStore), f.RequestTimeout)
}

func redactDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at == -1 || scheme == -1 || at < scheme {
		return dsn
	}

	return dsn[:scheme+3] + "***" + dsn[at:]
}
