package config

import (
	"crypto/tls"
	"time"
)

const (
	DefaultLogLevel        = "INFO"
	DefaultFormat          = "text"
	DefaultThreads         = 1
	DefaultMaxDocumentSize = int64(50 << 20)
	DefaultS3Region        = "us-east-1"
)

// BaseHTTPConfig holds common HTTP client configuration settings.
type BaseHTTPConfig struct {
	RetryCount       int
	RetryWaitTime    time.Duration
	RetryMaxWaitTime time.Duration
	Timeout          time.Duration
	TLSClientConfig  *tls.Config
	Proxy            string
}

// RestyHTTPClientConfig holds additional configuration settings for the resty client.
type RestyHTTPClientConfig struct {
	BaseHTTPConfig
	Debug bool
}

// DefaultHTTPConfig returns the base configuration for HTTP clients.
func DefaultHTTPConfig() BaseHTTPConfig {
	return BaseHTTPConfig{
		RetryCount:       3,
		RetryWaitTime:    1 * time.Second,
		RetryMaxWaitTime: 5 * time.Second,
		Timeout:          30 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		Proxy: "",
	}
}

// DefaultRestyConfig returns the default configuration for the resty client.
func DefaultRestyConfig() RestyHTTPClientConfig {
	return RestyHTTPClientConfig{
		BaseHTTPConfig: DefaultHTTPConfig(),
		Debug:          false,
	}
}

// applyDefaults fills unset values.
func applyDefaults(cfg *Config) {
	cfg.Logger.Level = SetThen(cfg.Logger.Level, DefaultLogLevel)
	cfg.Analyse.Format = SetThen(cfg.Analyse.Format, DefaultFormat)
	cfg.Analyse.Threads = SetThen(cfg.Analyse.Threads, DefaultThreads)
	cfg.Analyse.MaxDocumentSize = SetThen(cfg.Analyse.MaxDocumentSize, DefaultMaxDocumentSize)
	cfg.S3.Region = SetThen(cfg.S3.Region, DefaultS3Region)
}
