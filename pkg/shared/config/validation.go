package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// SupportedFormats lists the report formats accepted by the analyse command.
var SupportedFormats = []string{"text", "json", "sarif", "html"}

const (
	maxThreads         = 64
	maxDocumentSizeCap = int64(1 << 30)
)

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateLoggerConfig(&cfg.Logger); err != nil {
		return fmt.Errorf("YAML global config: logger directive is invalid: %w", err)
	}
	if err := ValidateHTTPConfig(&cfg.HTTPClient); err != nil {
		return fmt.Errorf("YAML global config: http_client directive is invalid: %w", err)
	}
	if err := ValidateS3Config(&cfg.S3); err != nil {
		return fmt.Errorf("YAML global config: s3 directive is invalid: %w", err)
	}
	if err := ValidateAnalyseConfig(&cfg.Analyse); err != nil {
		return fmt.Errorf("YAML global config: analyse directive is invalid: %w", err)
	}
	return nil
}

// ValidateLoggerConfig checks the log level.
func ValidateLoggerConfig(loggerConfig *Logger) error {
	if loggerConfig == nil {
		return fmt.Errorf("logger configuration is nil")
	}
	switch strings.ToUpper(loggerConfig.Level) {
	case "", "TRACE", "DEBUG", "INFO", "WARN", "ERROR":
		return nil
	default:
		return fmt.Errorf("unknown log level %q", loggerConfig.Level)
	}
}

// ValidateHTTPConfig checks if the HTTP configurations have valid values.
func ValidateHTTPConfig(httpConfig *HTTPClient) error {
	if httpConfig == nil {
		return fmt.Errorf("HTTP configuration is nil")
	}
	if httpConfig.RetryCount < 0 || httpConfig.RetryCount > 20 {
		return fmt.Errorf("retry_count must be between 0 and 20: %d", httpConfig.RetryCount)
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"retry_wait_time", httpConfig.RetryWaitTime},
		{"retry_max_wait_time", httpConfig.RetryMaxWaitTime},
		{"timeout", httpConfig.Timeout},
	}
	for _, d := range durations {
		if err := validateDuration(d.value, d.name, 100*time.Second); err != nil {
			return err
		}
	}

	return validateProxy(&httpConfig.Proxy)
}

// ValidateS3Config checks the optional custom endpoint.
func ValidateS3Config(s3Config *S3) error {
	if s3Config == nil {
		return fmt.Errorf("s3 configuration is nil")
	}
	if s3Config.Endpoint == "" {
		return nil
	}
	u, err := url.Parse(s3Config.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint %q must use http or https", s3Config.Endpoint)
	}
	return nil
}

// ValidateAnalyseConfig checks the analyse defaults.
func ValidateAnalyseConfig(analyseConfig *Analyse) error {
	if analyseConfig == nil {
		return fmt.Errorf("analyse configuration is nil")
	}
	if err := ValidateFormat(analyseConfig.Format); err != nil {
		return err
	}
	if analyseConfig.Threads < 1 || analyseConfig.Threads > maxThreads {
		return fmt.Errorf("threads must be between 1 and %d: %d", maxThreads, analyseConfig.Threads)
	}
	if analyseConfig.MaxDocumentSize < 1 || analyseConfig.MaxDocumentSize > maxDocumentSizeCap {
		return fmt.Errorf("max_document_size must be between 1 and %d bytes: %d", maxDocumentSizeCap, analyseConfig.MaxDocumentSize)
	}
	return nil
}

// ValidateFormat checks that format is a supported report format.
func ValidateFormat(format string) error {
	for _, f := range SupportedFormats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q, expected one of: %s", format, strings.Join(SupportedFormats, ", "))
}

// validateDuration checks that a time.Duration is valid and within a specified maximum duration.
func validateDuration(d time.Duration, name string, max time.Duration) error {
	if d < 0 {
		return fmt.Errorf("invalid duration for %q: %v cannot be negative", name, d)
	}
	if d > max {
		return fmt.Errorf("%q duration is too long: %v exceeds maximum of %v", name, d, max)
	}
	return nil
}

// validateProxy checks if the given Proxy settings are valid.
func validateProxy(proxy *Proxy) error {
	if proxy == nil {
		return fmt.Errorf("proxy configuration is nil")
	}

	// If host or port is not set, skip further validation
	if proxy.Host == "" || proxy.Port == 0 {
		return nil
	}

	if err := validateHost(&proxy.Host); err != nil {
		return err
	}

	return validatePort(proxy.Port)
}

// validateHost ensures the host includes a scheme; adds "http" if missing.
func validateHost(host *string) error {
	if host == nil {
		return fmt.Errorf("host string pointer is nil")
	}

	if !strings.Contains(*host, "://") {
		*host = "http://" + *host
	}
	*host = strings.TrimRight(*host, "/")

	if _, err := url.Parse(*host); err != nil {
		return fmt.Errorf("invalid host URL: %w", err)
	}

	return nil
}

// validatePort checks if the port part of the proxy configuration is valid.
func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	return nil
}
