package config

import (
	"time"
)

// Config is the global lottiescan configuration.
type Config struct {
	Logger     Logger     `yaml:"logger"`
	HTTPClient HTTPClient `yaml:"http_client"`
	S3         S3         `yaml:"s3"`
	Analyse    Analyse    `yaml:"analyse"`
}

// Logger holds logging settings.
type Logger struct {
	Level           string `yaml:"level"`
	DisableTime     *bool  `yaml:"disable_time"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
}

// HTTPClient holds settings for fetching documents over http(s).
type HTTPClient struct {
	Debug            *bool           `yaml:"debug"`
	RetryCount       int             `yaml:"retry_count"`
	RetryWaitTime    time.Duration   `yaml:"retry_wait_time"`
	RetryMaxWaitTime time.Duration   `yaml:"retry_max_wait_time"`
	Timeout          time.Duration   `yaml:"timeout"`
	TLSClientConfig  TLSClientConfig `yaml:"tls_client_config"`
	Proxy            Proxy           `yaml:"proxy"`
}

// TLSClientConfig holds TLS verification settings.
type TLSClientConfig struct {
	Verify *bool `yaml:"verify"`
}

// Proxy holds an optional proxy address.
type Proxy struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// S3 holds settings for fetching documents from s3:// sources.
type S3 struct {
	Region       string `yaml:"region"`
	Profile      string `yaml:"profile"`
	Endpoint     string `yaml:"endpoint"`
	UsePathStyle bool   `yaml:"use_path_style"`
}

// Analyse holds defaults for the analyse command.
type Analyse struct {
	Format          string `yaml:"format"`
	Threads         int    `yaml:"threads"`
	Gate            string `yaml:"gate"`
	MaxDocumentSize int64  `yaml:"max_document_size"`
}
