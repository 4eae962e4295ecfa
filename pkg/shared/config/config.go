package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/scan-io-git/lottiescan/pkg/shared/files"
)

const (
	// DefaultConfigFile is looked up in the working directory when no path is given.
	DefaultConfigFile = "config.yml"
	// ConfigEnv overrides the configuration file path.
	ConfigEnv = "LOTTIESCAN_CONFIG"
)

// LoadYAML decodes a YAML file into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := files.ValidatePath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	d.SetStrict(true)
	if err := d.Decode(data); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

// LoadConfig loads the configuration from configPath. An empty path falls back to the
// LOTTIESCAN_CONFIG variable and then to ./config.yml; a missing default file yields the
// built-in defaults.
func LoadConfig(configPath string) (*Config, error) {
	explicit := true
	if configPath == "" {
		configPath = os.Getenv(ConfigEnv)
	}
	if configPath == "" {
		configPath = DefaultConfigFile
		explicit = false
	}

	cfg := &Config{}
	expanded, err := files.ExpandPath(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path %q: %w", configPath, err)
	}

	if err := LoadYAML(expanded, cfg); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to load config %q: %w", expanded, err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
