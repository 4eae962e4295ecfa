package logger

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/lottiescan/pkg/shared/config"
)

// LogLevelEnv sets the log level when the configuration does not.
const LogLevelEnv = "LOTTIESCAN_LOG_LEVEL"

// NewLogger returns a named logger writing to stderr, so reports on stdout stay parseable.
func NewLogger(cfg *config.Config, name string) hclog.Logger {
	return newLogger(cfg, name, os.Stderr)
}

func newLogger(cfg *config.Config, name string, output io.Writer) hclog.Logger {
	var logLevel hclog.Level

	if lvl := os.Getenv(LogLevelEnv); lvl != "" {
		logLevel = getLogLevel(strings.ToUpper(lvl))
	} else if cfg != nil && cfg.Logger.Level != "" {
		logLevel = getLogLevel(strings.ToUpper(cfg.Logger.Level))
	} else {
		logLevel = hclog.Info
	}

	var loggerCfg config.Logger
	if cfg != nil {
		loggerCfg = cfg.Logger
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:            name,
		DisableTime:     config.GetBoolValue(loggerCfg, "DisableTime", true),
		JSONFormat:      config.GetBoolValue(loggerCfg, "JSONFormat", false),
		IncludeLocation: config.GetBoolValue(loggerCfg, "IncludeLocation", false),
		Output:          output,
		Level:           logLevel,
	})
}

func getLogLevel(levelStr string) hclog.Level {
	switch levelStr {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO":
		return hclog.Info
	case "WARN":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	default:
		return hclog.Info
	}
}
