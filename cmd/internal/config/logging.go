package config

import (
	"io"
	"os"

	"github.com/labstack/gommon/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogging applies LOG_LEVEL and LOG_FILE to the global logger and
// returns the writer so echo can share it.
func SetupLogging(cfg *Config) io.Writer {
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	}

	log.SetOutput(out)
	log.SetLevel(ParseLevel(cfg.LogLevel))
	return out
}

func ParseLevel(level string) log.Lvl {
	switch level {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
