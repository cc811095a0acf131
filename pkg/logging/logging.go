// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	stdlog "log"
	"os"
	"strings"

	"github.com/harrisonrobin/tasksheet/pkg/config"
	"github.com/natefinch/lumberjack"
	log "github.com/sirupsen/logrus"
)

// Init applies cfg to the standard logrus logger and routes the standard
// library logger through it. When a file is configured, output goes to both
// stdout and a rotating file.
func Init(cfg config.LogConfig) error {
	logger := log.StandardLogger()
	logger.SetFormatter(Formatter(cfg.Format))

	level := log.InfoLevel
	if cfg.Level != "" {
		l, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return err
		}
		level = l
	}
	logger.SetLevel(level)

	var w io.Writer = os.Stdout
	if cfg.File != "" {
		w = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
	}
	logger.SetOutput(w)
	stdlog.SetOutput(logger.Writer())
	stdlog.SetFlags(0)
	return nil
}

// Formatter returns the JSON formatter for "json" and a full-timestamp text
// formatter otherwise.
func Formatter(format string) log.Formatter {
	if strings.EqualFold(format, "json") {
		return &log.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"}
	}
	return &log.TextFormatter{
		ForceColors:               true,
		EnvironmentOverrideColors: true,
		TimestampFormat:           "2006-01-02 15:04:05",
		FullTimestamp:             true,
	}
}
