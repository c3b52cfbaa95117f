// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logging.Setup("dev")   // colored text, DEBUG level
//	logging.Setup("prod")  // JSON, INFO level
package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the default slog logger for the given environment.
// "prod" gets JSON at INFO for log aggregators; anything else gets
// colored text at DEBUG for local development.
func Setup(env string) {
	if env == "prod" {
		slog.SetDefault(slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		))
		return
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		}),
	))
}
