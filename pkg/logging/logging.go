package logging

import (
	"log/slog"
	"os"
)

// Init returns the service logger: JSON in prod, text otherwise.
func Init(service string) *slog.Logger {
	var handler slog.Handler
	if os.Getenv("APP_ENV") == "prod" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	logger := slog.New(handler).With("service", service)
	slog.SetDefault(logger)
	return logger
}
