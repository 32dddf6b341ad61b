package logging

import (
	"io"
	"log/slog"
	"os"
)

// NewJSONHandler returns the stdout handler every process log goes through.
func NewJSONHandler(w io.Writer) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
}

// Setup initializes the global slog logger with JSON output to stdout.
func Setup() {
	slog.SetDefault(slog.New(NewJSONHandler(os.Stdout)))
}

// Attach fans the default logger out to extra handlers, keeping stdout first.
func Attach(handlers ...slog.Handler) {
	all := append([]slog.Handler{NewJSONHandler(os.Stdout)}, handlers...)
	slog.SetDefault(slog.New(NewMultiHandler(all...)))
}
