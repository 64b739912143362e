package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var Logger *slog.Logger

// InitLogger installs a JSON slog logger as the default. ENV=production drops
// source locations; LOG_LEVEL selects the minimum level.
func InitLogger() {
	Logger = NewLogger(os.Stdout, os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
	slog.SetDefault(Logger)

	slog.Info("logger initialized", "level", parseLevel(os.Getenv("LOG_LEVEL")).String())
}

func NewLogger(w io.Writer, env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	if env != "production" {
		opts.AddSource = true
		opts.ReplaceAttr = replaceTimeAttr
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func replaceTimeAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 {
		return slog.String("time", a.Value.Time().Local().Format("2006-01-02 15:04:05"))
	}
	return a
}
