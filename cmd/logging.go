package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/jfmyers9/playlog/internal/config"
	"github.com/jfmyers9/playlog/pkg/trackapi"
	"github.com/rs/zerolog"
)

// setupLogger builds the command logger. Unknown or empty levels fall back
// to info. A log file that cannot be opened falls back to console output on
// stderr. The returned func closes the log file, if one was opened.
func setupLogger(logFile, logLevel string) (zerolog.Logger, func()) {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	closeFn := func() {}
	var logger zerolog.Logger
	if f, ok := openLogFile(logFile); ok {
		logger = zerolog.New(f)
		closeFn = func() { _ = f.Close() }
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	return logger.Level(level).With().Timestamp().Logger(), closeFn
}

func openLogFile(path string) (*os.File, bool) {
	if path == "" {
		return nil, false
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		return nil, false
	}
	return f, true
}

// logSettings resolves the log file and level: flags win over config.
func logSettings(cfg *config.Config) (file, level string) {
	file, level = cfg.Log.File, cfg.Log.Level
	if logFile != "" {
		file = logFile
	}
	if logLevel != "" {
		level = logLevel
	}
	return file, level
}

// clientLogger adapts a zerolog logger to trackapi.Logger.
type clientLogger struct {
	logger zerolog.Logger
}

// Debugf implements trackapi.Logger
func (l clientLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

// newTrackClient builds an API client from config, with apiURL overriding
// the configured base URL when set.
func newTrackClient(cfg *config.Config, apiURL string, logger zerolog.Logger) (*trackapi.Client, error) {
	baseURL := cfg.APIURL
	if apiURL != "" {
		baseURL = apiURL
	}

	client, err := trackapi.NewClient(trackapi.Config{
		BaseURL:   baseURL,
		UserAgent: "playlog/" + version,
		Logger:    clientLogger{logger: logger.With().Str("component", "trackapi").Logger()},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return client, nil
}
