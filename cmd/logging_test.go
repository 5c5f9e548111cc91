package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jfmyers9/playlog/internal/config"
	"github.com/rs/zerolog"
)

func TestSetupLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "info", want: zerolog.InfoLevel},
		{level: "warn", want: zerolog.WarnLevel},
		{level: "error", want: zerolog.ErrorLevel},
		{level: "trace", want: zerolog.TraceLevel},
		{level: "", want: zerolog.InfoLevel},
		{level: "verbose", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, closeLog := setupLogger(filepath.Join(t.TempDir(), "test.log"), tt.level)
			defer closeLog()
			if got := logger.GetLevel(); got != tt.want {
				t.Errorf("setupLogger(%q) level = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestSetupLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playlog.log")

	logger, closeLog := setupLogger(path, "debug")
	clientLogger{logger: logger}.Debugf("fetching page %d", 3)
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "fetching page 3") {
		t.Errorf("expected debug line in log file, got %q", string(data))
	}
}

func TestSetupLogger_UnwritableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "playlog.log")

	logger, closeLog := setupLogger(path, "warn")
	defer closeLog()

	if logger.GetLevel() != zerolog.WarnLevel {
		t.Errorf("expected warn level, got %v", logger.GetLevel())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected no log file to be created, got %v", err)
	}
}

func TestLogSettings(t *testing.T) {
	cfg := &config.Config{Log: config.LogConfig{Level: "warn", File: "/var/log/playlog.log"}}

	logFile, logLevel = "", ""
	if file, level := logSettings(cfg); file != "/var/log/playlog.log" || level != "warn" {
		t.Errorf("expected config values, got %q %q", file, level)
	}

	logFile, logLevel = "/tmp/override.log", "debug"
	defer func() { logFile, logLevel = "", "" }()
	if file, level := logSettings(cfg); file != "/tmp/override.log" || level != "debug" {
		t.Errorf("expected flag values, got %q %q", file, level)
	}
}

func TestNewTrackClient(t *testing.T) {
	cfg := &config.Config{APIURL: "http://localhost:6789/api"}

	client, err := newTrackClient(cfg, "", zerolog.Nop())
	if err != nil {
		t.Fatalf("newTrackClient failed: %v", err)
	}
	if got := client.PageURL(2); got != "http://localhost:6789/api/tracks?page=2" {
		t.Errorf("unexpected page URL %q", got)
	}

	client, err = newTrackClient(cfg, "https://tracks.example.com/api", zerolog.Nop())
	if err != nil {
		t.Fatalf("newTrackClient failed: %v", err)
	}
	if got := client.PageURL(0); got != "https://tracks.example.com/api/tracks?page=0" {
		t.Errorf("expected override URL, got %q", got)
	}

	if _, err := newTrackClient(&config.Config{APIURL: "localhost"}, "", zerolog.Nop()); err == nil {
		t.Error("expected error for URL without scheme")
	}
}
