package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"trace", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("1 comment found", "source", "Toyopuc")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("entry is not JSON: %v", err)
	}
	if entry["msg"] != "1 comment found" {
		t.Errorf("msg = %v, want %q", entry["msg"], "1 comment found")
	}
	if entry["source"] != "Toyopuc" {
		t.Errorf("source = %v, want %q", entry["source"], "Toyopuc")
	}
}

func TestSetup_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log_files", "loader.log")

	logger, closeFn, err := Setup("debug", "text", FileOptions{Path: path, MaxSizeMB: 25, MaxBackups: 20})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	logger.Debug("written to file")
	if err := closeFn(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file = %q, want entry", data)
	}
}

func TestRotatingFile_RotatesAndKeepsBackups(t *testing.T) {
	dir := t.TempDir()
	rf := newRotatingFile(FileOptions{Path: filepath.Join(dir, "loader.log"), MaxSizeMB: 1, MaxBackups: 2})

	line := []byte(strings.Repeat("x", 1023) + "\n")
	for i := 0; i < 1536; i++ {
		if _, err := rf.Write(line); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}
	if err := rf.Close(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "loader.log"))
	if err != nil {
		t.Fatalf("stat current log: %v", err)
	}
	if info.Size() > 1<<20 {
		t.Errorf("current log size = %d, want at most 1 MB", info.Size())
	}

	backups, err := filepath.Glob(filepath.Join(dir, "loader-*.log"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(backups) == 0 {
		t.Error("no rotated log file was created")
	}
}

func TestWithRunID(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, "info", "json")

	ctx, logger := WithRunID(context.Background(), base)
	if FromContext(ctx) != logger {
		t.Fatal("FromContext did not return the run logger")
	}

	WithFields(ctx, "source", "ScreenWorks").Info("started")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("entry is not JSON: %v", err)
	}
	id, _ := entry["run_id"].(string)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("run_id %q is not a UUID: %v", id, err)
	}
	if entry["source"] != "ScreenWorks" {
		t.Errorf("source = %v, want ScreenWorks", entry["source"])
	}
}

func TestFromContext_Default(t *testing.T) {
	if FromContext(context.Background()) != slog.Default() {
		t.Error("FromContext without a run logger should return slog.Default()")
	}
}
