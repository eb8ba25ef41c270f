// Package config provides centralized configuration management for the loader
// and the event import tool. It loads configuration from environment variables
// (optionally seeded from a .env file) with sensible defaults and validates
// all settings on startup to fail fast on misconfiguration.
package config

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Logging     LoggingConfig
	ScreenWorks SourceConfig `envPrefix:"SW_"`
	Toyopuc     SourceConfig `envPrefix:"TOYO_"`
	Events      EventsConfig
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`

	// File is an optional log file; entries go to stdout and this file
	File string `env:"LOG_FILE"`

	// MaxSizeMB rotates the log file once it reaches this size (default: 25)
	MaxSizeMB int `env:"LOG_MAX_SIZE_MB" default:"25"`

	// MaxBackups is how many rotated log files are kept (default: 20)
	MaxBackups int `env:"LOG_MAX_BACKUPS" default:"20"`
}

// SourceConfig describes one comment export and the table built from it.
// Variable names carry the prefix of the enclosing field (SW_ or TOYO_).
type SourceConfig struct {
	// CSVDir is scanned for the first regular file, which becomes the source
	CSVDir string `env:"CSV_DIR" required:"true"`

	// OutputPath is the record table file written for this source
	OutputPath string `env:"OUTPUT_PATH" required:"true"`

	// AddrCol is the 1-based address column (default: 1)
	AddrCol int `env:"ADDR_COL" default:"1"`

	// CommentCol is the 1-based comment column (default: 2)
	CommentCol int `env:"COMMENT_COL" default:"2"`

	// HasHeader drops the first row of the export (default: false)
	HasHeader bool `env:"HAS_HEADER" default:"false"`

	// LazyQuotes tolerates stray quotes instead of skipping the row (default: true)
	LazyQuotes bool `env:"LAZY_QUOTES" default:"true"`
}

// AddrIndex returns the 0-based address column.
func (s SourceConfig) AddrIndex() int { return s.AddrCol - 1 }

// CommentIndex returns the 0-based comment column.
func (s SourceConfig) CommentIndex() int { return s.CommentCol - 1 }

// EventsConfig holds settings for filling the event import template.
type EventsConfig struct {
	// TemplateDir holds the workbook template; the first file is used (default: template)
	TemplateDir string `env:"TEMPLATE_DIR" default:"template"`

	// OutputDir receives the filled copy named out_<template> (default: .)
	OutputDir string `env:"OUTPUT_DIR" default:"."`

	// Sheet is the worksheet holding the address list (default: Import Cheat Sheet)
	Sheet string `env:"TEMPLATE_SHEET" default:"Import Cheat Sheet"`

	// NoisePatterns are regular expressions for comments that must not be imported,
	// separated by ';'
	NoisePatterns []string `env:"NOISE_PATTERNS" sep:";"`

	// CaseInsensitive compiles NoisePatterns with (?i) (default: false)
	CaseInsensitive bool `env:"NOISE_CASE_INSENSITIVE" default:"false"`

	// Match selects how patterns apply: fullmatch or search (default: fullmatch)
	Match string `env:"NOISE_MATCH" default:"fullmatch"`

	// Bypass imports comments even when they match a noise pattern (default: false)
	Bypass bool `env:"NOISE_BYPASS" default:"false"`
}
