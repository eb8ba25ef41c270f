package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
// Returns an error if required values are missing or validation fails.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem(), ""); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads the first .env file found in the working directory or
// next to the executable, overwriting existing environment variables.
// It returns the file used, or "" when there was none.
func LoadDotEnv() (string, error) {
	candidates := []string{".env"}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), ".env"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Overload(path); err != nil {
			return path, fmt.Errorf("load %s: %w", path, err)
		}
		return path, nil
	}
	return "", nil
}

// loadStruct recursively populates struct fields from environment variables.
// A nested struct field may carry an envPrefix tag that is prepended to the
// variable names of its fields.
func loadStruct(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal, prefix+field.Tag.Get("envPrefix")); err != nil {
				return err
			}
			continue
		}

		tag := field.Tag.Get("env")
		if tag == "" {
			continue
		}
		envName := prefix + tag

		value, set := os.LookupEnv(envName)
		if !set || value == "" {
			if field.Tag.Get("required") == "true" {
				return fmt.Errorf("required environment variable %s is not set", envName)
			}
			value = field.Tag.Get("default")
		}

		if value == "" {
			continue
		}

		if err := setField(fieldVal, value, field.Tag.Get("sep")); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type.
// String slices are split on sep (default ",") with blanks dropped.
func setField(field reflect.Value, value, sep string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int:
		i, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(int64(i))

	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %s", field.Type().Elem().Kind())
		}
		if sep == "" {
			sep = ","
		}
		parts := strings.Split(value, sep)
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				result = append(result, p)
			}
		}
		field.Set(reflect.ValueOf(result))

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if c.Logging.File != "" && c.Logging.MaxSizeMB < 1 {
		errs = append(errs, fmt.Sprintf("LOG_MAX_SIZE_MB (%d) must be 1 or greater", c.Logging.MaxSizeMB))
	}
	if c.Logging.MaxBackups < 0 {
		errs = append(errs, fmt.Sprintf("LOG_MAX_BACKUPS (%d) must not be negative", c.Logging.MaxBackups))
	}

	errs = append(errs, c.ScreenWorks.validate("SW_")...)
	errs = append(errs, c.Toyopuc.validate("TOYO_")...)

	if c.ScreenWorks.OutputPath != "" && c.ScreenWorks.OutputPath == c.Toyopuc.OutputPath {
		errs = append(errs, "SW_OUTPUT_PATH and TOYO_OUTPUT_PATH must differ")
	}

	switch c.Events.Match {
	case "fullmatch", "search":
	default:
		errs = append(errs, fmt.Sprintf("NOISE_MATCH (%q) must be one of: fullmatch, search", c.Events.Match))
	}
	for _, p := range c.Events.NoisePatterns {
		if _, err := regexp.Compile(p); err != nil {
			errs = append(errs, fmt.Sprintf("NOISE_PATTERNS entry %q is not a valid expression: %v", p, err))
		}
	}

	if len(errs) > 0 {
		return errors.New("validation failed:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}

func (s SourceConfig) validate(prefix string) []string {
	var errs []string
	if strings.TrimSpace(s.CSVDir) == "" {
		errs = append(errs, prefix+"CSV_DIR is required")
	}
	if strings.TrimSpace(s.OutputPath) == "" {
		errs = append(errs, prefix+"OUTPUT_PATH is required")
	}
	if s.AddrCol < 1 {
		errs = append(errs, fmt.Sprintf("%sADDR_COL (%d) must be 1 or greater", prefix, s.AddrCol))
	}
	if s.CommentCol < 1 {
		errs = append(errs, fmt.Sprintf("%sCOMMENT_COL (%d) must be 1 or greater", prefix, s.CommentCol))
	}
	return errs
}

// String returns a compact representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	fmt.Fprintf(&b, "Logging: {Level: %q, Format: %q, File: %q, MaxSizeMB: %d, MaxBackups: %d}, ",
		c.Logging.Level, c.Logging.Format, c.Logging.File, c.Logging.MaxSizeMB, c.Logging.MaxBackups)
	fmt.Fprintf(&b, "ScreenWorks: %s, ", c.ScreenWorks)
	fmt.Fprintf(&b, "Toyopuc: %s, ", c.Toyopuc)
	fmt.Fprintf(&b, "Events: {TemplateDir: %q, OutputDir: %q, Sheet: %q, NoisePatterns: %d, Match: %q, Bypass: %v}",
		c.Events.TemplateDir, c.Events.OutputDir, c.Events.Sheet, len(c.Events.NoisePatterns), c.Events.Match, c.Events.Bypass)
	b.WriteString("}")
	return b.String()
}

func (s SourceConfig) String() string {
	return fmt.Sprintf("{CSVDir: %q, OutputPath: %q, AddrCol: %d, CommentCol: %d, HasHeader: %v}",
		s.CSVDir, s.OutputPath, s.AddrCol, s.CommentCol, s.HasHeader)
}
