package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gifdec/pkg/config"
)

// maxReasonableScale is the export scale above which a warning is emitted.
const maxReasonableScale = 16

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "export.mode").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// knownFilters lists valid export.filter values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFilters = map[string]bool{
	config.FilterNearest:    true,
	config.FilterBilinear:   true,
	config.FilterCatmullRom: true,
}

// knownLogLevels lists valid log_level values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks a configuration for errors and warnings. Zero values are
// treated as unset so a partial file layer validates on its own.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format,
			"invalid format %q; must be one of: text, table, json, markdown, html", cfg.Format)
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.MaxFileSize < 0 {
		result.fail("max_file_size", cfg.MaxFileSize, "max_file_size must be >= 0")
	}
	if cfg.MaxPixels < 0 {
		result.fail("max_pixels", cfg.MaxPixels, "max_pixels must be >= 0")
	}
	if cfg.LogLevel != "" && !knownLogLevels[cfg.LogLevel] {
		result.fail("log_level", cfg.LogLevel,
			"invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel)
	}

	validateExport(cfg.Export, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func validateExport(export config.ExportConfig, result *ValidationResult) {
	if export.Mode != "" && !export.Mode.IsValid() {
		result.fail("export.mode", export.Mode,
			"invalid export mode %q; must be one of: raw, composite", export.Mode)
	}
	if export.Filter != "" && !knownFilters[export.Filter] {
		result.fail("export.filter", export.Filter,
			"invalid filter %q; must be one of: nearest, bilinear, catmull-rom", export.Filter)
	}
	switch {
	case export.Scale < 0:
		result.fail("export.scale", export.Scale, "scale must be > 0")
	case export.Scale > maxReasonableScale:
		result.warn("export.scale", export.Scale, "scale %g produces very large images", export.Scale)
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
