package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/gifdec/pkg/config"
)

// envVarPrefix is the prefix for all gifdec environment variables.
const envVarPrefix = "GIFDEC_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeFloat
	envTypeSlice
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"STRICT":        {"strict", envTypeBool, "Reject non-GIF input: true or false"},
	"PATCHES":       {"patches", envTypeBool, "Build RGBA patches: true or false"},
	"JOBS":          {"jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	"FORMAT":        {"format", envTypeString, "Output format: text, table, json, markdown, or html"},
	"IGNORE":        {"ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
	"MAX_FILE_SIZE": {"max_file_size", envTypeInt, "Largest file read, in bytes"},
	"MAX_PIXELS":    {"max_pixels", envTypeInt, "Largest total pixel count decoded per file"},
	"EXPORT_MODE":   {"export.mode", envTypeString, "Export mode: raw or composite"},
	"EXPORT_SCALE":  {"export.scale", envTypeFloat, "Export scale factor"},
	"EXPORT_FILTER": {"export.filter", envTypeString, "Scaling filter: nearest, bilinear, or catmull-rom"},
	"EXPORT_DIR":    {"export.dir", envTypeString, "Export output directory"},
	"LOG_LEVEL":     {"log_level", envTypeString, "Log level: debug, info, warn, or error"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GIFDEC_ (e.g., GIFDEC_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.LookupEnv)
}

func loadFromLookup(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	// Sorted so the first reported error does not depend on map order.
	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)

	for _, suffix := range suffixes {
		envVar := envVarPrefix + suffix
		value, ok := lookup(envVar)
		if !ok || value == "" {
			continue
		}

		if err := applyEnvValue(cfg, envMappings[suffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number for %s: %q", envVar, value)
		}
		return setFloatField(cfg, mapping.field, f)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "export.mode":
		cfg.Export.Mode = config.ExportMode(value)
	case "export.filter":
		cfg.Export.Filter = value
	case "export.dir":
		cfg.Export.Dir = value
	case "log_level":
		cfg.LogLevel = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "strict":
		cfg.Strict = value
	case "patches":
		cfg.Patches = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int64) error {
	switch field {
	case "jobs":
		cfg.Jobs = int(value)
	case "max_file_size":
		cfg.MaxFileSize = value
	case "max_pixels":
		cfg.MaxPixels = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setFloatField(cfg *config.Config, field string, value float64) error {
	switch field {
	case "export.scale":
		cfg.Export.Scale = value
	default:
		return fmt.Errorf("unknown number field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.help
	}
	return vars
}
