package configloader

import "github.com/yaklabco/gifdec/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Booleans: only true in override is applied
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.MaxFileSize != 0 {
		result.MaxFileSize = override.MaxFileSize
	}
	if override.MaxPixels != 0 {
		result.MaxPixels = override.MaxPixels
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}

	// false is the zero value, so a file cannot unset a lower layer's true.
	if override.Strict {
		result.Strict = true
	}
	if override.Patches {
		result.Patches = true
	}
	if override.Compact {
		result.Compact = true
	}
	if override.Verbose {
		result.Verbose = true
	}

	result.Export = mergeExport(base.Export, override.Export)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// mergeExport merges export settings field by field.
func mergeExport(base, override config.ExportConfig) config.ExportConfig {
	result := base

	if override.Mode != "" {
		result.Mode = override.Mode
	}
	if override.Scale != 0 {
		result.Scale = override.Scale
	}
	if override.Filter != "" {
		result.Filter = override.Filter
	}
	if override.Dir != "" {
		result.Dir = override.Dir
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
