package config

// OutputFormat specifies the report output format.
type OutputFormat string

const (
	FormatText     OutputFormat = "text"
	FormatTable    OutputFormat = "table"
	FormatJSON     OutputFormat = "json"
	FormatMarkdown OutputFormat = "markdown"
	FormatHTML     OutputFormat = "html"
)

// Formats lists every supported output format in display order.
func Formats() []OutputFormat {
	return []OutputFormat{FormatText, FormatTable, FormatJSON, FormatMarkdown, FormatHTML}
}

// IsValid reports whether f names a supported output format.
func (f OutputFormat) IsValid() bool {
	for _, known := range Formats() {
		if f == known {
			return true
		}
	}
	return false
}

// ExportMode selects how frames are rendered when exported.
type ExportMode string

const (
	// ExportRaw writes each frame patch at its own size.
	ExportRaw ExportMode = "raw"
	// ExportComposite writes the full logical screen after applying disposal.
	ExportComposite ExportMode = "composite"
)

// IsValid reports whether m is a known export mode.
func (m ExportMode) IsValid() bool {
	return m == ExportRaw || m == ExportComposite
}

// Scaling filter names accepted by ExportConfig.Filter.
const (
	FilterNearest    = "nearest"
	FilterBilinear   = "bilinear"
	FilterCatmullRom = "catmull-rom"
)

// DefaultMaxFileSize bounds how much of a single file the runner reads.
const DefaultMaxFileSize int64 = 64 << 20

// DefaultMaxPixels bounds the summed width*height of all images in one file.
const DefaultMaxPixels int64 = 1 << 28

// ExportConfig configures frame export.
type ExportConfig struct {
	// Mode is "raw" or "composite".
	Mode ExportMode `mapstructure:"mode" yaml:"mode"`

	// Scale multiplies the output size. 1 keeps frames at their native size.
	Scale float64 `mapstructure:"scale" yaml:"scale"`

	// Filter names the resampling kernel used when Scale != 1.
	Filter string `mapstructure:"filter" yaml:"filter"`

	// Dir is the output directory. Empty means the current directory.
	Dir string `mapstructure:"dir" yaml:"dir,omitempty"`
}

// Config is the root configuration structure for gifdec.
type Config struct {
	// Strict rejects input that does not start with a GIF signature.
	Strict bool `mapstructure:"strict" yaml:"strict"`

	// Patches requests RGBA patches for every frame, not just indices.
	Patches bool `mapstructure:"patches" yaml:"patches"`

	// Jobs is the number of files decoded in parallel. 0 means NumCPU.
	Jobs int `mapstructure:"jobs" yaml:"jobs"`

	// Format is the report output format.
	Format OutputFormat `mapstructure:"format" yaml:"format"`

	// Ignore contains glob patterns for files to skip during discovery.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// MaxFileSize is the largest file the runner will read, in bytes.
	MaxFileSize int64 `mapstructure:"max_file_size" yaml:"max_file_size"`

	// MaxPixels caps the pixels a file may declare across all its images.
	// Larger files are rejected before any frame buffer is allocated.
	MaxPixels int64 `mapstructure:"max_pixels" yaml:"max_pixels"`

	// Export configures the extract command.
	Export ExportConfig `mapstructure:"export" yaml:"export"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// CLI-level options (not persisted to config files).

	// Compact disables indentation in JSON output.
	Compact bool `mapstructure:"-" yaml:"-"`

	// Verbose includes per-frame rows in text output.
	Verbose bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Format:      FormatText,
		MaxFileSize: DefaultMaxFileSize,
		MaxPixels:   DefaultMaxPixels,
		Export: ExportConfig{
			Mode:   ExportRaw,
			Scale:  1,
			Filter: FilterNearest,
		},
		LogLevel: "info",
	}
}
