package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting uncommented with its default value.
	// If false, generates a minimal template with settings commented out.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate(), nil
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Reject files that do not start with a GIF signature
# strict: false

# Build RGBA patches for every frame
# patches: false

# Number of files decoded in parallel (0 = auto)
# jobs: 0

# Output format: text, table, json, markdown, or html
# format: text

# File patterns to ignore (glob patterns)
# ignore:
#   - "testdata/**"
#   - "node_modules/**"

# Frame export settings for "gifdec extract"
# export:
#   mode: raw          # raw or composite
#   scale: 1
#   filter: nearest    # nearest, bilinear, or catmull-rom
#   dir: frames
`)

	return buf.Bytes()
}

func generateFullTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	fmt.Fprintf(&buf, `
#
# All settings are shown with their default values.

# Reject files that do not start with a GIF signature
strict: false

# Build RGBA patches for every frame
patches: false

# Number of files decoded in parallel (0 = auto based on CPU cores)
jobs: 0

# Output format: text, table, json, markdown, or html
format: %s

# File patterns to ignore (glob patterns)
ignore: []

# Largest file read, in bytes
max_file_size: %d

# Largest total pixel count (width*height summed over frames) decoded per file
max_pixels: %d

# Frame export settings for "gifdec extract"
export:
  # raw writes each frame at its own size; composite writes the full screen
  mode: %s
  scale: 1
  # nearest, bilinear, or catmull-rom
  filter: %s

# Log level: debug, info, warn, or error
log_level: info
`, FormatText, DefaultMaxFileSize, DefaultMaxPixels, ExportRaw, FilterNearest)

	return buf.Bytes()
}

// templateToJSON renders the default configuration as JSON using the YAML
// field names.
func templateToJSON() ([]byte, error) {
	yamlBytes, err := NewConfig().ToYAML()
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := yaml.Unmarshal(yamlBytes, &fields); err != nil {
		return nil, fmt.Errorf("parse default config: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gifdec configuration
# See: https://github.com/yaklabco/gifdec`
}
