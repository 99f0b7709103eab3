package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gifdec/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies Ignore slice", func(t *testing.T) {
		original := &config.Config{Ignore: []string{"*.tmp.gif", "testdata/**"}}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.Equal(t, original.Ignore, clone.Ignore)

		clone.Ignore[0] = "changed"
		assert.Equal(t, "*.tmp.gif", original.Ignore[0])
	})

	t.Run("preserves all fields", func(t *testing.T) {
		original := &config.Config{
			Strict:      true,
			Patches:     true,
			Jobs:        4,
			Format:      config.FormatJSON,
			MaxFileSize: 1024,
			Export: config.ExportConfig{
				Mode:   config.ExportComposite,
				Scale:  2.5,
				Filter: config.FilterCatmullRom,
				Dir:    "out",
			},
			LogLevel: "debug",
			Compact:  true,
			Verbose:  true,
		}

		assert.Equal(t, original, original.Clone())
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("nested and CLI-only fields", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Export.Mode = config.ExportComposite
		cfg.Compact = true

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "format: text")
		assert.Contains(t, string(data), "export:\n  mode: composite")
		assert.NotContains(t, string(data), "compact")
		assert.NotContains(t, string(data), "dir:")
	})

	t.Run("header", func(t *testing.T) {
		data, err := config.NewConfig().ToYAMLWithHeader("# generated")
		require.NoError(t, err)
		assert.Contains(t, string(data), "# generated\n\nstrict: false")
	})
}

func TestFromYAML(t *testing.T) {
	t.Run("parses fields", func(t *testing.T) {
		data := []byte(`
strict: true
jobs: 3
format: markdown
ignore:
  - "build/**"
export:
  mode: composite
  scale: 0.5
  filter: bilinear
`)
		cfg, err := config.FromYAML(data)
		require.NoError(t, err)

		assert.True(t, cfg.Strict)
		assert.Equal(t, 3, cfg.Jobs)
		assert.Equal(t, config.FormatMarkdown, cfg.Format)
		assert.Equal(t, []string{"build/**"}, cfg.Ignore)
		assert.Equal(t, config.ExportComposite, cfg.Export.Mode)
		assert.InDelta(t, 0.5, cfg.Export.Scale, 1e-9)
		assert.Equal(t, config.FilterBilinear, cfg.Export.Filter)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := config.FromYAML([]byte("jobs: [unclosed"))
		require.Error(t, err)
	})

	t.Run("round trip", func(t *testing.T) {
		original := config.NewConfig()
		original.Ignore = []string{"a/**"}

		data, err := original.ToYAML()
		require.NoError(t, err)

		parsed, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, original, parsed)
	})
}

func TestOutputFormatIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format config.OutputFormat
		want   bool
	}{
		{config.FormatText, true},
		{config.FormatTable, true},
		{config.FormatJSON, true},
		{config.FormatMarkdown, true},
		{config.FormatHTML, true},
		{"sarif", false},
		{"", false},
	}

	for _, testCase := range tests {
		t.Run(string(testCase.format), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, testCase.format.IsValid())
		})
	}
}

func TestExportModeIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.ExportRaw.IsValid())
	assert.True(t, config.ExportComposite.IsValid())
	assert.False(t, config.ExportMode("tiled").IsValid())
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("minimal yaml parses to zero config", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Format: "yaml"})
		require.NoError(t, err)
		assert.Contains(t, string(data), "# gifdec configuration")

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, &config.Config{}, cfg)
	})

	t.Run("full yaml matches defaults", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true, Format: "yaml"})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		cfg.Ignore = nil
		assert.Equal(t, config.NewConfig(), cfg)
	})

	t.Run("json uses yaml field names", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(data, &fields))
		assert.Contains(t, fields, "max_file_size")
		assert.Contains(t, fields, "max_pixels")
		assert.Equal(t, "raw", fields["export"].(map[string]any)["mode"])
	})
}
