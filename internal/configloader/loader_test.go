package configloader

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gifdec/pkg/config"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".gifdec.yml"), `
strict: true
format: json
export:
  mode: composite
`)
	nested := filepath.Join(root, "assets", "sprites")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolated(nested))
	require.NoError(t, err)

	assert.True(t, result.Config.Strict)
	assert.Equal(t, config.FormatJSON, result.Config.Format)
	assert.Equal(t, config.ExportComposite, result.Config.Export.Mode)
	// Fields the file leaves out keep their defaults.
	assert.Equal(t, config.FilterNearest, result.Config.Export.Filter)
	assert.InDelta(t, 1.0, result.Config.Export.Scale, 1e-9)
	assert.Equal(t, []string{filepath.Join(root, ".gifdec.yml")}, result.LoadedFrom)
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".gifdec.yml"), "format: html\n")
	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	result, err := Load(context.Background(), isolated(repo))
	require.NoError(t, err)

	assert.Equal(t, config.FormatText, result.Config.Format)
	assert.Empty(t, result.Paths.Project)
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	writeFile(t, filepath.Join(tmpDir, ".gifdec.yml"), "format: json\njobs: 2\n")
	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, explicit, "format: table\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FormatTable, result.Config.Format)
	assert.Equal(t, 2, result.Config.Jobs)
	assert.Equal(t, []string{filepath.Join(tmpDir, ".gifdec.yml"), explicit}, result.LoadedFrom)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	writeFile(t, filepath.Join(tmpDir, ".gifdec.yml"), "format: json\nexport:\n  scale: 2\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		Format:  config.FormatMarkdown,
		Compact: true,
		Export:  config.ExportConfig{Filter: config.FilterBilinear},
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FormatMarkdown, result.Config.Format)
	assert.True(t, result.Config.Compact)
	assert.Equal(t, config.FilterBilinear, result.Config.Export.Filter)
	assert.InDelta(t, 2.0, result.Config.Export.Scale, 1e-9)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"bad format", "format: sarif\n", "format"},
		{"bad mode", "export:\n  mode: tiled\n", "export.mode"},
		{"negative jobs", "jobs: -1\n", "jobs"},
		{"bad glob", "ignore:\n  - \"[\"\n", "ignore[0]"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
			path := filepath.Join(tmpDir, ".gifdec.yml")
			writeFile(t, path, testCase.content)

			_, err := Load(context.Background(), isolated(tmpDir))

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, testCase.field, validationErr.Field)
			assert.Equal(t, path, validationErr.FilePath)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	writeFile(t, filepath.Join(tmpDir, ".gifdec.yml"), "jobs: [\n")

	_, err := Load(context.Background(), isolated(tmpDir))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load project config")
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLoadFromLookup(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"GIFDEC_STRICT":        "true",
		"GIFDEC_JOBS":          "8",
		"GIFDEC_IGNORE":        " a/** , ,b.gif ",
		"GIFDEC_EXPORT_SCALE":  "1.5",
		"GIFDEC_EXPORT_MODE":   "composite",
		"GIFDEC_MAX_FILE_SIZE": "4096",
		"GIFDEC_MAX_PIXELS":    "65536",
		"GIFDEC_LOG_LEVEL":     "debug",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := config.NewConfig()
	require.NoError(t, loadFromLookup(cfg, lookup))

	assert.True(t, cfg.Strict)
	assert.Equal(t, 8, cfg.Jobs)
	assert.Equal(t, []string{"a/**", "b.gif"}, cfg.Ignore)
	assert.InDelta(t, 1.5, cfg.Export.Scale, 1e-9)
	assert.Equal(t, config.ExportComposite, cfg.Export.Mode)
	assert.Equal(t, int64(4096), cfg.MaxFileSize)
	assert.Equal(t, int64(65536), cfg.MaxPixels)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadFromLookup_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key   string
		value string
	}{
		{"GIFDEC_STRICT", "maybe"},
		{"GIFDEC_JOBS", "many"},
		{"GIFDEC_EXPORT_SCALE", "big"},
	}

	for _, testCase := range tests {
		t.Run(testCase.key, func(t *testing.T) {
			t.Parallel()

			lookup := func(key string) (string, bool) {
				if key == testCase.key {
					return testCase.value, true
				}
				return "", false
			}

			err := loadFromLookup(config.NewConfig(), lookup)

			require.Error(t, err)
			assert.Contains(t, err.Error(), testCase.key)
		})
	}
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "GIFDEC_EXPORT_FILTER", GetEnvVarName("export.filter"))
	assert.Empty(t, GetEnvVarName("nope"))

	vars := ListEnvVars()
	assert.Len(t, vars, len(envMappings))
	for name := range vars {
		assert.True(t, strings.HasPrefix(name, envVarPrefix), name)
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	merged := MergeAll(
		config.NewConfig(),
		&config.Config{Jobs: 2, Ignore: []string{"a"}},
		&config.Config{Export: config.ExportConfig{Dir: "out"}, Patches: true},
		&config.Config{Ignore: []string{"b"}},
	)

	assert.Equal(t, 2, merged.Jobs)
	assert.True(t, merged.Patches)
	assert.Equal(t, []string{"b"}, merged.Ignore)
	assert.Equal(t, "out", merged.Export.Dir)
	assert.Equal(t, config.ExportRaw, merged.Export.Mode)
	assert.Nil(t, MergeAll())
}

func TestValidate_Warnings(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Export.Scale = 32

	result := Validate(cfg)

	assert.True(t, result.Valid())
	require.True(t, result.HasWarnings())
	assert.Equal(t, "export.scale", result.Warnings[0].Field)
	assert.Equal(t, []string{"warning: export.scale: scale 32 produces very large images"}, result.AllMessages())
}

func TestValidate_NegativeLimits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
		field  string
	}{
		{"jobs", func(c *config.Config) { c.Jobs = -1 }, "jobs"},
		{"max file size", func(c *config.Config) { c.MaxFileSize = -1 }, "max_file_size"},
		{"max pixels", func(c *config.Config) { c.MaxPixels = -1 }, "max_pixels"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			testCase.mutate(cfg)

			result := Validate(cfg)

			require.False(t, result.Valid())
			assert.Equal(t, testCase.field, result.Errors[0].Field)
		})
	}
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"\n", false},
		{"n\n", false},
		{"y", true},
	}

	for _, testCase := range tests {
		t.Run(strings.TrimSpace(testCase.input), func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			got, err := Confirm(strings.NewReader(testCase.input), &out, "Overwrite?")

			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
			assert.Equal(t, "Overwrite? [y/N] ", out.String())
		})
	}

	_, err := Confirm(strings.NewReader(""), &bytes.Buffer{}, "Overwrite?")
	require.Error(t, err)
}
