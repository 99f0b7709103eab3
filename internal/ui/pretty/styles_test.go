package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gifdec/internal/ui/pretty"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	text := "test"
	assert.Equal(t, text, styles.Bold.Render(text), "No-color Bold should not add formatting")
	assert.Equal(t, text, styles.Error.Render(text), "No-color Error should not add formatting")
	assert.Equal(t, text, styles.Comment.Render(text), "No-color Comment should not add formatting")
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	tests := []struct {
		name   string
		mode   string
		writer *bytes.Buffer
		want   bool
	}{
		{name: "always", mode: "always", writer: &buf, want: true},
		{name: "never", mode: "never", writer: &buf, want: false},
		{name: "auto non-TTY", mode: "auto", writer: &buf, want: false},
		{name: "empty defaults to auto", mode: "", writer: &buf, want: false},
		{name: "unknown defaults to auto", mode: "unknown", writer: &buf, want: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, pretty.IsColorEnabled(testCase.mode, testCase.writer))
		})
	}
}

func TestIsColorEnabled_NeverModeOnStdout(t *testing.T) {
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout))
}

func TestIsColorEnabled_AutoMode_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	// Even with a TTY, NO_COLOR should disable colors
	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
}

func TestStyles_AllFieldsRender(t *testing.T) {
	styles := pretty.NewStyles(true)

	for _, rendered := range []string{
		styles.Error.Render("x"),
		styles.Warning.Render("x"),
		styles.Info.Render("x"),
		styles.Success.Render("x"),
		styles.FilePath.Render("x"),
		styles.Label.Render("x"),
		styles.Value.Render("x"),
		styles.Comment.Render("x"),
		styles.TableHeader.Render("x"),
		styles.TableErrorRow.Render("x"),
		styles.TableWarnRow.Render("x"),
		styles.TableSeparator.Render("x"),
		styles.Dim.Render("x"),
		styles.Bold.Render("x"),
	} {
		assert.Contains(t, rendered, "x")
	}
}
