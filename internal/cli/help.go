package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gifdec/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	Description lipgloss.Style
	Example     lipgloss.Style
	Dim         lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{
			Command:     plain,
			Heading:     plain,
			Subcommand:  plain,
			Flag:        plain,
			Description: plain,
			Example:     plain,
			Dim:         plain,
		}
	}
	return &HelpStyles{
		Command:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Description: lipgloss.NewStyle(),
		Example:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Dim:         lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter provides styled help output for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}
{{- end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]
{{- end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}
{{- range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}
{{- end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{ command .CommandPath }}{{if .Version}} {{ dim .Version }}{{end}}

{{with (or .Long .Short)}}{{ trim . }}

{{end}}{{ template "usage" . }}`

// templates parses the help and usage templates with styling funcs.
func (h *HelpFormatter) templates() (*template.Template, error) {
	funcs := template.FuncMap{
		"heading":    h.styles.Heading.Render,
		"command":    h.styles.Command.Render,
		"subcommand": h.styles.Subcommand.Render,
		"example":    h.styles.Example.Render,
		"dim":        h.styles.Dim.Render,
		"flags":      h.formatFlags,
		"join":       strings.Join,
		"rpad":       rpad,
		"trim":       trimTrailingWhitespaces,
	}

	tmpl, err := template.New("usage").Funcs(funcs).Parse(usageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse usage template: %w", err)
	}
	if _, err := tmpl.New("help").Parse(helpTemplate); err != nil {
		return nil, fmt.Errorf("parse help template: %w", err)
	}
	return tmpl, nil
}

// formatFlags renders one aligned line per visible flag.
func (h *HelpFormatter) formatFlags(flags *pflag.FlagSet) string {
	type line struct{ names, varName, usage string }

	var lines []line
	width := 0
	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}

		names := "    --" + flag.Name
		if flag.Shorthand != "" {
			names = "-" + flag.Shorthand + ", --" + flag.Name
		}
		varName, usage := pflag.UnquoteUsage(flag)
		switch flag.DefValue {
		case "", "false", "0", "[]":
		default:
			usage += fmt.Sprintf(" (default %s)", flag.DefValue)
		}

		lines = append(lines, line{names: names, varName: varName, usage: usage})
		width = max(width, len(names)+1+len(varName))
	})

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		plainWidth := len(l.names) + 1 + len(l.varName)
		fmt.Fprintf(&b, "  %s %s%s   %s",
			h.styles.Flag.Render(l.names),
			h.styles.Dim.Render(l.varName),
			strings.Repeat(" ", width-plainWidth),
			h.styles.Description.Render(l.usage))
	}
	return b.String()
}

// ApplyToCommand installs styled help and usage output on cmd. Subcommands
// inherit it.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	tmpl, err := h.templates()
	if err != nil {
		// Fall back to Cobra's own templates.
		return
	}

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return tmpl.ExecuteTemplate(command.OutOrStderr(), "usage", command)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := tmpl.ExecuteTemplate(command.OutOrStdout(), "help", command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
