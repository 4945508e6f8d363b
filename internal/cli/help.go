package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/codesurface/internal/ui/pretty"
)

// HelpFormatter renders styled help and usage for Cobra commands.
type HelpFormatter struct {
	command lipgloss.Style
	heading lipgloss.Style
	sub     lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))
	return &HelpFormatter{
		command: styles.Bold,
		heading: styles.SummaryTitle,
		sub:     styles.Added,
		flag:    styles.FilePath,
		dim:     styles.Dim,
	}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ join .Aliases ", " }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ sub (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
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

const helpTemplate = `{{with (or .Long .Short)}}{{ . | trimTrailing }}

{{end}}`

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command":      h.command.Render,
		"heading":      h.heading.Render,
		"sub":          h.sub.Render,
		"dim":          h.dim.Render,
		"flags":        h.formatFlags,
		"join":         strings.Join,
		"rpad":         rpad,
		"trimTrailing": trimTrailingWhitespace,
	}
}

// formatFlags lists the visible flags of set as aligned rows of
// "-s, --name type" and usage.
func (h *HelpFormatter) formatFlags(set *pflag.FlagSet) string {
	type row struct{ name, usage string }

	var rows []row
	width := 0
	set.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		name := "    --" + f.Name
		if f.Shorthand != "" {
			name = "-" + f.Shorthand + ", --" + f.Name
		}
		if typ := f.Value.Type(); typ != "bool" {
			name += " " + typ
		}

		usage := f.Usage
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" && f.DefValue != "[]" {
			usage += h.dim.Render(fmt.Sprintf(" (default %s)", f.DefValue))
		}

		rows = append(rows, row{name: name, usage: usage})
		width = max(width, runewidth.StringWidth(name))
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		padded := runewidth.FillRight(r.name, width)
		lines = append(lines, "  "+h.flag.Render(padded)+"   "+r.usage)
	}
	return strings.Join(lines, "\n")
}

// ApplyToCommand installs the styled templates on cmd and, through
// inheritance, its subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	usage := template.Must(template.New("usage").Funcs(h.funcs()).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if err := usage.Execute(c.OutOrStderr(), c); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		out := c.OutOrStdout()
		if err := help.Execute(out, c); err != nil {
			c.PrintErrln(err)
			return
		}
		if err := usage.Execute(out, c); err != nil {
			c.PrintErrln(err)
		}
	})
}

func rpad(s string, padding int) string {
	return runewidth.FillRight(s, padding)
}

func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
