package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/law-makers/jobhub/internal/ui"
)

// minFlagWidth keeps short flag lists aligned with longer ones
const minFlagWidth = 28

// renderHelp prints colorized help. The full form adds the description,
// examples and inherited flags; the short form is used for usage errors.
func renderHelp(w io.Writer, cmd *cobra.Command, full bool) {
	section := func(title string) {
		fmt.Fprintf(w, "\n%s\n", ui.Paint(title, ui.ColorBold, ui.ColorWhite))
	}

	if full {
		fmt.Fprintf(w, "\n%s\n", ui.Paint(strings.ToUpper(cmd.Name()), ui.ColorBold, ui.ColorCyan))
		if cmd.Short != "" {
			fmt.Fprintln(w, cmd.Short)
		}
		if cmd.Long != "" && cmd.Long != cmd.Short {
			fmt.Fprintf(w, "\n%s\n", wrapText(cmd.Long, 80))
		}
	}

	section("Usage")
	if cmd.Runnable() {
		fmt.Fprintf(w, "  %s\n", ui.Paint(cmd.UseLine(), ui.ColorCyan))
	}
	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(w, "  %s %s %s\n",
			ui.Paint(cmd.CommandPath(), ui.ColorCyan),
			ui.Paint("<command>", ui.ColorYellow),
			ui.Dim("[flags]"))
	}

	if full && cmd.HasExample() {
		section("Examples")
		printExamples(w, cmd.Example)
	}

	if cmd.HasAvailableSubCommands() {
		section("Commands")
		printCommands(w, cmd)
	}

	if cmd.HasAvailableLocalFlags() {
		section("Flags")
		printFlags(w, cmd.LocalFlags().FlagUsages())
	}
	if full && cmd.HasAvailableInheritedFlags() {
		section("Global Flags")
		printFlags(w, cmd.InheritedFlags().FlagUsages())
	}

	fmt.Fprintf(w, "\n%s%s %s%s\n",
		ui.Dim("Use \""),
		ui.Paint(cmd.CommandPath(), ui.ColorCyan),
		ui.Paint("--help", ui.ColorGreen),
		ui.Dim("\" for more information."))
	if full {
		fmt.Fprintln(w)
	}
}

func printExamples(w io.Writer, examples string) {
	lastWasCommand := false
	for _, line := range strings.Split(examples, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			if lastWasCommand {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "  %s\n", ui.Dim(trimmed))
			lastWasCommand = false
			continue
		}
		fmt.Fprintf(w, "  %s\n", ui.Success("$ "+trimmed))
		lastWasCommand = true
	}
}

func printCommands(w io.Writer, cmd *cobra.Command) {
	var cmds []*cobra.Command
	width := 0
	for _, c := range cmd.Commands() {
		if c.IsAvailableCommand() && c.Name() != "help" {
			cmds = append(cmds, c)
			width = max(width, len(c.Name()))
		}
	}
	for _, c := range cmds {
		fmt.Fprintf(w, "  %s  %s\n",
			ui.Paint(fmt.Sprintf("%-*s", width, c.Name()), ui.ColorCyan),
			ui.Dim(c.Short))
	}
}

// printFlags re-aligns pflag's usage block and colors names and descriptions
func printFlags(w io.Writer, usages string) {
	lines := strings.Split(usages, "\n")

	width := minFlagWidth
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		if strings.HasPrefix(trimmed, "-") {
			name, _, _ := strings.Cut(trimmed, "  ")
			width = max(width, len(strings.TrimSpace(name)))
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, "-") {
			fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", width+4), ui.Dim(trimmed))
			continue
		}
		name, desc, ok := strings.Cut(trimmed, "  ")
		if !ok {
			fmt.Fprintf(w, "  %s\n", ui.Success(trimmed))
			continue
		}
		fmt.Fprintf(w, "  %s  %s\n",
			ui.Success(fmt.Sprintf("%-*s", width, strings.TrimSpace(name))),
			ui.Dim(strings.TrimSpace(desc)))
	}
}

// wrapText wraps text at width, keeping paragraphs and list items intact
func wrapText(text string, width int) string {
	var paragraphs []string
	for _, para := range strings.Split(text, "\n\n") {
		var out []string
		var line strings.Builder
		flush := func() {
			if line.Len() > 0 {
				out = append(out, line.String())
				line.Reset()
			}
		}
		for _, raw := range strings.Split(para, "\n") {
			trimmed := strings.TrimSpace(raw)
			if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") {
				flush()
				out = append(out, trimmed)
				continue
			}
			for _, word := range strings.Fields(trimmed) {
				if line.Len() > 0 && line.Len()+1+len(word) > width {
					flush()
				}
				if line.Len() > 0 {
					line.WriteByte(' ')
				}
				line.WriteString(word)
			}
		}
		flush()
		if len(out) > 0 {
			paragraphs = append(paragraphs, strings.Join(out, "\n"))
		}
	}
	return strings.Join(paragraphs, "\n\n")
}
