// File: lixenwraith/flatlint/cmd/flatlint/output.go
package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/lixenwraith/flatlint"
)

// Terminal colors
var (
	colorError   = lipgloss.Color("9")
	colorSuccess = lipgloss.Color("10")
	colorMuted   = lipgloss.Color("8")
)

// printError renders an error in red. The renderer follows the writer, so
// output captured in a buffer stays plain text.
func printError(w io.Writer, err error) {
	style := lipgloss.NewRenderer(w).NewStyle().Foreground(colorError)
	fmt.Fprintln(w, style.Render(err.Error()))
}

// printSummary reports a finished run
func printSummary(w io.Writer, res *flatlint.Result) {
	style := lipgloss.NewRenderer(w).NewStyle().Foreground(colorSuccess)
	fmt.Fprintln(w, style.Render(fmt.Sprintf("Wrote %d rules to %s", res.Count, res.OutputPath)))
}

// printOrigins lists every final rule with the source that defined it
func printOrigins(w io.Writer, res *flatlint.Result) {
	muted := lipgloss.NewRenderer(w).NewStyle().Foreground(colorMuted)

	rules := make([]string, 0, len(res.Origins))
	for rule := range res.Origins {
		rules = append(rules, rule)
	}
	sort.Strings(rules)

	for _, rule := range rules {
		fmt.Fprintf(w, "%s %s\n", rule, muted.Render(res.Origins[rule]))
	}
}
