// File: lixenwraith/flatlint/cmd/flatlint/count.go
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/flatlint"
)

const countUsage = `Usage: "flatlint count FILE [--list-rules]", where --list-rules is optional`

// newCountCmd builds the count command. Every failure of this command is
// reported and swallowed, it always exits normally.
func newCountCmd(stdout, stderr io.Writer) *cobra.Command {
	var listRules bool

	cmd := &cobra.Command{
		Use:   "count FILE",
		Short: "Count the rules in a flattened configuration",
		Long: `count reads a flattened configuration, reports the number of rules and the
top-level properties, and with --list-rules prints every rule name sorted.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			runCount(args, listRules, stdout, stderr)
		},
	}

	cmd.Flags().BoolVarP(&listRules, "list-rules", "l", false, "Print all rule names, sorted")
	return cmd
}

// runCount implements count
func runCount(args []string, listRules bool, stdout, stderr io.Writer) {
	if len(args) == 0 {
		fmt.Fprintf(stdout, "%s\n\n", countUsage)
		return
	}
	fileName := args[0]

	if _, err := os.Stat(fileName); err != nil {
		fmt.Fprintf(stdout, "The provided filename %s does not exist, exiting...\n\n", fileName)
		return
	}

	summary, err := flatlint.CountRules(fileName)
	if err != nil {
		printError(stderr, fmt.Errorf("Error %v when opening/parsing %s, exiting...", err, fileName))
		return
	}

	fmt.Fprintf(stdout, "Found %d eslint rules in %s\n\n", len(summary.Rules), fileName)

	fmt.Fprintln(stdout, "Found these top level properties:")
	fmt.Fprintf(stdout, "%s\n\n", strings.Join(summary.Properties, "\n"))

	if listRules {
		fmt.Fprintln(stdout, "Found these rules:")
		fmt.Fprintf(stdout, "%s\n\n", strings.Join(summary.Rules, "\n"))
	}
}
