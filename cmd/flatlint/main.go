// File: lixenwraith/flatlint/cmd/flatlint/main.go
package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// ExitError carries a non-default exit code out of a command
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface for ExitError
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying failure
func (e *ExitError) Unwrap() error {
	return e.Err
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command tree and maps failures to an exit code.
// Failures exit with status 0 unless a command asks for another code.
func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		printError(stderr, err)

		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
	}
	return 0
}

// newRootCmd builds the command tree writing to the given streams
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := newFlattenCmd(stdout, stderr)
	root.AddCommand(newCountCmd(stdout, stderr))
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root
}
