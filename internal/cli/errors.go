package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/ts-fast/create-ts-fast/internal/branding"
	"github.com/ts-fast/create-ts-fast/internal/prompt"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
)

// usageError marks bad flags and arguments.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func newUsageError(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err: err}
}

// isFilesystemError reports whether err came from the operating system.
func isFilesystemError(err error) bool {
	var (
		pathErr    *fs.PathError
		linkErr    *os.LinkError
		syscallErr *os.SyscallError
	)
	return errors.As(err, &pathErr) || errors.As(err, &linkErr) || errors.As(err, &syscallErr)
}

// report prints err for the user and returns the process exit code.
// Cancellation is not a failure.
func report(stdout, stderr io.Writer, err error) int {
	if err == nil {
		return exitOK
	}

	if errors.Is(err, prompt.ErrCancelled) {
		fmt.Fprintln(stdout, ErrorStyle.Render("✖")+" Operation cancelled")
		return exitOK
	}

	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(stderr, "%s %v\n", ErrorStyle.Render("Error:"), ue.err)
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", branding.CLIName())
		return exitError
	}

	fmt.Fprintln(stderr, ErrorStyle.Render("Aborting installation..."))
	fmt.Fprintln(stderr, err)
	if !isFilesystemError(err) {
		fmt.Fprintf(stderr, "An unknown error has occurred. Please open an issue at %s\n", branding.IssuesURL())
	}
	return exitError
}
