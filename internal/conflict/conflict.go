package conflict

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// VCSDir is the metadata directory that is ignored when judging emptiness and
// preserved by Wipe.
const VCSDir = ".git"

// State is the observed condition of a target directory.
type State int

const (
	StateMissing State = iota
	StateEmpty
	StateNonEmpty
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StateEmpty:
		return "empty"
	case StateNonEmpty:
		return "non-empty"
	default:
		return "unknown"
	}
}

// Choice is the user's answer when the target is not empty.
type Choice string

const (
	ChoiceAbort  Choice = "abort"
	ChoiceWipe   Choice = "wipe"
	ChoiceIgnore Choice = "ignore"
)

// Choices lists the valid answers in prompt order.
var Choices = []Choice{ChoiceAbort, ChoiceWipe, ChoiceIgnore}

// Label is the prompt text for a choice.
func (c Choice) Label() string {
	switch c {
	case ChoiceAbort:
		return "Cancel operation"
	case ChoiceWipe:
		return "Remove existing files and continue"
	case ChoiceIgnore:
		return "Ignore files and continue"
	default:
		return string(c)
	}
}

// ParseChoice validates a choice given on the command line or in config.
// The empty string is accepted and means "ask".
func ParseChoice(s string) (Choice, error) {
	switch c := Choice(s); c {
	case "", ChoiceAbort, ChoiceWipe, ChoiceIgnore:
		return c, nil
	}
	return "", fmt.Errorf("invalid overwrite choice %q: must be one of abort, wipe, ignore", s)
}

// Decision is the outcome of conflict resolution.
type Decision int

const (
	Proceed Decision = iota
	WipeThenProceed
	Abort
)

// String returns a human-readable name for the decision.
func (d Decision) String() string {
	switch d {
	case Proceed:
		return "proceed"
	case WipeThenProceed:
		return "wipe-then-proceed"
	case Abort:
		return "abort"
	default:
		return "unknown"
	}
}

// Inspect reports whether dir is missing, empty, or holds entries other than
// the VCS directory. A path that exists but is not a directory is an error.
func Inspect(dir string) (State, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return StateMissing, nil
	}
	if err != nil {
		return 0, fmt.Errorf("inspecting %s: %w", dir, err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("inspecting %s: %w", dir, &fs.PathError{Op: "stat", Path: dir, Err: errNotDir})
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.Name() != VCSDir {
			return StateNonEmpty, nil
		}
	}
	return StateEmpty, nil
}

var errNotDir = errors.New("exists and is not a directory")

// Decide maps the observed state and the user's choice to a Decision. The
// choice is only consulted for a non-empty directory; an unrecognised choice
// there is treated as Abort.
func Decide(state State, choice Choice) Decision {
	if state != StateNonEmpty {
		return Proceed
	}
	switch choice {
	case ChoiceWipe:
		return WipeThenProceed
	case ChoiceIgnore:
		return Proceed
	default:
		return Abort
	}
}

// Wipe removes every entry directly under dir except VCSDir. A missing dir is
// not an error.
func Wipe(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	for _, e := range entries {
		if e.Name() == VCSDir {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if err := os.RemoveAll(p); err != nil {
			return fmt.Errorf("removing %s: %w", p, err)
		}
	}
	return nil
}
