package target

import (
	"os"
	"path/filepath"
	"strings"
)

// Options carries the process state Resolve depends on, so callers decide
// where it comes from.
type Options struct {
	Cwd         string // absolute working directory
	DefaultName string // used when the input is empty or unusable
	ScratchDir  string // sandbox directory for dev mode
	Dev         bool
}

// Resolved is the canonical location of the project being created.
type Resolved struct {
	Input        string // formatted input, e.g. "." or "my-app"
	AbsolutePath string
	DisplayName  string // basename, the default package name source
}

// IsCurrentDir reports whether the user asked for the working directory itself.
func (r Resolved) IsCurrentDir() bool {
	return r.Input == "."
}

// Format trims surrounding whitespace and trailing path separators.
func Format(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/"+string(os.PathSeparator))
}

// Resolve maps raw input to a Resolved target. Input that would escape the
// working directory degrades to DefaultName. In dev mode the project is
// nested under ScratchDir, while DisplayName still follows the input.
func Resolve(raw string, opts Options) Resolved {
	cwd := filepath.Clean(opts.Cwd)

	name := Format(raw)
	if name == "" {
		name = opts.DefaultName
	}

	joined := filepath.Join(cwd, name)
	if !within(cwd, joined) {
		name = opts.DefaultName
		joined = filepath.Join(cwd, name)
	}

	r := Resolved{
		Input:        name,
		AbsolutePath: joined,
		DisplayName:  filepath.Base(joined),
	}
	if opts.Dev && opts.ScratchDir != "" {
		r.AbsolutePath = filepath.Join(cwd, opts.ScratchDir, name)
	}
	return r
}

// CDPath returns the argument for a "cd" hint from cwd to dir, quoted when it
// contains a space. It is empty when dir is cwd.
func CDPath(cwd, dir string) string {
	rel, err := filepath.Rel(cwd, dir)
	if err != nil {
		rel = dir
	}
	if rel == "." {
		return ""
	}
	if strings.Contains(rel, " ") {
		return `"` + rel + `"`
	}
	return rel
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}
