package prompt

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"
)

// ErrCancelled is returned when the user abandons a prompt.
var ErrCancelled = errors.New("operation cancelled")

// Prompter asks questions and returns the answers.
type Prompter interface {
	Text(ctx context.Context, q TextQuestion) (string, error)
	Select(ctx context.Context, q SelectQuestion) (string, error)
}

// TextQuestion is a free-text question.
type TextQuestion struct {
	Message     string
	Placeholder string
	// Default is returned when the answer is blank.
	Default string
	// Validate rejects an answer; the question is asked again.
	Validate func(string) error
}

// Option is one choice of a SelectQuestion.
type Option struct {
	Label string
	Value string
}

// SelectQuestion asks for one of a fixed set of values.
type SelectQuestion struct {
	Message string
	Options []Option
	// Default is the value selected initially.
	Default string
}

// answer applies the default and validation rules to a raw text answer.
func (q TextQuestion) answer(raw string) (string, error) {
	if raw == "" {
		raw = q.Default
	}
	if q.Validate != nil {
		if err := q.Validate(raw); err != nil {
			return "", err
		}
	}
	return raw, nil
}

func (q SelectQuestion) defaultIndex() int {
	for i, o := range q.Options {
		if o.Value == q.Default {
			return i
		}
	}
	return 0
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Auto picks the form prompter when both ends are terminals, and the line
// prompter otherwise.
func Auto(in, out *os.File, accessible bool) Prompter {
	if IsTerminal(in) && IsTerminal(out) {
		return &Huh{In: in, Out: out, Accessible: accessible}
	}
	return NewLine(in, out)
}

