package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Line asks questions one line at a time. End of input cancels.
type Line struct {
	r *bufio.Reader
	w io.Writer
}

// NewLine returns a Line prompter reading from r and writing to w.
func NewLine(r io.Reader, w io.Writer) *Line {
	return &Line{r: bufio.NewReader(r), w: w}
}

// Text implements Prompter.
func (l *Line) Text(ctx context.Context, q TextQuestion) (string, error) {
	for {
		fmt.Fprintf(l.w, "%s", q.Message)
		if q.Default != "" {
			fmt.Fprintf(l.w, " (%s)", q.Default)
		}
		fmt.Fprint(l.w, ": ")

		raw, err := l.readLine(ctx)
		if err != nil {
			return "", err
		}
		v, err := q.answer(raw)
		if err != nil {
			fmt.Fprintf(l.w, "%v\n", err)
			continue
		}
		return v, nil
	}
}

// Select implements Prompter. Options are chosen by number or by value.
func (l *Line) Select(ctx context.Context, q SelectQuestion) (string, error) {
	if len(q.Options) == 0 {
		return "", errors.New("no options to choose from")
	}
	def := q.defaultIndex()

	for {
		fmt.Fprintf(l.w, "%s\n", q.Message)
		for i, o := range q.Options {
			fmt.Fprintf(l.w, "  %d) %s\n", i+1, o.Label)
		}
		fmt.Fprintf(l.w, "Enter number [1-%d] (%d): ", len(q.Options), def+1)

		raw, err := l.readLine(ctx)
		if err != nil {
			return "", err
		}
		if raw == "" {
			return q.Options[def].Value, nil
		}
		if idx, ok := pick(q.Options, raw); ok {
			return q.Options[idx].Value, nil
		}
		fmt.Fprintf(l.w, "invalid selection %q: choose 1-%d\n", raw, len(q.Options))
	}
}

func pick(opts []Option, raw string) (int, bool) {
	if n, err := strconv.Atoi(raw); err == nil {
		if n >= 1 && n <= len(opts) {
			return n - 1, true
		}
		return 0, false
	}
	for i, o := range opts {
		if o.Value == raw {
			return i, true
		}
	}
	return 0, false
}

// readLine returns the next trimmed line. The read runs in its own goroutine
// so that an interrupt cancels a prompt that is waiting for input.
func (l *Line) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", ErrCancelled
	}

	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := l.r.ReadString('\n')
		ch <- result{line, err}
	}()

	var r result
	select {
	case <-ctx.Done():
		fmt.Fprintln(l.w)
		return "", ErrCancelled
	case r = <-ch:
	}

	if r.err != nil {
		if errors.Is(r.err, io.EOF) && r.line == "" {
			fmt.Fprintln(l.w)
			return "", ErrCancelled
		}
		if !errors.Is(r.err, io.EOF) {
			return "", fmt.Errorf("reading answer: %w", r.err)
		}
	}
	return strings.TrimSpace(r.line), nil
}
