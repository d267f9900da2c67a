package prompt

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/huh"
)

// Huh asks questions with terminal forms.
type Huh struct {
	In  io.Reader
	Out io.Writer
	// Accessible switches forms to plain prompts for screen readers.
	Accessible bool
}

// Text implements Prompter.
func (h *Huh) Text(ctx context.Context, q TextQuestion) (string, error) {
	placeholder := q.Placeholder
	if placeholder == "" {
		placeholder = q.Default
	}

	var value string
	input := huh.NewInput().
		Title(q.Message).
		Placeholder(placeholder).
		Value(&value).
		Validate(func(s string) error {
			_, err := q.answer(s)
			return err
		})

	if err := h.run(ctx, input); err != nil {
		return "", err
	}
	return q.answer(value)
}

// Select implements Prompter.
func (h *Huh) Select(ctx context.Context, q SelectQuestion) (string, error) {
	opts := make([]huh.Option[string], len(q.Options))
	for i, o := range q.Options {
		opts[i] = huh.NewOption(o.Label, o.Value)
	}

	value := q.Default
	sel := huh.NewSelect[string]().
		Title(q.Message).
		Options(opts...).
		Value(&value)

	if err := h.run(ctx, sel); err != nil {
		return "", err
	}
	return value, nil
}

func (h *Huh) run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(huh.ThemeCharm()).
		WithAccessible(h.Accessible).
		WithShowHelp(false)
	if h.In != nil {
		form = form.WithInput(h.In)
	}
	if h.Out != nil {
		form = form.WithOutput(h.Out)
	}

	err := form.RunWithContext(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, huh.ErrUserAborted), errors.Is(err, context.Canceled):
		return ErrCancelled
	default:
		return err
	}
}
