// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// Terminal is a Prompter that runs each question as a small bubbletea program.
type Terminal struct {
	ctx context.Context
	in  io.Reader
	out io.Writer
}

var _ Prompter = (*Terminal)(nil)

// NewTerminal returns a Terminal reading from in and drawing to out.
// Cancelling ctx aborts a running prompt with ErrCancelled.
func NewTerminal(ctx context.Context, in io.Reader, out io.Writer) *Terminal {
	return &Terminal{ctx: ctx, in: in, out: out}
}

// Interactive reports whether the Terminal reads from a TTY.
func (t *Terminal) Interactive() bool {
	f, ok := t.in.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// run drives model until it quits and returns the final model.
func (t *Terminal) run(model tea.Model) (tea.Model, error) {
	if !t.Interactive() {
		return nil, ErrNotInteractive
	}

	p := tea.NewProgram(model,
		tea.WithContext(t.ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return nil, ErrCancelled
		}

		return nil, fmt.Errorf("prompt failed: %w", err)
	}

	return final, nil
}

func (t *Terminal) Text(opts TextOptions) (string, error) {
	final, err := t.run(newTextModel(opts))
	if err != nil {
		return "", err
	}

	m, _ := final.(textModel)
	if m.cancelled {
		return "", ErrCancelled
	}

	return m.input.Value(), nil
}

func (t *Terminal) Confirm(message string, initial bool) (bool, error) {
	final, err := t.run(confirmModel{message: message, value: initial})
	if err != nil {
		return false, err
	}

	m, _ := final.(confirmModel)
	if m.cancelled {
		return false, ErrCancelled
	}

	return m.value, nil
}

func (t *Terminal) Select(message string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("%s: no options to choose from", message)
	}

	final, err := t.run(selectModel{message: message, options: options})
	if err != nil {
		return "", err
	}

	m, _ := final.(selectModel)
	if m.cancelled {
		return "", ErrCancelled
	}

	return m.options[m.cursor].Value, nil
}

func (t *Terminal) MultiSelect(message string, options []Option, initial []string) ([]string, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("%s: no options to choose from", message)
	}

	final, err := t.run(newMultiSelectModel(message, options, initial))
	if err != nil {
		return nil, err
	}

	m, _ := final.(multiSelectModel)
	if m.cancelled {
		return nil, ErrCancelled
	}

	return m.values(), nil
}
