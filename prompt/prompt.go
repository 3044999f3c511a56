// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package prompt asks the user for input on the terminal.
package prompt

import "errors"

var (
	// ErrCancelled is returned when the user aborts a prompt with Ctrl-C or Esc.
	ErrCancelled = errors.New("operation cancelled")

	// ErrNotInteractive is returned when a prompt is needed but stdin is not a terminal.
	ErrNotInteractive = errors.New("input is required but stdin is not a terminal, pass the value as a flag")
)

// Option is one choice in a Select or MultiSelect prompt.
type Option struct {
	Value string
	Label string
}

// TextOptions configures a Text prompt.
type TextOptions struct {
	Message     string
	Placeholder string

	// Initial pre-fills the input.
	Initial string

	// Validate rejects a submission by returning a non-nil error.
	// Its message is shown under the input.
	Validate func(string) error
}

// Prompter is the set of questions commands may ask.
type Prompter interface {
	Text(opts TextOptions) (string, error)
	Confirm(message string, initial bool) (bool, error)
	Select(message string, options []Option) (string, error)

	// MultiSelect returns the values of the chosen options in option order.
	// At least one option must be chosen.
	MultiSelect(message string, options []Option, initial []string) ([]string, error)
}

// Required is a Validate function that rejects blank input.
func Required(message string) func(string) error {
	return func(s string) error {
		for _, r := range s {
			if r != ' ' && r != '\t' {
				return nil
			}
		}

		return errors.New(message)
	}
}
