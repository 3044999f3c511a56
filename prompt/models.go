// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// outcome is shared by every prompt model.
type outcome struct {
	done      bool
	cancelled bool
}

// isCancel reports whether msg aborts the prompt.
func isCancel(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc
}

func header(message string, done bool, answer string) string {
	if done {
		return doneMark + " " + questionStyle.Render(message) + " " + answerStyle.Render(answer) + "\n"
	}

	return pendingMark + " " + questionStyle.Render(message) + "\n"
}

// textModel asks for a line of text.
type textModel struct {
	outcome

	message  string
	input    textinput.Model
	validate func(string) error
	errMsg   string
}

func newTextModel(opts TextOptions) textModel {
	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.SetValue(opts.Initial)
	ti.Focus()

	return textModel{
		message:  opts.Message,
		input:    ti,
		validate: opts.Validate,
	}
}

func (m textModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch {
		case isCancel(key):
			m.cancelled = true

			return m, tea.Quit
		case key.Type == tea.KeyEnter:
			if m.validate != nil {
				if err := m.validate(m.input.Value()); err != nil {
					m.errMsg = err.Error()

					return m, nil
				}
			}

			m.done = true

			return m, tea.Quit
		}

		m.errMsg = ""
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m textModel) View() string {
	if m.done {
		return header(m.message, true, m.input.Value())
	}

	var b strings.Builder

	b.WriteString(header(m.message, false, ""))
	b.WriteString("  " + m.input.View() + "\n")

	if m.errMsg != "" {
		b.WriteString("  " + errorStyle.Render(m.errMsg) + "\n")
	}

	return b.String()
}

// confirmModel asks a yes/no question.
type confirmModel struct {
	outcome

	message string
	value   bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case isCancel(key):
		m.cancelled = true

		return m, tea.Quit
	case key.Type == tea.KeyEnter:
		m.done = true

		return m, tea.Quit
	}

	switch key.String() {
	case "y", "Y":
		m.value = true
	case "n", "N":
		m.value = false
	case "left", "right", "tab", "h", "l":
		m.value = !m.value
	}

	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return header(m.message, true, yesNo(m.value))
	}

	yes, no := hintStyle.Render("Yes"), hintStyle.Render("No")
	if m.value {
		yes = cursorStyle.Render("Yes")
	} else {
		no = cursorStyle.Render("No")
	}

	return header(m.message, false, "") + "  " + yes + " / " + no + "\n"
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}

	return "No"
}

// selectModel picks one option.
type selectModel struct {
	outcome

	message string
	options []Option
	cursor  int
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case isCancel(key):
		m.cancelled = true

		return m, tea.Quit
	case key.Type == tea.KeyEnter:
		m.done = true

		return m, tea.Quit
	}

	m.cursor = moveCursor(key, m.cursor, len(m.options))

	return m, nil
}

func (m selectModel) View() string {
	if m.done {
		return header(m.message, true, label(m.options[m.cursor]))
	}

	var b strings.Builder

	b.WriteString(header(m.message, false, ""))

	for i, opt := range m.options {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("  ● " + label(opt)))
		} else {
			b.WriteString(hintStyle.Render("  ○ " + label(opt)))
		}

		b.WriteByte('\n')
	}

	return b.String()
}

// multiSelectModel picks a non-empty subset of options.
type multiSelectModel struct {
	outcome

	message  string
	options  []Option
	selected []bool
	cursor   int
	errMsg   string
}

func newMultiSelectModel(message string, options []Option, initial []string) multiSelectModel {
	m := multiSelectModel{
		message:  message,
		options:  options,
		selected: make([]bool, len(options)),
	}

	for i, opt := range options {
		for _, v := range initial {
			if opt.Value == v {
				m.selected[i] = true
			}
		}
	}

	return m
}

func (m multiSelectModel) Init() tea.Cmd { return nil }

func (m multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case isCancel(key):
		m.cancelled = true

		return m, tea.Quit
	case key.Type == tea.KeyEnter:
		if len(m.values()) == 0 {
			m.errMsg = "Select at least one option"

			return m, nil
		}

		m.done = true

		return m, tea.Quit
	}

	m.errMsg = ""

	switch key.String() {
	case " ", "x":
		m.selected[m.cursor] = !m.selected[m.cursor]
	case "a":
		all := len(m.values()) < len(m.options)
		for i := range m.selected {
			m.selected[i] = all
		}
	default:
		m.cursor = moveCursor(key, m.cursor, len(m.options))
	}

	return m, nil
}

func (m multiSelectModel) values() []string {
	var out []string

	for i, opt := range m.options {
		if m.selected[i] {
			out = append(out, opt.Value)
		}
	}

	return out
}

func (m multiSelectModel) View() string {
	if m.done {
		return header(m.message, true, strings.Join(m.values(), ", "))
	}

	var b strings.Builder

	b.WriteString(header(m.message, false, ""))

	for i, opt := range m.options {
		box := "◻"
		if m.selected[i] {
			box = "◼"
		}

		line := "  " + box + " " + label(opt)
		if i == m.cursor {
			b.WriteString(cursorStyle.Render(line))
		} else {
			b.WriteString(line)
		}

		b.WriteByte('\n')
	}

	if m.errMsg != "" {
		b.WriteString("  " + errorStyle.Render(m.errMsg) + "\n")
	} else {
		b.WriteString(hintStyle.Render("  space to toggle, a to toggle all, enter to submit") + "\n")
	}

	return b.String()
}

func moveCursor(key tea.KeyMsg, cursor, n int) int {
	switch key.String() {
	case "up", "k":
		if cursor > 0 {
			return cursor - 1
		}

		return n - 1
	case "down", "j":
		if cursor < n-1 {
			return cursor + 1
		}

		return 0
	}

	return cursor
}

func label(opt Option) string {
	if opt.Label != "" {
		return opt.Label
	}

	return opt.Value
}
