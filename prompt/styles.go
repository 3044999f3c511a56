// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package prompt

import "github.com/charmbracelet/lipgloss"

var (
	questionStyle = lipgloss.NewStyle().Bold(true)
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	doneMark      = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render("✔")
	pendingMark   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Render("?")
)
