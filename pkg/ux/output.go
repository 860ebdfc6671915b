// Copyright (C) 2026 Deckhand AI (oss@deckhand.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides terminal output styling for the deckhand CLI.
//
// Commands emit machine-readable JSON on stdout by default; the styled
// helpers here render the human view behind --pretty. Styling is
// suppressed automatically when stdout is not a terminal so piped
// output stays clean.
package ux

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Deckhand color palette - harbor blues and signal colors
var (
	ColorHarborBright  = lipgloss.Color("#4FB3E8") // Bright harbor blue - highlights
	ColorHarborPrimary = lipgloss.Color("#2E86C1") // Primary blue - main brand color
	ColorHarborDeep    = lipgloss.Color("#1B4F72") // Deep blue - borders, accents
	ColorSlate         = lipgloss.Color("#5D6D7E") // Slate - muted text

	// Semantic colors
	ColorSuccess = lipgloss.Color("#2ECC71") // Green for success
	ColorWarning = lipgloss.Color("#F4D03F") // Gold for warnings
	ColorError   = lipgloss.Color("#E74C3C") // Red for errors
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style

	Box        lipgloss.Style
	WarningBox lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorHarborBright),
	Subtitle:  lipgloss.NewStyle().Foreground(ColorHarborPrimary),
	Bold:      lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorSlate),
	Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),
	Highlight: lipgloss.NewStyle().Foreground(ColorHarborBright).Bold(true),

	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorHarborDeep).
		Padding(0, 1),
	WarningBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorWarning).
		Padding(0, 1),
}

// Icon provides themed status icons
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconArrow   Icon = "→"
	IconBullet  Icon = "•"
	IconAnchor  Icon = "⚓"
)

// Render returns the icon with appropriate styling
func (i Icon) Render() string {
	if !Enabled() {
		return string(i)
	}
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	default:
		return string(i)
	}
}

// enabled: 0 = auto (TTY detection), 1 = forced on, 2 = forced off.
var enabled atomic.Int32

// SetEnabled forces styling on or off, overriding TTY detection.
func SetEnabled(on bool) {
	if on {
		enabled.Store(1)
	} else {
		enabled.Store(2)
	}
}

// Enabled reports whether styled output should be produced. Defaults
// to true only when stdout is a real terminal (including Cygwin ptys).
func Enabled() bool {
	switch enabled.Load() {
	case 1:
		return true
	case 2:
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Title prints a styled title line.
func Title(text string) {
	if !Enabled() {
		fmt.Println(text)
		return
	}
	fmt.Println(Styles.Title.Render(text))
}

// Success prints a success message with a checkmark.
func Success(text string) {
	if !Enabled() {
		fmt.Printf("OK: %s\n", text)
		return
	}
	fmt.Printf("%s %s\n", IconSuccess.Render(), Styles.Success.Render(text))
}

// Warning prints a warning message.
func Warning(text string) {
	if !Enabled() {
		fmt.Fprintf(os.Stderr, "WARN: %s\n", text)
		return
	}
	fmt.Printf("%s %s\n", IconWarning.Render(), Styles.Warning.Render(text))
}

// Error prints an error message.
func Error(text string) {
	if !Enabled() {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", text)
		return
	}
	fmt.Printf("%s %s\n", IconError.Render(), Styles.Error.Render(text))
}

// Muted prints secondary text.
func Muted(text string) {
	if !Enabled() {
		fmt.Println(text)
		return
	}
	fmt.Println(Styles.Muted.Render(text))
}

// Box prints titled content in a rounded box.
func Box(title, content string) {
	if !Enabled() {
		fmt.Printf("%s: %s\n", title, content)
		return
	}
	boxStyle := Styles.Box.Width(60)
	titleLine := Styles.Title.Render(title)
	fmt.Println(boxStyle.Render(titleLine + "\n" + content))
}

// Row prints an icon-prefixed line with an optional muted note.
func Row(status Icon, text, note string) {
	if !Enabled() {
		if note != "" {
			fmt.Printf("%s\t%s\t%s\n", status, text, note)
		} else {
			fmt.Printf("%s\t%s\n", status, text)
		}
		return
	}
	if note != "" {
		fmt.Printf("%s %s %s\n", status.Render(), text, Styles.Muted.Render("("+note+")"))
		return
	}
	fmt.Printf("%s %s\n", status.Render(), text)
}

// Summary prints a findings summary line.
func Summary(ok, warnings, errors int) {
	if !Enabled() {
		fmt.Printf("SUMMARY: ok=%d warnings=%d errors=%d\n", ok, warnings, errors)
		return
	}
	fmt.Printf("\n%s %s  %s %s  %s %s\n",
		Styles.Success.Render(fmt.Sprintf("%d", ok)), Styles.Muted.Render("ok"),
		Styles.Warning.Render(fmt.Sprintf("%d", warnings)), Styles.Muted.Render("warnings"),
		Styles.Error.Render(fmt.Sprintf("%d", errors)), Styles.Muted.Render("errors"),
	)
}
