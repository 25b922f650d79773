// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Code represents an ANSI SGR parameter.
type Code int

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"
	reset      = "\033[0m"
	prefix     = "\033["
	suffix     = "m"
	sbPadding  = 16
)

// Text attributes.
const (
	Reset Code = iota
	Bold
	Faint
	Italic
	Underline
)

// Foreground text colors.
const (
	FgBlack Code = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Foreground Hi-Intensity text colors.
const (
	FgHiBlack Code = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

var enabled = policy(os.Getenv, term.IsTerminal(int(os.Stdout.Fd())))

// policy decides whether color is wanted. NO_COLOR wins over FORCE_COLOR,
// which wins over terminal detection.
func policy(getenv func(string) string, tty bool) bool {
	if getenv(NoColor) != "" {
		return false
	}

	if getenv(ForceColor) != "" {
		return true
	}

	return tty
}

// Enabled reports whether output written to stdout should carry color.
func Enabled() bool {
	return enabled
}

// SetEnabled overrides the detected policy and returns the previous value.
func SetEnabled(v bool) bool {
	prev := enabled
	enabled = v

	return prev
}

// Paint wraps str in the given codes and a trailing reset, regardless of
// the process policy. Callers that already decided on color use this.
func Paint(str string, codes ...Code) string {
	if len(codes) == 0 {
		return str
	}

	sb := strings.Builder{}
	sb.Grow(len(str) + len(prefix) + len(suffix) + len(reset) + sbPadding)
	sb.WriteString(prefix)

	for i, code := range codes {
		if i > 0 {
			sb.WriteByte(';')
		}

		sb.WriteString(strconv.Itoa(int(code)))
	}

	sb.WriteString(suffix)
	sb.WriteString(str)
	sb.WriteString(reset)

	return sb.String()
}

// Colorize is Paint gated by Enabled.
func Colorize(str string, codes ...Code) string {
	if !enabled {
		return str
	}

	return Paint(str, codes...)
}
