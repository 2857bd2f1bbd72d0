// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"

	prefix = "\033["
	suffix = "m"
	reset  = prefix + "0" + suffix
)

// Code is an SGR parameter.
type Code int

// Text attributes.
const (
	Reset Code = 0
	Bold  Code = 1
	Faint Code = 2
)

// Foreground colors.
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

// Hi-intensity foreground colors.
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

// Colorize wraps str in the given codes followed by a reset.
func Colorize(str string, codes ...Code) string {
	if len(codes) == 0 {
		return str
	}

	sb := strings.Builder{}
	sb.Grow(len(str) + len(prefix) + len(suffix) + len(reset) + 4*len(codes))
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

// EnabledFor reports whether output written to f should be coloured.
// NO_COLOR wins over FORCE_COLOR; otherwise f must be a terminal.
func EnabledFor(f *os.File) bool {
	if os.Getenv(NoColor) != "" {
		return false
	}

	if os.Getenv(ForceColor) != "" {
		return true
	}

	return f != nil && term.IsTerminal(int(f.Fd()))
}
