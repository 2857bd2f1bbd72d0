// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package terminal

import (
	"errors"
	"fmt"
)

// Blank is the character written to a cell to erase it.
const Blank = ' '

var (
	// ErrNotTerminal is returned when the device cannot answer cursor queries.
	ErrNotTerminal = errors.New("not a terminal")
	// ErrCursorReport is returned when the cursor position report is missing or malformed.
	ErrCursorReport = errors.New("invalid cursor position report")
	// ErrWrite is returned when writing to the device fails.
	ErrWrite = errors.New("failed to write to terminal")
	// ErrInvalidPosition is returned when a cursor position is negative.
	ErrInvalidPosition = errors.New("invalid cursor position")
)

// Position is a zero-based screen coordinate.
type Position struct {
	Row int
	Col int
}

// String implements the Stringer interface for Position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

func (p Position) valid() bool {
	return p.Row >= 0 && p.Col >= 0
}

// Terminal is the screen device shared by everything that draws on it.
// Implementations are not required to be safe for concurrent use; callers
// serialise access themselves.
type Terminal interface {
	// Cursor returns the current cursor position.
	Cursor() (Position, error)
	// SetCursor moves the cursor to the given position.
	SetCursor(pos Position) error
	// SetCursorVisible shows or hides the cursor.
	SetCursorVisible(visible bool) error
	// WriteRaw writes characters at the cursor, advancing it.
	WriteRaw(text []rune) error
}
