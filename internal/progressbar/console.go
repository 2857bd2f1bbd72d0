// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progressbar

import (
	"errors"
	"sync"

	"github.com/matt-FFFFFF/conbar/internal/terminal"
)

// ErrInvalidRows is returned when asked to reserve a negative number of rows.
var ErrInvalidRows = errors.New("reserved rows must not be negative")

// Console owns a terminal and the lock guarding it.
// Create one per terminal and share it between every bar drawing there.
type Console struct {
	mu   sync.Mutex
	term terminal.Terminal
}

// NewConsole wraps t. Nothing else may write to t once bars are created on it.
func NewConsole(t terminal.Terminal) *Console {
	return &Console{term: t}
}

// WriteLine prints text followed by a newline at the cursor.
func (c *Console) WriteLine(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.term.WriteRaw([]rune(text + "\n"))
}

// RestoreCursor makes the cursor visible again.
func (c *Console) RestoreCursor() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.term.SetCursorVisible(true)
}

// Reserve makes room for rows lines below the cursor and leaves the cursor at
// the start of the first one. Writing the newlines up front lets the terminal
// scroll before any bar is anchored, so bars created one per row afterwards
// keep distinct anchors even when the cursor started on the last screen row.
func (c *Console) Reserve(rows int) error {
	if rows < 0 {
		return ErrInvalidRows
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if rows == 0 {
		return nil
	}

	newlines := make([]rune, rows)
	for i := range newlines {
		newlines[i] = '\n'
	}

	if err := c.term.WriteRaw(newlines); err != nil {
		return errors.Join(ErrRender, err)
	}

	pos, err := c.term.Cursor()
	if err != nil {
		return errors.Join(ErrRender, err)
	}

	pos = terminal.Position{Row: max(pos.Row-rows, 0)}

	if err := c.term.SetCursor(pos); err != nil {
		return errors.Join(ErrRender, err)
	}

	return nil
}

// EraseOutput blanks width cells starting at pos.
func (c *Console) EraseOutput(pos terminal.Position, width int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.erase(pos, width)
}

// erase must be called with c.mu held.
func (c *Console) erase(pos terminal.Position, width int) error {
	if width < 0 {
		return ErrInvalidWidth
	}

	if err := c.term.SetCursor(pos); err != nil {
		return errors.Join(ErrRender, err)
	}

	blanks := make([]rune, width)
	for i := range blanks {
		blanks[i] = terminal.Blank
	}

	if err := c.term.WriteRaw(blanks); err != nil {
		return errors.Join(ErrRender, err)
	}

	return nil
}
