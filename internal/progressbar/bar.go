// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progressbar

import (
	"errors"
	"fmt"
	"math"

	"github.com/matt-FFFFFF/conbar/internal/terminal"
)

const (
	// DescLength is the size of the description region: a blank separator,
	// a four cell percentage, the percent sign and a trailing newline.
	DescLength = 7

	descFormat        = "%4.0f%%"
	maxDisplayPercent = 9999
)

var (
	// ErrAnchor is returned when the cursor position cannot be read at construction.
	ErrAnchor = errors.New("failed to read bar anchor position")
	// ErrRender is returned when a terminal operation fails while drawing.
	ErrRender = errors.New("failed to render progress bar")
	// ErrInvalidWidth is returned when asked to erase a negative number of cells.
	ErrInvalidWidth = errors.New("erase width must not be negative")
)

// Bar is a single progress indicator anchored at a fixed screen position.
// It is safe for concurrent use; all drawing goes through its Console lock.
type Bar struct {
	console    *Console
	fillChar   rune
	blockWidth int
	minValue   float64
	maxValue   float64
	cellUnit   float64
	anchor     terminal.Position
	blockStart int
	descStart  int

	// guarded by console.mu
	buffer  []rune
	percent float64
	shown   bool
}

// NewBar lays out a bar and anchors it at the current cursor position.
// Nothing is drawn until Show or UpdateProgress is called.
// No two bars may share an anchor, so callers move the cursor (usually by
// calling Show, which ends with a newline) before creating the next bar.
func (c *Console) NewBar(opts ...Option) (*Bar, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	anchor, err := c.term.Cursor()
	c.mu.Unlock()

	if err != nil {
		return nil, errors.Join(ErrAnchor, err)
	}

	title := []rune(o.Title)
	if len(title) > 0 {
		title = append(title, ':', terminal.Blank)
	}

	b := &Bar{
		console:    c,
		fillChar:   o.FillChar,
		blockWidth: o.BlockWidth,
		minValue:   o.MinValue,
		maxValue:   o.MaxValue,
		cellUnit:   (o.MaxValue - o.MinValue) / float64(o.BlockWidth),
		anchor:     anchor,
		blockStart: len(title) + 1,
		descStart:  len(title) + o.BlockWidth + 2,
	}

	b.buffer = make([]rune, 0, len(title)+2+o.BlockWidth+DescLength)
	b.buffer = append(b.buffer, title...)
	b.buffer = append(b.buffer, '[')

	for range o.BlockWidth {
		b.buffer = append(b.buffer, terminal.Blank)
	}

	b.buffer = append(b.buffer, ']')
	b.buffer = append(b.buffer, formatDesc(0)...)
	b.buffer = append(b.buffer, '\n')

	return b, nil
}

// Show paints the bar at its anchor, terminator included, leaving the cursor
// at the start of the line below. Calling it again repaints the same content.
func (b *Bar) Show() error {
	c := b.console

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.term.SetCursor(b.anchor); err != nil {
		return errors.Join(ErrRender, err)
	}

	if err := c.term.WriteRaw(b.buffer); err != nil {
		return errors.Join(ErrRender, err)
	}

	b.shown = true

	return nil
}

// UpdateProgress sets the bar to value and redraws it in place.
// Values below the range read 0%; values above it are not clamped.
// The caller's cursor position and visibility are restored afterwards.
func (b *Bar) UpdateProgress(value float64) error {
	c := b.console

	c.mu.Lock()
	defer c.mu.Unlock()

	b.fill(value)

	return b.redraw()
}

// fill must be called with console.mu held.
func (b *Bar) fill(value float64) {
	b.percent = b.percentOf(value)

	for i := range b.blockWidth {
		cell := terminal.Blank
		if b.cellThreshold(i) <= b.percent {
			cell = b.fillChar
		}

		b.buffer[b.blockStart+i] = cell
	}

	copy(b.buffer[b.descStart:b.descStart+DescLength-1], formatDesc(b.percent))
}

func (b *Bar) percentOf(value float64) float64 {
	if value < b.minValue {
		return 0
	}

	return (value - b.minValue) / (b.maxValue - b.minValue) * 100
}

// cellThreshold returns the value that fills cell i, (i+1) cell units.
// It is measured in value units but compared against a percentage, so the
// fill only tracks the percentage text for ranges spanning exactly 100 units.
// This is the cell's upper edge. The classic lower-edge rule, i cell units,
// fills the first cell at 0% and 17 of 32 cells at 50%.
func (b *Bar) cellThreshold(i int) float64 {
	return float64(i+1) * (b.maxValue - b.minValue) / float64(b.blockWidth)
}

// redraw must be called with console.mu held.
func (b *Bar) redraw() (err error) {
	t := b.console.term

	if err := t.SetCursorVisible(false); err != nil {
		return errors.Join(ErrRender, err)
	}

	defer func() {
		if showErr := t.SetCursorVisible(true); showErr != nil {
			err = errors.Join(err, ErrRender, showErr)
		}
	}()

	caller, err := t.Cursor()
	if err != nil {
		return errors.Join(ErrRender, err)
	}

	// the terminator is only written by Show
	width := len(b.buffer) - 1

	if err := b.console.erase(b.anchor, width); err != nil {
		return err
	}

	if err := t.SetCursor(b.anchor); err != nil {
		return errors.Join(ErrRender, err)
	}

	if err := t.WriteRaw(b.buffer[:width]); err != nil {
		return errors.Join(ErrRender, err)
	}

	b.shown = true

	if err := t.SetCursor(caller); err != nil {
		return errors.Join(ErrRender, err)
	}

	return nil
}

// formatDesc renders the separator and percentage text, DescLength-1 runes.
func formatDesc(percent float64) []rune {
	display := math.Min(math.Round(percent), maxDisplayPercent)

	desc := make([]rune, 0, DescLength-1)
	desc = append(desc, terminal.Blank)
	desc = append(desc, []rune(fmt.Sprintf(descFormat, display))...)

	for len(desc) < DescLength-1 {
		desc = append(desc, terminal.Blank)
	}

	return desc[:DescLength-1]
}

// Buffer returns the current layout, terminator included.
func (b *Bar) Buffer() string {
	b.console.mu.Lock()
	defer b.console.mu.Unlock()

	return string(b.buffer)
}

// Filled returns the number of filled cells.
func (b *Bar) Filled() int {
	b.console.mu.Lock()
	defer b.console.mu.Unlock()

	n := 0

	for _, r := range b.buffer[b.blockStart : b.blockStart+b.blockWidth] {
		if r == b.fillChar {
			n++
		}
	}

	return n
}

// Percent returns the percentage computed by the last update.
func (b *Bar) Percent() float64 {
	b.console.mu.Lock()
	defer b.console.mu.Unlock()

	return b.percent
}

// Shown reports whether the bar has been painted at least once.
func (b *Bar) Shown() bool {
	b.console.mu.Lock()
	defer b.console.mu.Unlock()

	return b.shown
}

// Anchor returns the screen position the bar is drawn at.
func (b *Bar) Anchor() terminal.Position {
	return b.anchor
}

// Len returns the buffer length in cells, terminator included.
func (b *Bar) Len() int {
	return len(b.buffer)
}

// CellUnit returns the range covered by one fill cell.
func (b *Bar) CellUnit() float64 {
	return b.cellUnit
}
