// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package terminal

import (
	"strings"
	"sync"
)

// OpKind identifies a Terminal call recorded by Virtual.
type OpKind int

const (
	// OpCursor is a Cursor call.
	OpCursor OpKind = iota
	// OpSetCursor is a SetCursor call.
	OpSetCursor
	// OpCursorVisible is a SetCursorVisible call.
	OpCursorVisible
	// OpWrite is a WriteRaw call.
	OpWrite
)

// String implements the Stringer interface for OpKind.
func (k OpKind) String() string {
	switch k {
	case OpCursor:
		return "cursor"
	case OpSetCursor:
		return "set-cursor"
	case OpCursorVisible:
		return "cursor-visible"
	case OpWrite:
		return "write"
	default:
		return "unknown"
	}
}

// Op is one recorded Terminal call.
type Op struct {
	Kind    OpKind
	Pos     Position // cursor position after the call
	Visible bool     // for OpCursorVisible
	Text    string   // for OpWrite
}

var _ Terminal = (*Virtual)(nil)

// Virtual is an in-memory terminal. It is safe for concurrent use so tests
// can inspect it while writers are running.
type Virtual struct {
	mu      sync.Mutex
	cells   [][]rune
	cursor  Position
	visible bool
	height  int
	ops     []Op
	fail    map[OpKind]error
}

// NewVirtual returns an empty screen with a visible cursor at the origin.
func NewVirtual() *Virtual {
	return &Virtual{
		visible: true,
		fail:    make(map[OpKind]error),
	}
}

// NewVirtualSize returns an empty screen of the given number of rows.
// A newline on the last row scrolls every row up by one, as a real
// terminal does.
func NewVirtualSize(rows int) *Virtual {
	v := NewVirtual()
	v.height = rows

	return v
}

// FailOn makes every later call of the given kind return err. A nil err clears it.
func (v *Virtual) FailOn(kind OpKind, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err == nil {
		delete(v.fail, kind)
		return
	}

	v.fail[kind] = err
}

// Cursor implements Terminal.
func (v *Virtual) Cursor() (Position, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.fail[OpCursor]; err != nil {
		return Position{}, err
	}

	v.record(Op{Kind: OpCursor})

	return v.cursor, nil
}

// SetCursor implements Terminal.
func (v *Virtual) SetCursor(pos Position) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.fail[OpSetCursor]; err != nil {
		return err
	}

	if !pos.valid() {
		return ErrInvalidPosition
	}

	v.cursor = pos
	v.record(Op{Kind: OpSetCursor})

	return nil
}

// SetCursorVisible implements Terminal.
func (v *Virtual) SetCursorVisible(visible bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.fail[OpCursorVisible]; err != nil {
		return err
	}

	v.visible = visible
	v.record(Op{Kind: OpCursorVisible, Visible: visible})

	return nil
}

// WriteRaw implements Terminal. A newline moves to the start of the next row,
// scrolling if the screen has a height and the cursor is on its last row.
// A carriage return moves to the start of the current row. Rows never wrap.
func (v *Virtual) WriteRaw(text []rune) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.fail[OpWrite]; err != nil {
		return err
	}

	for _, r := range text {
		switch r {
		case '\n':
			v.newline()
		case '\r':
			v.cursor.Col = 0
		default:
			v.put(r)
			v.cursor.Col++
		}
	}

	v.record(Op{Kind: OpWrite, Text: string(text)})

	return nil
}

// CursorPosition returns the cursor without recording an operation.
func (v *Virtual) CursorPosition() Position {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.cursor
}

// CursorVisible reports whether the cursor is currently shown.
func (v *Virtual) CursorVisible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.visible
}

// Line returns the painted text of a row with trailing blanks removed.
func (v *Virtual) Line(row int) string {
	v.mu.Lock()
	defer v.mu.Unlock()

	if row < 0 || row >= len(v.cells) {
		return ""
	}

	return strings.TrimRight(string(v.cells[row]), string(Blank))
}

// Lines returns every painted row.
func (v *Virtual) Lines() []string {
	v.mu.Lock()
	rows := len(v.cells)
	v.mu.Unlock()

	lines := make([]string, rows)
	for i := range lines {
		lines[i] = v.Line(i)
	}

	return lines
}

// Ops returns a copy of the operation log.
func (v *Virtual) Ops() []Op {
	v.mu.Lock()
	defer v.mu.Unlock()

	ops := make([]Op, len(v.ops))
	copy(ops, v.ops)

	return ops
}

// ResetOps clears the operation log, leaving the screen untouched.
func (v *Virtual) ResetOps() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.ops = nil
}

func (v *Virtual) record(op Op) {
	op.Pos = v.cursor
	v.ops = append(v.ops, op)
}

func (v *Virtual) newline() {
	if v.height > 0 && v.cursor.Row >= v.height-1 {
		if len(v.cells) > 0 {
			v.cells = v.cells[1:]
		}

		v.cursor = Position{Row: v.height - 1}

		return
	}

	v.cursor = Position{Row: v.cursor.Row + 1}
}

func (v *Virtual) put(r rune) {
	for len(v.cells) <= v.cursor.Row {
		v.cells = append(v.cells, nil)
	}

	row := v.cells[v.cursor.Row]
	for len(row) <= v.cursor.Col {
		row = append(row, Blank)
	}

	row[v.cursor.Col] = r
	v.cells[v.cursor.Row] = row
}
