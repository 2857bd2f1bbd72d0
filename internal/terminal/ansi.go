// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package terminal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"golang.org/x/term"
)

const (
	csi               = "\033["
	hideCursor        = csi + "?25l"
	showCursor        = csi + "?25h"
	deviceStatus      = csi + "6n"
	maxReportLength   = 32
	defaultDSRTimeout = 500 * time.Millisecond
)

var _ Terminal = (*ANSI)(nil)

// ANSI drives a VT100 compatible terminal.
// Output goes to out; cursor position reports are read from in, which must be
// the controlling TTY.
type ANSI struct {
	out     io.Writer
	in      *os.File
	timeout time.Duration
}

// NewANSI creates an ANSI terminal writing to out and reading cursor reports from in.
func NewANSI(out io.Writer, in *os.File) *ANSI {
	return &ANSI{
		out:     out,
		in:      in,
		timeout: defaultDSRTimeout,
	}
}

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Cursor asks the terminal for the cursor position with a device status report.
// The input is switched to raw mode for the duration of the query so the reply
// is neither echoed nor line buffered.
func (a *ANSI) Cursor() (Position, error) {
	if !IsTerminal(a.in) {
		return Position{}, ErrNotTerminal
	}

	fd := int(a.in.Fd())

	state, err := term.MakeRaw(fd)
	if err != nil {
		return Position{}, errors.Join(ErrNotTerminal, err)
	}

	defer term.Restore(fd, state) //nolint:errcheck

	if _, err := io.WriteString(a.out, deviceStatus); err != nil {
		return Position{}, errors.Join(ErrWrite, err)
	}

	// Not every file supports deadlines; without one the read blocks until the reply arrives.
	if err := a.in.SetReadDeadline(time.Now().Add(a.timeout)); err == nil {
		defer a.in.SetReadDeadline(time.Time{}) //nolint:errcheck
	}

	return readCursorReport(a.in)
}

// SetCursor moves the cursor with a CUP sequence.
func (a *ANSI) SetCursor(pos Position) error {
	if !pos.valid() {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, pos)
	}

	if _, err := fmt.Fprintf(a.out, "%s%d;%dH", csi, pos.Row+1, pos.Col+1); err != nil {
		return errors.Join(ErrWrite, err)
	}

	return nil
}

// SetCursorVisible toggles DEC private mode 25.
func (a *ANSI) SetCursorVisible(visible bool) error {
	seq := hideCursor
	if visible {
		seq = showCursor
	}

	if _, err := io.WriteString(a.out, seq); err != nil {
		return errors.Join(ErrWrite, err)
	}

	return nil
}

// WriteRaw writes text at the cursor.
func (a *ANSI) WriteRaw(text []rune) error {
	if _, err := io.WriteString(a.out, string(text)); err != nil {
		return errors.Join(ErrWrite, err)
	}

	return nil
}

// readCursorReport reads a "ESC [ row ; col R" reply and converts it to a zero-based Position.
func readCursorReport(r io.Reader) (Position, error) {
	buf := make([]byte, 0, maxReportLength)
	b := make([]byte, 1)

	for len(buf) < maxReportLength {
		n, err := r.Read(b)
		if err != nil {
			return Position{}, errors.Join(ErrCursorReport, err)
		}

		if n == 0 {
			continue
		}

		buf = append(buf, b[0])
		if b[0] == 'R' {
			return parseCursorReport(buf)
		}
	}

	return Position{}, fmt.Errorf("%w: reply exceeds %d bytes", ErrCursorReport, maxReportLength)
}

func parseCursorReport(reply []byte) (Position, error) {
	start := bytes.LastIndex(reply, []byte(csi))
	if start < 0 || reply[len(reply)-1] != 'R' {
		return Position{}, fmt.Errorf("%w: %q", ErrCursorReport, reply)
	}

	body := reply[start+len(csi) : len(reply)-1]

	rowStr, colStr, ok := bytes.Cut(body, []byte(";"))
	if !ok {
		return Position{}, fmt.Errorf("%w: %q", ErrCursorReport, reply)
	}

	row, err := strconv.Atoi(string(rowStr))
	if err != nil || row < 1 {
		return Position{}, fmt.Errorf("%w: %q", ErrCursorReport, reply)
	}

	col, err := strconv.Atoi(string(colStr))
	if err != nil || col < 1 {
		return Position{}, fmt.Errorf("%w: %q", ErrCursorReport, reply)
	}

	return Position{Row: row - 1, Col: col - 1}, nil
}
