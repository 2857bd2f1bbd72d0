// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package terminal

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("device gone")
}

func TestANSI_SetCursor(t *testing.T) {
	buf := &bytes.Buffer{}
	a := NewANSI(buf, nil)

	require.NoError(t, a.SetCursor(Position{Row: 0, Col: 0}))
	require.NoError(t, a.SetCursor(Position{Row: 4, Col: 11}))

	assert.Equal(t, "\033[1;1H\033[5;12H", buf.String())
}

func TestANSI_SetCursorInvalid(t *testing.T) {
	a := NewANSI(&bytes.Buffer{}, nil)

	err := a.SetCursor(Position{Row: -1})
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestANSI_SetCursorVisible(t *testing.T) {
	buf := &bytes.Buffer{}
	a := NewANSI(buf, nil)

	require.NoError(t, a.SetCursorVisible(false))
	require.NoError(t, a.SetCursorVisible(true))

	assert.Equal(t, "\033[?25l\033[?25h", buf.String())
}

func TestANSI_WriteRaw(t *testing.T) {
	buf := &bytes.Buffer{}
	a := NewANSI(buf, nil)

	require.NoError(t, a.WriteRaw([]rune("s1: [██  ]")))
	assert.Equal(t, "s1: [██  ]", buf.String())
}

func TestANSI_WriteErrors(t *testing.T) {
	a := NewANSI(failingWriter{}, nil)

	assert.ErrorIs(t, a.WriteRaw([]rune("x")), ErrWrite)
	assert.ErrorIs(t, a.SetCursor(Position{}), ErrWrite)
	assert.ErrorIs(t, a.SetCursorVisible(true), ErrWrite)
}

func TestANSI_CursorNotTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "not-a-tty"))
	require.NoError(t, err)

	defer f.Close() //nolint:errcheck

	a := NewANSI(&bytes.Buffer{}, f)
	_, err = a.Cursor()
	assert.ErrorIs(t, err, ErrNotTerminal)

	_, err = NewANSI(&bytes.Buffer{}, nil).Cursor()
	assert.ErrorIs(t, err, ErrNotTerminal)
}

func TestReadCursorReport(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    Position
		wantErr bool
	}{
		{
			name:  "origin",
			reply: "\033[1;1R",
			want:  Position{Row: 0, Col: 0},
		},
		{
			name:  "multi digit",
			reply: "\033[24;80R",
			want:  Position{Row: 23, Col: 79},
		},
		{
			name:  "leading noise is ignored",
			reply: "abc\033[3;7R",
			want:  Position{Row: 2, Col: 6},
		},
		{
			name:    "missing separator",
			reply:   "\033[37R",
			wantErr: true,
		},
		{
			name:    "zero row",
			reply:   "\033[0;5R",
			wantErr: true,
		},
		{
			name:    "not a number",
			reply:   "\033[a;5R",
			wantErr: true,
		},
		{
			name:    "truncated reply",
			reply:   "\033[3;7",
			wantErr: true,
		},
		{
			name:    "reply too long",
			reply:   strings.Repeat("1", maxReportLength+1),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readCursorReport(strings.NewReader(tt.reply))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCursorReport)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "(3,14)", Position{Row: 3, Col: 14}.String())
}
