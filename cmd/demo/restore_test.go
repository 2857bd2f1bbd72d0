// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package demo

import (
	"errors"
	"testing"
	"time"

	"github.com/matt-FFFFFF/conbar/internal/progressbar"
	"github.com/matt-FFFFFF/conbar/internal/terminal"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// stuckTerminal blocks cursor reads until released, like a terminal that
// never answers a position query in the middle of a redraw.
type stuckTerminal struct {
	*terminal.Virtual
	release chan struct{}
}

func (s *stuckTerminal) Cursor() (terminal.Position, error) {
	<-s.release
	return s.Virtual.Cursor()
}

func TestRestoreTerminal(t *testing.T) {
	v := terminal.NewVirtual()
	require.NoError(t, v.SetCursorVisible(false))

	stubs := gostub.Stub(&ConsoleFactory, func() (*progressbar.Console, error) {
		return progressbar.NewConsole(v), nil
	})
	t.Cleanup(stubs.Reset)

	assert.True(t, RestoreTerminal(time.Second))
	assert.True(t, v.CursorVisible())
}

func TestRestoreTerminal_NoConsole(t *testing.T) {
	stubs := gostub.Stub(&ConsoleFactory, func() (*progressbar.Console, error) {
		return nil, ErrNotTerminal
	})
	t.Cleanup(stubs.Reset)

	assert.False(t, RestoreTerminal(time.Second))
}

func TestRestoreTerminal_WaitsForRedraw(t *testing.T) {
	defer goleak.VerifyNone(t)

	stuck := &stuckTerminal{Virtual: terminal.NewVirtual(), release: make(chan struct{})}
	require.NoError(t, stuck.SetCursorVisible(false))
	stuck.ResetOps()

	console := progressbar.NewConsole(stuck)

	stubs := gostub.Stub(&ConsoleFactory, func() (*progressbar.Console, error) {
		return console, nil
	})
	t.Cleanup(stubs.Reset)

	// Reserve holds the console lock while it waits for the cursor report.
	reserved := make(chan error, 1)

	go func() {
		reserved <- console.Reserve(1)
	}()

	require.Eventually(t, func() bool {
		return len(stuck.Ops()) > 0
	}, time.Second, time.Millisecond, "reserve should have written its newline")

	assert.False(t, RestoreTerminal(20*time.Millisecond), "restore must not bypass the console lock")

	close(stuck.release)
	require.NoError(t, <-reserved)

	require.Eventually(t, stuck.CursorVisible, time.Second, time.Millisecond)
	assert.True(t, RestoreTerminal(time.Second))

	ops := stuck.Ops()
	last := ops[len(ops)-1]
	assert.Equal(t, terminal.OpCursorVisible, last.Kind)
	assert.True(t, last.Visible)
}

func TestRestoreTerminal_Error(t *testing.T) {
	v := terminal.NewVirtual()
	v.FailOn(terminal.OpCursorVisible, errors.New("detached"))

	stubs := gostub.Stub(&ConsoleFactory, func() (*progressbar.Console, error) {
		return progressbar.NewConsole(v), nil
	})
	t.Cleanup(stubs.Reset)

	assert.False(t, RestoreTerminal(time.Second))
}
