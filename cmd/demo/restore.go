// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package demo

import "time"

// RestoreTerminal shows the cursor through the demo console, waiting for any
// redraw in progress to release the console lock. It gives up after timeout
// and reports whether the cursor was restored.
func RestoreTerminal(timeout time.Duration) bool {
	console, err := ConsoleFactory()
	if err != nil {
		return false
	}

	done := make(chan error, 1)

	go func() {
		done <- console.RestoreCursor()
	}()

	select {
	case err := <-done:
		return err == nil
	case <-time.After(timeout):
		return false
	}
}
