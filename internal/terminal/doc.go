// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package terminal isolates the text terminal behind a narrow interface.
//
// A Terminal can report and move the cursor, toggle cursor visibility and
// write raw characters. ANSI drives a real device with CSI escape sequences,
// Virtual is an in-memory screen that records every operation so callers can
// assert on write ordering without a real device.
package terminal
