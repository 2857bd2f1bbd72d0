// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a slog logger in a context.Context.
//
// The default logger writes human-readable lines to stderr, never stdout, so
// log output does not land inside a progress bar redraw. The level comes from
// the <EXECUTABLE>_LOG_LEVEL environment variable, e.g. CONBAR_LOG_LEVEL=DEBUG.
package ctxlog
