// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI SGR sequences for log output.
//
// Whether a stream should be coloured is decided by EnabledFor, which honours
// the NO_COLOR and FORCE_COLOR environment variables before falling back to
// golang.org/x/term terminal detection.
package color
