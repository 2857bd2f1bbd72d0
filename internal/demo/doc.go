// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package demo drives progress bars from a config.Plan.
//
// Every bar is created and shown on the calling goroutine, one below the
// other, before anything updates them. In concurrent mode each bar is then
// handed to its own pool worker; the Console lock keeps their redraws apart.
package demo
