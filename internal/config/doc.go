// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads demo plans: which bars to draw and how to drive them.
//
// Plans are written in YAML or HCL, chosen by file extension, and may be read
// from a local path or fetched from any go-getter source.
//
//	mode: multi
//	interval: 100ms
//	bars:
//	  - title: task1
//	  - title: task2
//	    fill: "#"
//	    width: 16
//
// The same plan in HCL:
//
//	mode     = "multi"
//	interval = "100ms"
//	bar { title = "task1" }
//	bar {
//	  title = "task2"
//	  fill  = "#"
//	  width = 16
//	}
package config
