// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progressbar renders fixed-position progress bars that update in place.
//
// A bar is laid out once as
//
//	title[<fill cells>] nnnn%
//
// and anchored at the cursor position where it was created. Every later
// update erases and repaints the bar at that anchor, then puts the cursor
// back where the caller left it, so output written below the bars is not
// disturbed.
//
// The cursor is one resource shared by every bar, so all bars drawing on the
// same terminal must be created from one Console. The Console holds the single
// lock that serialises each redraw sequence.
package progressbar
