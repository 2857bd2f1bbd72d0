// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progressbar

import (
	"errors"
	"fmt"
	"math"
	"unicode"
)

// Defaults applied by NewBar before any Option.
const (
	DefaultFillChar   = '*'
	DefaultBlockWidth = 32
	DefaultMinValue   = 0.0
	DefaultMaxValue   = 100.0
)

var (
	// ErrInvalidBlockWidth is returned when the fill region has no cells.
	ErrInvalidBlockWidth = errors.New("block width must be greater than zero")
	// ErrInvalidRange is returned when the value range is empty, inverted or not finite.
	ErrInvalidRange = errors.New("max value must be greater than min value")
	// ErrInvalidFillChar is returned when the fill glyph is not a printable character.
	ErrInvalidFillChar = errors.New("fill character must be printable")
	// ErrInvalidTitle is returned when the title contains control characters.
	ErrInvalidTitle = errors.New("title must not contain control characters")
)

// Options describes the layout and value range of a bar.
type Options struct {
	Title      string
	FillChar   rune
	BlockWidth int
	MinValue   float64
	MaxValue   float64
}

// Option implements a functional options pattern for NewBar.
type Option func(o *Options)

// DefaultOptions returns an untitled bar of 32 '*' cells over 0..100.
func DefaultOptions() Options {
	return Options{
		FillChar:   DefaultFillChar,
		BlockWidth: DefaultBlockWidth,
		MinValue:   DefaultMinValue,
		MaxValue:   DefaultMaxValue,
	}
}

// WithTitle sets the label printed before the bar.
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithFillChar sets the glyph used for filled cells.
func WithFillChar(c rune) Option {
	return func(o *Options) {
		o.FillChar = c
	}
}

// WithBlockWidth sets the number of fill cells.
func WithBlockWidth(width int) Option {
	return func(o *Options) {
		o.BlockWidth = width
	}
}

// WithRange sets the values mapped to 0% and 100%.
func WithRange(minValue, maxValue float64) Option {
	return func(o *Options) {
		o.MinValue = minValue
		o.MaxValue = maxValue
	}
}

// Validate checks the options can be laid out.
func (o Options) Validate() error {
	if o.BlockWidth <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBlockWidth, o.BlockWidth)
	}

	if math.IsNaN(o.MinValue) || math.IsInf(o.MinValue, 0) ||
		math.IsNaN(o.MaxValue) || math.IsInf(o.MaxValue, 0) ||
		o.MaxValue <= o.MinValue {
		return fmt.Errorf("%w: got %g..%g", ErrInvalidRange, o.MinValue, o.MaxValue)
	}

	if !unicode.IsPrint(o.FillChar) || unicode.IsSpace(o.FillChar) {
		return fmt.Errorf("%w: got %q", ErrInvalidFillChar, o.FillChar)
	}

	for _, r := range o.Title {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: got %q", ErrInvalidTitle, o.Title)
		}
	}

	return nil
}
