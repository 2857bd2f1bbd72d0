// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/matt-FFFFFF/conbar/internal/progressbar"
)

// Mode selects how the demo drives its bars.
type Mode string

const (
	// ModeSingle updates the first bar from one loop.
	ModeSingle Mode = "single"
	// ModeMulti updates every bar from one loop, one tick at a time.
	ModeMulti Mode = "multi"
	// ModeConcurrent updates each bar from its own worker.
	ModeConcurrent Mode = "concurrent"
)

const (
	defaultInterval = 50 * time.Millisecond
	defaultSteps    = 100
	defaultHeader   = "console progress bar test.."
)

var (
	// ErrInvalidPlan is returned when a plan fails validation.
	ErrInvalidPlan = errors.New("invalid plan")
	// ErrUnknownMode is returned for a mode other than single, multi or concurrent.
	ErrUnknownMode = errors.New("unknown mode")
	// ErrNoBars is returned when a plan has no bars.
	ErrNoBars = errors.New("plan has no bars")
)

// Plan describes a demo run.
type Plan struct {
	Mode     Mode      `yaml:"mode,omitempty" hcl:"mode,optional"`
	Interval string    `yaml:"interval,omitempty" hcl:"interval,optional"`
	Steps    int       `yaml:"steps,omitempty" hcl:"steps,optional"`
	Workers  int       `yaml:"workers,omitempty" hcl:"workers,optional"`
	Header   *string   `yaml:"header,omitempty" hcl:"header,optional"`
	Wait     bool      `yaml:"wait,omitempty" hcl:"wait,optional"`
	Bars     []BarSpec `yaml:"bars" hcl:"bar,block"`

	interval time.Duration
}

// BarSpec describes one bar. Unset fields take the progressbar defaults.
type BarSpec struct {
	Title string   `yaml:"title,omitempty" hcl:"title,optional"`
	Fill  string   `yaml:"fill,omitempty" hcl:"fill,optional"`
	Width *int     `yaml:"width,omitempty" hcl:"width,optional"`
	Min   *float64 `yaml:"min,omitempty" hcl:"min,optional"`
	Max   *float64 `yaml:"max,omitempty" hcl:"max,optional"`
}

// Options converts the spec to bar options.
func (b BarSpec) Options() []progressbar.Option {
	opts := []progressbar.Option{progressbar.WithTitle(b.Title)}

	if b.Fill != "" {
		r, _ := utf8.DecodeRuneInString(b.Fill)
		opts = append(opts, progressbar.WithFillChar(r))
	}

	if b.Width != nil {
		opts = append(opts, progressbar.WithBlockWidth(*b.Width))
	}

	minValue, maxValue := progressbar.DefaultMinValue, progressbar.DefaultMaxValue
	if b.Min != nil {
		minValue = *b.Min
	}

	if b.Max != nil {
		maxValue = *b.Max
	}

	return append(opts, progressbar.WithRange(minValue, maxValue))
}

// Resolved returns the options a bar built from this spec ends up with.
func (b BarSpec) Resolved() progressbar.Options {
	o := progressbar.DefaultOptions()
	for _, opt := range b.Options() {
		opt(&o)
	}

	return o
}

// Validate checks the spec describes a bar that can be laid out.
func (b BarSpec) Validate() error {
	if utf8.RuneCountInString(b.Fill) > 1 {
		return fmt.Errorf("%w: fill %q must be a single character", progressbar.ErrInvalidFillChar, b.Fill)
	}

	return b.Resolved().Validate()
}

// ApplyDefaults fills unset plan fields.
func (p *Plan) ApplyDefaults() {
	if p.Mode == "" {
		p.Mode = ModeSingle
	}

	if p.Interval == "" {
		p.Interval = defaultInterval.String()
	}

	if p.Steps == 0 {
		p.Steps = defaultSteps
	}

	if p.Workers == 0 {
		p.Workers = len(p.Bars)
	}

	if p.Header == nil {
		header := defaultHeader
		p.Header = &header
	}
}

// Validate checks the plan after defaults have been applied.
func (p *Plan) Validate() error {
	switch p.Mode {
	case ModeSingle, ModeMulti, ModeConcurrent:
	default:
		return errors.Join(ErrInvalidPlan, fmt.Errorf("%w: %q", ErrUnknownMode, p.Mode))
	}

	interval, err := time.ParseDuration(p.Interval)
	if err != nil {
		return errors.Join(ErrInvalidPlan, fmt.Errorf("interval: %w", err))
	}

	if interval < 0 {
		return errors.Join(ErrInvalidPlan, fmt.Errorf("interval must not be negative, got %s", p.Interval))
	}

	p.interval = interval

	if p.Steps <= 0 {
		return errors.Join(ErrInvalidPlan, fmt.Errorf("steps must be greater than zero, got %d", p.Steps))
	}

	if p.Workers < 0 {
		return errors.Join(ErrInvalidPlan, fmt.Errorf("workers must not be negative, got %d", p.Workers))
	}

	if len(p.Bars) == 0 {
		return errors.Join(ErrInvalidPlan, ErrNoBars)
	}

	for i, bar := range p.Bars {
		if err := bar.Validate(); err != nil {
			return errors.Join(ErrInvalidPlan, fmt.Errorf("bar %d: %w", i, err))
		}
	}

	return nil
}

// IntervalDuration returns the parsed interval. It is zero until Validate succeeds.
func (p *Plan) IntervalDuration() time.Duration {
	return p.interval
}

// HeaderText returns the line printed before the bars, empty for none.
func (p *Plan) HeaderText() string {
	if p.Header == nil {
		return ""
	}

	return *p.Header
}
