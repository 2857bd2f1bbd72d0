// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package demo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/conbar/internal/config"
	"github.com/matt-FFFFFF/conbar/internal/ctxlog"
	"github.com/matt-FFFFFF/conbar/internal/progressbar"
	"github.com/panjf2000/ants/v2"
)

const releaseTimeout = 5 * time.Second

var (
	// ErrSetup is returned when a bar cannot be created or shown.
	ErrSetup = errors.New("failed to set up progress bars")
	// ErrPool is returned when the worker pool cannot be created or used.
	ErrPool = errors.New("worker pool failure")
)

// Run prints the plan header, creates the bars and drives them to completion.
// It stops early, returning the context error, when ctx is cancelled.
// plan must have been validated.
func Run(ctx context.Context, console *progressbar.Console, plan *config.Plan) error {
	logger := ctxlog.Logger(ctx).With("mode", plan.Mode)
	logger.Debug("demo starting", "bars", len(plan.Bars), "steps", plan.Steps)

	if header := plan.HeaderText(); header != "" {
		if err := console.WriteLine(header); err != nil {
			return errors.Join(ErrSetup, err)
		}
	}

	specs := plan.Bars
	if plan.Mode == config.ModeSingle {
		specs = specs[:1]
	}

	bars, err := showBars(console, specs)
	if err != nil {
		return err
	}

	switch plan.Mode {
	case config.ModeSingle, config.ModeMulti:
		err = runSequential(ctx, bars, plan)
	case config.ModeConcurrent:
		err = runConcurrent(ctx, bars, plan)
	default:
		err = fmt.Errorf("%w: %q", config.ErrUnknownMode, plan.Mode)
	}

	if err != nil {
		return err
	}

	logger.Debug("demo finished")

	return nil
}

// driven pairs a bar with the options it was built from.
type driven struct {
	bar  *progressbar.Bar
	opts progressbar.Options
}

// value maps step 0..steps linearly onto the bar's range.
func (d driven) value(step, steps int) float64 {
	return d.opts.MinValue + (d.opts.MaxValue-d.opts.MinValue)*float64(step)/float64(steps)
}

// showBars anchors one bar per row below the cursor. The rows are reserved
// first so a cursor on the last screen row does not give every bar the same
// anchor.
func showBars(console *progressbar.Console, specs []config.BarSpec) ([]driven, error) {
	if err := console.Reserve(len(specs)); err != nil {
		return nil, errors.Join(ErrSetup, err)
	}

	bars := make([]driven, 0, len(specs))

	for i, spec := range specs {
		bar, err := console.NewBar(spec.Options()...)
		if err != nil {
			return nil, errors.Join(ErrSetup, fmt.Errorf("bar %d: %w", i, err))
		}

		if err := bar.Show(); err != nil {
			return nil, errors.Join(ErrSetup, fmt.Errorf("bar %d: %w", i, err))
		}

		bars = append(bars, driven{bar: bar, opts: spec.Resolved()})
	}

	return bars, nil
}

// runSequential advances every bar by one step per tick from a single loop.
func runSequential(ctx context.Context, bars []driven, plan *config.Plan) error {
	tick := newTicker(plan.IntervalDuration())
	defer tick.stop()

	for step := 0; step <= plan.Steps; step++ {
		if err := tick.wait(ctx); err != nil {
			return err
		}

		for _, d := range bars {
			if err := d.bar.UpdateProgress(d.value(step, plan.Steps)); err != nil {
				return err
			}
		}
	}

	return nil
}

// runConcurrent gives each bar its own task on a pool of plan.Workers goroutines.
// ApplyDefaults sizes the pool to one worker per bar when unset.
func runConcurrent(ctx context.Context, bars []driven, plan *config.Plan) error {
	pool, err := ants.NewPool(plan.Workers)
	if err != nil {
		return errors.Join(ErrPool, err)
	}

	defer pool.ReleaseTimeout(releaseTimeout) //nolint:errcheck

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result *multierror.Error
	)

	appendErr := func(i int, err error) {
		mu.Lock()
		defer mu.Unlock()

		result = multierror.Append(result, fmt.Errorf("bar %d: %w", i, err))
	}

	for i, d := range bars {
		wg.Add(1)

		task := func() {
			defer wg.Done()

			if err := drive(ctx, d, plan); err != nil {
				appendErr(i, err)
			}
		}

		if err := pool.Submit(task); err != nil {
			wg.Done()
			appendErr(i, errors.Join(ErrPool, err))
		}
	}

	wg.Wait()

	return result.ErrorOrNil()
}

// drive runs one bar through every step on its own ticker.
func drive(ctx context.Context, d driven, plan *config.Plan) error {
	tick := newTicker(plan.IntervalDuration())
	defer tick.stop()

	for step := 0; step <= plan.Steps; step++ {
		if err := tick.wait(ctx); err != nil {
			return err
		}

		if err := d.bar.UpdateProgress(d.value(step, plan.Steps)); err != nil {
			return err
		}
	}

	return nil
}

// ticker paces updates. A zero interval never waits but still honours cancellation.
type ticker struct {
	t *time.Ticker
}

func newTicker(interval time.Duration) ticker {
	if interval <= 0 {
		return ticker{}
	}

	return ticker{t: time.NewTicker(interval)}
}

func (t ticker) wait(ctx context.Context) error {
	if t.t == nil {
		return ctx.Err()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.t.C:
		return nil
	}
}

func (t ticker) stop() {
	if t.t != nil {
		t.t.Stop()
	}
}
