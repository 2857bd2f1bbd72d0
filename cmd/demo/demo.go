// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package demo contains the demo subcommand.
package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/matt-FFFFFF/conbar/internal/config"
	"github.com/matt-FFFFFF/conbar/internal/ctxlog"
	"github.com/matt-FFFFFF/conbar/internal/demo"
	"github.com/matt-FFFFFF/conbar/internal/progressbar"
	"github.com/matt-FFFFFF/conbar/internal/terminal"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v3"
)

const (
	configFlag   = "config"
	modeFlag     = "mode"
	barsFlag     = "bars"
	titleFlag    = "title"
	fillFlag     = "fill"
	widthFlag    = "width"
	minFlag      = "min"
	maxFlag      = "max"
	stepsFlag    = "steps"
	intervalFlag = "interval"
	workersFlag  = "workers"
	waitFlag     = "wait"
	cliExitStr   = ""
	waitPrompt   = "press enter to exit "
)

var (
	// ErrNotTerminal is returned when stdin or stdout is not a terminal.
	ErrNotTerminal = errors.New("conbar demo needs an interactive terminal on stdin and stdout")
	// ErrBuildPlan is returned when the flags or config file do not form a valid plan.
	ErrBuildPlan = errors.New("failed to build demo plan")
)

// ConsoleFactory returns the console bars are drawn on. Every call returns
// the same console, so anything else touching the screen shares its lock.
var ConsoleFactory = sync.OnceValues(newStdConsole)

func newStdConsole() (*progressbar.Console, error) {
	if !terminal.IsTerminal(os.Stdin) || !terminal.IsTerminal(os.Stdout) {
		return nil, ErrNotTerminal
	}

	return progressbar.NewConsole(terminal.NewANSI(os.Stdout, os.Stdin)), nil
}

// WaitFunc blocks until the user dismisses the demo.
var WaitFunc = waitForEnter

// NewDemoCmd returns the demo command.
func NewDemoCmd() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Draw progress bars and drive them to 100%",
		Description: `Draw one or more anchored progress bars and update them until they are full.

Modes:
  single      one bar updated from one loop
  multi       several bars updated from one loop, one step per tick
  concurrent  each bar updated from its own worker goroutine

Bars are described either by flags or by a plan file (--config) in YAML
(.yaml, .yml) or HCL (.hcl). Plan files may be local paths or any source
understood by Hashicorp's go-getter, see https://github.com/hashicorp/go-getter.
When --config is given the bar and mode flags are ignored.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      configFlag,
				Aliases:   []string{"c"},
				Usage:     "Plan file path or go-getter URL",
				TakesFile: true,
				OnlyOnce:  true,
			},
			&cli.StringFlag{
				Name:    modeFlag,
				Aliases: []string{"m"},
				Usage:   "Drive mode: single, multi or concurrent",
				Value:   string(config.ModeSingle),
			},
			&cli.IntFlag{
				Name:    barsFlag,
				Aliases: []string{"n"},
				Usage:   "Number of bars; titles are numbered when more than one",
				Value:   1,
			},
			&cli.StringFlag{
				Name:  titleFlag,
				Usage: "Bar title, or title prefix when drawing several bars",
				Value: "task",
			},
			&cli.StringFlag{
				Name:  fillFlag,
				Usage: "Character used for filled cells",
				Value: string(progressbar.DefaultFillChar),
			},
			&cli.IntFlag{
				Name:  widthFlag,
				Usage: "Number of fill cells",
				Value: progressbar.DefaultBlockWidth,
			},
			&cli.FloatFlag{
				Name:  minFlag,
				Usage: "Value shown as 0%",
				Value: progressbar.DefaultMinValue,
			},
			&cli.FloatFlag{
				Name:  maxFlag,
				Usage: "Value shown as 100%",
				Value: progressbar.DefaultMaxValue,
			},
			&cli.IntFlag{
				Name:  stepsFlag,
				Usage: "Number of updates per bar",
				Value: 100,
			},
			&cli.DurationFlag{
				Name:    intervalFlag,
				Aliases: []string{"i"},
				Usage:   "Delay between updates",
				Value:   50 * time.Millisecond,
			},
			&cli.IntFlag{
				Name:    workersFlag,
				Aliases: []string{"w"},
				Usage:   "Worker pool size in concurrent mode, defaults to one per bar",
			},
			&cli.BoolFlag{
				Name:        waitFlag,
				Usage:       "Wait for enter before exiting",
				DefaultText: "false",
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	plan, err := buildPlan(ctx, cmd)
	if err != nil {
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	console, err := ConsoleFactory()
	if err != nil {
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	defer console.RestoreCursor() //nolint:errcheck

	logger.Debug("running demo", "mode", plan.Mode, "bars", len(plan.Bars))

	if err := demo.Run(ctx, console, plan); err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}

		logger.Error("demo failed", "error", err.Error())

		return cli.Exit(cliExitStr, 1)
	}

	if plan.Wait || cmd.Bool(waitFlag) {
		if err := WaitFunc(); err != nil {
			logger.Warn("wait prompt failed", "error", err.Error())
		}
	}

	return nil
}

// buildPlan loads --config when given, otherwise builds the plan from flags.
func buildPlan(ctx context.Context, cmd *cli.Command) (*config.Plan, error) {
	if src := cmd.String(configFlag); src != "" {
		plan, err := config.Load(ctx, src)
		if err != nil {
			return nil, errors.Join(ErrBuildPlan, err)
		}

		return plan, nil
	}

	n := cmd.Int(barsFlag)
	if n <= 0 {
		return nil, fmt.Errorf("%w: --%s must be greater than zero", ErrBuildPlan, barsFlag)
	}

	width := cmd.Int(widthFlag)
	minValue := cmd.Float(minFlag)
	maxValue := cmd.Float(maxFlag)

	plan := &config.Plan{
		Mode:     config.Mode(cmd.String(modeFlag)),
		Interval: cmd.Duration(intervalFlag).String(),
		Steps:    cmd.Int(stepsFlag),
		Workers:  cmd.Int(workersFlag),
		Bars:     make([]config.BarSpec, n),
	}

	for i := range plan.Bars {
		title := cmd.String(titleFlag)
		if n > 1 {
			title = fmt.Sprintf("%s%d", title, i+1)
		}

		plan.Bars[i] = config.BarSpec{
			Title: title,
			Fill:  cmd.String(fillFlag),
			Width: &width,
			Min:   &minValue,
			Max:   &maxValue,
		}
	}

	plan.ApplyDefaults()

	if err := plan.Validate(); err != nil {
		return nil, errors.Join(ErrBuildPlan, err)
	}

	return plan, nil
}

func waitForEnter() error {
	line := liner.NewLiner()
	defer line.Close() //nolint:errcheck

	line.SetCtrlCAborts(true)

	_, err := line.Prompt(waitPrompt)
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return nil
	}

	return err
}
