// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the entry point for the conbar command-line application.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/matt-FFFFFF/conbar/cmd"
	"github.com/matt-FFFFFF/conbar/cmd/demo"
	"github.com/matt-FFFFFF/conbar/internal/ctxlog"
	"github.com/matt-FFFFFF/conbar/internal/signalbroker"
)

const (
	exitInterrupted     = 130
	forceRestoreTimeout = 200 * time.Millisecond
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)
	defer signalbroker.Stop(sigCh)

	go signalbroker.Watch(ctx, sigCh, cancel, func() {
		// a redraw may have been cut short with the cursor hidden
		demo.RestoreTerminal(forceRestoreTimeout)
		os.Exit(exitInterrupted)
	})

	err := cmd.RootCmd.Run(ctx, os.Args)

	switch {
	case errors.Is(err, context.Canceled):
		ctxlog.Logger(ctx).Warn("interrupted")
		os.Exit(exitInterrupted)
	case err != nil:
		ctxlog.Logger(ctx).Error("command failed", "error", err)
		os.Exit(1)
	}

	ctxlog.Logger(ctx).Debug("command completed successfully")
	os.Exit(0)
}
