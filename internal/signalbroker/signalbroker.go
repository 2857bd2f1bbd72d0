// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker turns OS termination signals into context cancellation.
// By default it listens for os.Interrupt, syscall.SIGINT, syscall.SIGTERM and syscall.SIGQUIT.
//
// Watch cancels the run on the first signal so in-flight bar redraws finish
// and the cursor is made visible again; a second signal of the same type
// runs a forced shutdown hook.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/conbar/internal/ctxlog"
)

var termSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	os.Interrupt,
}

// New creates a channel receiving the given signals, or the termination signals if none are given.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "signalbroker", "detail", "creating signal broker", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}

// Stop detaches ch from signal delivery.
func Stop(ch chan os.Signal) {
	signal.Stop(ch)
}
