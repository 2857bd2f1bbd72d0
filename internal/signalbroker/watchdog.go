// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/conbar/internal/ctxlog"
)

// Watch reads sigCh until it is closed or a signal repeats.
// The first signal of any type cancels the context. A second signal of a type
// already seen calls force, if not nil, and returns.
func Watch(ctx context.Context, sigCh <-chan os.Signal, cancel context.CancelFunc, force func()) {
	seen := make(map[os.Signal]struct{})

	for sig := range sigCh {
		if _, ok := seen[sig]; ok {
			ctxlog.Warn(ctx, "watchdog", "detail", "received second signal of type, forcing shutdown", "signal", sig.String())
			cancel()

			if force != nil {
				force()
			}

			return
		}

		ctxlog.Info(ctx, "watchdog", "detail", "received signal, stopping", "signal", sig.String())

		seen[sig] = struct{}{}

		cancel()
	}
}
