// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/plasma/internal/ctxlog"
)

// ExitInterrupted is the conventional 128+SIGINT exit status.
const ExitInterrupted = 130

// ExitFunc terminates the process on the second signal.
var ExitFunc = os.Exit

// Watch consumes sigCh until it is closed.
// The first signal calls cancel, the second calls ExitFunc(ExitInterrupted).
func Watch(ctx context.Context, sigCh <-chan os.Signal, cancel context.CancelFunc) {
	interrupted := false

	for sig := range sigCh {
		if interrupted {
			ctxlog.Warn(ctx, "watchdog", "detail", "received second signal, forcefully terminating", "signal", sig.String())
			ExitFunc(ExitInterrupted)

			return
		}

		ctxlog.Info(ctx, "watchdog", "detail", "received signal, cancelling", "signal", sig.String())

		interrupted = true

		cancel()
	}
}
