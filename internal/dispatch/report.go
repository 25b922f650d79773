// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"errors"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/console"
)

// Report prints the user-facing message of a result: the success summary to stdout,
// anything else to stderr. Argument errors are followed by the usage line.
func (d *Dispatcher) Report(res Result) {
	c := console.New(d.stdout, d.stderr, d.stdin)

	switch res.Status {
	case StatusSuccess:
		if res.Message != "" {
			c.Success("%s", res.Message)
		}
	case StatusHandledFailure, StatusFault:
		c.Error("%s", res.Message)
	case StatusRejected:
		c.Error("%s", res.Message)

		var argErr *commands.ArgumentError
		if errors.As(res.Err, &argErr) && argErr.Usage != "" {
			c.Info("usage: %s %s", d.program, argErr.Usage)
		}
	}
}
