// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"fmt"
	"testing"
)

// Status lines go through Colorize on every write, with the policy either way.
func BenchmarkColorize(b *testing.B) {
	line := "✔ Port 8080 is free"

	for _, on := range []bool{true, false} {
		name := "disabled"
		if on {
			name = "enabled"
		}

		b.Run(name, func(b *testing.B) {
			prev := SetEnabled(on)
			b.Cleanup(func() { SetEnabled(prev) })

			for b.Loop() {
				Colorize(line, FgGreen, Bold)
			}
		})
	}
}

func BenchmarkPaintCodes(b *testing.B) {
	for _, codes := range [][]Code{nil, {FgRed}, {FgHiWhite, Bold, Underline}} {
		b.Run(fmt.Sprintf("codes_%d", len(codes)), func(b *testing.B) {
			for b.Loop() {
				Paint("server:kill", codes...)
			}
		})
	}
}
