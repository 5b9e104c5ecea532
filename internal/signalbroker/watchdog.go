// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/cmdgroups/internal/ctxlog"
)

// Watch reads sigCh until it is closed or ctx is done.
// The second signal of the same type calls abort and returns.
func Watch(ctx context.Context, sigCh <-chan os.Signal, abort func()) {
	seen := make(map[os.Signal]struct{})

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, dup := seen[sig]; dup {
				ctxlog.Warn(ctx, "received second signal, aborting", "signal", sig.String())
				abort()

				return
			}

			ctxlog.Warn(ctx, "received signal, running commands will be allowed to finish; repeat to exit now",
				"signal", sig.String())

			seen[sig] = struct{}{}
		}
	}
}
