// CLASSIFICATION: COMMUNITY
// Filename: main.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Command devserve serves a local directory with permissive CORS headers.
package main

import (
	"context"
	"os"

	"devserve/internal/tooling"
)

func main() {
	ctx, cancel := newSignalContext(context.Background())
	code := tooling.Execute(ctx)
	cancel()
	os.Exit(code)
}
