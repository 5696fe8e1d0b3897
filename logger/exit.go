// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package logger

import "os"

// ExitWithError calls os.Exit(*code) if code points to a non-zero value.
// Deferred in main() so that other deferred cleanups still run before exit.
func ExitWithError(code *int) {
	if *code != 0 {
		os.Exit(*code)
	}
}
