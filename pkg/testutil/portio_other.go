// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux || (!amd64 && !386)
// +build !linux !amd64,!386

package testutil

import "testing"

// SkipIfNoPortIO always skips: there is no way to ask for port I/O
// privilege here.
func SkipIfNoPortIO(t testing.TB, from, num uint16) {
	t.Helper()
	t.Skipf("Skipping test, port I/O is not available on this platform")
}
