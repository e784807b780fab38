// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testutil holds helpers for tests that need privilege.
package testutil

import (
	"os"
	"testing"
)

// SkipIfNotRoot skips the calling test if uid != 0.
func SkipIfNotRoot(t testing.TB) {
	t.Helper()
	if os.Getuid() != 0 {
		t.Skipf("Skipping test since we are not root")
	}
}
