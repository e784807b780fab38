// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux && (amd64 || 386)
// +build linux
// +build amd64 386

package testutil

import (
	"runtime"
	"testing"

	"golang.org/x/sys/unix"
)

// SkipIfNoPortIO locks the test goroutine to its OS thread and asks for
// access to ports [from, from+num). The test is skipped if the kernel
// refuses, which is the normal case in CI.
//
// ioperm is per thread, so the goroutine stays locked until the test ends.
func SkipIfNoPortIO(t testing.TB, from, num uint16) {
	t.Helper()
	runtime.LockOSThread()
	if err := unix.Ioperm(int(from), int(num), 1); err != nil {
		runtime.UnlockOSThread()
		t.Skipf("Skipping test, no port I/O privilege for %#x+%d: %v", from, num, err)
	}
	t.Cleanup(func() {
		unix.Ioperm(int(from), int(num), 0)
		runtime.UnlockOSThread()
	})
}
