// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux && (amd64 || 386)
// +build linux
// +build amd64 386

package memio

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Ioperm grants the calling thread access to num ports starting at from.
// It needs CAP_SYS_RAWIO.
func Ioperm(from, num uint16) error {
	if err := unix.Ioperm(int(from), int(num), 1); err != nil {
		return fmt.Errorf("ioperm(%#x, %d): %w", from, num, err)
	}
	return nil
}
