// Copyright 2012-2020 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build amd64 || 386
// +build amd64 386

package cmos

import (
	"github.com/u-root/x86rtc/pkg/memio"
)

// GetCMOS returns a CMOSChip that issues in/out instructions directly.
// The caller must already hold I/O privilege for ports 0x70 and 0x71.
func GetCMOS() *CMOSChip {
	return NewChip(memio.ArchPort{})
}

// New returns the hardware clock.
func New() Clock {
	return NewRTC(GetCMOS())
}
