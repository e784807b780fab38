// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux && (amd64 || 386)
// +build !linux
// +build amd64 386

package main

import (
	"errors"
	"time"

	"github.com/u-root/x86rtc/pkg/cmos"
)

var errNoPortIO = errors.New("no way to get port I/O privilege for ports 0x70-0x71 on this OS")

// The in/out instructions exist but would fault without ioperm.
func openClock(devPort string, opts ...cmos.Option) (cmos.Clock, func() error, error) {
	return nil, nil, errNoPortIO
}

func setSystemTime(time.Time) error {
	return errNoPortIO
}
