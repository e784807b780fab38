// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !amd64 && !386
// +build !amd64,!386

package main

import (
	"errors"
	"time"

	"github.com/u-root/x86rtc/pkg/cmos"
)

// There is no port I/O here, so the clock is the constant stub.
func openClock(devPort string, opts ...cmos.Option) (cmos.Clock, func() error, error) {
	if devPort != "" {
		return nil, nil, errors.New("--dev-port is only supported on linux/amd64 and linux/386")
	}
	return cmos.New(), func() error { return nil }, nil
}

func setSystemTime(time.Time) error {
	return errors.New("setting the system time is only supported on linux/amd64 and linux/386")
}
