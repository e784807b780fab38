// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux && (amd64 || 386)
// +build linux
// +build amd64 386

package main

import (
	"runtime"
	"time"

	"github.com/u-root/x86rtc/pkg/cmos"
	"github.com/u-root/x86rtc/pkg/memio"
	"golang.org/x/sys/unix"
)

func openClock(devPort string, opts ...cmos.Option) (cmos.Clock, func() error, error) {
	if devPort != "" {
		p, err := memio.NewDevPort(devPort)
		if err != nil {
			return nil, nil, err
		}
		return cmos.NewRTC(cmos.NewChip(p), opts...), p.Close, nil
	}
	// ioperm only covers the calling thread.
	runtime.LockOSThread()
	if err := memio.Ioperm(0x70, 2); err != nil {
		runtime.UnlockOSThread()
		return nil, nil, err
	}
	closer := func() error {
		runtime.UnlockOSThread()
		return nil
	}
	return cmos.NewRTC(cmos.GetCMOS(), opts...), closer, nil
}

func setSystemTime(t time.Time) error {
	tv := unix.NsecToTimeval(t.UnixNano())
	return unix.Settimeofday(&tv)
}
