// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memio

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// DefaultDevPort is the character device exposing the I/O port space.
const DefaultDevPort = "/dev/port"

// DevPort reads and writes ports through a /dev/port style file, where
// the file offset is the port address.
type DevPort struct {
	f *os.File
}

var _ PortReadWriter = (*DevPort)(nil)

// NewDevPort opens path for port access. Callers must Close it.
func NewDevPort(path string) (*DevPort, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return &DevPort{f: f}, nil
}

// In reads a byte from port addr.
func (p *DevPort) In(addr uint16) (uint8, error) {
	var b [1]byte
	n, err := unix.Pread(int(p.f.Fd()), b[:], int64(addr))
	if err != nil {
		return 0, fmt.Errorf("reading port %#x: %w", addr, err)
	}
	if n != 1 {
		return 0, fmt.Errorf("reading port %#x: short read", addr)
	}
	return b[0], nil
}

// Out writes data to port addr.
func (p *DevPort) Out(addr uint16, data uint8) error {
	n, err := unix.Pwrite(int(p.f.Fd()), []byte{data}, int64(addr))
	if err != nil {
		return fmt.Errorf("writing port %#x: %w", addr, err)
	}
	if n != 1 {
		return fmt.Errorf("writing port %#x: short write", addr)
	}
	return nil
}

// Close releases the underlying file.
func (p *DevPort) Close() error {
	return p.f.Close()
}
