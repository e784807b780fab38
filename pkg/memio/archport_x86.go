// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build amd64 || 386
// +build amd64 386

package memio

// ArchPort accesses I/O ports with the inb and outb instructions.
//
// The caller must hold I/O privilege for every address passed in. Without
// it the instruction faults and the process dies; no error is returned.
type ArchPort struct{}

var _ PortReadWriter = ArchPort{}

// In reads a byte from port addr.
func (ArchPort) In(addr uint16) (uint8, error) {
	return archInb(addr), nil
}

// Out writes data to port addr.
func (ArchPort) Out(addr uint16, data uint8) error {
	archOutb(addr, data)
	return nil
}

//go:noescape
func archInb(port uint16) uint8

//go:noescape
func archOutb(port uint16, data uint8)
