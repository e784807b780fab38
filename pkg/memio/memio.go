// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memio transfers single bytes to and from x86 I/O ports.
//
// Two backends are provided: ArchPort issues the in/out instructions
// directly and requires that the process already holds I/O privilege for
// the ports it touches (see Ioperm), and DevPort goes through the Linux
// /dev/port character device.
package memio

// PortReader reads a byte from an I/O port.
type PortReader interface {
	In(addr uint16) (uint8, error)
}

// PortWriter writes a byte to an I/O port.
type PortWriter interface {
	Out(addr uint16, data uint8) error
}

// PortReadWriter is implemented by every port backend.
type PortReadWriter interface {
	PortReader
	PortWriter
}
