// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !amd64 && !386
// +build !amd64,!386

package cmos

// New returns a Stub, since this architecture has no port I/O.
func New() Clock {
	return Stub{}
}
