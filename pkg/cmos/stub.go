// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmos

// StubTimestamp is what Stub reports: 2000-01-01T00:00:00Z.
const StubTimestamp = 946684800

// Stub is a Clock for machines without x86 port I/O. It never touches
// hardware.
type Stub struct{}

var _ Clock = Stub{}

// UnixTimestamp returns StubTimestamp.
func (Stub) UnixTimestamp() (uint64, error) {
	return StubTimestamp, nil
}

// SetUnixTimestamp does nothing.
func (Stub) SetUnixTimestamp(uint64) error {
	return nil
}
