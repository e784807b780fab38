// Copyright 2012-2020 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmos talks to the MC146818 compatible real-time clock found in
// the CMOS of x86 machines.
package cmos

import (
	"errors"

	"github.com/u-root/x86rtc/pkg/memio"
)

const (
	cmosRegPort  = 0x70
	cmosDataPort = 0x71
)

// CMOS register indices.
const (
	RegSeconds = 0x00
	RegMinutes = 0x02
	RegHours   = 0x04
	RegDay     = 0x07
	RegMonth   = 0x08
	RegYear    = 0x09
	RegStatusA = 0x0a
	RegStatusB = 0x0b

	// RegCentury is where most BIOSes keep the century (the ACPI FADT
	// usually points here). Nothing guarantees it.
	RegCentury = 0x32
)

const (
	statusAUpdateInProgress = 1 << 7

	statusB24Hour = 1 << 1
	statusBBinary = 1 << 2

	hourPM = 1 << 7
)

// ErrUpdateTimeout is returned by WaitUpdate when the update-in-progress
// flag is still set after the allowed number of polls, and by
// RTC.Snapshot when the registers never read the same twice.
var ErrUpdateTimeout = errors.New("cmos: update in progress did not clear")

// Mode describes how the date and time registers are encoded.
type Mode struct {
	BCD    bool
	Hour24 bool
}

// ModeFromStatusB extracts the encoding flags from status register B.
func ModeFromStatusB(b uint8) Mode {
	return Mode{
		BCD:    b&statusBBinary == 0,
		Hour24: b&statusB24Hour != 0,
	}
}

type CMOSChip struct {
	In  func(uint16) (uint8, error)
	Out func(uint16, uint8) error
}

// NewChip returns a CMOSChip doing its port I/O through p.
func NewChip(p memio.PortReadWriter) *CMOSChip {
	return &CMOSChip{
		In:  p.In,
		Out: p.Out,
	}
}

// Read reads register reg.
func (c *CMOSChip) Read(reg uint8) (uint8, error) {
	if err := c.Out(cmosRegPort, reg); err != nil {
		return 0, err
	}
	return c.In(cmosDataPort)
}

// Write writes data into register reg.
func (c *CMOSChip) Write(reg, data uint8) error {
	if err := c.Out(cmosRegPort, reg); err != nil {
		return err
	}
	return c.Out(cmosDataPort, data)
}

// WaitUpdate polls status register A until the update-in-progress flag
// clears. maxSpins <= 0 polls forever.
func (c *CMOSChip) WaitUpdate(maxSpins int) error {
	for i := 0; maxSpins <= 0 || i < maxSpins; i++ {
		a, err := c.Read(RegStatusA)
		if err != nil {
			return err
		}
		if a&statusAUpdateInProgress == 0 {
			return nil
		}
	}
	return ErrUpdateTimeout
}

// Mode reads status register B.
func (c *CMOSChip) Mode() (Mode, error) {
	b, err := c.Read(RegStatusB)
	if err != nil {
		return Mode{}, err
	}
	return ModeFromStatusB(b), nil
}
