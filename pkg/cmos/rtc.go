// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmos

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a timestamp does not fit in the
// century and year registers.
var ErrOutOfRange = errors.New("cmos: timestamp after year 9999")

// defaultCentury is assumed when no century register is usable.
const defaultCentury = 20

// Clock reads and sets a wall clock as Unix seconds in UTC.
type Clock interface {
	UnixTimestamp() (uint64, error)
	SetUnixTimestamp(ts uint64) error
}

// Registers is a raw snapshot of the clock registers.
type Registers struct {
	Seconds uint8
	Minutes uint8
	Hours   uint8
	Day     uint8
	Month   uint8
	Year    uint8
	Century uint8
	StatusB uint8
}

// RTC is the CMOS real-time clock. It holds no state of its own: every
// call is a fresh register transaction. RTC does no locking, callers
// sharing one chip between goroutines must serialize.
type RTC struct {
	chip       *CMOSChip
	centuryReg uint8 // 0 disables the century register
	maxSpins   int
}

var _ Clock = (*RTC)(nil)

// Option configures an RTC.
type Option func(*RTC)

// WithCenturyRegister selects the register holding the century.
func WithCenturyRegister(reg uint8) Option {
	return func(r *RTC) {
		r.centuryReg = reg
	}
}

// WithoutCentury ignores any century register; two digit years are
// taken to be 20yy.
func WithoutCentury() Option {
	return func(r *RTC) {
		r.centuryReg = 0
	}
}

// WithMaxSpins bounds the update-in-progress wait, and the number of
// extra passes Snapshot makes while the registers keep changing. The
// default waits forever.
func WithMaxSpins(n int) Option {
	return func(r *RTC) {
		r.maxSpins = n
	}
}

// NewRTC returns an RTC on c.
func NewRTC(c *CMOSChip, opts ...Option) *RTC {
	r := &RTC{
		chip:       c,
		centuryReg: RegCentury,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Snapshot reads the date and time registers together with status
// register B. The fields are read until two consecutive passes agree, so
// a tick between the update wait and the reads is not seen torn.
func (r *RTC) Snapshot() (Registers, error) {
	b, err := r.chip.Read(RegStatusB)
	if err != nil {
		return Registers{}, err
	}
	prev, err := r.readFields()
	if err != nil {
		return Registers{}, err
	}
	for i := 0; r.maxSpins <= 0 || i < r.maxSpins; i++ {
		cur, err := r.readFields()
		if err != nil {
			return Registers{}, err
		}
		if cur == prev {
			cur.StatusB = b
			return cur, nil
		}
		prev = cur
	}
	return Registers{}, fmt.Errorf("registers still changing after %d passes: %w", r.maxSpins+1, ErrUpdateTimeout)
}

func (r *RTC) readFields() (Registers, error) {
	var regs Registers
	if err := r.chip.WaitUpdate(r.maxSpins); err != nil {
		return regs, err
	}
	for _, f := range []struct {
		reg uint8
		v   *uint8
	}{
		{RegSeconds, &regs.Seconds},
		{RegMinutes, &regs.Minutes},
		{RegHours, &regs.Hours},
		{RegDay, &regs.Day},
		{RegMonth, &regs.Month},
		{RegYear, &regs.Year},
	} {
		v, err := r.chip.Read(f.reg)
		if err != nil {
			return regs, fmt.Errorf("reading register %#x: %w", f.reg, err)
		}
		*f.v = v
	}
	if r.centuryReg != 0 {
		v, err := r.chip.Read(r.centuryReg)
		if err != nil {
			return regs, fmt.Errorf("reading century register %#x: %w", r.centuryReg, err)
		}
		regs.Century = v
	}
	return regs, nil
}

// DateTime decodes the registers according to status register B.
func (r *RTC) DateTime(regs Registers) DateTime {
	mode := ModeFromStatusB(regs.StatusB)
	dec := func(v uint8) int {
		if mode.BCD {
			return int(BCDToBin(v))
		}
		return int(v)
	}

	hours := regs.Hours
	pm := false
	if !mode.Hour24 {
		pm = hours&hourPM != 0
		hours &^= hourPM
	}
	hour := dec(hours)
	if !mode.Hour24 {
		hour %= 12
		if pm {
			hour += 12
		}
	}

	century := defaultCentury
	if r.centuryReg != 0 {
		if c := dec(regs.Century); plausibleCentury(c) {
			century = c
		}
	}

	return DateTime{
		Year:   century*100 + dec(regs.Year),
		Month:  dec(regs.Month),
		Day:    dec(regs.Day),
		Hour:   hour,
		Minute: dec(regs.Minutes),
		Second: dec(regs.Seconds),
	}
}

// Registers encodes d in the given mode. Century is always filled in.
func (m Mode) Registers(d DateTime) Registers {
	enc := func(v int) uint8 {
		if m.BCD {
			return BinToBCD(uint8(v))
		}
		return uint8(v)
	}

	var hours uint8
	if m.Hour24 {
		hours = enc(d.Hour)
	} else {
		h := d.Hour % 12
		if h == 0 {
			h = 12
		}
		hours = enc(h)
		if d.Hour >= 12 {
			hours |= hourPM
		}
	}

	return Registers{
		Seconds: enc(d.Second),
		Minutes: enc(d.Minute),
		Hours:   hours,
		Day:     enc(d.Day),
		Month:   enc(d.Month),
		Year:    enc(d.Year % 100),
		Century: enc(d.Year / 100),
	}
}

// UnixTimestamp reads the clock.
func (r *RTC) UnixTimestamp() (uint64, error) {
	regs, err := r.Snapshot()
	if err != nil {
		return 0, err
	}
	return r.DateTime(regs).Unix(), nil
}

// SetUnixTimestamp writes ts to the clock in whatever BCD and 12/24 hour
// mode the chip is in. The mode registers are left alone. The century is
// only written if the century register currently holds a century.
func (r *RTC) SetUnixTimestamp(ts uint64) error {
	if ts > MaxTimestamp {
		return fmt.Errorf("%d: %w", ts, ErrOutOfRange)
	}
	mode, err := r.chip.Mode()
	if err != nil {
		return err
	}
	regs := mode.Registers(FromUnix(ts))

	writes := []regValue{
		{RegSeconds, regs.Seconds},
		{RegMinutes, regs.Minutes},
		{RegHours, regs.Hours},
		{RegDay, regs.Day},
		{RegMonth, regs.Month},
		{RegYear, regs.Year},
	}
	if r.centuryReg != 0 {
		cur, err := r.chip.Read(r.centuryReg)
		if err != nil {
			return fmt.Errorf("reading century register %#x: %w", r.centuryReg, err)
		}
		dec := int(cur)
		if mode.BCD {
			dec = int(BCDToBin(cur))
		}
		if plausibleCentury(dec) {
			writes = append(writes, regValue{r.centuryReg, regs.Century})
		}
	}
	for _, w := range writes {
		if err := r.chip.Write(w.reg, w.v); err != nil {
			return fmt.Errorf("writing register %#x: %w", w.reg, err)
		}
	}
	return nil
}

type regValue struct {
	reg uint8
	v   uint8
}

// plausibleCentury reports whether c looks like a century rather than
// an unused or unrelated CMOS byte.
func plausibleCentury(c int) bool {
	return c >= 19 && c <= 99
}
