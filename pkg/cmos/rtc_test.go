// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmos

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// 2025-08-14T18:54:56Z
const refTimestamp = 1755197696

func (f *fakeCMOS) load(regs Registers) {
	f.regs[RegSeconds] = regs.Seconds
	f.regs[RegMinutes] = regs.Minutes
	f.regs[RegHours] = regs.Hours
	f.regs[RegDay] = regs.Day
	f.regs[RegMonth] = regs.Month
	f.regs[RegYear] = regs.Year
	f.regs[RegCentury] = regs.Century
	f.regs[RegStatusB] = regs.StatusB
}

func (f *fakeCMOS) dump() Registers {
	return Registers{
		Seconds: f.regs[RegSeconds],
		Minutes: f.regs[RegMinutes],
		Hours:   f.regs[RegHours],
		Day:     f.regs[RegDay],
		Month:   f.regs[RegMonth],
		Year:    f.regs[RegYear],
		Century: f.regs[RegCentury],
		StatusB: f.regs[RegStatusB],
	}
}

func TestUnixTimestamp(t *testing.T) {
	for _, tt := range []struct {
		name string
		regs Registers
		opts []Option
		want DateTime
	}{
		{
			name: "bcd 24h",
			regs: Registers{Seconds: 0x56, Minutes: 0x54, Hours: 0x18, Day: 0x14, Month: 0x08, Year: 0x25, Century: 0x20, StatusB: 0x02},
			want: DateTime{2025, 8, 14, 18, 54, 56},
		},
		{
			name: "binary 24h",
			regs: Registers{Seconds: 56, Minutes: 54, Hours: 18, Day: 14, Month: 8, Year: 25, Century: 20, StatusB: 0x06},
			want: DateTime{2025, 8, 14, 18, 54, 56},
		},
		{
			name: "bcd 12h pm",
			regs: Registers{Seconds: 0x56, Minutes: 0x54, Hours: 0x86, Day: 0x14, Month: 0x08, Year: 0x25, Century: 0x20, StatusB: 0x00},
			want: DateTime{2025, 8, 14, 18, 54, 56},
		},
		{
			name: "bcd 12h midnight",
			regs: Registers{Hours: 0x12, Day: 0x01, Month: 0x01, Year: 0x00, Century: 0x20},
			want: DateTime{2000, 1, 1, 0, 0, 0},
		},
		{
			name: "bcd 12h noon",
			regs: Registers{Hours: 0x92, Day: 0x01, Month: 0x01, Year: 0x00, Century: 0x20},
			want: DateTime{2000, 1, 1, 12, 0, 0},
		},
		{
			name: "binary 12h am",
			regs: Registers{Hours: 11, Day: 29, Month: 2, Year: 24, Century: 20, StatusB: 0x04},
			want: DateTime{2024, 2, 29, 11, 0, 0},
		},
		{
			name: "binary 12h pm",
			regs: Registers{Hours: 0x80 | 11, Day: 29, Month: 2, Year: 24, Century: 20, StatusB: 0x04},
			want: DateTime{2024, 2, 29, 23, 0, 0},
		},
		{
			name: "century 21 from register",
			regs: Registers{Day: 0x01, Month: 0x01, Year: 0x00, Century: 0x21, StatusB: 0x02},
			want: DateTime{2100, 1, 1, 0, 0, 0},
		},
		{
			name: "century 19 from register",
			regs: Registers{Day: 0x31, Month: 0x12, Year: 0x99, Century: 0x19, StatusB: 0x02},
			want: DateTime{1999, 12, 31, 0, 0, 0},
		},
		{
			name: "unused century register falls back",
			regs: Registers{Day: 0x01, Month: 0x01, Year: 0x30, Century: 0x00, StatusB: 0x02},
			want: DateTime{2030, 1, 1, 0, 0, 0},
		},
		{
			name: "century register disabled",
			regs: Registers{Day: 0x01, Month: 0x01, Year: 0x30, Century: 0x21, StatusB: 0x02},
			opts: []Option{WithoutCentury()},
			want: DateTime{2030, 1, 1, 0, 0, 0},
		},
		{
			name: "century register elsewhere",
			regs: Registers{Day: 0x01, Month: 0x01, Year: 0x30, StatusB: 0x02},
			opts: []Option{WithCenturyRegister(0x48)},
			want: DateTime{2130, 1, 1, 0, 0, 0},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeCMOS{busy: 2}
			f.load(tt.regs)
			f.regs[0x48] = 0x21
			got, err := NewRTC(NewChip(f), tt.opts...).UnixTimestamp()
			require.NoError(t, err)
			require.Equal(t, tt.want.Unix(), got, "got %v", FromUnix(got))
		})
	}
}

func TestSetUnixTimestamp(t *testing.T) {
	for _, tt := range []struct {
		name    string
		ts      uint64
		statusB uint8
		century uint8
		want    Registers
	}{
		{
			name:    "bcd 24h",
			ts:      refTimestamp,
			statusB: 0x02,
			century: 0x20,
			want:    Registers{Seconds: 0x56, Minutes: 0x54, Hours: 0x18, Day: 0x14, Month: 0x08, Year: 0x25, Century: 0x20, StatusB: 0x02},
		},
		{
			name:    "bcd 12h",
			ts:      refTimestamp,
			statusB: 0x00,
			century: 0x20,
			want:    Registers{Seconds: 0x56, Minutes: 0x54, Hours: 0x86, Day: 0x14, Month: 0x08, Year: 0x25, Century: 0x20, StatusB: 0x00},
		},
		{
			name:    "binary 24h",
			ts:      refTimestamp,
			statusB: 0x06,
			century: 20,
			want:    Registers{Seconds: 56, Minutes: 54, Hours: 18, Day: 14, Month: 8, Year: 25, Century: 20, StatusB: 0x06},
		},
		{
			name:    "binary 12h midnight",
			ts:      946684800,
			statusB: 0x04,
			century: 20,
			want:    Registers{Hours: 12, Day: 1, Month: 1, Year: 0, Century: 20, StatusB: 0x04},
		},
		{
			name:    "next century",
			ts:      4102444800,
			statusB: 0x02,
			century: 0x20,
			want:    Registers{Day: 0x01, Month: 0x01, Year: 0x00, Century: 0x21, StatusB: 0x02},
		},
		{
			name:    "no century register present",
			ts:      4102444800,
			statusB: 0x02,
			century: 0xff,
			want:    Registers{Day: 0x01, Month: 0x01, Year: 0x00, Century: 0xff, StatusB: 0x02},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeCMOS{}
			f.regs[RegStatusB] = tt.statusB
			f.regs[RegCentury] = tt.century
			require.NoError(t, NewRTC(NewChip(f)).SetUnixTimestamp(tt.ts))
			if diff := cmp.Diff(tt.want, f.dump()); diff != "" {
				t.Errorf("registers after SetUnixTimestamp(%d) mismatch (-want +got):\n%s", tt.ts, diff)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, statusB := range []uint8{0x00, 0x02, 0x04, 0x06} {
		for _, ts := range []uint64{
			0,
			946684800,
			951782400,
			1709164800,
			refTimestamp,
			4102358399,
			4102444800,
			MaxTimestamp,
		} {
			f := &fakeCMOS{}
			f.regs[RegStatusB] = statusB
			f.regs[RegCentury] = encodedCentury(statusB)
			r := NewRTC(NewChip(f))
			require.NoError(t, r.SetUnixTimestamp(ts))
			got, err := r.UnixTimestamp()
			require.NoError(t, err)
			require.Equal(t, ts, got, "status B %#x", statusB)
			require.Equal(t, statusB, f.regs[RegStatusB], "mode register changed")
		}
	}
}

// encodedCentury returns 20 in the encoding selected by statusB.
func encodedCentury(statusB uint8) uint8 {
	return ModeFromStatusB(statusB).Registers(DateTime{Year: 2000}).Century
}

func TestSetOutOfRange(t *testing.T) {
	f := &fakeCMOS{}
	err := NewRTC(NewChip(f)).SetUnixTimestamp(MaxTimestamp + 1)
	require.ErrorIs(t, err, ErrOutOfRange)
	require.Empty(t, f.trace, "registers touched")
}

func TestSetDoesNotWaitForUpdate(t *testing.T) {
	f := &fakeCMOS{busy: 1 << 20}
	f.regs[RegStatusB] = 0x02
	require.NoError(t, NewRTC(NewChip(f), WithoutCentury()).SetUnixTimestamp(refTimestamp))
	require.Equal(t, uint8(0x25), f.regs[RegYear])
}

func TestReadOrder(t *testing.T) {
	f := &fakeCMOS{busy: 2}
	f.load(Registers{Seconds: 0x56, Minutes: 0x54, Hours: 0x18, Day: 0x14, Month: 0x08, Year: 0x25, Century: 0x20, StatusB: 0x02})
	got, err := NewRTC(NewChip(f)).UnixTimestamp()
	require.NoError(t, err)
	require.Equal(t, uint64(refTimestamp), got)

	fields := []string{"in 0x0", "in 0x2", "in 0x4", "in 0x7", "in 0x8", "in 0x9", "in 0x32"}
	want := []string{"in 0xb", "in 0xa", "in 0xa", "in 0xa"}
	want = append(want, fields...)
	want = append(want, "in 0xa")
	want = append(want, fields...)
	if diff := cmp.Diff(want, f.trace); diff != "" {
		t.Errorf("register accesses mismatch (-want +got):\n%s", diff)
	}
}

// Reading the date registers before the update flag clears sees garbage.
func TestReadBeforeUpdateIsTorn(t *testing.T) {
	f := &fakeCMOS{busy: 1}
	f.regs[RegSeconds] = 0x56
	v, err := NewChip(f).Read(RegSeconds)
	require.NoError(t, err)
	require.Equal(t, uint8(0xff), v)
}

func TestUpdateTimeout(t *testing.T) {
	f := &fakeCMOS{busy: 10}
	_, err := NewRTC(NewChip(f), WithMaxSpins(5)).UnixTimestamp()
	require.ErrorIs(t, err, ErrUpdateTimeout)
}

// changingCMOS advances the seconds register on every read of it.
type changingCMOS struct {
	fakeCMOS
	reads int
}

func (f *changingCMOS) In(addr uint16) (uint8, error) {
	v, err := f.fakeCMOS.In(addr)
	if f.index == RegSeconds {
		f.reads++
		f.regs[RegSeconds] = BinToBCD(uint8(f.reads % 60))
	}
	return v, err
}

func TestSnapshotNeverSettles(t *testing.T) {
	f := &changingCMOS{}
	f.regs[RegStatusB] = 0x02
	_, err := NewRTC(NewChip(f), WithMaxSpins(3)).Snapshot()
	require.ErrorIs(t, err, ErrUpdateTimeout)
	require.Equal(t, 4, f.reads)
}

func TestPortError(t *testing.T) {
	want := errors.New("no such port")
	r := NewRTC(NewChip(&fakeCMOS{err: want}))
	_, err := r.UnixTimestamp()
	require.ErrorIs(t, err, want)
	require.ErrorIs(t, r.SetUnixTimestamp(refTimestamp), want)
}

// tickingCMOS advances the seconds register once, between the first and
// second pass over the date registers.
type tickingCMOS struct {
	fakeCMOS
	reads int
}

func (f *tickingCMOS) In(addr uint16) (uint8, error) {
	if f.index == RegYear {
		f.reads++
		if f.reads == 1 {
			f.regs[RegSeconds]++
		}
	}
	return f.fakeCMOS.In(addr)
}

func TestSnapshotRereadsAfterTick(t *testing.T) {
	f := &tickingCMOS{}
	f.load(Registers{Seconds: 0x56, Minutes: 0x54, Hours: 0x18, Day: 0x14, Month: 0x08, Year: 0x25, Century: 0x20, StatusB: 0x02})
	got, err := NewRTC(NewChip(f)).UnixTimestamp()
	require.NoError(t, err)
	require.Equal(t, uint64(refTimestamp+1), got)
	require.Equal(t, 3, f.reads)
}

func TestStub(t *testing.T) {
	var c Clock = Stub{}
	for i := 0; i < 3; i++ {
		got, err := c.UnixTimestamp()
		require.NoError(t, err)
		require.Equal(t, uint64(946684800), got)
		require.NoError(t, c.SetUnixTimestamp(refTimestamp))
	}
}
