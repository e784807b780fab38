// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmos

// BCDToBin decodes a packed two digit BCD byte. Nibbles above 9 are not
// checked.
func BCDToBin(b uint8) uint8 {
	return (b>>4)*10 + b&0x0f
}

// BinToBCD packs n, which must be in [0, 99], as two BCD digits.
func BinToBCD(n uint8) uint8 {
	return (n/10)<<4 | n%10
}
