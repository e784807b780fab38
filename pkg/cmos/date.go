// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmos

import "fmt"

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour

	daysPer400Years = 365*400 + 97

	// Days from 0000-03-01 to 1970-01-01 in the proleptic Gregorian calendar.
	unixEpochDays = 719468

	// MaxTimestamp is 9999-12-31T23:59:59Z, the last second a two
	// register century/year pair can hold.
	MaxTimestamp = 253402300799
)

// DateTime is a broken-down UTC date and time.
type DateTime struct {
	Year   int
	Month  int // 1-12
	Day    int // 1-31
	Hour   int
	Minute int
	Second int
}

func (d DateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02dZ", d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second)
}

// Unix returns the seconds since the epoch. Dates before 1970 return 0.
func (d DateTime) Unix() uint64 {
	s := DaysFromCivil(d.Year, d.Month, d.Day)*secondsPerDay +
		int64(d.Hour*secondsPerHour+d.Minute*secondsPerMinute+d.Second)
	if s < 0 {
		return 0
	}
	return uint64(s)
}

// FromUnix breaks ts down into a DateTime.
func FromUnix(ts uint64) DateTime {
	days := int64(ts / secondsPerDay)
	rem := int(ts % secondsPerDay)
	y, m, d := CivilFromDays(days)
	return DateTime{
		Year:   y,
		Month:  m,
		Day:    d,
		Hour:   rem / secondsPerHour,
		Minute: rem % secondsPerHour / secondsPerMinute,
		Second: rem % secondsPerMinute,
	}
}

// Valid reports whether d is a real Gregorian date and time of day.
func (d DateTime) Valid() bool {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > daysIn(d.Year, d.Month) {
		return false
	}
	return d.Hour >= 0 && d.Hour < 24 && d.Minute >= 0 && d.Minute < 60 && d.Second >= 0 && d.Second < 60
}

func daysIn(year, month int) int {
	switch month {
	case 2:
		if isLeap(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	}
	return 31
}

// isLeap reports whether year has a February 29.
func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysFromCivil returns the number of days between 1970-01-01 and the
// given date. Years are counted from March so that the leap day is the
// last day of the year.
func DaysFromCivil(year, month, day int) int64 {
	y := int64(year)
	if month <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := int64(month+9) % 12 // March is 0
	doy := (153*mp+2)/5 + int64(day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*daysPer400Years + doe - unixEpochDays
}

// CivilFromDays is the inverse of DaysFromCivil.
func CivilFromDays(days int64) (year, month, day int) {
	z := days + unixEpochDays
	era := floorDiv(z, daysPer400Years)
	doe := z - era*daysPer400Years
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := (mp+2)%12 + 1
	y := yoe + era*400
	if m <= 2 {
		y++
	}
	return int(y), int(m), int(d)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
