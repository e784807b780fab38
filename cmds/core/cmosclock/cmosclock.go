// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// cmosclock reads and sets the CMOS real-time clock through its I/O ports.
//
// Synopsis:
//
//	cmosclock [-u] [--set SECONDS | -w | -s | --ntp SERVER] [--drift] [--dump]
//	          [--dev-port PATH] [--no-century] [--century-reg N]
//
// Description:
//
//	With no action flag the clock is printed as RFC 3339 UTC and Unix
//	seconds. The clock is always treated as UTC.
//
// Options:
//
//	-u, --unix:     print only the Unix timestamp
//	--set:          write SECONDS since the epoch to the clock
//	-w, --systohc:  write the system time to the clock
//	-s, --hctosys:  set the system time from the clock
//	--ntp:          write the time from an NTP server to the clock
//	--drift:        print the offset between the clock and the system time
//	--dump:         dump the raw clock registers
//	--dev-port:     use a /dev/port device instead of in/out instructions
//	--no-century:   ignore the century register, years are 20yy
//	--century-reg:  CMOS register holding the century
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/beevik/ntp"
	"github.com/cenkalti/backoff/v4"
	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	flag "github.com/spf13/pflag"

	"github.com/u-root/x86rtc/pkg/cmos"
)

var (
	unixOnly   = flag.BoolP("unix", "u", false, "print only the Unix timestamp")
	set        = flag.Uint64("set", 0, "write `SECONDS` since the epoch to the clock")
	systohc    = flag.BoolP("systohc", "w", false, "write the system time to the clock")
	hctosys    = flag.BoolP("hctosys", "s", false, "set the system time from the clock")
	ntpServer  = flag.String("ntp", "", "write the time from NTP `SERVER` to the clock")
	drift      = flag.Bool("drift", false, "print the offset between the clock and the system time")
	dump       = flag.Bool("dump", false, "dump the raw clock registers")
	devPort    = flag.String("dev-port", "", "use this /dev/port device instead of in/out instructions")
	noCentury  = flag.Bool("no-century", false, "ignore the century register")
	centuryReg = flag.Uint8("century-reg", cmos.RegCentury, "CMOS register holding the century")
)

const ntpAttempts = 3

var errActions = errors.New("only one of --set, --systohc, --hctosys and --ntp may be given")

type options struct {
	unix      bool
	set       uint64
	setGiven  bool
	systohc   bool
	hctosys   bool
	ntpServer string
	drift     bool
	dump      bool
}

type cmd struct {
	stdout io.Writer
	clock  cmos.Clock
	now    func() time.Time
	setSys func(time.Time) error
	ntp    func(server string) (time.Time, error)
	opts   options
}

func (c *cmd) run() error {
	o := c.opts
	actions := 0
	for _, b := range []bool{o.setGiven, o.systohc, o.hctosys, o.ntpServer != ""} {
		if b {
			actions++
		}
	}
	if actions > 1 {
		return errActions
	}

	switch {
	case o.setGiven:
		return c.clock.SetUnixTimestamp(o.set)
	case o.systohc:
		return c.clock.SetUnixTimestamp(uint64(c.now().Unix()))
	case o.ntpServer != "":
		t, err := c.ntp(o.ntpServer)
		if err != nil {
			return err
		}
		return c.clock.SetUnixTimestamp(uint64(t.Unix()))
	case o.hctosys:
		ts, err := c.clock.UnixTimestamp()
		if err != nil {
			return err
		}
		return c.setSys(time.Unix(int64(ts), 0))
	}

	if o.dump {
		return c.dumpRegisters()
	}

	ts, err := c.clock.UnixTimestamp()
	if err != nil {
		return err
	}
	rtc := time.Unix(int64(ts), 0).UTC()
	if o.drift {
		sys := c.now()
		rel := humanize.RelTime(sys, rtc, "ahead of", "behind")
		if rel == "now" {
			_, err = fmt.Fprintf(c.stdout, "RTC matches system time\n")
		} else {
			_, err = fmt.Fprintf(c.stdout, "RTC is %s system time (%v)\n", rel, rtc.Sub(sys).Round(time.Second))
		}
		return err
	}
	if o.unix {
		_, err = fmt.Fprintf(c.stdout, "%d\n", ts)
		return err
	}
	_, err = fmt.Fprintf(c.stdout, "%s %d\n", rtc.Format(time.RFC3339), ts)
	return err
}

func (c *cmd) dumpRegisters() error {
	r, ok := c.clock.(*cmos.RTC)
	if !ok {
		return fmt.Errorf("no registers to dump on %T", c.clock)
	}
	regs, err := r.Snapshot()
	if err != nil {
		return err
	}
	spew.Fdump(c.stdout, regs)
	d := r.DateTime(regs)
	if _, err := fmt.Fprintf(c.stdout, "%+v\n%s\n", cmos.ModeFromStatusB(regs.StatusB), d); err != nil {
		return err
	}
	if !d.Valid() {
		_, err = fmt.Fprintf(c.stdout, "registers do not hold a valid date\n")
	}
	return err
}

func queryNTP(server string) (time.Time, error) {
	var t time.Time
	op := func() error {
		resp, err := ntp.Query(server)
		if err != nil {
			return err
		}
		if err := resp.Validate(); err != nil {
			return err
		}
		t = time.Now().Add(resp.ClockOffset)
		return nil
	}
	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), ntpAttempts-1)
	if err := backoff.Retry(op, b); err != nil {
		return time.Time{}, fmt.Errorf("querying %s: %w", server, err)
	}
	return t, nil
}

func main() {
	flag.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
		os.Exit(2)
	}

	var copts []cmos.Option
	if *noCentury {
		copts = append(copts, cmos.WithoutCentury())
	} else {
		copts = append(copts, cmos.WithCenturyRegister(*centuryReg))
	}
	clock, closer, err := openClock(*devPort, copts...)
	if err != nil {
		log.Fatal(err)
	}

	c := &cmd{
		stdout: os.Stdout,
		clock:  clock,
		now:    time.Now,
		setSys: setSystemTime,
		ntp:    queryNTP,
		opts: options{
			unix:      *unixOnly,
			set:       *set,
			setGiven:  flag.CommandLine.Changed("set"),
			systohc:   *systohc,
			hctosys:   *hctosys,
			ntpServer: *ntpServer,
			drift:     *drift,
			dump:      *dump,
		},
	}
	err = c.run()
	if cerr := closer(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Fatal(err)
	}
}
