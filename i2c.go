// Copyright 2025 The PMSense Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pm25

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

// SensorAddress is the I²C address of the PMSA003I. The address is fixed
// in hardware.
const SensorAddress uint16 = 0x12

// probeDelay is the wait between connection attempts. Overridden in tests.
var probeDelay = time.Second

// NewI2C returns an object that communicates with a PMSA003I sensor over
// I²C. The constant value SensorAddress should be supplied as the value
// for addr. The Opts can be nil.
//
// The sensor is sluggish after power-up, so the probe is retried for a few
// seconds before giving up.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	d, err := makeDev(&i2c.Dev{Bus: b, Addr: addr}, false, opts)
	if err != nil {
		return nil, err
	}

	// Try a few times, the device can take a moment to answer.
	var r Reading
	for i := 0; i < 5; i++ {
		d.mu.Lock()
		err = d.sense(&r)
		d.mu.Unlock()
		if err == nil {
			return d, nil
		}
		time.Sleep(probeDelay)
	}
	return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
}

// makeDev applies option defaults and the optional reset pin pulse shared
// by both transports.
func makeDev(c conn.Conn, stream bool, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	o := *opts
	if o.SyncLimit <= 0 {
		o.SyncLimit = DefaultOpts.SyncLimit
	}
	if o.ResetPin != nil {
		if err := reset(o.ResetPin); err != nil {
			return nil, fmt.Errorf("pm25: failed to reset sensor: %w", err)
		}
	}
	return &Dev{c: c, stream: stream, opts: o}, nil
}
