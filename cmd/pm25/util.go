// Copyright 2025 The PMSense Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/pmsense/go-pm25"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/uart/uartreg"
	"periph.io/x/host/v3"
)

// newSensor opens the bus named by the root flags and attaches the driver
// to it. The returned closer releases the bus.
func newSensor(c *rootConfig) (*pm25.Dev, io.Closer, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, errors.Wrap(err, "failed to initialize host")
	}

	opts := pm25.DefaultOpts
	if c.resetPin != "" {
		p := gpioreg.ByName(c.resetPin)
		if p == nil {
			return nil, nil, errors.Errorf("no GPIO pin named %q", c.resetPin)
		}
		opts.ResetPin = p
	}

	switch c.transport {
	case "i2c":
		addr, err := parseAddr(c.addr)
		if err != nil {
			return nil, nil, err
		}
		b, err := i2creg.Open(c.bus)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to open I²C bus")
		}
		d, err := pm25.NewI2C(b, addr, &opts)
		if err != nil {
			_ = b.Close()
			return nil, nil, err
		}
		return d, b, nil

	case "uart":
		p, err := uartreg.Open(c.port)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to open UART")
		}
		d, err := pm25.NewUART(p, &opts)
		if err != nil {
			_ = p.Close()
			return nil, nil, err
		}
		return d, p, nil

	default:
		return nil, nil, errors.Errorf("unknown transport %q", c.transport)
	}
}

// parseAddr interprets an I²C address flag value. An empty string selects
// the fixed PMSA003I address.
func parseAddr(s string) (uint16, error) {
	if s == "" {
		return pm25.SensorAddress, nil
	}
	addr, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid i2c address %q", s)
	}
	return uint16(addr), nil
}

func writeJSON(w io.Writer, v interface{}) error {
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
