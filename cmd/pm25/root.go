// Copyright 2025 The PMSense Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"

	"github.com/peterbourgon/ff/v3/ffcli"
)

type rootConfig struct {
	verbose   bool
	transport string
	bus       string
	addr      string
	port      string
	resetPin  string
}

func (c *rootConfig) registerFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.verbose, "v", false, "increase log verbosity")
	fs.StringVar(&c.transport, "transport", "i2c", "transport type, i2c or uart")
	fs.StringVar(&c.bus, "bus", "", "i2c bus to use, empty for the first available")
	fs.StringVar(&c.addr, "addr", "", "i2c address in hex, empty for the default 0x12")
	fs.StringVar(&c.port, "port", "/dev/ttyAMA0", "serial port the sensor is wired to")
	fs.StringVar(&c.resetPin, "reset-pin", "", "GPIO pin wired to the sensor RESET line")
}

func (c *rootConfig) Exec(context.Context, []string) error {
	return flag.ErrHelp
}

func newRootCmd() (*ffcli.Command, *rootConfig) {
	var cfg rootConfig

	fs := flag.NewFlagSet("pm25", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "pm25",
		ShortUsage: "pm25 [flags] <subcommand>",
		ShortHelp:  "Read Plantower PM2.5 air quality sensors.",
		FlagSet:    fs,
		Exec:       cfg.Exec,
	}, &cfg
}
