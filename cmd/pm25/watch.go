// Copyright 2025 The PMSense Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"time"

	"github.com/charmbracelet/log"
	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/pmsense/go-pm25"
)

type watchConfig struct {
	rootConfig *rootConfig
	interval   time.Duration
	count      int
}

func (c *watchConfig) Exec(ctx context.Context, _ []string) error {
	if c.rootConfig.verbose {
		log.SetLevel(log.DebugLevel)
	}

	d, closer, err := newSensor(c.rootConfig)
	if err != nil {
		return err
	}
	defer closer.Close()
	defer d.Halt()

	log.Debug("sensor attached", "dev", d.String(), "interval", c.interval)
	ch, err := d.SenseContinuous(c.interval)
	if err != nil {
		return err
	}

	seen := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r, ok := <-ch:
			if !ok {
				return nil
			}
			log.Info("reading",
				"pm1", int(r.PM1Env),
				"pm25", int(r.PM25Env),
				"pm10", int(r.PM10Env),
				"aqi", r.AQI(),
				"category", pm25.AQICategory(r.AQI()).String(),
			)
			seen++
			if c.count > 0 && seen >= c.count {
				return nil
			}
		}
	}
}

func newWatchCmd(rootConfig *rootConfig) *ffcli.Command {
	cfg := watchConfig{
		rootConfig: rootConfig,
	}

	fs := flag.NewFlagSet("pm25 watch", flag.ExitOnError)
	fs.DurationVar(&cfg.interval, "interval", time.Second, "time between readings")
	fs.IntVar(&cfg.count, "count", 0, "number of readings before exiting, 0 for no limit")
	rootConfig.registerFlags(fs)

	return &ffcli.Command{
		Name:       "watch",
		ShortUsage: "pm25 watch [flags]",
		ShortHelp:  "Continuously log readings from the sensor.",
		FlagSet:    fs,
		Exec:       cfg.Exec,
	}
}
