// Copyright 2025 The PMSense Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"time"

	"github.com/charmbracelet/log"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/pkg/errors"
)

type pushConfig struct {
	rootConfig  *rootConfig
	interval    time.Duration
	url         string
	token       string
	org         string
	bucket      string
	measurement string
	sensorTag   string
}

func (c *pushConfig) Exec(ctx context.Context, _ []string) error {
	if c.rootConfig.verbose {
		log.SetLevel(log.DebugLevel)
	}
	if c.token == "" {
		return errors.New("an InfluxDB API token is required, set -token")
	}

	d, closer, err := newSensor(c.rootConfig)
	if err != nil {
		return err
	}
	defer closer.Close()
	defer d.Halt()

	client := influxdb2.NewClient(c.url, c.token)
	defer client.Close()
	writeAPI := client.WriteAPIBlocking(c.org, c.bucket)

	ch, err := d.SenseContinuous(c.interval)
	if err != nil {
		return err
	}

	tags := map[string]string{"sensor": c.sensorTag}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r, ok := <-ch:
			if !ok {
				return nil
			}
			fields := map[string]interface{}{
				"pm1_std":         int(r.PM1Std),
				"pm25_std":        int(r.PM25Std),
				"pm10_std":        int(r.PM10Std),
				"pm1_env":         int(r.PM1Env),
				"pm25_env":        int(r.PM25Env),
				"pm10_env":        int(r.PM10Env),
				"particles_03um":  int(r.Particles03um),
				"particles_05um":  int(r.Particles05um),
				"particles_10um":  int(r.Particles10um),
				"particles_25um":  int(r.Particles25um),
				"particles_50um":  int(r.Particles50um),
				"particles_100um": int(r.Particles100um),
				"aqi":             r.AQI(),
			}
			p := influxdb2.NewPoint(c.measurement, tags, fields, time.Now())
			if err := writeAPI.WritePoint(ctx, p); err != nil {
				return errors.Wrap(err, "failed to write point")
			}
			log.Debug("pushed", "pm25", int(r.PM25Env), "aqi", r.AQI())
		}
	}
}

func newPushCmd(rootConfig *rootConfig) *ffcli.Command {
	cfg := pushConfig{
		rootConfig: rootConfig,
	}

	fs := flag.NewFlagSet("pm25 push", flag.ExitOnError)
	fs.DurationVar(&cfg.interval, "interval", 10*time.Second, "time between readings")
	fs.StringVar(&cfg.url, "influx-url", "http://localhost:8086", "InfluxDB server URL")
	fs.StringVar(&cfg.token, "token", "", "InfluxDB API token")
	fs.StringVar(&cfg.org, "org", "", "InfluxDB organization")
	fs.StringVar(&cfg.bucket, "bucket", "air", "InfluxDB bucket")
	fs.StringVar(&cfg.measurement, "measurement", "particulates", "measurement name")
	fs.StringVar(&cfg.sensorTag, "sensor-tag", "pmsx003", "value of the sensor tag on written points")
	rootConfig.registerFlags(fs)

	return &ffcli.Command{
		Name:       "push",
		ShortUsage: "pm25 push [flags]",
		ShortHelp:  "Continuously write readings to InfluxDB.",
		FlagSet:    fs,
		Exec:       cfg.Exec,
	}
}
