// Copyright 2025 The PMSense Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"io"
	"text/template"
	"time"

	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/pmsense/go-pm25"
)

type readConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	json       bool
}

// report is the output of a single acquisition.
type report struct {
	Time     time.Time
	Reading  pm25.Reading
	AQI      int
	Category string
}

func (c *readConfig) Exec(ctx context.Context, _ []string) error {
	d, closer, err := newSensor(c.rootConfig)
	if err != nil {
		return err
	}
	defer closer.Close()
	defer d.Halt()

	r := pm25.Reading{}
	if err := d.Sense(&r); err != nil {
		return err
	}

	aqi := r.AQI()
	rep := report{
		Time:     time.Now(),
		Reading:  r,
		AQI:      aqi,
		Category: pm25.AQICategory(aqi).String(),
	}
	if c.json {
		return writeJSON(c.out, &rep)
	}
	return writeText(c.out, &rep)
}

const readingTemplate = `Concentration (standard):
    PM1.0 {{ .Reading.PM1Std }}  PM2.5 {{ .Reading.PM25Std }}  PM10 {{ .Reading.PM10Std }}

Concentration (environmental):
    PM1.0 {{ .Reading.PM1Env }}  PM2.5 {{ .Reading.PM25Env }}  PM10 {{ .Reading.PM10Env }}

Particle counts:
    >0.3µm {{ .Reading.Particles03um }}
    >0.5µm {{ .Reading.Particles05um }}
    >1.0µm {{ .Reading.Particles10um }}
    >2.5µm {{ .Reading.Particles25um }}
    >5.0µm {{ .Reading.Particles50um }}
    >10µm  {{ .Reading.Particles100um }}

AQI {{ .AQI }} ({{ .Category }})
`

func writeText(w io.Writer, rep *report) error {
	t, err := template.New("reading").Parse(readingTemplate)
	if err != nil {
		return err
	}
	return t.Execute(w, rep)
}

func newReadCmd(rootConfig *rootConfig, out io.Writer) *ffcli.Command {
	cfg := readConfig{
		rootConfig: rootConfig,
		out:        out,
	}

	fs := flag.NewFlagSet("pm25 read", flag.ExitOnError)
	fs.BoolVar(&cfg.json, "json", false, "output as JSON")
	rootConfig.registerFlags(fs)

	return &ffcli.Command{
		Name:       "read",
		ShortUsage: "pm25 read [flags]",
		ShortHelp:  "Read one frame from the sensor and print it.",
		FlagSet:    fs,
		Exec:       cfg.Exec,
	}
}
