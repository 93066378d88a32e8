// Copyright 2025 The PMSense Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pm25

import (
	"encoding/binary"
	"fmt"
)

const (
	// frameSize is the length of a complete data frame, header and
	// checksum included.
	frameSize = 32
	// frameStart1 and frameStart2 are the two fixed header bytes, "BM".
	frameStart1 byte = 0x42
	frameStart2 byte = 0x4D
	// frameDataLen is the value of the frame length field: the number of
	// bytes following it, data words and checksum.
	frameDataLen = 28
)

// Concentration is a particulate mass concentration in µg/m³.
type Concentration uint16

func (c Concentration) String() string {
	return fmt.Sprintf("%dµg/m³", uint16(c))
}

// ParticleCount is a number of particles per 0.1L of air.
type ParticleCount uint16

func (p ParticleCount) String() string {
	return fmt.Sprintf("%d/0.1L", uint16(p))
}

// Reading is one decoded sensor frame.
//
// The Std values use the "standard particle" calibration (CF=1) intended
// for industrial environments. The Env values are corrected for
// atmospheric environment and are the ones to report for air quality. The
// particle counts give the number of particles with a diameter above the
// named size, per 0.1L of air.
type Reading struct {
	// Mass concentrations, standard particle.
	PM1Std  Concentration
	PM25Std Concentration
	PM10Std Concentration
	// Mass concentrations, atmospheric environment.
	PM1Env  Concentration
	PM25Env Concentration
	PM10Env Concentration
	// Particle counts by minimum diameter.
	Particles03um  ParticleCount
	Particles05um  ParticleCount
	Particles10um  ParticleCount
	Particles25um  ParticleCount
	Particles50um  ParticleCount
	Particles100um ParticleCount
}

// String returns the environmental mass concentrations in a readable
// format.
func (r *Reading) String() string {
	return fmt.Sprintf("PM1.0: %s PM2.5: %s PM10: %s", r.PM1Env, r.PM25Env, r.PM10Env)
}

// frameChecksum computes the checksum of a frame: the 16-bit sum of every
// byte before the checksum field itself.
func frameChecksum(buf []byte) uint16 {
	var sum uint16
	for _, b := range buf[:frameSize-2] {
		sum += uint16(b)
	}
	return sum
}

// decodeFrame validates a 32 byte frame and unpacks the twelve data words
// into r. The header and frame length are always checked; the checksum
// check can be disabled through Opts.
func decodeFrame(buf []byte, r *Reading, validate bool) error {
	if buf[0] != frameStart1 || buf[1] != frameStart2 {
		return fmt.Errorf("pm25: got header 0x%02x%02x: %w", buf[0], buf[1], ErrInvalidHeader)
	}
	if l := binary.BigEndian.Uint16(buf[2:4]); l != frameDataLen {
		return fmt.Errorf("pm25: got frame length %d: %w", l, ErrFrameLength)
	}
	if validate {
		want := binary.BigEndian.Uint16(buf[30:32])
		if got := frameChecksum(buf); got != want {
			return fmt.Errorf("pm25: computed 0x%04x, frame has 0x%04x: %w", got, want, ErrChecksum)
		}
	}

	words := make([]uint16, 12)
	for i := range words {
		words[i] = binary.BigEndian.Uint16(buf[4+2*i : 6+2*i])
	}
	r.PM1Std = Concentration(words[0])
	r.PM25Std = Concentration(words[1])
	r.PM10Std = Concentration(words[2])
	r.PM1Env = Concentration(words[3])
	r.PM25Env = Concentration(words[4])
	r.PM10Env = Concentration(words[5])
	r.Particles03um = ParticleCount(words[6])
	r.Particles05um = ParticleCount(words[7])
	r.Particles10um = ParticleCount(words[8])
	r.Particles25um = ParticleCount(words[9])
	r.Particles50um = ParticleCount(words[10])
	r.Particles100um = ParticleCount(words[11])
	return nil
}
