// Copyright 2025 The PMSense Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pm25

import (
	"encoding/binary"
	"errors"
	"testing"
)

// testWords are the data words used to build frames for the tests, in
// frame order.
var testWords = [12]uint16{
	12, 24, 30, // standard PM1.0/PM2.5/PM10
	11, 22, 28, // environmental PM1.0/PM2.5/PM10
	1234, 567, 89, 21, 8, 3, // particle counts 0.3um..10um
}

// makeFrame builds a well formed 32 byte frame around the given data
// words.
func makeFrame(words [12]uint16) []byte {
	buf := make([]byte, frameSize)
	buf[0] = frameStart1
	buf[1] = frameStart2
	binary.BigEndian.PutUint16(buf[2:4], frameDataLen)
	for i, w := range words {
		binary.BigEndian.PutUint16(buf[4+2*i:6+2*i], w)
	}
	binary.BigEndian.PutUint16(buf[30:32], frameChecksum(buf))
	return buf
}

func TestDecodeFrame(t *testing.T) {
	r := Reading{}
	if err := decodeFrame(makeFrame(testWords), &r, true); err != nil {
		t.Fatal(err)
	}
	expected := Reading{
		PM1Std:         12,
		PM25Std:        24,
		PM10Std:        30,
		PM1Env:         11,
		PM25Env:        22,
		PM10Env:        28,
		Particles03um:  1234,
		Particles05um:  567,
		Particles10um:  89,
		Particles25um:  21,
		Particles50um:  8,
		Particles100um: 3,
	}
	if r != expected {
		t.Errorf("decodeFrame() = %#v, expected %#v", r, expected)
	}
}

func TestDecodeFrameBadHeader(t *testing.T) {
	buf := makeFrame(testWords)
	buf[1] = 0x00
	r := Reading{}
	if err := decodeFrame(buf, &r, true); !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("expected ErrInvalidHeader, got %v", err)
	}
}

func TestDecodeFrameBadLength(t *testing.T) {
	buf := makeFrame(testWords)
	binary.BigEndian.PutUint16(buf[2:4], 20)
	r := Reading{}
	if err := decodeFrame(buf, &r, true); !errors.Is(err, ErrFrameLength) {
		t.Errorf("expected ErrFrameLength, got %v", err)
	}
}

func TestDecodeFrameBadChecksum(t *testing.T) {
	buf := makeFrame(testWords)
	buf[5] ^= 0xff
	r := Reading{}
	if err := decodeFrame(buf, &r, true); !errors.Is(err, ErrChecksum) {
		t.Errorf("expected ErrChecksum, got %v", err)
	}

	// The same frame passes with validation disabled since header and
	// length are intact.
	if err := decodeFrame(buf, &r, false); err != nil {
		t.Errorf("expected corrupt word to decode with validation off, got %v", err)
	}
}

func TestFrameChecksum(t *testing.T) {
	// 0x42+0x4D+0x00+0x1C = 0xAB, remaining bytes zero.
	buf := make([]byte, frameSize)
	buf[0] = frameStart1
	buf[1] = frameStart2
	binary.BigEndian.PutUint16(buf[2:4], frameDataLen)
	if sum := frameChecksum(buf); sum != 0xAB {
		t.Errorf("frameChecksum() = 0x%04x, expected 0x00ab", sum)
	}
}

func TestStrings(t *testing.T) {
	r := Reading{PM1Env: 5, PM25Env: 10, PM10Env: 15}
	if s := r.String(); s != "PM1.0: 5µg/m³ PM2.5: 10µg/m³ PM10: 15µg/m³" {
		t.Errorf("unexpected Reading.String(): %q", s)
	}
	if s := ParticleCount(42).String(); s != "42/0.1L" {
		t.Errorf("unexpected ParticleCount.String(): %q", s)
	}
}
