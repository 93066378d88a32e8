// Copyright 2025 The PMSense Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pm25

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/uart"
)

// playbackPort is a uart.Port that replays a canned byte stream, the
// serial counterpart of i2ctest.Playback. A non-zero delay is applied to
// every transaction to mimic a slow line.
type playbackPort struct {
	data  []byte
	delay time.Duration
}

func (p *playbackPort) String() string {
	return "playback"
}

func (p *playbackPort) Connect(f physic.Frequency, stopBit uart.Stop, parity uart.Parity, flow uart.Flow, bits int) (conn.Conn, error) {
	if f != 9600*physic.Hertz || stopBit != uart.One || parity != uart.NoParity || bits != 8 {
		return nil, errors.New("unexpected connection parameters")
	}
	return &playbackConn{data: p.data, delay: p.delay}, nil
}

type playbackConn struct {
	data  []byte
	delay time.Duration
	pos   int
}

func (c *playbackConn) String() string {
	return "playback"
}

func (c *playbackConn) Duplex() conn.Duplex {
	return conn.Full
}

func (c *playbackConn) Tx(w, r []byte) error {
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	if len(w) != 0 {
		return errors.New("unexpected write")
	}
	if c.pos+len(r) > len(c.data) {
		return io.ErrUnexpectedEOF
	}
	copy(r, c.data[c.pos:c.pos+len(r)])
	c.pos += len(r)
	return nil
}

func TestSenseUART(t *testing.T) {
	// A partial frame tail followed by two complete frames, as seen when
	// attaching to a sensor mid-stream.
	junk := []byte{0x00, 0x1C, 0x05, 0x09, 0x4D, 0x13}
	stream := append(append(junk, makeFrame(testWords)...), makeFrame(testWords)...)
	dev, err := NewUART(&playbackPort{data: stream}, nil)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		r := Reading{}
		if err := dev.Sense(&r); err != nil {
			t.Fatal(err)
		}
		if r.PM25Std != 24 {
			t.Errorf("Sense() PM25Std = %d, expected 24", r.PM25Std)
		}
		if r.Particles100um != 3 {
			t.Errorf("Sense() Particles100um = %d, expected 3", r.Particles100um)
		}
	}
}

func TestSenseUARTNoFrame(t *testing.T) {
	opts := DefaultOpts
	opts.SyncLimit = 16
	dev, err := NewUART(&playbackPort{data: make([]byte, 64)}, &opts)
	if err != nil {
		t.Fatal(err)
	}
	r := Reading{}
	if err := dev.Sense(&r); !errors.Is(err, ErrNoFrame) {
		t.Errorf("expected ErrNoFrame, got %v", err)
	}
}

func TestSenseUARTReadTimeout(t *testing.T) {
	// A line that trickles bytes with no header in sight must give up on
	// the deadline before any byte is read past it, not on SyncLimit.
	opts := DefaultOpts
	opts.ReadTimeout = 5 * time.Millisecond
	opts.SyncLimit = 1 << 20
	dev, err := NewUART(&playbackPort{data: make([]byte, 4096), delay: time.Millisecond}, &opts)
	if err != nil {
		t.Fatal(err)
	}
	r := Reading{}
	err = dev.Sense(&r)
	if !errors.Is(err, ErrNoFrame) {
		t.Fatalf("expected ErrNoFrame, got %v", err)
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("expected a deadline failure, got %v", err)
	}
}

func TestSenseUARTShortFrame(t *testing.T) {
	// The stream ends before the frame completes.
	dev, err := NewUART(&playbackPort{data: makeFrame(testWords)[:20]}, nil)
	if err != nil {
		t.Fatal(err)
	}
	r := Reading{}
	if err := dev.Sense(&r); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestSenseUARTSyncByte(t *testing.T) {
	// A stray 0x4D must not be taken for a start of frame: sync is on
	// 0x42 only and the header check happens after a full read.
	stream := append([]byte{0x4D, 0x42}, makeFrame(testWords)[1:]...)
	dev, err := NewUART(&playbackPort{data: stream}, nil)
	if err != nil {
		t.Fatal(err)
	}
	r := Reading{}
	if err := dev.Sense(&r); err != nil {
		t.Fatal(err)
	}
}
