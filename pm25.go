// Copyright 2025 The PMSense Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pm25

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

// Opts holds the configuration options for the device.
type Opts struct {
	// ReadTimeout bounds the wait for a start of frame. It only matters
	// on UART where the driver has to scan the byte stream for the
	// header; once a frame has started, the rest of it is read without a
	// deadline. 0 means no timeout.
	ReadTimeout time.Duration
	// SyncLimit is the maximum number of bytes scanned on the serial line
	// while looking for the start of a frame. Leave 0 to use the default.
	SyncLimit int
	// ValidateChecksum enables verification of the frame checksum.
	// Default is true.
	ValidateChecksum bool
	// ResetPin is an optional GPIO pin wired to the sensor RESET line.
	// When set, the sensor is reset during setup. The sensor needs about
	// a second after a reset before it produces frames.
	ResetPin gpio.PinOut
}

// DefaultOpts holds the default configuration options for the device.
var DefaultOpts = Opts{
	ReadTimeout:      3 * time.Second,
	SyncLimit:        8 * frameSize,
	ValidateChecksum: true,
}

// Dev is a handle to a PMSx003 sensor on either bus.
type Dev struct {
	c conn.Conn
	// UART is a byte stream, frame reads have to hunt for the header.
	stream bool
	opts   Opts

	mu sync.Mutex
	// channel to halt SenseContinuous
	chHalt chan bool
}

// Sense reads one frame from the sensor and decodes it into r.
//
// The sensor produces a frame roughly every 200ms to 2.3s depending on how
// stable the readings are. Over I²C the device answers immediately with
// the most recent frame; over UART the call blocks until the next frame
// starts, subject to Opts.ReadTimeout.
func (d *Dev) Sense(r *Reading) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sense(r)
}

func (d *Dev) sense(r *Reading) error {
	var buf [frameSize]byte
	if err := d.readFrame(buf[:]); err != nil {
		return err
	}
	return decodeFrame(buf[:], r, d.opts.ValidateChecksum)
}

// readFrame fills buf with one complete frame from the bus.
func (d *Dev) readFrame(buf []byte) error {
	if !d.stream {
		if err := d.c.Tx(nil, buf); err != nil {
			return fmt.Errorf("pm25: %w", err)
		}
		return nil
	}

	// Serial line. Data arrives as a continuous byte stream, so scan for
	// the first header byte and read the rest of the frame after it.
	var deadline time.Time
	if d.opts.ReadTimeout > 0 {
		deadline = time.Now().Add(d.opts.ReadTimeout)
	}
	scanned := 0
	for {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return fmt.Errorf("pm25: timeout: %w", ErrNoFrame)
		}
		if err := d.c.Tx(nil, buf[:1]); err != nil {
			return fmt.Errorf("pm25: %w", err)
		}
		if buf[0] == frameStart1 {
			break
		}
		scanned++
		if scanned >= d.opts.SyncLimit {
			return fmt.Errorf("pm25: scanned %d bytes: %w", scanned, ErrNoFrame)
		}
	}
	// The tail of the frame follows the header within a few milliseconds
	// at 9600 baud, so this single read is not covered by the deadline.
	if err := d.c.Tx(nil, buf[1:]); err != nil {
		return fmt.Errorf("pm25: %w", err)
	}
	return nil
}

// SenseContinuous reads the sensor on the specified interval and writes
// readings to the returned channel. Frames that fail validation are
// dropped. To terminate a continuous sense, call Halt().
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan Reading, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.chHalt != nil {
		return nil, errors.New("pm25: SenseContinuous() running already")
	}
	d.chHalt = make(chan bool)
	chHalt := d.chHalt

	channelSize := 16
	channel := make(chan Reading, channelSize)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		defer close(channel)
		for {
			select {
			case <-chHalt:
				return
			case <-ticker.C:
				r := Reading{}
				d.mu.Lock()
				err := d.sense(&r)
				d.mu.Unlock()
				if err == nil && len(channel) < channelSize {
					channel <- r
				}
			}
		}
	}()
	return channel, nil
}

// Halt stops a SenseContinuous operation if one is in progress. The sensor
// itself keeps measuring.
//
// Halt implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.chHalt != nil {
		close(d.chHalt)
		d.chHalt = nil
	}
	return nil
}

// String implements conn.Resource.
func (d *Dev) String() string {
	return fmt.Sprintf("pm25: %s", d.c)
}

// bootDelay is how long the sensor takes to start up after a reset.
var bootDelay = time.Second

// reset pulses the reset pin low and waits out the sensor boot time.
func reset(p gpio.PinOut) error {
	if err := p.Out(gpio.Low); err != nil {
		return err
	}
	time.Sleep(10 * time.Millisecond)
	if err := p.Out(gpio.High); err != nil {
		return err
	}
	time.Sleep(bootDelay)
	return nil
}

var _ conn.Resource = &Dev{}
var _ fmt.Stringer = &Dev{}
