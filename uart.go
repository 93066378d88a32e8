// Copyright 2025 The PMSense Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pm25

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/uart"
)

// NewUART returns an object that communicates with a PMS5003 family sensor
// over its serial line. The Opts can be nil.
//
// The sensor talks at a fixed 9600 baud, 8 bits, no parity, one stop bit.
// In its default active mode it pushes a frame roughly every second; the
// driver synchronizes on the frame header in the byte stream.
func NewUART(p uart.Port, opts *Opts) (*Dev, error) {
	c, err := p.Connect(9600*physic.Hertz, uart.One, uart.NoParity, uart.NoFlow, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	return makeDev(c, true, opts)
}
