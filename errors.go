// Copyright 2025 The PMSense Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pm25

import "errors"

var (
	// ErrConnectionFailed is returned when the sensor cannot be reached
	// during setup.
	ErrConnectionFailed = errors.New("failed to connect to PM2.5 sensor")

	// ErrInvalidHeader is returned when a frame does not start with the
	// "BM" header bytes.
	ErrInvalidHeader = errors.New("invalid frame header")

	// ErrFrameLength is returned when the frame length field does not
	// match the fixed data frame layout.
	ErrFrameLength = errors.New("invalid frame length")

	// ErrChecksum is returned when the frame checksum does not match the
	// frame content.
	ErrChecksum = errors.New("invalid frame checksum")

	// ErrNoFrame is returned when no start of frame is found on the
	// serial line within the configured sync window.
	ErrNoFrame = errors.New("no start of frame found")
)
