// Copyright 2025 The PMSense Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pm25 controls Plantower PMSx003 family particulate matter sensors.
//
// The driver works with any Plantower sensor that streams the standard
// 32 byte "BM" data frame: the PMS5003 and its siblings over UART at
// 9600 baud, and the PMSA003I over I²C at address 0x12. Each frame carries
// mass concentrations for PM1.0, PM2.5 and PM10 in µg/m³, both with the
// standard particle calibration (CF=1) and corrected for atmospheric
// environment, plus particle counts for six size bins.
//
// The sensors push frames on their own schedule; the driver reads,
// validates and decodes them. It never writes to the device apart from an
// optional reset pin pulse during setup.
//
// Datasheet: https://cdn-shop.adafruit.com/product-files/3686/plantower-pms5003-manual_v2-3.pdf
package pm25
