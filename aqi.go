// Copyright 2025 The PMSense Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pm25

// Category is a US EPA air quality category.
type Category int

const (
	Good Category = iota
	Moderate
	UnhealthyForSensitiveGroups
	Unhealthy
	VeryUnhealthy
	Hazardous
)

func (c Category) String() string {
	switch c {
	case Good:
		return "Good"
	case Moderate:
		return "Moderate"
	case UnhealthyForSensitiveGroups:
		return "Unhealthy for Sensitive Groups"
	case Unhealthy:
		return "Unhealthy"
	case VeryUnhealthy:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}

// breakpoint is one segment of the EPA concentration to index mapping.
type breakpoint struct {
	cLow, cHigh Concentration
	iLow, iHigh int
}

// EPA breakpoints, with the fractional concentration bounds rounded to the
// integral µg/m³ the sensor reports.
var pm25Breakpoints = []breakpoint{
	{0, 12, 0, 50},
	{13, 35, 51, 100},
	{36, 55, 101, 150},
	{56, 150, 151, 200},
	{151, 250, 201, 300},
	{251, 350, 301, 400},
	{351, 500, 401, 500},
}

var pm10Breakpoints = []breakpoint{
	{0, 54, 0, 50},
	{55, 154, 51, 100},
	{155, 254, 101, 150},
	{255, 354, 151, 200},
	{355, 424, 201, 300},
	{425, 504, 301, 400},
	{505, 604, 401, 500},
}

func aqiFromTable(table []breakpoint, c Concentration) int {
	last := table[len(table)-1]
	if c >= last.cHigh {
		return last.iHigh
	}
	for _, b := range table {
		if c <= b.cHigh {
			span := int(b.cHigh - b.cLow)
			return b.iLow + ((b.iHigh-b.iLow)*int(c-b.cLow)+span/2)/span
		}
	}
	return last.iHigh
}

// AQIPM25 returns the US EPA air quality index for a PM2.5 mass
// concentration. The index saturates at 500.
func AQIPM25(c Concentration) int {
	return aqiFromTable(pm25Breakpoints, c)
}

// AQIPM10 returns the US EPA air quality index for a PM10 mass
// concentration. The index saturates at 500.
func AQIPM10(c Concentration) int {
	return aqiFromTable(pm10Breakpoints, c)
}

// AQI returns the air quality index for the reading: the worse of the
// PM2.5 and PM10 indexes, computed from the environmental concentrations.
//
// Note that the EPA defines the index over 24 hour averages; applying it
// to a single frame gives an instantaneous approximation.
func (r *Reading) AQI() int {
	aqi := AQIPM25(r.PM25Env)
	if v := AQIPM10(r.PM10Env); v > aqi {
		aqi = v
	}
	return aqi
}

// AQICategory returns the category an air quality index falls in.
func AQICategory(aqi int) Category {
	switch {
	case aqi <= 50:
		return Good
	case aqi <= 100:
		return Moderate
	case aqi <= 150:
		return UnhealthyForSensitiveGroups
	case aqi <= 200:
		return Unhealthy
	case aqi <= 300:
		return VeryUnhealthy
	default:
		return Hazardous
	}
}
