// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dht11

import (
	"fmt"

	"github.com/GermanBionicSystems/singlewire/common"
	"periph.io/x/conn/v3/physic"
)

const (
	frameSize = 5
	frameBits = 8 * frameSize
)

// Frame is the raw payload sent by the sensor, most significant bit first:
// humidity integral and decimal parts, temperature integral and decimal
// parts, then the checksum.
type Frame [frameSize]byte

// Checksum returns the checksum expected in the last byte.
func (f Frame) Checksum() byte {
	return common.Sum8(f[:4])
}

// Validate returns a *ReadError with the ChecksumMismatch reason if the last
// byte is not the sum of the first four. No field of an invalid frame can be
// trusted.
func (f Frame) Validate() error {
	if sum := f.Checksum(); sum != f[4] {
		return &ReadError{Reason: ChecksumMismatch, Bit: -1, Computed: sum, Received: f[4]}
	}
	return nil
}

// Reading returns the measurement carried by the frame. The frame must have
// been validated first.
func (f Frame) Reading() Reading {
	return Reading{
		Humidity:        f[0],
		HumidityFrac:    f[1],
		Temperature:     f[2],
		TemperatureFrac: f[3],
	}
}

// Reading is a validated measurement. Humidity is in %RH and Temperature in
// °C; the Frac fields are tenths.
type Reading struct {
	Humidity        uint8
	HumidityFrac    uint8
	Temperature     uint8
	TemperatureFrac uint8
}

// Env stores the reading into e. The pressure is set to 0.
func (r Reading) Env(e *physic.Env) {
	e.Humidity = physic.RelativeHumidity(r.Humidity)*physic.PercentRH + physic.RelativeHumidity(r.HumidityFrac)*physic.PercentRH/10
	e.Temperature = physic.ZeroCelsius + physic.Temperature(r.Temperature)*physic.Celsius + physic.Temperature(r.TemperatureFrac)*physic.Celsius/10
	e.Pressure = 0
}

func (r Reading) String() string {
	return fmt.Sprintf("humidity: %d%%, temperature: %d°C", r.Humidity, r.Temperature)
}
