// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dht11

import (
	"periph.io/x/conn/v3/gpio"
)

// readBits samples the 40 data bits following the acknowledgement. Every
// bit is a ~50µs low followed by a high pulse of 26-28µs for a 0 or 70µs
// for a 1.
func (d *Dev) readBits() (Frame, error) {
	var f Frame
	for i := range frameBits {
		if _, ok := d.waitForLevel(gpio.High, d.opts.BitStartTimeout); !ok {
			return Frame{}, &ReadError{Reason: BitStartTimeout, Bit: i}
		}
		width, ok := d.waitForLevel(gpio.Low, d.opts.BitMeasureTimeout)
		if !ok {
			return Frame{}, &ReadError{Reason: BitMeasureTimeout, Bit: i}
		}
		f[i/8] <<= 1
		if width > d.opts.BitThreshold {
			f[i/8] |= 1
		}
		if _, ok := d.waitForLevel(gpio.Low, d.opts.BitEndTimeout); !ok {
			return Frame{}, &ReadError{Reason: BitEndTimeout, Bit: i}
		}
	}
	return f, nil
}
