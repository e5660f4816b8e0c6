// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dht11

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// waitForLevel spins until the line reads l and returns the time spent
// waiting. It returns false once more than timeout elapsed.
//
// This must not yield to the scheduler: a context switch costs more than the
// difference between a 0 and a 1.
func (d *Dev) waitForLevel(l gpio.Level, timeout time.Duration) (time.Duration, bool) {
	start := d.clk.Now()
	for {
		if d.p.Read() == l {
			return d.clk.Now() - start, true
		}
		if elapsed := d.clk.Now() - start; elapsed > timeout {
			return elapsed, false
		}
	}
}
