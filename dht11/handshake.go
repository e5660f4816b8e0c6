// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dht11

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// startSignal drives the start sequence then releases the line to the
// sensor.
func (d *Dev) startSignal() error {
	for _, s := range d.opts.Start {
		if err := d.p.Out(s.Level); err != nil {
			return fmt.Errorf("dht11: driving start signal: %w", err)
		}
		d.clk.Sleep(s.Hold)
	}
	if err := d.p.In(d.opts.Pull, gpio.NoEdge); err != nil {
		return fmt.Errorf("dht11: releasing line: %w", err)
	}
	d.clk.Sleep(d.opts.Settle)
	return nil
}

// sensorResponse is the acknowledgement expected once the line is released:
// the sensor pulls low for 80µs, releases it for 80µs, then pulls it low to
// announce the first data bit.
var sensorResponse = [...]gpio.Level{gpio.Low, gpio.High, gpio.Low}

func (d *Dev) awaitResponse() error {
	for _, l := range sensorResponse {
		if _, ok := d.waitForLevel(l, d.opts.ResponseTimeout); !ok {
			return &ReadError{Reason: SensorUnresponsive, Bit: -1}
		}
	}
	return nil
}
