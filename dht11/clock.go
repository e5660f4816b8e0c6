// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dht11

import "time"

// Clock is the monotonic time source used to time pulses.
type Clock interface {
	// Now returns the time elapsed since an arbitrary fixed origin.
	Now() time.Duration
	// Sleep blocks for d.
	Sleep(d time.Duration)
}

// SystemClock is the Clock used by default.
//
// Sleeps shorter than a millisecond are busy waits since the OS scheduler
// cannot honor them with microsecond accuracy.
var SystemClock Clock = systemClock{}

var epoch = time.Now()

type systemClock struct{}

func (systemClock) Now() time.Duration {
	return time.Since(epoch)
}

func (systemClock) Sleep(d time.Duration) {
	if d >= time.Millisecond {
		time.Sleep(d)
		return
	}
	for start := time.Now(); time.Since(start) < d; {
	}
}
