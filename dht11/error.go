// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dht11

import (
	"errors"
	"fmt"
)

// FailureReason is the cause of a discarded acquisition attempt.
//
// FailureReason implements error so it can be used as a target for
// errors.Is:
//
//	if errors.Is(err, dht11.ChecksumMismatch) { ... }
type FailureReason int

const (
	// SensorUnresponsive means the sensor did not answer the start signal
	// with its low/high/low acknowledgement.
	SensorUnresponsive FailureReason = iota + 1
	// BitStartTimeout means the line never rose at the start of a data bit.
	BitStartTimeout
	// BitMeasureTimeout means the high pulse of a data bit did not end in
	// time.
	BitMeasureTimeout
	// BitEndTimeout means the line did not return low after a data bit.
	BitEndTimeout
	// ChecksumMismatch means a full frame was received but its last byte
	// does not match the sum of the first four.
	ChecksumMismatch
)

func (r FailureReason) String() string {
	switch r {
	case SensorUnresponsive:
		return "sensor unresponsive"
	case BitStartTimeout:
		return "timeout waiting for bit start"
	case BitMeasureTimeout:
		return "timeout measuring bit"
	case BitEndTimeout:
		return "timeout waiting for bit end"
	case ChecksumMismatch:
		return "checksum mismatch"
	default:
		return fmt.Sprintf("FailureReason(%d)", int(r))
	}
}

func (r FailureReason) Error() string {
	return "dht11: " + r.String()
}

// Timeout returns true for every reason caused by the line not reaching an
// expected level in time.
func (r FailureReason) Timeout() bool {
	return r >= SensorUnresponsive && r <= BitEndTimeout
}

// ReadError describes why an acquisition attempt was discarded.
type ReadError struct {
	Reason FailureReason
	// Bit is the index (0..39) of the data bit being sampled, or -1 when the
	// failure is not tied to a bit.
	Bit int
	// Computed and Received are only set for ChecksumMismatch.
	Computed byte
	Received byte
}

func (e *ReadError) Error() string {
	switch {
	case e.Reason == ChecksumMismatch:
		return fmt.Sprintf("dht11: checksum mismatch: computed 0x%02x != received 0x%02x", e.Computed, e.Received)
	case e.Bit >= 0:
		return fmt.Sprintf("dht11: %s (bit %d)", e.Reason.String(), e.Bit)
	default:
		return e.Reason.Error()
	}
}

// Is matches a FailureReason target.
func (e *ReadError) Is(target error) bool {
	r, ok := target.(FailureReason)
	return ok && r == e.Reason
}

// ErrHalted is returned by Sense and Retrier.Run when Halt was called while
// waiting to retry.
var ErrHalted = errors.New("dht11: halted")

// Reason extracts the FailureReason from err. It returns 0 if err is not an
// acquisition failure, e.g. a GPIO driver error.
func Reason(err error) FailureReason {
	var re *ReadError
	if errors.As(err, &re) {
		return re.Reason
	}
	return 0
}
