// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dht11

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang/glog"
)

// Acquirer performs one acquisition attempt. *Dev implements it.
type Acquirer interface {
	Acquire() (Reading, error)
}

// State is the state of a Retrier.
type State int

const (
	// Idle is the state before the first Step and after Reset.
	Idle State = iota
	// Acquiring means the next Step runs an attempt.
	Acquiring
	// Success means the last attempt produced a Reading. It is terminal until
	// Reset.
	Success
	// Failure means the last attempt failed; the next Step waits for the
	// backoff.
	Failure
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Acquiring:
		return "Acquiring"
	case Success:
		return "Success"
	case Failure:
		return "Failure"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Retrier repeats acquisition attempts until one succeeds, waiting a fixed
// backoff after each failure.
//
// It is stepped explicitly with Step, or driven to completion with Run.
type Retrier struct {
	a           Acquirer
	backoff     time.Duration
	maxAttempts int
	clk         Clock

	state    State
	attempts int
	reading  Reading
	err      error
}

// NewRetrier returns a Retrier in the Idle state. maxAttempts 0 means Run
// retries forever.
func NewRetrier(a Acquirer, backoff time.Duration, maxAttempts int, clk Clock) *Retrier {
	if clk == nil {
		clk = SystemClock
	}
	return &Retrier{a: a, backoff: backoff, maxAttempts: maxAttempts, clk: clk}
}

// State returns the current state.
func (r *Retrier) State() State {
	return r.state
}

// Attempts returns the number of attempts made since the last Reset.
func (r *Retrier) Attempts() int {
	return r.attempts
}

// Reading returns the reading of the successful attempt.
func (r *Retrier) Reading() Reading {
	return r.reading
}

// Err returns the error of the last failed attempt.
func (r *Retrier) Err() error {
	return r.err
}

// Reset returns to Idle, forgetting the previous cycle.
func (r *Retrier) Reset() {
	*r = Retrier{a: r.a, backoff: r.backoff, maxAttempts: r.maxAttempts, clk: r.clk}
}

// Step performs one transition and returns the new state:
//
//	Idle       -> Acquiring
//	Acquiring  -> Success or Failure, running one attempt
//	Failure    -> Acquiring, after sleeping the backoff
//	Success    -> Success
func (r *Retrier) Step() State {
	switch r.state {
	case Idle:
		r.state = Acquiring
	case Acquiring:
		r.attempts++
		reading, err := r.a.Acquire()
		if err != nil {
			r.err = err
			r.state = Failure
			glog.Warningf("dht11: attempt %d failed: %v", r.attempts, err)
			break
		}
		r.reading = reading
		r.err = nil
		r.state = Success
		if glog.V(1) {
			glog.Infof("dht11: attempt %d succeeded: %s", r.attempts, reading)
		}
	case Failure:
		r.clk.Sleep(r.backoff)
		r.state = Acquiring
	}
	return r.state
}

// Run starts a new cycle and steps until an attempt succeeds.
//
// It gives up early when the attempt limit is reached, when stop is closed
// or when the Acquirer returns an error that is not a *ReadError, which
// means the GPIO driver itself failed. stop is only checked between
// attempts.
func (r *Retrier) Run(stop <-chan struct{}) (Reading, error) {
	r.Reset()
	for {
		switch r.Step() {
		case Success:
			return r.reading, nil
		case Failure:
			var re *ReadError
			if !errors.As(r.err, &re) {
				return Reading{}, r.err
			}
			if r.maxAttempts > 0 && r.attempts >= r.maxAttempts {
				return Reading{}, fmt.Errorf("dht11: giving up after %d attempts: %w", r.attempts, r.err)
			}
			select {
			case <-stop:
				return Reading{}, ErrHalted
			default:
			}
		}
	}
}
