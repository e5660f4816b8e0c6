// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dht11

import (
	"errors"
	"sync"
	"time"

	"github.com/golang/glog"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Drive is one step of the host start signal: the line is driven to Level
// and held for Hold.
type Drive struct {
	Level gpio.Level
	Hold  time.Duration
}

// DefaultStart idles the line high for 50ms, pulls it low for 20ms and
// raises it for 30µs before releasing it.
var DefaultStart = []Drive{
	{Level: gpio.High, Hold: 50 * time.Millisecond},
	{Level: gpio.Low, Hold: 20 * time.Millisecond},
	{Level: gpio.High, Hold: 30 * time.Microsecond},
}

// DatasheetStart is the sequence from the DHT11 datasheet: at least 18ms low,
// then 20-40µs high.
var DatasheetStart = []Drive{
	{Level: gpio.Low, Hold: 18 * time.Millisecond},
	{Level: gpio.High, Hold: 30 * time.Microsecond},
}

// Opts holds the configuration options for the device.
//
// Zero durations are replaced by the value in DefaultOpts, and so is
// gpio.PullNoChange, the zero value of Pull. Use gpio.Float to release the
// line without any pull resistor.
type Opts struct {
	// Start is the sequence driven on the line to request a frame. Default
	// is DefaultStart.
	Start []Drive
	// Pull is the pull resistor selected when the line is released.
	Pull gpio.Pull
	// Settle is the delay after releasing the line before listening.
	Settle time.Duration
	// ResponseTimeout bounds each of the three acknowledgement edges.
	ResponseTimeout time.Duration
	// BitStartTimeout bounds the wait for the rising edge of a data bit.
	BitStartTimeout time.Duration
	// BitMeasureTimeout bounds the high pulse of a data bit.
	BitMeasureTimeout time.Duration
	// BitEndTimeout bounds the wait for the line to return low after a bit.
	BitEndTimeout time.Duration
	// BitThreshold is the high pulse width above which a bit reads as 1.
	BitThreshold time.Duration
	// Backoff is the delay before retrying a failed attempt.
	Backoff time.Duration
	// MaxAttempts bounds the attempts made by Sense. 0 retries forever.
	MaxAttempts int
	// Clock times the pulses. Default is SystemClock.
	Clock Clock
}

// DefaultOpts holds the default configuration options for the device.
var DefaultOpts = Opts{
	Start:             DefaultStart,
	Pull:              gpio.PullUp,
	Settle:            5 * time.Microsecond,
	ResponseTimeout:   2000 * time.Microsecond,
	BitStartTimeout:   1000 * time.Microsecond,
	BitMeasureTimeout: 2000 * time.Microsecond,
	BitEndTimeout:     1000 * time.Microsecond,
	BitThreshold:      45 * time.Microsecond,
	Backoff:           120 * time.Millisecond,
	Clock:             SystemClock,
}

// MinInterval is the shortest interval accepted by SenseContinuous. The
// sensor cannot be sampled more than once per second.
const MinInterval = time.Second

// Dev is a handle to a DHT11 sensor wired to a single GPIO line.
type Dev struct {
	p    gpio.PinIO
	opts Opts
	clk  Clock

	// mu is held for the duration of an attempt; the line must not be
	// touched by anyone else meanwhile.
	mu sync.Mutex

	haltMu  sync.Mutex
	halt    chan struct{}
	running bool
	wg      sync.WaitGroup
}

// New returns a Dev reading the sensor on p. The Opts can be nil.
//
// The process should run with a real-time scheduling priority, otherwise
// preemption during a frame corrupts the pulse measurements and attempts
// fail more often.
func New(p gpio.PinIO, opts *Opts) (*Dev, error) {
	if p == nil {
		return nil, errors.New("dht11: pin is nil")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	o := *opts
	if len(o.Start) == 0 {
		o.Start = DefaultOpts.Start
	}
	if o.Pull == gpio.PullNoChange {
		o.Pull = DefaultOpts.Pull
	}
	setDefault(&o.Settle, DefaultOpts.Settle)
	setDefault(&o.ResponseTimeout, DefaultOpts.ResponseTimeout)
	setDefault(&o.BitStartTimeout, DefaultOpts.BitStartTimeout)
	setDefault(&o.BitMeasureTimeout, DefaultOpts.BitMeasureTimeout)
	setDefault(&o.BitEndTimeout, DefaultOpts.BitEndTimeout)
	setDefault(&o.BitThreshold, DefaultOpts.BitThreshold)
	setDefault(&o.Backoff, DefaultOpts.Backoff)
	if o.Clock == nil {
		o.Clock = SystemClock
	}
	if o.MaxAttempts < 0 {
		return nil, errors.New("dht11: invalid MaxAttempts")
	}
	if o.BitThreshold >= o.BitMeasureTimeout {
		return nil, errors.New("dht11: BitThreshold must be shorter than BitMeasureTimeout")
	}
	return &Dev{p: p, opts: o, clk: o.Clock, halt: make(chan struct{})}, nil
}

func setDefault(d *time.Duration, def time.Duration) {
	if *d <= 0 {
		*d = def
	}
}

func (d *Dev) String() string {
	return "DHT11{" + d.p.String() + "}"
}

// Acquire performs a single acquisition attempt: start signal, sensor
// acknowledgement, 40 data bits and checksum validation.
//
// A failed attempt returns a *ReadError and nothing of the frame; errors of
// any other type come from the GPIO driver.
func (d *Dev) Acquire() (Reading, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.startSignal(); err != nil {
		return Reading{}, err
	}
	if err := d.awaitResponse(); err != nil {
		return Reading{}, err
	}
	f, err := d.readBits()
	if err != nil {
		return Reading{}, err
	}
	if err := f.Validate(); err != nil {
		return Reading{}, err
	}
	return f.Reading(), nil
}

// Retrier returns a Retrier acquiring from d with the configured backoff and
// attempt limit.
func (d *Dev) Retrier() *Retrier {
	return NewRetrier(d, d.opts.Backoff, d.opts.MaxAttempts, d.clk)
}

// Sense implements physic.SenseEnv. It retries failed attempts as configured
// by Opts.Backoff and Opts.MaxAttempts. With the default options it only
// returns once a valid frame is received or Halt is called. The pressure is
// always 0.
func (d *Dev) Sense(e *physic.Env) error {
	return d.sense(e, d.haltChan())
}

func (d *Dev) sense(e *physic.Env, halt <-chan struct{}) error {
	r, err := d.Retrier().Run(halt)
	if err != nil {
		return err
	}
	r.Env(e)
	return nil
}

// SenseContinuous implements physic.SenseEnv. It returns a channel that
// receives a measurement every interval. Failed attempts are retried and
// never reach the channel. Call Halt() to stop.
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	if interval < MinInterval {
		return nil, errors.New("dht11: invalid duration. minimum 1 second")
	}
	d.haltMu.Lock()
	defer d.haltMu.Unlock()
	if d.running {
		return nil, errors.New("dht11: sense continuous already running")
	}
	d.running = true
	halt := d.halt
	ch := make(chan physic.Env)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer close(ch)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-halt:
				return
			case <-ticker.C:
				var e physic.Env
				if err := d.sense(&e, halt); err != nil {
					if errors.Is(err, ErrHalted) {
						return
					}
					glog.Errorf("%s: %v", d, err)
					continue
				}
				select {
				case ch <- e:
				case <-halt:
					return
				}
			}
		}
	}()
	return ch, nil
}

// Precision implements physic.SenseEnv.
func (d *Dev) Precision(e *physic.Env) {
	e.Temperature = physic.Celsius / 10
	e.Pressure = 0
	e.Humidity = physic.PercentRH / 10
}

// Halt implements conn.Resource. It stops SenseContinuous and interrupts a
// Sense waiting between attempts. An attempt in progress always completes.
func (d *Dev) Halt() error {
	d.haltMu.Lock()
	defer d.haltMu.Unlock()
	close(d.halt)
	d.wg.Wait()
	d.halt = make(chan struct{})
	d.running = false
	return nil
}

func (d *Dev) haltChan() <-chan struct{} {
	d.haltMu.Lock()
	defer d.haltMu.Unlock()
	return d.halt
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
var _ Acquirer = &Dev{}
