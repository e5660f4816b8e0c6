// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package console reports DHT11 readings on a terminal (stdout) using ANSI
// color codes. Each reading is printed on its own line behind a colored
// block whose hue follows the temperature.
package console

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/singlewire/dht11"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Opts represents the options available for the console.
type Opts struct {
	Palette *ansi256.Palette
	// Plain disables the color block.
	Plain bool
	// Cold and Hot are the temperatures in °C drawn fully blue and fully red.
	// Both 0 means 0 and 40.
	Cold, Hot int

	_ struct{}
}

// Dev writes readings to the console.
type Dev struct {
	w         io.Writer
	palette   ansi256.Palette
	plain     bool
	cold, hot int

	buf bytes.Buffer
}

// New returns a Dev that writes to stdout. The Opts can be nil.
func New(opts *Opts) *Dev {
	return NewWriter(colorable.NewColorableStdout(), opts)
}

// NewWriter returns a Dev that writes to w. The Opts can be nil.
func NewWriter(w io.Writer, opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	d := &Dev{w: w, palette: *p, plain: opts.Plain, cold: opts.Cold, hot: opts.Hot}
	if d.cold == 0 && d.hot == 0 {
		d.hot = 40
	}
	if d.hot <= d.cold {
		d.hot = d.cold + 1
	}
	return d
}

func (d *Dev) String() string {
	return "Console"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors.
func (d *Dev) Halt() error {
	if d.plain {
		return nil
	}
	_, err := io.WriteString(d.w, "\033[0m")
	return err
}

// Report writes r on its own line.
func (d *Dev) Report(r dht11.Reading) error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	if !d.plain {
		_, _ = d.buf.WriteString("\033[0m")
		_, _ = io.WriteString(&d.buf, d.palette.Block(d.color(r.Temperature)))
		_, _ = d.buf.WriteString("\033[0m ")
	}
	_, _ = fmt.Fprintln(&d.buf, r)
	_, err := d.buf.WriteTo(d.w)
	return err
}

// color blends from blue at d.cold to red at d.hot.
func (d *Dev) color(t uint8) color.NRGBA {
	v := int(t)
	if v < d.cold {
		v = d.cold
	}
	if v > d.hot {
		v = d.hot
	}
	red := byte((v - d.cold) * 255 / (d.hot - d.cold))
	return color.NRGBA{R: red, B: 255 - red, A: 255}
}

var _ fmt.Stringer = &Dev{}
