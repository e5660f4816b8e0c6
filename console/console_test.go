// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package console

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/singlewire/dht11"
	"github.com/maruel/ansi256"
	"github.com/stretchr/testify/require"
)

func TestReport_plain(t *testing.T) {
	var buf bytes.Buffer
	d := NewWriter(&buf, &Opts{Plain: true})
	require.NoError(t, d.Report(dht11.Reading{Humidity: 35, Temperature: 24}))
	require.NoError(t, d.Report(dht11.Reading{Humidity: 36, Temperature: 24}))
	require.NoError(t, d.Halt())
	require.Equal(t, "humidity: 35%, temperature: 24°C\nhumidity: 36%, temperature: 24°C\n", buf.String())
}

func TestReport_color(t *testing.T) {
	var buf bytes.Buffer
	d := NewWriter(&buf, nil)
	require.Equal(t, "Console", d.String())
	require.NoError(t, d.Report(dht11.Reading{Humidity: 35, Temperature: 40}))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\033[0m"+ansi256.Default.Block(color.NRGBA{R: 255, A: 255})), out)
	require.True(t, strings.HasSuffix(out, "\033[0m humidity: 35%, temperature: 40°C\n"), out)

	buf.Reset()
	require.NoError(t, d.Halt())
	require.Equal(t, "\033[0m", buf.String())
}

func TestColor(t *testing.T) {
	d := NewWriter(&bytes.Buffer{}, &Opts{Cold: 10, Hot: 30})
	for _, tc := range []struct {
		t    uint8
		want color.NRGBA
	}{
		{0, color.NRGBA{B: 255, A: 255}},
		{10, color.NRGBA{B: 255, A: 255}},
		{20, color.NRGBA{R: 127, B: 128, A: 255}},
		{30, color.NRGBA{R: 255, A: 255}},
		{99, color.NRGBA{R: 255, A: 255}},
	} {
		require.Equal(t, tc.want, d.color(tc.t), "%d°C", tc.t)
	}
}
