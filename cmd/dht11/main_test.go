// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GermanBionicSystems/singlewire/dht11"
)

func TestBuildOpts(t *testing.T) {
	opts, err := buildOpts(50*time.Microsecond, time.Second, true)
	require.NoError(t, err)
	require.Equal(t, 50*time.Microsecond, opts.BitThreshold)
	require.Equal(t, time.Second, opts.Backoff)
	require.Equal(t, dht11.DatasheetStart, opts.Start)
	require.Equal(t, dht11.DefaultOpts.ResponseTimeout, opts.ResponseTimeout)

	opts, err = buildOpts(dht11.DefaultOpts.BitThreshold, dht11.DefaultOpts.Backoff, false)
	require.NoError(t, err)
	require.Equal(t, dht11.DefaultStart, opts.Start)

	_, err = buildOpts(0, time.Second, false)
	require.Error(t, err)
	_, err = buildOpts(time.Microsecond, -time.Second, false)
	require.Error(t, err)
}

func TestLogToStderr(t *testing.T) {
	f := flag.Lookup("alsologtostderr")
	require.NotNil(t, f, "glog flags not registered")
	old := f.Value.String()
	defer flag.Set("alsologtostderr", old)

	require.NoError(t, flag.Set("alsologtostderr", "false"))
	require.NoError(t, logToStderr())
	require.Equal(t, "true", f.Value.String())
}
