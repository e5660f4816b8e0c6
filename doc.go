// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package singlewire is a container for drivers of sensors talking over a
// single bit-banged GPIO line.
//
// The dht11 package holds the driver; console and mqttsink report its
// readings and cmd/dht11 ties them into a sampling daemon.
package singlewire
