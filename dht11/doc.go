// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package dht11 reads an AOSONG DHT11 humidity and temperature sensor by
// bit-banging its single data line.
//
// The host pulls the line low to request a measurement, then the sensor
// answers with a 40 bit frame where each bit is encoded as the width of a
// high pulse. The pulses are measured by polling the line in a busy loop, so
// readings are only reliable when the process runs with a real-time
// scheduling priority on an otherwise idle core. Failed attempts are
// retried.
//
// The dht11.Dev type implements the physic.SenseEnv interface. The pressure
// is never set.
//
// # Datasheet
//
// https://www.mouser.com/datasheet/2/758/DHT11-Technical-Data-Sheet-Translated-Version-1143054.pdf
package dht11
