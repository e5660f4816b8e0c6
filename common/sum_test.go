// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package common

import "testing"

func TestSum8(t *testing.T) {
	var tests = []struct {
		bytes  []byte
		result byte
	}{
		{bytes: nil, result: 0x00},
		{bytes: []byte{0x23, 0x00, 0x18, 0x00}, result: 0x3b},
		{bytes: []byte{0xaa, 0xaa, 0xaa, 0xaa}, result: 0xa8},
		{bytes: []byte{0xff, 0x01}, result: 0x00},
	}
	for _, test := range tests {
		res := Sum8(test.bytes)
		if res != test.result {
			t.Errorf("Sum8(%#v)!=0x%02x received 0x%02x", test.bytes, test.result, res)
		}
	}
}
