// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package fru

// Fuzz exercises LoadBuffer against arbitrary input, the go-fuzz entry
// point convention.
func Fuzz(data []byte) int {
	f, err := LoadBuffer(data, nil)
	if err != nil {
		return 0
	}
	if _, serr := SaveBuffer(f); serr != nil {
		return 0
	}
	return 1
}
