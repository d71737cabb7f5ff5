// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

// Package lasterr backs the package-level LastError() convenience: a
// thread-local substitute keyed by goroutine id, since Go has no native
// thread-local storage. Every API that can fail records its outcome here
// so a caller can inspect the most recent condition on its own goroutine
// without threading an error value through call sites that don't want one.
package lasterr

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

var store sync.Map // goroutine id (uint64) -> any

// Set records val as the calling goroutine's last error value.
func Set(val any) {
	store.Store(goroutineID(), val)
}

// Get returns the calling goroutine's last recorded error value, or nil
// if none has been set.
func Get() any {
	v, ok := store.Load(goroutineID())
	if !ok {
		return nil
	}
	return v
}

// goroutineID parses the numeric id out of runtime.Stack's leading
// "goroutine N [running]:" line. There is no supported API for this;
// the format has been stable since Go's earliest releases.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]

	const prefix = "goroutine "
	b = bytes.TrimPrefix(b, []byte(prefix))
	idx := bytes.IndexByte(b, ' ')
	if idx < 0 {
		return 0
	}
	id, err := strconv.ParseUint(string(b[:idx]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
