// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package fru

// Flags is the relaxed-parsing bitmask accepted by Load*.
// Each bit selectively downgrades one class of format error from fatal
// to warning-only: the parse proceeds, but the condition is recorded as
// the calling goroutine's LastError so it can still be inspected after
// a successful load.
type Flags uint32

// Relaxed-parsing flags.
const (
	// IgnoreFileVersion accepts any file-header version byte.
	IgnoreFileVersion Flags = 1 << iota
	// IgnoreFileChecksum skips the file-header checksum check.
	IgnoreFileChecksum
	// IgnoreAreaVersion accepts any info-area version byte.
	IgnoreAreaVersion
	// IgnoreAreaChecksum skips info-area checksum checks.
	IgnoreAreaChecksum
	// IgnoreAreaEOF tolerates an info area with no terminator byte.
	IgnoreAreaEOF
	// IgnoreRecordVersion accepts any MR record version.
	IgnoreRecordVersion
	// IgnoreRecordHeaderChecksum skips MR record header checksums.
	IgnoreRecordHeaderChecksum
	// IgnoreRecordDataChecksum skips MR record data checksums.
	IgnoreRecordDataChecksum
	// IgnoreMRDataLen skips Management Access payload size-bound checks.
	IgnoreMRDataLen
	// IgnoreRecordNoEOL accepts a multirecord area whose last record is
	// missing the end-of-list flag.
	IgnoreRecordNoEOL
	// IgnoreBigFile accepts files larger than MaxFileSize.
	IgnoreBigFile
)

// Has reports whether flag is set in f.
func (f Flags) Has(flag Flags) bool {
	return f&flag != 0
}
