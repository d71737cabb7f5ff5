// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package fru

import (
	"fmt"

	"github.com/alatarum/frugen-sub000/internal/lasterr"
)

// Code is a stable reason code for a failed operation.
type Code int

// Reason codes. The numeric values are not part of the wire format and
// may be renumbered across releases; callers should compare against the
// named constants, never the underlying int.
const (
	// CodeNone indicates success; it is never set on a returned *Error.
	CodeNone Code = iota

	CodeBadVersion
	CodeBadChecksum
	CodeBadRecordChecksum
	CodeBufferTooSmall
	CodeBufferTooBig
	CodeSizeMismatch
	CodeNonPrintable
	CodeNonHex
	CodeOddNibbleCount
	CodeAutoDetectFailed
	CodeInvalidEncoding
	CodeInvalidAreaType
	CodeDuplicateAreaInOrder
	CodeUnterminatedArea
	CodeBoardDateOutOfRange
	CodeNoSuchField
	CodeNoSuchRecord
	CodeMalformedData
	CodeNoData
	CodeBadMRSubtype
	CodeUnsupportedMRType
	CodeEndOfMR
	CodeInvalidAreaPosition
	CodeNonEmptyList
	CodeAreaAlreadyEnabled
	CodeAreaAlreadyDisabled
	CodeUninitialized
	CodeInternal
	CodeGeneric
)

var codeStrings = map[Code]string{
	CodeNone:                 "success",
	CodeBadVersion:           "bad version byte",
	CodeBadChecksum:          "bad checksum",
	CodeBadRecordChecksum:    "bad record checksum",
	CodeBufferTooSmall:       "buffer too small",
	CodeBufferTooBig:         "buffer too big",
	CodeSizeMismatch:         "size mismatch",
	CodeNonPrintable:         "non-printable input",
	CodeNonHex:               "non-hex input",
	CodeOddNibbleCount:       "odd nibble count",
	CodeAutoDetectFailed:     "auto-detect failed",
	CodeInvalidEncoding:      "invalid encoding",
	CodeInvalidAreaType:      "invalid area type",
	CodeDuplicateAreaInOrder: "duplicate area in order",
	CodeUnterminatedArea:     "unterminated area",
	CodeBoardDateOutOfRange:  "board date out of range",
	CodeNoSuchField:          "no such field",
	CodeNoSuchRecord:         "no such record",
	CodeMalformedData:        "malformed data",
	CodeNoData:               "no data",
	CodeBadMRSubtype:         "bad management-access subtype",
	CodeUnsupportedMRType:    "unsupported multirecord type",
	CodeEndOfMR:              "end of multirecord list",
	CodeInvalidAreaPosition:  "invalid area position",
	CodeNonEmptyList:         "list is not empty",
	CodeAreaAlreadyEnabled:   "area already enabled",
	CodeAreaAlreadyDisabled:  "area already disabled",
	CodeUninitialized:        "uninitialized structure",
	CodeInternal:             "internal error",
	CodeGeneric:              "generic error",
}

// String returns the stable human-readable description for code, the
// equivalent of the source library's strerr().
func (c Code) String() string {
	if s, ok := codeStrings[c]; ok {
		return s
	}
	return "unknown error"
}

// Location names the sub-system an Error originated from.
type Location int8

// Source locations.
const (
	LocationInternal Location = iota
	LocationChassis
	LocationBoard
	LocationProduct
	LocationMultirecord
	LocationGeneral
	LocationCaller
)

func (l Location) String() string {
	switch l {
	case LocationInternal:
		return "Internal"
	case LocationChassis:
		return "Chassis"
	case LocationBoard:
		return "Board"
	case LocationProduct:
		return "Product"
	case LocationMultirecord:
		return "Multirecord"
	case LocationGeneral:
		return "General"
	case LocationCaller:
		return "Caller"
	default:
		return "Unknown"
	}
}

// NoIndex is the sentinel value of Error.Index when an index is not
// applicable to the failure.
const NoIndex = -1

// Error is the structured error value: a reason code, a source
// location, and an optional index (field or record position within
// that location). It implements the standard error interface so it
// composes with errors.Is/errors.As/fmt.Errorf("%w").
type Error struct {
	Code     Code
	Location Location
	Index    int
	cause    error
}

// NewError builds an *Error with no applicable index.
func NewError(code Code, loc Location) *Error {
	e := &Error{Code: code, Location: loc, Index: NoIndex}
	lasterr.Set(e)
	return e
}

// NewIndexedError builds an *Error scoped to a field or record index.
func NewIndexedError(code Code, loc Location, index int) *Error {
	e := &Error{Code: code, Location: loc, Index: index}
	lasterr.Set(e)
	return e
}

// LastError returns the most recent *Error recorded on the calling
// goroutine, whether by a fatal failure or by a relaxed-parsing flag
// downgrading one to a no-op. It returns nil if nothing has been
// recorded on this goroutine yet.
func LastError() *Error {
	v := lasterr.Get()
	if v == nil {
		return nil
	}
	e, _ := v.(*Error)
	return e
}

// recordRelaxed records that a format condition at (code, loc, index)
// was downgraded from fatal to warning-only by a relaxed-parsing flag.
// The decode proceeds; this only updates LastError so the caller can
// still inspect what was tolerated after a successful load.
func recordRelaxed(code Code, loc Location, index int) {
	lasterr.Set(&Error{Code: code, Location: loc, Index: index})
}

// Wrap attaches a lower-level cause (e.g. an I/O error) to e and returns
// e, for chaining at the call site: return nil, NewError(...).Wrap(err).
func (e *Error) Wrap(cause error) *Error {
	e.cause = cause
	return e
}

// Unwrap exposes the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Code.String()
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	if e.Index >= 0 {
		return fmt.Sprintf("%s in %s (index %d)", msg, e.Location, e.Index)
	}
	return fmt.Sprintf("%s in %s", msg, e.Location)
}

// Is reports whether target is an *Error with the same Code, so callers
// can write errors.Is(err, fru.NewError(fru.CodeNoSuchField, 0)).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// CodeOf extracts the Code carried by err, or CodeGeneric if err is not
// (or does not wrap) a *Error.
func CodeOf(err error) Code {
	var fe *Error
	if asError(err, &fe) {
		return fe.Code
	}
	return CodeGeneric
}

// asError is a tiny local errors.As to avoid importing errors just for
// this one call site pattern used by CodeOf.
func asError(err error, target **Error) bool {
	for err != nil {
		if fe, ok := err.(*Error); ok {
			*target = fe
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
