// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package fru

// internalUseVersion is the only version byte this codec emits or
// accepts for the internal-use area.
const internalUseVersion = 1

// InternalUse holds the opaque internal-use-area payload as a hex
// string for in-memory use.
type InternalUse struct {
	HexString string
}

// EncodeInternalUse serializes the area as a version byte followed by
// the opaque bytes. Unlike the information areas, this area has no
// self-described length or checksum: the file-level codec pads it to
// the next 8-byte boundary and derives its length from neighboring area
// offsets (or end-of-file).
func EncodeInternalUse(hexString string) ([]byte, *Error) {
	data, herr := hexToBin(hexString, HexStrict, false)
	if herr != nil {
		return nil, NewError(herr.Code, LocationInternal)
	}
	return append([]byte{internalUseVersion}, data...), nil
}

// DecodeInternalUse parses a byte slice already sliced to this area's
// inferred length.
func DecodeInternalUse(data []byte, flags Flags) (*InternalUse, *Error) {
	if len(data) < 1 {
		return nil, NewError(CodeBufferTooSmall, LocationInternal)
	}
	if data[0] != internalUseVersion {
		if !flags.Has(IgnoreAreaVersion) {
			return nil, NewError(CodeBadVersion, LocationInternal)
		}
		recordRelaxed(CodeBadVersion, LocationInternal, NoIndex)
	}
	return &InternalUse{HexString: bytesToHex(data[1:])}, nil
}
