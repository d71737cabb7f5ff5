// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package fru

import "strings"

// Encoding identifies how a text field's Value is represented, both in
// memory and (once resolved) on the wire.
type Encoding int

// Field encodings.
const (
	// EncodingAuto asks the encoder to pick the most restrictive
	// encoding the value fits, trying EncodingSixBit, EncodingBCDPlus,
	// EncodingBinaryHex, then EncodingText in that order.
	EncodingAuto Encoding = iota
	// EncodingEmpty marks a field with no data; promoted to text,
	// length 0, on the wire.
	EncodingEmpty
	// EncodingBinaryHex stores Value as a hex string representing raw
	// bytes.
	EncodingBinaryHex
	// EncodingBCDPlus packs two 4-bit alphabet codes per byte.
	EncodingBCDPlus
	// EncodingSixBit packs four source characters into three bytes.
	EncodingSixBit
	// EncodingText is passthrough 8-bit ASCII.
	EncodingText
	// EncodingPreserve is only accepted at the API boundary (set_field):
	// it means "reuse whatever real encoding the field currently has, or
	// auto-select if the field has none yet". It is never stored.
	EncodingPreserve
)

func (e Encoding) String() string {
	switch e {
	case EncodingAuto:
		return "auto"
	case EncodingEmpty:
		return "empty"
	case EncodingBinaryHex:
		return "binary-hex"
	case EncodingBCDPlus:
		return "bcd-plus"
	case EncodingSixBit:
		return "6bit-ascii"
	case EncodingText:
		return "text"
	case EncodingPreserve:
		return "preserve"
	default:
		return "unknown"
	}
}

// Field is one text field of up to 63 logical bytes, tagged with the
// encoding it is (or should be) stored with.
type Field struct {
	Value    string   `json:"value"`
	Encoding Encoding `json:"encoding"`
}

// MaxFieldLen is the largest data length (in stored bytes) a wire field
// can carry; the type/length byte dedicates 6 bits to it.
const MaxFieldLen = 63

const (
	wireTagBinary = 0x00
	wireTagBCD    = 0x40
	wireTagSixBit = 0x80
	wireTagText   = 0xC0
	wireTagMask   = 0xC0
	wireLenMask   = 0x3F
)

// fieldTerminator is the type/length byte (text encoding, length 1) that
// marks the end of the field stream inside an information area.
const fieldTerminator = 0xC1

const bcdSpace = 0x0A
const sixBitSpace = 0x00 // six-bit code 0 is ASCII 0x20 (space)

var bcdAlphabet = map[byte]byte{
	'0': 0x0, '1': 0x1, '2': 0x2, '3': 0x3, '4': 0x4,
	'5': 0x5, '6': 0x6, '7': 0x7, '8': 0x8, '9': 0x9,
	' ': 0xA, '-': 0xB, '.': 0xC,
}

var bcdReverse = func() map[byte]byte {
	m := make(map[byte]byte, len(bcdAlphabet))
	for k, v := range bcdAlphabet {
		m[v] = k
	}
	return m
}()

func fitsBCDPlus(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if _, ok := bcdAlphabet[s[i]]; !ok {
			return false
		}
	}
	return true
}

func fitsSixBit(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x5F {
			return false
		}
	}
	return true
}

func fitsText(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}

// autoSelectEncoding implements the search order demands:
// six-bit, then BCD+, then binary-hex, then text. Auto-detection of
// binary-hex uses strict hex scanning only: a
// relaxed scan of "11 22" would otherwise be misread as hex instead of
// text.
func autoSelectEncoding(s string) (Encoding, *Error) {
	if len(s) == 0 {
		return EncodingEmpty, nil
	}
	switch {
	case fitsSixBit(s) && blockCount6Bit(len(s)) <= MaxFieldLen:
		return EncodingSixBit, nil
	case fitsBCDPlus(s) && (len(s)+1)/2 <= MaxFieldLen:
		return EncodingBCDPlus, nil
	case isStrictHex(s) && len(s)/2 <= MaxFieldLen:
		return EncodingBinaryHex, nil
	case fitsText(s) && len(s) <= MaxFieldLen:
		return EncodingText, nil
	default:
		return EncodingAuto, NewError(CodeAutoDetectFailed, LocationGeneral)
	}
}

func blockCount6Bit(srcLen int) int {
	return (srcLen*3 + 3) / 4
}

// packSixBit packs 4 source characters (each offset by 0x20, giving a
// six-bit code) into every 3 stored bytes, zero-padding (= space) the
// last partial group.
func packSixBit(s string) []byte {
	n := blockCount6Bit(len(s))
	out := make([]byte, n)
	codes := make([]byte, ((len(s)+3)/4)*4)
	for i := 0; i < len(s); i++ {
		codes[i] = s[i] - 0x20
	}
	for g := 0; g*4 < len(codes); g++ {
		v0, v1, v2, v3 := codes[g*4], codes[g*4+1], codes[g*4+2], codes[g*4+3]
		bi := g * 3
		if bi < n {
			out[bi] = v0 | (v1 << 6)
		}
		if bi+1 < n {
			out[bi+1] = (v1 >> 2) | (v2 << 4)
		}
		if bi+2 < n {
			out[bi+2] = (v2 >> 4) | (v3 << 2)
		}
	}
	return out
}

// unpackSixBit reverses packSixBit; stored is the wire data and srcLen
// is the decoded character count (stored_len*4/3), before
// trailing-space stripping.
func unpackSixBit(stored []byte, srcLen int) string {
	out := make([]byte, 0, srcLen)
	for g := 0; g*3 < len(stored) && len(out) < srcLen; g++ {
		var b0, b1, b2 byte
		b0 = stored[g*3]
		if g*3+1 < len(stored) {
			b1 = stored[g*3+1]
		}
		if g*3+2 < len(stored) {
			b2 = stored[g*3+2]
		}
		v0 := b0 & 0x3F
		v1 := ((b0 >> 6) & 0x03) | ((b1 & 0x0F) << 2)
		v2 := ((b1 >> 4) & 0x0F) | ((b2 & 0x03) << 4)
		v3 := (b2 >> 2) & 0x3F
		for _, v := range []byte{v0, v1, v2, v3} {
			if len(out) >= srcLen {
				break
			}
			out = append(out, v+0x20)
		}
	}
	return strings.TrimRight(string(out), " ")
}

// packBCDPlus packs two alphabet codes per byte. The unused nibble of an
// odd-length input is padded with the space code (0xA) rather than the
// literal zero nibble, so that decode's trailing-space strip recovers
// the original string exactly.
func packBCDPlus(s string) []byte {
	n := (len(s) + 1) / 2
	out := make([]byte, n)
	for i := 0; i < len(s); i++ {
		code := bcdAlphabet[s[i]]
		if i%2 == 0 {
			out[i/2] |= code
		} else {
			out[i/2] |= code << 4
		}
	}
	if len(s)%2 != 0 {
		out[n-1] |= bcdSpace << 4
	}
	return out
}

// unpackBCDPlus reverses packBCDPlus and strips a trailing pad.
func unpackBCDPlus(stored []byte) string {
	var sb strings.Builder
	for _, b := range stored {
		sb.WriteByte(bcdReverse[b&0x0F])
		sb.WriteByte(bcdReverse[b>>4])
	}
	return strings.TrimRight(sb.String(), " ")
}

// encodeField resolves f (which must not carry EncodingPreserve — that
// tag is resolved by the caller at the API boundary, see model.go
// resolvePreserve) to a concrete wire encoding and serializes it as a
// type/length byte followed by its data bytes.
func encodeField(f Field, loc Location, index int) ([]byte, Encoding, *Error) {
	enc := f.Encoding
	if enc == EncodingAuto && len(f.Value) == 0 {
		enc = EncodingEmpty
	}
	if enc == EncodingEmpty {
		return []byte{wireTagText | 0}, EncodingText, nil
	}
	if enc == EncodingAuto {
		var aerr *Error
		enc, aerr = autoSelectEncoding(f.Value)
		if aerr != nil {
			return nil, EncodingAuto, NewIndexedError(CodeAutoDetectFailed, loc, index)
		}
	}

	switch enc {
	case EncodingSixBit:
		if !fitsSixBit(f.Value) {
			return nil, enc, NewIndexedError(CodeInvalidEncoding, loc, index)
		}
		data := packSixBit(f.Value)
		if len(data) > MaxFieldLen {
			return nil, enc, NewIndexedError(CodeBufferTooBig, loc, index)
		}
		return append([]byte{wireTagSixBit | byte(len(data))}, data...), EncodingSixBit, nil

	case EncodingBCDPlus:
		if !fitsBCDPlus(f.Value) {
			return nil, enc, NewIndexedError(CodeInvalidEncoding, loc, index)
		}
		data := packBCDPlus(f.Value)
		if len(data) > MaxFieldLen {
			return nil, enc, NewIndexedError(CodeBufferTooBig, loc, index)
		}
		return append([]byte{wireTagBCD | byte(len(data))}, data...), EncodingBCDPlus, nil

	case EncodingBinaryHex:
		data, herr := hexToBin(f.Value, HexStrict, false)
		if herr != nil {
			return nil, enc, NewIndexedError(herr.Code, loc, index)
		}
		if len(data) > MaxFieldLen {
			return nil, enc, NewIndexedError(CodeBufferTooBig, loc, index)
		}
		return append([]byte{wireTagBinary | byte(len(data))}, data...), EncodingBinaryHex, nil

	case EncodingText:
		if !fitsText(f.Value) {
			return nil, enc, NewIndexedError(CodeNonPrintable, loc, index)
		}
		if len(f.Value) > MaxFieldLen {
			return nil, enc, NewIndexedError(CodeBufferTooBig, loc, index)
		}
		// A one-byte text field is stored with length 2 and a trailing
		// NUL, to avoid colliding with the 0xC1 terminator byte (text,
		// length 1).
		if len(f.Value) == 1 {
			return []byte{wireTagText | 2, f.Value[0], 0}, EncodingText, nil
		}
		return append([]byte{wireTagText | byte(len(f.Value))}, []byte(f.Value)...), EncodingText, nil

	default:
		return nil, enc, NewIndexedError(CodeInvalidEncoding, loc, index)
	}
}

// decodeField reads one wire field starting at wire[0]. It returns the
// decoded Field, the number of bytes consumed, whether the terminator
// was observed (in which case Field is the zero value and consumed is
// 1), and any error.
func decodeField(wire []byte, loc Location, index int) (Field, int, bool, *Error) {
	if len(wire) == 0 {
		return Field{}, 0, false, NewIndexedError(CodeMalformedData, loc, index)
	}
	typeLen := wire[0]
	if typeLen == fieldTerminator {
		return Field{}, 1, true, nil
	}
	tag := typeLen & wireTagMask
	length := int(typeLen & wireLenMask)
	if 1+length > len(wire) {
		return Field{}, 0, false, NewIndexedError(CodeMalformedData, loc, index)
	}
	data := wire[1 : 1+length]

	switch tag {
	case wireTagBinary:
		return Field{Value: bytesToHex(data), Encoding: EncodingBinaryHex}, 1 + length, false, nil

	case wireTagBCD:
		return Field{Value: unpackBCDPlus(data), Encoding: EncodingBCDPlus}, 1 + length, false, nil

	case wireTagSixBit:
		srcLen := (length * 4) / 3
		return Field{Value: unpackSixBit(data, srcLen), Encoding: EncodingSixBit}, 1 + length, false, nil

	case wireTagText:
		if length == 0 {
			return Field{Value: "", Encoding: EncodingText}, 1, false, nil
		}
		if length == 2 && data[1] == 0 {
			return Field{Value: string(data[0:1]), Encoding: EncodingText}, 1 + length, false, nil
		}
		return Field{Value: string(data), Encoding: EncodingText}, 1 + length, false, nil

	default:
		return Field{}, 0, false, NewIndexedError(CodeInvalidEncoding, loc, index)
	}
}
