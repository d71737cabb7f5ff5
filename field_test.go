// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package fru

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoSelectEncodingOrder(t *testing.T) {
	// Six-bit's alphabet (0x20-0x5F) is a superset of BCD+'s (digits,
	// space, dash, period), so any BCD+-eligible value is also six-bit
	// eligible and six-bit, tried first, always wins for pure-digit
	// input.
	enc, err := autoSelectEncoding("12345")
	require.Nil(t, err)
	assert.Equal(t, EncodingSixBit, enc)

	enc, err = autoSelectEncoding("HELLO WORLD!")
	require.Nil(t, err)
	assert.Equal(t, EncodingSixBit, enc)

	// Lowercase falls outside six-bit's range and isn't valid hex, so it
	// falls through to text.
	enc, err = autoSelectEncoding("lowercase")
	require.Nil(t, err)
	assert.Equal(t, EncodingText, enc)
}

func TestAutoSelectEncodingEmpty(t *testing.T) {
	enc, err := autoSelectEncoding("")
	require.Nil(t, err)
	assert.Equal(t, EncodingEmpty, enc)
}

func TestFieldRoundTripText(t *testing.T) {
	f := Field{Value: "Hello World", Encoding: EncodingText}
	wire, enc, err := encodeField(f, LocationBoard, 0)
	require.Nil(t, err)
	assert.Equal(t, EncodingText, enc)

	decoded, consumed, term, derr := decodeField(wire, LocationBoard, 0)
	require.Nil(t, derr)
	assert.False(t, term)
	assert.Equal(t, len(wire), consumed)
	assert.Equal(t, f.Value, decoded.Value)
	assert.Equal(t, EncodingText, decoded.Encoding)
}

func TestFieldRoundTripOneByteText(t *testing.T) {
	f := Field{Value: "X", Encoding: EncodingText}
	wire, _, err := encodeField(f, LocationBoard, 0)
	require.Nil(t, err)
	// length 2, trailing NUL
	assert.Equal(t, byte(2), wire[0]&wireLenMask)
	assert.Equal(t, byte(0), wire[2])

	decoded, consumed, term, derr := decodeField(wire, LocationBoard, 0)
	require.Nil(t, derr)
	assert.False(t, term)
	assert.Equal(t, 3, consumed)
	assert.Equal(t, "X", decoded.Value)
}

func TestFieldRoundTripBCDPlus(t *testing.T) {
	f := Field{Value: "123-456", Encoding: EncodingBCDPlus}
	wire, enc, err := encodeField(f, LocationBoard, 0)
	require.Nil(t, err)
	assert.Equal(t, EncodingBCDPlus, enc)

	decoded, _, term, derr := decodeField(wire, LocationBoard, 0)
	require.Nil(t, derr)
	assert.False(t, term)
	assert.Equal(t, "123-456", decoded.Value)
}

func TestFieldRoundTripSixBit(t *testing.T) {
	f := Field{Value: "ACME INC", Encoding: EncodingSixBit}
	wire, enc, err := encodeField(f, LocationBoard, 0)
	require.Nil(t, err)
	assert.Equal(t, EncodingSixBit, enc)

	decoded, _, term, derr := decodeField(wire, LocationBoard, 0)
	require.Nil(t, derr)
	assert.False(t, term)
	assert.Equal(t, "ACME INC", decoded.Value)
}

func TestFieldRoundTripBinaryHex(t *testing.T) {
	f := Field{Value: "DEADBEEF", Encoding: EncodingBinaryHex}
	wire, enc, err := encodeField(f, LocationBoard, 0)
	require.Nil(t, err)
	assert.Equal(t, EncodingBinaryHex, enc)

	decoded, _, term, derr := decodeField(wire, LocationBoard, 0)
	require.Nil(t, derr)
	assert.False(t, term)
	assert.Equal(t, "DEADBEEF", decoded.Value)
}

func TestFieldEmptyEncodesAsTextZero(t *testing.T) {
	f := Field{Value: "", Encoding: EncodingAuto}
	wire, enc, err := encodeField(f, LocationBoard, 0)
	require.Nil(t, err)
	assert.Equal(t, EncodingText, enc)
	assert.Equal(t, []byte{wireTagText | 0}, wire)
}

func TestDecodeFieldTerminator(t *testing.T) {
	decoded, consumed, term, err := decodeField([]byte{fieldTerminator, 0xFF}, LocationBoard, 0)
	require.Nil(t, err)
	assert.True(t, term)
	assert.Equal(t, 1, consumed)
	assert.Equal(t, Field{}, decoded)
}

func TestEncodeFieldRejectsOversizedBCD(t *testing.T) {
	long := make([]byte, 200)
	for i := range long {
		long[i] = '1'
	}
	f := Field{Value: string(long), Encoding: EncodingBCDPlus}
	_, _, err := encodeField(f, LocationBoard, 3)
	require.NotNil(t, err)
	assert.Equal(t, CodeBufferTooBig, err.Code)
	assert.Equal(t, 3, err.Index)
}

func TestEncodeFieldRejectsNonHexAsBinary(t *testing.T) {
	f := Field{Value: "not-hex!", Encoding: EncodingBinaryHex}
	_, _, err := encodeField(f, LocationBoard, 0)
	require.NotNil(t, err)
	assert.Equal(t, CodeNonHex, err.Code)
}
