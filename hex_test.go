// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package fru

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToBinStrict(t *testing.T) {
	data, err := hexToBin("DEADBEEF", HexStrict, false)
	require.Nil(t, err)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, data)
}

func TestHexToBinStrictRejectsSeparator(t *testing.T) {
	_, err := hexToBin("DE AD", HexStrict, false)
	require.NotNil(t, err)
	assert.Equal(t, CodeNonHex, err.Code)
}

func TestHexToBinRelaxedSkipsSeparators(t *testing.T) {
	data, err := hexToBin("DE:AD-BE.EF", HexRelaxed, false)
	require.Nil(t, err)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, data)
}

func TestHexToBinRelaxedRejectsMidByteSeparator(t *testing.T) {
	_, err := hexToBin("D-EAD", HexRelaxed, false)
	require.NotNil(t, err)
	assert.Equal(t, CodeOddNibbleCount, err.Code)
}

func TestHexToBinOddDigitCount(t *testing.T) {
	_, err := hexToBin("ABC", HexStrict, false)
	require.NotNil(t, err)
	assert.Equal(t, CodeOddNibbleCount, err.Code)
}

func TestHexToBinSizeOnly(t *testing.T) {
	data, err := hexToBin("DEADBEEF", HexStrict, true)
	require.Nil(t, err)
	assert.Equal(t, make([]byte, 4), data)
}

func TestBytesToHexRoundTrip(t *testing.T) {
	original := []byte{0x00, 0x7F, 0xFF, 0x10}
	hexStr := bytesToHex(original)
	assert.Equal(t, "007FFF10", hexStr)

	back, err := hexToBin(hexStr, HexStrict, false)
	require.Nil(t, err)
	assert.Equal(t, original, back)
}

func TestIsStrictHex(t *testing.T) {
	assert.True(t, isStrictHex("1122"))
	assert.False(t, isStrictHex("11 22"))
	assert.False(t, isStrictHex("ZZZZ"))
}

func TestChecksum(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	sum := checksum(data)
	full := append(append([]byte{}, data...), sum)
	assert.True(t, checksumValid(full))
}

func TestChecksumValidRejectsTampering(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	sum := checksum(data)
	full := append(append([]byte{}, data...), sum)
	full[0] ^= 0xFF
	assert.False(t, checksumValid(full))
}

func TestBlockAlign(t *testing.T) {
	assert.Equal(t, 0, blockAlign(0))
	assert.Equal(t, 8, blockAlign(1))
	assert.Equal(t, 8, blockAlign(8))
	assert.Equal(t, 16, blockAlign(9))
}

func TestBlockCount(t *testing.T) {
	assert.Equal(t, 0, blockCount(0))
	assert.Equal(t, 1, blockCount(1))
	assert.Equal(t, 1, blockCount(8))
	assert.Equal(t, 2, blockCount(9))
}
