// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package fru

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChassisRoundTrip(t *testing.T) {
	c := &ChassisInfo{
		Type:         0x17,
		PartNumber:   Field{Value: "PN-001", Encoding: EncodingAuto},
		SerialNumber: Field{Value: "SN-001", Encoding: EncodingAuto},
	}
	require.Nil(t, c.custom.add(Tail, Field{Value: "extra", Encoding: EncodingAuto}))

	wire, err := EncodeChassis(c)
	require.Nil(t, err)
	assert.Equal(t, 0, len(wire)%8, "area must be block-aligned")
	assert.True(t, checksumValid(wire))

	decoded, derr := DecodeChassis(wire, 0)
	require.Nil(t, derr)
	assert.Equal(t, c.Type, decoded.Type)
	assert.Equal(t, "PN-001", decoded.PartNumber.Value)
	assert.Equal(t, "SN-001", decoded.SerialNumber.Value)
	assert.Equal(t, []Field{{Value: "extra", Encoding: EncodingText}}, decoded.custom.toSlice())
}

func TestChassisBadChecksumRejected(t *testing.T) {
	c := &ChassisInfo{Type: 1, PartNumber: Field{Value: "A"}, SerialNumber: Field{Value: "B"}}
	wire, err := EncodeChassis(c)
	require.Nil(t, err)
	wire[len(wire)-1] ^= 0xFF

	_, derr := DecodeChassis(wire, 0)
	require.NotNil(t, derr)
	assert.Equal(t, CodeBadChecksum, derr.Code)
}

func TestChassisBadChecksumToleratedWithFlag(t *testing.T) {
	c := &ChassisInfo{Type: 1, PartNumber: Field{Value: "A"}, SerialNumber: Field{Value: "B"}}
	wire, err := EncodeChassis(c)
	require.Nil(t, err)
	wire[len(wire)-1] ^= 0xFF

	_, derr := DecodeChassis(wire, IgnoreAreaChecksum)
	assert.Nil(t, derr)
}

func TestBoardRoundTripExplicitDate(t *testing.T) {
	b := &BoardInfo{
		Language:     0,
		Manufacturer: Field{Value: "ACME"},
		ProductName:  Field{Value: "Widget"},
		SerialNumber: Field{Value: "SN-1"},
		PartNumber:   Field{Value: "PN-1"},
		FRUFileID:    Field{Value: "F-1"},
	}
	b.SetDate(time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC))

	wire, err := EncodeBoard(b)
	require.Nil(t, err)

	decoded, derr := DecodeBoard(wire, 0)
	require.Nil(t, derr)
	assert.True(t, decoded.Date.Equal(b.Date))
	assert.Equal(t, "ACME", decoded.Manufacturer.Value)
	assert.Equal(t, "F-1", decoded.FRUFileID.Value)
}

func TestBoardDateEpochCollisionRoundsUp(t *testing.T) {
	b := &BoardInfo{
		Manufacturer: Field{Value: "A"}, ProductName: Field{Value: "B"},
		SerialNumber: Field{Value: "C"}, PartNumber: Field{Value: "D"}, FRUFileID: Field{Value: "E"},
	}
	b.SetDate(boardEpoch) // exactly minute 0, collides with "unspecified"

	wire, err := EncodeBoard(b)
	require.Nil(t, err)

	minutes := getMinutes(wire)
	assert.Equal(t, 1, minutes, "minute 0 must round up to avoid the unspecified sentinel")

	decoded, derr := DecodeBoard(wire, 0)
	require.Nil(t, derr)
	assert.True(t, decoded.dateSet)
}

func TestBoardDateUnspecified(t *testing.T) {
	b := &BoardInfo{
		Manufacturer: Field{Value: "A"}, ProductName: Field{Value: "B"},
		SerialNumber: Field{Value: "C"}, PartNumber: Field{Value: "D"}, FRUFileID: Field{Value: "E"},
	}
	// Never set a date: dateSet stays false, AutoTimestamp false.
	wire, err := EncodeBoard(b)
	require.Nil(t, err)
	assert.Equal(t, 0, getMinutes(wire))

	decoded, derr := DecodeBoard(wire, 0)
	require.Nil(t, derr)
	assert.False(t, decoded.dateSet)
	assert.True(t, decoded.Date.IsZero())
}

func TestBoardAutoTimestamp(t *testing.T) {
	b := &BoardInfo{
		AutoTimestamp: true,
		Manufacturer:  Field{Value: "A"}, ProductName: Field{Value: "B"},
		SerialNumber: Field{Value: "C"}, PartNumber: Field{Value: "D"}, FRUFileID: Field{Value: "E"},
	}
	wire, err := EncodeBoard(b)
	require.Nil(t, err)

	decoded, derr := DecodeBoard(wire, 0)
	require.Nil(t, derr)
	assert.WithinDuration(t, time.Now().UTC(), decoded.Date, 30*time.Second)
}

func TestBoardClearDate(t *testing.T) {
	b := &BoardInfo{}
	b.SetDate(time.Now())
	b.ClearDate()
	assert.False(t, b.dateSet)
	assert.False(t, b.AutoTimestamp)
	assert.True(t, b.Date.IsZero())
}

func TestProductRoundTrip(t *testing.T) {
	p := &ProductInfo{
		Manufacturer: Field{Value: "ACME"},
		ProductName:  Field{Value: "Widget"},
		PartNumber:   Field{Value: "PN-1"},
		Version:      Field{Value: "1.0"},
		SerialNumber: Field{Value: "SN-1"},
		AssetTag:     Field{Value: "AT-1"},
		FRUFileID:    Field{Value: "F-1"},
	}
	wire, err := EncodeProduct(p)
	require.Nil(t, err)
	assert.Equal(t, 0, len(wire)%8)

	decoded, derr := DecodeProduct(wire, 0)
	require.Nil(t, derr)
	assert.Equal(t, "ACME", decoded.Manufacturer.Value)
	assert.Equal(t, "AT-1", decoded.AssetTag.Value)
}

func TestDecodeAreaRejectsBadVersion(t *testing.T) {
	c := &ChassisInfo{PartNumber: Field{Value: "A"}, SerialNumber: Field{Value: "B"}}
	wire, err := EncodeChassis(c)
	require.Nil(t, err)
	wire[0] = 0x02 // bad version nibble; the checksum is now stale too, but the version is checked first

	_, derr := DecodeChassis(wire, 0)
	require.NotNil(t, derr)
	assert.Equal(t, CodeBadVersion, derr.Code)
}

func TestDecodeAreaToleratesBadVersionWithFlag(t *testing.T) {
	c := &ChassisInfo{PartNumber: Field{Value: "A"}, SerialNumber: Field{Value: "B"}}
	wire, err := EncodeChassis(c)
	require.Nil(t, err)
	// Changing the version byte also invalidates the checksum, so both
	// relaxations are needed together.
	wire[0] = 0x02

	_, derr := DecodeChassis(wire, IgnoreAreaVersion|IgnoreAreaChecksum)
	assert.Nil(t, derr)
}
