// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package fru

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordsRoundTripManagementAccess(t *testing.T) {
	records := []Record{
		{Kind: RecordManagementAccess, Subtype: SubtypeSystemName, Value: "rack-42"},
		{Kind: RecordManagementAccess, Subtype: SubtypeSystemURL, Value: "http://example.com/mgmt"},
	}
	wire, err := EncodeRecords(records)
	require.Nil(t, err)

	decoded, derr := DecodeRecords(wire, 0)
	require.Nil(t, derr)
	assert.Equal(t, records, decoded)
}

func TestRecordsLastRecordCarriesEOLFlag(t *testing.T) {
	records := []Record{
		{Kind: RecordManagementAccess, Subtype: SubtypeSystemName, Value: "a"},
		{Kind: RecordManagementAccess, Subtype: SubtypeSystemName, Value: "bb"},
	}
	wire, err := EncodeRecords(records)
	require.Nil(t, err)

	eol0, _ := parseEOLVer(wire[1])
	assert.False(t, eol0, "first record must not carry the end-of-list flag")

	firstLen := int(wire[2])
	secondHdrOffset := 5 + firstLen
	eol1, version := parseEOLVer(wire[secondHdrOffset+1])
	assert.True(t, eol1, "last record must carry the end-of-list flag")
	assert.Equal(t, byte(mrRecordVersion), version)
}

func TestRecordsUUIDRoundTrip(t *testing.T) {
	records := []Record{
		{Kind: RecordManagementAccess, Subtype: SubtypeSystemUUID, Value: "0123456789ABCDEF0123456789ABCDEF"},
	}
	wire, err := EncodeRecords(records)
	require.Nil(t, err)

	decoded, derr := DecodeRecords(wire, 0)
	require.Nil(t, derr)
	require.Len(t, decoded, 1)
	assert.Equal(t, "0123456789ABCDEF0123456789ABCDEF", decoded[0].Value)
}

func TestUUIDEncodeDecodeMixedEndian(t *testing.T) {
	// time_low/time_mid/time_hi_and_version are byte-reversed; the rest
	// keeps its natural byte order.
	wire, err := uuidEncode("00112233445566778899AABBCCDDEEFF")
	require.Nil(t, err)
	assert.Equal(t, byte(0x33), wire[0], "time_low reversed: last byte of time_low comes first")
	assert.Equal(t, byte(0x88), wire[8], "clock_seq/node keep natural order")

	back, derr := uuidDecode(wire)
	require.Nil(t, derr)
	assert.Equal(t, "00112233445566778899AABBCCDDEEFF", back)
}

func TestUUIDEncodeRejectsWrongLength(t *testing.T) {
	_, err := uuidEncode("ABCD")
	require.NotNil(t, err)
	assert.Equal(t, CodeMalformedData, err.Code)
}

func TestUUIDEncodeStripsDashes(t *testing.T) {
	a, err := uuidEncode("01234567-89AB-CDEF-0123-456789ABCDEF")
	require.Nil(t, err)
	b, err := uuidEncode("0123456789ABCDEF0123456789ABCDEF")
	require.Nil(t, err)
	assert.Equal(t, a, b)
}

func TestRecordsRawPreservesPrintablePayloadAsText(t *testing.T) {
	records := []Record{
		{Kind: RecordRaw, RawType: 0x99, RawEncoding: EncodingText, RawData: "hello"},
	}
	wire, err := EncodeRecords(records)
	require.Nil(t, err)

	decoded, derr := DecodeRecords(wire, 0)
	require.Nil(t, derr)
	require.Len(t, decoded, 1)
	assert.Equal(t, EncodingText, decoded[0].RawEncoding)
	assert.Equal(t, "hello", decoded[0].RawData)
}

func TestRecordsRawNonPrintableBecomesHex(t *testing.T) {
	records := []Record{
		{Kind: RecordRaw, RawType: 0x99, RawEncoding: EncodingBinaryHex, RawData: "00FF10"},
	}
	wire, err := EncodeRecords(records)
	require.Nil(t, err)

	decoded, derr := DecodeRecords(wire, 0)
	require.Nil(t, derr)
	require.Len(t, decoded, 1)
	assert.Equal(t, EncodingBinaryHex, decoded[0].RawEncoding)
	assert.Equal(t, "00FF10", decoded[0].RawData)
}

func TestEncodeRecordsRejectsEmptyList(t *testing.T) {
	_, err := EncodeRecords(nil)
	require.NotNil(t, err)
	assert.Equal(t, CodeNoData, err.Code)
}

func TestEncodeRecordsRejectsBadSubtypeSize(t *testing.T) {
	_, err := EncodeRecords([]Record{{Kind: RecordManagementAccess, Subtype: SubtypeSystemUUID, Value: "AB"}})
	require.NotNil(t, err)
	assert.Equal(t, CodeMalformedData, err.Code)
}

func TestEncodeRecordsRejectsUnknownSubtype(t *testing.T) {
	_, err := EncodeRecords([]Record{{Kind: RecordManagementAccess, Subtype: ManagementSubtype(0xEE), Value: "x"}})
	require.NotNil(t, err)
	assert.Equal(t, CodeBadMRSubtype, err.Code)
	assert.Equal(t, 0, err.Index)
}

func TestDecodeRecordsRejectsMissingEOL(t *testing.T) {
	records := []Record{{Kind: RecordManagementAccess, Subtype: SubtypeSystemName, Value: "a"}}
	wire, err := EncodeRecords(records)
	require.Nil(t, err)
	wire[1] &^= 0x80 // clear the EOL bit
	wire[4] = checksum(wire[:4])

	_, derr := DecodeRecords(wire, 0)
	require.NotNil(t, derr)
	assert.Equal(t, CodeMalformedData, derr.Code)
}

func TestDecodeRecordsToleratesMissingEOLWithFlag(t *testing.T) {
	records := []Record{{Kind: RecordManagementAccess, Subtype: SubtypeSystemName, Value: "a"}}
	wire, err := EncodeRecords(records)
	require.Nil(t, err)
	wire[1] &^= 0x80
	wire[4] = checksum(wire[:4])

	_, derr := DecodeRecords(wire, IgnoreRecordNoEOL)
	assert.Nil(t, derr)
}

func TestDecodeRecordsRejectsBadHeaderChecksum(t *testing.T) {
	records := []Record{{Kind: RecordManagementAccess, Subtype: SubtypeSystemName, Value: "a"}}
	wire, err := EncodeRecords(records)
	require.Nil(t, err)
	wire[4] ^= 0xFF

	_, derr := DecodeRecords(wire, 0)
	require.NotNil(t, derr)
	assert.Equal(t, CodeBadRecordChecksum, derr.Code)
}

func TestDecodeRecordsRejectsBadDataChecksum(t *testing.T) {
	records := []Record{{Kind: RecordManagementAccess, Subtype: SubtypeSystemName, Value: "abc"}}
	wire, err := EncodeRecords(records)
	require.Nil(t, err)
	wire[5] ^= 0xFF // tamper the payload itself, leaving the data checksum stale (the header checksum covers only the header)

	_, derr := DecodeRecords(wire, 0)
	require.NotNil(t, derr)
	assert.Equal(t, CodeBadRecordChecksum, derr.Code)
}
