// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package fru

import (
	"encoding/binary"

	"github.com/go-restruct/restruct"
)

// ManagementSubtype identifies the payload shape of a Management Access
// record.
type ManagementSubtype byte

// Management Access subtypes, IPMI FRU spec Table 18-6.
const (
	SubtypeSystemURL            ManagementSubtype = 1
	SubtypeSystemName           ManagementSubtype = 2
	SubtypeSystemPingAddress    ManagementSubtype = 3
	SubtypeComponentURL         ManagementSubtype = 4
	SubtypeComponentName        ManagementSubtype = 5
	SubtypeComponentPingAddress ManagementSubtype = 6
	SubtypeSystemUUID           ManagementSubtype = 7
)

func (s ManagementSubtype) String() string {
	switch s {
	case SubtypeSystemURL:
		return "System URL"
	case SubtypeSystemName:
		return "System Name"
	case SubtypeSystemPingAddress:
		return "System Ping Address"
	case SubtypeComponentURL:
		return "Component URL"
	case SubtypeComponentName:
		return "Component Name"
	case SubtypeComponentPingAddress:
		return "Component Ping Address"
	case SubtypeSystemUUID:
		return "System UUID"
	default:
		return "Unknown"
	}
}

type subtypeRange struct{ min, max int }

// subtypeSizes gives the min/max payload length (excluding the subtype
// byte itself) for each Management Access subtype, per IPMI FRU spec
// Table 18-6.
var subtypeSizes = map[ManagementSubtype]subtypeRange{
	SubtypeSystemURL:            {16, 256},
	SubtypeSystemName:           {1, 64},
	SubtypeSystemPingAddress:    {8, 64},
	SubtypeComponentURL:         {16, 256},
	SubtypeComponentName:        {1, 64},
	SubtypeComponentPingAddress: {8, 64},
	SubtypeSystemUUID:           {16, 16},
}

// RecordKind discriminates the Record tagged union.
type RecordKind int

const (
	// RecordManagementAccess carries Subtype and Value.
	RecordManagementAccess RecordKind = iota
	// RecordRaw carries RawType, RawEncoding and RawData: any multirecord
	// type the codec does not interpret is preserved verbatim.
	RecordRaw
)

// mrTypeManagementAccess is the wire record-type byte for a Management
// Access Record, IPMI FRU spec Table 16-2.
const mrTypeManagementAccess = 0x03

// mrRecordVersion is the only record format version this codec emits,
// and the default it requires on decode (bits 2..0 of the EOL/version
// byte).
const mrRecordVersion = 2

// Record is one multirecord-area entry.
type Record struct {
	Kind RecordKind `json:"kind"`

	// Valid when Kind == RecordManagementAccess.
	Subtype ManagementSubtype `json:"subtype,omitempty"`
	Value   string            `json:"value,omitempty"` // text, or a 32-character hex UUID for SubtypeSystemUUID

	// Valid when Kind == RecordRaw.
	RawType     byte     `json:"raw_type,omitempty"`
	RawEncoding Encoding `json:"raw_encoding,omitempty"` // EncodingText or EncodingBinaryHex
	RawData     string   `json:"raw_data,omitempty"`
}

// mrRecordHeader is the fixed 5-byte record header.
type mrRecordHeader struct {
	Type          byte
	EOLVer        byte
	DataLen       byte
	DataChecksum  byte
	HeaderChecksum byte
}

func makeEOLVer(eol bool, version byte) byte {
	b := version & 0x07
	if eol {
		b |= 0x80
	}
	return b
}

func parseEOLVer(b byte) (eol bool, version byte) {
	return b&0x80 != 0, b & 0x07
}

// uuidEncode converts a 32-hex-digit (dashed or not) UUID string into
// its 16-byte SMBIOS mixed-endian wire representation: time_low,
// time_mid and time_hi_and_version are byte-reversed (little-endian);
// clock_seq_* and node keep their natural (big-endian) byte order.
func uuidEncode(s string) ([]byte, *Error) {
	clean := stripUUIDDashes(s)
	if len(clean) != 32 {
		return nil, NewError(CodeMalformedData, LocationMultirecord)
	}
	raw, herr := hexToBin(clean, HexStrict, false)
	if herr != nil || len(raw) != 16 {
		return nil, NewError(CodeMalformedData, LocationMultirecord)
	}
	out := make([]byte, 16)
	reverseCopy(out[0:4], raw[0:4])
	reverseCopy(out[4:6], raw[4:6])
	reverseCopy(out[6:8], raw[6:8])
	copy(out[8:16], raw[8:16])
	return out, nil
}

// uuidDecode reverses uuidEncode, producing an uppercase, non-dashed
// 32-character hex string.
func uuidDecode(wire []byte) (string, *Error) {
	if len(wire) != 16 {
		return "", NewError(CodeMalformedData, LocationMultirecord)
	}
	raw := make([]byte, 16)
	reverseCopy(raw[0:4], wire[0:4])
	reverseCopy(raw[4:6], wire[4:6])
	reverseCopy(raw[6:8], wire[6:8])
	copy(raw[8:16], wire[8:16])
	return bytesToHex(raw), nil
}

func reverseCopy(dst, src []byte) {
	n := len(src)
	for i := 0; i < n; i++ {
		dst[i] = src[n-1-i]
	}
}

func stripUUIDDashes(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '-' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// isPrintableASCII reports whether every byte is in the printable ASCII
// range, the rule uses to pick Raw's interpretation tag.
func isPrintableASCII(data []byte) bool {
	for _, b := range data {
		if b < 0x20 || b > 0x7E {
			return false
		}
	}
	return true
}

// recordPayload builds the data bytes (excluding the 5-byte header) for
// r, along with its wire type byte.
func recordPayload(r Record, index int) (byte, []byte, *Error) {
	switch r.Kind {
	case RecordManagementAccess:
		if _, ok := subtypeSizes[r.Subtype]; !ok {
			return 0, nil, NewIndexedError(CodeBadMRSubtype, LocationMultirecord, index)
		}
		var sdata []byte
		if r.Subtype == SubtypeSystemUUID {
			uuid, err := uuidEncode(r.Value)
			if err != nil {
				return 0, nil, err
			}
			sdata = uuid
		} else {
			sdata = []byte(r.Value)
		}
		rng := subtypeSizes[r.Subtype]
		if len(sdata) < rng.min || len(sdata) > rng.max {
			return 0, nil, NewIndexedError(CodeSizeMismatch, LocationMultirecord, index)
		}
		payload := append([]byte{byte(r.Subtype)}, sdata...)
		return mrTypeManagementAccess, payload, nil

	case RecordRaw:
		var payload []byte
		switch r.RawEncoding {
		case EncodingBinaryHex:
			data, herr := hexToBin(r.RawData, HexStrict, false)
			if herr != nil {
				return 0, nil, NewIndexedError(herr.Code, LocationMultirecord, index)
			}
			payload = data
		default:
			payload = []byte(r.RawData)
		}
		return r.RawType, payload, nil

	default:
		return 0, nil, NewIndexedError(CodeUnsupportedMRType, LocationMultirecord, index)
	}
}

// EncodeRecords serializes the ordered multirecord list. The last
// record is marked with the end-of-list flag.
func EncodeRecords(records []Record) ([]byte, *Error) {
	if len(records) == 0 {
		return nil, NewError(CodeNoData, LocationMultirecord)
	}
	var out []byte
	for i, r := range records {
		wireType, payload, err := recordPayload(r, i)
		if err != nil {
			return nil, err
		}
		hdr := mrRecordHeader{
			Type:         wireType,
			EOLVer:       makeEOLVer(i == len(records)-1, mrRecordVersion),
			DataLen:      byte(len(payload)),
			DataChecksum: checksum(payload),
		}
		hdrBytes, rerr := restruct.Pack(binary.LittleEndian, &hdr)
		if rerr != nil {
			return nil, NewIndexedError(CodeInternal, LocationMultirecord, i).Wrap(rerr)
		}
		hdrBytes[4] = checksum(hdrBytes[:4])
		out = append(out, hdrBytes...)
		out = append(out, payload...)
	}
	return out, nil
}

// decodeRecord turns a validated (type, payload) pair into a Record.
func decodeRecord(wireType byte, payload []byte, index int, flags Flags) (Record, *Error) {
	if wireType == mrTypeManagementAccess {
		if len(payload) < 1 {
			return Record{}, NewIndexedError(CodeMalformedData, LocationMultirecord, index)
		}
		subtype := ManagementSubtype(payload[0])
		rng, ok := subtypeSizes[subtype]
		if !ok {
			return Record{}, NewIndexedError(CodeBadMRSubtype, LocationMultirecord, index)
		}
		sdata := payload[1:]
		if len(sdata) < rng.min || len(sdata) > rng.max {
			if !flags.Has(IgnoreMRDataLen) {
				return Record{}, NewIndexedError(CodeSizeMismatch, LocationMultirecord, index)
			}
			recordRelaxed(CodeSizeMismatch, LocationMultirecord, index)
		}
		if subtype == SubtypeSystemUUID {
			if len(sdata) != 16 {
				if flags.Has(IgnoreMRDataLen) {
					recordRelaxed(CodeSizeMismatch, LocationMultirecord, index)
					return Record{Kind: RecordManagementAccess, Subtype: subtype, Value: bytesToHex(sdata)}, nil
				}
				return Record{}, NewIndexedError(CodeSizeMismatch, LocationMultirecord, index)
			}
			value, uerr := uuidDecode(sdata)
			if uerr != nil {
				return Record{}, uerr
			}
			return Record{Kind: RecordManagementAccess, Subtype: subtype, Value: value}, nil
		}
		return Record{Kind: RecordManagementAccess, Subtype: subtype, Value: string(sdata)}, nil
	}

	enc := EncodingBinaryHex
	value := bytesToHex(payload)
	if isPrintableASCII(payload) {
		enc = EncodingText
		value = string(payload)
	}
	return Record{Kind: RecordRaw, RawType: wireType, RawEncoding: enc, RawData: value}, nil
}

// DecodeRecords parses the multirecord area starting at data[0], which
// must already be sliced to exactly the area's bytes (the file header
// carries no explicit multirecord length; the end-of-list flag is the
// only terminator).
func DecodeRecords(data []byte, flags Flags) ([]Record, *Error) {
	if len(data) == 0 {
		return nil, NewError(CodeNoData, LocationMultirecord)
	}

	var records []Record
	pos := 0
	sawEOL := false
	for pos < len(data) {
		if pos+5 > len(data) {
			break
		}
		var hdr mrRecordHeader
		if rerr := restruct.Unpack(data[pos:pos+5], binary.LittleEndian, &hdr); rerr != nil {
			return nil, NewIndexedError(CodeMalformedData, LocationMultirecord, len(records)).Wrap(rerr)
		}
		if checksum(data[pos:pos+4]) != hdr.HeaderChecksum {
			if !flags.Has(IgnoreRecordHeaderChecksum) {
				return nil, NewIndexedError(CodeBadRecordChecksum, LocationMultirecord, len(records))
			}
			recordRelaxed(CodeBadRecordChecksum, LocationMultirecord, len(records))
		}
		eol, version := parseEOLVer(hdr.EOLVer)
		if version != mrRecordVersion {
			if !flags.Has(IgnoreRecordVersion) {
				return nil, NewIndexedError(CodeBadVersion, LocationMultirecord, len(records))
			}
			recordRelaxed(CodeBadVersion, LocationMultirecord, len(records))
		}
		dataLen := int(hdr.DataLen)
		if pos+5+dataLen > len(data) {
			return nil, NewIndexedError(CodeSizeMismatch, LocationMultirecord, len(records))
		}
		payload := data[pos+5 : pos+5+dataLen]
		if checksum(payload) != hdr.DataChecksum {
			if !flags.Has(IgnoreRecordDataChecksum) {
				return nil, NewIndexedError(CodeBadRecordChecksum, LocationMultirecord, len(records))
			}
			recordRelaxed(CodeBadRecordChecksum, LocationMultirecord, len(records))
		}

		rec, err := decodeRecord(hdr.Type, payload, len(records), flags)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
		pos += 5 + dataLen
		if eol {
			sawEOL = true
			break
		}
	}

	if !sawEOL {
		if !flags.Has(IgnoreRecordNoEOL) {
			return nil, NewError(CodeMalformedData, LocationMultirecord)
		}
		recordRelaxed(CodeMalformedData, LocationMultirecord, NoIndex)
	}
	return records, nil
}
