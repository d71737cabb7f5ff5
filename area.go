// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package fru

import (
	"encoding/binary"
	"time"

	"github.com/go-restruct/restruct"
)

// AreaType enumerates the five FRU area slots.
type AreaType int

// Area types, in their natural enumeration order (used as the default
// AUTO ordering).
const (
	AreaInternalUse AreaType = iota
	AreaChassis
	AreaBoard
	AreaProduct
	AreaMultirecord
	numAreaTypes
)

func (a AreaType) String() string {
	switch a {
	case AreaInternalUse:
		return "Internal-Use"
	case AreaChassis:
		return "Chassis-Info"
	case AreaBoard:
		return "Board-Info"
	case AreaProduct:
		return "Product-Info"
	case AreaMultirecord:
		return "Multirecord"
	default:
		return "Unknown"
	}
}

func (a AreaType) location() Location {
	switch a {
	case AreaInternalUse:
		return LocationInternal
	case AreaChassis:
		return LocationChassis
	case AreaBoard:
		return LocationBoard
	case AreaProduct:
		return LocationProduct
	case AreaMultirecord:
		return LocationMultirecord
	default:
		return LocationGeneral
	}
}

// areaVersionNibble is the only version this codec emits or, by
// default, accepts (low nibble of the header version byte).
const areaVersionNibble = 0x01

// boardEpoch is the FRU board-manufacture-date base: 1996-01-01 00:00 UTC.
var boardEpoch = time.Date(1996, 1, 1, 0, 0, 0, 0, time.UTC)

// maxBoardMinutes is 2^24-1, the largest minute offset the 24-bit
// little-endian date field can represent.
const maxBoardMinutes = 1<<24 - 1

// DefaultChassisType is the SMBIOS chassis-type code init() assigns,
// "Rack Mount Chassis".
const DefaultChassisType = 0x17

// infoAreaHeader is the common 3-byte chassis/product header, and the
// first 3 bytes of the board header. Fixed-width, so it is packed with
// go-restruct (plain byte fields, no struct tags) rather than hand-rolled
// byte slicing; decoding reads the header bytes directly.
type infoAreaHeader struct {
	Version byte
	Length  byte
	Type    byte
}

// boardAreaHeader extends infoAreaHeader with the 3-byte manufacture
// date, little-endian minutes since boardEpoch.
type boardAreaHeader struct {
	Version  byte
	Length   byte
	Language byte
	Date     [3]byte
}

// ChassisInfo is the chassis information area.
type ChassisInfo struct {
	Type         byte
	PartNumber   Field
	SerialNumber Field
	custom       list[Field]
}

// BoardInfo is the board information area.
type BoardInfo struct {
	Language      byte
	Date          time.Time
	AutoTimestamp bool
	// dateSet distinguishes an explicitly-assigned manufacture date from
	// the Go zero time.Time, which must never be conflated with "date
	// unspecified".
	dateSet bool

	Manufacturer Field
	ProductName  Field
	SerialNumber Field
	PartNumber   Field
	FRUFileID    Field
	custom       list[Field]
}

// ProductInfo is the product information area.
type ProductInfo struct {
	Language     byte
	Manufacturer Field
	ProductName  Field
	PartNumber   Field
	Version      Field
	SerialNumber Field
	AssetTag     Field
	FRUFileID    Field
	custom       list[Field]
}

// SetDate sets the board manufacture date explicitly, clearing
// AutoTimestamp.
func (b *BoardInfo) SetDate(t time.Time) {
	b.Date = t.UTC()
	b.dateSet = true
	b.AutoTimestamp = false
}

// ClearDate marks the manufacture date unspecified.
func (b *BoardInfo) ClearDate() {
	b.Date = time.Time{}
	b.dateSet = false
	b.AutoTimestamp = false
}

// encodeFieldList serializes mandatory followed by custom fields,
// followed by the terminator byte. loc scopes any error raised.
func encodeFieldList(mandatory []Field, custom []Field, loc Location) ([]byte, *Error) {
	var body []byte
	for i, f := range mandatory {
		wire, _, err := encodeField(f, loc, i)
		if err != nil {
			return nil, err
		}
		body = append(body, wire...)
	}
	for i, f := range custom {
		wire, _, err := encodeField(f, loc, i)
		if err != nil {
			return nil, err
		}
		body = append(body, wire...)
	}
	body = append(body, fieldTerminator)
	return body, nil
}

// finishArea appends zero padding to the next 8-byte boundary, writes
// the block-count length byte at header[1], and appends the checksum
// byte that makes the whole area sum to zero mod 256.
func finishArea(header []byte, body []byte) []byte {
	raw := append(append([]byte{}, header...), body...)
	total := len(raw) + 1 // + checksum byte
	padded := blockAlign(total)
	raw = append(raw, make([]byte, padded-total)...)
	raw[1] = byte(padded / 8)
	raw = append(raw, checksum(raw))
	return raw
}

// decodeFieldList reads mandatoryCount mandatory fields followed by
// custom fields up to the terminator, starting at data[offset:]. A
// missing mandatory field is always fatal, even under relaxed parsing;
// a missing terminator is controlled by flags.IgnoreAreaEOF.
func decodeFieldList(data []byte, offset int, mandatoryCount int, loc Location, flags Flags) (mandatory []Field, custom []Field, err *Error) {
	pos := offset
	for i := 0; i < mandatoryCount; i++ {
		if pos >= len(data) {
			return nil, nil, NewIndexedError(CodeMalformedData, loc, i)
		}
		if data[pos] == fieldTerminator {
			return nil, nil, NewIndexedError(CodeMalformedData, loc, i)
		}
		f, n, isTerm, ferr := decodeField(data[pos:], loc, i)
		if ferr != nil {
			return nil, nil, ferr
		}
		if isTerm {
			return nil, nil, NewIndexedError(CodeMalformedData, loc, i)
		}
		mandatory = append(mandatory, f)
		pos += n
	}

	for idx := 0; ; idx++ {
		if pos >= len(data) {
			if !flags.Has(IgnoreAreaEOF) {
				return nil, nil, NewError(CodeUnterminatedArea, loc)
			}
			recordRelaxed(CodeUnterminatedArea, loc, NoIndex)
			break
		}
		f, n, isTerm, ferr := decodeField(data[pos:], loc, idx)
		if ferr != nil {
			return nil, nil, ferr
		}
		pos += n
		if isTerm {
			break
		}
		custom = append(custom, f)
	}
	return mandatory, custom, nil
}

// decodeAreaCommon validates the version/checksum of a chassis/board/
// product area and returns its declared byte length.
func decodeAreaCommon(data []byte, loc Location, flags Flags) (int, *Error) {
	if len(data) < 3 {
		return 0, NewError(CodeBufferTooSmall, loc)
	}
	if data[0]&0x0F != areaVersionNibble {
		if !flags.Has(IgnoreAreaVersion) {
			return 0, NewError(CodeBadVersion, loc)
		}
		recordRelaxed(CodeBadVersion, loc, NoIndex)
	}
	areaLen := int(data[1]) * 8
	if areaLen == 0 || areaLen > len(data) {
		return 0, NewError(CodeSizeMismatch, loc)
	}
	if !checksumValid(data[:areaLen]) {
		if !flags.Has(IgnoreAreaChecksum) {
			return 0, NewError(CodeBadChecksum, loc)
		}
		recordRelaxed(CodeBadChecksum, loc, NoIndex)
	}
	return areaLen, nil
}

// EncodeChassis serializes a chassis information area.
func EncodeChassis(c *ChassisInfo) ([]byte, *Error) {
	hdr, rerr := restruct.Pack(binary.LittleEndian, &infoAreaHeader{
		Version: areaVersionNibble,
		Type:    c.Type,
	})
	if rerr != nil {
		return nil, NewError(CodeInternal, LocationChassis).Wrap(rerr)
	}
	body, err := encodeFieldList([]Field{c.PartNumber, c.SerialNumber}, c.custom.toSlice(), LocationChassis)
	if err != nil {
		return nil, err
	}
	return finishArea(hdr, body), nil
}

// DecodeChassis parses a chassis information area.
func DecodeChassis(data []byte, flags Flags) (*ChassisInfo, *Error) {
	areaLen, err := decodeAreaCommon(data, LocationChassis, flags)
	if err != nil {
		return nil, err
	}
	mandatory, custom, err := decodeFieldList(data[:areaLen], 3, 2, LocationChassis, flags)
	if err != nil {
		return nil, err
	}
	c := &ChassisInfo{
		Type:         data[2],
		PartNumber:   mandatory[0],
		SerialNumber: mandatory[1],
	}
	c.custom.fromSlice(custom)
	return c, nil
}

// EncodeBoard serializes a board information area.
func EncodeBoard(b *BoardInfo) ([]byte, *Error) {
	var dateBytes [3]byte
	switch {
	case b.AutoTimestamp:
		// Round to the nearest minute so the stored time is within 30s of now.
		minutes := int((time.Now().UTC().Sub(boardEpoch) + 30*time.Second) / time.Minute)
		if minutes <= 0 {
			minutes = 1
		}
		if minutes > maxBoardMinutes {
			return nil, NewError(CodeBoardDateOutOfRange, LocationBoard)
		}
		putMinutes(&dateBytes, minutes)
	case !b.dateSet || b.Date.IsZero():
		// dateBytes stays zero: "unspecified".
	default:
		minutes := int(b.Date.UTC().Sub(boardEpoch) / time.Minute)
		if minutes < 0 || minutes > maxBoardMinutes {
			return nil, NewError(CodeBoardDateOutOfRange, LocationBoard)
		}
		if minutes == 0 {
			// Collides with the "unspecified" sentinel; round up to the
			// next representable minute.
			minutes = 1
		}
		putMinutes(&dateBytes, minutes)
	}

	hdr, rerr := restruct.Pack(binary.LittleEndian, &boardAreaHeader{
		Version:  areaVersionNibble,
		Language: b.Language,
		Date:     dateBytes,
	})
	if rerr != nil {
		return nil, NewError(CodeInternal, LocationBoard).Wrap(rerr)
	}
	body, err := encodeFieldList(
		[]Field{b.Manufacturer, b.ProductName, b.SerialNumber, b.PartNumber, b.FRUFileID},
		b.custom.toSlice(), LocationBoard)
	if err != nil {
		return nil, err
	}
	return finishArea(hdr, body), nil
}

// DecodeBoard parses a board information area.
func DecodeBoard(data []byte, flags Flags) (*BoardInfo, *Error) {
	areaLen, err := decodeAreaCommon(data, LocationBoard, flags)
	if err != nil {
		return nil, err
	}
	if areaLen < 6 {
		return nil, NewError(CodeBufferTooSmall, LocationBoard)
	}
	minutes := getMinutes(data)
	mandatory, custom, err := decodeFieldList(data[:areaLen], 6, 5, LocationBoard, flags)
	if err != nil {
		return nil, err
	}
	b := &BoardInfo{
		Language:     data[2],
		Manufacturer: mandatory[0],
		ProductName:  mandatory[1],
		SerialNumber: mandatory[2],
		PartNumber:   mandatory[3],
		FRUFileID:    mandatory[4],
	}
	if minutes == 0 {
		b.dateSet = false
		b.AutoTimestamp = false
	} else {
		b.Date = boardEpoch.Add(time.Duration(minutes) * time.Minute)
		b.dateSet = true
	}
	b.custom.fromSlice(custom)
	return b, nil
}

// EncodeProduct serializes a product information area.
func EncodeProduct(p *ProductInfo) ([]byte, *Error) {
	hdr, rerr := restruct.Pack(binary.LittleEndian, &infoAreaHeader{
		Version: areaVersionNibble,
		Type:    p.Language,
	})
	if rerr != nil {
		return nil, NewError(CodeInternal, LocationProduct).Wrap(rerr)
	}
	body, err := encodeFieldList(
		[]Field{p.Manufacturer, p.ProductName, p.PartNumber, p.Version, p.SerialNumber, p.AssetTag, p.FRUFileID},
		p.custom.toSlice(), LocationProduct)
	if err != nil {
		return nil, err
	}
	return finishArea(hdr, body), nil
}

// DecodeProduct parses a product information area.
func DecodeProduct(data []byte, flags Flags) (*ProductInfo, *Error) {
	areaLen, err := decodeAreaCommon(data, LocationProduct, flags)
	if err != nil {
		return nil, err
	}
	mandatory, custom, err := decodeFieldList(data[:areaLen], 3, 7, LocationProduct, flags)
	if err != nil {
		return nil, err
	}
	p := &ProductInfo{
		Language:     data[2],
		Manufacturer: mandatory[0],
		ProductName:  mandatory[1],
		PartNumber:   mandatory[2],
		Version:      mandatory[3],
		SerialNumber: mandatory[4],
		AssetTag:     mandatory[5],
		FRUFileID:    mandatory[6],
	}
	p.custom.fromSlice(custom)
	return p, nil
}

func putMinutes(dst *[3]byte, minutes int) {
	dst[0] = byte(minutes)
	dst[1] = byte(minutes >> 8)
	dst[2] = byte(minutes >> 16)
}

func getMinutes(data []byte) int {
	return int(data[3]) | int(data[4])<<8 | int(data[5])<<16
}
