// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package fru

import (
	"encoding/binary"
	"sort"

	"github.com/go-restruct/restruct"
)

// fileHeaderSize is the fixed 8-byte file-level header.
const fileHeaderSize = 8

// fileHeaderVersion is the only file-header version this codec emits or,
// by default, accepts.
const fileHeaderVersion = 0x01

// fileHeader is the on-disk file-level header: a version byte, five
// area offsets in 8-byte-block units (0 meaning absent), a pad byte, and
// a checksum byte.
type fileHeader struct {
	Version           byte
	InternalUseOffset byte
	ChassisOffset     byte
	BoardOffset       byte
	ProductOffset     byte
	MultirecordOffset byte
	Pad               byte
	Checksum          byte
}

// offsets indexes fileHeader's five offset fields by AreaType, in
// the order the wire format defines them.
func (h *fileHeader) offsets() [5]byte {
	return [5]byte{h.InternalUseOffset, h.ChassisOffset, h.BoardOffset, h.ProductOffset, h.MultirecordOffset}
}

func (h *fileHeader) setOffset(a AreaType, block byte) {
	switch a {
	case AreaInternalUse:
		h.InternalUseOffset = block
	case AreaChassis:
		h.ChassisOffset = block
	case AreaBoard:
		h.BoardOffset = block
	case AreaProduct:
		h.ProductOffset = block
	case AreaMultirecord:
		h.MultirecordOffset = block
	}
}

// encodeFileHeader places each present area's data (already built and
// 8-byte aligned) into the order given by layout, patches the five
// offset bytes, and prepends the checksummed 8-byte file header.
//
// layout gives the on-disk area order; areaBytes supplies the encoded
// bytes for each present area type.
func encodeFileHeader(layout [5]AreaType, areaBytes map[AreaType][]byte) ([]byte, *Error) {
	hdr := fileHeader{Version: fileHeaderVersion}

	var body []byte
	block := 1 // block 0 is the file header itself
	for _, area := range layout {
		data, ok := areaBytes[area]
		if !ok {
			continue
		}
		if block > 0xFF {
			return nil, NewError(CodeBufferTooBig, LocationGeneral)
		}
		hdr.setOffset(area, byte(block))
		body = append(body, data...)
		if len(data)%8 != 0 {
			return nil, NewIndexedError(CodeInternal, LocationGeneral, int(area))
		}
		block += len(data) / 8
	}

	hdrBytes, rerr := restruct.Pack(binary.LittleEndian, &hdr)
	if rerr != nil {
		return nil, NewError(CodeInternal, LocationGeneral).Wrap(rerr)
	}
	hdrBytes[fileHeaderSize-1] = checksum(hdrBytes[:fileHeaderSize-1])

	return append(hdrBytes, body...), nil
}

// decodedArea is one parsed, present area plus its byte range, used to
// recover the on-disk ordering.
type decodedArea struct {
	Type   AreaType
	Offset int // byte offset from start of buffer
}

// decodeFileHeader validates the file header and returns the present
// areas sorted by ascending on-disk offset, alongside the raw offsets
// map (byte offset, in the original data slice) for each present area.
func decodeFileHeader(data []byte, flags Flags) (order []decodedArea, byteOffsets map[AreaType]int, err *Error) {
	if len(data) < fileHeaderSize {
		return nil, nil, NewError(CodeBufferTooSmall, LocationGeneral)
	}
	var hdr fileHeader
	if rerr := restruct.Unpack(data[:fileHeaderSize], binary.LittleEndian, &hdr); rerr != nil {
		return nil, nil, NewError(CodeMalformedData, LocationGeneral).Wrap(rerr)
	}
	if hdr.Version != fileHeaderVersion {
		if !flags.Has(IgnoreFileVersion) {
			return nil, nil, NewError(CodeBadVersion, LocationGeneral)
		}
		recordRelaxed(CodeBadVersion, LocationGeneral, NoIndex)
	}
	if !checksumValid(data[:fileHeaderSize]) {
		if !flags.Has(IgnoreFileChecksum) {
			return nil, nil, NewError(CodeBadChecksum, LocationGeneral)
		}
		recordRelaxed(CodeBadChecksum, LocationGeneral, NoIndex)
	}

	offs := hdr.offsets()
	byteOffsets = make(map[AreaType]int)
	for i, block := range offs {
		if block == 0 {
			continue
		}
		areaType := AreaType(i)
		offset := int(block) * 8
		if offset >= len(data) {
			return nil, nil, NewIndexedError(CodeSizeMismatch, LocationGeneral, int(areaType))
		}
		byteOffsets[areaType] = offset
		order = append(order, decodedArea{Type: areaType, Offset: offset})
	}

	sort.Slice(order, func(i, j int) bool { return order[i].Offset < order[j].Offset })
	return order, byteOffsets, nil
}

// areaSlice returns the byte range belonging to area, given the sorted
// decode order: it runs from area's offset up to the next area's offset,
// or to end-of-buffer if area is last. This is also how the internal-use
// area's length is inferred, since that area carries no
// self-described length.
func areaSlice(data []byte, order []decodedArea, area AreaType) []byte {
	for i, d := range order {
		if d.Type != area {
			continue
		}
		end := len(data)
		if i+1 < len(order) {
			end = order[i+1].Offset
		}
		return data[d.Offset:end]
	}
	return nil
}
