// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package fru

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/alatarum/frugen-sub000/internal/log"
)

// MaxFileSize is the largest buffer LoadBuffer/LoadFile accept unless
// Options.Flags carries IgnoreBigFile: 64KiB comfortably
// covers every real FRU file, which rarely exceeds a few kilobytes.
const MaxFileSize = 64 * 1024

// Options configures a Load call: a relaxed-parsing bitmask plus an
// optional logger.
type Options struct {
	Flags  Flags
	Logger log.Logger
}

func (o *Options) helper() *log.Helper {
	if o == nil || o.Logger == nil {
		return log.NewHelper(log.NewFilter(log.NewStdLogger(os.Stderr), log.FilterLevel(log.LevelWarn)))
	}
	return log.NewHelper(o.Logger)
}

func (o *Options) flags() Flags {
	if o == nil {
		return 0
	}
	return o.Flags
}

// LoadBuffer parses a complete in-memory FRU file image.
func LoadBuffer(data []byte, opts *Options) (*FRU, *Error) {
	logger := opts.helper()
	flags := opts.flags()
	before := LastError()

	if len(data) > MaxFileSize {
		if !flags.Has(IgnoreBigFile) {
			return nil, NewError(CodeBufferTooBig, LocationGeneral)
		}
		recordRelaxed(CodeBufferTooBig, LocationGeneral, NoIndex)
	}

	order, byteOffsets, err := decodeFileHeader(data, flags)
	if err != nil {
		return nil, err
	}

	f := &FRU{}
	f.Init()

	for _, d := range order {
		if d.Type == AreaMultirecord {
			continue // decoded last, after all offsets are known
		}
		areaData := areaSlice(data, order, d.Type)
		switch d.Type {
		case AreaInternalUse:
			iu, derr := DecodeInternalUse(areaData, flags)
			if derr != nil {
				return nil, derr
			}
			f.Internal = iu
		case AreaChassis:
			c, derr := DecodeChassis(areaData, flags)
			if derr != nil {
				return nil, derr
			}
			f.Chassis = c
		case AreaBoard:
			b, derr := DecodeBoard(areaData, flags)
			if derr != nil {
				return nil, derr
			}
			f.Board = b
		case AreaProduct:
			p, derr := DecodeProduct(areaData, flags)
			if derr != nil {
				return nil, derr
			}
			f.Product = p
		}
		f.present[d.Type] = true
	}

	if _, ok := byteOffsets[AreaMultirecord]; ok {
		areaData := areaSlice(data, order, AreaMultirecord)
		records, derr := DecodeRecords(areaData, flags)
		if derr != nil {
			return nil, derr
		}
		f.records.fromSlice(records)
		f.present[AreaMultirecord] = true
	}

	// Areas absent on disk occupy the head of order, in natural
	// enumeration order, followed by the present areas in on-disk order.
	seen := make(map[AreaType]bool, len(order))
	for _, d := range order {
		seen[d.Type] = true
	}
	f.order = [5]AreaType{}
	pos := 0
	for a := AreaType(0); int(a) < len(f.present); a++ {
		if !seen[a] {
			f.order[pos] = a
			pos++
		}
	}
	for _, d := range order {
		if pos >= len(f.order) {
			break
		}
		f.order[pos] = d.Type
		pos++
	}

	logger.Debugf("loaded FRU image: %d bytes, %d area(s) present", len(data), len(order))
	if last := LastError(); last != nil && last != before {
		logger.Warnf("load tolerated a relaxed condition: %v", last)
	}
	return f, nil
}

// LoadFile memory-maps name read-only and parses it, following the
// teacher's own file-loading idiom (edsrzf/mmap-go over a plain read).
func LoadFile(name string, opts *Options) (*FRU, *Error) {
	fh, oerr := os.Open(name)
	if oerr != nil {
		return nil, NewError(CodeNoData, LocationGeneral).Wrap(oerr)
	}
	defer fh.Close()

	data, merr := mmap.Map(fh, mmap.RDONLY, 0)
	if merr != nil {
		return nil, NewError(CodeNoData, LocationGeneral).Wrap(merr)
	}
	defer data.Unmap()

	return LoadBuffer([]byte(data), opts)
}

// encodeArea dispatches to the right area encoder for one present area.
func encodeArea(f *FRU, area AreaType) ([]byte, *Error) {
	switch area {
	case AreaInternalUse:
		data, err := EncodeInternalUse(f.Internal.HexString)
		if err != nil {
			return nil, err
		}
		return append(data, make([]byte, blockAlign(len(data))-len(data))...), nil
	case AreaChassis:
		return EncodeChassis(f.Chassis)
	case AreaBoard:
		return EncodeBoard(f.Board)
	case AreaProduct:
		return EncodeProduct(f.Product)
	case AreaMultirecord:
		body, err := EncodeRecords(f.records.toSlice())
		if err != nil {
			return nil, err
		}
		return append(body, make([]byte, blockAlign(len(body))-len(body))...), nil
	default:
		return nil, NewError(CodeInvalidAreaType, LocationGeneral)
	}
}

// SaveBuffer serializes f into a complete FRU file image. Each present
// area is encoded independently in f's current order, then the
// 8-byte file header is built over the concatenated, already-aligned
// result (a one-pass size computation, since every encoded area is
// already padded to an 8-byte boundary: the info-area codecs pad
// themselves, and encodeArea pads the internal-use and multirecord areas).
func SaveBuffer(f *FRU) ([]byte, *Error) {
	areaBytes := make(map[AreaType][]byte, 5)
	for _, area := range f.order {
		if !f.present[area] {
			continue
		}
		data, err := encodeArea(f, area)
		if err != nil {
			return nil, err
		}
		areaBytes[area] = data
	}
	return encodeFileHeader(f.order, areaBytes)
}

// SaveFile serializes f and writes it to name, creating or truncating
// the file with mode 0644.
func SaveFile(f *FRU, name string) *Error {
	data, err := SaveBuffer(f)
	if err != nil {
		return err
	}
	if werr := os.WriteFile(name, data, 0o644); werr != nil {
		return NewError(CodeInternal, LocationGeneral).Wrap(werr)
	}
	return nil
}
