// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package fru

import (
	"fmt"
	"time"
)

// Warning is one finding from Validate: a typed code plus its source
// location, the same vocabulary *Error uses, so callers can treat a
// warning and a hard error uniformly if they want to.
type Warning struct {
	Code     Code
	Location Location
	Index    int
}

func (w Warning) String() string {
	if w.Index >= 0 {
		return fmt.Sprintf("%s in %s (index %d)", w.Code, w.Location, w.Index)
	}
	return fmt.Sprintf("%s in %s", w.Code, w.Location)
}

func checkField(f Field, loc Location, index int, out *[]Warning) {
	if f.Encoding == EncodingPreserve {
		*out = append(*out, Warning{CodeInvalidEncoding, loc, index})
		return
	}
	if _, _, err := encodeField(f, loc, index); err != nil {
		*out = append(*out, Warning{err.Code, loc, index})
	}
}

// Validate runs the same per-field and per-area checks Save would
// perform, without serializing anything, so a caller building a FRU
// purely through the editing API can surface problems
// before calling SaveBuffer.
func Validate(f *FRU) []Warning {
	var out []Warning

	if f.present[AreaChassis] && f.Chassis != nil {
		checkField(f.Chassis.PartNumber, LocationChassis, 0, &out)
		checkField(f.Chassis.SerialNumber, LocationChassis, 1, &out)
		for i, cf := range f.Chassis.custom.toSlice() {
			checkField(cf, LocationChassis, i, &out)
		}
	}

	if f.present[AreaBoard] && f.Board != nil {
		b := f.Board
		checkField(b.Manufacturer, LocationBoard, 0, &out)
		checkField(b.ProductName, LocationBoard, 1, &out)
		checkField(b.SerialNumber, LocationBoard, 2, &out)
		checkField(b.PartNumber, LocationBoard, 3, &out)
		checkField(b.FRUFileID, LocationBoard, 4, &out)
		for i, cf := range b.custom.toSlice() {
			checkField(cf, LocationBoard, i, &out)
		}
		if !b.AutoTimestamp && b.dateSet {
			minutes := int(b.Date.UTC().Sub(boardEpoch) / time.Minute)
			if minutes < 0 || minutes > maxBoardMinutes {
				out = append(out, Warning{CodeBoardDateOutOfRange, LocationBoard, NoIndex})
			}
		}
	}

	if f.present[AreaProduct] && f.Product != nil {
		p := f.Product
		checkField(p.Manufacturer, LocationProduct, 0, &out)
		checkField(p.ProductName, LocationProduct, 1, &out)
		checkField(p.PartNumber, LocationProduct, 2, &out)
		checkField(p.Version, LocationProduct, 3, &out)
		checkField(p.SerialNumber, LocationProduct, 4, &out)
		checkField(p.AssetTag, LocationProduct, 5, &out)
		checkField(p.FRUFileID, LocationProduct, 6, &out)
		for i, cf := range p.custom.toSlice() {
			checkField(cf, LocationProduct, i, &out)
		}
	}

	if f.present[AreaInternalUse] && f.Internal != nil {
		if !isStrictHex(f.Internal.HexString) {
			out = append(out, Warning{CodeNonHex, LocationInternal, NoIndex})
		}
	}

	if f.present[AreaMultirecord] {
		records := f.records.toSlice()
		if len(records) == 0 {
			out = append(out, Warning{CodeNoData, LocationMultirecord, NoIndex})
		}
		for i, r := range records {
			if _, _, err := recordPayload(r, i); err != nil {
				out = append(out, Warning{err.Code, LocationMultirecord, i})
			}
		}
	}

	seen := make(map[AreaType]int, len(f.order))
	for _, a := range f.order {
		seen[a]++
	}
	for a, n := range seen {
		if n > 1 {
			out = append(out, Warning{CodeDuplicateAreaInOrder, a.location(), NoIndex})
		}
	}

	return out
}
