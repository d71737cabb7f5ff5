// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package fru

// Position sentinels for EnableArea/MoveArea's after parameter, in
// addition to a concrete AreaType.
const (
	// First places the area at the front of the present run.
	First AreaType = -1
	// Last places the area at the back of the present run.
	Last AreaType = -2
	// Auto preserves natural enumeration order among present areas.
	Auto AreaType = -3
)

// FRU is the in-memory model of a whole FRU file. The present and order
// fields are unexported and change only through the methods below, so
// the present/order invariant (every area type appears exactly once
// in order; absent areas sit in the head prefix) always holds.
type FRU struct {
	Internal *InternalUse
	Chassis  *ChassisInfo
	Board    *BoardInfo
	Product  *ProductInfo

	records list[Record]
	present [5]bool
	order   [5]AreaType
}

// NewFRU returns an initialized FRU, equivalent to calling Init on a
// zero value.
func NewFRU() *FRU {
	f := &FRU{}
	f.Init()
	return f
}

// Init resets f to its just-created state: every area absent, chassis
// type defaulted to 0x17 (SMBIOS Rack Mount Chassis), board
// auto_timestamp enabled, and order set to the natural enumeration
// order.
func (f *FRU) Init() {
	*f = FRU{
		Internal: &InternalUse{},
		Chassis:  &ChassisInfo{Type: DefaultChassisType},
		Board:    &BoardInfo{AutoTimestamp: true},
		Product:  &ProductInfo{},
	}
	for i := range f.order {
		f.order[i] = AreaType(i)
	}
}

// Wipe returns f to the Init state in place, freeing all dynamic state
// (custom fields, multirecord records).
func (f *FRU) Wipe() {
	f.Init()
}

// Present reports whether area is currently enabled.
func (f *FRU) Present(area AreaType) bool {
	if area < 0 || int(area) >= len(f.present) {
		return false
	}
	return f.present[area]
}

// Order returns a copy of the current area serialization order.
func (f *FRU) Order() [5]AreaType {
	return f.order
}

// reposition removes area from f.order (if present) and reinserts it at
// insertIdx (an index into the slice with area already removed), then
// writes the result back to f.order. Used by EnableArea/DisableArea so
// f.order is always exactly 5 elements, even between steps.
func (f *FRU) reposition(area AreaType, insertIdx int) {
	rest := make([]AreaType, 0, len(f.order))
	for _, a := range f.order {
		if a != area {
			rest = append(rest, a)
		}
	}
	if insertIdx > len(rest) {
		insertIdx = len(rest)
	}
	rest = append(rest[:insertIdx], append([]AreaType{area}, rest[insertIdx:]...)...)
	copy(f.order[:], rest)
}

// withoutArea returns f.order with area removed, for computing an
// insertion index relative to the areas that will remain in place.
func (f *FRU) withoutArea(area AreaType) []AreaType {
	out := make([]AreaType, 0, len(f.order))
	for _, a := range f.order {
		if a != area {
			out = append(out, a)
		}
	}
	return out
}

func indexOfArea(s []AreaType, area AreaType) int {
	for i, a := range s {
		if a == area {
			return i
		}
	}
	return -1
}

// firstPresentIndex returns the index of the first present area in s.
func (f *FRU) firstPresentIndex(s []AreaType) int {
	for i, a := range s {
		if f.present[a] {
			return i
		}
	}
	return len(s)
}

// EnableArea marks area present and places it in the serialization
// order according to after: a concrete AreaType inserts immediately
// after that area; First/Last pin it to either end of the present run;
// Auto preserves natural enumeration order among the present areas.
func (f *FRU) EnableArea(area AreaType, after AreaType) *Error {
	if area < 0 || int(area) >= len(f.present) {
		return NewError(CodeInvalidAreaType, LocationGeneral)
	}
	if f.present[area] {
		return NewError(CodeAreaAlreadyEnabled, area.location())
	}

	without := f.withoutArea(area)

	var insertIdx int
	switch after {
	case Auto:
		insertIdx = len(without)
		for i, a := range without {
			if f.present[a] && a > area {
				insertIdx = i
				break
			}
		}
	case First:
		insertIdx = f.firstPresentIndex(without)
	case Last:
		insertIdx = len(without)
	default:
		if after < 0 || int(after) >= len(f.present) || !f.present[after] {
			return NewError(CodeInvalidAreaPosition, area.location())
		}
		insertIdx = indexOfArea(without, after) + 1
	}

	f.reposition(area, insertIdx)
	f.present[area] = true
	return nil
}

// DisableArea marks area absent and moves it to the head of the order
// array. Disabling an already-absent area is a no-op.
func (f *FRU) DisableArea(area AreaType) *Error {
	if area < 0 || int(area) >= len(f.present) {
		return NewError(CodeInvalidAreaType, LocationGeneral)
	}
	if !f.present[area] {
		return nil
	}
	f.present[area] = false
	f.reposition(area, 0)
	return nil
}

// MoveArea repositions an already-present area, or enables it in the
// new position if it was absent: exactly disable followed by enable.
func (f *FRU) MoveArea(area AreaType, after AreaType) *Error {
	_ = f.DisableArea(area)
	return f.EnableArea(area, after)
}

// resolvePreserve turns EncodingPreserve into the field's existing
// concrete encoding, or Auto if it has none yet.
func resolvePreserve(current Encoding, requested Encoding) Encoding {
	if requested != EncodingPreserve {
		return requested
	}
	if current != EncodingAuto && current != EncodingEmpty {
		return current
	}
	return EncodingAuto
}

// setField validates value against the resolved encoding and, only if
// valid, updates target in place. The stored tag is the resolved
// *request* (Auto stays Auto; it is promoted to a concrete encoding
// only at serialization time).
func setField(target *Field, loc Location, index int, encoding Encoding, value string) *Error {
	resolved := resolvePreserve(target.Encoding, encoding)
	if _, _, err := encodeField(Field{Value: value, Encoding: resolved}, loc, index); err != nil {
		return err
	}
	target.Value = value
	target.Encoding = resolved
	return nil
}

// setFieldBinary stores data as a hex string with EncodingBinaryHex,
// truncating to MaxFieldLen bytes. A truncation is reported as a soft
// CodeBufferTooBig error: the field is still updated with the truncated
// value.
func setFieldBinary(target *Field, data []byte) *Error {
	truncated := false
	if len(data) > MaxFieldLen {
		data = data[:MaxFieldLen]
		truncated = true
	}
	target.Value = bytesToHex(data)
	target.Encoding = EncodingBinaryHex
	if truncated {
		return NewError(CodeBufferTooBig, LocationGeneral)
	}
	return nil
}

// mandatoryFieldPtr returns a pointer to the fixed-order mandatory field
// at index within area.
func (f *FRU) mandatoryFieldPtr(area AreaType, index int) (*Field, *Error) {
	loc := area.location()
	switch area {
	case AreaChassis:
		switch index {
		case 0:
			return &f.Chassis.PartNumber, nil
		case 1:
			return &f.Chassis.SerialNumber, nil
		}
	case AreaBoard:
		switch index {
		case 0:
			return &f.Board.Manufacturer, nil
		case 1:
			return &f.Board.ProductName, nil
		case 2:
			return &f.Board.SerialNumber, nil
		case 3:
			return &f.Board.PartNumber, nil
		case 4:
			return &f.Board.FRUFileID, nil
		}
	case AreaProduct:
		switch index {
		case 0:
			return &f.Product.Manufacturer, nil
		case 1:
			return &f.Product.ProductName, nil
		case 2:
			return &f.Product.PartNumber, nil
		case 3:
			return &f.Product.Version, nil
		case 4:
			return &f.Product.SerialNumber, nil
		case 5:
			return &f.Product.AssetTag, nil
		case 6:
			return &f.Product.FRUFileID, nil
		}
	default:
		return nil, NewError(CodeInvalidAreaType, LocationGeneral)
	}
	return nil, NewIndexedError(CodeNoSuchField, loc, index)
}

// GetField returns the mandatory field at index within area.
func (f *FRU) GetField(area AreaType, index int) (*Field, *Error) {
	return f.mandatoryFieldPtr(area, index)
}

// SetField sets the mandatory field at index within area.
func (f *FRU) SetField(area AreaType, index int, encoding Encoding, value string) *Error {
	target, err := f.mandatoryFieldPtr(area, index)
	if err != nil {
		return err
	}
	return setField(target, area.location(), index, encoding, value)
}

// SetFieldBinary sets the mandatory field at index to raw bytes,
// encoded as binary-hex.
func (f *FRU) SetFieldBinary(area AreaType, index int, data []byte) *Error {
	target, err := f.mandatoryFieldPtr(area, index)
	if err != nil {
		return err
	}
	return setFieldBinary(target, data)
}

func (f *FRU) customListFor(area AreaType) (*list[Field], *Error) {
	switch area {
	case AreaChassis:
		return &f.Chassis.custom, nil
	case AreaBoard:
		return &f.Board.custom, nil
	case AreaProduct:
		return &f.Product.custom, nil
	default:
		return nil, NewError(CodeInvalidAreaType, LocationGeneral)
	}
}

// AddCustom inserts a custom field at index (Tail to append) in area's
// custom field list.
func (f *FRU) AddCustom(area AreaType, index int, encoding Encoding, value string) *Error {
	lst, err := f.customListFor(area)
	if err != nil {
		return err
	}
	resolved := encoding
	if resolved == EncodingPreserve {
		resolved = EncodingAuto
	}
	if _, _, verr := encodeField(Field{Value: value, Encoding: resolved}, area.location(), index); verr != nil {
		return verr
	}
	return lst.add(index, Field{Value: value, Encoding: resolved})
}

// GetCustom returns the custom field at index in area's custom list.
func (f *FRU) GetCustom(area AreaType, index int) (*Field, *Error) {
	lst, err := f.customListFor(area)
	if err != nil {
		return nil, err
	}
	return lst.get(index)
}

// DeleteCustom removes the custom field at index in area's custom list.
func (f *FRU) DeleteCustom(area AreaType, index int) *Error {
	lst, err := f.customListFor(area)
	if err != nil {
		return err
	}
	return lst.delete(index)
}

// AddMR inserts rec at index (Tail to append) in the multirecord list,
// auto-enabling the area on the first record.
func (f *FRU) AddMR(index int, rec Record) *Error {
	if err := f.records.add(index, rec); err != nil {
		return err
	}
	if !f.present[AreaMultirecord] {
		_ = f.EnableArea(AreaMultirecord, Auto)
	}
	return nil
}

// GetMR returns the record at index.
func (f *FRU) GetMR(index int) (*Record, *Error) {
	return f.records.get(index)
}

// ReplaceMR overwrites the record at index.
func (f *FRU) ReplaceMR(index int, rec Record) *Error {
	node, _, err := f.records.find(index)
	if err != nil {
		return err
	}
	node.payload = rec
	return nil
}

// DeleteMR removes the record at index, disabling the multirecord area
// if the list becomes empty.
func (f *FRU) DeleteMR(index int) *Error {
	if err := f.records.delete(index); err != nil {
		return err
	}
	if f.records.len() == 0 {
		_ = f.DisableArea(AreaMultirecord)
	}
	return nil
}

// MRCount returns the number of multirecord entries.
func (f *FRU) MRCount() int {
	return f.records.len()
}

// FindMR is find_mr with type=Any: it returns the record at
// *index without searching, and reports CodeEndOfMR informationally
// when *index is the last valid position, so a caller can loop until
// that code appears.
func (f *FRU) FindMR(index *int) (*Record, *Error) {
	rec, err := f.records.get(*index)
	if err != nil {
		return nil, err
	}
	n := f.records.len()
	if *index == n-1 {
		return rec, NewError(CodeEndOfMR, LocationMultirecord)
	}
	return rec, nil
}

// FindMRByKind is find_mr with a specific type: it advances from
// *index, returns the first matching record, and leaves *index pointing
// at it. subtype is only compared when kind is RecordManagementAccess.
func (f *FRU) FindMRByKind(kind RecordKind, subtype ManagementSubtype, index *int) (*Record, *Error) {
	rec, i, ok := f.records.findIndex(*index, func(r Record) bool {
		if r.Kind != kind {
			return false
		}
		return kind != RecordManagementAccess || r.Subtype == subtype
	})
	if !ok {
		return nil, NewError(CodeNoSuchRecord, LocationMultirecord)
	}
	*index = i
	return rec, nil
}

// SetInternalBinary sets the internal-use-area payload from raw bytes
// and enables the area.
func (f *FRU) SetInternalBinary(data []byte) *Error {
	f.Internal = &InternalUse{HexString: bytesToHex(data)}
	if !f.present[AreaInternalUse] {
		_ = f.EnableArea(AreaInternalUse, Auto)
	}
	return nil
}

// SetInternalHexString sets the internal-use-area payload from a hex
// string and enables the area.
func (f *FRU) SetInternalHexString(s string) *Error {
	if !isStrictHex(s) {
		return NewError(CodeNonHex, LocationInternal)
	}
	f.Internal = &InternalUse{HexString: s}
	if !f.present[AreaInternalUse] {
		_ = f.EnableArea(AreaInternalUse, Auto)
	}
	return nil
}

// DeleteInternal clears the internal-use-area payload and disables the
// area.
func (f *FRU) DeleteInternal() *Error {
	f.Internal = &InternalUse{}
	return f.DisableArea(AreaInternalUse)
}
