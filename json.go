// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package fru

import (
	"encoding/json"
	"time"
)

func unixUTC(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// These DTOs give the FRU model a JSON-tagged mirror for marshaling.
// They exist because ChassisInfo/BoardInfo/ProductInfo keep their
// custom-field lists in an unexported list[Field], which plain
// encoding/json cannot see.

type chassisJSON struct {
	Type         byte    `json:"type"`
	PartNumber   Field   `json:"part_number"`
	SerialNumber Field   `json:"serial_number"`
	Custom       []Field `json:"custom,omitempty"`
}

type boardJSON struct {
	Language      byte    `json:"language"`
	AutoTimestamp bool    `json:"auto_timestamp"`
	DateSet       bool    `json:"date_set"`
	DateUnixUTC   int64   `json:"date_unix_utc,omitempty"`
	Manufacturer  Field   `json:"manufacturer"`
	ProductName   Field   `json:"product_name"`
	SerialNumber  Field   `json:"serial_number"`
	PartNumber    Field   `json:"part_number"`
	FRUFileID     Field   `json:"fru_file_id"`
	Custom        []Field `json:"custom,omitempty"`
}

type productJSON struct {
	Language     byte    `json:"language"`
	Manufacturer Field   `json:"manufacturer"`
	ProductName  Field   `json:"product_name"`
	PartNumber   Field   `json:"part_number"`
	Version      Field   `json:"version"`
	SerialNumber Field   `json:"serial_number"`
	AssetTag     Field   `json:"asset_tag"`
	FRUFileID    Field   `json:"fru_file_id"`
	Custom       []Field `json:"custom,omitempty"`
}

type modelJSON struct {
	Internal *InternalUse `json:"internal_use,omitempty"`
	Chassis  *chassisJSON `json:"chassis,omitempty"`
	Board    *boardJSON   `json:"board,omitempty"`
	Product  *productJSON `json:"product,omitempty"`
	Records  []Record     `json:"multirecords,omitempty"`
	Present  [5]bool      `json:"present"`
	Order    [5]AreaType  `json:"order"`
}

// ToJSON serializes the in-memory model, including fields the
// wire codec doesn't need but a template-driven CLI does: presence
// flags, area order, and custom field lists.
func ToJSON(f *FRU) ([]byte, *Error) {
	m := modelJSON{
		Internal: f.Internal,
		Records:  f.records.toSlice(),
		Present:  f.present,
		Order:    f.order,
	}
	if f.present[AreaChassis] && f.Chassis != nil {
		m.Chassis = &chassisJSON{
			Type:         f.Chassis.Type,
			PartNumber:   f.Chassis.PartNumber,
			SerialNumber: f.Chassis.SerialNumber,
			Custom:       f.Chassis.custom.toSlice(),
		}
	}
	if f.present[AreaBoard] && f.Board != nil {
		b := f.Board
		var unix int64
		if b.dateSet {
			unix = b.Date.UTC().Unix()
		}
		m.Board = &boardJSON{
			Language:      b.Language,
			AutoTimestamp: b.AutoTimestamp,
			DateSet:       b.dateSet,
			DateUnixUTC:   unix,
			Manufacturer:  b.Manufacturer,
			ProductName:   b.ProductName,
			SerialNumber:  b.SerialNumber,
			PartNumber:    b.PartNumber,
			FRUFileID:     b.FRUFileID,
			Custom:        b.custom.toSlice(),
		}
	}
	if f.present[AreaProduct] && f.Product != nil {
		p := f.Product
		m.Product = &productJSON{
			Language:     p.Language,
			Manufacturer: p.Manufacturer,
			ProductName:  p.ProductName,
			PartNumber:   p.PartNumber,
			Version:      p.Version,
			SerialNumber: p.SerialNumber,
			AssetTag:     p.AssetTag,
			FRUFileID:    p.FRUFileID,
			Custom:       p.custom.toSlice(),
		}
	}

	data, err := json.MarshalIndent(&m, "", "\t")
	if err != nil {
		return nil, NewError(CodeInternal, LocationGeneral).Wrap(err)
	}
	return data, nil
}

// FromJSON reconstructs a FRU from the format ToJSON produces.
func FromJSON(data []byte) (*FRU, *Error) {
	var m modelJSON
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, NewError(CodeMalformedData, LocationGeneral).Wrap(err)
	}

	f := &FRU{}
	f.Init()
	f.present = m.Present
	f.order = m.Order
	f.records.fromSlice(m.Records)

	if m.Internal != nil {
		f.Internal = m.Internal
	}
	if m.Chassis != nil {
		f.Chassis = &ChassisInfo{
			Type:         m.Chassis.Type,
			PartNumber:   m.Chassis.PartNumber,
			SerialNumber: m.Chassis.SerialNumber,
		}
		f.Chassis.custom.fromSlice(m.Chassis.Custom)
	}
	if m.Board != nil {
		b := &BoardInfo{
			Language:      m.Board.Language,
			AutoTimestamp: m.Board.AutoTimestamp,
			dateSet:       m.Board.DateSet,
			Manufacturer:  m.Board.Manufacturer,
			ProductName:   m.Board.ProductName,
			SerialNumber:  m.Board.SerialNumber,
			PartNumber:    m.Board.PartNumber,
			FRUFileID:     m.Board.FRUFileID,
		}
		if m.Board.DateSet {
			b.Date = unixUTC(m.Board.DateUnixUTC)
		}
		b.custom.fromSlice(m.Board.Custom)
		f.Board = b
	}
	if m.Product != nil {
		f.Product = &ProductInfo{
			Language:     m.Product.Language,
			Manufacturer: m.Product.Manufacturer,
			ProductName:  m.Product.ProductName,
			PartNumber:   m.Product.PartNumber,
			Version:      m.Product.Version,
			SerialNumber: m.Product.SerialNumber,
			AssetTag:     m.Product.AssetTag,
			FRUFileID:    m.Product.FRUFileID,
		}
		f.Product.custom.fromSlice(m.Product.Custom)
	}

	return f, nil
}
