// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package fru

import (
	"fmt"
	"strings"
)

// hexDump renders b as a 16-bytes-per-line hex+ASCII gutter, used for the
// Internal-Use area and Raw multirecord payloads.
func hexDump(b []byte) string {
	var sb strings.Builder
	var ascii [16]byte
	n := (len(b) + 15) &^ 15
	for i := 0; i < n; i++ {
		if i%16 == 0 {
			fmt.Fprintf(&sb, "%4d", i)
		}
		if i%8 == 0 {
			sb.WriteByte(' ')
		}
		if i < len(b) {
			fmt.Fprintf(&sb, " %02X", b[i])
		} else {
			sb.WriteString("   ")
		}
		switch {
		case i >= len(b):
			ascii[i%16] = ' '
		case b[i] < 32 || b[i] > 126:
			ascii[i%16] = '.'
		default:
			ascii[i%16] = b[i]
		}
		if i%16 == 15 {
			fmt.Fprintf(&sb, "  %s\n", string(ascii[:]))
		}
	}
	return sb.String()
}

func dumpField(sb *strings.Builder, name string, f Field) {
	fmt.Fprintf(sb, "    %-16s %-12s %q\n", name, f.Encoding, f.Value)
}

// Dump renders f as a multi-line, human-oriented summary: area presence,
// field values with their resolved encodings, and multirecord entries.
// It is the default output of `cmd/frugen dump` (without --json).
func Dump(f *FRU) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Order:  %v\n", f.order)
	fmt.Fprintf(&sb, "Present: %v\n\n", f.present)

	if f.present[AreaInternalUse] && f.Internal != nil {
		sb.WriteString("Internal-Use Area:\n")
		data, _ := hexToBin(f.Internal.HexString, HexStrict, false)
		sb.WriteString(hexDump(data))
		sb.WriteString("\n")
	}

	if f.present[AreaChassis] && f.Chassis != nil {
		c := f.Chassis
		fmt.Fprintf(&sb, "Chassis Info Area (type 0x%02X):\n", c.Type)
		dumpField(&sb, "Part Number", c.PartNumber)
		dumpField(&sb, "Serial Number", c.SerialNumber)
		for i, cf := range c.custom.toSlice() {
			dumpField(&sb, fmt.Sprintf("Custom[%d]", i), cf)
		}
		sb.WriteString("\n")
	}

	if f.present[AreaBoard] && f.Board != nil {
		b := f.Board
		sb.WriteString("Board Info Area:\n")
		if b.dateSet {
			fmt.Fprintf(&sb, "    %-16s %s\n", "Mfg Date", b.Date.Format("2006-01-02 15:04 MST"))
		} else {
			fmt.Fprintf(&sb, "    %-16s %s\n", "Mfg Date", "unspecified")
		}
		dumpField(&sb, "Manufacturer", b.Manufacturer)
		dumpField(&sb, "Product Name", b.ProductName)
		dumpField(&sb, "Serial Number", b.SerialNumber)
		dumpField(&sb, "Part Number", b.PartNumber)
		dumpField(&sb, "FRU File ID", b.FRUFileID)
		for i, cf := range b.custom.toSlice() {
			dumpField(&sb, fmt.Sprintf("Custom[%d]", i), cf)
		}
		sb.WriteString("\n")
	}

	if f.present[AreaProduct] && f.Product != nil {
		p := f.Product
		sb.WriteString("Product Info Area:\n")
		dumpField(&sb, "Manufacturer", p.Manufacturer)
		dumpField(&sb, "Product Name", p.ProductName)
		dumpField(&sb, "Part Number", p.PartNumber)
		dumpField(&sb, "Version", p.Version)
		dumpField(&sb, "Serial Number", p.SerialNumber)
		dumpField(&sb, "Asset Tag", p.AssetTag)
		dumpField(&sb, "FRU File ID", p.FRUFileID)
		for i, cf := range p.custom.toSlice() {
			dumpField(&sb, fmt.Sprintf("Custom[%d]", i), cf)
		}
		sb.WriteString("\n")
	}

	if f.present[AreaMultirecord] {
		records := f.records.toSlice()
		fmt.Fprintf(&sb, "Multirecord Area (%d record(s)):\n", len(records))
		for i, r := range records {
			switch r.Kind {
			case RecordManagementAccess:
				fmt.Fprintf(&sb, "    [%d] Management Access / %s: %q\n", i, r.Subtype, r.Value)
			case RecordRaw:
				fmt.Fprintf(&sb, "    [%d] Raw type 0x%02X (%s):\n", i, r.RawType, r.RawEncoding)
				if r.RawEncoding == EncodingBinaryHex {
					data, _ := hexToBin(r.RawData, HexStrict, false)
					sb.WriteString(hexDump(data))
				} else {
					fmt.Fprintf(&sb, "        %q\n", r.RawData)
				}
			}
		}
	}

	return sb.String()
}
