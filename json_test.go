// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package fru

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToJSONFromJSONRoundTrip(t *testing.T) {
	f := buildSampleFRU(t)
	require.Nil(t, f.AddCustom(AreaChassis, Tail, EncodingAuto, "extra"))
	require.Nil(t, f.AddMR(Tail, Record{Kind: RecordManagementAccess, Subtype: SubtypeSystemName, Value: "rack-1"}))

	data, err := ToJSON(f)
	require.Nil(t, err)

	decoded, derr := FromJSON(data)
	require.Nil(t, derr)
	assert.Equal(t, f.Chassis.PartNumber.Value, decoded.Chassis.PartNumber.Value)
	assert.Equal(t, f.Board.Manufacturer.Value, decoded.Board.Manufacturer.Value)
	assert.Equal(t, f.Product.ProductName.Value, decoded.Product.ProductName.Value)
	assert.Equal(t, []Field{{Value: "extra", Encoding: EncodingAuto}}, decoded.Chassis.custom.toSlice())
	assert.Equal(t, f.records.toSlice(), decoded.records.toSlice())
	assert.Equal(t, f.present, decoded.present)
	assert.Equal(t, f.order, decoded.order)
}

func TestToJSONOmitsAbsentAreas(t *testing.T) {
	f := NewFRU()
	data, err := ToJSON(f)
	require.Nil(t, err)

	assert.NotContains(t, string(data), `"chassis"`)
	assert.NotContains(t, string(data), `"board"`)
	assert.NotContains(t, string(data), `"product"`)

	decoded, derr := FromJSON(data)
	require.Nil(t, derr)
	assert.False(t, decoded.Present(AreaChassis))
	assert.False(t, decoded.Present(AreaBoard))
	assert.False(t, decoded.Present(AreaProduct))
}

func TestToJSONBoardDateRoundTrip(t *testing.T) {
	f := NewFRU()
	require.Nil(t, f.EnableArea(AreaBoard, Auto))
	f.Board.Manufacturer = Field{Value: "A"}
	f.Board.ProductName = Field{Value: "B"}
	f.Board.SerialNumber = Field{Value: "C"}
	f.Board.PartNumber = Field{Value: "D"}
	f.Board.FRUFileID = Field{Value: "E"}
	f.Board.AutoTimestamp = false
	f.Board.SetDate(boardEpoch.AddDate(1, 0, 0))

	data, err := ToJSON(f)
	require.Nil(t, err)

	decoded, derr := FromJSON(data)
	require.Nil(t, derr)
	assert.True(t, decoded.Board.dateSet)
	assert.True(t, decoded.Board.Date.Equal(f.Board.Date))
}

func TestFromJSONRejectsMalformedInput(t *testing.T) {
	_, err := FromJSON([]byte("not json"))
	require.NotNil(t, err)
	assert.Equal(t, CodeMalformedData, err.Code)
}
