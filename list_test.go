// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package fru

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAddTailAndToSlice(t *testing.T) {
	var l list[int]
	require.Nil(t, l.add(Tail, 1))
	require.Nil(t, l.add(Tail, 2))
	require.Nil(t, l.add(Tail, 3))
	assert.Equal(t, []int{1, 2, 3}, l.toSlice())
	assert.Equal(t, 3, l.len())
}

func TestListAddAtHead(t *testing.T) {
	var l list[int]
	require.Nil(t, l.add(Tail, 2))
	require.Nil(t, l.add(0, 1))
	assert.Equal(t, []int{1, 2}, l.toSlice())
}

func TestListAddInMiddle(t *testing.T) {
	var l list[int]
	require.Nil(t, l.add(Tail, 1))
	require.Nil(t, l.add(Tail, 3))
	require.Nil(t, l.add(1, 2))
	assert.Equal(t, []int{1, 2, 3}, l.toSlice())
}

func TestListAddOutOfRange(t *testing.T) {
	var l list[int]
	err := l.add(5, 1)
	require.NotNil(t, err)
	assert.Equal(t, CodeNoSuchField, err.Code)
}

func TestListGetAndDelete(t *testing.T) {
	var l list[string]
	require.Nil(t, l.add(Tail, "a"))
	require.Nil(t, l.add(Tail, "b"))
	require.Nil(t, l.add(Tail, "c"))

	v, err := l.get(1)
	require.Nil(t, err)
	assert.Equal(t, "b", *v)

	require.Nil(t, l.delete(1))
	assert.Equal(t, []string{"a", "c"}, l.toSlice())
}

func TestListDeleteHead(t *testing.T) {
	var l list[int]
	require.Nil(t, l.add(Tail, 1))
	require.Nil(t, l.add(Tail, 2))
	require.Nil(t, l.delete(0))
	assert.Equal(t, []int{2}, l.toSlice())
}

func TestListDeleteOutOfRange(t *testing.T) {
	var l list[int]
	err := l.delete(0)
	require.NotNil(t, err)
	assert.Equal(t, CodeNoSuchField, err.Code)
}

func TestListClear(t *testing.T) {
	var l list[int]
	require.Nil(t, l.add(Tail, 1))
	l.clear()
	assert.Equal(t, 0, l.len())
	assert.Empty(t, l.toSlice())
}

func TestListFromSlice(t *testing.T) {
	var l list[int]
	require.Nil(t, l.add(Tail, 99))
	l.fromSlice([]int{1, 2, 3})
	assert.Equal(t, []int{1, 2, 3}, l.toSlice())
}
