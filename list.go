// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package fru

// Tail is the sentinel index meaning "append after the last entry".
const Tail = -1

// list is the generic singly-linked list primitive backing both the
// per-area custom field list and the multirecord list. The
// source uses one list shape with a void* payload and per-call-site
// casts; the idiomatic Go translation is a single generic type
// parameterized over the payload, so call sites get type safety without
// any per-list-type boilerplate.
type list[T any] struct {
	head *listNode[T]
}

type listNode[T any] struct {
	payload T
	next    *listNode[T]
}

// len returns the number of entries in l.
func (l *list[T]) len() int {
	n := 0
	for cur := l.head; cur != nil; cur = cur.next {
		n++
	}
	return n
}

// find returns the node at index and its predecessor (nil if index==0).
func (l *list[T]) find(index int) (*listNode[T], *listNode[T], *Error) {
	if index < 0 {
		return nil, nil, NewIndexedError(CodeNoSuchField, LocationGeneral, index)
	}
	var prev *listNode[T]
	cur := l.head
	for i := 0; i < index; i++ {
		if cur == nil {
			return nil, nil, NewIndexedError(CodeNoSuchField, LocationGeneral, index)
		}
		prev = cur
		cur = cur.next
	}
	if cur == nil {
		return nil, nil, NewIndexedError(CodeNoSuchField, LocationGeneral, index)
	}
	return cur, prev, nil
}

// get returns a pointer to the payload at index.
func (l *list[T]) get(index int) (*T, *Error) {
	node, _, err := l.find(index)
	if err != nil {
		return nil, err
	}
	return &node.payload, nil
}

// findIndex scans from start, in order, for the first payload satisfying
// match, and returns a live pointer into that node (not a copy) along with
// its index. The bool is false if no entry matches.
func (l *list[T]) findIndex(start int, match func(T) bool) (*T, int, bool) {
	i := 0
	for cur := l.head; cur != nil; cur = cur.next {
		if i >= start && match(cur.payload) {
			return &cur.payload, i, true
		}
		i++
	}
	return nil, 0, false
}

// add inserts payload before the existing entry at index (Tail appends;
// inserting at index 0 of an empty list sets the head; any other
// out-of-range index fails with "no such entry").
func (l *list[T]) add(index int, payload T) *Error {
	node := &listNode[T]{payload: payload}

	if index == Tail {
		if l.head == nil {
			l.head = node
			return nil
		}
		cur := l.head
		for cur.next != nil {
			cur = cur.next
		}
		cur.next = node
		return nil
	}

	if index < 0 {
		return NewIndexedError(CodeNoSuchField, LocationGeneral, index)
	}
	if index == 0 {
		node.next = l.head
		l.head = node
		return nil
	}

	target, prev, err := l.find(index)
	if err != nil {
		return err
	}
	_ = target
	node.next = prev.next
	prev.next = node
	return nil
}

// delete removes the entry at index.
func (l *list[T]) delete(index int) *Error {
	node, prev, err := l.find(index)
	if err != nil {
		return err
	}
	if prev == nil {
		l.head = node.next
	} else {
		prev.next = node.next
	}
	return nil
}

// clear empties the list (the equivalent of the source's free_all).
func (l *list[T]) clear() {
	l.head = nil
}

// toSlice materializes the list in order, for encoding passes and
// iteration that doesn't need node identity.
func (l *list[T]) toSlice() []T {
	out := make([]T, 0, l.len())
	for cur := l.head; cur != nil; cur = cur.next {
		out = append(out, cur.payload)
	}
	return out
}

// fromSlice replaces the list contents with items, in order.
func (l *list[T]) fromSlice(items []T) {
	l.head = nil
	var tail *listNode[T]
	for _, it := range items {
		node := &listNode[T]{payload: it}
		if tail == nil {
			l.head = node
		} else {
			tail.next = node
		}
		tail = node
	}
}
