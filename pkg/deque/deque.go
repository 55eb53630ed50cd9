// Copyright 2024 Wordmill Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package deque

// node is a single cell of the chain. It is never exposed outside the
// package; all link surgery happens inside Deque methods.
type node[T any] struct {
	elem T
	next *node[T]
	prev *node[T]
}

// Deque is a generic double-ended queue backed by a doubly-linked chain of
// nodes. Push and pop at either end are O(1). Attention, it's not
// thread-safe.
type Deque[T any] struct {
	head *node[T]
	tail *node[T]
	size int

	zero T
}

// NewDeque creates an empty Deque.
func NewDeque[T any]() *Deque[T] {
	return &Deque[T]{}
}

// Len returns the number of elements in the deque.
func (d *Deque[T]) Len() int {
	return d.size
}

// Empty indicates whether the deque holds no elements.
func (d *Deque[T]) Empty() bool {
	return d.size == 0
}

// Front returns the first element without removing it.
func (d *Deque[T]) Front() (T, bool) {
	if d.head == nil {
		return d.zero, false
	}
	return d.head.elem, true
}

// Back returns the last element without removing it.
func (d *Deque[T]) Back() (T, bool) {
	if d.tail == nil {
		return d.zero, false
	}
	return d.tail.elem, true
}

// PushFront inserts elem before the current head.
func (d *Deque[T]) PushFront(elem T) {
	n := &node[T]{elem: elem}
	if d.head == nil {
		d.head = n
		d.tail = n
	} else {
		n.next = d.head
		d.head.prev = n
		d.head = n
	}
	d.size++
}

// PushBack inserts elem after the current tail.
func (d *Deque[T]) PushBack(elem T) {
	n := &node[T]{elem: elem}
	if d.tail == nil {
		d.head = n
		d.tail = n
	} else {
		n.prev = d.tail
		d.tail.next = n
		d.tail = n
	}
	d.size++
}

// PopFront removes and returns the first element. The second return value
// is false if the deque is empty.
func (d *Deque[T]) PopFront() (T, bool) {
	if d.head == nil {
		return d.zero, false
	}

	n := d.head
	d.head = n.next
	if d.head != nil {
		d.head.prev = nil
	} else {
		// n was the only node
		d.tail = nil
	}
	// Detach n completely so it keeps no reference into the live chain.
	n.next = nil
	n.prev = nil
	d.size--

	elem := n.elem
	n.elem = d.zero
	return elem, true
}

// PopBack removes and returns the last element. The second return value
// is false if the deque is empty.
func (d *Deque[T]) PopBack() (T, bool) {
	if d.tail == nil {
		return d.zero, false
	}

	n := d.tail
	d.tail = n.prev
	if d.tail != nil {
		d.tail.next = nil
	} else {
		// n was the only node
		d.head = nil
	}
	n.next = nil
	n.prev = nil
	d.size--

	elem := n.elem
	n.elem = d.zero
	return elem, true
}

// Clear drops every element. Nodes are unlinked one by one from the head;
// teardown cost is linear in the number of elements and uses constant
// stack space even on chains of millions of nodes.
func (d *Deque[T]) Clear() {
	for n := d.head; n != nil; {
		next := n.next
		n.next = nil
		n.prev = nil
		n.elem = d.zero
		n = next
	}
	d.head = nil
	d.tail = nil
	d.size = 0
}
