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

package stack

// Stack is a generic LIFO container backed by a singly-linked chain.
// Attention, it's not thread-safe.
type Stack[T any] struct {
	head *node[T]
	size int

	zero T
}

type node[T any] struct {
	elem T
	next *node[T]
}

// NewStack creates an empty Stack.
func NewStack[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Len returns the number of elements on the stack.
func (s *Stack[T]) Len() int {
	return s.size
}

// Empty indicates whether the stack holds no elements.
func (s *Stack[T]) Empty() bool {
	return s.size == 0
}

// Push places elem on top of the stack.
func (s *Stack[T]) Push(elem T) {
	s.head = &node[T]{elem: elem, next: s.head}
	s.size++
}

// Pop removes and returns the top element. The second return value is
// false if the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	if s.head == nil {
		return s.zero, false
	}
	n := s.head
	s.head = n.next
	n.next = nil
	s.size--

	elem := n.elem
	n.elem = s.zero
	return elem, true
}

// Peek returns the top element without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	if s.head == nil {
		return s.zero, false
	}
	return s.head.elem, true
}

// Clear drops every element with an explicit walk rather than leaving the
// whole chain for the collector to chase through one long pointer path.
func (s *Stack[T]) Clear() {
	for n := s.head; n != nil; {
		next := n.next
		n.next = nil
		n.elem = s.zero
		n = next
	}
	s.head = nil
	s.size = 0
}

// Iter yields elements top-down. It is destructive: every Next delegates
// to Pop, so consuming the iterator empties the stack.
type Iter[T any] struct {
	s *Stack[T]
}

// Iterator returns a draining top-down iterator over s.
func (s *Stack[T]) Iterator() *Iter[T] {
	return &Iter[T]{s: s}
}

// Next removes and returns the next element, or (zero, false) once the
// stack has been emptied.
func (it *Iter[T]) Next() (T, bool) {
	return it.s.Pop()
}
