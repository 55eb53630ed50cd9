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

// ForwardIter yields elements front to back. It is destructive: every Next
// delegates to PopFront, so consuming the iterator empties the deque. The
// sequence is finite and not restartable.
type ForwardIter[T any] struct {
	d *Deque[T]
}

// ForwardIterator returns a draining front-to-back iterator over d.
func (d *Deque[T]) ForwardIterator() *ForwardIter[T] {
	return &ForwardIter[T]{d: d}
}

// Next removes and returns the next element, or (zero, false) once the
// deque has been emptied.
func (it *ForwardIter[T]) Next() (T, bool) {
	return it.d.PopFront()
}

// BackwardIter yields elements back to front. It drains the deque through
// PopBack, with the same contract as ForwardIter.
type BackwardIter[T any] struct {
	d *Deque[T]
}

// BackwardIterator returns a draining back-to-front iterator over d.
func (d *Deque[T]) BackwardIterator() *BackwardIter[T] {
	return &BackwardIter[T]{d: d}
}

// Next removes and returns the next element, or (zero, false) once the
// deque has been emptied.
func (it *BackwardIter[T]) Next() (T, bool) {
	return it.d.PopBack()
}
