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

package server

import (
	"sync"

	"github.com/wordmill/wordmill/beat/model"
	"github.com/wordmill/wordmill/pkg/deque"
	cerror "github.com/wordmill/wordmill/pkg/errors"
)

// beatBuffer holds accepted beats until the flush loop persists them.
// The deque itself is single-owner; the buffer serializes access to it.
type beatBuffer struct {
	mu      sync.Mutex
	pending *deque.Deque[*model.BeatDO]
	limit   int
}

func newBeatBuffer(limit int) *beatBuffer {
	return &beatBuffer{
		pending: deque.NewDeque[*model.BeatDO](),
		limit:   limit,
	}
}

// add appends a beat at the back. A limit of zero means unbounded.
func (b *beatBuffer) add(beat *model.BeatDO) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.limit > 0 && b.pending.Len() >= b.limit {
		return cerror.ErrBeatBufferAtLimit.GenWithStackByArgs(b.limit)
	}
	b.pending.PushBack(beat)
	return nil
}

// takeBatch removes and returns at most max beats, oldest first.
func (b *beatBuffer) takeBatch(max int) []*model.BeatDO {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending.Empty() {
		return nil
	}
	n := b.pending.Len()
	if max > 0 && n > max {
		n = max
	}
	batch := make([]*model.BeatDO, 0, n)
	it := b.pending.ForwardIterator()
	for len(batch) < n {
		beat, ok := it.Next()
		if !ok {
			break
		}
		batch = append(batch, beat)
	}
	return batch
}

// requeueFront puts beats back at the front in their original order, used
// when a flush could not be persisted.
func (b *beatBuffer) requeueFront(beats []*model.BeatDO) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(beats) - 1; i >= 0; i-- {
		b.pending.PushFront(beats[i])
	}
}

func (b *beatBuffer) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending.Len()
}
