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

package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wordmill/wordmill/beat/model"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	s, err := NewMockStore()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, s.Initialize(ctx))
	return s
}

func TestSaveBeat(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	count, err := s.CountBeats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)

	beat := &model.BeatDO{CustomerID: "1234ABC", EventCount: 10000}
	require.NoError(t, s.SaveBeat(ctx, beat))
	require.NotZero(t, beat.ID)

	count, err = s.CountBeats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestSaveBeatsBatch(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveBeats(ctx, nil))

	beats := make([]*model.BeatDO, 0, 100)
	for i := 0; i < 100; i++ {
		beats = append(beats, &model.BeatDO{
			CustomerID: fmt.Sprintf("customer-%d", i%7),
			EventCount: int32(i),
		})
	}
	require.NoError(t, s.SaveBeats(ctx, beats))

	count, err := s.CountBeats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(100), count)
}
