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

package trie

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrieInsert(t *testing.T) {
	t.Parallel()

	tr := NewTrie()
	require.Equal(t, 0, tr.Size())
	require.False(t, tr.Contains(""))
	require.False(t, tr.Contains("a"))
	require.False(t, tr.Contains("apple"))

	tr.Insert("apple")
	require.Equal(t, 5, tr.Size())
	require.False(t, tr.Contains(""))
	require.False(t, tr.Contains("a"))
	require.False(t, tr.Contains("ap"))
	require.False(t, tr.Contains("app"))
	require.False(t, tr.Contains("appl"))
	require.True(t, tr.Contains("apple"))
	require.False(t, tr.Contains("apples"))

	tr.Insert("orange")
	require.Equal(t, 11, tr.Size())
	require.True(t, tr.Contains("apple"))
	require.False(t, tr.Contains("orang"))
	require.True(t, tr.Contains("orange"))
	require.False(t, tr.Contains("oranges"))
	require.False(t, tr.Contains("pear"))

	// A stored word extending another keeps both.
	tr.Insert("oranges")
	require.True(t, tr.Contains("orange"))
	require.True(t, tr.Contains("oranges"))

	// Inserting a prefix of a stored word marks it without adding nodes.
	size := tr.Size()
	tr.Insert("or")
	require.Equal(t, size, tr.Size())
	require.True(t, tr.Contains("or"))
	require.False(t, tr.Contains("o"))
}

type sliceStream struct {
	words []string
	pos   int
}

func (s *sliceStream) Next() (string, bool) {
	if s.pos >= len(s.words) {
		return "", false
	}
	word := s.words[s.pos]
	s.pos++
	return word, true
}

func TestTrieInsertAll(t *testing.T) {
	t.Parallel()

	tr := NewTrie()
	consumed := tr.InsertAll(&sliceStream{words: []string{"apple", "orange", "apple"}})
	require.Equal(t, 3, consumed)
	require.Equal(t, 11, tr.Size())
	require.True(t, tr.Contains("apple"))
	require.True(t, tr.Contains("orange"))

	// An exhausted stream adds nothing.
	require.Equal(t, 0, tr.InsertAll(&sliceStream{}))
	require.Equal(t, 11, tr.Size())
}

func TestTrieEmptyWord(t *testing.T) {
	t.Parallel()

	tr := NewTrie()
	tr.Insert("")
	require.Equal(t, 0, tr.Size())
	require.False(t, tr.Contains(""))
}

func TestTrieUnicode(t *testing.T) {
	t.Parallel()

	tr := NewTrie()
	tr.Insert("héron")
	require.True(t, tr.Contains("héron"))
	require.False(t, tr.Contains("heron"))
	require.Equal(t, 5, tr.Size())
}

func TestTrieWalk(t *testing.T) {
	t.Parallel()

	tr := NewTrie()
	words := []string{"apple", "orange", "oranges", "or"}
	for _, w := range words {
		tr.Insert(w)
	}

	var got []string
	tr.Walk(func(word string) bool {
		got = append(got, word)
		return true
	})
	sort.Strings(got)
	sort.Strings(words)
	require.Equal(t, words, got)

	// Early stop.
	count := 0
	tr.Walk(func(string) bool {
		count++
		return false
	})
	require.Equal(t, 1, count)
}
