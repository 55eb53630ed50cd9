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

// Trie is a rune-keyed prefix tree used as a word index. Attention, it's
// not thread-safe.
type Trie struct {
	root *trieNode
}

type trieNode struct {
	// eow marks that the path from the root to this node spells a stored word.
	eow      bool
	children map[rune]*trieNode
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// NewTrie creates an empty Trie.
func NewTrie() *Trie {
	return &Trie{root: newTrieNode()}
}

// Insert stores word in the index. The empty string is ignored.
func (t *Trie) Insert(word string) {
	if word == "" {
		return
	}
	curr := t.root
	for _, r := range word {
		next, ok := curr.children[r]
		if !ok {
			next = newTrieNode()
			curr.children[r] = next
		}
		curr = next
	}
	curr.eow = true
}

// WordStream yields words one at a time, returning false once exhausted.
// tokenizer.TokenStream satisfies it.
type WordStream interface {
	Next() (string, bool)
}

// InsertAll drains stream into the index and returns the number of words
// consumed, counting duplicates.
func (t *Trie) InsertAll(stream WordStream) int {
	consumed := 0
	for {
		word, ok := stream.Next()
		if !ok {
			return consumed
		}
		t.Insert(word)
		consumed++
	}
}

// Contains reports whether word was stored by a previous Insert. Prefixes
// of stored words do not count unless they were inserted themselves.
func (t *Trie) Contains(word string) bool {
	if word == "" {
		return false
	}
	curr := t.root
	for _, r := range word {
		next, ok := curr.children[r]
		if !ok {
			return false
		}
		curr = next
	}
	return curr.eow
}

// Size returns the total number of nodes below the root, i.e. the number
// of distinct runes along all stored paths. "apple" alone yields 5;
// adding "orange" yields 11.
func (t *Trie) Size() int {
	return t.root.size()
}

func (n *trieNode) size() int {
	total := len(n.children)
	for _, child := range n.children {
		total += child.size()
	}
	return total
}

// Walk calls fn once per stored word, in unspecified order. Returning
// false from fn stops the walk.
func (t *Trie) Walk(fn func(word string) bool) {
	t.root.walk(nil, fn)
}

func (n *trieNode) walk(prefix []rune, fn func(word string) bool) bool {
	if n.eow {
		if !fn(string(prefix)) {
			return false
		}
	}
	for r, child := range n.children {
		if !child.walk(append(prefix, r), fn) {
			return false
		}
	}
	return true
}
