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

package index

import (
	"sort"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/wordmill/wordmill/pkg/deque"
	"github.com/wordmill/wordmill/pkg/errors"
	"github.com/wordmill/wordmill/pkg/tokenizer"
	"github.com/wordmill/wordmill/pkg/trie"
)

// options defines flags for the `index` command.
type options struct {
	stripPunctuation bool
	listWords        bool
	tailSize         int
}

func (o *options) addFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.stripPunctuation, "strip-punctuation", false, "drop punctuation runes before splitting")
	cmd.Flags().BoolVar(&o.listWords, "list", false, "print every indexed word")
	cmd.Flags().IntVar(&o.tailSize, "tail", 0, "print the last N tokens seen")
}

func (o *options) newTokenizer() *tokenizer.Tokenizer {
	if !o.stripPunctuation {
		return tokenizer.NewTokenizer()
	}
	return tokenizer.NewTokenizerWithValidator(func(r rune) bool {
		return !unicode.IsPunct(r)
	})
}

// tailingStream passes tokens through while keeping a sliding window of the
// most recent size tokens.
type tailingStream struct {
	inner *tokenizer.TokenStream
	tail  *deque.Deque[string]
	size  int
}

func (s *tailingStream) Next() (string, bool) {
	token, ok := s.inner.Next()
	if !ok {
		return "", false
	}
	if s.size > 0 {
		s.tail.PushBack(token)
		if s.tail.Len() > s.size {
			s.tail.PopFront()
		}
	}
	return token, true
}

func (o *options) run(cmd *cobra.Command, files []string) error {
	tok := o.newTokenizer()
	index := trie.NewTrie()
	tail := deque.NewDeque[string]()
	total := 0

	for _, file := range files {
		stream, err := tok.FromFile(file)
		if err != nil {
			return errors.Trace(err)
		}
		total += index.InsertAll(&tailingStream{inner: stream, tail: tail, size: o.tailSize})
		if err := stream.Err(); err != nil {
			return errors.Annotatef(err, "reading %s", file)
		}
	}

	distinct := 0
	var words []string
	index.Walk(func(word string) bool {
		distinct++
		if o.listWords {
			words = append(words, word)
		}
		return true
	})

	cmd.Printf("files: %d\n", len(files))
	cmd.Printf("tokens: %d\n", total)
	cmd.Printf("distinct words: %d\n", distinct)
	cmd.Printf("index nodes: %d\n", index.Size())

	if o.tailSize > 0 {
		cmd.Printf("last tokens:")
		it := tail.ForwardIterator()
		for {
			token, ok := it.Next()
			if !ok {
				break
			}
			cmd.Printf(" %s", token)
		}
		cmd.Printf("\n")
	}
	if o.listWords {
		sort.Strings(words)
		for _, word := range words {
			cmd.Printf("%s\n", word)
		}
	}
	return nil
}

// NewCmdIndex creates the `index` command.
func NewCmdIndex() *cobra.Command {
	o := &options{}

	command := &cobra.Command{
		Use:   "index [files...]",
		Short: "Tokenize text files and build a word index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}

	o.addFlags(command)
	return command
}
