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

package tokenizer

import (
	"bufio"
	"io"
	"os"
	"strings"

	cerror "github.com/wordmill/wordmill/pkg/errors"
)

// Validator decides whether a rune is kept in tokens. Runes rejected by
// the validator are removed before whitespace splitting, so a validator
// that rejects punctuation turns "la!" into "la".
type Validator func(rune) bool

// Tokenizer splits text into whitespace-separated tokens, filtered through
// a rune validator.
type Tokenizer struct {
	validator Validator
}

// NewTokenizer creates a Tokenizer whose validator keeps every rune.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{validator: func(rune) bool { return true }}
}

// NewTokenizerWithValidator creates a Tokenizer with a custom validator.
func NewTokenizerWithValidator(v Validator) *Tokenizer {
	if v == nil {
		return NewTokenizer()
	}
	return &Tokenizer{validator: v}
}

// FromReader returns a lazy token stream over r. Tokens are produced line
// by line; nothing is read past what Next needs.
func (t *Tokenizer) FromReader(r io.Reader) *TokenStream {
	return &TokenStream{
		scanner:   bufio.NewScanner(r),
		validator: t.validator,
	}
}

// FromFile returns a lazy token stream over the named file. The file is
// closed when the stream is exhausted or when Close is called.
func (t *Tokenizer) FromFile(path string) (*TokenStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cerror.WrapError(cerror.ErrTokenizeFileRead, err, path)
	}
	s := t.FromReader(f)
	s.closer = f
	return s, nil
}

// TokenStream is a pull-based sequence of tokens. It is finite and not
// restartable.
type TokenStream struct {
	scanner   *bufio.Scanner
	validator Validator
	closer    io.Closer

	pending []string
	done    bool
	err     error
}

// Next returns the next token, or ("", false) once the input is exhausted.
// After a false return, Err reports whether the input ended because of a
// read error.
func (s *TokenStream) Next() (string, bool) {
	for len(s.pending) == 0 {
		if s.done {
			return "", false
		}
		if !s.scanner.Scan() {
			s.err = s.scanner.Err()
			s.finish()
			return "", false
		}
		s.pending = s.tokenizeLine(s.scanner.Text())
	}
	tok := s.pending[0]
	s.pending = s.pending[1:]
	return tok, true
}

// Err returns the first read error hit by the stream, if any.
func (s *TokenStream) Err() error {
	return s.err
}

// Close releases the underlying file, if the stream owns one. It is safe
// to call on exhausted streams and streams over plain readers.
func (s *TokenStream) Close() error {
	s.finish()
	return nil
}

func (s *TokenStream) finish() {
	s.done = true
	if s.closer != nil {
		_ = s.closer.Close()
		s.closer = nil
	}
}

func (s *TokenStream) tokenizeLine(line string) []string {
	filtered := strings.Map(func(r rune) rune {
		if s.validator(r) {
			return r
		}
		return -1
	}, line)
	return strings.Fields(filtered)
}

// Drain reads the rest of the stream into a slice. Mostly useful in tests
// and the index command.
func (s *TokenStream) Drain() []string {
	var tokens []string
	for {
		tok, ok := s.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}
