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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func runIndex(t *testing.T, args ...string) string {
	t.Helper()
	cmd := NewCmdIndex()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestIndexCounts(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("apple orange apple\noranges\n"), 0o600))

	out := runIndex(t, path)
	require.Contains(t, out, "files: 1\n")
	require.Contains(t, out, "tokens: 4\n")
	require.Contains(t, out, "distinct words: 3\n")
	// apple(5) + orange(6) + the trailing s of oranges.
	require.Contains(t, out, "index nodes: 12\n")
}

func TestIndexStripPunctuation(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "punct.txt")
	require.NoError(t, os.WriteFile(path, []byte("oh, la , la!\n"), 0o600))

	out := runIndex(t, path, "--strip-punctuation", "--list")
	require.Contains(t, out, "tokens: 3\n")
	require.Contains(t, out, "distinct words: 2\n")
	require.Contains(t, out, "la\n")
	require.Contains(t, out, "oh\n")
}

func TestIndexTail(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tail.txt")
	require.NoError(t, os.WriteFile(path, []byte("a b c d e\n"), 0o600))

	out := runIndex(t, path, "--tail", "3")
	require.Contains(t, out, "last tokens: c d e\n")
}

func TestIndexMissingFile(t *testing.T) {
	t.Parallel()

	cmd := NewCmdIndex()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"./definitely-not-there.txt"})
	require.Error(t, cmd.Execute())
}
