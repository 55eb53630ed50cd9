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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := GetDefaultServerConfig()
	require.NoError(t, cfg.ValidateAndAdjust())
	require.Equal(t, "127.0.0.1:8600", cfg.Addr)
	require.Equal(t, 128, cfg.Ingest.FlushBatchSize)
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()

	cfg := GetDefaultServerConfig()
	clone := cfg.Clone()
	clone.Ingest.BufferLimit = 1
	clone.Store.DSN = "other"
	require.NotEqual(t, cfg.Ingest.BufferLimit, clone.Ingest.BufferLimit)
	require.NotEqual(t, cfg.Store.DSN, clone.Store.DSN)
}

func TestCloneKeepsDuration(t *testing.T) {
	t.Parallel()

	cfg := GetDefaultServerConfig()
	cfg.Ingest.FlushInterval = TomlDuration(250 * time.Millisecond)
	clone := cfg.Clone()
	require.Equal(t, TomlDuration(250*time.Millisecond), clone.Ingest.FlushInterval)
}

func TestTomlDurationText(t *testing.T) {
	t.Parallel()

	text, err := TomlDuration(5 * time.Second).MarshalText()
	require.NoError(t, err)
	require.Equal(t, "5s", string(text))

	var d TomlDuration
	require.NoError(t, d.UnmarshalText(text))
	require.Equal(t, TomlDuration(5*time.Second), d)
}

func TestFromTomlFile(t *testing.T) {
	t.Parallel()

	content := `
addr = "0.0.0.0:9900"
log-level = "debug"

[store]
dsn = "user:pass@tcp(db:3306)/beats"

[ingest]
flush-interval = "250ms"
flush-batch-size = 64
buffer-limit = 1024
`
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := GetDefaultServerConfig()
	require.NoError(t, cfg.FromTomlFile(path))
	require.NoError(t, cfg.ValidateAndAdjust())

	require.Equal(t, "0.0.0.0:9900", cfg.Addr)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "user:pass@tcp(db:3306)/beats", cfg.Store.DSN)
	require.Equal(t, TomlDuration(250*time.Millisecond), cfg.Ingest.FlushInterval)
	require.Equal(t, 64, cfg.Ingest.FlushBatchSize)
	require.Equal(t, 1024, cfg.Ingest.BufferLimit)
	// Unset fields keep defaults.
	require.Equal(t, 4, cfg.Ingest.PoolWorkerNum)
}

func TestValidateRejectsBadConfig(t *testing.T) {
	t.Parallel()

	cfg := GetDefaultServerConfig()
	cfg.Addr = ""
	require.Error(t, cfg.ValidateAndAdjust())

	cfg = GetDefaultServerConfig()
	cfg.Store.DSN = ""
	require.Error(t, cfg.ValidateAndAdjust())

	cfg = GetDefaultServerConfig()
	cfg.Ingest.BufferLimit = -1
	require.Error(t, cfg.ValidateAndAdjust())
}
