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
	"encoding/json"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/log"
	cerror "github.com/wordmill/wordmill/pkg/errors"
	"go.uber.org/zap"
)

var defaultServerConfig = &ServerConfig{
	Addr:     "127.0.0.1:8600",
	LogLevel: "info",
	LogFile:  "",
	Store: &StoreConfig{
		DSN: "root@tcp(127.0.0.1:3306)/wordmill?charset=utf8mb4&parseTime=True",
	},
	Ingest: &IngestConfig{
		FlushInterval:  TomlDuration(time.Second),
		FlushBatchSize: 128,
		BufferLimit:    65536,
		PoolWorkerNum:  4,
	},
}

// TomlDuration is a duration with a TOML text representation such as "5s".
type TomlDuration time.Duration

// MarshalText implements encoding.TextMarshaler. Without it the JSON
// round-trip in Clone would write the field as a plain number, which
// UnmarshalText then rejects.
func (d TomlDuration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *TomlDuration) UnmarshalText(text []byte) error {
	stdDuration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = TomlDuration(stdDuration)
	return nil
}

// ServerConfig represents the whole configuration of a wordmill server.
type ServerConfig struct {
	Addr     string `toml:"addr" json:"addr"`
	LogLevel string `toml:"log-level" json:"log-level"`
	LogFile  string `toml:"log-file" json:"log-file"`

	Store  *StoreConfig  `toml:"store" json:"store"`
	Ingest *IngestConfig `toml:"ingest" json:"ingest"`
}

// StoreConfig configures the beat persistence layer.
type StoreConfig struct {
	// DSN is a go-sql-driver/mysql data source name.
	DSN string `toml:"dsn" json:"dsn"`
}

// IngestConfig configures the in-memory beat buffer and its flush loop.
type IngestConfig struct {
	FlushInterval  TomlDuration `toml:"flush-interval" json:"flush-interval"`
	FlushBatchSize int          `toml:"flush-batch-size" json:"flush-batch-size"`
	// BufferLimit caps the number of beats waiting in memory; zero means
	// unbounded.
	BufferLimit   int `toml:"buffer-limit" json:"buffer-limit"`
	PoolWorkerNum int `toml:"pool-worker-num" json:"pool-worker-num"`
}

// GetDefaultServerConfig returns a copy of the default server config.
func GetDefaultServerConfig() *ServerConfig {
	return defaultServerConfig.Clone()
}

// Clone deep-copies the config.
func (c *ServerConfig) Clone() *ServerConfig {
	data, err := json.Marshal(c)
	if err != nil {
		log.Panic("failed to marshal server config", zap.Error(err))
	}
	clone := new(ServerConfig)
	if err := json.Unmarshal(data, clone); err != nil {
		log.Panic("failed to unmarshal server config", zap.Error(err))
	}
	return clone
}

// FromTomlFile overlays the TOML file at path onto c.
func (c *ServerConfig) FromTomlFile(path string) error {
	meta, err := toml.DecodeFile(path, c)
	if err != nil {
		return cerror.WrapError(cerror.ErrInvalidServerOption, err, "decode config file")
	}
	if keys := meta.Undecoded(); len(keys) > 0 {
		log.Warn("config file contains unknown keys", zap.Any("keys", keys))
	}
	return nil
}

// ValidateAndAdjust verifies the config and fills defaults for fields left
// at their zero value.
func (c *ServerConfig) ValidateAndAdjust() error {
	if c.Addr == "" {
		return cerror.ErrInvalidServerOption.GenWithStackByArgs("empty addr")
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultServerConfig.LogLevel
	}
	if c.Store == nil || c.Store.DSN == "" {
		return cerror.ErrInvalidServerOption.GenWithStackByArgs("empty store dsn")
	}
	if c.Ingest == nil {
		c.Ingest = defaultServerConfig.Ingest.clone()
	}
	if c.Ingest.FlushInterval <= 0 {
		c.Ingest.FlushInterval = defaultServerConfig.Ingest.FlushInterval
	}
	if c.Ingest.FlushBatchSize <= 0 {
		c.Ingest.FlushBatchSize = defaultServerConfig.Ingest.FlushBatchSize
	}
	if c.Ingest.BufferLimit < 0 {
		return cerror.ErrInvalidServerOption.GenWithStackByArgs("negative buffer limit")
	}
	if c.Ingest.PoolWorkerNum <= 0 {
		c.Ingest.PoolWorkerNum = defaultServerConfig.Ingest.PoolWorkerNum
	}
	return nil
}

func (c *IngestConfig) clone() *IngestConfig {
	clone := *c
	return &clone
}
