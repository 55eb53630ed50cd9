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

package logutil

import (
	"github.com/pingcap/log"
	"github.com/wordmill/wordmill/pkg/errors"
	"go.uber.org/zap"
)

// Config for the global logger.
type Config struct {
	// Level is one of debug, info, warn, error.
	Level string
	// File is the log output path. Empty means stderr.
	File string
	// FileMaxSize is the max size of a log file in MB before rotation.
	FileMaxSize int
	// FileMaxDays is the max days a rotated file is retained.
	FileMaxDays int
	// FileMaxBackups is the max number of rotated files retained.
	FileMaxBackups int
}

// InitLogger initializes the global logger from cfg and installs it as the
// zap global so both log.X and zap.L() sites agree.
func InitLogger(cfg *Config) error {
	pclogConfig := &log.Config{
		Level: cfg.Level,
		File: log.FileLogConfig{
			Filename:   cfg.File,
			MaxSize:    cfg.FileMaxSize,
			MaxDays:    cfg.FileMaxDays,
			MaxBackups: cfg.FileMaxBackups,
		},
	}
	logger, props, err := log.InitLogger(pclogConfig)
	if err != nil {
		return errors.Trace(err)
	}
	log.ReplaceGlobals(logger, props)
	zap.ReplaceGlobals(logger)
	return nil
}
