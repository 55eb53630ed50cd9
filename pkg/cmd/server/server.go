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
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/pingcap/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	beatserver "github.com/wordmill/wordmill/beat/server"
	"github.com/wordmill/wordmill/pkg/config"
	"github.com/wordmill/wordmill/pkg/errors"
	"github.com/wordmill/wordmill/pkg/logutil"
	"go.uber.org/zap"
)

// options defines flags for the `server` command.
type options struct {
	configFilePath string

	serverConfig *config.ServerConfig
}

// newOptions creates new options for the `server` command.
func newOptions() *options {
	return &options{
		serverConfig: config.GetDefaultServerConfig(),
	}
}

// addFlags receives a *cobra.Command reference and binds flags related to
// the server to it.
func (o *options) addFlags(cmd *cobra.Command) {
	defaultServerConfig := config.GetDefaultServerConfig()
	cmd.Flags().StringVar(&o.serverConfig.Addr, "addr", defaultServerConfig.Addr, "Set the listening address")
	cmd.Flags().StringVar(&o.serverConfig.LogFile, "log-file", defaultServerConfig.LogFile, "log file path")
	cmd.Flags().StringVar(&o.serverConfig.LogLevel, "log-level", defaultServerConfig.LogLevel, "log level (etc: debug|info|warn|error)")
	cmd.Flags().StringVar(&o.serverConfig.Store.DSN, "store-dsn", defaultServerConfig.Store.DSN, "MySQL DSN of the beat store")
	cmd.Flags().DurationVar((*time.Duration)(&o.serverConfig.Ingest.FlushInterval), "flush-interval", time.Duration(defaultServerConfig.Ingest.FlushInterval), "interval between buffer flushes")
	cmd.Flags().IntVar(&o.serverConfig.Ingest.FlushBatchSize, "flush-batch-size", defaultServerConfig.Ingest.FlushBatchSize, "max beats written per flush")
	cmd.Flags().IntVar(&o.serverConfig.Ingest.BufferLimit, "buffer-limit", defaultServerConfig.Ingest.BufferLimit, "max beats held in memory, 0 means unbounded")
	cmd.Flags().StringVar(&o.configFilePath, "config", "", "Path of the configuration file")
}

func (o *options) run(cmd *cobra.Command) error {
	conf, err := o.loadAndVerifyServerConfig(cmd)
	if err != nil {
		return errors.Trace(err)
	}

	err = logutil.InitLogger(&logutil.Config{
		Level: conf.LogLevel,
		File:  conf.LogFile,
	})
	if err != nil {
		return errors.Annotate(err, "init logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := beatserver.New(conf)
	err = server.Run(ctx)
	if err != nil && errors.Cause(err) != context.Canceled {
		log.Error("run server", zap.Error(err))
		return errors.Annotate(err, "run server")
	}
	log.Info("wordmill server exits successfully")
	return nil
}

// loadAndVerifyServerConfig overlays the config file with explicitly set
// flags, flags winning.
func (o *options) loadAndVerifyServerConfig(cmd *cobra.Command) (*config.ServerConfig, error) {
	conf := config.GetDefaultServerConfig()
	if len(o.configFilePath) > 0 {
		if err := conf.FromTomlFile(o.configFilePath); err != nil {
			return nil, err
		}
	}
	cmd.Flags().Visit(func(flag *pflag.Flag) {
		switch flag.Name {
		case "addr":
			conf.Addr = o.serverConfig.Addr
		case "log-file":
			conf.LogFile = o.serverConfig.LogFile
		case "log-level":
			conf.LogLevel = o.serverConfig.LogLevel
		case "store-dsn":
			conf.Store.DSN = o.serverConfig.Store.DSN
		case "flush-interval":
			conf.Ingest.FlushInterval = o.serverConfig.Ingest.FlushInterval
		case "flush-batch-size":
			conf.Ingest.FlushBatchSize = o.serverConfig.Ingest.FlushBatchSize
		case "buffer-limit":
			conf.Ingest.BufferLimit = o.serverConfig.Ingest.BufferLimit
		}
	})
	if err := conf.ValidateAndAdjust(); err != nil {
		return nil, err
	}
	return conf, nil
}

// NewCmdServer creates the `server` command.
func NewCmdServer() *cobra.Command {
	o := newOptions()

	command := &cobra.Command{
		Use:   "server",
		Short: "Start the beat ingest server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd)
		},
	}

	o.addFlags(command)
	return command
}
