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
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pingcap/log"
	"github.com/wordmill/wordmill/beat/api"
	"github.com/wordmill/wordmill/beat/model"
	"github.com/wordmill/wordmill/beat/store"
	"github.com/wordmill/wordmill/pkg/async"
	"github.com/wordmill/wordmill/pkg/config"
	cerror "github.com/wordmill/wordmill/pkg/errors"
	"github.com/wordmill/wordmill/pkg/retry"
	"github.com/wordmill/wordmill/pkg/workerpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	flushRetryBaseDelayInMs = 50
	flushRetryMaxTries      = 3
	shutdownFlushTimeout    = 5 * time.Second
)

// Server accepts beats over HTTP, buffers them in memory and flushes them
// to the store in batches.
type Server struct {
	cfg         *config.ServerConfig
	buffer      *beatBuffer
	pool        workerpool.AsyncPool
	initializer *async.Initializer

	// newStore is swapped for an in-memory factory in tests.
	newStore func() (store.Store, error)

	storeMu sync.RWMutex
	store   store.Store
}

// New creates a Server from a validated config.
func New(cfg *config.ServerConfig) *Server {
	return &Server{
		cfg:         cfg,
		buffer:      newBeatBuffer(cfg.Ingest.BufferLimit),
		pool:        workerpool.NewDefaultAsyncPool(cfg.Ingest.PoolWorkerNum),
		initializer: async.NewInitializer(),
		newStore: func() (store.Store, error) {
			return store.NewStore(cfg.Store.DSN)
		},
	}
}

// Ready implements api.Ingestor. Each call polls the one-shot store
// bring-up; the first call submits it.
func (s *Server) Ready(ctx context.Context) (bool, error) {
	return s.initializer.TryInitialize(ctx, s.bringUpStore, s.pool)
}

// Enqueue implements api.Ingestor.
func (s *Server) Enqueue(beat *model.BeatDO) error {
	return s.buffer.add(beat)
}

// Stats implements api.Ingestor.
func (s *Server) Stats(ctx context.Context) (*model.StatusResponse, error) {
	ready, err := s.Ready(ctx)
	if err != nil {
		return nil, err
	}
	resp := &model.StatusResponse{
		Ready:    ready,
		Buffered: s.buffer.len(),
	}
	if cli := s.getStore(); cli != nil {
		persisted, err := cli.CountBeats(ctx)
		if err != nil {
			return nil, err
		}
		resp.Persisted = persisted
	}
	return resp, nil
}

func (s *Server) bringUpStore(ctx context.Context) error {
	cli, err := s.newStore()
	if err != nil {
		return err
	}
	if err := cli.Initialize(ctx); err != nil {
		_ = cli.Close()
		return err
	}
	s.storeMu.Lock()
	s.store = cli
	s.storeMu.Unlock()
	log.Info("beat store is ready")
	return nil
}

func (s *Server) getStore() store.Store {
	s.storeMu.RLock()
	defer s.storeMu.RUnlock()
	return s.store
}

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	api.RegisterRoutes(router, api.NewOpenAPI(s))
	return router
}

// Run serves the API until ctx ends, then flushes what is left in the
// buffer and tears everything down.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.buildRouter(),
	}

	errg, ctx := errgroup.WithContext(ctx)

	errg.Go(func() error {
		return s.pool.Run(ctx)
	})

	errg.Go(func() error {
		log.Info("beat server listening", zap.String("addr", s.cfg.Addr))
		err := httpServer.ListenAndServe()
		if err == http.ErrServerClosed {
			return nil
		}
		return cerror.Trace(err)
	})

	errg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownFlushTimeout)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		return ctx.Err()
	})

	errg.Go(func() error {
		return s.flushLoop(ctx)
	})

	// Kick off the store bring-up without waiting for the first request.
	if _, err := s.Ready(ctx); err != nil {
		log.Warn("store bring-up did not start cleanly", zap.Error(err))
	}

	err := errg.Wait()
	s.initializer.Terminate()
	if cli := s.getStore(); cli != nil {
		_ = cli.Close()
	}
	return err
}

func (s *Server) flushLoop(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(s.cfg.Ingest.FlushInterval))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			// Final flush so accepted beats survive a graceful stop.
			flushCtx, cancel := context.WithTimeout(context.Background(), shutdownFlushTimeout)
			for s.flushOnce(flushCtx) {
			}
			cancel()
			return ctx.Err()
		case <-ticker.C:
			s.flushOnce(ctx)
		}
	}
}

// flushOnce persists one batch and reports whether it moved any beats.
func (s *Server) flushOnce(ctx context.Context) bool {
	cli := s.getStore()
	if cli == nil {
		return false
	}
	batch := s.buffer.takeBatch(s.cfg.Ingest.FlushBatchSize)
	if len(batch) == 0 {
		return false
	}

	err := retry.Do(ctx, func() error {
		return cli.SaveBeats(ctx, batch)
	}, retry.WithBackoffBaseDelay(flushRetryBaseDelayInMs),
		retry.WithMaxTries(flushRetryMaxTries),
		retry.WithIsRetryableErr(cerror.IsRetryableError))
	if err != nil {
		log.Warn("flush batch failed, beats returned to the buffer",
			zap.Int("batchSize", len(batch)), zap.Error(err))
		s.buffer.requeueFront(batch)
		return false
	}
	log.Debug("flushed beats", zap.Int("batchSize", len(batch)))
	return true
}
