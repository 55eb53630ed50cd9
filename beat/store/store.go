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

package store

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/glebarez/sqlite"
	"github.com/pingcap/log"
	"github.com/wordmill/wordmill/beat/model"
	cerror "github.com/wordmill/wordmill/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Store persists beats.
type Store interface {
	// Initialize creates or migrates the schema.
	Initialize(ctx context.Context) error
	// SaveBeat inserts one beat.
	SaveBeat(ctx context.Context, beat *model.BeatDO) error
	// SaveBeats inserts a batch of beats in one transaction.
	SaveBeats(ctx context.Context, beats []*model.BeatDO) error
	// CountBeats returns the number of persisted beats.
	CountBeats(ctx context.Context) (int64, error)
	// Close releases the underlying connection pool.
	Close() error
}

type client struct {
	db *gorm.DB
}

// NewStore opens a MySQL-backed store from a DSN.
func NewStore(dsn string) (Store, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		log.Error("create beat store client fail", zap.Error(err))
		return nil, cerror.WrapError(cerror.ErrStoreNewClientFail, err)
	}
	return &client{db: db}, nil
}

// NewMockStore creates a store over an in-memory SQLite database. Each call
// gets its own database, so parallel tests do not observe each other.
func NewMockStore() (Store, error) {
	// ref: https://www.sqlite.org/inmemorydb.html
	dsn := fmt.Sprintf("file:beats-%d?mode=memory&cache=shared", rand.Int63())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, cerror.WrapError(cerror.ErrStoreNewClientFail, err)
	}
	return &client{db: db}, nil
}

func (c *client) Initialize(ctx context.Context) error {
	if err := c.db.WithContext(ctx).AutoMigrate(&model.BeatDO{}); err != nil {
		return cerror.WrapError(cerror.ErrStoreInitializeFail, err)
	}
	return nil
}

func (c *client) SaveBeat(ctx context.Context, beat *model.BeatDO) error {
	return cerror.Trace(c.db.WithContext(ctx).Create(beat).Error)
}

func (c *client) SaveBeats(ctx context.Context, beats []*model.BeatDO) error {
	if len(beats) == 0 {
		return nil
	}
	return cerror.Trace(c.db.WithContext(ctx).CreateInBatches(beats, len(beats)).Error)
}

func (c *client) CountBeats(ctx context.Context) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&model.BeatDO{}).Count(&count).Error
	return count, cerror.Trace(err)
}

func (c *client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return cerror.Trace(err)
	}
	return cerror.Trace(sqlDB.Close())
}
