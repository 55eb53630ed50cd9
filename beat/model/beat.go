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

package model

import "time"

const tableNameBeats = "beats"

// BeatDO mapped from table <beats>
type BeatDO struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CreatedOn  time.Time `gorm:"column:created_on;not null;autoCreateTime" json:"created_on"`
	CustomerID string    `gorm:"column:customer_id;type:varchar(128);not null;index:customer_id" json:"customer_id"`
	EventCount int32     `gorm:"column:event_count;not null" json:"event_count"`
}

// TableName Beat's table name
func (*BeatDO) TableName() string {
	return tableNameBeats
}

// BeatRequest is the JSON body of POST /beats.
type BeatRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
	EventCount int32  `json:"event_count" binding:"required"`
}

// ToDO converts an API request into the persistence object.
func (r *BeatRequest) ToDO() *BeatDO {
	return &BeatDO{
		CustomerID: r.CustomerID,
		EventCount: r.EventCount,
	}
}

// StatusResponse is the JSON body of GET /status.
type StatusResponse struct {
	Ready     bool  `json:"ready"`
	Buffered  int   `json:"buffered"`
	Persisted int64 `json:"persisted"`
}

// EmptyResponse is an empty JSON object.
type EmptyResponse struct{}

// HTTPError is the JSON error envelope of the API.
type HTTPError struct {
	Error string `json:"error"`
}
