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

package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wordmill/wordmill/beat/model"
)

// Ingestor is the part of the server the HTTP layer talks to.
type Ingestor interface {
	// Ready polls the one-shot store bring-up: true once the store accepts
	// writes, an error if bring-up failed.
	Ready(ctx context.Context) (bool, error)
	// Enqueue buffers an accepted beat for the flush loop.
	Enqueue(beat *model.BeatDO) error
	// Stats reports buffer and store counters.
	Stats(ctx context.Context) (*model.StatusResponse, error)
}

// OpenAPI is the HTTP interface of a wordmill server.
type OpenAPI struct {
	ingestor Ingestor
}

// NewOpenAPI creates an OpenAPI over an ingestor.
func NewOpenAPI(ingestor Ingestor) OpenAPI {
	return OpenAPI{ingestor: ingestor}
}

// RegisterRoutes binds the API routes to router.
func RegisterRoutes(router *gin.Engine, api OpenAPI) {
	router.GET("/", api.health)
	router.POST("/beats", api.saveBeat)
	router.GET("/status", api.status)
}

// health returns 200 once the store bring-up finished, 503 while it is
// still pending, and 500 if it failed.
func (h OpenAPI) health(c *gin.Context) {
	ready, err := h.ingestor.Ready(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, &model.HTTPError{Error: err.Error()})
		return
	}
	if !ready {
		c.JSON(http.StatusServiceUnavailable, &model.HTTPError{Error: "initializing"})
		return
	}
	c.JSON(http.StatusOK, &model.EmptyResponse{})
}

// saveBeat accepts a beat and buffers it for persistence.
func (h OpenAPI) saveBeat(c *gin.Context) {
	var req model.BeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, &model.HTTPError{Error: err.Error()})
		return
	}
	if err := h.ingestor.Enqueue(req.ToDO()); err != nil {
		c.JSON(http.StatusTooManyRequests, &model.HTTPError{Error: err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, &model.EmptyResponse{})
}

// status reports readiness plus buffered and persisted counts.
func (h OpenAPI) status(c *gin.Context) {
	stats, err := h.ingestor.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, &model.HTTPError{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
