// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

// Package server exposes a Crystarium store over HTTP: upload a WDB file,
// then browse its nodes and stage/role pages as JSON.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	wdb "github.com/suprsokr/go-wdb"
)

// Server is the HTTP service.
type Server struct {
	cfg     *Config
	engine  *gin.Engine
	handler *Handler
	srv     *http.Server
}

// New validates cfg and builds the gin engine and routes.
func New(cfg *Config, store *wdb.Store, logger *slog.Logger) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	enc, err := wdb.EncodingByName(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	var opts []wdb.Option
	if enc != nil {
		opts = append(opts, wdb.WithStringEncoding(enc))
	}

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())
	engine.MaxMultipartMemory = cfg.MaxUploadBytes

	s := &Server{
		cfg:     cfg,
		engine:  engine,
		handler: NewHandler(store, logger, cfg.MaxUploadBytes, opts...),
	}
	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	v1 := s.engine.Group("/v1")

	v1.POST("/upload", s.handler.Upload)
	v1.GET("/directory", s.handler.Directory)
	v1.GET("/nodes", s.handler.Nodes)
	v1.GET("/pages", s.handler.Pages)
	v1.GET("/pages/:page", s.handler.Page)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on cfg.Addr until Shutdown is called.
func (s *Server) Run() error {
	s.srv = &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.engine,
	}
	return s.srv.ListenAndServe()
}

// Shutdown stops the listener and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
