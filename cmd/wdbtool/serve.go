// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	wdb "github.com/suprsokr/go-wdb"
	"github.com/suprsokr/go-wdb/internal/server"
)

const shutdownTimeout = 5 * time.Second

func newLogger(w io.Writer, format string) (*slog.Logger, error) {
	switch format {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, nil)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, nil)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// serveConfig builds the server config from the defaults and any flags that
// were set.
func serveConfig(cmd *cobra.Command) *server.Config {
	cfg := server.DefaultConfig()
	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host, _ = flags.GetString("host")
	}
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("max-upload") {
		cfg.MaxUploadBytes, _ = flags.GetInt64("max-upload")
	}
	cfg.Encoding, _ = flags.GetString("encoding")
	return cfg
}

func runServe(cmd *cobra.Command, args []string) error {
	logFormat, _ := cmd.Flags().GetString("log-format")
	logger, err := newLogger(cmd.ErrOrStderr(), logFormat)
	if err != nil {
		return err
	}

	cfg := serveConfig(cmd)
	store := wdb.NewStore()

	if path, _ := cmd.Flags().GetString("load"); path != "" {
		c, err := openFile(cmd, path)
		if err != nil {
			return err
		}
		h := store.Replace(c)
		logger.Info("crystarium loaded", "path", path, "id", h.ID.String(), "nodes", c.Len())
	}

	s, err := server.New(cfg, store, logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr())
		if err := s.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server run: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
