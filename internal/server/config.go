// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package server

import (
	"fmt"
	"net"
	"strconv"
)

// Service defaults
const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 8000

	// Crystarium files are a few hundred kilobytes; this leaves headroom.
	DefaultMaxUploadBytes = 16 << 20
)

// Config holds the service settings.
type Config struct {
	Host           string
	Port           int
	MaxUploadBytes int64
	Encoding       string // string table encoding, see wdb.EncodingByName
}

// DefaultConfig returns a Config listening on 127.0.0.1:8000.
func DefaultConfig() *Config {
	return &Config{
		Host:           DefaultHost,
		Port:           DefaultPort,
		MaxUploadBytes: DefaultMaxUploadBytes,
	}
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *Config) validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("invalid max upload size: %d", c.MaxUploadBytes)
	}
	return nil
}
