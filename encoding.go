// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package wdb

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// decoder holds the settings of one decode.
type decoder struct {
	strings encoding.Encoding // nil keeps string table bytes as-is
}

// Option configures decoding.
type Option func(*decoder)

// WithStringEncoding transcodes string table entries from enc to UTF-8.
// Entry names are plain ASCII and are never transcoded.
func WithStringEncoding(enc encoding.Encoding) Option {
	return func(d *decoder) {
		d.strings = enc
	}
}

func newDecoder(opts ...Option) *decoder {
	d := &decoder{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// decodeString converts a raw string table entry to UTF-8.
func (d *decoder) decodeString(raw string) (string, error) {
	if d.strings == nil || raw == "" {
		return raw, nil
	}
	out, _, err := transform.String(d.strings.NewDecoder(), raw)
	if err != nil {
		return "", err
	}
	return out, nil
}

// EncodingByName resolves a string table encoding name. The empty name and
// "utf-8" return nil, which leaves strings untouched.
func EncodingByName(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8", "raw":
		return nil, nil
	case "shift-jis", "shift_jis", "sjis":
		return japanese.ShiftJIS, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unknown string encoding: %s", name)
	}
}
