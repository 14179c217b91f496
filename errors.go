// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package wdb

import (
	"errors"
	"fmt"
)

// Decode errors. Every typed error below matches one of these with errors.Is.
var (
	// ErrFormat indicates a malformed header or directory, or a short read.
	ErrFormat = errors.New("malformed wdb file")

	// ErrMissingChunk indicates a reserved entry is absent or duplicated.
	ErrMissingChunk = errors.New("missing reserved chunk")

	// ErrPositionMismatch indicates the string table does not start at its
	// directory offset.
	ErrPositionMismatch = errors.New("chunk position mismatch")

	// ErrDecode indicates a node record could not be decoded.
	ErrDecode = errors.New("node record decode failed")
)

// Store and pager errors
var (
	// ErrNoData indicates no Crystarium has been loaded.
	ErrNoData = errors.New("no crystarium loaded")

	// ErrStaleHandle indicates a handle refers to a replaced decode.
	ErrStaleHandle = errors.New("crystarium handle is stale")

	// ErrPageOutOfRange indicates a page number outside 1..Len.
	ErrPageOutOfRange = errors.New("page out of range")
)

// FormatError reports a malformed header or directory entry.
type FormatError struct {
	Offset int64  // Position of the cursor when the failure was detected
	Field  string // What was being read
	Err    error  // Underlying cause, may be nil
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wdb: read %s at offset %d: %v", e.Field, e.Offset, e.Err)
	}
	return fmt.Sprintf("wdb: invalid %s at offset %d", e.Field, e.Offset)
}

func (e *FormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFormat}
	}
	return []error{ErrFormat, e.Err}
}

// MissingChunkError reports a reserved entry that does not resolve to exactly
// one directory entry.
type MissingChunkError struct {
	Name  string // Reserved entry name
	Found int    // Number of matching entries
}

func (e *MissingChunkError) Error() string {
	if e.Found == 0 {
		return fmt.Sprintf("wdb: reserved chunk %s not found", e.Name)
	}
	return fmt.Sprintf("wdb: reserved chunk %s found %d times", e.Name, e.Found)
}

func (e *MissingChunkError) Unwrap() error { return ErrMissingChunk }

// PositionMismatchError reports a chunk read that does not begin at the
// offset recorded in the directory.
type PositionMismatchError struct {
	Name     string
	Offset   int64 // Offset recorded in the directory
	Position int64 // Actual cursor position
}

func (e *PositionMismatchError) Error() string {
	return fmt.Sprintf("wdb: chunk %s declared at offset %d but cursor is at %d", e.Name, e.Offset, e.Position)
}

func (e *PositionMismatchError) Unwrap() error { return ErrPositionMismatch }

// DecodeError reports a failure while decoding one node record.
type DecodeError struct {
	Entry string // Directory entry name of the node
	Index int    // Index of the node among data entries
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("wdb: decode node %d (%s): %v", e.Index, e.Entry, e.Err)
}

func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Err} }

// Code is a short error classification used in logs and service responses.
type Code string

const (
	CodeUnknown          Code = "unknown"
	CodeFormat           Code = "format"
	CodeMissingChunk     Code = "missing_chunk"
	CodePositionMismatch Code = "position_mismatch"
	CodeDecode           Code = "decode"
	CodeNoData           Code = "no_data"
	CodeStale            Code = "stale"
	CodeOutOfRange       Code = "out_of_range"
)

// Classify maps err to a Code.
func Classify(err error) Code {
	switch {
	case err == nil:
		return CodeUnknown
	case errors.Is(err, ErrMissingChunk):
		return CodeMissingChunk
	case errors.Is(err, ErrPositionMismatch):
		return CodePositionMismatch
	case errors.Is(err, ErrDecode):
		return CodeDecode
	case errors.Is(err, ErrFormat):
		return CodeFormat
	case errors.Is(err, ErrNoData):
		return CodeNoData
	case errors.Is(err, ErrStaleHandle):
		return CodeStale
	case errors.Is(err, ErrPageOutOfRange):
		return CodeOutOfRange
	default:
		return CodeUnknown
	}
}
