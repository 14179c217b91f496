// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package wdb

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
)

// cursor is a forward-only reader over a WDB byte source that tracks the
// absolute position of the next unread byte.
type cursor struct {
	r   *bufio.Reader
	pos int64
}

// newCursor wraps r. The position starts at zero, so r must be at the
// beginning of the file.
func newCursor(r io.Reader) *cursor {
	if br, ok := r.(*bufio.Reader); ok {
		return &cursor{r: br}
	}
	return &cursor{r: bufio.NewReader(r)}
}

// position returns the absolute offset of the next byte to be read.
func (c *cursor) position() int64 {
	return c.pos
}

// readN reads exactly n bytes.
func (c *cursor) readN(n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(c.r, buf)
	c.pos += int64(read)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return buf, nil
}

// readChunk reads exactly n bytes without allocating n up front, so a
// corrupt length fails on the short read instead of on the allocation.
func (c *cursor) readChunk(n int64) ([]byte, error) {
	var buf bytes.Buffer
	copied, err := io.CopyN(&buf, c.r, n)
	c.pos += copied
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return buf.Bytes(), nil
}

// readCString reads up to and including the next null byte. It returns the
// text before the terminator and the number of bytes consumed.
func (c *cursor) readCString() (string, int, error) {
	raw, err := c.r.ReadBytes(0)
	c.pos += int64(len(raw))
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return "", len(raw), err
	}
	return string(raw[:len(raw)-1]), len(raw), nil
}

// readInt32 reads a big-endian int32.
func (c *cursor) readInt32() (int32, error) {
	buf, err := c.readN(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf)), nil
}

// readInt16 reads a big-endian int16.
func (c *cursor) readInt16() (int16, error) {
	buf, err := c.readN(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(buf)), nil
}

// readUint8 reads a single byte.
func (c *cursor) readUint8() (uint8, error) {
	b, err := c.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}
	c.pos++
	return b, nil
}

// skip consumes and discards n bytes.
func (c *cursor) skip(n int64) error {
	if n <= 0 {
		return nil
	}
	discarded, err := io.CopyN(io.Discard, c.r, n)
	c.pos += discarded
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}
