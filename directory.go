// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package wdb

import (
	"fmt"
	"io"
	"strings"
)

// maxPreallocEntries bounds the capacity reserved from the header count, so a
// corrupt count fails on the short read instead of on the allocation.
const maxPreallocEntries = 1024

// ReadDirectory reads the header, the entry table and the reserved chunks
// from r, which must be positioned at the start of the file.
func ReadDirectory(r io.Reader, opts ...Option) (*Directory, error) {
	d := newDecoder(opts...)
	return d.readDirectory(newCursor(r))
}

// readDirectory reads the header and entry table, then loads the reserved
// chunks in stream order. On return the cursor sits just past the version.
func (d *decoder) readDirectory(c *cursor) (*Directory, error) {
	dir, err := readEntryTable(c)
	if err != nil {
		return nil, err
	}

	if dir.Strings, err = d.loadStrings(c, dir); err != nil {
		return nil, err
	}
	if dir.StringTypes, err = loadRawChunk(c, dir, StrTypeListChunk); err != nil {
		return nil, err
	}
	if dir.Types, err = loadRawChunk(c, dir, TypeListChunk); err != nil {
		return nil, err
	}
	if dir.Version, err = loadVersion(c, dir); err != nil {
		return nil, err
	}

	return dir, nil
}

// readEntryTable reads the magic, the entry count and count directory entries.
func readEntryTable(c *cursor) (*Directory, error) {
	magic, err := c.readN(magicSize)
	if err != nil {
		return nil, &FormatError{Offset: c.position(), Field: "magic", Err: err}
	}

	count, err := c.readInt32()
	if err != nil {
		return nil, &FormatError{Offset: c.position(), Field: "entry count", Err: err}
	}
	if count < 0 {
		return nil, &FormatError{Offset: c.position() - 4, Field: fmt.Sprintf("entry count %d", count)}
	}

	if err := c.skip(headerReservedSize); err != nil {
		return nil, &FormatError{Offset: c.position(), Field: "header padding", Err: err}
	}

	dir := &Directory{
		Magic:   string(magic),
		Count:   count,
		Entries: make([]DirectoryEntry, 0, min(count, maxPreallocEntries)),
	}

	for i := int32(0); i < count; i++ {
		entry, err := readEntry(c)
		if err != nil {
			return nil, fmt.Errorf("directory entry %d: %w", i, err)
		}
		dir.Entries = append(dir.Entries, entry)
	}

	return dir, nil
}

// readEntry reads one 32-byte directory entry. Reserved names sit in a
// 16-byte field; node names are not padded, so the entry boundary depends on
// the name prefix.
func readEntry(c *cursor) (DirectoryEntry, error) {
	start := c.position()

	name, nameLen, err := c.readCString()
	if err != nil {
		return DirectoryEntry{}, &FormatError{Offset: start, Field: "entry name", Err: err}
	}

	if strings.HasPrefix(name, reservedPrefix) {
		if nameLen > reservedNameSize {
			return DirectoryEntry{}, &FormatError{Offset: start, Field: fmt.Sprintf("reserved entry name %q", name)}
		}
		if err := c.skip(int64(reservedNameSize - nameLen)); err != nil {
			return DirectoryEntry{}, &FormatError{Offset: c.position(), Field: "entry name padding", Err: err}
		}
	}

	offset, err := c.readInt32()
	if err != nil {
		return DirectoryEntry{}, &FormatError{Offset: c.position(), Field: "entry offset", Err: err}
	}
	length, err := c.readInt32()
	if err != nil {
		return DirectoryEntry{}, &FormatError{Offset: c.position(), Field: "entry length", Err: err}
	}
	if length < 0 {
		return DirectoryEntry{}, &FormatError{Offset: c.position() - 4, Field: fmt.Sprintf("entry %q length %d", name, length)}
	}

	if err := c.skip(entryTrailingSize); err != nil {
		return DirectoryEntry{}, &FormatError{Offset: c.position(), Field: "entry padding", Err: err}
	}

	return DirectoryEntry{Name: name, Offset: offset, Length: length}, nil
}
