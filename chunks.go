// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package wdb

import "fmt"

// loadStrings reads the string table. The table must start exactly where the
// directory says it does.
func (d *decoder) loadStrings(c *cursor, dir *Directory) ([]string, error) {
	entry, err := dir.reservedEntry(StringChunk)
	if err != nil {
		return nil, err
	}

	if c.position() != int64(entry.Offset) {
		return nil, &PositionMismatchError{
			Name:     StringChunk,
			Offset:   int64(entry.Offset),
			Position: c.position(),
		}
	}

	var strs []string
	consumed := 0
	for consumed < int(entry.Length) {
		s, n, err := c.readCString()
		if err != nil {
			return nil, &FormatError{Offset: c.position(), Field: "string table", Err: err}
		}
		consumed += n

		if s, err = d.decodeString(s); err != nil {
			return nil, &FormatError{Offset: c.position() - int64(n), Field: "string table entry", Err: err}
		}
		strs = append(strs, s)
	}

	return strs, nil
}

// loadRawChunk reads entry.Length bytes of the named chunk at the current
// cursor position.
func loadRawChunk(c *cursor, dir *Directory, name string) ([]byte, error) {
	entry, err := dir.reservedEntry(name)
	if err != nil {
		return nil, err
	}

	data, err := c.readChunk(int64(entry.Length))
	if err != nil {
		return nil, &FormatError{Offset: c.position(), Field: fmt.Sprintf("chunk %s", name), Err: err}
	}
	return data, nil
}

// loadVersion reads the version that follows the type lists. The
// !!version entry is only checked for presence.
func loadVersion(c *cursor, dir *Directory) (int32, error) {
	if _, err := dir.reservedEntry(VersionChunk); err != nil {
		return 0, err
	}

	version, err := c.readInt32()
	if err != nil {
		return 0, &FormatError{Offset: c.position(), Field: "version", Err: err}
	}
	return version, nil
}
