// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

/*
Package wdb provides pure Go support for reading Crystarium WDB files.

WDB is the table format used by Final Fantasy XIII to store game data. The
Crystarium tables (crystal_*.wdb) hold one record per progression node for
every character. A WDB file is a small header followed by a directory of named,
offset-addressed chunks. Four reserved chunks, whose names start with "!",
carry the string table, two type lists and the format version; every other
chunk is a progression node.

# Features

  - Pure Go chunk directory reader that reproduces the on-disk padding rules
  - Typed progression nodes with character, cost, value, type, stage and role
  - Stage/role page grouping with previous/next navigation
  - Optional Shift-JIS or Windows-1252 string table transcoding
  - A concurrency-safe Store that keeps the latest upload and caches its pages

# Basic Usage

Decoding a file:

	crystarium, err := wdb.Open("crystal_lightning.wdb")
	if err != nil {
		log.Fatal(err)
	}

	for _, node := range crystarium.Nodes {
		fmt.Println(node.Character, node.Name, node.CPCost, node.Type)
	}

Grouping nodes into pages:

	pager := wdb.NewPager(wdb.Group(crystarium.Nodes))
	page, err := pager.Page(1)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(page.Group.Stage, page.Group.Role, len(page.Group.Nodes))

# Byte Layout

All integers are big-endian. The header is a 4-byte magic, an int32 entry
count and 8 reserved bytes. Each directory entry occupies 32 bytes: a
null-terminated name, two int32 values (offset, length) and trailing padding.
Reserved names are stored in a fixed 16-byte field; node names are not padded.
Node records are packed back to back: int32 CP cost, int32 ability reference,
int16 value, one type byte and one byte holding stage (high nibble) and role
(low nibble).

# Limitations

  - Read only; there is no encoder
  - Checksums are not validated and the version is read but not checked
  - The ability reference is kept as a raw value and not resolved
*/
package wdb
