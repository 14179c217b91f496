// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package wdb

import "strings"

// WDB format constants
const (
	// Header sizes
	magicSize          = 4
	headerReservedSize = 8 // unused bytes after the entry count

	// Directory entry layout
	entrySize         = 32 // every directory entry spans 32 bytes
	reservedNameSize  = 16 // fixed name field of "!" entries
	entryTrailingSize = entrySize - reservedNameSize - 4 - 4

	// Node record fields read per data entry
	nodeRecordSize = 4 + 4 + 2 + 1 + 1

	// Prefix marking reserved (metadata) entries
	reservedPrefix = "!"

	// Length of the name prefix that encodes the character
	characterPrefixSize = 5
)

// Reserved entry names
const (
	VersionChunk     = "!!version"
	TypeListChunk    = "!!typelist"
	StrTypeListChunk = "!!strtypelist"
	StringChunk      = "!!string"
)

// reservedChunks lists every metadata entry a valid file carries.
var reservedChunks = []string{StringChunk, StrTypeListChunk, TypeListChunk, VersionChunk}

// DirectoryEntry is one named chunk of a WDB file.
type DirectoryEntry struct {
	Name   string // Entry name without the null terminator
	Offset int32  // Absolute file position of the chunk
	Length int32  // Chunk length in bytes
}

// IsReserved reports whether the entry carries format metadata rather than a node.
func (e DirectoryEntry) IsReserved() bool {
	return strings.HasPrefix(e.Name, reservedPrefix)
}

// Directory is the decoded header, entry table and metadata chunks of a file.
type Directory struct {
	Magic       string           // 4-byte magic tag
	Count       int32            // Number of directory entries
	Entries     []DirectoryEntry // Entries in directory order
	Strings     []string         // String table
	StringTypes []byte           // Raw !!strtypelist chunk
	Types       []byte           // Raw !!typelist chunk
	Version     int32            // Format version, not validated
}

// Lookup returns the entry with the given name.
func (d *Directory) Lookup(name string) (DirectoryEntry, bool) {
	for _, e := range d.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return DirectoryEntry{}, false
}

// NodeEntries returns the non-reserved entries in directory order.
func (d *Directory) NodeEntries() []DirectoryEntry {
	entries := make([]DirectoryEntry, 0, len(d.Entries))
	for _, e := range d.Entries {
		if !e.IsReserved() {
			entries = append(entries, e)
		}
	}
	return entries
}

// reservedEntry finds the single entry called name. Zero or several matches
// make the directory malformed.
func (d *Directory) reservedEntry(name string) (DirectoryEntry, error) {
	var found DirectoryEntry
	matches := 0
	for _, e := range d.Entries {
		if e.Name == name {
			found = e
			matches++
		}
	}
	if matches != 1 {
		return DirectoryEntry{}, &MissingChunkError{Name: name, Found: matches}
	}
	return found, nil
}
