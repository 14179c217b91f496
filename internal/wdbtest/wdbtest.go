// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

// Package wdbtest builds synthetic Crystarium WDB files for tests. It encodes
// the layout independently of the decoder so the two can check each other.
package wdbtest

import (
	"bytes"
	"encoding/binary"
	"strings"
)

const (
	headerReserved = 8
	entrySize      = 32
	nameFieldSize  = 16
	entryTrailing  = entrySize - nameFieldSize - 4 - 4
	NodeRecordSize = 12
)

// Reserved entries in the order their chunks follow the directory.
var Reserved = []string{"!!string", "!!strtypelist", "!!typelist", "!!version"}

// Node is one node record.
type Node struct {
	Name       string
	CPCost     int32
	AbilityRef int32
	Value      int16
	RawType    uint8
	StageRole  uint8
}

// File describes a synthetic file: header, directory, string table, string
// type list, type list, version, then packed node records.
type File struct {
	Magic       string   // defaults to "WPD\x00"
	Strings     [][]byte // raw string table entries, without terminators
	StrTypes    []byte
	Types       []byte
	Version     int32
	Nodes       []Node
	Omit        string // reserved entry to leave out
	Duplicate   string // reserved entry to write twice
	StringShift int32  // added to the recorded !!string offset
	Gap         int    // bytes between the version and the first node
}

type entry struct {
	name           string
	offset, length int32
}

// PutInt32 appends a big-endian int32.
func PutInt32(buf *bytes.Buffer, v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	buf.Write(b[:])
}

// WriteHeader appends the magic, the entry count and the reserved bytes.
func WriteHeader(buf *bytes.Buffer, magic string, count int) {
	buf.WriteString(magic)
	PutInt32(buf, int32(count))
	buf.Write(make([]byte, headerReserved))
}

// WriteEntry appends one directory entry. Reserved names are padded to the
// 16-byte name field; node names are written as-is.
func WriteEntry(buf *bytes.Buffer, name string, offset, length int32) {
	buf.WriteString(name)
	buf.WriteByte(0)
	if strings.HasPrefix(name, "!") {
		buf.Write(make([]byte, nameFieldSize-len(name)-1))
	}
	PutInt32(buf, offset)
	PutInt32(buf, length)
	buf.Write(make([]byte, entryTrailing))
}

// EntryLen returns the encoded size of a directory entry called name.
func EntryLen(name string) int {
	if strings.HasPrefix(name, "!") {
		return entrySize
	}
	return len(name) + 1 + 4 + 4 + entryTrailing
}

// DirectoryEnd returns the offset of the first byte after the directory.
func (f File) DirectoryEnd() int {
	end := len(f.magic()) + 4 + headerReserved
	for _, e := range f.entries() {
		end += EntryLen(e.name)
	}
	return end
}

func (f File) magic() string {
	if f.Magic == "" {
		return "WPD\x00"
	}
	return f.Magic
}

func (f File) entries() []entry {
	var entries []entry
	for _, name := range Reserved {
		if name == f.Omit {
			continue
		}
		entries = append(entries, entry{name: name})
		if name == f.Duplicate {
			entries = append(entries, entry{name: name})
		}
	}
	for _, n := range f.Nodes {
		entries = append(entries, entry{name: n.Name, length: NodeRecordSize})
	}
	return entries
}

// Build encodes the file.
func (f File) Build() []byte {
	entries := f.entries()

	stringsStart := f.DirectoryEnd()
	stringsLen := 0
	for _, s := range f.Strings {
		stringsLen += len(s) + 1
	}
	strTypesStart := stringsStart + stringsLen
	typesStart := strTypesStart + len(f.StrTypes)
	versionStart := typesStart + len(f.Types)
	nodesStart := versionStart + 4 + f.Gap

	nodeIndex := 0
	for i := range entries {
		switch entries[i].name {
		case "!!string":
			entries[i].offset = int32(stringsStart) + f.StringShift
			entries[i].length = int32(stringsLen)
		case "!!strtypelist":
			entries[i].offset = int32(strTypesStart)
			entries[i].length = int32(len(f.StrTypes))
		case "!!typelist":
			entries[i].offset = int32(typesStart)
			entries[i].length = int32(len(f.Types))
		case "!!version":
			entries[i].offset = int32(versionStart)
			entries[i].length = 4
		default:
			entries[i].offset = int32(nodesStart + nodeIndex*NodeRecordSize)
			nodeIndex++
		}
	}

	buf := &bytes.Buffer{}
	WriteHeader(buf, f.magic(), len(entries))
	for _, e := range entries {
		WriteEntry(buf, e.name, e.offset, e.length)
	}
	for _, s := range f.Strings {
		buf.Write(s)
		buf.WriteByte(0)
	}
	buf.Write(f.StrTypes)
	buf.Write(f.Types)
	PutInt32(buf, f.Version)
	buf.Write(make([]byte, f.Gap))
	for _, n := range f.Nodes {
		PutInt32(buf, n.CPCost)
		PutInt32(buf, n.AbilityRef)
		var v [2]byte
		binary.BigEndian.PutUint16(v[:], uint16(n.Value))
		buf.Write(v[:])
		buf.WriteByte(n.RawType)
		buf.WriteByte(n.StageRole)
	}

	return buf.Bytes()
}

// Sample returns a small Crystarium: Lightning and Fang nodes over stages 1,
// 2 and 5, plus one node with an unknown prefix and type.
func Sample() File {
	return File{
		Strings:  [][]byte{[]byte("ab_atk"), []byte("ab_blz"), []byte("")},
		StrTypes: []byte{1, 2, 3, 4},
		Types:    []byte{0, 0, 0, 1, 1, 2, 3, 3},
		Version:  2,
		Nodes: []Node{
			{Name: "cr_lt00010100", CPCost: 40, Value: 10, RawType: 1, StageRole: 0x11},
			{Name: "cr_lt00010200", CPCost: 40, Value: 3, RawType: 2, StageRole: 0x11},
			{Name: "cr_lt00010300", CPCost: 60, AbilityRef: 7, RawType: 6, StageRole: 0x12},
			{Name: "cr_fa00010100", CPCost: 40, Value: 12, RawType: 1, StageRole: 0x13},
			{Name: "cr_fa00020100", CPCost: 120, Value: 2, RawType: 3, StageRole: 0x21},
			{Name: "cr_lt00030100", CPCost: 3000, Value: 1, RawType: 5, StageRole: 0x5B},
			{Name: "cr_xx00010100", CPCost: 1, RawType: 0, StageRole: 0x00},
		},
	}
}
