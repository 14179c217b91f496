// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package wdb

import (
	"bytes"

	"github.com/suprsokr/go-wdb/internal/wdbtest"
)

func writeEntry(buf *bytes.Buffer, e DirectoryEntry) {
	wdbtest.WriteEntry(buf, e.Name, e.Offset, e.Length)
}

func writeHeader(buf *bytes.Buffer, magic string, count int) {
	wdbtest.WriteHeader(buf, magic, count)
}

func sampleFile() wdbtest.File {
	return wdbtest.Sample()
}
