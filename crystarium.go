// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package wdb

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// Crystarium is every progression node decoded from one WDB file.
type Crystarium struct {
	Directory *Directory
	Nodes     []Node
}

// Open decodes the WDB file at path.
func Open(path string, opts ...Option) (*Crystarium, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	c, err := DecodeReader(bufio.NewReader(file), opts...)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return c, nil
}

// Decode decodes a complete WDB file held in memory.
func Decode(data []byte, opts ...Option) (*Crystarium, error) {
	return DecodeReader(bytes.NewReader(data), opts...)
}

// DecodeReader decodes a WDB file read from r, which must be positioned at
// the start of the file. Any error aborts the whole decode; no partial
// Crystarium is returned.
func DecodeReader(r io.Reader, opts ...Option) (*Crystarium, error) {
	d := newDecoder(opts...)
	c := newCursor(r)

	dir, err := d.readDirectory(c)
	if err != nil {
		return nil, err
	}

	nodes, err := decodeNodes(c, dir)
	if err != nil {
		return nil, err
	}

	return &Crystarium{Directory: dir, Nodes: nodes}, nil
}

// Len returns the number of nodes.
func (c *Crystarium) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Nodes)
}

// ByCharacter returns the nodes that belong to character, in file order.
func (c *Crystarium) ByCharacter(character string) []Node {
	var nodes []Node
	for _, n := range c.Nodes {
		if n.Character == character {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Characters returns the distinct characters in order of first appearance.
func (c *Crystarium) Characters() []string {
	seen := make(map[string]bool)
	var chars []string
	for _, n := range c.Nodes {
		if !seen[n.Character] {
			seen[n.Character] = true
			chars = append(chars, n.Character)
		}
	}
	return chars
}
