// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package wdb

import "fmt"

// NodeType is the category of a progression node.
type NodeType uint8

const (
	NodeHP NodeType = iota
	NodeSTR
	NodeMAG
	NodeAccessory
	NodeATB
	NodeAbility
	NodeRole
	NodeInvalid
)

// nodeTypeFromByte maps the on-disk type byte. 1..7 are defined, anything
// else is NodeInvalid.
func nodeTypeFromByte(b uint8) NodeType {
	switch b {
	case 1:
		return NodeHP
	case 2:
		return NodeSTR
	case 3:
		return NodeMAG
	case 4:
		return NodeAccessory
	case 5:
		return NodeATB
	case 6:
		return NodeAbility
	case 7:
		return NodeRole
	default:
		return NodeInvalid
	}
}

func (t NodeType) String() string {
	switch t {
	case NodeHP:
		return "HP"
	case NodeSTR:
		return "STR"
	case NodeMAG:
		return "MAG"
	case NodeAccessory:
		return "ACCESSORY"
	case NodeATB:
		return "ATB"
	case NodeAbility:
		return "ABILITY"
	case NodeRole:
		return "ROLE"
	default:
		return "INVALID"
	}
}

// Icon returns the logical asset name used to draw the node. Invalid nodes
// have no icon.
func (t NodeType) Icon() string {
	switch t {
	case NodeHP:
		return "Green Orb"
	case NodeSTR:
		return "Red Orb"
	case NodeMAG:
		return "Purple Orb"
	case NodeAccessory:
		return "Orange Orb"
	case NodeATB, NodeRole:
		return "White Crystal"
	case NodeAbility:
		return "Yellow Orb"
	default:
		return ""
	}
}

// Character names derived from entry name prefixes
const (
	CharacterFang      = "Fang"
	CharacterHope      = "Hope"
	CharacterLightning = "Lightning"
	CharacterSazh      = "Sazh"
	CharacterSnow      = "Snow"
	CharacterVanille   = "Vanille"
	CharacterNone      = "None"
)

var characterPrefixes = map[string]string{
	"cr_fa": CharacterFang,
	"cr_hp": CharacterHope,
	"cr_lt": CharacterLightning,
	"cr_sz": CharacterSazh,
	"cr_sn": CharacterSnow,
	"cr_va": CharacterVanille,
}

// CharacterFromName derives the character from the first five bytes of an
// entry name. Unknown or short names give CharacterNone.
func CharacterFromName(name string) string {
	if len(name) < characterPrefixSize {
		return CharacterNone
	}
	if c, ok := characterPrefixes[name[:characterPrefixSize]]; ok {
		return c
	}
	return CharacterNone
}

// Node is one decoded progression node.
type Node struct {
	Character  string   // Derived from the entry name prefix
	Name       string   // Directory entry name
	CPCost     int32    // Crystogen points needed to unlock
	AbilityRef int32    // Raw ability reference, not resolved
	Value      int16    // Stat bonus or ability value
	Type       NodeType // Node category
	Stage      uint8    // High nibble of the stage/role byte
	Role       uint8    // Low nibble of the stage/role byte
}

// splitStageRole unpacks the stage (high nibble) and role (low nibble).
func splitStageRole(b uint8) (stage, role uint8) {
	return b / 16, b % 16
}

// decodeNodes decodes one record per non-reserved entry, in directory order.
// The cursor is first moved forward to the first node's offset if it is
// behind it; records then follow each other with no padding.
func decodeNodes(c *cursor, dir *Directory) ([]Node, error) {
	entries := dir.NodeEntries()
	nodes := make([]Node, 0, len(entries))
	if len(entries) == 0 {
		return nodes, nil
	}

	if first := int64(entries[0].Offset); c.position() < first {
		if err := c.skip(first - c.position()); err != nil {
			return nil, &DecodeError{Entry: entries[0].Name, Index: 0, Err: fmt.Errorf("seek to first node: %w", err)}
		}
	}

	for i, entry := range entries {
		node, err := decodeNode(c, entry)
		if err != nil {
			return nil, &DecodeError{Entry: entry.Name, Index: i, Err: err}
		}
		nodes = append(nodes, node)
	}

	return nodes, nil
}

// decodeNode reads one node record at the cursor.
func decodeNode(c *cursor, entry DirectoryEntry) (Node, error) {
	cpCost, err := c.readInt32()
	if err != nil {
		return Node{}, fmt.Errorf("read cp cost: %w", err)
	}
	abilityRef, err := c.readInt32()
	if err != nil {
		return Node{}, fmt.Errorf("read ability reference: %w", err)
	}
	value, err := c.readInt16()
	if err != nil {
		return Node{}, fmt.Errorf("read node value: %w", err)
	}
	rawType, err := c.readUint8()
	if err != nil {
		return Node{}, fmt.Errorf("read node type: %w", err)
	}
	stageRole, err := c.readUint8()
	if err != nil {
		return Node{}, fmt.Errorf("read stage/role: %w", err)
	}
	stage, role := splitStageRole(stageRole)

	return Node{
		Character:  CharacterFromName(entry.Name),
		Name:       entry.Name,
		CPCost:     cpCost,
		AbilityRef: abilityRef,
		Value:      value,
		Type:       nodeTypeFromByte(rawType),
		Stage:      stage,
		Role:       role,
	}, nil
}
