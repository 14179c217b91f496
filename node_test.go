// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package wdb

import (
	"errors"
	"testing"
)

func TestNodeTypeFromByte(t *testing.T) {
	want := map[uint8]NodeType{
		1: NodeHP, 2: NodeSTR, 3: NodeMAG, 4: NodeAccessory,
		5: NodeATB, 6: NodeAbility, 7: NodeRole,
	}
	for b := 0; b <= 255; b++ {
		got := nodeTypeFromByte(uint8(b))
		expected, ok := want[uint8(b)]
		if !ok {
			expected = NodeInvalid
		}
		if got != expected {
			t.Errorf("nodeTypeFromByte(%d) = %v, want %v", b, got, expected)
		}
		if got > NodeInvalid {
			t.Errorf("nodeTypeFromByte(%d) = %d is outside the enumeration", b, got)
		}
	}
}

func TestNodeTypeIcons(t *testing.T) {
	tests := []struct {
		typ  NodeType
		name string
		icon string
	}{
		{NodeHP, "HP", "Green Orb"},
		{NodeSTR, "STR", "Red Orb"},
		{NodeMAG, "MAG", "Purple Orb"},
		{NodeAccessory, "ACCESSORY", "Orange Orb"},
		{NodeATB, "ATB", "White Crystal"},
		{NodeAbility, "ABILITY", "Yellow Orb"},
		{NodeRole, "ROLE", "White Crystal"},
		{NodeInvalid, "INVALID", ""},
	}
	for _, tc := range tests {
		if got := tc.typ.String(); got != tc.name {
			t.Errorf("String() = %q, want %q", got, tc.name)
		}
		if got := tc.typ.Icon(); got != tc.icon {
			t.Errorf("%s Icon() = %q, want %q", tc.name, got, tc.icon)
		}
	}
}

func TestSplitStageRole(t *testing.T) {
	for b := 0; b <= 255; b++ {
		stage, role := splitStageRole(uint8(b))
		if int(stage) != b/16 || int(role) != b%16 {
			t.Errorf("splitStageRole(%d) = %d, %d", b, stage, role)
		}
	}

	stage, role := splitStageRole(0x5B)
	if stage != 5 || role != 11 {
		t.Errorf("splitStageRole(0x5B) = %d, %d; want 5, 11", stage, role)
	}
}

func TestCharacterFromName(t *testing.T) {
	tests := map[string]string{
		"cr_fa00010100":   CharacterFang,
		"cr_hp00010100":   CharacterHope,
		"cr_lt00020105":   CharacterLightning,
		"cr_sz00010100":   CharacterSazh,
		"cr_sn00010100":   CharacterSnow,
		"cr_va00010100":   CharacterVanille,
		"cr_faat01010000": CharacterFang,
		"cr_xx00010100":   CharacterNone,
		"CR_LT00010100":   CharacterNone,
		"cr_l":            CharacterNone,
		"":                CharacterNone,
	}
	for name, want := range tests {
		if got := CharacterFromName(name); got != want {
			t.Errorf("CharacterFromName(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestDecodeNodes(t *testing.T) {
	f := sampleFile()
	c, err := Decode(f.Build())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if len(c.Nodes) != len(f.Nodes) {
		t.Fatalf("got %d nodes, want %d", len(c.Nodes), len(f.Nodes))
	}
	for i, want := range f.Nodes {
		got := c.Nodes[i]
		if got.Name != want.Name {
			t.Errorf("node %d name = %q, want %q", i, got.Name, want.Name)
		}
		if got.CPCost != want.CPCost || got.AbilityRef != want.AbilityRef || got.Value != want.Value {
			t.Errorf("node %d fields = %d/%d/%d, want %d/%d/%d", i,
				got.CPCost, got.AbilityRef, got.Value, want.CPCost, want.AbilityRef, want.Value)
		}
		if got.Type != nodeTypeFromByte(want.RawType) {
			t.Errorf("node %d type = %v, want raw %d", i, got.Type, want.RawType)
		}
		if got.Stage != want.StageRole>>4 || got.Role != want.StageRole&0x0F {
			t.Errorf("node %d stage/role = %d/%d, want byte 0x%02X", i, got.Stage, got.Role, want.StageRole)
		}
		if got.Character != CharacterFromName(want.Name) {
			t.Errorf("node %d character = %q", i, got.Character)
		}
	}

	lightning := c.Nodes[5]
	if lightning.Character != CharacterLightning || lightning.Stage != 5 || lightning.Role != 11 || lightning.Type != NodeATB {
		t.Errorf("unexpected node %+v", lightning)
	}
	if c.Nodes[6].Type != NodeInvalid || c.Nodes[6].Character != CharacterNone {
		t.Errorf("unknown node decoded as %+v", c.Nodes[6])
	}
}

func TestDecodeNodesSkipsToFirstNode(t *testing.T) {
	f := sampleFile()
	f.Gap = 37
	c, err := Decode(f.Build())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if c.Nodes[0].CPCost != f.Nodes[0].CPCost || c.Nodes[len(c.Nodes)-1].CPCost != f.Nodes[len(f.Nodes)-1].CPCost {
		t.Errorf("nodes misaligned after gap: first %+v", c.Nodes[0])
	}
}

func TestDecodeNodesShortRead(t *testing.T) {
	f := sampleFile()
	data := f.Build()

	// Every cut inside the node records fails the whole decode.
	for cut := 1; cut < nodeRecordSize*2; cut++ {
		c, err := Decode(data[:len(data)-cut])
		if c != nil {
			t.Fatalf("cut %d: partial crystarium returned", cut)
		}
		var derr *DecodeError
		if !errors.As(err, &derr) {
			t.Fatalf("cut %d: got %v, want DecodeError", cut, err)
		}
		if !errors.Is(err, ErrDecode) {
			t.Errorf("cut %d: error does not match ErrDecode", cut)
		}
	}

	_, err := Decode(data[:len(data)-1])
	var derr *DecodeError
	if errors.As(err, &derr) && derr.Entry != f.Nodes[len(f.Nodes)-1].Name {
		t.Errorf("error names entry %q, want the last node", derr.Entry)
	}
}

func TestDecodeNodesTruncatedBeforeFirstNode(t *testing.T) {
	f := sampleFile()
	f.Gap = 8
	data := f.Build()

	noNodes := len(data) - len(f.Nodes)*nodeRecordSize - 4
	_, err := Decode(data[:noNodes])
	if !errors.Is(err, ErrDecode) {
		t.Errorf("got %v, want ErrDecode", err)
	}
}
