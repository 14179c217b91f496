// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package wdb

// NodeView is the presentation projection of a node.
type NodeView struct {
	Character string `json:"character"`
	Name      string `json:"name"`
	Cost      int32  `json:"cost"`
	Type      string `json:"type"`
	Value     int16  `json:"value"`
	Stage     uint8  `json:"stage"`
	Role      string `json:"role"`
	Icon      string `json:"icon"`
}

// View projects n for display.
func (n Node) View() NodeView {
	return NodeView{
		Character: n.Character,
		Name:      n.Name,
		Cost:      n.CPCost,
		Type:      n.Type.String(),
		Value:     n.Value,
		Stage:     n.Stage,
		Role:      RoleLabel(n.Role),
		Icon:      n.Type.Icon(),
	}
}

// Views projects every node, keeping order.
func Views(nodes []Node) []NodeView {
	views := make([]NodeView, len(nodes))
	for i, n := range nodes {
		views[i] = n.View()
	}
	return views
}
