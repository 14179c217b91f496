// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package wdb

import (
	"fmt"
	"slices"
	"strings"
)

var roleLabels = map[uint8]string{
	0: "None",
	1: "Commando",
	2: "Ravager",
	3: "Sentinel",
	4: "Saboteur",
	5: "Synergist",
	6: "Medic",
}

// RoleLabel returns the display label of a role nibble.
func RoleLabel(role uint8) string {
	if label, ok := roleLabels[role]; ok {
		return label
	}
	return fmt.Sprintf("Role %d", role)
}

// PageGroup holds the nodes that share one stage and role.
type PageGroup struct {
	Stage  int16
	Role   string // Display label of RoleID
	RoleID uint8
	Nodes  []Node // Input order is kept
}

type groupKey struct {
	stage int16
	role  string
}

// Group partitions nodes by stage and then role. Groups are ordered by
// ascending stage, then by role label; every node lands in exactly one group.
func Group(nodes []Node) []PageGroup {
	index := make(map[groupKey]int)
	groups := make([]PageGroup, 0)

	for _, n := range nodes {
		key := groupKey{stage: int16(n.Stage), role: RoleLabel(n.Role)}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, PageGroup{Stage: key.stage, Role: key.role, RoleID: n.Role})
		}
		groups[i].Nodes = append(groups[i].Nodes, n)
	}

	slices.SortFunc(groups, func(a, b PageGroup) int {
		if a.Stage != b.Stage {
			return int(a.Stage) - int(b.Stage)
		}
		return strings.Compare(a.Role, b.Role)
	})

	return groups
}

// Page is one page group with its position among all pages. Page numbers
// start at 1; Prev and Next are 0 when there is no such page.
type Page struct {
	Number int
	Total  int
	Prev   int
	Next   int
	Group  PageGroup
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Prev != 0 }

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool { return p.Next != 0 }

// Pager navigates an ordered sequence of page groups.
type Pager struct {
	groups []PageGroup
}

// NewPager returns a pager over groups as produced by Group.
func NewPager(groups []PageGroup) *Pager {
	return &Pager{groups: groups}
}

// Len returns the number of pages.
func (p *Pager) Len() int {
	return len(p.groups)
}

// Page returns page number n, counted from 1.
func (p *Pager) Page(n int) (Page, error) {
	if n < 1 || n > len(p.groups) {
		return Page{}, fmt.Errorf("page %d of %d: %w", n, len(p.groups), ErrPageOutOfRange)
	}

	page := Page{Number: n, Total: len(p.groups), Group: p.groups[n-1]}
	if n > 1 {
		page.Prev = n - 1
	}
	if n < len(p.groups) {
		page.Next = n + 1
	}
	return page, nil
}
