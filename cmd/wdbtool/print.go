// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	wdb "github.com/suprsokr/go-wdb"
)

func printDirectory(w io.Writer, dir *wdb.Directory) {
	if dir == nil {
		fmt.Fprintln(w, "No directory")
		return
	}
	fmt.Fprintf(w, "Magic:    %q\n", dir.Magic)
	fmt.Fprintf(w, "Entries:  %d (%d nodes)\n", dir.Count, len(dir.NodeEntries()))
	fmt.Fprintf(w, "Version:  %d\n", dir.Version)
	fmt.Fprintf(w, "Strings:  %d\n", len(dir.Strings))
	fmt.Fprintf(w, "Types:    %d string types, %d types\n", len(dir.StringTypes), len(dir.Types))
}

func printEntries(w io.Writer, dir *wdb.Directory) {
	if dir == nil {
		fmt.Fprintln(w, "No directory")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tOFFSET\tLENGTH")
	for _, e := range dir.Entries {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", e.Name, e.Offset, e.Length)
	}
	tw.Flush()
}

func printNodes(w io.Writer, nodes []wdb.Node) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CHARACTER\tNAME\tCOST\tTYPE\tVALUE\tSTAGE\tROLE\tICON")
	for _, n := range nodes {
		v := n.View()
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%d\t%d\t%s\t%s\n",
			v.Character, v.Name, v.Cost, v.Type, v.Value, v.Stage, v.Role, v.Icon)
	}
	tw.Flush()
}

func printSummaries(w io.Writer, groups []wdb.PageGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "No pages")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PAGE\tSTAGE\tROLE\tNODES")
	for i, g := range groups {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\n", i+1, g.Stage, g.Role, len(g.Nodes))
	}
	tw.Flush()
}

func printPage(w io.Writer, page wdb.Page) {
	fmt.Fprintf(w, "Page %d/%d  Stage %d  %s\n", page.Number, page.Total, page.Group.Stage, page.Group.Role)
	printNodes(w, page.Group.Nodes)

	nav := ""
	if page.HasPrev() {
		nav += fmt.Sprintf("prev: %d", page.Prev)
	}
	if page.HasNext() {
		if nav != "" {
			nav += "  "
		}
		nav += fmt.Sprintf("next: %d", page.Next)
	}
	if nav != "" {
		fmt.Fprintln(w, nav)
	}
}
