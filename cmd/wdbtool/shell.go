// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	wdb "github.com/suprsokr/go-wdb"
)

// shell holds the state of an interactive session. Files are loaded into a
// Store so each load replaces the previous one.
type shell struct {
	store *wdb.Store
	opts  []wdb.Option
	out   io.Writer
	path  string
}

func runShell(cmd *cobra.Command, args []string) error {
	opts, err := decodeOptions(cmd)
	if err != nil {
		return err
	}

	sh := &shell{store: wdb.NewStore(), opts: opts, out: cmd.OutOrStdout()}
	if len(args) == 1 {
		sh.load(args[0])
	}
	return sh.run(cmd.InOrStdin())
}

func (s *shell) run(in io.Reader) error {
	fmt.Fprintln(s.out, "Type 'help' for available commands, 'exit' to quit")

	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(s.out, "wdb> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !s.handleCommand(line) {
			return nil
		}
	}
}

// handleCommand runs one line and reports whether the session continues.
func (s *shell) handleCommand(line string) bool {
	parts, err := shellquote.Split(line)
	if err != nil {
		fmt.Fprintln(s.out, "parse error:", err)
		return true
	}
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help":
		s.printHelp()
	case "exit", "quit":
		return false
	case "load":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "usage: load <file>")
			return true
		}
		s.load(args[0])
	case "info":
		if c := s.current(); c != nil {
			fmt.Fprintf(s.out, "File:     %s\n", s.path)
			printDirectory(s.out, c.Directory)
			fmt.Fprintf(s.out, "Characters: %s\n", strings.Join(c.Characters(), ", "))
		}
	case "entries":
		if c := s.current(); c != nil {
			printEntries(s.out, c.Directory)
		}
	case "nodes":
		if c := s.current(); c != nil {
			nodes := c.Nodes
			if len(args) > 0 {
				nodes = c.ByCharacter(args[0])
			}
			printNodes(s.out, nodes)
		}
	case "pages":
		if _, pages, err := s.store.CurrentPages(); err != nil {
			s.printError(err)
		} else {
			printSummaries(s.out, pages)
		}
	case "page":
		s.page(args)
	default:
		fmt.Fprintf(s.out, "unknown command %q, try 'help'\n", cmd)
	}
	return true
}

func (s *shell) load(path string) {
	c, err := wdb.Open(path, s.opts...)
	if err != nil {
		s.printError(err)
		return
	}
	h := s.store.Replace(c)
	s.path = path
	fmt.Fprintf(s.out, "Loaded %s: %d nodes (id %s)\n", path, c.Len(), h.ID)
}

func (s *shell) current() *wdb.Crystarium {
	_, c, ok := s.store.Current()
	if !ok {
		s.printError(wdb.ErrNoData)
		return nil
	}
	return c
}

func (s *shell) page(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: page <number>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "invalid page number %q\n", args[0])
		return
	}

	_, pages, err := s.store.CurrentPages()
	if err != nil {
		s.printError(err)
		return
	}
	page, err := wdb.NewPager(pages).Page(n)
	if err != nil {
		s.printError(err)
		return
	}
	printPage(s.out, page)
}

func (s *shell) printError(err error) {
	fmt.Fprintf(s.out, "error [%s]: %v\n", wdb.Classify(err), err)
}

func (s *shell) printHelp() {
	fmt.Fprint(s.out, `Commands:
  load <file>        decode a WDB file, replacing the current one
  info               directory summary of the current file
  entries            list directory entries
  nodes [character]  list nodes, optionally of one character
  pages              list stage/role pages
  page <n>           show page n (1-based)
  help               show this help
  exit               leave the shell
`)
}
