// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	wdb "github.com/suprsokr/go-wdb"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wdbtool",
		Short: "Inspect Crystarium WDB files",
		Long: `wdbtool decodes the Crystarium progression tables stored in WDB
files and shows their directory, nodes and stage/role pages. It can also
serve uploaded files over HTTP or browse them from an interactive shell.`,
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("encoding", "", "String table encoding: utf-8|shift-jis|windows-1252")

	// Dump command - directory and node listing
	dumpCmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the directory and every node of a WDB file",
		Args:  cobra.ExactArgs(1),
		RunE:  runDump,
	}
	dumpCmd.Flags().Bool("json", false, "Print JSON instead of a table")
	dumpCmd.Flags().String("character", "", "Only show nodes of this character")

	// Pages command - stage/role grouping
	pagesCmd := &cobra.Command{
		Use:   "pages <file>",
		Short: "List the stage/role pages of a WDB file, or show one page",
		Args:  cobra.ExactArgs(1),
		RunE:  runPages,
	}
	pagesCmd.Flags().Int("page", 0, "Show this page (1-based) instead of the list")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve uploaded WDB files over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().String("host", "", "Listen host (default 127.0.0.1)")
	serveCmd.Flags().Int("port", 0, "Listen port (default 8000)")
	serveCmd.Flags().Int64("max-upload", 0, "Maximum upload size in bytes (default 16 MiB)")
	serveCmd.Flags().String("load", "", "WDB file to load before accepting uploads")
	serveCmd.Flags().String("log-format", "text", "Log format: text|json")

	shellCmd := &cobra.Command{
		Use:   "shell [file]",
		Short: "Browse WDB files interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShell,
	}

	rootCmd.AddCommand(dumpCmd, pagesCmd, serveCmd, shellCmd)
	return rootCmd
}

func decodeOptions(cmd *cobra.Command) ([]wdb.Option, error) {
	name, _ := cmd.Flags().GetString("encoding")
	enc, err := wdb.EncodingByName(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, nil
	}
	return []wdb.Option{wdb.WithStringEncoding(enc)}, nil
}

func openFile(cmd *cobra.Command, path string) (*wdb.Crystarium, error) {
	opts, err := decodeOptions(cmd)
	if err != nil {
		return nil, err
	}
	c, err := wdb.Open(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w [%s]", err, wdb.Classify(err))
	}
	return c, nil
}

type dumpOutput struct {
	Magic   string         `json:"magic"`
	Count   int32          `json:"count"`
	Version int32          `json:"version"`
	Strings []string       `json:"strings"`
	Nodes   []wdb.NodeView `json:"nodes"`
}

func runDump(cmd *cobra.Command, args []string) error {
	c, err := openFile(cmd, args[0])
	if err != nil {
		return err
	}

	nodes := c.Nodes
	if character, _ := cmd.Flags().GetString("character"); character != "" {
		nodes = c.ByCharacter(character)
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(dumpOutput{
			Magic:   c.Directory.Magic,
			Count:   c.Directory.Count,
			Version: c.Directory.Version,
			Strings: c.Directory.Strings,
			Nodes:   wdb.Views(nodes),
		})
	}

	printDirectory(out, c.Directory)
	fmt.Fprintln(out)
	printNodes(out, nodes)
	return nil
}

func runPages(cmd *cobra.Command, args []string) error {
	c, err := openFile(cmd, args[0])
	if err != nil {
		return err
	}

	groups := wdb.Group(c.Nodes)
	out := cmd.OutOrStdout()

	n, _ := cmd.Flags().GetInt("page")
	if n == 0 {
		printSummaries(out, groups)
		return nil
	}

	page, err := wdb.NewPager(groups).Page(n)
	if err != nil {
		return err
	}
	printPage(out, page)
	return nil
}
