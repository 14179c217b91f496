// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	wdb "github.com/suprsokr/go-wdb"
	"github.com/suprsokr/go-wdb/internal/wdbtest"
)

func writeSample(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, wdbtest.Sample().Build(), 0644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func execute(t *testing.T, in string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(in))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDumpTable(t *testing.T) {
	path := writeSample(t, t.TempDir(), "crystal.wdb")

	out, err := execute(t, "", "dump", path)
	if err != nil {
		t.Fatalf("dump: %v\n%s", err, out)
	}
	for _, want := range []string{"Version:  2", "cr_lt00030100", "White Crystal", "Role 11", "INVALID"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDumpJSON(t *testing.T) {
	path := writeSample(t, t.TempDir(), "crystal.wdb")

	out, err := execute(t, "", "dump", "--json", "--character", "Fang", path)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	var got dumpOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if got.Count != 11 || got.Version != 2 || len(got.Strings) != 3 {
		t.Errorf("directory fields = %+v", got)
	}
	if len(got.Nodes) != 2 || got.Nodes[0].Character != "Fang" || got.Nodes[1].Type != "MAG" {
		t.Errorf("nodes = %+v", got.Nodes)
	}
}

func TestDumpErrors(t *testing.T) {
	dir := t.TempDir()
	f := wdbtest.Sample()
	f.Omit = "!!version"
	bad := filepath.Join(dir, "bad.wdb")
	if err := os.WriteFile(bad, f.Build(), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "", "dump", bad); err == nil || !strings.Contains(err.Error(), "missing_chunk") {
		t.Errorf("bad file error = %v", err)
	}
	if _, err := execute(t, "", "dump", filepath.Join(dir, "nope.wdb")); err == nil {
		t.Errorf("missing file accepted")
	}
	if _, err := execute(t, "", "dump", "--encoding", "ebcdic", writeSample(t, dir, "ok.wdb")); err == nil {
		t.Errorf("unknown encoding accepted")
	}
}

func TestPages(t *testing.T) {
	path := writeSample(t, t.TempDir(), "crystal.wdb")

	out, err := execute(t, "", "pages", path)
	if err != nil {
		t.Fatalf("pages: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 7 {
		t.Errorf("got %d lines, want header and 6 pages:\n%s", len(lines), out)
	}

	out, err = execute(t, "", "pages", "--page", "2", path)
	if err != nil {
		t.Fatalf("pages --page 2: %v", err)
	}
	if !strings.Contains(out, "Page 2/6  Stage 1  Commando") || !strings.Contains(out, "prev: 1  next: 3") {
		t.Errorf("page 2 output:\n%s", out)
	}

	if _, err := execute(t, "", "pages", "--page", "7", path); err == nil {
		t.Errorf("page 7 accepted")
	}
}

func TestShell(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "with space")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := writeSample(t, dir, "crystal.wdb")

	script := strings.Join([]string{
		"pages",
		"load '" + path + "'",
		"info",
		"nodes Fang",
		"page 6",
		"page 9",
		"page x",
		`load "unterminated`,
		"bogus",
		"exit",
		"info",
	}, "\n") + "\n"

	out, err := execute(t, script, "shell")
	if err != nil {
		t.Fatalf("shell: %v", err)
	}

	for _, want := range []string{
		"error [no_data]",
		"Loaded " + path + ": 7 nodes",
		"Characters: Lightning, Fang, None",
		"cr_fa00020100",
		"Page 6/6  Stage 5  Role 11",
		"error [out_of_range]",
		`invalid page number "x"`,
		"parse error:",
		`unknown command "bogus"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "File:") != 1 {
		t.Errorf("commands after exit were run:\n%s", out)
	}
}

func TestShellLoadsArgumentAndStopsAtEOF(t *testing.T) {
	path := writeSample(t, t.TempDir(), "crystal.wdb")

	out, err := execute(t, "pages", "shell", path)
	if err != nil {
		t.Fatalf("shell: %v", err)
	}
	if !strings.Contains(out, "Loaded") || !strings.Contains(out, "PAGE") {
		t.Errorf("output:\n%s", out)
	}
}

func TestServeConfigFromFlags(t *testing.T) {
	cmd := newRootCmd()
	serve, _, err := cmd.Find([]string{"serve"})
	if err != nil {
		t.Fatal(err)
	}
	if err := serve.ParseFlags([]string{"--port", "9001", "--max-upload", "1024"}); err != nil {
		t.Fatal(err)
	}

	cfg := serveConfig(serve)
	if cfg.Host != "127.0.0.1" || cfg.Port != 9001 || cfg.MaxUploadBytes != 1024 {
		t.Errorf("config = %+v", cfg)
	}

	if _, err := newLogger(&bytes.Buffer{}, "xml"); err == nil {
		t.Errorf("unknown log format accepted")
	}
}

func TestShellWithoutDirectory(t *testing.T) {
	out := &bytes.Buffer{}
	sh := &shell{store: wdb.NewStore(), out: out}
	sh.store.Replace(&wdb.Crystarium{})

	for _, line := range []string{"info", "entries", "pages"} {
		if !sh.handleCommand(line) {
			t.Fatalf("%s ended the session", line)
		}
	}
	if strings.Count(out.String(), "No directory") != 2 || !strings.Contains(out.String(), "No pages") {
		t.Errorf("output:\n%s", out)
	}
}
