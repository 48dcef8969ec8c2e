package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSuite(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing suite: %v", err)
	}
	return path
}

func TestRunConformancePassing(t *testing.T) {
	dir := t.TempDir()
	path := writeSuite(t, dir, "ok.yaml", `cases:
  - name: add
    eval: { op: "+", left: { int: 1 }, right: { int: 2 } }
    want: "3"
`)
	var out bytes.Buffer
	if err := runConformance(&out, []string{path}, false, false); err != nil {
		t.Fatalf("expected success, got %v (output: %s)", err, out.String())
	}
	if !strings.Contains(out.String(), "1 passed, 0 failed") {
		t.Fatalf("unexpected summary: %s", out.String())
	}
}

func TestRunConformanceFailing(t *testing.T) {
	dir := t.TempDir()
	path := writeSuite(t, dir, "bad.yaml", `cases:
  - name: wrong
    eval: { op: "+", left: { int: 1 }, right: { int: 2 } }
    want: "4"
`)
	var out bytes.Buffer
	err := runConformance(&out, []string{path}, false, false)
	if err == nil {
		t.Fatalf("expected failure, output: %s", out.String())
	}
	if !strings.Contains(out.String(), "FAIL bad.yaml: wrong") {
		t.Fatalf("expected failure report, got: %s", out.String())
	}
}

func TestRunConformanceOnRepoFixtures(t *testing.T) {
	var out bytes.Buffer
	if err := runConformance(&out, []string{filepath.Join("..", "..", "fixtures")}, false, true); err != nil {
		t.Fatalf("repo fixtures must pass: %v (output: %s)", err, out.String())
	}
}
