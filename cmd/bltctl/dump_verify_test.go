package main

import (
	"os"
	"path/filepath"
	"testing"
)

func buildFixture(t *testing.T, src string) string {
	t.Helper()
	resetGlobalFlags()

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "fixture.sexpr")
	outPath := filepath.Join(dir, "fixture.blt")
	if err := os.WriteFile(srcPath, []byte(src), 0o644); err != nil {
		t.Fatalf("failed to write source fixture: %v", err)
	}
	if err := runBuild([]string{srcPath, outPath}); err != nil {
		t.Fatalf("runBuild() error = %v", err)
	}
	return outPath
}

func TestRunDump_PrintsSExpressions(t *testing.T) {
	outPath := buildFixture(t, `(add 1 2) @(a) foo`)
	resetGlobalFlags()

	output, err := captureOutput(t, func() error {
		return runDump([]string{outPath})
	})
	if err != nil {
		t.Fatalf("runDump() error = %v", err)
	}
	assertContains(t, output, []string{"add(1, 2)", "@(a) foo"})
}

func TestRunDump_JSONMode(t *testing.T) {
	outPath := buildFixture(t, "foo bar")
	resetGlobalFlags()
	jsonOut = true
	defer resetGlobalFlags()

	output, err := captureOutput(t, func() error {
		return runDump([]string{outPath})
	})
	if err != nil {
		t.Fatalf("runDump() error = %v", err)
	}
	assertJSON(t, output)
	assertContains(t, output, []string{`"forest"`})
}

func TestRunDump_RejectsMissingFile(t *testing.T) {
	resetGlobalFlags()
	if err := runDump([]string{filepath.Join(t.TempDir(), "missing.blt")}); err == nil {
		t.Fatal("expected an error for a nonexistent file")
	}
}

func TestRunVerify_RoundTripsCleanly(t *testing.T) {
	outPath := buildFixture(t, `(f (g 1) "x") @(a, b) bare`)
	resetGlobalFlags()

	output, err := captureOutput(t, func() error {
		return runVerify([]string{outPath})
	})
	if err != nil {
		t.Fatalf("runVerify() error = %v", err)
	}
	assertContains(t, output, []string{"OK"})
}

func TestRunVerify_RejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.blt")
	if err := os.WriteFile(path, []byte("not a blt file"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	resetGlobalFlags()

	if err := runVerify([]string{path}); err == nil {
		t.Fatal("expected an error for a file with a bad magic header")
	}
}
