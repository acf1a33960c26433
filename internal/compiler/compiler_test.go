package compiler_test

import (
	"bytes"
	"os"
	"path/filepath"
	"stasm/internal/compiler"
	"stasm/pkg/color"
	"stasm/pkg/interpreter"
	"stasm/pkg/parser"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func source(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "prog.asm")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return path
}

func TestCompileRuns(t *testing.T) {
	var stdout, stderr bytes.Buffer
	c := compiler.Compiler{
		SourceFile: source(t, "-- greet\npint 6\npint 7\nmul\nprntln\n"),
		Stdout:     &stdout,
		Stderr:     &stderr,
	}

	if err := c.Compile(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout.String() != "42\n" {
		t.Errorf("expected 42, got %q", stdout.String())
	}
}

func TestCompileListing(t *testing.T) {
	color.EnableColor(false)

	var stdout bytes.Buffer
	c := compiler.Compiler{
		SourceFile: source(t, "label a\npint 1\nprntln\n"),
		List:       true,
		Stdout:     &stdout,
		Stderr:     &bytes.Buffer{},
	}

	if err := c.Compile(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := stdout.String()
	for _, want := range []string{"=== Resolved Program ===", "pushint 1", "=== Program Output ===", "1\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output %q", want, out)
		}
	}
}

func TestCompileLoadErrorsRunNothing(t *testing.T) {
	color.EnableColor(false)

	var stdout, stderr bytes.Buffer
	c := compiler.Compiler{
		SourceFile: source(t, "prntstr early\njmp nowhere\nbogus\n"),
		Stdout:     &stdout,
		Stderr:     &stderr,
	}

	err := c.Compile()
	if !errors.Is(err, parser.ErrUnresolvedSymbol) {
		t.Fatalf("expected unresolved symbol, got %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no program output, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "nowhere") || !strings.Contains(stderr.String(), "bogus") {
		t.Errorf("expected every load error reported, got %q", stderr.String())
	}
}

func TestCompileCommentMarkers(t *testing.T) {
	var stdout bytes.Buffer
	c := compiler.Compiler{
		SourceFile:     source(t, "# note\npint 3\nprntln\n"),
		CommentMarkers: []string{"#"},
		Stdout:         &stdout,
	}

	if err := c.Compile(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout.String() != "3\n" {
		t.Errorf("expected 3, got %q", stdout.String())
	}
}

func TestCompileRuntimeError(t *testing.T) {
	c := compiler.Compiler{
		SourceFile: source(t, "label l\njmp l\n"),
		MaxSteps:   10,
		Stdout:     &bytes.Buffer{},
	}

	if err := c.Compile(); !errors.Is(err, interpreter.ErrMaxStepsExceeded) {
		t.Errorf("expected max steps, got %v", err)
	}
}

func TestCompileMissingFile(t *testing.T) {
	c := compiler.Compiler{SourceFile: filepath.Join(t.TempDir(), "missing.asm")}

	if err := c.Compile(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not exist, got %v", err)
	}
}
