package lexer_test

import (
	"stasm/pkg/lexer"
	"testing"
)

func TestComments(t *testing.T) {
	input := `-- test comment
pint 10
; another test comment
  -- indented comment
pint 20 -- trailing text stays
--notacomment`

	lines := lexer.Tokenize(input)
	expected := [][]string{
		{"pint", "10"},
		{"pint", "20", "--", "trailing", "text", "stays"},
		{"--notacomment"},
	}

	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %d", len(expected), len(lines))
	}

	for i, want := range expected {
		if !lines[i].Is(want...) {
			t.Errorf("Line %d: expected %v, got %v", i, want, lines[i].Tokens)
		}
	}
}

func TestCustomCommentMarkers(t *testing.T) {
	lines := lexer.NewLexer("# hash comment\n-- kept\npop", "#").Lines()

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Tokens[0] != "--" {
		t.Errorf("expected '--' line to survive custom markers, got %v", lines[0].Tokens)
	}
}
