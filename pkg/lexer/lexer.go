package lexer

import (
	"strings"
	"unicode"
)

// DefaultCommentMarkers are the first tokens that turn a line into a comment.
var DefaultCommentMarkers = []string{"--", ";"}

// Line is one tokenized source line.
type Line struct {
	Tokens []string // whitespace separated tokens
	Pos    Position // where the line came from
}

// Text joins the tokens back with single spaces
func (l Line) Text() string {
	return strings.Join(l.Tokens, " ")
}

// Is reports whether the line consists of exactly the given tokens
func (l Line) Is(tokens ...string) bool {
	if len(l.Tokens) != len(tokens) {
		return false
	}

	for i, t := range tokens {
		if l.Tokens[i] != t {
			return false
		}
	}

	return true
}

type Lexer struct {
	input   string   // program text
	markers []string // comment markers
}

// Create a new lexer instance. With no markers, DefaultCommentMarkers is used.
func NewLexer(s string, markers ...string) *Lexer {
	if len(markers) == 0 {
		markers = DefaultCommentMarkers
	}

	return &Lexer{
		input:   s,
		markers: markers,
	}
}

// Lines splits the input on newlines and each line on whitespace. Empty lines
// and lines whose first token is a comment marker are dropped, so the index of
// a returned line is also the index of the instruction it becomes.
func (l *Lexer) Lines() []Line {
	var lines []Line

	for n, raw := range strings.Split(l.input, "\n") {
		tokens := strings.Fields(raw)
		if len(tokens) == 0 || l.isComment(tokens[0]) {
			continue
		}

		col := strings.IndexFunc(raw, func(r rune) bool { return !unicode.IsSpace(r) }) + 1
		lines = append(lines, Line{
			Tokens: tokens,
			Pos:    NewPosition(n+1, col, len(lines)),
		})
	}

	return lines
}

// Check if a token starts a comment
func (l *Lexer) isComment(tok string) bool {
	for _, m := range l.markers {
		if tok == m {
			return true
		}
	}

	return false
}

// Tokenize is a shorthand for NewLexer(s).Lines()
func Tokenize(s string) []Line {
	return NewLexer(s).Lines()
}
