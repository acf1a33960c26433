package lexer

import "fmt"

type Position struct {
	Line   int // 1-based source line
	Column int // 1-based column of the first token
	Index  int // index of the line after blank and comment lines were dropped
}

// Returns a string representation of the Position
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Creates a new Position instance
func NewPosition(line, column, index int) Position {
	return Position{
		Line:   line,
		Column: column,
		Index:  index,
	}
}
