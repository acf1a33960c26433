package parser

import (
	"fmt"
	"stasm/pkg/color"
	"stasm/pkg/lexer"

	"github.com/pkg/errors"
)

// Load-time failures. Each is wrapped in a *LoadError that carries the
// offending line.
var (
	ErrUnresolvedSymbol   = errors.New("unresolved symbol")
	ErrMalformedProcedure = errors.New("malformed procedure")
	ErrMalformedLiteral   = errors.New("malformed literal")
	ErrUnknownMnemonic    = errors.New("unknown mnemonic")
	ErrOperandCount       = errors.New("wrong operand count")
)

// LoadError is an error found while resolving or parsing a line.
type LoadError struct {
	Pos  lexer.Position // position of the offending line
	Text string         // the line, tokens joined by a space
	Err  error          // cause, wrapping one of the sentinel errors
}

func (e *LoadError) Error() string {
	msg := color.RedText(e.Err.Error()) + " in `" + color.BlueText(e.Text) + "`"
	msg += " at " + color.YellowText(fmt.Sprintf("Line: %d, Column %d", e.Pos.Line, e.Pos.Column))
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// addError records a load error for the given line
func (p *Parser) addError(line lexer.Line, err error) {
	p.errors = append(p.errors, &LoadError{
		Pos:  line.Pos,
		Text: line.Text(),
		Err:  err,
	})
}

// Errors returns every load error found, in line order
func (p *Parser) Errors() []error {
	return p.errors
}
