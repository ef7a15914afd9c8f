package parser

import (
	"fmt"

	"github.com/sable-lang/sable/lexer"
)

// UnexpectedToken reports a token that does not fit the grammar at its
// position. Expected is nil when no single token kind was required.
type UnexpectedToken struct {
	Expected *lexer.TokenKind
	Found    lexer.Token
	Message  string
}

func (e UnexpectedToken) Error() string {
	if e.Expected != nil {
		return fmt.Sprintf("Expected %s, found %s. %s. | file:%d:%d",
			*e.Expected, e.Found.Kind, e.Message, e.Found.Line, e.Found.Column)
	}
	return fmt.Sprintf("Unexpected token: %s. %s", e.Found.Kind, e.Message)
}

type UnexpectedEndOfInput struct{}

func (e UnexpectedEndOfInput) Error() string {
	return "Unexpected end of input"
}
