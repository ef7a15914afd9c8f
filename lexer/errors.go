package lexer

import "fmt"

type UnexpectedCharacter struct {
	Char   rune
	Line   int
	Column int
}

func (e UnexpectedCharacter) Error() string {
	return fmt.Sprintf("Unexpected character: '%c'", e.Char)
}

type InvalidNumberSuffix struct {
	Suffix string
	Line   int
	Column int
}

func (e InvalidNumberSuffix) Error() string {
	return fmt.Sprintf("Invalid number suffix: %s", e.Suffix)
}

type InvalidFloat struct {
	Text   string
	Line   int
	Column int
}

func (e InvalidFloat) Error() string {
	return fmt.Sprintf("Invalid float value: %s", e.Text)
}

type InvalidInteger struct {
	Text   string
	Line   int
	Column int
}

func (e InvalidInteger) Error() string {
	return fmt.Sprintf("Invalid integer value: %s", e.Text)
}

type EmptyCharLiteral struct {
	Line   int
	Column int
}

func (e EmptyCharLiteral) Error() string {
	return "Empty character literal"
}

type UnterminatedLiteral struct {
	Quote  rune
	Line   int
	Column int
}

func (e UnterminatedLiteral) Error() string {
	if e.Quote == '\'' {
		return "Unterminated character literal"
	}
	return "Unterminated string literal"
}
