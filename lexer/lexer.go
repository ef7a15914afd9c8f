package lexer

import (
	"strconv"
	"strings"
	"unicode"
)

// Tokenizer consumes the whole input eagerly and produces the full token
// list, or stops at the first lexical error.
type Tokenizer struct {
	characters []rune
	current    int
	line       int
	column     int

	tokens []Token
}

func New(input string) *Tokenizer {
	return &Tokenizer{
		characters: []rune(input),
		line:       1,
		column:     1,
	}
}

func (t *Tokenizer) eof() bool {
	return t.current >= len(t.characters)
}

func (t *Tokenizer) peek() (rune, bool) {
	if t.eof() {
		return 0, false
	}
	return t.characters[t.current], true
}

func (t *Tokenizer) next() (rune, bool) {
	if t.eof() {
		return 0, false
	}
	c := t.characters[t.current]
	t.current++
	if c == '\n' {
		t.line++
		t.column = 1
	} else {
		t.column++
	}
	return c, true
}

func (t *Tokenizer) nextIf(predicate func(rune) bool) (rune, bool) {
	if c, ok := t.peek(); ok && predicate(c) {
		return t.next()
	}
	return 0, false
}

func (t *Tokenizer) peekIs(predicate func(rune) bool) bool {
	c, ok := t.peek()
	return ok && predicate(c)
}

func (t *Tokenizer) skipWhitespace() {
	for {
		if _, ok := t.nextIf(unicode.IsSpace); !ok {
			return
		}
	}
}

func (t *Tokenizer) add(tok Token, line, column int) {
	tok.Line = line
	tok.Column = column
	t.tokens = append(t.tokens, tok)
}

func isIdentStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func isIdentPart(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}

// Tokenize scans the whole input and returns the token list, or the first
// lexical error encountered. Tokenization does not recover from errors.
func (t *Tokenizer) Tokenize() ([]Token, error) {
	for !t.eof() {
		t.skipWhitespace()

		line, column := t.line, t.column
		c, ok := t.next()
		if !ok {
			break
		}

		switch {
		// Keywords and identifiers
		case isIdentStart(c):
			identifier := string(c)
			for {
				next, ok := t.nextIf(isIdentPart)
				if !ok {
					break
				}
				identifier += string(next)
			}

			if kind, ok := keywords[identifier]; ok {
				t.add(Token{Kind: kind}, line, column)
			} else {
				t.add(Token{Kind: Identifier, Text: identifier}, line, column)
			}

		case unicode.IsDigit(c):
			if err := t.lexNumber(c, line, column); err != nil {
				return nil, err
			}

		// Floats starting with a dot
		case c == '.' && t.peekIs(unicode.IsDigit):
			number := "."
			for {
				next, ok := t.nextIf(unicode.IsDigit)
				if !ok {
					break
				}
				number += string(next)
			}

			value, err := strconv.ParseFloat(number, 64)
			if err != nil {
				return nil, InvalidFloat{Text: number, Line: line, Column: column}
			}
			t.add(Token{Kind: FloatLiteral, Text: number, Float: value}, line, column)

		// Comments
		case c == '/' && t.peekIs(func(c rune) bool { return c == '/' }):
			// Skip the rest of the line
			for {
				if _, ok := t.nextIf(func(c rune) bool { return c != '\n' }); !ok {
					break
				}
			}

		case c == '/' && t.peekIs(func(c rune) bool { return c == '*' }):
			t.next() // Consume the '*'
			for {
				c, ok := t.next()
				if !ok {
					break
				}
				if c == '*' {
					if next, _ := t.peek(); next == '/' {
						t.next() // Consume the '/'
						break
					}
				}
			}

		// Strings
		case c == '"':
			if err := t.lexString(line, column); err != nil {
				return nil, err
			}

		// Character literals
		case c == '\'':
			next, ok := t.peek()
			if !ok {
				return nil, UnterminatedLiteral{Quote: '\'', Line: line, Column: column}
			}
			if next == '\'' {
				return nil, EmptyCharLiteral{Line: line, Column: column}
			}
			t.next() // Consume the character
			if _, ok := t.next(); !ok { // Consume the closing quote
				return nil, UnterminatedLiteral{Quote: '\'', Line: line, Column: column}
			}
			t.add(Token{Kind: CharLiteral, Text: string(next)}, line, column)

		// Symbols and operators
		default:
			if next, ok := t.peek(); ok {
				// Check for 2-character symbols first
				if kind, ok := symbols[string(c)+string(next)]; ok {
					t.next() // Consume the second character
					t.add(Token{Kind: kind}, line, column)
					continue
				}
			}

			if kind, ok := symbols[string(c)]; ok {
				t.add(Token{Kind: kind}, line, column)
				continue
			}

			return nil, UnexpectedCharacter{Char: c, Line: line, Column: column}
		}
	}

	return t.tokens, nil
}

func (t *Tokenizer) lexNumber(first rune, line, column int) error {
	number := string(first)
	for {
		next, ok := t.nextIf(func(c rune) bool { return unicode.IsDigit(c) || c == '.' })
		if !ok {
			break
		}
		number += string(next)
	}

	// For now, no suffixes are allowed
	suffix := ""
	for {
		next, ok := t.nextIf(unicode.IsLetter)
		if !ok {
			break
		}
		suffix += string(next)
	}
	if suffix != "" {
		return InvalidNumberSuffix{Suffix: suffix, Line: line, Column: column}
	}

	if strings.Contains(number, ".") {
		value, err := strconv.ParseFloat(number, 64)
		if err != nil {
			return InvalidFloat{Text: number, Line: line, Column: column}
		}
		t.add(Token{Kind: FloatLiteral, Text: number, Float: value}, line, column)
	} else {
		value, err := strconv.ParseInt(number, 10, 64)
		if err != nil {
			return InvalidInteger{Text: number, Line: line, Column: column}
		}
		t.add(Token{Kind: IntegerLiteral, Text: number, Int: value}, line, column)
	}
	return nil
}

func (t *Tokenizer) lexString(line, column int) error {
	value := ""
	for {
		c, ok := t.next()
		if !ok {
			return UnterminatedLiteral{Quote: '"', Line: line, Column: column}
		}
		switch c {
		case '"':
			t.add(Token{Kind: StringLiteral, Text: value}, line, column)
			return nil
		case '\\':
			// The backslash consumes exactly the next character verbatim.
			escaped, ok := t.next()
			if !ok {
				return UnterminatedLiteral{Quote: '"', Line: line, Column: column}
			}
			value += string(escaped)
		default:
			value += string(c)
		}
	}
}
