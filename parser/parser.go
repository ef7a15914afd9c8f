// Package parser builds a Program from a token sequence by recursive descent
// with a precedence-climbing expression grammar. Syntax errors are collected
// rather than fatal: the parser synchronizes to the next safe boundary and
// keeps going, so one pass reports every independent error.
package parser

import (
	"github.com/sable-lang/sable/ast"
	"github.com/sable-lang/sable/lexer"
)

type Parser struct {
	tokens  []lexer.Token
	current int
	errors  []error

	// currentID is incremented each time a Variable expression is created,
	// so every Variable and Assignment node carries a unique id.
	currentID ast.ExpressionID
}

func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns the syntax errors collected by the last ParseProgram call.
func (p *Parser) Errors() []error {
	return p.errors
}

func (p *Parser) getID() ast.ExpressionID {
	p.currentID++
	return p.currentID
}

func (p *Parser) isEOF() bool {
	return p.current >= len(p.tokens)
}

// peek panics with UnexpectedEndOfInput when the cursor has run out of
// tokens; the panic is recovered at the nearest statement or declaration
// boundary and recorded like any other syntax error.
func (p *Parser) peek() lexer.Token {
	if p.isEOF() {
		panic(UnexpectedEndOfInput{})
	}
	return p.tokens[p.current]
}

func (p *Parser) isMatch(kind lexer.TokenKind) bool {
	return !p.isEOF() && p.tokens[p.current].Kind == kind
}

func (p *Parser) advance() {
	p.current++
}

func (p *Parser) advanceIf(kind lexer.TokenKind) bool {
	if p.isMatch(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind lexer.TokenKind, message string) {
	if !p.advanceIf(kind) {
		panic(UnexpectedToken{
			Expected: &kind,
			Found:    p.peek(),
			Message:  message,
		})
	}
}

func (p *Parser) expectIdentifier() string {
	if p.isMatch(lexer.Identifier) {
		name := p.tokens[p.current].Text
		p.advance()
		return name
	}
	expected := lexer.Identifier
	panic(UnexpectedToken{
		Expected: &expected,
		Found:    p.peek(),
		Message:  "Expected an identifier",
	})
}

// recoverSyntax converts a panicking syntax error back into an error value at
// a statement or declaration boundary. Anything that is not a syntax error
// keeps propagating.
func (p *Parser) recoverSyntax(err *error) {
	switch e := recover().(type) {
	case nil:
	case UnexpectedToken:
		*err = e
	case UnexpectedEndOfInput:
		*err = e
	default:
		panic(e)
	}
}

// synchronize skips tokens until it passes a semicolon or lands on a token
// that can open a new declaration or statement, bounding error cascades to
// one reported error per malformed construct.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isEOF() {
		if p.advanceIf(lexer.Semicolon) {
			break
		}

		switch p.tokens[p.current].Kind {
		case lexer.FunctionKeyword,
			lexer.ImportKeyword,
			lexer.StructKeyword,
			lexer.TypeKeyword,
			lexer.LetKeyword,
			lexer.ConstKeyword,
			lexer.LoopKeyword,
			lexer.IfKeyword,
			lexer.ElseKeyword,
			lexer.ReturnKeyword,
			lexer.BreakKeyword,
			lexer.ContinueKeyword,
			lexer.OpenCurlyBracket:
			return
		}

		p.advance()
	}
}

// ParseProgram parses the entire token sequence. If any syntax errors were
// collected the whole parse fails and nil is returned; the errors are
// available through Errors for the caller to report.
func (p *Parser) ParseProgram() *ast.Program {
	var declarations []ast.Declaration
	p.errors = nil

	for !p.isEOF() {
		decl, err := p.declaration()
		if err != nil {
			p.errors = append(p.errors, err)
			p.synchronize()
			continue
		}
		declarations = append(declarations, decl)
	}

	if len(p.errors) > 0 {
		return nil
	}

	return &ast.Program{Declarations: declarations}
}

func (p *Parser) declaration() (decl ast.Declaration, err error) {
	defer p.recoverSyntax(&err)
	return p.parseDeclaration(), nil
}

func (p *Parser) statement() (stmt ast.Statement, err error) {
	defer p.recoverSyntax(&err)
	return p.parseStatement(), nil
}

func (p *Parser) parseDeclaration() ast.Declaration {
	if decl, ok := p.tryParseDeclaration(); ok {
		return decl
	}
	panic(UnexpectedToken{
		Found:   p.peek(),
		Message: "Expected a function, struct, type, or import declaration",
	})
}

func (p *Parser) tryParseDeclaration() (ast.Declaration, bool) {
	switch {
	case p.advanceIf(lexer.FunctionKeyword):
		name := p.expectIdentifier()
		genericArgs := p.parseGenericArgs()
		params := p.parseFunctionParameters()
		p.expect(lexer.Arrow, "Expected arrow after function parameters for type")
		returnType := p.parseType()
		body := p.parseBlock()
		return ast.Function{
			Name:        name,
			GenericArgs: genericArgs,
			Params:      params,
			ReturnType:  returnType,
			Body:        body,
		}, true

	case p.advanceIf(lexer.ImportKeyword):
		path := []string{p.expectIdentifier()}
		for !p.isEOF() && p.advanceIf(lexer.Dot) {
			path = append(path, p.expectIdentifier())
		}
		p.expect(lexer.Semicolon, "Expected semicolon after import path")
		return ast.Import{Path: path}, true

	case p.advanceIf(lexer.StructKeyword):
		name := p.expectIdentifier()
		genericArgs := p.parseGenericArgs()
		p.expect(lexer.OpenCurlyBracket, "Expected open brace after struct name")
		var elements []ast.StructElement
		for !p.isEOF() && !p.isMatch(lexer.CloseCurlyBracket) {
			elements = append(elements, p.parseStructElement())
		}
		p.expect(lexer.CloseCurlyBracket, "Unmatched open brace")
		return ast.Struct{Name: name, GenericArgs: genericArgs, Elements: elements}, true

	case p.advanceIf(lexer.TypeKeyword):
		name := p.expectIdentifier()
		genericArgs := p.parseGenericArgs()
		p.expect(lexer.AssignmentOperator, "Expected assignment operator after type name")
		alias := p.parseType()
		p.expect(lexer.Semicolon, "Expected semicolon after type declaration")
		return ast.TypeAlias{Name: name, GenericArgs: genericArgs, Alias: alias}, true
	}

	return nil, false
}

func (p *Parser) parseStructElement() ast.StructElement {
	if decl, ok := p.tryParseDeclaration(); ok {
		return decl.(ast.StructElement)
	}

	name := p.expectIdentifier()
	p.expect(lexer.Colon, "Expected colon after struct field name")
	fieldType := p.parseType()
	p.expect(lexer.Semicolon, "Expected semicolon after struct field declaration")
	return ast.StructField{Name: name, Type: fieldType}
}

func (p *Parser) parseFunctionParameters() []ast.FunctionParameter {
	p.expect(lexer.OpenParenthesis, "Expected open parentheses after function name")

	var params []ast.FunctionParameter
	for !p.isEOF() && !p.isMatch(lexer.CloseParenthesis) {
		name := p.expectIdentifier()
		p.expect(lexer.Colon, "Expected colon after function parameter for type")
		paramType := p.parseType()
		params = append(params, ast.FunctionParameter{Name: name, Type: paramType})

		if !p.advanceIf(lexer.Comma) {
			break
		}
	}

	p.expect(lexer.CloseParenthesis, "Unmatched open parentheses")
	return params
}

// parseGenericArgs parses `<T, U>` generic parameter names, or nothing.
func (p *Parser) parseGenericArgs() []string {
	if !p.advanceIf(lexer.OpenAngleBracket) {
		return nil
	}
	var args []string
	for !p.isEOF() && !p.isMatch(lexer.CloseAngleBracket) {
		args = append(args, p.expectIdentifier())
		if !p.advanceIf(lexer.Comma) {
			break
		}
	}
	p.expect(lexer.CloseAngleBracket, "Unmatched open angle bracket")
	return args
}

// parseGenerics parses `<type, type>` generic type arguments, or nothing.
func (p *Parser) parseGenerics() []ast.Type {
	if !p.advanceIf(lexer.OpenAngleBracket) {
		return nil
	}
	var generics []ast.Type
	for !p.isEOF() && !p.isMatch(lexer.CloseAngleBracket) {
		generics = append(generics, p.parseType())
		if !p.advanceIf(lexer.Comma) {
			break
		}
	}
	p.expect(lexer.CloseAngleBracket, "Unmatched open angle bracket")
	return generics
}

var primitiveTypes = map[string]ast.Primitive{
	"u8":   ast.U8,
	"u16":  ast.U16,
	"u32":  ast.U32,
	"u64":  ast.U64,
	"i8":   ast.I8,
	"i16":  ast.I16,
	"i32":  ast.I32,
	"i64":  ast.I64,
	"f32":  ast.F32,
	"f64":  ast.F64,
	"bool": ast.Boolean,
	"char": ast.Character,
}

func (p *Parser) parseType() ast.Type {
	switch p.peek().Kind {
	case lexer.Identifier:
		name := p.tokens[p.current].Text
		p.advance()
		if primitive, ok := primitiveTypes[name]; ok {
			return primitive
		}
		if name == "nil" {
			return ast.NilType{}
		}
		// Custom types (structs, aliases, generics)
		return ast.NamedType{Name: name, Generics: p.parseGenerics()}

	case lexer.OpenSquareBracket:
		p.advance()
		element := p.parseType()
		p.expect(lexer.CloseSquareBracket, "Unmatched open square bracket")
		return ast.ArrayType{Element: element}

	default:
		expected := lexer.Identifier
		panic(UnexpectedToken{
			Expected: &expected,
			Found:    p.peek(),
			Message:  "Expected a type identifier",
		})
	}
}

// parseBlock collects statements until the closing brace, recovering from
// errors per statement. A statement that is an expression without a trailing
// semicolon is the block's result value and must be last: collection stops
// as soon as one is accepted.
func (p *Parser) parseBlock() ast.Expression {
	p.expect(lexer.OpenCurlyBracket, "Expected open brace")
	var statements []ast.Statement
	for !p.isEOF() && !p.isMatch(lexer.CloseCurlyBracket) {
		stmt, err := p.statement()
		if err != nil {
			p.errors = append(p.errors, err)
			p.synchronize()
			continue
		}

		statements = append(statements, stmt)
		if expr, ok := stmt.(ast.ExpressionStatement); ok && expr.Result {
			break
		}
	}
	p.expect(lexer.CloseCurlyBracket, "Unmatched open brace")
	return ast.Block(statements)
}

func (p *Parser) parseStatement() ast.Statement {
	if decl, ok := p.tryParseDeclaration(); ok {
		return ast.DeclarationStatement{Decl: decl}
	}

	switch p.peek().Kind {
	case lexer.BreakKeyword:
		p.advance()
		p.expect(lexer.Semicolon, "Expected semicolon after break")
		return ast.Break{}

	case lexer.ContinueKeyword:
		p.advance()
		p.expect(lexer.Semicolon, "Expected semicolon after continue")
		return ast.Continue{}

	case lexer.LetKeyword, lexer.ConstKeyword:
		mutability := ast.Immutable
		if p.isMatch(lexer.LetKeyword) {
			mutability = ast.Mutable
		}
		p.advance()
		name := p.expectIdentifier()
		p.expect(lexer.Colon, "Expected colon after variable name")
		variableType := p.parseType()
		p.expect(lexer.AssignmentOperator, "Expected assignment operator after variable type")
		value := p.parseExpression()
		p.expect(lexer.Semicolon, "Expected semicolon after variable declaration")
		return ast.VariableDeclaration{
			Mutability: mutability,
			Name:       name,
			Type:       variableType,
			Value:      value,
		}

	case lexer.ReturnKeyword:
		p.advance()
		var value ast.Expression
		if !p.isMatch(lexer.Semicolon) {
			value = p.parseExpression()
		}
		p.expect(lexer.Semicolon, "Expected semicolon after return")
		return ast.Return{Value: value}
	}

	// An expression statement. With a trailing semicolon it is executed for
	// effect; without one it is the enclosing block's result value.
	expr := p.parseExpression()
	result := true
	if p.advanceIf(lexer.Semicolon) {
		result = false
	}
	return ast.ExpressionStatement{Expression: expr, Result: result}
}

func (p *Parser) parseExpression() ast.Expression {
	// Blocks are expressions
	if p.isMatch(lexer.OpenCurlyBracket) {
		return p.parseBlock()
	}

	if p.advanceIf(lexer.LoopKeyword) {
		return p.parseLoop()
	}

	if p.advanceIf(lexer.IfKeyword) {
		p.expect(lexer.OpenParenthesis, "Expected open parentheses after if")
		condition := p.parseExpression()
		p.expect(lexer.CloseParenthesis, "Unmatched open parentheses")
		then := p.parseExpression()

		// Optional semicolon after the then branch
		p.advanceIf(lexer.Semicolon)

		var elseBranch ast.Expression
		if p.advanceIf(lexer.ElseKeyword) {
			elseBranch = p.parseExpression()
		}

		return ast.If{Condition: condition, Then: then, Else: elseBranch}
	}

	if p.advanceIf(lexer.OpenSquareBracket) {
		// Array creation
		elementType := p.parseType()
		p.expect(lexer.Comma, "Expected comma after array type")
		size := p.parseExpression()
		p.expect(lexer.CloseSquareBracket, "Unmatched open square bracket")
		p.expect(lexer.OpenCurlyBracket, "Expected open brace after array size")
		initial := p.parseExpression()
		p.expect(lexer.CloseCurlyBracket, "Unmatched open brace")
		return ast.ArrayCreation{ElementType: elementType, Size: size, Initial: initial}
	}

	if p.advanceIf(lexer.NewKeyword) {
		// Struct creation
		structType := p.parseType()
		p.expect(lexer.OpenCurlyBracket, "Expected open brace after struct name")
		var fields []ast.StructFieldValue
		for !p.isEOF() && !p.isMatch(lexer.CloseCurlyBracket) {
			name := p.expectIdentifier()
			p.expect(lexer.Colon, "Expected colon after struct field name")
			value := p.parseExpression()
			fields = append(fields, ast.StructFieldValue{Name: name, Value: value})
			if !p.advanceIf(lexer.Comma) {
				break
			}
		}
		p.expect(lexer.CloseCurlyBracket, "Unmatched open brace")
		return ast.StructCreation{Type: structType, Fields: fields}
	}

	return p.parseAssignment()
}

// parseLoop distinguishes the three loop forms after the loop keyword:
// `loop { }`, `loop (condition) { }`, and `loop (let|const name: iterable) { }`.
func (p *Parser) parseLoop() ast.Expression {
	if !p.advanceIf(lexer.OpenParenthesis) {
		return ast.InfiniteLoop{Body: p.parseBlock()}
	}

	if p.isMatch(lexer.LetKeyword) || p.isMatch(lexer.ConstKeyword) {
		mutability := ast.Immutable
		if p.isMatch(lexer.LetKeyword) {
			mutability = ast.Mutable
		}
		p.advance()
		iterator := p.expectIdentifier()
		p.expect(lexer.Colon, "Expected colon after variable name")
		iterable := p.parseExpression()
		p.expect(lexer.CloseParenthesis, "Unmatched open parentheses")
		body := p.parseBlock()
		return ast.IteratorLoop{
			Mutability: mutability,
			Iterator:   iterator,
			Iterable:   iterable,
			Body:       body,
		}
	}

	condition := p.parseExpression()
	p.expect(lexer.CloseParenthesis, "Unmatched open parentheses")
	body := p.parseBlock()
	return ast.WhileLoop{Condition: condition, Body: body}
}

// parseAssignment is right-associative and only valid when the left operand
// is a bare variable reference; the assignment keeps the variable's id.
func (p *Parser) parseAssignment() ast.Expression {
	expr := p.parseLogicalOr()
	if p.advanceIf(lexer.AssignmentOperator) {
		value := p.parseAssignment()
		variable, ok := expr.(ast.Variable)
		if !ok {
			expected := lexer.Identifier
			panic(UnexpectedToken{
				Expected: &expected,
				Found:    p.peek(),
				Message:  "Expected an identifier for assignment",
			})
		}
		return ast.Assignment{Name: variable.Name, Value: value, ID: variable.ID}
	}
	return expr
}

var logicalOrOps = map[lexer.TokenKind]ast.BinaryOperator{
	lexer.OrOperator: ast.Or,
}

var logicalAndOps = map[lexer.TokenKind]ast.BinaryOperator{
	lexer.AndOperator: ast.And,
}

var equalityOps = map[lexer.TokenKind]ast.BinaryOperator{
	lexer.EqualOperator:    ast.Equal,
	lexer.NotEqualOperator: ast.NotEqual,
}

var comparisonOps = map[lexer.TokenKind]ast.BinaryOperator{
	lexer.OpenAngleBracket:         ast.LessThan,
	lexer.CloseAngleBracket:        ast.GreaterThan,
	lexer.LessThanEqualOperator:    ast.LessThanOrEqual,
	lexer.GreaterThanEqualOperator: ast.GreaterThanOrEqual,
}

var termOps = map[lexer.TokenKind]ast.BinaryOperator{
	lexer.AddOperator:      ast.Add,
	lexer.SubtractOperator: ast.Subtract,
}

var factorOps = map[lexer.TokenKind]ast.BinaryOperator{
	lexer.MultiplyOperator: ast.Multiply,
	lexer.DivideOperator:   ast.Divide,
	lexer.ModuloOperator:   ast.Modulus,
}

var unaryOps = map[lexer.TokenKind]ast.UnaryOperator{
	lexer.NotOperator:      ast.Not,
	lexer.SubtractOperator: ast.Negate,
}

// parseBinary folds one precedence level: parse the next-higher level, then
// while the current token is one of this level's operators, consume it and
// fold a left-associative BinaryOperation.
func (p *Parser) parseBinary(next func() ast.Expression, ops map[lexer.TokenKind]ast.BinaryOperator) ast.Expression {
	expr := next()
	for !p.isEOF() {
		operator, ok := ops[p.tokens[p.current].Kind]
		if !ok {
			break
		}
		p.advance()
		expr = ast.BinaryOperation{Left: expr, Operator: operator, Right: next()}
	}
	return expr
}

func (p *Parser) parseLogicalOr() ast.Expression {
	return p.parseBinary(p.parseLogicalAnd, logicalOrOps)
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	return p.parseBinary(p.parseEquality, logicalAndOps)
}

func (p *Parser) parseEquality() ast.Expression {
	return p.parseBinary(p.parseComparison, equalityOps)
}

func (p *Parser) parseComparison() ast.Expression {
	return p.parseBinary(p.parseTerm, comparisonOps)
}

func (p *Parser) parseTerm() ast.Expression {
	return p.parseBinary(p.parseFactor, termOps)
}

func (p *Parser) parseFactor() ast.Expression {
	return p.parseBinary(p.parseUnary, factorOps)
}

func (p *Parser) parseUnary() ast.Expression {
	var expr ast.Expression
	for !p.isEOF() {
		operator, ok := unaryOps[p.tokens[p.current].Kind]
		if !ok {
			break
		}
		p.advance()
		expr = ast.UnaryOperation{Operator: operator, Operand: p.parseCall()}
	}
	if expr != nil {
		return expr
	}
	return p.parseCall()
}

// parseCall folds the postfix call / member-access chain.
func (p *Parser) parseCall() ast.Expression {
	expr := p.parsePrimary()

	for !p.isEOF() {
		if p.advanceIf(lexer.OpenParenthesis) {
			expr = p.parseFunctionCallAfterParen(expr)
		} else if p.advanceIf(lexer.Dot) {
			expr = ast.MemberAccess{Object: expr, Member: p.expectIdentifier()}
		} else {
			break
		}
	}

	return expr
}

func (p *Parser) parseFunctionCallAfterParen(callee ast.Expression) ast.Expression {
	var args []ast.Expression
	for !p.isEOF() && !p.isMatch(lexer.CloseParenthesis) {
		args = append(args, p.parseExpression())
		if !p.advanceIf(lexer.Comma) {
			break
		}
	}
	p.expect(lexer.CloseParenthesis, "Unmatched open parentheses")
	return ast.FunctionCall{Callee: callee, Args: args}
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.peek()
	switch tok.Kind {
	case lexer.IntegerLiteral:
		p.advance()
		return ast.NumberLiteral(float64(tok.Int))

	case lexer.FloatLiteral:
		p.advance()
		return ast.NumberLiteral(tok.Float)

	case lexer.StringLiteral:
		p.advance()
		return ast.StringLiteral(tok.Text)

	case lexer.CharLiteral:
		p.advance()
		return ast.CharLiteral([]rune(tok.Text)[0])

	case lexer.TrueValue:
		p.advance()
		return ast.BooleanLiteral(true)

	case lexer.FalseValue:
		p.advance()
		return ast.BooleanLiteral(false)

	case lexer.Identifier:
		p.advance()
		return ast.Variable{Name: tok.Text, ID: p.getID()}

	case lexer.OpenParenthesis:
		p.advance()
		expr := p.parseExpression()
		p.expect(lexer.CloseParenthesis, "Unmatched open parentheses")
		return expr
	}

	panic(UnexpectedToken{
		Found:   tok,
		Message: "Expected an expression",
	})
}
