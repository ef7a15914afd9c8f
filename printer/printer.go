// Package printer renders a program as an indented tree for the ast debug
// command. It consumes the tree read-only and is purely presentational.
package printer

import (
	"fmt"
	"strings"

	"github.com/sable-lang/sable/ast"
)

const (
	ansiGray  = "\x1b[90m"
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

type Printer struct {
	// Colorize draws the indent rails gray and node labels bold. On by
	// default.
	Colorize bool

	indent  int
	builder strings.Builder
}

func New() *Printer {
	return &Printer{Colorize: true}
}

// Print renders the whole program, one declaration after another.
func (p *Printer) Print(program *ast.Program) string {
	p.indent = 0
	p.builder.Reset()
	for _, decl := range program.Declarations {
		p.printDeclaration(decl)
	}
	return p.builder.String()
}

// line writes one output line: gray indent rails, then the text with
// everything before the first colon in bold.
func (p *Printer) line(format string, args ...interface{}) {
	if p.Colorize {
		p.builder.WriteString(ansiGray)
	}
	for n := 0; n < p.indent; n++ {
		p.builder.WriteString("|  ")
	}
	if p.Colorize {
		p.builder.WriteString(ansiReset)
	}

	text := fmt.Sprintf(format, args...)
	parts := strings.SplitN(text, ":", 2)
	if p.Colorize {
		p.builder.WriteString(ansiBold)
	}
	p.builder.WriteString(parts[0])
	if p.Colorize {
		p.builder.WriteString(ansiReset)
	}
	if len(parts) == 2 {
		p.builder.WriteString(":")
		p.builder.WriteString(parts[1])
	}
	p.builder.WriteString("\n")
}

func (p *Printer) nested(print func()) {
	p.indent++
	print()
	p.indent--
}

func (p *Printer) printDeclaration(decl ast.Declaration) {
	switch decl := decl.(type) {
	case ast.Function:
		if len(decl.GenericArgs) > 0 {
			p.line("Function: %s<%s>", decl.Name, strings.Join(decl.GenericArgs, ", "))
		} else {
			p.line("Function: %s", decl.Name)
		}
		p.nested(func() {
			p.line("Parameters:")
			for _, param := range decl.Params {
				p.line("- %s: %s", param.Name, typeName(param.Type))
			}
			p.line("Return Type: %s", typeName(decl.ReturnType))
			p.line("Body:")
			p.printExpression(decl.Body)
		})

	case ast.Import:
		p.line("Import: %s", strings.Join(decl.Path, "."))

	case ast.Struct:
		if len(decl.GenericArgs) > 0 {
			p.line("Struct: %s<%s>", decl.Name, strings.Join(decl.GenericArgs, ", "))
		} else {
			p.line("Struct: %s", decl.Name)
		}
		p.nested(func() {
			for _, element := range decl.Elements {
				switch element := element.(type) {
				case ast.StructField:
					p.line("Field: %s: %s", element.Name, typeName(element.Type))
				case ast.Declaration:
					p.printDeclaration(element)
				}
			}
		})

	case ast.TypeAlias:
		p.line("Type Alias: %s = %s", decl.Name, typeName(decl.Alias))
	}
}

func (p *Printer) printStatement(stmt ast.Statement) {
	switch stmt := stmt.(type) {
	case ast.Break:
		p.line("Break")

	case ast.Continue:
		p.line("Continue")

	case ast.ExpressionStatement:
		p.line("Expression:")
		p.nested(func() {
			p.printExpression(stmt.Expression)
			if stmt.Result {
				p.line("Result: true")
			}
		})

	case ast.Return:
		p.line("Return:")
		p.nested(func() {
			if stmt.Value != nil {
				p.printExpression(stmt.Value)
			} else {
				p.line("No value")
			}
		})

	case ast.VariableDeclaration:
		p.line("Variable Declaration: %s", stmt.Name)
		p.nested(func() {
			p.line("Mutability: %s", mutabilityName(stmt.Mutability))
			p.line("Type: %s", typeName(stmt.Type))
			p.line("Value:")
			p.printExpression(stmt.Value)
		})

	case ast.DeclarationStatement:
		p.printDeclaration(stmt.Decl)
	}
}

func (p *Printer) printExpression(expr ast.Expression) {
	switch expr := expr.(type) {
	case ast.NumberLiteral:
		p.line("Number Literal: %v", float64(expr))

	case ast.StringLiteral:
		p.line("String Literal: %s", string(expr))

	case ast.CharLiteral:
		p.line("Character Literal: %c", rune(expr))

	case ast.BooleanLiteral:
		p.line("Boolean Literal: %t", bool(expr))

	case ast.Variable:
		p.line("Variable: %s", expr.Name)

	case ast.Assignment:
		p.line("Assignment:")
		p.nested(func() {
			p.line("Variable: %s", expr.Name)
			p.line("Value:")
			p.printExpression(expr.Value)
		})

	case ast.BinaryOperation:
		p.line("Binary Operation: %s", expr.Operator)
		p.nested(func() {
			p.line("Left:")
			p.printExpression(expr.Left)
			p.line("Right:")
			p.printExpression(expr.Right)
		})

	case ast.UnaryOperation:
		p.line("Unary Operation: %s", expr.Operator)
		p.nested(func() {
			p.line("Operand:")
			p.printExpression(expr.Operand)
		})

	case ast.Block:
		p.line("Block:")
		p.nested(func() {
			for _, stmt := range expr {
				p.printStatement(stmt)
			}
		})

	case ast.FunctionCall:
		p.line("Function Call")
		p.nested(func() {
			p.line("Callee:")
			p.printExpression(expr.Callee)
			p.line("Arguments:")
			for _, arg := range expr.Args {
				p.printExpression(arg)
			}
		})

	case ast.MemberAccess:
		p.line("Member Access:")
		p.nested(func() {
			p.line("Object:")
			p.printExpression(expr.Object)
			p.line("Member: %s", expr.Member)
		})

	case ast.If:
		p.line("If Statement:")
		p.nested(func() {
			p.line("Condition:")
			p.printExpression(expr.Condition)
			p.line("Then Branch:")
			p.printExpression(expr.Then)
			if expr.Else != nil {
				p.line("Else Branch:")
				p.printExpression(expr.Else)
			}
		})

	case ast.InfiniteLoop:
		p.line("Infinite Loop:")
		p.nested(func() {
			p.printExpression(expr.Body)
		})

	case ast.WhileLoop:
		p.line("While Loop:")
		p.nested(func() {
			p.line("Condition:")
			p.printExpression(expr.Condition)
			p.line("Body:")
			p.printExpression(expr.Body)
		})

	case ast.IteratorLoop:
		p.line("Iterator Loop:")
		p.nested(func() {
			p.line("Mutability: %s", mutabilityName(expr.Mutability))
			p.line("Iterator: %s", expr.Iterator)
			p.line("Iterable:")
			p.printExpression(expr.Iterable)
			p.line("Body:")
			p.printExpression(expr.Body)
		})

	case ast.ArrayCreation:
		p.line("Array Creation: %s", typeName(expr.ElementType))
		p.nested(func() {
			p.line("Size:")
			p.printExpression(expr.Size)
			p.line("Initial Value:")
			p.printExpression(expr.Initial)
		})

	case ast.StructCreation:
		p.line("Struct Creation: %s", typeName(expr.Type))
		p.nested(func() {
			for _, field := range expr.Fields {
				p.line("Field: %s", field.Name)
				p.nested(func() {
					p.printExpression(field.Value)
				})
			}
		})
	}
}

func mutabilityName(mutability ast.Mutability) string {
	if mutability == ast.Mutable {
		return "Mutable"
	}
	return "Immutable"
}

// typeName renders a type the way it is spelled in source.
func typeName(t ast.Type) string {
	switch t := t.(type) {
	case ast.Primitive:
		return t.String()
	case ast.ArrayType:
		return fmt.Sprintf("[%s]", typeName(t.Element))
	case ast.NamedType:
		if len(t.Generics) == 0 {
			return t.Name
		}
		names := make([]string, 0, len(t.Generics))
		for _, generic := range t.Generics {
			names = append(names, typeName(generic))
		}
		return fmt.Sprintf("%s<%s>", t.Name, strings.Join(names, ", "))
	case ast.NilType:
		return "nil"
	}
	return "?"
}
