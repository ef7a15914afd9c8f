// Package resolver is the static binding pass between parsing and
// evaluation. It walks the whole program once, tracking a stack of lexical
// scopes, and records for every variable read and assignment how many scopes
// sit between the use and its declaration. The tree itself is never touched:
// the result is a side table keyed by expression id, which the interpreter
// consults for constant-time environment lookups.
package resolver

import (
	"fmt"

	"github.com/sable-lang/sable/ast"
)

// SelfReferentialRead is reported when a variable's initializer reads the
// variable being declared, e.g. `let a: i64 = a;`.
type SelfReferentialRead struct {
	Name string
}

func (e SelfReferentialRead) Error() string {
	return fmt.Sprintf("Tried to read %s in its own declaration.", e.Name)
}

type Resolver struct {
	// scopes is the stack of lexical scopes, innermost last. A name maps to
	// false between declare and define, and to true once it is readable.
	scopes []map[string]bool
	depths map[ast.ExpressionID]int
	errors []error
}

// Resolve computes the scope-depth table for a program. Expressions that
// resolve to no enclosing scope are absent from the table; the interpreter
// treats those as globals.
func Resolve(program *ast.Program) (map[ast.ExpressionID]int, []error) {
	r := &Resolver{depths: map[ast.ExpressionID]int{}}
	for _, decl := range program.Declarations {
		r.resolveDeclaration(decl)
	}
	if len(r.errors) > 0 {
		return nil, r.errors
	}
	return r.depths, nil
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]bool{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = false
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

// resolveLocal walks the scope stack from innermost to outermost and records
// the distance to the first scope containing the name. Names found in no
// scope get no entry and fall through to the global environment at run time.
func (r *Resolver) resolveLocal(id ast.ExpressionID, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.depths[id] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) resolveDeclaration(decl ast.Declaration) {
	switch decl := decl.(type) {
	case ast.Function:
		// Function names are not pushed onto the scope stack: references to
		// them get no depth entry and fall through to the interpreter's
		// global function table, wherever the declaration appears.
		r.beginScope()
		for _, param := range decl.Params {
			r.declare(param.Name)
			r.define(param.Name)
		}
		r.resolveExpression(decl.Body)
		r.endScope()

	case ast.Struct:
		for _, element := range decl.Elements {
			if nested, ok := element.(ast.Declaration); ok {
				r.resolveDeclaration(nested)
			}
		}

	case ast.Import, ast.TypeAlias:
		// Nothing to bind.
	}
}

func (r *Resolver) resolveStatement(stmt ast.Statement) {
	switch stmt := stmt.(type) {
	case ast.ExpressionStatement:
		r.resolveExpression(stmt.Expression)

	case ast.VariableDeclaration:
		// Declare before resolving the initializer so a self-reference is
		// caught, define only afterwards.
		r.declare(stmt.Name)
		r.resolveExpression(stmt.Value)
		r.define(stmt.Name)

	case ast.Return:
		if stmt.Value != nil {
			r.resolveExpression(stmt.Value)
		}

	case ast.DeclarationStatement:
		r.resolveDeclaration(stmt.Decl)

	case ast.Break, ast.Continue:
	}
}

func (r *Resolver) resolveExpression(expr ast.Expression) {
	switch expr := expr.(type) {
	case ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][expr.Name]; ok && !defined {
				r.errors = append(r.errors, SelfReferentialRead{Name: expr.Name})
				return
			}
		}
		r.resolveLocal(expr.ID, expr.Name)

	case ast.Assignment:
		r.resolveExpression(expr.Value)
		r.resolveLocal(expr.ID, expr.Name)

	case ast.Block:
		r.beginScope()
		for _, stmt := range expr {
			r.resolveStatement(stmt)
		}
		r.endScope()

	case ast.BinaryOperation:
		r.resolveExpression(expr.Left)
		r.resolveExpression(expr.Right)

	case ast.UnaryOperation:
		r.resolveExpression(expr.Operand)

	case ast.FunctionCall:
		r.resolveExpression(expr.Callee)
		for _, arg := range expr.Args {
			r.resolveExpression(arg)
		}

	case ast.MemberAccess:
		r.resolveExpression(expr.Object)

	case ast.If:
		r.resolveExpression(expr.Condition)
		r.resolveExpression(expr.Then)
		if expr.Else != nil {
			r.resolveExpression(expr.Else)
		}

	case ast.InfiniteLoop:
		r.resolveExpression(expr.Body)

	case ast.WhileLoop:
		r.resolveExpression(expr.Condition)
		r.resolveExpression(expr.Body)

	case ast.IteratorLoop:
		// The loop variable gets its own scope wrapping the body, and is
		// declared before the iterable resolves so it is never readable
		// inside its own iterable expression.
		r.beginScope()
		r.declare(expr.Iterator)
		r.resolveExpression(expr.Iterable)
		r.define(expr.Iterator)
		r.resolveExpression(expr.Body)
		r.endScope()

	case ast.ArrayCreation:
		r.resolveExpression(expr.Size)
		r.resolveExpression(expr.Initial)

	case ast.StructCreation:
		for _, field := range expr.Fields {
			r.resolveExpression(field.Value)
		}

	case ast.NumberLiteral, ast.StringLiteral, ast.CharLiteral, ast.BooleanLiteral:
	}
}
