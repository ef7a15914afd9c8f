package resolver

import (
	"testing"

	"github.com/sable-lang/sable/ast"
	"github.com/sable-lang/sable/lexer"
	"github.com/sable-lang/sable/parser"
)

func resolveProgram(t *testing.T, input string) (*ast.Program, map[ast.ExpressionID]int) {
	t.Helper()
	tokens, err := lexer.New(input).Tokenize()
	if err != nil {
		t.Fatalf("tokenize failed: %s", err)
	}
	p := parser.New(tokens)
	program := p.ParseProgram()
	if program == nil {
		t.Fatalf("parse failed: %v", p.Errors())
	}
	depths, errors := Resolve(program)
	if len(errors) > 0 {
		t.Fatalf("resolve failed: %v", errors)
	}
	return program, depths
}

// mainStatements digs out the body statements of the first declaration.
func mainStatements(t *testing.T, program *ast.Program) ast.Block {
	t.Helper()
	return program.Declarations[0].(ast.Function).Body.(ast.Block)
}

func TestLocalDepthZero(t *testing.T) {
	program, depths := resolveProgram(t, `
func main() -> nil {
	let x: i64 = 1;
	x;
}`)
	statements := mainStatements(t, program)
	read := statements[1].(ast.ExpressionStatement).Expression.(ast.Variable)
	depth, ok := depths[read.ID]
	if !ok {
		t.Fatal("read of x was not resolved")
	}
	if depth != 0 {
		t.Errorf("depth = %d, want 0", depth)
	}
}

func TestNestedBlockDepth(t *testing.T) {
	program, depths := resolveProgram(t, `
func main() -> nil {
	let x: i64 = 1;
	{
		{
			x;
		};
	};
}`)
	statements := mainStatements(t, program)
	outer := statements[1].(ast.ExpressionStatement).Expression.(ast.Block)
	inner := outer[0].(ast.ExpressionStatement).Expression.(ast.Block)
	read := inner[0].(ast.ExpressionStatement).Expression.(ast.Variable)
	if depth := depths[read.ID]; depth != 2 {
		t.Errorf("depth = %d, want 2", depth)
	}
}

func TestShadowingResolvesToNearest(t *testing.T) {
	program, depths := resolveProgram(t, `
func main() -> nil {
	let x: i64 = 1;
	{
		let x: i64 = 2;
		x;
	};
}`)
	statements := mainStatements(t, program)
	block := statements[1].(ast.ExpressionStatement).Expression.(ast.Block)
	read := block[1].(ast.ExpressionStatement).Expression.(ast.Variable)
	if depth := depths[read.ID]; depth != 0 {
		t.Errorf("depth = %d, want 0 for the shadowing declaration", depth)
	}
}

func TestGlobalReadGetsNoEntry(t *testing.T) {
	program, depths := resolveProgram(t, `
func main() -> nil {
	helper();
}

func helper() -> nil {
}`)
	statements := mainStatements(t, program)
	call := statements[0].(ast.ExpressionStatement).Expression.(ast.FunctionCall)
	callee := call.Callee.(ast.Variable)
	if _, ok := depths[callee.ID]; ok {
		t.Error("global function reference should not get a depth entry")
	}
}

func TestAssignmentResolved(t *testing.T) {
	program, depths := resolveProgram(t, `
func main() -> nil {
	let x: i64 = 1;
	{
		x = 2;
	};
}`)
	statements := mainStatements(t, program)
	block := statements[1].(ast.ExpressionStatement).Expression.(ast.Block)
	assignment := block[0].(ast.ExpressionStatement).Expression.(ast.Assignment)
	if depth := depths[assignment.ID]; depth != 1 {
		t.Errorf("depth = %d, want 1", depth)
	}
}

func TestParameterDepth(t *testing.T) {
	program, depths := resolveProgram(t, `
func double(n: i64) -> i64 {
	n + n
}`)
	statements := mainStatements(t, program)
	sum := statements[0].(ast.ExpressionStatement).Expression.(ast.BinaryOperation)
	left := sum.Left.(ast.Variable)
	// Parameter scope is one level outside the body block.
	if depth := depths[left.ID]; depth != 1 {
		t.Errorf("depth = %d, want 1", depth)
	}
}

func TestIteratorLoopBinding(t *testing.T) {
	program, depths := resolveProgram(t, `
func main() -> nil {
	let word: string = "hey";
	loop (const c: word) {
		c;
	};
}`)
	statements := mainStatements(t, program)
	iterator := statements[1].(ast.ExpressionStatement).Expression.(ast.IteratorLoop)

	iterable := iterator.Iterable.(ast.Variable)
	if depth := depths[iterable.ID]; depth != 1 {
		t.Errorf("iterable depth = %d, want 1", depth)
	}

	body := iterator.Body.(ast.Block)
	read := body[0].(ast.ExpressionStatement).Expression.(ast.Variable)
	if depth := depths[read.ID]; depth != 1 {
		t.Errorf("loop variable depth = %d, want 1", depth)
	}
}

func TestSelfReferentialInitializer(t *testing.T) {
	tokens, err := lexer.New(`
func main() -> nil {
	let a: i64 = a;
}`).Tokenize()
	if err != nil {
		t.Fatalf("tokenize failed: %s", err)
	}
	program := parser.New(tokens).ParseProgram()
	if program == nil {
		t.Fatal("parse failed")
	}

	depths, errors := Resolve(program)
	if depths != nil {
		t.Error("expected no depth table on error")
	}
	if len(errors) != 1 {
		t.Fatalf("expected 1 error, got %v", errors)
	}
	want := "Tried to read a in its own declaration."
	if errors[0].Error() != want {
		t.Errorf("error = %q, want %q", errors[0].Error(), want)
	}
}
