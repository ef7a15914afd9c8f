package interp

import (
	"bytes"
	"math"
	"strconv"
	"testing"

	"github.com/sable-lang/sable/lexer"
	"github.com/sable-lang/sable/parser"
	"github.com/sable-lang/sable/resolver"
)

// runProgram pushes source through the whole pipeline and returns whatever
// print wrote plus the signal that escaped to top level, if any.
func runProgram(t *testing.T, source string) (string, *Control) {
	t.Helper()
	tokens, err := lexer.New(source).Tokenize()
	if err != nil {
		t.Fatalf("tokenize failed: %s", err)
	}
	p := parser.New(tokens)
	program := p.ParseProgram()
	if program == nil {
		t.Fatalf("parse failed: %v", p.Errors())
	}
	depths, errors := resolver.Resolve(program)
	if len(errors) > 0 {
		t.Fatalf("resolve failed: %v", errors)
	}

	var out bytes.Buffer
	control := New(depths, &out).Run(program)
	return out.String(), control
}

func mustRun(t *testing.T, source string) string {
	t.Helper()
	output, control := runProgram(t, source)
	if control != nil {
		t.Fatalf("program failed with signal %d: %s", control.Signal, control.Message)
	}
	return output
}

func mustFailAtRuntime(t *testing.T, source string) string {
	t.Helper()
	_, control := runProgram(t, source)
	if control == nil {
		t.Fatal("expected a runtime error, program succeeded")
	}
	if control.Signal != SignalRuntimeError {
		t.Fatalf("expected a runtime error, got signal %d", control.Signal)
	}
	return control.Message
}

func wantOutput(t *testing.T, source, want string) {
	t.Helper()
	if got := mustRun(t, source); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestArithmetic(t *testing.T) {
	want := strconv.FormatFloat(1+2*3-math.Mod(4.0/5.0, 6), 'f', -1, 64)
	wantOutput(t, `
func main() -> nil {
	print(1 + 2 * 3 - 4 / 5 % 6);
}`, want+"\n")
}

func TestStringConcatenation(t *testing.T) {
	wantOutput(t, `
func main() -> nil {
	print("foo" + "bar");
}`, "foobar\n")
}

func TestDivisionByZero(t *testing.T) {
	message := mustFailAtRuntime(t, `
func main() -> nil {
	print(1 / 0);
}`)
	if message != "Division by zero" {
		t.Errorf("message = %q", message)
	}

	message = mustFailAtRuntime(t, `
func main() -> nil {
	print(1 % 0);
}`)
	if message != "Division by zero" {
		t.Errorf("message = %q", message)
	}
}

func TestUnsupportedOperands(t *testing.T) {
	message := mustFailAtRuntime(t, `
func main() -> nil {
	print(1 / true);
}`)
	if message != "Unsupported binary operation: 1 / true" {
		t.Errorf("message = %q", message)
	}
}

func TestEquality(t *testing.T) {
	wantOutput(t, `
func main() -> nil {
	print(1 == 1);
	print("a" != "b");
	print('x' == "x");
}`, "true\ntrue\nfalse\n")
}

func TestVariablesAndShadowing(t *testing.T) {
	wantOutput(t, `
func main() -> nil {
	let x: i64 = 1;
	{
		let x: i64 = 2;
		print(x);
	};
	print(x);
	x = 3;
	print(x);
}`, "2\n1\n3\n")
}

func TestUndefinedVariable(t *testing.T) {
	message := mustFailAtRuntime(t, `
func main() -> nil {
	print(missing);
}`)
	if message != "Undefined variable: missing" {
		t.Errorf("message = %q", message)
	}
}

func TestIfElse(t *testing.T) {
	wantOutput(t, `
func main() -> nil {
	print(if (1 < 2) { "then" } else { "else" });
	print(if (1 > 2) { "then" } else { "else" });
}`, "then\nelse\n")
}

func TestWhileLoop(t *testing.T) {
	wantOutput(t, `
func main() -> nil {
	let n: i64 = 0;
	loop (n < 3) {
		print(n);
		n = n + 1;
	};
}`, "0\n1\n2\n")
}

func TestInfiniteLoopBreakAndContinue(t *testing.T) {
	wantOutput(t, `
func main() -> nil {
	let n: i64 = 0;
	loop {
		n = n + 1;
		if (n > 3) { break; } else {
			if (n == 2) { continue; } else {
				print(n);
			}
		}
	};
}`, "1\n3\n")
}

func TestLoopIsAnExpression(t *testing.T) {
	wantOutput(t, `
func main() -> nil {
	print(loop { break; });
}`, "0\n")
}

func TestIteratorLoopOverString(t *testing.T) {
	wantOutput(t, `
func main() -> nil {
	let word: string = "hey";
	loop (const c: word) {
		print(c);
	};
}`, "h\ne\ny\n")
}

func TestArrayCreationAndIteration(t *testing.T) {
	wantOutput(t, `
func main() -> nil {
	let v: [i64] = [i64, 3] { 9 };
	print(v);
	loop (const e: v) {
		print(e);
	};
}`, "[9, 9, 9, ]\n9\n9\n9\n")
}

func TestInvalidArraySize(t *testing.T) {
	message := mustFailAtRuntime(t, `
func main() -> nil {
	let v: [i64] = [i64, 0 - 2] { 0 };
}`)
	if message != "Invalid array size: -2" {
		t.Errorf("message = %q", message)
	}
}

func TestFunctionCalls(t *testing.T) {
	wantOutput(t, `
func add(a: i64, b: i64) -> i64 {
	a + b
}

func pick(n: i64) -> i64 {
	if (n > 0) { n } else { 0 - n }
}

func main() -> nil {
	print(add(1, 2));
	print(pick(0 - 7));
}`, "3\n7\n")
}

func TestArityMismatch(t *testing.T) {
	message := mustFailAtRuntime(t, `
func add(a: i64, b: i64) -> i64 {
	a + b
}

func main() -> nil {
	add(1);
}`)
	if message != "Expected 2 arguments but got 1" {
		t.Errorf("message = %q", message)
	}
}

func TestCallingNonFunction(t *testing.T) {
	message := mustFailAtRuntime(t, `
func main() -> nil {
	let n: i64 = 1;
	n();
}`)
	if message != "Cannot call 1" {
		t.Errorf("message = %q", message)
	}
}

func TestStructCreationAndMemberAccess(t *testing.T) {
	wantOutput(t, `
struct Point {
	x: i64;
	y: i64;
}

func main() -> nil {
	let p: Point = new Point { x: 1, y: 2 };
	print(p.x + p.y);
	print(p);
}`, "3\nPoint { x: 1, y: 2, }\n")
}

func TestUnknownField(t *testing.T) {
	message := mustFailAtRuntime(t, `
func main() -> nil {
	let p: Point = new Point { x: 1 };
	p.z;
}`)
	if message != "Unknown field z on Point" {
		t.Errorf("message = %q", message)
	}
}

func TestTopLevelSignals(t *testing.T) {
	_, control := runProgram(t, "func main() -> nil {\nbreak;\n}")
	if control == nil || control.Signal != SignalBreak {
		t.Errorf("expected a break signal, got %+v", control)
	}

	_, control = runProgram(t, "func main() -> nil {\ncontinue;\n}")
	if control == nil || control.Signal != SignalContinue {
		t.Errorf("expected a continue signal, got %+v", control)
	}

	_, control = runProgram(t, "func main() -> nil {\nreturn 5;\n}")
	if control == nil || control.Signal != SignalReturn {
		t.Fatalf("expected a return signal, got %+v", control)
	}
	if control.Value != Number(5) {
		t.Errorf("returned value = %s", control.Value)
	}
}

func TestBareReturnYieldsNil(t *testing.T) {
	_, control := runProgram(t, "func main() -> nil {\nreturn;\n}")
	if control == nil || control.Signal != SignalReturn {
		t.Fatalf("expected a return signal, got %+v", control)
	}
	if control.Value != (Nil{}) {
		t.Errorf("returned value = %s", control.Value)
	}
}

func TestProgramWithoutMain(t *testing.T) {
	output, control := runProgram(t, "func helper() -> nil {\nprint(1);\n}")
	if control != nil {
		t.Fatalf("expected success, got %+v", control)
	}
	if output != "" {
		t.Errorf("nothing should run without a main, got %q", output)
	}
}

func TestNumberDisplay(t *testing.T) {
	wantOutput(t, `
func main() -> nil {
	print(7.0);
	print(0.5);
	print(0 - 1.25);
}`, "7\n0.5\n-1.25\n")
}
