// Package interp executes a resolved program by walking its tree. Evaluation
// is single-threaded and depth-first; break, continue, return, and runtime
// errors travel outward as Control outcomes rather than panics, so any frame
// can finish early and release its environment deterministically.
package interp

import (
	"io"
	"math"

	"github.com/sable-lang/sable/ast"
)

type Interpreter struct {
	globals *Environment
	env     *Environment

	// depths is the resolver's side table; expressions with no entry fall
	// back to the global environment.
	depths map[ast.ExpressionID]int

	stdout io.Writer
}

func New(depths map[ast.ExpressionID]int, stdout io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	for _, builtin := range builtins() {
		globals.Define(builtin.Name, builtin)
	}
	return &Interpreter{
		globals: globals,
		env:     globals,
		depths:  depths,
		stdout:  stdout,
	}
}

// Run defines every top-level function, then evaluates the body of main.
// A nil result is success; otherwise the signal escaped to top level and the
// caller decides how to report it. A program without a main function runs
// nothing and succeeds.
func (i *Interpreter) Run(program *ast.Program) *Control {
	var entry *ast.Function
	for _, decl := range program.Declarations {
		if function, ok := decl.(ast.Function); ok {
			i.globals.Define(function.Name, FunctionValue{Decl: function})
			if function.Name == "main" {
				function := function
				entry = &function
			}
		}
	}

	if entry == nil {
		return nil
	}

	// The entry point's body is evaluated directly rather than called, so a
	// bare return escapes to top level and is reported as misuse.
	prev := i.env
	i.env = NewEnvironment(i.globals)
	_, control := i.evalExpression(entry.Body)
	i.env = prev
	return control
}

func (i *Interpreter) execStatement(stmt ast.Statement) *Control {
	switch stmt := stmt.(type) {
	case ast.ExpressionStatement:
		_, control := i.evalExpression(stmt.Expression)
		return control

	case ast.VariableDeclaration:
		value, control := i.evalExpression(stmt.Value)
		if control != nil {
			return control
		}
		i.env.Define(stmt.Name, value)
		return nil

	case ast.Break:
		return &Control{Signal: SignalBreak}

	case ast.Continue:
		return &Control{Signal: SignalContinue}

	case ast.Return:
		var value Value = Nil{}
		if stmt.Value != nil {
			var control *Control
			value, control = i.evalExpression(stmt.Value)
			if control != nil {
				return control
			}
		}
		return &Control{Signal: SignalReturn, Value: value}

	case ast.DeclarationStatement:
		if function, ok := stmt.Decl.(ast.Function); ok {
			i.globals.Define(function.Name, FunctionValue{Decl: function})
		}
		return nil
	}

	return nil
}

func (i *Interpreter) evalExpression(expr ast.Expression) (Value, *Control) {
	switch expr := expr.(type) {
	case ast.NumberLiteral:
		return Number(expr), nil
	case ast.StringLiteral:
		return String(expr), nil
	case ast.CharLiteral:
		return Char(expr), nil
	case ast.BooleanLiteral:
		return Boolean(expr), nil

	case ast.Variable:
		return i.lookupVariable(expr.Name, expr.ID)

	case ast.Assignment:
		value, control := i.evalExpression(expr.Value)
		if control != nil {
			return nil, control
		}
		if depth, ok := i.depths[expr.ID]; ok {
			if !i.env.AssignAt(depth, expr.Name, value) {
				return nil, runtimeError("Undefined variable: %s", expr.Name)
			}
		} else if !i.globals.Assign(expr.Name, value) {
			return nil, runtimeError("Undefined variable: %s", expr.Name)
		}
		return value, nil

	case ast.BinaryOperation:
		return i.evalBinary(expr)

	case ast.UnaryOperation:
		operand, control := i.evalExpression(expr.Operand)
		if control != nil {
			return nil, control
		}
		switch expr.Operator {
		case ast.Negate:
			if number, ok := operand.(Number); ok {
				return -number, nil
			}
		case ast.Not:
			if boolean, ok := operand.(Boolean); ok {
				return !boolean, nil
			}
		}
		return nil, runtimeError("Unsupported unary operation: %s %s", expr.Operator, operand)

	case ast.Block:
		return i.evalBlock(expr)

	case ast.If:
		condition, control := i.evalExpression(expr.Condition)
		if control != nil {
			return nil, control
		}
		if condition == Boolean(true) {
			return i.evalExpression(expr.Then)
		}
		if expr.Else != nil {
			return i.evalExpression(expr.Else)
		}
		return unit(), nil

	case ast.InfiniteLoop:
		for {
			if _, control := i.evalExpression(expr.Body); control != nil {
				switch control.Signal {
				case SignalBreak:
					return unit(), nil
				case SignalContinue:
					continue
				default:
					return nil, control
				}
			}
		}

	case ast.WhileLoop:
		for {
			condition, control := i.evalExpression(expr.Condition)
			if control != nil {
				return nil, control
			}
			if condition == Boolean(false) {
				return unit(), nil
			}
			if _, control := i.evalExpression(expr.Body); control != nil {
				switch control.Signal {
				case SignalBreak:
					return unit(), nil
				case SignalContinue:
					continue
				default:
					return nil, control
				}
			}
		}

	case ast.IteratorLoop:
		return i.evalIteratorLoop(expr)

	case ast.FunctionCall:
		return i.evalCall(expr)

	case ast.MemberAccess:
		object, control := i.evalExpression(expr.Object)
		if control != nil {
			return nil, control
		}
		structValue, ok := object.(StructValue)
		if !ok {
			return nil, runtimeError("Cannot access member %s on %s", expr.Member, object)
		}
		for _, field := range structValue.Fields {
			if field.Name == expr.Member {
				return field.Value, nil
			}
		}
		return nil, runtimeError("Unknown field %s on %s", expr.Member, structValue.Name)

	case ast.ArrayCreation:
		return i.evalArrayCreation(expr)

	case ast.StructCreation:
		named, ok := expr.Type.(ast.NamedType)
		if !ok {
			return nil, runtimeError("Cannot construct a value of a primitive type")
		}
		value := StructValue{Name: named.Name}
		for _, field := range expr.Fields {
			fieldValue, control := i.evalExpression(field.Value)
			if control != nil {
				return nil, control
			}
			value.Fields = append(value.Fields, StructField{Name: field.Name, Value: fieldValue})
		}
		return value, nil
	}

	return nil, runtimeError("Unsupported expression")
}

func (i *Interpreter) lookupVariable(name string, id ast.ExpressionID) (Value, *Control) {
	if depth, ok := i.depths[id]; ok {
		if value, ok := i.env.GetAt(depth, name); ok {
			return value, nil
		}
	} else if value, ok := i.globals.Get(name); ok {
		return value, nil
	}
	return nil, runtimeError("Undefined variable: %s", name)
}

// evalBlock runs statements in a fresh frame. A statement that is an
// expression marked as the block's result supplies the block's value;
// otherwise the block is worth the unit value.
func (i *Interpreter) evalBlock(block ast.Block) (Value, *Control) {
	prev := i.env
	i.env = NewEnvironment(prev)
	defer func() { i.env = prev }()

	for _, stmt := range block {
		if expr, ok := stmt.(ast.ExpressionStatement); ok && expr.Result {
			return i.evalExpression(expr.Expression)
		}
		if control := i.execStatement(stmt); control != nil {
			return nil, control
		}
	}
	return unit(), nil
}

func (i *Interpreter) evalBinary(expr ast.BinaryOperation) (Value, *Control) {
	left, control := i.evalExpression(expr.Left)
	if control != nil {
		return nil, control
	}
	right, control := i.evalExpression(expr.Right)
	if control != nil {
		return nil, control
	}

	// Equality is structural and defined across every value type.
	switch expr.Operator {
	case ast.Equal:
		return Boolean(valuesEqual(left, right)), nil
	case ast.NotEqual:
		return Boolean(!valuesEqual(left, right)), nil
	}

	if l, ok := left.(Number); ok {
		if r, ok := right.(Number); ok {
			switch expr.Operator {
			case ast.Add:
				return l + r, nil
			case ast.Subtract:
				return l - r, nil
			case ast.Multiply:
				return l * r, nil
			case ast.Divide:
				if r == 0 {
					return nil, runtimeError("Division by zero")
				}
				return l / r, nil
			case ast.Modulus:
				if r == 0 {
					return nil, runtimeError("Division by zero")
				}
				return Number(math.Mod(float64(l), float64(r))), nil
			case ast.LessThan:
				return Boolean(l < r), nil
			case ast.LessThanOrEqual:
				return Boolean(l <= r), nil
			case ast.GreaterThan:
				return Boolean(l > r), nil
			case ast.GreaterThanOrEqual:
				return Boolean(l >= r), nil
			}
		}
	}

	if l, ok := left.(String); ok {
		if r, ok := right.(String); ok && expr.Operator == ast.Add {
			return l + r, nil
		}
	}

	if l, ok := left.(Boolean); ok {
		// Both operands are always evaluated; && and || do not short-circuit.
		if r, ok := right.(Boolean); ok {
			switch expr.Operator {
			case ast.And:
				return Boolean(l && r), nil
			case ast.Or:
				return Boolean(l || r), nil
			}
		}
	}

	return nil, runtimeError("Unsupported binary operation: %s %s %s", left, expr.Operator, right)
}

func (i *Interpreter) evalIteratorLoop(loop ast.IteratorLoop) (Value, *Control) {
	// The loop variable lives in its own frame around the body, matching the
	// scope the resolver opened for it.
	prev := i.env
	i.env = NewEnvironment(prev)
	defer func() { i.env = prev }()

	iterable, control := i.evalExpression(loop.Iterable)
	if control != nil {
		return nil, control
	}

	var elements []Value
	switch iterable := iterable.(type) {
	case Vector:
		elements = iterable
	case String:
		for _, char := range string(iterable) {
			elements = append(elements, Char(char))
		}
	default:
		return nil, runtimeError("Cannot iterate over %s", iterable)
	}

	for _, element := range elements {
		i.env.Define(loop.Iterator, element)
		if _, control := i.evalExpression(loop.Body); control != nil {
			switch control.Signal {
			case SignalBreak:
				return unit(), nil
			case SignalContinue:
				continue
			default:
				return nil, control
			}
		}
	}
	return unit(), nil
}

func (i *Interpreter) evalCall(call ast.FunctionCall) (Value, *Control) {
	callee, control := i.evalExpression(call.Callee)
	if control != nil {
		return nil, control
	}

	args := make([]Value, 0, len(call.Args))
	for _, arg := range call.Args {
		value, control := i.evalExpression(arg)
		if control != nil {
			return nil, control
		}
		args = append(args, value)
	}

	switch callee := callee.(type) {
	case Builtin:
		return callee.Fn(i, args)
	case FunctionValue:
		return i.callFunction(callee, args)
	}
	return nil, runtimeError("Cannot call %s", callee)
}

// callFunction binds arguments positionally into a fresh frame chained to
// the globals, runs the body, and converts a Return signal crossing the call
// boundary into the call's result. Normal completion yields the body's
// block value.
func (i *Interpreter) callFunction(fn FunctionValue, args []Value) (Value, *Control) {
	if len(args) != len(fn.Decl.Params) {
		return nil, runtimeError("Expected %d arguments but got %d", len(fn.Decl.Params), len(args))
	}

	prev := i.env
	i.env = NewEnvironment(i.globals)
	defer func() { i.env = prev }()

	for n, param := range fn.Decl.Params {
		i.env.Define(param.Name, args[n])
	}

	value, control := i.evalExpression(fn.Decl.Body)
	if control != nil {
		if control.Signal == SignalReturn {
			return control.Value, nil
		}
		return nil, control
	}
	return value, nil
}

func (i *Interpreter) evalArrayCreation(array ast.ArrayCreation) (Value, *Control) {
	size, control := i.evalExpression(array.Size)
	if control != nil {
		return nil, control
	}
	number, ok := size.(Number)
	if !ok || number < 0 || number != Number(math.Trunc(float64(number))) {
		return nil, runtimeError("Invalid array size: %s", size)
	}

	initial, control := i.evalExpression(array.Initial)
	if control != nil {
		return nil, control
	}

	elements := make(Vector, int(number))
	for n := range elements {
		elements[n] = initial
	}
	return elements, nil
}
