package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sable-lang/sable/ast"
)

// Value is a runtime value. String returns the display form used by print
// and by diagnostic messages.
type Value interface {
	is_Value()
	String() string
}

type Number float64

func (v Number) is_Value() {}
func (v Number) String() string {
	return strconv.FormatFloat(float64(v), 'f', -1, 64)
}

type String string

func (v String) is_Value()      {}
func (v String) String() string { return string(v) }

type Boolean bool

func (v Boolean) is_Value() {}
func (v Boolean) String() string {
	if v {
		return "true"
	}
	return "false"
}

type Char rune

func (v Char) is_Value()      {}
func (v Char) String() string { return string(rune(v)) }

type Nil struct{}

func (v Nil) is_Value()      {}
func (v Nil) String() string { return "nil" }

type Vector []Value

func (v Vector) is_Value() {}
func (v Vector) String() string {
	var builder strings.Builder
	builder.WriteString("[")
	for _, value := range v {
		builder.WriteString(value.String())
		builder.WriteString(", ")
	}
	builder.WriteString("]")
	return builder.String()
}

// StructField pairs a field name with its value; fields keep the order they
// were written in at the creation site.
type StructField struct {
	Name  string
	Value Value
}

type StructValue struct {
	Name   string
	Fields []StructField
}

func (v StructValue) is_Value() {}
func (v StructValue) String() string {
	var builder strings.Builder
	builder.WriteString(v.Name)
	builder.WriteString(" { ")
	for _, field := range v.Fields {
		builder.WriteString(field.Name)
		builder.WriteString(": ")
		builder.WriteString(field.Value.String())
		builder.WriteString(", ")
	}
	builder.WriteString("}")
	return builder.String()
}

// FunctionValue is a user-declared function bound into an environment.
type FunctionValue struct {
	Decl ast.Function
}

func (v FunctionValue) is_Value()      {}
func (v FunctionValue) String() string { return fmt.Sprintf("<fn %s>", v.Decl.Name) }

// Builtin is a function provided by the interpreter itself.
type Builtin struct {
	Name string
	Fn   func(i *Interpreter, args []Value) (Value, *Control)
}

func (v Builtin) is_Value()      {}
func (v Builtin) String() string { return fmt.Sprintf("<builtin %s>", v.Name) }

// unit is the value of expressions that produce nothing interesting: empty
// blocks, finished loops, an if without a taken branch.
func unit() Value {
	return Number(0)
}

// valuesEqual is the structural comparison behind == and !=. It is defined
// across all value types; functions never compare equal.
func valuesEqual(a, b Value) bool {
	switch a := a.(type) {
	case Number:
		b, ok := b.(Number)
		return ok && a == b
	case String:
		b, ok := b.(String)
		return ok && a == b
	case Boolean:
		b, ok := b.(Boolean)
		return ok && a == b
	case Char:
		b, ok := b.(Char)
		return ok && a == b
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Vector:
		b, ok := b.(Vector)
		if !ok || len(a) != len(b) {
			return false
		}
		for n := range a {
			if !valuesEqual(a[n], b[n]) {
				return false
			}
		}
		return true
	case StructValue:
		b, ok := b.(StructValue)
		if !ok || a.Name != b.Name || len(a.Fields) != len(b.Fields) {
			return false
		}
		for n := range a.Fields {
			if a.Fields[n].Name != b.Fields[n].Name {
				return false
			}
			if !valuesEqual(a.Fields[n].Value, b.Fields[n].Value) {
				return false
			}
		}
		return true
	}
	return false
}
