// Package ast defines the tree produced by the parser: a Program owning an
// ordered list of declarations, with statements, expressions, and type
// references below it. Each node owns its children outright; the tree has no
// sharing and no cycles, and is never mutated after parsing.
package ast

// ExpressionID uniquely tags every Variable and Assignment expression within
// one parse. It is assigned at parse time and used purely as a lookup key for
// the resolver's depth table.
type ExpressionID uint32

type Program struct {
	Declarations []Declaration
}

// Mutability records whether a binding was introduced with let or const.
type Mutability int

const (
	Mutable Mutability = iota // let
	Immutable                 // const
)

type Declaration interface {
	is_Declaration()
}

type FunctionParameter struct {
	Name string
	Type Type
}

type Function struct {
	Name        string
	GenericArgs []string
	Params      []FunctionParameter
	ReturnType  Type
	Body        Expression // always a Block
}

func (v Function) is_Declaration() {}

type Import struct {
	Path []string
}

func (v Import) is_Declaration() {}

type Struct struct {
	Name        string
	GenericArgs []string
	Elements    []StructElement
}

func (v Struct) is_Declaration() {}

type TypeAlias struct {
	Name        string
	GenericArgs []string
	Alias       Type
}

func (v TypeAlias) is_Declaration() {}

// StructElement is either a field or a nested declaration.
type StructElement interface {
	is_StructElement()
}

type StructField struct {
	Name string
	Type Type
}

func (v StructField) is_StructElement() {}

func (v Function) is_StructElement()  {}
func (v Import) is_StructElement()    {}
func (v Struct) is_StructElement()    {}
func (v TypeAlias) is_StructElement() {}

type Statement interface {
	is_Statement()
}

// ExpressionStatement wraps an expression in statement position. Result marks
// the single, final, semicolon-free statement whose value becomes the
// enclosing block's value; every block has at most one, and always last.
type ExpressionStatement struct {
	Expression Expression
	Result     bool
}

func (v ExpressionStatement) is_Statement() {}

type VariableDeclaration struct {
	Mutability Mutability
	Name       string
	Type       Type
	Value      Expression
}

func (v VariableDeclaration) is_Statement() {}

type Break struct{}

func (v Break) is_Statement() {}

type Continue struct{}

func (v Continue) is_Statement() {}

// Return carries an optional value; a bare return has Value nil.
type Return struct {
	Value Expression
}

func (v Return) is_Statement() {}

// DeclarationStatement nests a declaration in statement position.
type DeclarationStatement struct {
	Decl Declaration
}

func (v DeclarationStatement) is_Statement() {}

type Expression interface {
	is_Expression()
}

type Block []Statement

func (v Block) is_Expression() {}

type NumberLiteral float64

func (v NumberLiteral) is_Expression() {}

type StringLiteral string

func (v StringLiteral) is_Expression() {}

type CharLiteral rune

func (v CharLiteral) is_Expression() {}

type BooleanLiteral bool

func (v BooleanLiteral) is_Expression() {}

type Variable struct {
	Name string
	ID   ExpressionID
}

func (v Variable) is_Expression() {}

type Assignment struct {
	Name  string
	Value Expression
	ID    ExpressionID
}

func (v Assignment) is_Expression() {}

type BinaryOperation struct {
	Left     Expression
	Operator BinaryOperator
	Right    Expression
}

func (v BinaryOperation) is_Expression() {}

type UnaryOperation struct {
	Operator UnaryOperator
	Operand  Expression
}

func (v UnaryOperation) is_Expression() {}

type FunctionCall struct {
	Callee Expression
	Args   []Expression
}

func (v FunctionCall) is_Expression() {}

type MemberAccess struct {
	Object Expression
	Member string
}

func (v MemberAccess) is_Expression() {}

type If struct {
	Condition Expression
	Then      Expression
	Else      Expression // nil when there is no else branch
}

func (v If) is_Expression() {}

type InfiniteLoop struct {
	Body Expression
}

func (v InfiniteLoop) is_Expression() {}

type WhileLoop struct {
	Condition Expression
	Body      Expression
}

func (v WhileLoop) is_Expression() {}

// IteratorLoop binds Iterator to each element of Iterable for one run of
// Body per element.
type IteratorLoop struct {
	Mutability Mutability
	Iterator   string
	Iterable   Expression
	Body       Expression
}

func (v IteratorLoop) is_Expression() {}

// ArrayCreation is the `[type, size] { initial }` form.
type ArrayCreation struct {
	ElementType Type
	Size        Expression
	Initial     Expression
}

func (v ArrayCreation) is_Expression() {}

type StructFieldValue struct {
	Name  string
	Value Expression
}

// StructCreation is the `new Type { field: value, ... }` form. Fields keep
// their source order.
type StructCreation struct {
	Type   Type
	Fields []StructFieldValue
}

func (v StructCreation) is_Expression() {}

type BinaryOperator int

const (
	Add BinaryOperator = iota
	Subtract
	Multiply
	Divide
	Modulus

	And
	Or

	Equal
	NotEqual
	LessThan
	GreaterThan
	LessThanOrEqual
	GreaterThanOrEqual
)

func (op BinaryOperator) String() string {
	switch op {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Modulus:
		return "%"
	case And:
		return "&&"
	case Or:
		return "||"
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	case LessThan:
		return "<"
	case GreaterThan:
		return ">"
	case LessThanOrEqual:
		return "<="
	case GreaterThanOrEqual:
		return ">="
	}
	return "?"
}

type UnaryOperator int

const (
	Negate UnaryOperator = iota
	Not
)

func (op UnaryOperator) String() string {
	if op == Negate {
		return "-"
	}
	return "!"
}

type Type interface {
	is_Type()
}

// Primitive is one of the built-in scalar types.
type Primitive int

const (
	U8 Primitive = iota
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	F32
	F64
	Boolean
	Character
)

func (v Primitive) is_Type() {}

func (v Primitive) String() string {
	switch v {
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case Boolean:
		return "bool"
	case Character:
		return "char"
	}
	return "?"
}

type ArrayType struct {
	Element Type
}

func (v ArrayType) is_Type() {}

// NamedType references a user-defined type, possibly with generic arguments.
type NamedType struct {
	Name     string
	Generics []Type
}

func (v NamedType) is_Type() {}

// NilType is the uninhabited "no value" return type.
type NilType struct{}

func (v NilType) is_Type() {}
