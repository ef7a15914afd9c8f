package lexer

// TokenKind classifies a lexical unit.
type TokenKind int

const (
	// keywords
	ImportKeyword TokenKind = iota // import
	FunctionKeyword                // func
	StructKeyword                  // struct
	TypeKeyword                    // type
	NewKeyword                     // new

	ReturnKeyword   // return
	IfKeyword       // if
	ElseKeyword     // else
	LoopKeyword     // loop
	ConstKeyword    // const
	LetKeyword      // let
	BreakKeyword    // break
	ContinueKeyword // continue

	// values
	TrueValue  // true
	FalseValue // false

	StringLiteral  // "hello", "world", etc.
	IntegerLiteral // 0, 1, 2, etc.
	FloatLiteral   // 0.0, 0.1, 0.2, etc.
	CharLiteral    // 'a', 'b', 'c', etc.

	Identifier // variable names, function names, etc.

	// operators
	AddOperator        // +
	SubtractOperator   // -
	MultiplyOperator   // *
	DivideOperator     // /
	ModuloOperator     // %
	AssignmentOperator // =

	AndOperator // &&
	OrOperator  // ||
	NotOperator // !

	Semicolon // ;
	Comma     // ,
	Dot       // .
	Colon     // :
	Arrow     // ->
	Pipeline  // |>

	// comparison
	EqualOperator            // ==
	NotEqualOperator         // !=
	GreaterThanEqualOperator // >=
	LessThanEqualOperator    // <=

	// brackets; greater than and less than are angle brackets
	OpenParenthesis    // (
	CloseParenthesis   // )
	OpenCurlyBracket   // {
	CloseCurlyBracket  // }
	OpenSquareBracket  // [
	CloseSquareBracket // ]
	OpenAngleBracket   // <
	CloseAngleBracket  // >
)

// Token is a classified lexical unit with the 1-based source position where
// it started. Tokens are immutable once produced.
type Token struct {
	Kind   TokenKind
	Line   int
	Column int

	// Text carries the payload of identifier, string and char tokens and the
	// raw spelling of numbers. Int and Float carry the parsed numeric value
	// for IntegerLiteral and FloatLiteral tokens.
	Text  string
	Int   int64
	Float float64
}

var keywords = map[string]TokenKind{
	"import": ImportKeyword,
	"func":   FunctionKeyword,
	"struct": StructKeyword,
	"type":   TypeKeyword,
	"new":    NewKeyword,

	"return":   ReturnKeyword,
	"if":       IfKeyword,
	"else":     ElseKeyword,
	"loop":     LoopKeyword,
	"break":    BreakKeyword,
	"continue": ContinueKeyword,

	"true":  TrueValue,
	"false": FalseValue,

	"const": ConstKeyword,
	"let":   LetKeyword,
}

var symbols = map[string]TokenKind{
	"+": AddOperator,
	"-": SubtractOperator,
	"*": MultiplyOperator,
	"/": DivideOperator,
	"%": ModuloOperator,
	"=": AssignmentOperator,

	">=": GreaterThanEqualOperator,
	"<=": LessThanEqualOperator,
	"==": EqualOperator,
	"!=": NotEqualOperator,

	"&&": AndOperator,
	"||": OrOperator,
	"!":  NotOperator,

	";":  Semicolon,
	",":  Comma,
	".":  Dot,
	":":  Colon,
	"->": Arrow,
	"|>": Pipeline,

	"(": OpenParenthesis,
	")": CloseParenthesis,
	"{": OpenCurlyBracket,
	"}": CloseCurlyBracket,
	"[": OpenSquareBracket,
	"]": CloseSquareBracket,
	"<": OpenAngleBracket,
	">": CloseAngleBracket,
}

var kindNames = map[TokenKind]string{
	ImportKeyword:   "ImportKeyword",
	FunctionKeyword: "FunctionKeyword",
	StructKeyword:   "StructKeyword",
	TypeKeyword:     "TypeKeyword",
	NewKeyword:      "NewKeyword",

	ReturnKeyword:   "ReturnKeyword",
	IfKeyword:       "IfKeyword",
	ElseKeyword:     "ElseKeyword",
	LoopKeyword:     "LoopKeyword",
	ConstKeyword:    "ConstKeyword",
	LetKeyword:      "LetKeyword",
	BreakKeyword:    "BreakKeyword",
	ContinueKeyword: "ContinueKeyword",

	TrueValue:  "TrueValue",
	FalseValue: "FalseValue",

	StringLiteral:  "StringLiteral",
	IntegerLiteral: "IntegerLiteral",
	FloatLiteral:   "FloatLiteral",
	CharLiteral:    "CharLiteral",

	Identifier: "Identifier",

	AddOperator:        "AddOperator",
	SubtractOperator:   "SubtractOperator",
	MultiplyOperator:   "MultiplyOperator",
	DivideOperator:     "DivideOperator",
	ModuloOperator:     "ModuloOperator",
	AssignmentOperator: "AssignmentOperator",

	AndOperator: "AndOperator",
	OrOperator:  "OrOperator",
	NotOperator: "NotOperator",

	Semicolon: "Semicolon",
	Comma:     "Comma",
	Dot:       "Dot",
	Colon:     "Colon",
	Arrow:     "Arrow",
	Pipeline:  "Pipeline",

	EqualOperator:            "EqualOperator",
	NotEqualOperator:         "NotEqualOperator",
	GreaterThanEqualOperator: "GreaterThanEqualOperator",
	LessThanEqualOperator:    "LessThanEqualOperator",

	OpenParenthesis:    "OpenParenthesis",
	CloseParenthesis:   "CloseParenthesis",
	OpenCurlyBracket:   "OpenCurlyBracket",
	CloseCurlyBracket:  "CloseCurlyBracket",
	OpenSquareBracket:  "OpenSquareBracket",
	CloseSquareBracket: "CloseSquareBracket",
	OpenAngleBracket:   "OpenAngleBracket",
	CloseAngleBracket:  "CloseAngleBracket",
}

func (k TokenKind) String() string {
	return kindNames[k]
}

// ReverseFormat renders the token back into source spelling.
func (t Token) ReverseFormat() string {
	switch t.Kind {
	case StringLiteral:
		return "\"" + t.Text + "\""
	case CharLiteral:
		return "'" + t.Text + "'"
	case IntegerLiteral, FloatLiteral, Identifier:
		return t.Text
	}

	for spelling, kind := range keywords {
		if kind == t.Kind {
			return spelling
		}
	}
	for spelling, kind := range symbols {
		if kind == t.Kind {
			return spelling
		}
	}
	return t.Kind.String()
}
