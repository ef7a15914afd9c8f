package interp

import "fmt"

// builtins are the functions every program can call without declaring them.
func builtins() []Builtin {
	return []Builtin{
		{
			// print writes each argument's display form on its own line.
			Name: "print",
			Fn: func(i *Interpreter, args []Value) (Value, *Control) {
				for _, arg := range args {
					fmt.Fprintln(i.stdout, arg)
				}
				return unit(), nil
			},
		},
	}
}
