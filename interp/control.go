package interp

import "fmt"

// Signal is control flow that has to cross expression boundaries: break,
// continue, return, and runtime failure. Evaluation never panics; every step
// can short-circuit by propagating a Control outcome instead.
type Signal int

const (
	SignalBreak Signal = iota
	SignalContinue
	SignalReturn
	SignalRuntimeError
)

type Control struct {
	Signal  Signal
	Value   Value  // set for SignalReturn
	Message string // set for SignalRuntimeError
}

func runtimeError(format string, args ...interface{}) *Control {
	return &Control{
		Signal:  SignalRuntimeError,
		Message: fmt.Sprintf(format, args...),
	}
}
