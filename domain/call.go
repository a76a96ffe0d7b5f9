package domain

import "strings"

// CallKind tells the dispatcher how a database routine has to be invoked.
type CallKind string

const (
	CallUnknown   CallKind = ""
	CallProcedure CallKind = "procedure"
	CallFunction  CallKind = "function"
)

const (
	ProcedurePrefix = "sp_"
	FunctionPrefix  = "fn_"
	QueryPrefix     = "consultar_"
)

// Call is a request to run a stored routine with positional arguments.
type Call struct {
	Name string
	Args []any
}

// Kind classifies the routine by its naming convention.
func (c Call) Kind() CallKind {
	return ClassifyRoutine(c.Name)
}

// Validate checks the shape of the call before anything reaches the database.
func (c Call) Validate() error {
	if c.Name == "" || c.Args == nil {
		return ErrInvalidCall
	}
	return nil
}

// ClassifyRoutine maps a routine name to the way it must be invoked.
func ClassifyRoutine(name string) CallKind {
	switch {
	case strings.HasPrefix(name, ProcedurePrefix):
		return CallProcedure
	case strings.HasPrefix(name, FunctionPrefix), strings.HasPrefix(name, QueryPrefix):
		return CallFunction
	default:
		return CallUnknown
	}
}

// CallResult carries either the confirmation of a procedure or the rows of a function.
type CallResult struct {
	Kind    CallKind
	Message string
	Rows    []map[string]any
}
