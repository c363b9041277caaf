package fluent

import "fmt"

// ResourceConflictError is reported by Bundle.AddResource when a
// message or term id is already defined and overrides are disallowed.
type ResourceConflictError struct {
	Kind string // "message" or "term"
	ID   string
}

func (err *ResourceConflictError) Error() string {
	return fmt.Sprintf("%s '%s' is already defined", err.Kind, err.ID)
}

// UnknownMessageError is reported when a MessageReference names a
// message the Bundle does not have.
type UnknownMessageError struct {
	ID string
}

func (err *UnknownMessageError) Error() string {
	return fmt.Sprintf("unknown message '%s'", err.ID)
}

// UnknownTermError is reported when a TermReference names a term the
// Bundle does not have.
type UnknownTermError struct {
	ID string
}

func (err *UnknownTermError) Error() string {
	return fmt.Sprintf("unknown term '-%s'", err.ID)
}

// UnknownAttributeError is reported when a referenced attribute does
// not exist on the target message or term.
type UnknownAttributeError struct {
	ID   string
	Attr string
}

func (err *UnknownAttributeError) Error() string {
	return fmt.Sprintf("unknown attribute '%s.%s'", err.ID, err.Attr)
}

// NoValueError is reported when a message or term is referenced for
// its value but it has none (attributes-only entry).
type NoValueError struct {
	ID string
}

func (err *NoValueError) Error() string {
	return fmt.Sprintf("'%s' has no value", err.ID)
}

// UnknownVariableError is reported when a VariableReference names a
// variable missing from the caller-supplied arguments. It is never
// reported for a missing variable inside a term reference's parameter
// frame - that case resolves silently to NoValue.
type UnknownVariableError struct {
	Name string
}

func (err *UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown variable '$%s'", err.Name)
}

// UnsupportedVariableTypeError is reported when a caller-supplied
// variable is of a Go type FormatPattern does not know how to coerce.
type UnsupportedVariableTypeError struct {
	Name string
	Type string
}

func (err *UnsupportedVariableTypeError) Error() string {
	return fmt.Sprintf("variable '$%s' has an unsupported type (%s)", err.Name, err.Type)
}

// UnknownFunctionError is reported when a FunctionCall names a
// function neither registered on the Bundle nor a built-in.
type UnknownFunctionError struct {
	Name string
}

func (err *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function '%s'", err.Name)
}

// FunctionThrewError wraps an error returned by a Function.
type FunctionThrewError struct {
	Name string
	Err  error
}

func (err *FunctionThrewError) Error() string {
	return fmt.Sprintf("function '%s' failed: %s", err.Name, err.Err.Error())
}

func (err *FunctionThrewError) Unwrap() error {
	return err.Err
}

// NoDefaultError is reported when a SelectExpression has no variant
// marked as default (the parser itself rejects this at parse time, but
// the resolver's own guard stays for defense-in-depth against
// hand-built ASTs).
type NoDefaultError struct{}

func (err *NoDefaultError) Error() string {
	return "no default variant specified"
}

// CyclicReferenceError is reported when resolving a Pattern would
// require resolving itself, directly or transitively.
type CyclicReferenceError struct {
	ID string
}

func (err *CyclicReferenceError) Error() string {
	return fmt.Sprintf("cyclic reference detected while resolving '%s'", err.ID)
}

// TooManyPlaceablesError is fatal: it aborts the whole FormatPattern
// call rather than substituting a NoValue, since the result could
// otherwise grow unbounded through nested expansion.
type TooManyPlaceablesError struct {
	Limit int
}

func (err *TooManyPlaceablesError) Error() string {
	return fmt.Sprintf("pattern exceeded the placeable limit (%d)", err.Limit)
}
