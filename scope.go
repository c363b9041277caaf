package fluent

import "github.com/corelingo/fluent/parser/ast"

// Scope holds the state of a single Bundle.FormatPattern invocation: the
// caller's variables, an optional error sink, the set of patterns
// currently being resolved (cycle guard), an optional term-reference
// parameter frame, and a placeable counter. A Scope must not outlive
// the FormatPattern call that created it, and must not be shared across
// concurrent calls.
type Scope struct {
	bundle    *Bundle
	variables map[string]Value

	// params, when insideTermReference is true, is the parameter frame
	// installed by the enclosing TermReference; VariableReference
	// resolution consults it instead of variables.
	params              map[string]Value
	insideTermReference bool

	// errorsOut is the caller-supplied error sink. A nil pointer means
	// "no sink" - reportError raises a fatal signal instead of
	// appending, per spec: without a sink the resolver re-raises.
	errorsOut *[]error

	// dirty is shared across a clone chain (cloneForTermReference
	// scopes see the very same map) so that a cycle through a term
	// reference is detected exactly like one through a message.
	dirty map[*ast.Pattern]struct{}

	// placeables is shared across a clone chain; it counts every
	// placeable resolved anywhere during this FormatPattern call.
	placeables *int
}

// fatalSignal is panicked by Scope.reportError (no sink) and always by
// Scope.raiseFatal; Bundle.FormatPattern recovers it at the top level.
type fatalSignal struct {
	err error
}

func newScope(bundle *Bundle, variables map[string]Value, errorsOut *[]error) *Scope {
	count := 0
	return &Scope{
		bundle:     bundle,
		variables:  variables,
		errorsOut:  errorsOut,
		dirty:      make(map[*ast.Pattern]struct{}),
		placeables: &count,
	}
}

// reportError appends err to the caller's error sink, or - if the
// caller supplied none - aborts the whole FormatPattern call with err.
func (scope *Scope) reportError(err error) {
	if scope.errorsOut != nil {
		*scope.errorsOut = append(*scope.errorsOut, err)
		return
	}
	panic(fatalSignal{err})
}

// raiseFatal always aborts the FormatPattern call, regardless of
// whether an error sink was supplied (used for TooManyPlaceablesError).
func (scope *Scope) raiseFatal(err error) {
	panic(fatalSignal{err})
}

// cloneForTermReference returns a child Scope for resolving a term's
// pattern: it shares the bundle, error sink, dirty set and placeable
// counter with scope, but installs params as the variable frame that
// VariableReference resolution consults.
func (scope *Scope) cloneForTermReference(params map[string]Value) *Scope {
	return &Scope{
		bundle:              scope.bundle,
		variables:           scope.variables,
		params:              params,
		insideTermReference: true,
		errorsOut:           scope.errorsOut,
		dirty:               scope.dirty,
		placeables:          scope.placeables,
	}
}

// enterPattern marks pattern as currently resolving, reporting a
// CyclicReferenceError (and returning false) if it already is.
func (scope *Scope) enterPattern(pattern *ast.Pattern, id string) bool {
	if _, ok := scope.dirty[pattern]; ok {
		scope.reportError(&CyclicReferenceError{ID: id})
		return false
	}
	scope.dirty[pattern] = struct{}{}
	return true
}

// exitPattern clears pattern's dirty bit; it must be called on every
// exit path, including fatal ones.
func (scope *Scope) exitPattern(pattern *ast.Pattern) {
	delete(scope.dirty, pattern)
}

// countPlaceable increments the shared placeable counter, raising
// TooManyPlaceablesError once it exceeds maxResolvedPlaceables.
func (scope *Scope) countPlaceable() bool {
	*scope.placeables++
	if *scope.placeables > maxResolvedPlaceables {
		scope.raiseFatal(&TooManyPlaceablesError{Limit: maxResolvedPlaceables})
		return false
	}
	return true
}

// memoizeIntlObject is a thin forward to Bundle.memoizeIntlObject; it
// exists on Scope because spec callers reach formatters through the
// Scope they already have in hand while resolving an expression.
func (scope *Scope) memoizeIntlObject(class, fingerprint string, construct func() interface{}) interface{} {
	return scope.bundle.memoizeIntlObject(class, fingerprint, construct)
}

// maxResolvedPlaceables bounds the number of placeables a single
// FormatPattern call may resolve across its whole reference graph,
// mirroring the parser's own per-pattern cap.
const maxResolvedPlaceables = 100
