package fluent

import (
	"fmt"
	"strings"

	"github.com/corelingo/fluent/parser/ast"
	"golang.org/x/text/feature/plural"
)

// Bidi isolation marks wrapped around interpolated placeables when
// Bundle.useIsolating is enabled, per the Unicode bidi algorithm.
const (
	fsi = "⁨" // FIRST STRONG ISOLATE
	pdi = "⁩" // POP DIRECTIONAL ISOLATE
)

// resolveExpression evaluates a single Expression node into a Value.
func resolveExpression(scope *Scope, node ast.Node) Value {
	switch expr := node.(type) {
	case *ast.Identifier:
		return &StringValue{Value: expr.Name}
	case *ast.Placeable:
		return resolveExpression(scope, expr.Expression)
	case *ast.StringLiteral:
		return &StringValue{Value: expr.Value}
	case *ast.NumberLiteral:
		parsed, err := parseNumberLiteral(expr.Value)
		if err != nil {
			scope.reportError(fmt.Errorf("invalid number literal '%s': %w", expr.Value, err))
			return &NoValue{Placeholder: expr.Value}
		}
		return &NumberValue{Value: parsed, Options: NumberOptions{MinimumFractionDigits: intPtr(expr.Precision)}}
	case *ast.MessageReference:
		return resolveMessageReference(scope, expr)
	case *ast.TermReference:
		return resolveTermReference(scope, expr)
	case *ast.VariableReference:
		return resolveVariableReference(scope, expr)
	case *ast.FunctionReference:
		return resolveFunctionCall(scope, expr)
	case *ast.SelectExpression:
		return resolveSelectExpression(scope, expr)
	default:
		return &NoValue{Placeholder: "???"}
	}
}

func resolveMessageReference(scope *Scope, ref *ast.MessageReference) Value {
	message, ok := scope.bundle.messages[ref.ID.Name]
	if !ok {
		scope.reportError(&UnknownMessageError{ID: ref.ID.Name})
		return &NoValue{Placeholder: ref.ID.Name}
	}

	if ref.Attribute != nil {
		attribute := findAttribute(message.Attributes, ref.Attribute.Name)
		if attribute == nil {
			scope.reportError(&UnknownAttributeError{ID: ref.ID.Name, Attr: ref.Attribute.Name})
			return &NoValue{Placeholder: ref.ID.Name + "." + ref.Attribute.Name}
		}
		return resolvePattern(scope, attribute.Value)
	}

	if message.Value == nil {
		scope.reportError(&NoValueError{ID: ref.ID.Name})
		return &NoValue{Placeholder: ref.ID.Name}
	}

	return resolvePattern(scope, message.Value)
}

func resolveTermReference(scope *Scope, ref *ast.TermReference) Value {
	term, ok := scope.bundle.terms[ref.ID.Name]
	if !ok {
		scope.reportError(&UnknownTermError{ID: ref.ID.Name})
		return &NoValue{Placeholder: "-" + ref.ID.Name}
	}

	_, named := assembleArguments(scope, ref.Arguments)
	termScope := scope.cloneForTermReference(named)

	if ref.Attribute != nil {
		attribute := findAttribute(term.Attributes, ref.Attribute.Name)
		if attribute == nil {
			scope.reportError(&UnknownAttributeError{ID: "-" + ref.ID.Name, Attr: ref.Attribute.Name})
			return &NoValue{Placeholder: "-" + ref.ID.Name + "." + ref.Attribute.Name}
		}
		return resolvePattern(termScope, attribute.Value)
	}

	if term.Value == nil {
		scope.reportError(&NoValueError{ID: "-" + ref.ID.Name})
		return &NoValue{Placeholder: "-" + ref.ID.Name}
	}

	return resolvePattern(termScope, term.Value)
}

func resolveVariableReference(scope *Scope, ref *ast.VariableReference) Value {
	if scope.insideTermReference {
		if val, ok := scope.params[ref.ID.Name]; ok {
			return val
		}
		// Missing variables inside a term's parameter frame resolve
		// silently; the caller's own $name is simply not visible here.
		return &NoValue{Placeholder: "$" + ref.ID.Name}
	}

	val, ok := scope.variables[ref.ID.Name]
	if !ok {
		scope.reportError(&UnknownVariableError{Name: ref.ID.Name})
		return &NoValue{Placeholder: "$" + ref.ID.Name}
	}
	return val
}

func resolveFunctionCall(scope *Scope, ref *ast.FunctionReference) Value {
	fn, ok := scope.bundle.functions[ref.ID.Name]
	if !ok {
		fn, ok = builtins[ref.ID.Name]
	}
	if !ok {
		scope.reportError(&UnknownFunctionError{Name: ref.ID.Name})
		return &NoValue{Placeholder: ref.ID.Name + "()"}
	}

	positional, named := assembleArguments(scope, ref.Arguments)
	result, err := fn(positional, named)
	if err != nil {
		scope.reportError(&FunctionThrewError{Name: ref.ID.Name, Err: err})
		return &NoValue{Placeholder: ref.ID.Name + "()"}
	}
	return result
}

func resolveSelectExpression(scope *Scope, expr *ast.SelectExpression) Value {
	selector := resolveExpression(scope, expr.Selector)
	if _, ok := selector.(*NoValue); ok {
		return resolveDefaultVariant(scope, expr.Variants)
	}

	for _, variant := range expr.Variants {
		key := resolveExpression(scope, variant.Key)
		if matchesVariant(scope, selector, key) {
			return resolvePattern(scope, variant.Value)
		}
	}

	return resolveDefaultVariant(scope, expr.Variants)
}

func resolveDefaultVariant(scope *Scope, variants []*ast.Variant) Value {
	for _, variant := range variants {
		if variant.Default {
			return resolvePattern(scope, variant.Value)
		}
	}
	scope.reportError(&NoDefaultError{})
	return &NoValue{Placeholder: "???"}
}

// matchesVariant implements spec.md 4.4's variant matching rules:
// string/string equality, number/number equality, or number-selector
// against a string key via plural categorization.
func matchesVariant(scope *Scope, selector, key Value) bool {
	if selStr, ok := selector.(*StringValue); ok {
		if keyStr, ok := key.(*StringValue); ok {
			return selStr.Value == keyStr.Value
		}
		return false
	}

	if selNum, ok := selector.(*NumberValue); ok {
		if keyNum, ok := key.(*NumberValue); ok {
			return selNum.Value == keyNum.Value
		}
		if keyStr, ok := key.(*StringValue); ok {
			category := scope.bundle.pluralCategory(scope, selNum.Value)
			return keyStr.Value == category
		}
		return false
	}

	return false
}

var pluralFormNames = map[plural.Form]string{
	plural.Other: "other",
	plural.Zero:  "zero",
	plural.One:   "one",
	plural.Two:   "two",
	plural.Few:   "few",
	plural.Many:  "many",
}

// resolvePattern resolves pattern against scope. Simple
// (already-plain) string patterns pass straight through transform;
// everything else goes through resolveComplexPattern.
func resolvePattern(scope *Scope, pattern *ast.Pattern) Value {
	if simple, ok := simpleText(pattern); ok {
		return &StringValue{Value: scope.bundle.transform(simple)}
	}
	return resolveComplexPattern(scope, pattern)
}

// simpleText reports whether pattern is a single plain-text element,
// returning its value if so.
func simpleText(pattern *ast.Pattern) (string, bool) {
	if len(pattern.Elements) != 1 {
		return "", false
	}
	text, ok := pattern.Elements[0].(*ast.Text)
	if !ok {
		return "", false
	}
	return text.Value, true
}

func resolveComplexPattern(scope *Scope, pattern *ast.Pattern) Value {
	if !scope.enterPattern(pattern, patternLabel(pattern)) {
		return &NoValue{Placeholder: "???"}
	}
	defer scope.exitPattern(pattern)

	useIsolating := scope.bundle.useIsolating && len(pattern.Elements) > 1

	var out strings.Builder
	for _, element := range pattern.Elements {
		switch el := element.(type) {
		case *ast.Text:
			out.WriteString(scope.bundle.transform(el.Value))
		case *ast.Placeable:
			scope.countPlaceable()
			if useIsolating {
				out.WriteString(fsi)
			}
			value := resolveExpression(scope, el.Expression)
			out.WriteString(value.String(scope))
			if useIsolating {
				out.WriteString(pdi)
			}
		}
	}

	return &StringValue{Value: out.String()}
}

// patternLabel is used only for CyclicReferenceError messages; it has
// no bearing on cycle detection itself, which compares *ast.Pattern
// pointer identity.
func patternLabel(pattern *ast.Pattern) string {
	if len(pattern.Elements) == 0 {
		return "<empty pattern>"
	}
	return fmt.Sprintf("<pattern @%d>", pattern.Span[0])
}

func assembleArguments(scope *Scope, args *ast.CallArguments) ([]Value, map[string]Value) {
	if args == nil {
		return nil, map[string]Value{}
	}

	positional := make([]Value, 0, len(args.Positional))
	for _, arg := range args.Positional {
		positional = append(positional, resolveExpression(scope, arg))
	}

	named := make(map[string]Value, len(args.Named))
	for _, arg := range args.Named {
		named[arg.Name.Name] = resolveExpression(scope, arg.Value)
	}

	return positional, named
}

func findAttribute(attributes []*ast.Attribute, name string) *ast.Attribute {
	for _, attribute := range attributes {
		if attribute.ID.Name == name {
			return attribute
		}
	}
	return nil
}
