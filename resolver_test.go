package fluent

import (
	"strings"
	"testing"
	"time"

	"github.com/corelingo/fluent/parser/ast"
	"golang.org/x/text/language"
)

func TestScopeEnterPatternDetectsReentry(t *testing.T) {
	bundle := NewBundle(language.English)
	scope := newScope(bundle, nil, nil)

	resource, errs := NewResource(`a = hi`)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	pattern := resource.messages[0].Value

	if !scope.enterPattern(pattern, "a") {
		t.Fatalf("expected first enterPattern to succeed")
	}

	var reported []error
	scope.errorsOut = &reported
	if scope.enterPattern(pattern, "a") {
		t.Fatalf("expected re-entering the same pattern to fail")
	}
	if len(reported) != 1 {
		t.Fatalf("expected one reported error, got %v", reported)
	}
	if _, ok := reported[0].(*CyclicReferenceError); !ok {
		t.Fatalf("expected *CyclicReferenceError, got %T", reported[0])
	}

	scope.exitPattern(pattern)
	if _, ok := scope.dirty[pattern]; ok {
		t.Fatalf("expected dirty set to be empty after exitPattern")
	}
}

func TestScopeCountPlaceableRaisesFatalPastLimit(t *testing.T) {
	bundle := NewBundle(language.English)
	scope := newScope(bundle, nil, nil)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected a panic once the placeable cap is exceeded")
		}
		signal, ok := r.(fatalSignal)
		if !ok {
			t.Fatalf("expected a fatalSignal panic, got %T", r)
		}
		if _, ok := signal.err.(*TooManyPlaceablesError); !ok {
			t.Fatalf("expected *TooManyPlaceablesError, got %T", signal.err)
		}
	}()

	for i := 0; i < maxResolvedPlaceables+1; i++ {
		scope.countPlaceable()
	}
	t.Fatalf("expected countPlaceable to panic before reaching this line")
}

func TestResolveSelectExpressionNoDefaultReportsError(t *testing.T) {
	bundle := NewBundle(language.English)
	var reported []error
	scope := newScope(bundle, nil, &reported)

	variants := []*ast.Variant{
		{Key: &ast.Identifier{Name: "other"}, Value: &ast.Pattern{}, Default: false},
	}
	value := resolveDefaultVariant(scope, variants)
	if _, ok := value.(*NoValue); !ok {
		t.Fatalf("expected a NoValue, got %T", value)
	}
	if len(reported) != 1 {
		t.Fatalf("expected one reported error, got %v", reported)
	}
	if _, ok := reported[0].(*NoDefaultError); !ok {
		t.Fatalf("expected *NoDefaultError, got %T", reported[0])
	}
}

func TestUserFunctionIsCallable(t *testing.T) {
	shout := func(positional []Value, named map[string]Value) (Value, error) {
		str, ok := positional[0].(*StringValue)
		if !ok {
			return nil, nil
		}
		return String(strings.ToUpper(str.Value) + "!"), nil
	}

	bundle := newTestBundle(t, `greet = {SHOUT("hi")}`, WithFunctions(map[string]Function{"SHOUT": shout}))
	result, err := bundle.FormatMessage("greet", "", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "HI!" {
		t.Fatalf("got %q, want HI!", result)
	}
}

func TestUserFunctionErrorReportsFunctionThrewError(t *testing.T) {
	boom := func(positional []Value, named map[string]Value) (Value, error) {
		return nil, errBoom
	}

	bundle := newTestBundle(t, `greet = {BOOM("hi")}`, WithFunctions(map[string]Function{"BOOM": boom}))
	var reported []error
	result, err := bundle.FormatMessage("greet", "", nil, &reported)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(reported) != 1 {
		t.Fatalf("expected one reported error, got %v", reported)
	}
	if _, ok := reported[0].(*FunctionThrewError); !ok {
		t.Fatalf("expected *FunctionThrewError, got %T", reported[0])
	}
	if !strings.Contains(result, "BOOM") {
		t.Fatalf("expected placeholder mentioning BOOM in %q", result)
	}
}

func TestNumberBuiltinFormatsFractionDigits(t *testing.T) {
	bundle := newTestBundle(t, `price = {NUMBER($amount, minimumFractionDigits: 2)}`)
	result, err := bundle.FormatMessage("price", "", map[string]interface{}{"amount": 9.5}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "9.50" {
		t.Fatalf("got %q, want 9.50", result)
	}
}

func TestDatetimeBuiltinFormatsDateStyle(t *testing.T) {
	bundle := newTestBundle(t, `when = {DATETIME($at, dateStyle: "long")}`)
	at := time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC)
	result, err := bundle.FormatMessage("when", "", map[string]interface{}{"at": at}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "March 5, 2024" {
		t.Fatalf("got %q, want March 5, 2024", result)
	}
}

func TestUnknownFunctionReportsError(t *testing.T) {
	bundle := newTestBundle(t, `greet = {NOPE("hi")}`)
	var reported []error
	_, err := bundle.FormatMessage("greet", "", nil, &reported)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(reported) != 1 {
		t.Fatalf("expected one reported error, got %v", reported)
	}
	if _, ok := reported[0].(*UnknownFunctionError); !ok {
		t.Fatalf("expected *UnknownFunctionError, got %T", reported[0])
	}
}

func TestUnsupportedVariableTypeFatalWithoutSink(t *testing.T) {
	bundle := newTestBundle(t, `greet = Hi, {$who}!`)
	type unsupported struct{}
	_, err := bundle.FormatMessage("greet", "", map[string]interface{}{"who": unsupported{}}, nil)
	if err == nil {
		t.Fatalf("expected an error")
	}
	if _, ok := err.(*UnsupportedVariableTypeError); !ok {
		t.Fatalf("expected *UnsupportedVariableTypeError, got %T", err)
	}
}

var errBoom = boomError{}

type boomError struct{}

func (boomError) Error() string { return "boom" }
