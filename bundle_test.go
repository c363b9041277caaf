package fluent

import (
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func newTestBundle(t *testing.T, source string, options ...Option) *Bundle {
	t.Helper()
	bundle := NewBundle(language.English, options...)
	resource, errs := NewResource(source)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if conflicts := bundle.AddResource(resource, false); len(conflicts) != 0 {
		t.Fatalf("unexpected resource conflicts: %v", conflicts)
	}
	return bundle
}

func TestFormatMessageWithIsolation(t *testing.T) {
	bundle := newTestBundle(t, `welcome = Hello, {$name}!`)
	result, err := bundle.FormatMessage("welcome", "", map[string]interface{}{"name": "Anna"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Hello, ⁨Anna⁩!"
	if result != want {
		t.Fatalf("got %q, want %q", result, want)
	}
}

func TestFormatMessageWithoutIsolation(t *testing.T) {
	bundle := newTestBundle(t, `welcome = Hello, {$name}!`, WithUseIsolating(false))
	result, err := bundle.FormatMessage("welcome", "", map[string]interface{}{"name": "Anna"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "Hello, Anna!" {
		t.Fatalf("got %q", result)
	}
}

func TestFormatMessageWithTermReference(t *testing.T) {
	bundle := newTestBundle(t, "-brand = Foo 3000\nhi = Welcome to {-brand}!")
	result, err := bundle.FormatMessage("hi", "", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Welcome to ⁨Foo 3000⁩!"
	if result != want {
		t.Fatalf("got %q, want %q", result, want)
	}
}

func TestFormatMessagePluralSelect(t *testing.T) {
	src := "msgs = { $n ->\n    [one] You have one message\n   *[other] You have { $n } messages\n}\n"
	bundle := newTestBundle(t, src)

	one, err := bundle.FormatMessage("msgs", "", map[string]interface{}{"n": 1}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if one != "You have one message" {
		t.Fatalf("got %q", one)
	}

	five, err := bundle.FormatMessage("msgs", "", map[string]interface{}{"n": 5}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "You have ⁨5⁩ messages"
	if five != want {
		t.Fatalf("got %q, want %q", five, want)
	}
}

func TestFormatMessageUnknownVariableReportsError(t *testing.T) {
	bundle := newTestBundle(t, `hi = Hello, {$name}!`)
	var errs []error
	result, err := bundle.FormatMessage("hi", "", nil, &errs)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(errs) != 1 {
		t.Fatalf("expected exactly one reported error, got %v", errs)
	}
	if _, ok := errs[0].(*UnknownVariableError); !ok {
		t.Fatalf("expected *UnknownVariableError, got %T", errs[0])
	}
	want := "Hello, ⁨{$name}⁩!"
	if result != want {
		t.Fatalf("got %q, want %q", result, want)
	}
}

func TestFormatMessageCyclicReference(t *testing.T) {
	bundle := newTestBundle(t, "a = {b}\nb = {a}")
	var errs []error
	result, err := bundle.FormatMessage("a", "", nil, &errs)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(errs) != 1 {
		t.Fatalf("expected exactly one reported error, got %v", errs)
	}
	if _, ok := errs[0].(*CyclicReferenceError); !ok {
		t.Fatalf("expected *CyclicReferenceError, got %T", errs[0])
	}
	if !strings.Contains(result, "{") {
		t.Fatalf("expected a visible placeholder in %q", result)
	}
}

func TestFormatMessageParameterizedTerm(t *testing.T) {
	src := "-thing = { $kind ->\n   *[default] thing\n    [cat] cat\n}\nown = I have a {-thing(kind: \"cat\")}.\n"
	bundle := newTestBundle(t, src)
	result, err := bundle.FormatMessage("own", "", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "I have a ⁨cat⁩."
	if result != want {
		t.Fatalf("got %q, want %q", result, want)
	}
}

func TestFormatMessageNumberLiteralPrecision(t *testing.T) {
	bundle := newTestBundle(t, `pi = { 3.1400 }`)
	result, err := bundle.FormatMessage("pi", "", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "3.1400" {
		t.Fatalf("got %q, want 3.1400", result)
	}
}

func TestFormatMessageMissingVariableInsideTermDoesNotError(t *testing.T) {
	src := "-thing = { $kind ->\n   *[default] thing\n    [cat] cat\n}\nown = I have a {-thing}.\n"
	bundle := newTestBundle(t, src)
	var errs []error
	result, err := bundle.FormatMessage("own", "", nil, &errs)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("expected no reported errors, got %v", errs)
	}
	want := "I have a ⁨thing⁩."
	if result != want {
		t.Fatalf("got %q, want %q", result, want)
	}
}

func TestAddResourceReportsConflicts(t *testing.T) {
	bundle := newTestBundle(t, `hi = Hello!`)
	resource, errs := NewResource(`hi = Hi again!`)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	conflicts := bundle.AddResource(resource, false)
	if len(conflicts) != 1 {
		t.Fatalf("expected one conflict, got %v", conflicts)
	}
	if _, ok := conflicts[0].(*ResourceConflictError); !ok {
		t.Fatalf("expected *ResourceConflictError, got %T", conflicts[0])
	}
}

func TestAddResourceAllowOverrides(t *testing.T) {
	bundle := newTestBundle(t, `hi = Hello!`)
	resource, _ := NewResource(`hi = Hi again!`)
	conflicts := bundle.AddResource(resource, true)
	if len(conflicts) != 0 {
		t.Fatalf("unexpected conflicts with allowOverrides=true: %v", conflicts)
	}
	result, err := bundle.FormatMessage("hi", "", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "Hi again!" {
		t.Fatalf("got %q", result)
	}
}

func TestHasMessageAndGetMessage(t *testing.T) {
	bundle := newTestBundle(t, `hi = Hello!`)
	if !bundle.HasMessage("hi") {
		t.Fatalf("expected HasMessage(hi) to be true")
	}
	if bundle.HasMessage("bye") {
		t.Fatalf("expected HasMessage(bye) to be false")
	}
	if bundle.GetMessage("hi") == nil {
		t.Fatalf("expected GetMessage(hi) to be non-nil")
	}
}

func TestFormatMessageTransform(t *testing.T) {
	bundle := newTestBundle(t, `hi = hello`, WithTransform(strings.ToUpper))
	result, err := bundle.FormatMessage("hi", "", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "HELLO" {
		t.Fatalf("got %q", result)
	}
}
