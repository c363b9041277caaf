package parser

import (
	"testing"

	"github.com/corelingo/fluent/parser/ast"
)

func TestParseSimpleMessage(t *testing.T) {
	resource, errs := New("welcome = Hello, world!\n").Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(resource.Body) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(resource.Body))
	}

	message, ok := resource.Body[0].(*ast.Message)
	if !ok {
		t.Fatalf("expected *ast.Message, got %T", resource.Body[0])
	}
	if message.ID.Name != "welcome" {
		t.Fatalf("unexpected id: %s", message.ID.Name)
	}
	if len(message.Value.Elements) != 1 {
		t.Fatalf("expected a single text element, got %d", len(message.Value.Elements))
	}
	text, ok := message.Value.Elements[0].(*ast.Text)
	if !ok || text.Value != "Hello, world!" {
		t.Fatalf("unexpected pattern element: %#v", message.Value.Elements[0])
	}
}

func TestParseTermWithAttribute(t *testing.T) {
	src := "-brand = Foo 3000\n    .gender = neuter\n"
	resource, errs := New(src).Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	term, ok := resource.Body[0].(*ast.Term)
	if !ok {
		t.Fatalf("expected *ast.Term, got %T", resource.Body[0])
	}
	if term.ID.Name != "brand" {
		t.Fatalf("unexpected id: %s", term.ID.Name)
	}
	if len(term.Attributes) != 1 || term.Attributes[0].ID.Name != "gender" {
		t.Fatalf("unexpected attributes: %#v", term.Attributes)
	}
}

func TestParsePlaceableAndSelectExpression(t *testing.T) {
	src := "msgs = { $n ->\n    [one] You have one message\n   *[other] You have { $n } messages\n}\n"
	resource, errs := New(src).Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	message := resource.Body[0].(*ast.Message)
	placeable := message.Value.Elements[0].(*ast.Placeable)
	sel, ok := placeable.Expression.(*ast.SelectExpression)
	if !ok {
		t.Fatalf("expected select expression, got %T", placeable.Expression)
	}
	if len(sel.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(sel.Variants))
	}
	if !sel.Variants[1].Default {
		t.Fatalf("expected the second variant to be marked default")
	}
}

func TestParseNumberLiteralPrecision(t *testing.T) {
	src := "pi = { 3.1400 }\n"
	resource, errs := New(src).Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	message := resource.Body[0].(*ast.Message)
	placeable := message.Value.Elements[0].(*ast.Placeable)
	num, ok := placeable.Expression.(*ast.NumberLiteral)
	if !ok {
		t.Fatalf("expected number literal, got %T", placeable.Expression)
	}
	if num.Precision != 4 {
		t.Fatalf("expected precision 4, got %d", num.Precision)
	}
}

func TestParseStringEscapes(t *testing.T) {
	src := `msg = { "aAb\"c\\d" }` + "\n"
	resource, errs := New(src).Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	message := resource.Body[0].(*ast.Message)
	placeable := message.Value.Elements[0].(*ast.Placeable)
	str, ok := placeable.Expression.(*ast.StringLiteral)
	if !ok {
		t.Fatalf("expected string literal, got %T", placeable.Expression)
	}
	if str.Value != `aAb"c\d` {
		t.Fatalf("unexpected decoded value: %q", str.Value)
	}
}

func TestParseLoneSurrogateIsReplaced(t *testing.T) {
	src := `msg = { "\uD800" }` + "\n"
	resource, errs := New(src).Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	message := resource.Body[0].(*ast.Message)
	placeable := message.Value.Elements[0].(*ast.Placeable)
	str := placeable.Expression.(*ast.StringLiteral)
	if str.Value != "�" {
		t.Fatalf("expected replacement character, got %q", str.Value)
	}
}

func TestParseTooManyPlaceablesIsAnError(t *testing.T) {
	var src string
	src = "msg ="
	for i := 0; i < 101; i++ {
		src += " {$n}"
	}
	src += "\n"

	_, errs := New(src).Parse()
	if len(errs) == 0 {
		t.Fatalf("expected a parse error for exceeding the placeable cap")
	}
}

func TestParseFunctionMustBeUppercase(t *testing.T) {
	src := "msg = { number($n) }\n"
	_, errs := New(src).Parse()
	if len(errs) == 0 {
		t.Fatalf("expected an error for a lowercase function name")
	}
}

func TestParseJunkIsSkippedAndSurfaced(t *testing.T) {
	src := "this is not valid\nwelcome = Hello!\n"
	resource, errs := New(src).Parse()
	if len(errs) == 0 {
		t.Fatalf("expected at least one parse error for the junk line")
	}

	var sawMessage bool
	for _, entry := range resource.Body {
		if message, ok := entry.(*ast.Message); ok && message.ID.Name == "welcome" {
			sawMessage = true
		}
	}
	if !sawMessage {
		t.Fatalf("expected the valid message after junk to still be parsed")
	}
}

func TestParseIndentationIsStripped(t *testing.T) {
	src := "msg =\n    First line\n    Second line\n"
	resource, errs := New(src).Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	message := resource.Body[0].(*ast.Message)
	text := message.Value.Elements[0].(*ast.Text)
	if text.Value != "First line\nSecond line" {
		t.Fatalf("unexpected pattern text: %q", text.Value)
	}
}
