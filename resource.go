// Package fluent implements a localization runtime for the Fluent
// (FTL) syntax: parsing resources into messages and terms, and
// formatting their patterns against a Bundle and caller-supplied
// variables.
package fluent

import (
	"github.com/corelingo/fluent/parser"
	"github.com/corelingo/fluent/parser/ast"
)

// Resource is the set of messages and terms extracted from one parsed
// FTL source string.
type Resource struct {
	messages []*ast.Message
	terms    []*ast.Term
}

// NewResource parses source and collects its messages and terms into a
// Resource. Parsing is all-or-nothing per entry: a broken entry is
// skipped as junk (and reported in the returned errors) while every
// other entry in the same source still parses.
func NewResource(source string) (*Resource, []*parser.Error) {
	parsed, errs := parser.New(source).Parse()

	resource := &Resource{
		messages: make([]*ast.Message, 0),
		terms:    make([]*ast.Term, 0),
	}

	for _, entry := range parsed.Body {
		switch typed := entry.(type) {
		case *ast.Message:
			resource.messages = append(resource.messages, typed)
		case *ast.Term:
			resource.terms = append(resource.terms, typed)
		}
	}

	return resource, errs
}

// IsEmpty reports whether no messages and no terms could be parsed
// from the resource's source.
func (resource *Resource) IsEmpty() bool {
	return len(resource.messages) == 0 && len(resource.terms) == 0
}
