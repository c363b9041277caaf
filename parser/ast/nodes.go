// Package ast defines the tagged AST node types produced by package parser.
package ast

// Node is the super type every AST node implements.
type Node interface {
	node()
}

// NodeType names the concrete kind of a Node; mostly useful for
// debugging and for the predicates below.
type NodeType string

const (
	TypeResource          NodeType = "Resource"
	TypeIdentifier        NodeType = "Identifier"
	TypeComment           NodeType = "Comment"
	TypeGroupComment      NodeType = "GroupComment"
	TypeResourceComment   NodeType = "ResourceComment"
	TypeMessage           NodeType = "Message"
	TypeTerm              NodeType = "Term"
	TypeAttribute         NodeType = "Attribute"
	TypePattern           NodeType = "Pattern"
	TypeText              NodeType = "TextElement"
	TypePlaceable         NodeType = "Placeable"
	TypeStringLiteral     NodeType = "StringLiteral"
	TypeNumberLiteral     NodeType = "NumberLiteral"
	TypeMessageReference  NodeType = "MessageReference"
	TypeTermReference     NodeType = "TermReference"
	TypeVariableReference NodeType = "VariableReference"
	TypeFunctionReference NodeType = "FunctionReference"
	TypeCallArguments     NodeType = "CallArguments"
	TypeNamedArgument     NodeType = "NamedArgument"
	TypeSelectExpression  NodeType = "SelectExpression"
	TypeVariant           NodeType = "Variant"
	TypeJunk              NodeType = "Junk"
)

// Base is embedded by every AST node to satisfy Node and carry its span.
type Base struct {
	Type NodeType
	Span [2]uint
}

func (*Base) node() {}

// IsComment reports whether typ is one of the three comment levels.
func IsComment(typ NodeType) bool {
	return typ == TypeComment || typ == TypeGroupComment || typ == TypeResourceComment
}

// Resource is the AST node of a whole FTL source; the root of the tree.
type Resource struct {
	Base
	Body []Node // Message, Term, Comment, Junk
}

// Identifier is a bare name, e.g. a message id or an attribute name.
type Identifier struct {
	Base
	Name string
}

// Comment is a single-'#' comment.
type Comment struct {
	Base
	Content string
}

// GroupComment is a double-'#' comment.
type GroupComment struct {
	Base
	Content string
}

// ResourceComment is a triple-'#' comment.
type ResourceComment struct {
	Base
	Content string
}

// Message is a public, addressable translation entry.
type Message struct {
	Base
	ID         *Identifier
	Value      *Pattern
	Attributes []*Attribute
	Comment    *Comment
}

// Term is a private translation entry referenced with a leading '-'.
type Term struct {
	Base
	ID         *Identifier
	Value      *Pattern
	Attributes []*Attribute
	Comment    *Comment
}

// Attribute is a named sub-pattern attached to a Message or Term.
type Attribute struct {
	Base
	ID    *Identifier
	Value *Pattern
}

// Pattern is the text body of a message/term/attribute/variant.
type Pattern struct {
	Base
	Elements []Node // Text or Placeable
}

// Text is a literal run with no placeables.
type Text struct {
	Base
	Value string
}

// Placeable is an expression wrapped in '{ ... }'.
type Placeable struct {
	Base
	Expression Node
}

// StringLiteral is a quoted string literal with escapes already decoded.
type StringLiteral struct {
	Base
	Value string
}

// NumberLiteral is a numeric literal as written in the source.
type NumberLiteral struct {
	Base
	Value string
	// Precision is the number of digits written after the decimal
	// point (0 if the literal has none); it drives minimumFractionDigits.
	Precision int
}

// MessageReference refers to a message, optionally by attribute.
type MessageReference struct {
	Base
	ID        *Identifier
	Attribute *Identifier
}

// TermReference refers to a term, optionally by attribute and with
// parameterizing call arguments.
type TermReference struct {
	Base
	ID        *Identifier
	Attribute *Identifier
	Arguments *CallArguments
}

// VariableReference refers to a caller-supplied or term-frame variable.
type VariableReference struct {
	Base
	ID *Identifier
}

// FunctionReference calls a built-in or user-supplied function.
type FunctionReference struct {
	Base
	ID        *Identifier
	Arguments *CallArguments
}

// CallArguments are the positional/named arguments of a term or function call.
type CallArguments struct {
	Base
	Positional []Node
	Named      []*NamedArgument
}

// NamedArgument binds a name to a literal value in a call.
type NamedArgument struct {
	Base
	Name  *Identifier
	Value Node // StringLiteral or NumberLiteral
}

// SelectExpression branches on a selector among variants, exactly one
// of which is marked Default.
type SelectExpression struct {
	Base
	Selector Node
	Variants []*Variant
}

// Variant is one arm of a SelectExpression.
type Variant struct {
	Base
	Key     Node // Identifier (turned into a string key) or NumberLiteral
	Value   *Pattern
	Default bool
}

// Junk is unparseable content skipped between entries.
type Junk struct {
	Base
	Content     string
	Annotations []string
}
