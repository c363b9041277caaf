// Package parser implements a recursive, cursor-driven parser for the
// Fluent (FTL) syntax. It favors one-token lookahear and forward-only
// scanning over backtracking, matching the grammar's own design.
package parser

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/corelingo/fluent/parser/ast"
)

// maxPlaceables bounds the number of placeables a single Pattern may
// contain, guarding against quadratic-blowup resources.
const maxPlaceables = 100

// Parser parses a single FTL resource string into an ast.Resource.
type Parser struct {
	str *stream
}

// New creates a parser over source.
func New(source string) *Parser {
	return &Parser{str: newStream(source)}
}

// Parse parses the underlying source into an ast.Resource. It always
// returns a Resource; broken entries are skipped and left out of its
// Body, and one error per broken entry is returned alongside it.
func (parser *Parser) Parse() (*ast.Resource, []*Error) {
	parser.skipBlankBlock()

	var errors []*Error
	var entries []ast.Node
	var lastComment *ast.Comment

	for parser.str.HasNext() {
		entry, err := parser.parseEntryOrJunk()
		if err != nil {
			if pErr, ok := err.(*Error); ok {
				errors = append(errors, pErr)
			} else {
				errors = append(errors, newError(0, 0, err.Error()))
			}
			parser.skipBlankBlock()
			continue
		}

		blankBlock := parser.skipBlankBlock()

		// A comment immediately followed by another entry (no blank
		// line in between) attaches to that entry rather than standing
		// alone.
		if comment, ok := entry.(*ast.Comment); ok && len(blankBlock) == 0 && parser.str.HasNext() {
			lastComment = comment
			continue
		}

		if lastComment != nil {
			switch typed := entry.(type) {
			case *ast.Message:
				typed.Comment = lastComment
				typed.Span[0] = lastComment.Span[0]
			case *ast.Term:
				typed.Comment = lastComment
				typed.Span[0] = lastComment.Span[0]
			default:
				entries = append(entries, lastComment)
			}
			lastComment = nil
		}

		entries = append(entries, entry)
	}

	return &ast.Resource{
		Base: ast.Base{Type: ast.TypeResource, Span: [2]uint{0, uint(parser.str.SrcLen())}},
		Body: entries,
	}, errors
}

// parseEntryOrJunk parses one entry, turning it into ast.Junk (and
// resyncing the cursor to the next plausible entry start) on error.
func (parser *Parser) parseEntryOrJunk() (ast.Node, error) {
	start := parser.str.CurrentCursorPos()

	entry, err := parser.parseEntry()
	if entry != nil {
		err = parser.expect(EOL)
		if err == nil {
			return entry, nil
		}
	}

	errorPos := parser.str.CurrentCursorPos()
	slice := parser.str.Src()[:errorPos]
	lastEOLRaw := strings.LastIndex(string(slice), "\n")
	lastEOL := lastEOLRaw - (len(string(parser.str.Src())) - parser.str.SrcLen())
	if start < lastEOL {
		parser.str.SetCursorTo(lastEOL)
	}

	cur := 0
	parser.str.PeekUntil(func(char rune) bool {
		if char != EOL {
			cur++
			return false
		}
		if !isEntryStart(parser.str.PeekNth(cur + 1)) {
			cur++
			return false
		}
		return true
	})
	parser.str.Skip(cur)

	nextEntryStart := parser.str.CurrentCursorPos()
	if nextEntryStart == len(parser.str.Src()) {
		nextEntryStart--
	}
	content := parser.str.Src()[start : nextEntryStart+1]

	annotation := ""
	if err != nil {
		annotation = err.Error()
	}
	return &ast.Junk{
		Base:        ast.Base{Type: ast.TypeJunk, Span: [2]uint{uint(start), uint(nextEntryStart)}},
		Content:     string(content),
		Annotations: []string{annotation},
	}, err
}

func (parser *Parser) parseEntry() (ast.Node, error) {
	switch parser.str.Peek() {
	case '#':
		return parser.parseComment()
	case '-':
		term, err := parser.parseTerm()
		if term == nil {
			return nil, err
		}
		return term, err
	default:
		message, err := parser.parseMessage()
		if message == nil {
			return nil, err
		}
		return message, err
	}
}

func (parser *Parser) parseComment() (ast.Node, error) {
	start := uint(parser.str.CurrentCursorPos())

	level := -1
	content := ""

lines:
	for {
		if level == -1 {
			offset := 0
			for parser.str.PeekNth(offset) == '#' && level < 2 {
				offset++
				level++
			}
		}
		parser.str.Skip(level + 1)

		peek := parser.str.Peek()
		if peek != EOL {
			if err := parser.expect(' '); err != nil {
				return nil, err
			}
			line := parser.str.PeekUntil(func(char rune) bool { return char == EOL })
			parser.str.Skip(len(line))
			content += string(line)
		}

		for i := 0; i <= level; i++ {
			if parser.str.PeekNth(1+i) != '#' {
				break lines
			}
		}

		next := parser.str.PeekNth(level + 2)
		if next != ' ' && next != EOL {
			break
		}

		content += string(EOL)
		parser.str.Skip(1)
	}

	end := uint(parser.str.CurrentCursorPos())

	switch level {
	case 0:
		return &ast.Comment{Base: ast.Base{Type: ast.TypeComment, Span: [2]uint{start, end}}, Content: content}, nil
	case 1:
		return &ast.GroupComment{Base: ast.Base{Type: ast.TypeGroupComment, Span: [2]uint{start, end}}, Content: content}, nil
	case 2:
		return &ast.ResourceComment{Base: ast.Base{Type: ast.TypeResourceComment, Span: [2]uint{start, end}}, Content: content}, nil
	default:
		panic("unreachable comment level")
	}
}

func (parser *Parser) parseTerm() (*ast.Term, error) {
	start := uint(parser.str.CurrentCursorPos())

	if err := parser.expect('-'); err != nil {
		return nil, err
	}

	id, err := parser.parseIdentifier()
	if err != nil {
		return nil, err
	}

	parser.skipBlankInline()
	if err := parser.expect('='); err != nil {
		return nil, err
	}

	value, err := parser.parseOptionalPattern()
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, newError(start, uint(parser.str.CurrentCursorPos()), "a pattern is required for terms")
	}

	attributes, err := parser.parseAttributes()
	if err != nil {
		return nil, err
	}

	return &ast.Term{
		Base:       ast.Base{Type: ast.TypeTerm, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		ID:         id,
		Value:      value,
		Attributes: attributes,
	}, nil
}

func (parser *Parser) parseMessage() (*ast.Message, error) {
	start := uint(parser.str.CurrentCursorPos())

	id, err := parser.parseIdentifier()
	if err != nil {
		return nil, err
	}

	parser.skipBlankInline()
	if err := parser.expect('='); err != nil {
		return nil, err
	}

	value, err := parser.parseOptionalPattern()
	if err != nil {
		return nil, err
	}

	var attrErr error
	beforeAttributes := parser.str.CurrentCursorPos()
	attributes, err := parser.parseAttributes()
	if err != nil {
		parser.str.SetCursorTo(beforeAttributes)
		attrErr = err
		attributes = nil
	}
	if attributes == nil {
		attributes = []*ast.Attribute{}
	}

	if value == nil && len(attributes) == 0 {
		return nil, newError(start, uint(parser.str.CurrentCursorPos()), "message entries may not be completely blank")
	}

	return &ast.Message{
		Base:       ast.Base{Type: ast.TypeMessage, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		ID:         id,
		Value:      value,
		Attributes: attributes,
	}, attrErr
}

// parseOptionalPattern parses a Pattern if one follows, returning nil
// if the entry has none (attributes alone are enough for a message).
func (parser *Parser) parseOptionalPattern() (*ast.Pattern, error) {
	blank := parser.peekBlankInline()
	firstChar := parser.str.PeekNth(len(blank))

	if firstChar == EOF {
		return nil, nil
	}

	if firstChar != EOL {
		parser.str.Skip(len(blank))
		return parser.parsePattern(false)
	}

	_, lenBlank := parser.peekBlankBlock()
	blankTargetLine := parser.str.PeekUntilWithOffset(lenBlank, func(char rune) bool { return char != ' ' })
	first := parser.str.PeekNth(lenBlank + len(blankTargetLine))

	if first != '{' && (len(blankTargetLine) == 0 || anyOf(first, '}', '.', '[', '*')) {
		return nil, nil
	}

	parser.str.Skip(lenBlank)
	return parser.parsePattern(true)
}

// indent is an ephemeral AST node used only while parsePattern is
// trimming common leading whitespace; it never survives into the final tree.
type indent struct {
	ast.Base
	Value string
}

// parsePattern parses the elements of a Pattern, trimming the common
// indentation shared across its continuation lines, and enforces the
// per-pattern placeable cap.
func (parser *Parser) parsePattern(block bool) (*ast.Pattern, error) {
	start := uint(parser.str.CurrentCursorPos())

	commonIndent := math.MaxInt32
	var elements []ast.Node
	placeables := 0

	if block {
		blank := parser.peekBlankInline()
		commonIndent = len(blank)
		parser.str.Skip(len(blank))
		elements = append(elements, &indent{
			Base:  ast.Base{Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
			Value: string(blank),
		})
	}

	for parser.str.HasNext() {
		peek := parser.str.Peek()
		switch {
		case peek == '{':
			placeables++
			if placeables > maxPlaceables {
				pos := uint(parser.str.CurrentCursorPos())
				return nil, newError(pos, pos, "too many placeables in a single pattern (limit is %d)", maxPlaceables)
			}
			placeable, err := parser.parsePlaceable()
			if err != nil {
				return nil, err
			}
			elements = append(elements, placeable)
		case peek == '}':
			pos := uint(parser.str.CurrentCursorPos())
			return nil, newError(pos, pos, "unexpected '}'")
		case peek == EOL:
			indentStart := uint(parser.str.CurrentCursorPos())
			blankBlock, lenBlankBlock := parser.peekBlankBlock()
			blankInline := parser.str.PeekUntilWithOffset(lenBlankBlock, func(char rune) bool { return char != ' ' })
			first := parser.str.PeekNth(lenBlankBlock + len(blankInline))
			if first != '{' && (len(blankInline) == 0 || anyOf(first, '}', '.', '[', '*')) {
				goto done
			}
			commonIndent = minInt(commonIndent, len(blankInline))
			parser.str.Skip(lenBlankBlock + len(blankInline))
			elements = append(elements, &indent{
				Base:  ast.Base{Span: [2]uint{indentStart, uint(parser.str.CurrentCursorPos())}},
				Value: string(blankBlock) + string(blankInline),
			})
		default:
			text, err := parser.parseText()
			if err != nil {
				return nil, err
			}
			elements = append(elements, text)
		}
	}
done:

	trimmed := make([]ast.Node, 0, len(elements))
	for _, element := range elements {
		if placeable, ok := element.(*ast.Placeable); ok {
			trimmed = append(trimmed, placeable)
			continue
		}

		if in, ok := element.(*indent); ok {
			if commonIndent > len(in.Value) {
				commonIndent = len(in.Value)
			}
			in.Value = in.Value[:len(in.Value)-commonIndent]
			if len(in.Value) == 0 {
				continue
			}
		}

		if len(trimmed) > 0 {
			if text, ok := trimmed[len(trimmed)-1].(*ast.Text); ok {
				var currentValue string
				var endSpan uint
				switch cur := element.(type) {
				case *ast.Text:
					currentValue = cur.Value
					endSpan = cur.Span[1]
				case *indent:
					currentValue = cur.Value
					endSpan = cur.Span[1]
				}
				text.Value += currentValue
				text.Span[1] = endSpan
				continue
			}
		}

		if in, ok := element.(*indent); ok {
			element = &ast.Text{Base: ast.Base{Type: ast.TypeText, Span: in.Span}, Value: in.Value}
		}

		trimmed = append(trimmed, element)
	}

	if len(trimmed) > 0 {
		if text, ok := trimmed[len(trimmed)-1].(*ast.Text); ok {
			text.Value = strings.TrimRightFunc(text.Value, func(char rune) bool { return char == ' ' })
			if text.Value == "" {
				trimmed = trimmed[:len(trimmed)-1]
			}
		}
	}

	return &ast.Pattern{
		Base:     ast.Base{Type: ast.TypePattern, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		Elements: trimmed,
	}, nil
}

func (parser *Parser) parseText() (*ast.Text, error) {
	start := uint(parser.str.CurrentCursorPos())

	buffer := ""
	for parser.str.HasNext() {
		peek := parser.str.Peek()
		if peek == '{' || peek == '}' || peek == EOL {
			break
		}
		buffer += string(parser.str.Consume())
	}

	return &ast.Text{
		Base:  ast.Base{Type: ast.TypeText, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		Value: buffer,
	}, nil
}

func (parser *Parser) parsePlaceable() (*ast.Placeable, error) {
	start := uint(parser.str.CurrentCursorPos())

	if err := parser.expect('{'); err != nil {
		return nil, err
	}
	parser.skipBlank()

	expression, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}

	if err := parser.expect('}'); err != nil {
		return nil, err
	}

	return &ast.Placeable{
		Base:       ast.Base{Type: ast.TypePlaceable, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		Expression: expression,
	}, nil
}

func (parser *Parser) parseExpression() (ast.Node, error) {
	start := uint(parser.str.CurrentCursorPos())

	selector, err := parser.parseInlineExpression()
	if err != nil {
		return nil, err
	}

	parser.skipBlank()

	if !(parser.str.Peek() == '-' && parser.str.PeekNth(1) == '>') {
		if term, ok := selector.(*ast.TermReference); ok && term.Attribute != nil {
			return nil, newError(start, uint(parser.str.CurrentCursorPos()), "term attribute references are not allowed in placeables")
		}
		return selector, nil
	}

	if _, ok := selector.(*ast.MessageReference); ok {
		return nil, newError(start, uint(parser.str.CurrentCursorPos()), "message references are not allowed as selectors")
	}
	if _, ok := selector.(*ast.Placeable); ok {
		return nil, newError(start, uint(parser.str.CurrentCursorPos()), "placeables are not allowed as selectors")
	}
	if term, ok := selector.(*ast.TermReference); ok && term.Attribute == nil {
		return nil, newError(start, uint(parser.str.CurrentCursorPos()), "normal term references are not allowed as selectors; consider using a term attribute reference instead")
	}

	parser.str.Skip(2)
	parser.skipBlankInline()

	if err := parser.expect(EOL); err != nil {
		return nil, err
	}

	variants, err := parser.parseVariants()
	if err != nil {
		return nil, err
	}

	return &ast.SelectExpression{
		Base:     ast.Base{Type: ast.TypeSelectExpression, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		Selector: selector,
		Variants: variants,
	}, nil
}

func (parser *Parser) parseInlineExpression() (ast.Node, error) {
	start := uint(parser.str.CurrentCursorPos())

	peek := parser.str.Peek()

	if peek == '{' {
		return parser.parsePlaceable()
	}

	if unicode.IsNumber(peek) || (peek == '-' && unicode.IsNumber(parser.str.PeekNth(1))) {
		return parser.parseNumber()
	}

	if peek == '"' {
		return parser.parseString()
	}

	if peek == '$' {
		parser.str.Skip(1)
		identifier, err := parser.parseIdentifier()
		if err != nil {
			return nil, err
		}
		return &ast.VariableReference{
			Base: ast.Base{Type: ast.TypeVariableReference, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
			ID:   identifier,
		}, nil
	}

	if peek == '-' {
		parser.str.Skip(1)
		identifier, err := parser.parseIdentifier()
		if err != nil {
			return nil, err
		}

		var attribute *ast.Identifier
		if parser.str.Peek() == '.' {
			parser.str.Skip(1)
			attribute, err = parser.parseIdentifier()
			if err != nil {
				return nil, err
			}
		}

		var arguments *ast.CallArguments
		blank := parser.peekBlank()
		if parser.str.PeekNth(len(blank)) == '(' {
			parser.str.Skip(len(blank))
			arguments, err = parser.parseCallArguments()
			if err != nil {
				return nil, err
			}
		}

		return &ast.TermReference{
			Base:      ast.Base{Type: ast.TypeTermReference, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
			ID:        identifier,
			Attribute: attribute,
			Arguments: arguments,
		}, nil
	}

	if !isIdentifierStart(peek) {
		return nil, newError(start, uint(parser.str.CurrentCursorPos()), "no inline expression")
	}

	idStart := uint(parser.str.CurrentCursorPos())
	identifier, err := parser.parseIdentifier()
	if err != nil {
		return nil, err
	}

	blank := parser.peekBlank()
	if parser.str.PeekNth(len(blank)) == '(' {
		if hasLowercase([]rune(identifier.Name)) {
			return nil, newError(idStart, uint(parser.str.CurrentCursorPos()), "function names must be all upper-case")
		}

		parser.str.Skip(len(blank))
		arguments, err := parser.parseCallArguments()
		if err != nil {
			return nil, err
		}

		return &ast.FunctionReference{
			Base:      ast.Base{Type: ast.TypeFunctionReference, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
			ID:        identifier,
			Arguments: arguments,
		}, nil
	}

	var attribute *ast.Identifier
	if parser.str.Peek() == '.' {
		parser.str.Skip(1)
		attribute, err = parser.parseIdentifier()
		if err != nil {
			return nil, err
		}
	}

	return &ast.MessageReference{
		Base:      ast.Base{Type: ast.TypeMessageReference, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		ID:        identifier,
		Attribute: attribute,
	}, nil
}

func (parser *Parser) parseCallArguments() (*ast.CallArguments, error) {
	start := uint(parser.str.CurrentCursorPos())

	positional := []ast.Node{}
	named := []*ast.NamedArgument{}
	names := make(map[string]bool)

	if err := parser.expect('('); err != nil {
		return nil, err
	}
	parser.skipBlank()

	for {
		if parser.str.Peek() == ')' {
			break
		}

		argStart := uint(parser.str.CurrentCursorPos())
		argument, err := parser.parseCallArgument()
		if err != nil {
			return nil, err
		}

		if namedArg, ok := argument.(*ast.NamedArgument); ok {
			if names[namedArg.Name.Name] {
				return nil, newError(argStart, uint(parser.str.CurrentCursorPos()), "argument name already satisfied")
			}
			names[namedArg.Name.Name] = true
			named = append(named, namedArg)
		} else if len(named) > 0 {
			return nil, newError(argStart, uint(parser.str.CurrentCursorPos()), "positional arguments may not follow named ones")
		} else {
			positional = append(positional, argument)
		}

		parser.skipBlank()

		if parser.str.Peek() == ',' {
			parser.str.Skip(1)
			parser.skipBlank()
			continue
		}

		break
	}

	if err := parser.expect(')'); err != nil {
		return nil, err
	}

	return &ast.CallArguments{
		Base:       ast.Base{Type: ast.TypeCallArguments, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		Positional: positional,
		Named:      named,
	}, nil
}

func (parser *Parser) parseCallArgument() (ast.Node, error) {
	start := uint(parser.str.CurrentCursorPos())

	expression, err := parser.parseInlineExpression()
	if err != nil {
		return nil, err
	}
	parser.skipBlank()

	if parser.str.Peek() != ':' {
		return expression, nil
	}

	exp, ok := expression.(*ast.MessageReference)
	if !ok || exp.Attribute != nil {
		return nil, newError(start, uint(parser.str.CurrentCursorPos()), "argument name is no simple identifier")
	}

	parser.str.Skip(1)
	parser.skipBlank()

	value, err := parser.parseLiteral()
	if err != nil {
		return nil, err
	}

	return &ast.NamedArgument{
		Base:  ast.Base{Type: ast.TypeNamedArgument, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		Name:  exp.ID,
		Value: value,
	}, nil
}

func (parser *Parser) parseVariants() ([]*ast.Variant, error) {
	start := uint(parser.str.CurrentCursorPos())

	var variants []*ast.Variant
	setDefault := false

	parser.skipBlank()

	peek := parser.str.Peek()
	for peek == '[' || (peek == '*' && parser.str.PeekNth(1) == '[') {
		variantStart := uint(parser.str.CurrentCursorPos())

		isDefault := false
		if peek == '*' {
			if setDefault {
				return nil, newError(variantStart, variantStart, "only one default select variant is allowed")
			}
			setDefault = true
			isDefault = true
			parser.str.Skip(1)
		}

		if err := parser.expect('['); err != nil {
			return nil, err
		}
		parser.skipBlank()

		key, err := parser.parseVariantKey()
		if err != nil {
			return nil, err
		}
		parser.skipBlank()

		if err := parser.expect(']'); err != nil {
			return nil, err
		}

		pattern, err := parser.parseOptionalPattern()
		if err != nil {
			return nil, err
		}
		if pattern == nil {
			return nil, newError(variantStart, uint(parser.str.CurrentCursorPos()), "a value for the select variant is required")
		}

		variants = append(variants, &ast.Variant{
			Base:    ast.Base{Type: ast.TypeVariant, Span: [2]uint{variantStart, uint(parser.str.CurrentCursorPos())}},
			Key:     key,
			Value:   pattern,
			Default: isDefault,
		})

		if err := parser.expect(EOL); err != nil {
			return nil, err
		}
		parser.skipBlank()

		peek = parser.str.Peek()
	}

	if len(variants) == 0 {
		return nil, newError(start, uint(parser.str.CurrentCursorPos()), "at least one variant is required")
	}
	if !setDefault {
		return nil, newError(start, uint(parser.str.CurrentCursorPos()), "a default variant is required")
	}

	return variants, nil
}

func (parser *Parser) parseVariantKey() (ast.Node, error) {
	peek := parser.str.Peek()

	if peek == EOL {
		pos := uint(parser.str.CurrentCursorPos())
		return nil, newError(pos, pos, "no variant key was given")
	}

	if unicode.IsNumber(peek) || peek == '-' {
		return parser.parseNumber()
	}

	return parser.parseIdentifier()
}

func (parser *Parser) parseAttributes() ([]*ast.Attribute, error) {
	var attributes []*ast.Attribute

	blank := parser.peekBlank()
	for parser.str.PeekNth(len(blank)) == '.' {
		parser.str.Skip(len(blank))

		attribute, err := parser.parseAttribute()
		if err != nil {
			return nil, err
		}
		attributes = append(attributes, attribute)

		blank = parser.peekBlank()
	}

	return attributes, nil
}

func (parser *Parser) parseAttribute() (*ast.Attribute, error) {
	start := uint(parser.str.CurrentCursorPos())

	if err := parser.expect('.'); err != nil {
		return nil, err
	}

	identifier, err := parser.parseIdentifier()
	if err != nil {
		return nil, err
	}

	parser.skipBlankInline()
	if err := parser.expect('='); err != nil {
		return nil, err
	}

	value, err := parser.parseOptionalPattern()
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, newError(start, uint(parser.str.CurrentCursorPos()), "a value for the attribute is required")
	}

	return &ast.Attribute{
		Base:  ast.Base{Type: ast.TypeAttribute, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		ID:    identifier,
		Value: value,
	}, nil
}

func (parser *Parser) parseLiteral() (ast.Node, error) {
	peek := parser.str.Peek()

	if unicode.IsNumber(peek) || peek == '-' {
		return parser.parseNumber()
	}
	if peek == '"' {
		return parser.parseString()
	}

	pos := uint(parser.str.CurrentCursorPos())
	return nil, newError(pos, pos, "invalid literal beginning (-, 0-9 or \" required)")
}

func (parser *Parser) parseNumber() (*ast.NumberLiteral, error) {
	start := uint(parser.str.CurrentCursorPos())

	raw := ""
	precision := 0

	if parser.str.Peek() == '-' {
		raw += string(parser.str.Consume())
	}

	for unicode.IsNumber(parser.str.Peek()) {
		raw += string(parser.str.Consume())
	}

	if parser.str.Peek() == '.' {
		raw += string(parser.str.Consume())
		hasDecimal := false
		for unicode.IsNumber(parser.str.Peek()) {
			hasDecimal = true
			precision++
			raw += string(parser.str.Consume())
		}
		if !hasDecimal {
			pos := uint(parser.str.CurrentCursorPos())
			return nil, newError(pos, pos, "no numbers after the decimal point")
		}
	}

	return &ast.NumberLiteral{
		Base:      ast.Base{Type: ast.TypeNumberLiteral, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		Value:     raw,
		Precision: precision,
	}, nil
}

func (parser *Parser) parseString() (*ast.StringLiteral, error) {
	start := uint(parser.str.CurrentCursorPos())

	if err := parser.expect('"'); err != nil {
		return nil, err
	}

	var buffer strings.Builder
	for parser.str.HasNext() && parser.str.Peek() != '"' && parser.str.Peek() != EOL {
		if parser.str.Peek() == '\\' {
			char, err := parser.parseEscapeSequence()
			if err != nil {
				return nil, err
			}
			buffer.WriteRune(char)
		} else {
			buffer.WriteRune(parser.str.Consume())
		}
	}

	if err := parser.expect('"'); err != nil {
		return nil, err
	}

	return &ast.StringLiteral{
		Base:  ast.Base{Type: ast.TypeStringLiteral, Span: [2]uint{start, uint(parser.str.CurrentCursorPos())}},
		Value: buffer.String(),
	}, nil
}

// parseEscapeSequence decodes one '\...' sequence into its rune value.
// Lone surrogates produced by \u/\U are replaced with U+FFFD.
func (parser *Parser) parseEscapeSequence() (rune, error) {
	if err := parser.expect('\\'); err != nil {
		return 0, err
	}

	peek := parser.str.Peek()
	switch peek {
	case '\\', '"':
		return parser.str.Consume(), nil
	case 'u':
		return parser.parseUnicodeEscapeSequence(4)
	case 'U':
		return parser.parseUnicodeEscapeSequence(6)
	default:
		pos := uint(parser.str.CurrentCursorPos())
		return 0, newError(pos, pos, "unknown escape sequence")
	}
}

func (parser *Parser) parseUnicodeEscapeSequence(digits int) (rune, error) {
	char := 'u'
	if digits == 6 {
		char = 'U'
	}

	if err := parser.expect(char); err != nil {
		return 0, err
	}

	raw := ""
	for i := 0; i < digits; i++ {
		peek := parser.str.Peek()
		if !((peek >= '0' && peek <= '9') || (peek >= 'a' && peek <= 'f') || (peek >= 'A' && peek <= 'F')) {
			pos := uint(parser.str.CurrentCursorPos())
			return 0, newError(pos, pos, "no valid HEX character (0-9a-fA-F)")
		}
		raw += string(parser.str.Consume())
	}

	value, err := strconv.ParseInt(raw, 16, 32)
	if err != nil {
		pos := uint(parser.str.CurrentCursorPos())
		return 0, newError(pos, pos, "invalid unicode escape sequence")
	}

	codePoint := rune(value)
	if codePoint >= 0xD800 && codePoint <= 0xDFFF {
		return 0xFFFD, nil
	}
	return codePoint, nil
}

func (parser *Parser) parseIdentifier() (*ast.Identifier, error) {
	start := uint(parser.str.CurrentCursorPos())

	startChar := parser.str.Peek()
	if !isIdentifierStart(startChar) {
		return nil, newError(start, start, "invalid identifier start character (only a-zA-Z are allowed)")
	}

	id := string(startChar)
	parser.str.Skip(1)

	for {
		peek := parser.str.Peek()
		if !isIdentifierFollowing(peek) {
			break
		}
		id += string(peek)
		parser.str.Skip(1)
	}

	end := uint(parser.str.CurrentCursorPos())

	return &ast.Identifier{
		Base: ast.Base{Type: ast.TypeIdentifier, Span: [2]uint{start, end}},
		Name: id,
	}, nil
}

func (parser *Parser) peekBlankInline() []rune {
	return parser.str.PeekUntil(func(char rune) bool { return char != ' ' })
}

func (parser *Parser) skipBlankInline() []rune {
	blank := parser.peekBlankInline()
	parser.str.Skip(len(blank))
	return blank
}

func (parser *Parser) peekBlankBlock() ([]rune, int) {
	blank := ""
	offset := 0
	for {
		blankInline := parser.str.PeekUntilWithOffset(offset, func(char rune) bool { return char != ' ' })
		if parser.str.PeekNth(offset+len(blankInline)) == EOL {
			blank += string(EOL)
			offset += len(blankInline) + 1
		} else {
			break
		}
	}
	return []rune(blank), offset
}

func (parser *Parser) skipBlankBlock() []rune {
	blank, blankLen := parser.peekBlankBlock()
	parser.str.Skip(blankLen)
	return blank
}

func (parser *Parser) peekBlank() []rune {
	return parser.str.PeekUntil(func(char rune) bool { return char != ' ' && char != EOL })
}

func (parser *Parser) skipBlank() []rune {
	blank := parser.peekBlank()
	parser.str.Skip(len(blank))
	return blank
}

// expect consumes runes iff they match the stream exactly, a single
// EOL also matching EOF (the last line of a source needs no trailing newline).
func (parser *Parser) expect(runes ...rune) error {
	if len(runes) == 1 && runes[0] == EOL && parser.str.Peek() == EOF {
		return nil
	}
	found := 0
	for _, char := range runes {
		if parser.str.PeekNth(found) != char {
			pos := uint(parser.str.CurrentCursorPos())
			return newError(pos, pos, "'%s' expected", string(char))
		}
		found++
	}
	parser.str.Skip(found)
	return nil
}
