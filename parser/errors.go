package parser

import "fmt"

// Error is a syntax error raised while parsing a single entry. It is
// fatal to that entry only; the rest of the resource keeps parsing
// (see Parser.Parse / parseEntryOrJunk).
type Error struct {
	Span    [2]uint
	Message string
}

func (err *Error) Error() string {
	return err.Message
}

func newError(start, end uint, msgFormat string, replacements ...interface{}) *Error {
	return &Error{
		Span:    [2]uint{start, end},
		Message: fmt.Sprintf(msgFormat, replacements...),
	}
}
