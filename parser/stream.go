package parser

const (
	// EOF is returned by stream accessors once the source is exhausted.
	EOF rune = -1
	// EOL is the normalized end-of-line rune; CRLF sequences collapse to it.
	EOL rune = '\n'
)

// stream is a forward-only cursor over a rune slice. It normalizes CRLF
// sequences to a single EOL on the fly so the rest of the parser never
// has to think about '\r'.
type stream struct {
	source    []rune
	sourceLen int
	curPos    int
}

func newStream(source string) *stream {
	src := []rune(source)
	return &stream{source: src, sourceLen: len(src), curPos: 0}
}

func (str *stream) Src() []rune { return str.source }
func (str *stream) SrcLen() int { return str.sourceLen }

func (str *stream) HasNext() bool { return str.curPos < str.sourceLen }

func (str *stream) CurrentCursorPos() int { return str.curPos }

// SetCursorTo sets the cursor to an absolute position. It does not
// re-derive CRLF collapsing; callers must pass positions obtained from
// this stream.
func (str *stream) SetCursorTo(i int) { str.curPos = i }

// Consume returns the next character and advances the cursor.
func (str *stream) Consume() rune {
	if !str.HasNext() {
		return EOF
	}
	if str.isCRLFAt(str.curPos) {
		str.curPos++
	}
	next := str.source[str.curPos]
	str.curPos++
	return next
}

// Skip advances the cursor n logical characters, where a CRLF sequence
// counts as a single character.
func (str *stream) Skip(n int) {
	if n <= 0 {
		return
	}
	skipped := 0
	for skipped < n {
		target := str.curPos + 1
		if target >= str.sourceLen {
			str.curPos = str.sourceLen
			return
		}
		if str.isCRLFAt(str.curPos) {
			target++
		}
		if target < str.sourceLen-1 && str.isCRLFAt(target) {
			target++
		}
		skipped++
		str.curPos = target
	}
}

// Peek returns the next character without advancing.
func (str *stream) Peek() rune {
	if !str.HasNext() {
		return EOF
	}
	if str.isCRLFAt(str.curPos) {
		return EOL
	}
	return str.source[str.curPos]
}

// PeekNth returns the nth character from the current position (0 is Peek).
func (str *stream) PeekNth(n int) rune {
	if n <= 0 {
		return str.Peek()
	}
	result := EOF
	nth := 0
	offset := 0
	for nth <= n {
		index := str.curPos + offset
		if index >= str.sourceLen {
			return EOF
		}
		if str.isCRLFAt(index) {
			index++
			offset++
		}
		offset++
		nth++
		result = str.source[index]
	}
	return result
}

// PeekUntilWithOffset peeks the characters after the given logical
// offset until terminator matches (exclusive); CRLF sequences collapse
// to a single LF in both the offset accounting and the returned runes.
func (str *stream) PeekUntilWithOffset(offset int, terminator func(char rune) bool) []rune {
	nth := 0
	skip := 0
	for nth < offset && offset != 0 {
		index := str.curPos + skip
		if index >= str.sourceLen {
			return []rune{}
		}
		if str.isCRLFAt(index) {
			skip++
		}
		skip++
		nth++
	}

	var runes []rune
	acc := 0
	for {
		index := str.curPos + skip + acc
		if index >= str.sourceLen {
			break
		}
		crlf := false
		if str.isCRLFAt(index) {
			crlf = true
			index++
		}
		if terminator(str.source[index]) {
			break
		}
		if crlf {
			acc++
		}
		acc++
		runes = append(runes, str.source[index])
	}
	return runes
}

// PeekUntil is PeekUntilWithOffset starting at the current position.
func (str *stream) PeekUntil(terminator func(char rune) bool) []rune {
	return str.PeekUntilWithOffset(0, terminator)
}

func (str *stream) isCRLFAt(index int) bool {
	return str.source[index] == '\r' && index+1 < str.sourceLen && str.source[index+1] == '\n'
}
