package parser

import "unicode"

// isEntryStart reports whether char may start a new top-level entry.
func isEntryStart(char rune) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || char == '#' || char == '-'
}

// isIdentifierStart reports whether char may start an identifier.
func isIdentifierStart(char rune) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
}

// isIdentifierFollowing reports whether char may continue an identifier.
func isIdentifierFollowing(char rune) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '_' || char == '-'
}

// anyOf reports whether val matches any rune in set.
func anyOf(val rune, set ...rune) bool {
	for _, candidate := range set {
		if val == candidate {
			return true
		}
	}
	return false
}

// hasLowercase reports whether set contains a lowercase letter.
func hasLowercase(set []rune) bool {
	for _, char := range set {
		if unicode.IsLetter(char) && unicode.IsLower(char) {
			return true
		}
	}
	return false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
