package inference

import "strings"

// DetectLiteralType classifies a trimmed expression by its literal syntax:
// "String", "List", "Map", "Set", "Int" or "Float". Indexed list literals
// like [[1,2]][0] report false here; InferIndexedListLiteralType owns them.
func DetectLiteralType(expr string) (string, bool) {
	trimmed := strings.TrimSpace(expr)

	if strings.HasPrefix(trimmed, `"`) || strings.HasPrefix(trimmed, "'") {
		return "String", true
	}

	if strings.HasPrefix(trimmed, "[") {
		if end, ok := matchingBracketEnd(trimmed); ok {
			if strings.HasPrefix(trimmed[end+1:], "[") {
				return "", false // indexed list literal, handled elsewhere
			}
		}
		return "List", true
	}

	if strings.HasPrefix(trimmed, "%{") {
		return "Map", true
	}
	if strings.HasPrefix(trimmed, "#{") {
		return "Set", true
	}

	numPart := strings.TrimPrefix(trimmed, "-")
	if numPart != "" && numPart[0] >= '0' && numPart[0] <= '9' {
		if strings.Contains(numPart, ".") {
			return "Float", true
		}
		return "Int", true
	}

	return "", false
}

// matchingBracketEnd finds the index of the ']' closing the '[' that
// starts s. Returns false when the brackets never balance.
func matchingBracketEnd(s string) (int, bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// ExtractReceiverExpression isolates the maximal receiver expression at
// the end of text, walking backward over balanced brackets and quoted
// strings. "a + [1,2,3]" yields "[1,2,3]".
func ExtractReceiverExpression(text string) string {
	chars := []rune(text)
	depth := 0
	inString := false
	stringChar := '"'

	for i := len(chars) - 1; i >= 0; i-- {
		c := chars[i]

		if inString {
			if c == stringChar {
				// Unescaped closing quote: even number of preceding backslashes.
				escapes := 0
				for j := i; j > 0 && chars[j-1] == '\\'; j-- {
					escapes++
				}
				if escapes%2 == 0 {
					inString = false
				}
			}
			continue
		}

		switch {
		case c == '"' || c == '\'':
			inString = true
			stringChar = c
		case c == ')' || c == ']' || c == '}':
			depth++
		case c == '(' || c == '[' || c == '{':
			if depth > 0 {
				depth--
			} else {
				return string(chars[i:])
			}
		case depth == 0:
			if !isIdentRune(c) && c != '.' {
				return string(chars[i+1:])
			}
		}
	}

	return text
}

func isIdentRune(c rune) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// lastIdentifier returns the trailing identifier of text, the token a
// binding lookup keys on. Unlike ExtractReceiverExpression it stops at
// dots and brackets.
func lastIdentifier(text string) string {
	start := len(text)
	for start > 0 && isIdentByte(text[start-1]) {
		start--
	}
	return text[start:]
}

// lastIdentifierToken is like lastIdentifier but skips trailing
// non-identifier characters first, returning the last complete token.
func lastIdentifierToken(text string) string {
	end := len(text)
	for end > 0 && !isIdentByte(text[end-1]) {
		end--
	}
	start := end
	for start > 0 && isIdentByte(text[start-1]) {
		start--
	}
	return text[start:end]
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
