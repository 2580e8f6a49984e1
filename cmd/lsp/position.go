package main

import (
	"strings"

	"github.com/voss-lang/voss/internal/config"
)

// lineAt returns the lineIndex'th line of content without its newline,
// or "" when the document is shorter than that.
func lineAt(content string, lineIndex int) string {
	rest := content
	for ; lineIndex > 0; lineIndex-- {
		nl := strings.IndexByte(rest, '\n')
		if nl < 0 {
			return ""
		}
		rest = rest[nl+1:]
	}
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		return rest[:nl]
	}
	return rest
}

// wordAt returns the identifier under the cursor. A cursor sitting just
// past the end of the line still picks up the word it trails.
func wordAt(content string, line, char int) string {
	text := lineAt(content, line)
	if char == len(text) && char > 0 {
		char--
	}
	if char < 0 || char >= len(text) {
		return ""
	}

	start, end := char, char
	for start > 0 && config.IsIdentifierByte(text[start-1]) {
		start--
	}
	for end < len(text) && config.IsIdentifierByte(text[end]) {
		end++
	}
	return text[start:end]
}
