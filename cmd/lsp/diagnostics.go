package main

// Diagnostics on raw text: delimiter balance checking that is aware of
// string literals and line comments. The language allows broken code at
// every keystroke, so only structural problems that are unambiguous from
// the text alone are reported.

func (s *LanguageServer) publishDiagnostics(uri, content string) error {
	notification := NotificationMessage{
		Jsonrpc: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params: PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: checkDelimiters(content),
		},
	}

	return s.sendNotification(notification)
}

type openDelim struct {
	char byte
	line int
	col  int
}

// checkDelimiters scans for unbalanced brackets. A '#' starts a comment
// unless followed by '{' (set literal). Strings honor backslash escapes.
func checkDelimiters(content string) []Diagnostic {
	const (
		stateNormal = iota
		stateString
		stateComment
	)

	diags := make([]Diagnostic, 0)
	var stack []openDelim

	state := stateNormal
	escaped := false
	line, col := 0, 0

	for i := 0; i < len(content); i++ {
		b := content[i]

		switch state {
		case stateNormal:
			switch b {
			case '"':
				state = stateString
			case '#':
				if i+1 >= len(content) || content[i+1] != '{' {
					state = stateComment
				}
			case '(', '[', '{':
				stack = append(stack, openDelim{char: b, line: line, col: col})
			case ')', ']', '}':
				if len(stack) == 0 {
					diags = append(diags, delimiterDiagnostic(line, col, "Unmatched closing delimiter '"+string(b)+"'"))
					break
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if closerFor(top.char) != b {
					diags = append(diags, delimiterDiagnostic(line, col,
						"Mismatched delimiter: expected '"+string(closerFor(top.char))+"', found '"+string(b)+"'"))
				}
			}
		case stateString:
			if escaped {
				escaped = false
			} else if b == '\\' {
				escaped = true
			} else if b == '"' {
				state = stateNormal
			}
		case stateComment:
			if b == '\n' {
				state = stateNormal
			}
		}

		if b == '\n' {
			line++
			col = 0
			if state == stateString {
				// Strings do not span lines; recover at the newline.
				state = stateNormal
				escaped = false
			}
		} else {
			col++
		}
	}

	for _, open := range stack {
		diags = append(diags, delimiterDiagnostic(open.line, open.col,
			"Unclosed delimiter '"+string(open.char)+"'"))
	}

	return diags
}

func closerFor(opener byte) byte {
	switch opener {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}

func delimiterDiagnostic(line, col int, message string) Diagnostic {
	return Diagnostic{
		Range: Range{
			Start: Position{Line: line, Character: col},
			End:   Position{Line: line, Character: col + 1},
		},
		Severity: SeverityError,
		Message:  message,
		Source:   "voss",
	}
}
