package repl

// Static source checking backing the compile command: delimiter balance
// with string and comment awareness, reported per line so editors can
// jump to the problem.

type sourceOpener struct {
	char byte
	line int
}

// checkSource scans src for unbalanced brackets and reports one entry
// per problem with 1-based line numbers. A '#' starts a comment unless
// followed by '{' (set literal); strings do not span lines.
func checkSource(file, src string) []ErrorInfo {
	var errs []ErrorInfo
	var stack []sourceOpener

	line := 1
	inStr := false
	inComment := false
	escaped := false

	for i := 0; i < len(src); i++ {
		b := src[i]
		if b == '\n' {
			line++
			inStr = false
			inComment = false
			escaped = false
			continue
		}

		switch {
		case inComment:
		case inStr:
			if escaped {
				escaped = false
			} else if b == '\\' {
				escaped = true
			} else if b == '"' {
				inStr = false
			}
		default:
			switch b {
			case '"':
				inStr = true
			case '#':
				if i+1 >= len(src) || src[i+1] != '{' {
					inComment = true
				}
			case '(', '[', '{':
				stack = append(stack, sourceOpener{char: b, line: line})
			case ')', ']', '}':
				if len(stack) == 0 {
					errs = append(errs, ErrorInfo{
						File:    file,
						Line:    line,
						Message: "unmatched closing delimiter '" + string(b) + "'",
					})
					break
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if matchingCloser(top.char) != b {
					errs = append(errs, ErrorInfo{
						File:    file,
						Line:    line,
						Message: "mismatched delimiter: expected '" + string(matchingCloser(top.char)) + "', found '" + string(b) + "'",
					})
				}
			}
		}
	}

	for _, open := range stack {
		errs = append(errs, ErrorInfo{
			File:    file,
			Line:    open.line,
			Message: "unclosed delimiter '" + string(open.char) + "'",
		})
	}

	return errs
}

func matchingCloser(opener byte) byte {
	switch opener {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}
