package inference

import "strings"

// InferMethodChainType walks a dotted call chain left to right, resolving
// the base receiver and then applying the static method table at each
// call: with nums bound to "List[Int]", `nums.filter(x => x > 0)` →
// "List[Int]". Reports false as soon as any step resists resolution.
func InferMethodChainType(expr string, vars Bindings) (string, bool) {
	trimmed := strings.TrimSpace(expr)
	chars := []rune(trimmed)

	// Find the first top-level dot that starts a method call.
	depth := 0
	baseEnd := 0
	for i, c := range chars {
		switch c {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
		case '.':
			if depth == 0 && i+1 < len(chars) && isAlpha(chars[i+1]) {
				baseEnd = i
			}
		}
		if baseEnd != 0 {
			break
		}
	}

	if baseEnd == 0 {
		// No chain at all: classify the whole expression.
		if strings.HasPrefix(trimmed, "[") {
			return InferListType(trimmed)
		}
		if strings.HasPrefix(trimmed, `"`) {
			return "String", true
		}
		if ty, ok := vars[trimmed]; ok {
			return ty, true
		}
		return "", false
	}

	baseExpr := string(chars[:baseEnd])
	remaining := string(chars[baseEnd:])

	var currentType string
	var resolved bool
	switch {
	case strings.HasPrefix(baseExpr, "["):
		currentType, resolved = InferListType(baseExpr)
	case strings.HasPrefix(baseExpr, `"`):
		currentType, resolved = "String", true
	default:
		currentType, resolved = vars[strings.TrimSpace(baseExpr)]
	}

	for strings.HasPrefix(remaining, ".") {
		remaining = remaining[1:]

		parenPos := strings.IndexByte(remaining, '(')
		if parenPos < 0 {
			return "", false
		}
		methodName := remaining[:parenPos]

		closeParen := -1
		depth := 0
		for i := parenPos; i < len(remaining); i++ {
			switch remaining[i] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					closeParen = i
				}
			}
			if closeParen >= 0 {
				break
			}
		}
		if closeParen < 0 {
			return "", false
		}

		if !resolved {
			return "", false
		}
		currentType, resolved = MethodReturnType(currentType, methodName)

		remaining = remaining[closeParen+1:]
	}

	if !resolved {
		return "", false
	}
	return currentType, true
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
