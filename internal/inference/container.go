package inference

import (
	"strconv"
	"strings"
)

// InferListType infers the type of a list literal from its first element,
// recursing through nested lists: "[[1,2],[3,4]]" → "List[List[Int]]".
// An empty or unrecognizable list degrades to the bare "List" label.
func InferListType(expr string) (string, bool) {
	trimmed := strings.TrimSpace(expr)

	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return "", false
	}

	inner := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	if inner == "" {
		return "List", true
	}

	first := strings.TrimSpace(firstListElement(inner))

	var elemType string
	switch {
	case strings.HasPrefix(first, "["):
		nested, ok := InferListType(first)
		if !ok {
			return "", false
		}
		elemType = nested
	case strings.HasPrefix(first, `"`):
		elemType = "String"
	case isIntLiteral(first):
		elemType = "Int"
	case isFloatLiteral(first):
		elemType = "Float"
	case startsUpper(first):
		name := leadingIdent(first)
		if name == "" {
			return "List", true
		}
		elemType = name
	default:
		return "List", true
	}

	return "List[" + elemType + "]", true
}

// firstListElement cuts the list interior at the first top-level comma.
func firstListElement(inner string) string {
	depth := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
		case ',':
			if depth == 0 {
				return inner[:i]
			}
		}
	}
	return inner
}

// InferIndexedListLiteralType handles a list literal followed by index
// suffixes: `[["a","b"]][0]` → "List[String]", `[["a","b"]][0][0]` →
// "String". Each index peels one List layer; when the current label can
// no longer be peeled the walk stops and reports what it has, and only a
// failed base inference reports false.
func InferIndexedListLiteralType(expr string) (string, bool) {
	trimmed := strings.TrimSpace(expr)

	if !strings.HasPrefix(trimmed, "[") {
		return "", false
	}

	listEnd, ok := matchingBracketEnd(trimmed)
	if !ok {
		return "", false
	}
	afterList := trimmed[listEnd+1:]
	if !strings.HasPrefix(afterList, "[") {
		return "", false
	}

	indexCount := strings.Count(afterList, "[")
	baseType, ok := InferListType(trimmed[:listEnd+1])
	if !ok {
		return "", false
	}

	current := baseType
	for i := 0; i < indexCount; i++ {
		elem, ok := PeelList(current)
		if !ok {
			if current == "List" {
				return "", false
			}
			return current, true
		}
		current = elem
	}

	return current, true
}

// InferTupleType infers a tuple literal like `(42, "hello", true)` →
// "(Int, String, Bool)". Elements that resist classification come back
// as "Unknown" rather than failing the whole tuple.
func InferTupleType(expr string) (string, bool) {
	trimmed := strings.TrimSpace(expr)

	if !strings.HasPrefix(trimmed, "(") || !strings.HasSuffix(trimmed, ")") {
		return "", false
	}

	inner := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	if inner == "" {
		return "()", true
	}

	elements := splitTopLevel(inner)
	types := make([]string, 0, len(elements))
	for _, elem := range elements {
		var elemType string
		switch {
		case strings.HasPrefix(elem, `"`):
			elemType = "String"
		case strings.HasPrefix(elem, "["):
			if lt, ok := InferListType(elem); ok {
				elemType = lt
			} else {
				elemType = "List"
			}
		case strings.HasPrefix(elem, "(") && strings.Contains(elem, ","):
			if tt, ok := InferTupleType(elem); ok {
				elemType = tt
			} else {
				elemType = "Tuple"
			}
		case elem == "true" || elem == "false":
			elemType = "Bool"
		case isIntLiteral(elem):
			elemType = "Int"
		case isFloatLiteral(elem):
			elemType = "Float"
		case startsUpper(elem):
			elemType = leadingIdent(elem)
		default:
			elemType = "Unknown"
		}
		types = append(types, elemType)
	}

	return "(" + strings.Join(types, ", ") + ")", true
}

func isIntLiteral(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func isFloatLiteral(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func startsUpper(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}

// leadingIdent returns the identifier prefix of s.
func leadingIdent(s string) string {
	end := 0
	for end < len(s) && isIdentByte(s[end]) {
		end++
	}
	return s[:end]
}
