package inference

import "strings"

// InferIndexExprType reduces a typed binding through `[...]` index
// operations: with g2 bound to "List[List[String]]", `g2[0]` →
// "List[String]" and `g2[0][0]` → "String". Every index must peel an
// exact List wrapper; anything else reports false.
func InferIndexExprType(expr string, vars Bindings) (string, bool) {
	trimmed := strings.TrimSpace(expr)

	firstBracket := strings.IndexByte(trimmed, '[')
	if firstBracket < 0 {
		return "", false
	}

	baseVar := strings.TrimSpace(trimmed[:firstBracket])
	if baseVar == "" {
		return "", false
	}

	baseType, ok := vars[baseVar]
	if !ok {
		return "", false
	}

	indexCount := strings.Count(trimmed, "[")
	current := baseType
	for i := 0; i < indexCount; i++ {
		elem, ok := PeelList(current)
		if !ok {
			return "", false
		}
		current = elem
	}

	return current, true
}
