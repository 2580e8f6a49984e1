package inference

import (
	"strconv"
	"strings"
)

// InferFieldAccessType resolves a field access like `self.age` given the
// prefix text before the dot. The base identifier is looked up in vars;
// the field type then comes from tuple-index access, then the engine,
// then a textual scan of the document for a record declaration.
//
// The engine is optional; without it only the tuple and source-scan paths
// apply.
func InferFieldAccessType(beforeDot, fieldName string, vars Bindings, engine Engine, content string) (string, bool) {
	pattern := "." + fieldName
	fieldStart := strings.LastIndex(beforeDot, pattern)
	if fieldStart < 0 {
		return "", false
	}

	baseVar := lastIdentifierToken(beforeDot[:fieldStart])
	if baseVar == "" {
		return "", false
	}

	baseType, ok := vars[baseVar]
	if !ok {
		return "", false
	}

	// Tuple element access: t.0, t.1, ...
	if label := ParseLabel(baseType); label.Kind == KindTuple {
		if index, err := strconv.Atoi(fieldName); err == nil && index >= 0 {
			if index < len(label.Elems) {
				return label.Elems[index].String(), true
			}
			return "", false
		}
	}

	if engine != nil {
		if fieldType, ok := engine.FieldType(baseType, fieldName); ok {
			return fieldType, true
		}
	}

	// Fallback: record declaration scan over the raw source. Works even
	// when the document has parse errors elsewhere.
	for _, field := range TypeFieldsFromSource(content, baseType) {
		name, ty, found := strings.Cut(field, ":")
		if found && strings.TrimSpace(name) == fieldName {
			return strings.TrimSpace(ty), true
		}
	}

	return "", false
}

// TypeFieldsFromSource extracts the `field: Type` pairs of a record
// declaration `type Name = { ... }` directly from source text.
func TypeFieldsFromSource(content, typeName string) []string {
	var fields []string

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		rest, found := strings.CutPrefix(trimmed, "type ")
		if !found {
			continue
		}

		defName := strings.TrimSpace(splitAny(rest, "=["))
		if defName != typeName {
			continue
		}

		braceStart := strings.IndexByte(trimmed, '{')
		if braceStart < 0 {
			continue
		}
		afterBrace := trimmed[braceStart+1:]
		braceEnd := strings.IndexByte(afterBrace, '}')
		if braceEnd < 0 {
			continue
		}

		for _, field := range strings.Split(afterBrace[:braceEnd], ",") {
			if f := strings.TrimSpace(field); f != "" {
				fields = append(fields, f)
			}
		}
		break
	}

	return fields
}

// splitAny returns the part of s before the first occurrence of any
// separator byte.
func splitAny(s, seps string) string {
	if i := strings.IndexAny(s, seps); i >= 0 {
		return s[:i]
	}
	return s
}
