package inference

import "strings"

// InferRHSType is the central recursive resolver for the right-hand side
// of a binding. It tries, in strict order: method chains, index
// expressions, (indexed) list literals, string/map/set literals, tuples,
// record or variant construction, numeric literals, and finally function
// call return types via the engine's signature lookup. The first match
// wins; no match reports false.
func InferRHSType(expr string, engine Engine, vars Bindings) (string, bool) {
	trimmed := strings.TrimSpace(expr)

	// Method chain: x.method().method2()
	if strings.Contains(trimmed, ".") && strings.Contains(trimmed, "(") {
		if inferred, ok := InferMethodChainType(trimmed, vars); ok {
			return inferred, true
		}
	}

	// Index expression: arr[0][0]
	if strings.Contains(trimmed, "[") && !strings.HasPrefix(trimmed, "[") {
		if inferred, ok := InferIndexExprType(trimmed, vars); ok {
			return inferred, true
		}
	}

	// List literals, possibly indexed.
	if strings.HasPrefix(trimmed, "[") {
		if indexed, ok := InferIndexedListLiteralType(trimmed); ok {
			return indexed, true
		}
		return InferListType(trimmed)
	}

	if strings.HasPrefix(trimmed, `"`) {
		return "String", true
	}
	if strings.HasPrefix(trimmed, "%{") {
		return "Map", true
	}
	if strings.HasPrefix(trimmed, "#{") {
		return "Set", true
	}

	// Tuple literals: (42, "hello")
	if strings.HasPrefix(trimmed, "(") && strings.HasSuffix(trimmed, ")") && strings.Contains(trimmed, ",") {
		if tupleType, ok := InferTupleType(trimmed); ok {
			return tupleType, true
		}
	}

	// Record/variant construction or a bare type reference:
	// TypeName(field: value), ConstructorName(value), TypeName
	if startsUpper(trimmed) {
		if name := leadingIdent(trimmed); name != "" {
			rest := strings.TrimLeft(trimmed[len(name):], " \t")

			if engine != nil {
				if typeName, ok := engine.TypeForConstructor(name); ok {
					return typeName, true
				}
				types := engine.TypeNames()
				for _, registered := range types {
					if registered == name {
						return name, true
					}
				}
				for _, registered := range types {
					base := registered
					if i := strings.LastIndexByte(registered, '.'); i >= 0 {
						base = registered[i+1:]
					}
					if base == name {
						return registered, true
					}
				}
			}

			// Without engine knowledge, the identifier itself stands as
			// the nominal type for constructions and bare references.
			if rest == "" || strings.HasPrefix(rest, "(") {
				return name, true
			}
		}
	}

	// Numeric literals.
	if trimmed != "" && containsOnly(trimmed, "0123456789-") {
		return "Int", true
	}
	if strings.Contains(trimmed, ".") && containsOnly(trimmed, "0123456789.-") {
		return "Float", true
	}

	// Function call: Module.func(...) or func(...)
	if engine != nil {
		if parenPos := strings.IndexByte(trimmed, '('); parenPos >= 0 {
			funcPart := strings.TrimSpace(trimmed[:parenPos])
			argsPart := trimmed[parenPos:]
			if sig, ok := engine.FunctionSignature(funcPart); ok {
				if arrowPos := strings.LastIndex(sig, "->"); arrowPos >= 0 {
					retType := strings.TrimSpace(sig[arrowPos+2:])

					// A single lowercase letter is a generic placeholder:
					// substitute the first argument's inferred type.
					if len(retType) == 1 && retType[0] >= 'a' && retType[0] <= 'z' {
						if argType, ok := inferFirstArgType(argsPart, vars); ok {
							return argType, true
						}
					}

					return retType, true
				}
			}
		}
	}

	return "", false
}

// inferFirstArgType infers the type of the first argument in a call's
// parenthesized argument text.
func inferFirstArgType(args string, vars Bindings) (string, bool) {
	trimmed := strings.TrimSpace(args)
	if !strings.HasPrefix(trimmed, "(") {
		return "", false
	}

	inner := trimmed[1:]
	depth := 0
	endPos := 0
	for i := 0; i < len(inner); i++ {
		stop := false
		switch inner[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth == 0 {
				endPos = i
				stop = true
			} else {
				depth--
			}
		case ',':
			if depth == 0 {
				endPos = i
				stop = true
			}
		}
		if stop {
			break
		}
	}
	if endPos == 0 {
		if i := strings.IndexByte(inner, ')'); i >= 0 {
			endPos = i
		} else {
			endPos = len(inner)
		}
	}

	firstArg := strings.TrimSpace(inner[:endPos])
	if firstArg == "" {
		return "", false
	}

	if containsOnly(firstArg, "0123456789-") {
		return "Int", true
	}
	if strings.Contains(firstArg, ".") && containsOnly(firstArg, "0123456789.-") {
		return "Float", true
	}
	if strings.HasPrefix(firstArg, `"`) {
		return "String", true
	}
	if strings.HasPrefix(firstArg, "[") {
		return InferListType(firstArg)
	}

	if ty, ok := vars[firstArg]; ok {
		return ty, true
	}

	return "", false
}

func containsOnly(s, allowed string) bool {
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(allowed, rune(s[i])) {
			return false
		}
	}
	return true
}
