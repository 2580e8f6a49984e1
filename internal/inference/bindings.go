package inference

import (
	"strings"

	"github.com/voss-lang/voss/internal/config"
)

// ExtractLocalBindings scans source lines from the top of the document up
// to and including upToLine and builds the binding environment. It
// understands:
//
//   - simple bindings        x = expr
//   - annotated bindings     x: Type = expr
//   - mvar declarations      mvar name: Type = expr
//   - the reserved receiver  bound inside `TypeName: TraitName ... end`
//     blocks when a parameter list starts with it
//
// On the target line itself only the receiver/trait context is updated;
// no binding is recorded for it. Rebinding the same name is
// last-write-wins by line order.
func ExtractLocalBindings(content string, upToLine int, engine Engine) Bindings {
	vars := make(Bindings)

	// Trait implementation context for resolving the receiver name.
	implType := ""

	for lineNum, line := range strings.Split(content, "\n") {
		if lineNum > upToLine {
			break
		}
		isCurrentLine := lineNum == upToLine

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if !strings.Contains(trimmed, "=") {
			if trimmed == config.EndKeyword {
				implType = ""
				continue
			}
			if ty, ok := traitImplHeader(trimmed); ok {
				implType = ty
				continue
			}
		}

		// A parameter list opening with the receiver name binds it to the
		// enclosing impl type.
		if implType != "" {
			if parenPos := strings.IndexByte(trimmed, '('); parenPos >= 0 {
				params := trimmed[parenPos+1:]
				if parensEnd := strings.IndexByte(params, ')'); parensEnd >= 0 {
					first := strings.TrimSpace(firstListElement(params[:parensEnd]))
					if first == config.SelfName {
						vars[config.SelfName] = implType
					}
				}
			}
		}

		if isCurrentLine {
			continue
		}

		if rest, found := strings.CutPrefix(trimmed, config.MvarKeyword+" "); found {
			name, after, hasColon := strings.Cut(rest, ":")
			if hasColon {
				typeName, _, hasEq := strings.Cut(after, "=")
				name = strings.TrimSpace(name)
				typeName = strings.TrimSpace(typeName)
				if hasEq && name != "" && typeName != "" {
					vars[name] = typeName
				}
			}
			continue
		}

		eqPos := strings.IndexByte(trimmed, '=')
		if eqPos < 0 || eqPos+1 >= len(trimmed) || trimmed[eqPos+1] == '=' {
			continue
		}

		beforeEq := strings.TrimSpace(trimmed[:eqPos])
		afterEq := strings.TrimSpace(trimmed[eqPos+1:])

		varName := beforeEq
		explicitType := ""
		if name, ty, hasColon := strings.Cut(beforeEq, ":"); hasColon {
			varName = strings.TrimSpace(name)
			explicitType = strings.TrimSpace(ty)
		}

		if !isBindingTarget(varName) {
			continue
		}

		if explicitType != "" {
			vars[varName] = explicitType
			continue
		}
		if ty, ok := InferRHSType(afterEq, engine, vars); ok {
			vars[varName] = ty
		}
	}

	return vars
}

// traitImplHeader recognizes a `TypeName: TraitName` line (no `=`) and
// returns the left side, generic suffix included.
func traitImplHeader(trimmed string) (string, bool) {
	colonPos := strings.IndexByte(trimmed, ':')
	if colonPos < 0 {
		return "", false
	}

	beforeColon := strings.TrimSpace(trimmed[:colonPos])
	afterColon := strings.TrimSpace(trimmed[colonPos+1:])

	typeName := strings.TrimSpace(splitAny(beforeColon, "["))
	if typeName == "" || !startsUpper(typeName) {
		return "", false
	}
	if afterColon == "" || !startsUpper(afterColon) {
		return "", false
	}
	for i := 0; i < len(afterColon); i++ {
		b := afterColon[i]
		if !isIdentByte(b) && b != '[' && b != ']' && b != ',' {
			return "", false
		}
	}

	return beforeColon, true
}

// isBindingTarget accepts only lowercase-leading identifiers.
func isBindingTarget(name string) bool {
	if name == "" || !(name[0] >= 'a' && name[0] <= 'z') {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isIdentByte(name[i]) {
			return false
		}
	}
	return true
}
