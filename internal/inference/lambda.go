package inference

import "strings"

// maxLambdaInferDepth bounds the recursive lambda parameter resolution.
// Nested lambdas beyond this depth give up rather than backtrack forever.
const maxLambdaInferDepth = 5

// CollectLambdaParams scans prefix for every `=>` token and, for each,
// reconstructs the enclosing method call to derive the parameter's
// element type, inserting it into vars. This is what lets
// `people.map(p => p.` offer completions for p.
//
// A parameter already present in vars is left untouched.
func CollectLambdaParams(prefix string, vars Bindings) {
	chars := []rune(prefix)

	for pos := 0; pos < len(chars); pos++ {
		if pos+1 >= len(chars) || chars[pos] != '=' || chars[pos+1] != '>' {
			continue
		}
		arrowPos := pos
		pos++ // skip past '>'

		paramEnd := arrowPos
		for paramEnd > 0 && isSpaceRune(chars[paramEnd-1]) {
			paramEnd--
		}
		paramStart := paramEnd
		for paramStart > 0 && isIdentRune(chars[paramStart-1]) {
			paramStart--
		}
		if paramStart >= paramEnd {
			continue
		}

		paramName := string(chars[paramStart:paramEnd])
		if _, bound := vars[paramName]; bound {
			continue
		}

		// Walk back to the opening paren of the enclosing call.
		parenPos := paramStart
		for parenPos > 0 && chars[parenPos-1] != '(' {
			parenPos--
		}
		if parenPos == 0 {
			continue
		}

		beforeParen := strings.TrimRight(string(chars[:parenPos-1]), " \t")
		dotPos := strings.LastIndexByte(beforeParen, '.')
		if dotPos < 0 {
			continue
		}

		methodName := strings.TrimSpace(beforeParen[dotPos+1:])
		receiverExpr := strings.TrimSpace(beforeParen[:dotPos])

		// An outer lambda body may precede the receiver.
		if arrowIdx := strings.LastIndex(receiverExpr, "=>"); arrowIdx >= 0 {
			receiverExpr = strings.TrimSpace(receiverExpr[arrowIdx+2:])
		}

		receiverType, ok := InferMethodChainType(receiverExpr, vars)
		if !ok {
			continue
		}
		if paramType, ok := LambdaParamTypeForMethod(receiverType, methodName); ok {
			vars[paramName] = paramType
		}
	}
}

// InferLambdaParamType resolves the type of the lambda parameter that the
// trailing identifier of beforeDot names, by locating its `=>`
// introduction in fullPrefix and reconstructing the enclosing call.
// For `yy.map(m => m.` with yy a list, this answers the element type.
func InferLambdaParamType(fullPrefix, beforeDot string, vars Bindings) (string, bool) {
	return inferLambdaParamTypeAtDepth(fullPrefix, beforeDot, vars, 0)
}

func inferLambdaParamTypeAtDepth(fullPrefix, beforeDot string, vars Bindings, depth int) (string, bool) {
	if depth > maxLambdaInferDepth {
		return "", false
	}

	paramName := lastIdentifierToken(beforeDot)
	if paramName == "" {
		return "", false
	}

	arrowPos := -1
	for _, pattern := range []string{
		paramName + " =>", paramName + "=>", paramName + " =", paramName + "=",
	} {
		if idx := strings.LastIndex(fullPrefix, pattern); idx >= 0 {
			arrowPos = idx
			break
		}
	}
	if arrowPos < 0 {
		return "", false
	}

	beforeLambda := fullPrefix[:arrowPos]

	// Nearest enclosing unmatched '(' scanning backward, depth aware.
	parenDepth := 0
	methodCallStart := -1
	for i := len(beforeLambda) - 1; i >= 0; i-- {
		switch beforeLambda[i] {
		case ')', ']', '}':
			parenDepth++
		case '(':
			if parenDepth == 0 {
				methodCallStart = i
			} else {
				parenDepth--
			}
		case '[', '{':
			if parenDepth > 0 {
				parenDepth--
			}
		}
		if methodCallStart >= 0 {
			break
		}
	}
	if methodCallStart < 0 {
		return "", false
	}

	beforeParen := strings.TrimSpace(beforeLambda[:methodCallStart])
	dotPos := strings.LastIndexByte(beforeParen, '.')
	if dotPos < 0 {
		return "", false
	}

	methodName := strings.TrimSpace(beforeParen[dotPos+1:])
	receiverExpr := strings.TrimSpace(beforeParen[:dotPos])

	receiverType, ok := InferMethodChainType(receiverExpr, vars)
	if !ok {
		// The receiver may itself be a lambda parameter of an outer call.
		receiverType, ok = inferLambdaParamTypeAtDepth(beforeLambda, receiverExpr, vars, depth+1)
		if !ok {
			return "", false
		}
	}

	return LambdaParamTypeForMethod(receiverType, methodName)
}

func isSpaceRune(c rune) bool {
	return c == ' ' || c == '\t'
}
