// Package inference is the shared textual type inference used for dot
// completion across the toolchain: the LSP server, the terminal editor
// and the REPL panel all call the single entry point here. There is one
// implementation; do not duplicate this logic in a consumer.
//
// The engine works over raw source text, which may be syntactically
// incomplete or broken elsewhere in the buffer. It layers independent
// strategies (literals, local bindings, field access, container
// literals, index expressions, method chains, lambda parameters,
// engine-assisted lookups) in a fixed precedence order and degrades to
// an absent result instead of failing. Every call is a pure function of
// its inputs; nothing is cached or shared between invocations.
package inference

import "strings"

// InferDotReceiverType infers the type of the expression immediately
// before a dot, given the full document, the zero-based cursor line, the
// text preceding the dot on that line, and an optional live engine.
//
// Returns the type label and true, or "" and false when nothing could be
// inferred. The caller should then offer no type-specific completions.
func InferDotReceiverType(content string, cursorLine int, beforeDot string, engine Engine) (string, bool) {
	vars := ExtractLocalBindings(content, cursorLine, engine)

	// Lambda parameters visible at the cursor join the environment.
	CollectLambdaParams(beforeDot, vars)

	// When the prefix carries an assignment, only its right side matters.
	exprToInfer := beforeDot
	if eqPos := strings.LastIndexByte(beforeDot, '='); eqPos >= 0 {
		beforeEq := beforeDot[:eqPos]
		if !strings.HasSuffix(beforeEq, "!") && !strings.HasSuffix(beforeEq, "=") &&
			!strings.HasSuffix(beforeEq, "<") && !strings.HasSuffix(beforeEq, ">") {
			exprToInfer = strings.TrimSpace(beforeDot[eqPos+1:])
		}
	}

	receiverExpr := ExtractReceiverExpression(exprToInfer)
	identifier := lastIdentifier(beforeDot)

	if literalType, ok := DetectLiteralType(receiverExpr); ok {
		return literalType, true
	}

	if ty, ok := vars[identifier]; ok {
		return ty, true
	}

	// Field access, e.g. self.name.
	if fieldType, ok := InferFieldAccessType(beforeDot, identifier, vars, engine, content); ok {
		return fieldType, true
	}

	// Indexed list literal, e.g. [["a","b"]][0][0]
	if idxLiteralType, ok := InferIndexedListLiteralType(exprToInfer); ok {
		return idxLiteralType, true
	}

	// Index expression, e.g. arr[0]
	if idxType, ok := InferIndexExprType(exprToInfer, vars); ok {
		return idxType, true
	}

	// Constructions, calls, remaining literal forms.
	if rhsType, ok := InferRHSType(exprToInfer, engine, vars); ok {
		return rhsType, true
	}

	if engine != nil {
		return engine.InferExpressionType(exprToInfer, vars)
	}

	return "", false
}
