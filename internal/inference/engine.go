package inference

// Bindings maps identifiers (variables, lambda parameters, the reserved
// receiver name) to type labels. It is built fresh per inference request
// and never shared between requests.
type Bindings map[string]string

// Engine is the optional read-only query surface backed by a live
// evaluation session. Every query returns its zero value and false when
// the answer is unknown; implementations must never panic and must be
// safe for concurrent readers.
//
// Callers that analyze files without a running session pass a nil Engine
// and get the purely syntactic inference paths.
type Engine interface {
	// TypeForConstructor resolves a constructor name to its declaring type.
	TypeForConstructor(name string) (string, bool)

	// TypeNames lists all known declared type names, possibly
	// module-qualified ("util.Person").
	TypeNames() []string

	// FunctionSignature returns the signature text of a function,
	// containing a "->" return-type marker.
	FunctionSignature(name string) (string, bool)

	// FieldType returns the declared type of a record field.
	FieldType(typeName, fieldName string) (string, bool)

	// InferExpressionType is the engine's general fallback inference for
	// an arbitrary expression, given the current bindings.
	InferExpressionType(expr string, vars Bindings) (string, bool)
}
