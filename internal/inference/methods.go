package inference

import (
	"sort"
	"strings"
)

// MethodReturnType is the static method-return-type table: given a
// receiver type label and a method name, it answers what the call
// returns, with no engine involved. It is deliberately conservative:
// transformations whose result element type cannot be known from the
// method name alone (map, flatMap) degrade to the bare container label.
func MethodReturnType(receiverType, methodName string) (string, bool) {
	// Universal methods, any receiver.
	switch methodName {
	case "show":
		return "String", true
	case "hash":
		return "Int", true
	case "copy":
		return receiverType, true
	}

	label := ParseLabel(receiverType)

	switch label.Kind {
	case KindList:
		return listMethodReturnType(label, methodName)
	case KindOption:
		return optionMethodReturnType(label, methodName)
	}

	if receiverType == "String" {
		return stringMethodReturnType(methodName)
	}

	return "", false
}

func listMethodReturnType(label Label, methodName string) (string, bool) {
	elem, hasElem := label.ElemString()

	switch methodName {
	case "filter", "take", "drop", "reverse", "sort", "unique",
		"takeWhile", "dropWhile", "init", "tail", "push", "remove",
		"removeAt", "insertAt", "set", "slice":
		if hasElem {
			return "List[" + elem + "]", true
		}
		return "List", true

	case "get", "head", "last", "nth", "find", "sum", "product",
		"maximum", "minimum":
		if hasElem {
			return elem, true
		}
		return "", false

	case "any", "all", "contains", "isEmpty":
		return "Bool", true

	case "length", "len", "count", "indexOf":
		return "Int", true

	case "first", "safeHead", "safeLast":
		if hasElem {
			return "Option[" + elem + "]", true
		}
		return "", false

	case "map", "flatMap":
		// Element type is not tracked through the transformation.
		return "List", true

	case "enumerate":
		if hasElem {
			return "List[(Int, " + elem + ")]", true
		}
		return "List", true

	case "flatten":
		if hasElem {
			if strings.HasPrefix(elem, "List[") {
				return elem, true
			}
			return "List[" + elem + "]", true
		}
		return "List", true
	}

	return "", false
}

func stringMethodReturnType(methodName string) (string, bool) {
	switch methodName {
	case "chars":
		return "List[Char]", true
	case "lines", "words", "split":
		return "List[String]", true
	case "trim", "trimStart", "trimEnd", "toUpper", "toLower",
		"replace", "replaceAll", "substring", "repeat",
		"padStart", "padEnd", "reverse":
		return "String", true
	case "length", "indexOf", "lastIndexOf":
		return "Int", true
	case "contains", "startsWith", "endsWith", "isEmpty":
		return "Bool", true
	}
	return "", false
}

func optionMethodReturnType(label Label, methodName string) (string, bool) {
	switch methodName {
	case "unwrap", "getOrElse":
		return label.ElemString()
	case "isSome", "isNone":
		return "Bool", true
	case "map":
		return "Option", true
	}
	return "", false
}

var (
	universalMethods = []string{"copy", "hash", "show"}

	listMethods = []string{
		"all", "any", "contains", "count", "drop", "dropWhile", "enumerate",
		"filter", "find", "first", "flatMap", "flatten", "get", "head",
		"indexOf", "init", "insertAt", "isEmpty", "last", "length", "map",
		"maximum", "minimum", "nth", "product", "push", "remove", "removeAt",
		"reverse", "safeHead", "safeLast", "set", "slice", "sort", "sum",
		"tail", "take", "takeWhile", "unique",
	}

	stringMethods = []string{
		"chars", "contains", "endsWith", "indexOf", "isEmpty", "lastIndexOf",
		"length", "lines", "padEnd", "padStart", "repeat", "replace",
		"replaceAll", "reverse", "split", "startsWith", "substring",
		"toLower", "toUpper", "trim", "trimEnd", "trimStart", "words",
	}

	optionMethods = []string{"getOrElse", "isNone", "isSome", "map", "unwrap"}
)

// MethodNamesFor lists the method names the return-type table knows for a
// receiver type label, for completion surfaces. Names come back sorted.
func MethodNamesFor(receiverType string) []string {
	var names []string
	switch ParseLabel(receiverType).Kind {
	case KindList:
		names = listMethods
	case KindOption:
		names = optionMethods
	default:
		if receiverType == "String" {
			names = stringMethods
		}
	}
	out := make([]string, 0, len(names)+len(universalMethods))
	out = append(out, names...)
	out = append(out, universalMethods...)
	sort.Strings(out)
	return out
}

// LambdaParamTypeForMethod answers what type a lambda parameter has when
// passed to a method: for `List[Int].map` the parameter is an "Int".
// This path is independent of MethodReturnType and is sometimes more
// precise than it (map keeps the element type here).
func LambdaParamTypeForMethod(receiverType, methodName string) (string, bool) {
	if strings.HasPrefix(receiverType, "List") || strings.HasPrefix(receiverType, "[") {
		elem := "Int"
		if e, ok := PeelList(receiverType); ok {
			elem = e
		} else if strings.HasPrefix(receiverType, "[") && strings.HasSuffix(receiverType, "]") {
			elem = receiverType[1 : len(receiverType)-1]
		}

		switch methodName {
		case "map", "filter", "each", "any", "all", "find", "takeWhile",
			"dropWhile", "partition", "span", "sortBy", "groupBy", "count",
			"fold", "foldl", "foldr", "zipWith":
			return elem, true
		}
	}

	if strings.HasPrefix(receiverType, "Option") {
		inner := "a"
		if l := ParseLabel(receiverType); l.Kind == KindOption {
			if e, ok := l.ElemString(); ok {
				inner = e
			}
		} else if rest, found := strings.CutPrefix(receiverType, "Option "); found {
			inner = rest
		}

		switch methodName {
		case "map", "flatMap", "filter":
			return inner, true
		}
	}

	if strings.HasPrefix(receiverType, "Result") {
		okType, errType := "a", "e"
		if l := ParseLabel(receiverType); l.Kind == KindResult && l.Elem != nil && l.Err != nil {
			okType = l.Elem.String()
			errType = l.Err.String()
		}

		switch methodName {
		case "map":
			return okType, true
		case "mapErr":
			return errType, true
		}
	}

	if strings.HasPrefix(receiverType, "Map") {
		switch methodName {
		case "map", "filter", "each":
			return "(k, v)", true
		}
	}

	if strings.HasPrefix(receiverType, "Set") {
		elem := "a"
		if l := ParseLabel(receiverType); l.Kind == KindSet {
			if e, ok := l.ElemString(); ok {
				elem = e
			}
		}

		switch methodName {
		case "map", "filter", "each", "any", "all":
			return elem, true
		}
	}

	return "", false
}
