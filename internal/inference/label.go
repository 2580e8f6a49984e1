package inference

import (
	"strings"

	"github.com/voss-lang/voss/internal/config"
)

// LabelKind discriminates the structural shape of a type label.
type LabelKind int

const (
	// KindNominal covers primitives, user types and anything opaque.
	KindNominal LabelKind = iota
	KindList
	KindOption
	KindSet
	KindMap
	KindResult
	KindTuple
)

// Label is the parsed form of a textual type label. Labels travel between
// packages as plain strings; parsing happens at the point where a label's
// structure matters (peeling a container, dispatching on a receiver,
// indexing a tuple).
//
// A container kind with a nil Elem is the bare form ("List" as opposed to
// "List[Int]"), used when the element type is unknown.
type Label struct {
	Kind  LabelKind
	Name  string   // nominal name; container name for the others
	Elem  *Label   // List/Option/Set element, Result ok-type
	Err   *Label   // Result err-type
	Elems []*Label // tuple elements
}

// ParseLabel parses a textual type label. It never fails: labels that do
// not match an exact Wrapper[...] or tuple shape come back as opaque
// nominals, which is the required degradation for malformed input.
func ParseLabel(s string) Label {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && len(s) >= 2 {
		inner := s[1 : len(s)-1]
		parts := splitTopLevel(inner)
		if len(parts) > 1 {
			elems := make([]*Label, 0, len(parts))
			for _, p := range parts {
				e := ParseLabel(p)
				elems = append(elems, &e)
			}
			return Label{Kind: KindTuple, Name: s, Elems: elems}
		}
	}

	switch s {
	case config.ListTypeName:
		return Label{Kind: KindList, Name: s}
	case config.OptionTypeName:
		return Label{Kind: KindOption, Name: s}
	case config.SetTypeName:
		return Label{Kind: KindSet, Name: s}
	case config.MapTypeName:
		return Label{Kind: KindMap, Name: s}
	case config.ResultTypeName:
		return Label{Kind: KindResult, Name: s}
	}

	if name, inner, ok := splitWrapper(s); ok {
		switch name {
		case config.ListTypeName, config.OptionTypeName, config.SetTypeName:
			elem := ParseLabel(inner)
			kind := KindList
			if name == config.OptionTypeName {
				kind = KindOption
			} else if name == config.SetTypeName {
				kind = KindSet
			}
			return Label{Kind: kind, Name: name, Elem: &elem}
		case config.ResultTypeName:
			parts := splitTopLevel(inner)
			if len(parts) == 2 {
				ok := ParseLabel(parts[0])
				errT := ParseLabel(parts[1])
				return Label{Kind: KindResult, Name: name, Elem: &ok, Err: &errT}
			}
		}
	}

	return Label{Kind: KindNominal, Name: s}
}

// String renders the label back to its textual form.
func (l Label) String() string {
	switch l.Kind {
	case KindList, KindOption, KindSet:
		if l.Elem == nil {
			return l.Name
		}
		return l.Name + "[" + l.Elem.String() + "]"
	case KindResult:
		if l.Elem == nil || l.Err == nil {
			return l.Name
		}
		return l.Name + "[" + l.Elem.String() + ", " + l.Err.String() + "]"
	case KindTuple:
		parts := make([]string, 0, len(l.Elems))
		for _, e := range l.Elems {
			parts = append(parts, e.String())
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return l.Name
	}
}

// ElemString returns the element label as text, or false for bare
// containers and non-container labels.
func (l Label) ElemString() (string, bool) {
	if l.Elem == nil {
		return "", false
	}
	return l.Elem.String(), true
}

// PeelList removes one List layer: "List[T]" yields "T". Bare "List" and
// anything that is not an exact List wrapper refuses to peel.
func PeelList(label string) (string, bool) {
	l := ParseLabel(label)
	if l.Kind != KindList || l.Elem == nil {
		return "", false
	}
	return l.Elem.String(), true
}

// splitWrapper splits "Name[inner]" where the first bracket matches the
// final character. Returns false for anything else, including labels with
// trailing text after the closing bracket.
func splitWrapper(s string) (name, inner string, ok bool) {
	open := strings.IndexByte(s, '[')
	if open <= 0 || !strings.HasSuffix(s, "]") {
		return "", "", false
	}
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 && i != len(s)-1 {
				return "", "", false
			}
		}
	}
	if depth != 0 {
		return "", "", false
	}
	return s[:open], s[open+1 : len(s)-1], true
}

// splitTopLevel splits on commas at bracket depth zero, trimming each part.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	last := strings.TrimSpace(s[start:])
	if last != "" || len(parts) > 0 {
		parts = append(parts, last)
	}
	return parts
}
