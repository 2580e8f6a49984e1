package config

const SourceFileExt = ".voss"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".voss", ".vo"}

// StateDirName is the per-user state directory (history, packages, config).
const StateDirName = ".voss"

// HistoryFileName is the REPL history file inside the home directory.
const HistoryFileName = ".voss_history"

// IsLSPMode indicates if the program is running as a language server.
// This is set once at startup in cmd/lsp/main.go.
var IsLSPMode = false

// SelfName is the reserved receiver name bound inside trait impl blocks.
const SelfName = "self"

// MvarKeyword introduces an explicitly typed mutable binding.
const MvarKeyword = "mvar"

// EndKeyword terminates a trait implementation block.
const EndKeyword = "end"

// Built-in type names
const (
	ListTypeName   = "List"
	MapTypeName    = "Map"
	SetTypeName    = "Set"
	OptionTypeName = "Option"
	ResultTypeName = "Result"
	IntTypeName    = "Int"
	FloatTypeName  = "Float"
	StringTypeName = "String"
	BoolTypeName   = "Bool"
	CharTypeName   = "Char"
)

// IsIdentifierByte reports whether b can appear in an identifier.
func IsIdentifierByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_'
}

// Keywords surfaced as plain completions by the editor frontends.
var Keywords = []string{
	"type", "mvar", "end", "true", "false", "match", "if", "else", "import",
}
