package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeInvalidArgument    = "INVALID_ARGUMENT"
	CodeMalformedGenerator = "MALFORMED_GENERATOR"
)

var enUSMessages = map[Code]string{
	CodeInvalidArgument:    "Invalid {{.Argument}}: {{.Reason}}.",
	CodeMalformedGenerator: "Atom generator did not produce an atom after {{.Depth}} calls.",
}
