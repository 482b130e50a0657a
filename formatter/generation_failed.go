package formatter

import (
	tt "github.com/gnoverse/wv/internal/types"
)

type GenerationFailedFormatter struct{}

func (f *GenerationFailedFormatter) VerdictTemplate() string {
	return `{{header .Severity .Title .MaxLineNumWidth .Filename .Line .Column -}}
{{snippet .SnippetLines .Line .MaxLineNumWidth .CommonIndent .Padding -}}
{{caretAndMessage .Message .Padding .Line .Column .SnippetLines .CommonIndent -}}
{{if .Note -}}
{{note .Note .Padding -}}
{{end}}
`
}

func generationMessage(reason tt.GenReason) string {
	switch reason {
	case tt.MissingInvariant:
		return "this loop has no invariant annotation"
	case tt.DivisionByZero:
		return "the divisor here is the literal zero"
	default:
		return reason.String()
	}
}

func generationNote(reason tt.GenReason) string {
	switch reason {
	case tt.MissingInvariant:
		return "loop invariants are mandatory and are not inferred"
	default:
		return ""
	}
}
