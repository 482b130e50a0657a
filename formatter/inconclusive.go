package formatter

type InconclusiveFormatter struct{}

func (f *InconclusiveFormatter) VerdictTemplate() string {
	return `{{header .Severity .Title .MaxLineNumWidth .Filename .Line .Column -}}
{{snippet .SnippetLines .Line .MaxLineNumWidth .CommonIndent .Padding -}}
{{caretAndMessage .Message .Padding .Line .Column .SnippetLines .CommonIndent}}
`
}
