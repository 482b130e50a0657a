package formatter

type FalsifiedFormatter struct{}

func (f *FalsifiedFormatter) VerdictTemplate() string {
	return `{{header .Severity .Title .MaxLineNumWidth .Filename .Line .Column -}}
{{snippet .SnippetLines .Line .MaxLineNumWidth .CommonIndent .Padding -}}
{{caretAndMessage .Message .Padding .Line .Column .SnippetLines .CommonIndent -}}
{{if .Model -}}
{{counterexample .Model .Padding -}}
{{end}}
`
}
