package formatter

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"
	"unicode"

	"github.com/fatih/color"
	"github.com/gnoverse/wv/internal"
	"github.com/gnoverse/wv/internal/lang"
	tt "github.com/gnoverse/wv/internal/types"
)

const tabWidth = 8

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgHiYellow, color.Bold)
	okStyle      = color.New(color.FgGreen, color.Bold)
	titleStyle   = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
	modelStyle   = color.New(color.FgGreen, color.Bold)
)

// verdictFormatter is the interface that wraps the VerdictTemplate method.
// Implementations of this interface are responsible for rendering one kind
// of verification outcome.
type verdictFormatter interface {
	VerdictTemplate() string
}

// getVerdictFormatter is a factory function that returns the appropriate
// verdictFormatter for a discharged obligation.
func getVerdictFormatter(status tt.VCStatus) verdictFormatter {
	switch status {
	case tt.VCInvalid:
		return &FalsifiedFormatter{}
	default:
		return &InconclusiveFormatter{}
	}
}

/***** Verdict Formatter Builder *****/

// ModelBinding is one variable assignment of a counterexample, ordered by
// variable name for stable output.
type ModelBinding struct {
	Name  string
	Value int64
}

type VerdictData struct {
	Severity        string
	Title           string
	Filename        string
	Line            int
	Column          int
	MaxLineNumWidth int
	Padding         string
	Message         string
	Model           []ModelBinding
	Note            string
	SnippetLines    []string
	CommonIndent    string
}

func buildVerdict(data VerdictData, formatter verdictFormatter) string {
	funcMap := template.FuncMap{
		"header":          header,
		"snippet":         codeSnippet,
		"caretAndMessage": caretAndMessage,
		"counterexample":  counterexample,
		"note":            note,
	}

	verdictTemplate := formatter.VerdictTemplate()
	tmpl := template.Must(template.New("verdict").Funcs(funcMap).Parse(verdictTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting verdict: %v", err)
	}
	return buf.String()
}

// newVerdictData fills the position-derived fields shared by every verdict
// kind; the caller sets severity, title, message and the optional extras.
func newVerdictData(filename string, pos lang.Pos, src *internal.SourceCode) VerdictData {
	maxLineNumWidth := calculateMaxLineNumWidth(pos.Line)
	padding := strings.Repeat(" ", maxLineNumWidth+1)

	var snippetLines []string
	if src != nil {
		snippetLines = src.Lines
	}

	var commonIndent string
	if isValidLine(pos.Line, snippetLines) {
		commonIndent = findCommonIndent(snippetLines[pos.Line-1 : pos.Line])
	}

	return VerdictData{
		Filename:        filename,
		Line:            pos.Line,
		Column:          pos.Col,
		MaxLineNumWidth: maxLineNumWidth,
		Padding:         padding,
		SnippetLines:    snippetLines,
		CommonIndent:    commonIndent,
	}
}

// utils functions used in the text templates

func header(severity string, title string, maxLineNumWidth int, filename string, line int, column int) string {
	var endString string
	switch severity {
	case "warning":
		endString = warningStyle.Sprintf("warning: ")
	default:
		endString = errorStyle.Sprintf("error: ")
	}

	endString += titleStyle.Sprintf("%s\n", title)

	padding := strings.Repeat(" ", maxLineNumWidth)
	endString += lineStyle.Sprintf("%s--> ", padding)
	endString += fileStyle.Sprintf("%s:%d:%d\n", filename, line, column)

	return endString
}

func codeSnippet(snippetLines []string, line int, maxLineNumWidth int, commonIndent string, padding string) string {
	var endString string
	endString = lineStyle.Sprintf("%s|\n", padding)

	if !isValidLine(line, snippetLines) {
		return endString
	}

	text := strings.TrimPrefix(snippetLines[line-1], commonIndent)
	lineNum := fmt.Sprintf("%*d", maxLineNumWidth, line)
	endString += lineStyle.Sprintf("%s | ", lineNum)
	endString += fmt.Sprintf("%s\n", text)

	return endString
}

func caretAndMessage(message string, padding string, line int, column int, snippetLines []string, commonIndent string) string {
	var endString string
	endString = lineStyle.Sprintf("%s| ", padding)

	if !isValidLine(line, snippetLines) {
		endString += messageStyle.Sprintf("%s\n", message)
		return endString
	}

	commonIndentWidth := calculateVisualColumn(commonIndent, len(commonIndent)+1)

	caretPos := calculateVisualColumn(snippetLines[line-1], column) - commonIndentWidth
	if caretPos < 0 {
		caretPos = 0
	}

	endString += strings.Repeat(" ", caretPos)
	endString += messageStyle.Sprintf("^ %s\n", message)

	return endString
}

func counterexample(model []ModelBinding, padding string) string {
	if len(model) == 0 {
		return ""
	}

	bindings := make([]string, 0, len(model))
	for _, b := range model {
		bindings = append(bindings, fmt.Sprintf("%s = %d", b.Name, b.Value))
	}

	var endString string
	endString = lineStyle.Sprintf("%s= ", padding)
	endString += messageStyle.Sprintf("counterexample: ")
	endString += modelStyle.Sprintf("%s\n", strings.Join(bindings, ", "))
	return endString
}

func note(note string, padding string) string {
	if note == "" {
		return ""
	}

	var endString string
	endString = lineStyle.Sprintf("%s= ", padding)
	endString += modelStyle.Sprint("note: ")
	endString += lineStyle.Sprintf("%s\n", note)
	return endString
}

// sortedModel flattens a counterexample into name order.
func sortedModel(model map[string]int64) []ModelBinding {
	if len(model) == 0 {
		return nil
	}
	bindings := make([]ModelBinding, 0, len(model))
	for name, value := range model {
		bindings = append(bindings, ModelBinding{Name: name, Value: value})
	}
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].Name < bindings[j].Name })
	return bindings
}

func isValidLine(line int, snippetLines []string) bool {
	return line > 0 && line <= len(snippetLines)
}

func calculateMaxLineNumWidth(line int) int {
	return len(fmt.Sprintf("%d", line))
}

// calculateVisualColumn calculates the visual column position
// in a string. taking into account tab characters.
func calculateVisualColumn(line string, column int) int {
	if column < 0 {
		return 0
	}
	visualColumn := 0
	for i, ch := range line {
		if i+1 == column {
			break
		}
		if ch == '\t' {
			visualColumn += tabWidth - (visualColumn % tabWidth)
		} else {
			visualColumn++
		}
	}
	return visualColumn
}

// findCommonIndent finds the common indent in the code snippet.
func findCommonIndent(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	// find first non-empty line's indent
	firstIndent := make([]rune, 0)
	for _, line := range lines {
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		if trimmed != "" {
			firstIndent = []rune(line[:len(line)-len(trimmed)])
			break
		}
	}

	if len(firstIndent) == 0 {
		return ""
	}

	// search common indent for all non-empty lines
	for _, line := range lines {
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		if trimmed == "" {
			continue
		}

		currentIndent := []rune(line[:len(line)-len(trimmed)])
		firstIndent = commonPrefix(firstIndent, currentIndent)

		if len(firstIndent) == 0 {
			break
		}
	}

	return string(firstIndent)
}

// commonPrefix finds the common prefix of two strings.
func commonPrefix(a, b []rune) []rune {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:minLen]
}
