// Package formatter renders verification reports for terminal display in a
// rustc-like diagnostic style, and as JSON for machine consumption.
package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/gnoverse/wv/internal"
	tt "github.com/gnoverse/wv/internal/types"
)

// Options controls how a report is rendered.
type Options struct {
	// ShowAll renders every failing obligation instead of only the first
	// one in reporting order.
	ShowAll bool
}

// Format renders a verification report into a human-readable string.
// It uses the appropriate formatter for each reported obligation.
func Format(report *tt.Report, src *internal.SourceCode, opts Options) string {
	switch report.Result {
	case tt.Verified:
		return formatVerified(report)
	case tt.GenerationFailed:
		return formatGenerationFailed(report, src)
	default:
		var failing []tt.VCResult
		if opts.ShowAll {
			failing = report.FailingVCs()
		} else if report.Failing != nil {
			failing = []tt.VCResult{*report.Failing}
		}

		var builder strings.Builder
		for _, res := range failing {
			builder.WriteString(formatFailing(report.Filename, res, src))
		}
		return builder.String()
	}
}

func formatVerified(report *tt.Report) string {
	noun := "obligations"
	if len(report.VCs) == 1 {
		noun = "obligation"
	}
	return okStyle.Sprintf("ok: ") +
		fileStyle.Sprint(report.Filename) +
		fmt.Sprintf(": %d %s verified in %s\n", len(report.VCs), noun, report.Duration.Round(time.Millisecond))
}

func formatFailing(filename string, res tt.VCResult, src *internal.SourceCode) string {
	data := newVerdictData(filename, res.VC.Pos, src)
	switch res.Status {
	case tt.VCInvalid:
		data.Severity = "error"
		data.Title = failureTitle(res.VC.Role)
		data.Message = "this obligation does not hold"
		data.Model = sortedModel(res.Model)
	default:
		data.Severity = "warning"
		data.Title = "undecided obligation"
		data.Message = undecidedMessage(res)
	}

	return buildVerdict(data, getVerdictFormatter(res.Status))
}

func formatGenerationFailed(report *tt.Report, src *internal.SourceCode) string {
	genErr := report.GenErr
	if genErr == nil {
		return errorStyle.Sprintf("error: ") + titleStyle.Sprintf("obligation generation failed\n")
	}

	data := newVerdictData(report.Filename, genErr.Pos, src)
	data.Severity = "error"
	data.Title = genErr.Reason.String()
	data.Message = generationMessage(genErr.Reason)
	data.Note = generationNote(genErr.Reason)

	return buildVerdict(data, &GenerationFailedFormatter{})
}

// failureTitle names a refuted obligation the way it reads in a diagnostic.
func failureTitle(role tt.Role) string {
	switch role {
	case tt.RoleEntryImpliesInvariant:
		return "precondition does not establish the loop invariant"
	case tt.RoleInvariantPreserved:
		return "loop invariant not preserved"
	case tt.RoleInvariantImpliesPost:
		return "loop invariant does not establish the postcondition"
	case tt.RoleTopLevel:
		return "precondition does not guarantee the postcondition"
	default:
		return "obligation does not hold"
	}
}

// obligationPhrase states an obligation as a neutral clause, for messages of
// the form "could not decide whether ...".
func obligationPhrase(role tt.Role) string {
	switch role {
	case tt.RoleEntryImpliesInvariant:
		return "the precondition establishes the loop invariant"
	case tt.RoleInvariantPreserved:
		return "the loop invariant is preserved"
	case tt.RoleInvariantImpliesPost:
		return "the loop invariant establishes the postcondition"
	case tt.RoleTopLevel:
		return "the precondition guarantees the postcondition"
	default:
		return "this obligation holds"
	}
}

func undecidedMessage(res tt.VCResult) string {
	msg := "could not decide whether " + obligationPhrase(res.VC.Role)
	if res.Reason != "" {
		msg += fmt.Sprintf(" (%s)", res.Reason)
	}
	return msg
}
