package formatter

import (
	"encoding/json"

	tt "github.com/gnoverse/wv/internal/types"
)

type jsonObligation struct {
	ID        int              `json:"id"`
	Role      string           `json:"role"`
	Line      int              `json:"line"`
	Column    int              `json:"column"`
	Assertion string           `json:"assertion"`
	Status    string           `json:"status"`
	Reason    string           `json:"reason,omitempty"`
	Model     map[string]int64 `json:"model,omitempty"`
}

type jsonGenError struct {
	Reason string `json:"reason"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type jsonReport struct {
	RunID       string           `json:"run_id"`
	Filename    string           `json:"filename"`
	Result      string           `json:"result"`
	Obligations []jsonObligation `json:"obligations"`
	GenError    *jsonGenError    `json:"generation_error,omitempty"`
	DurationMS  int64            `json:"duration_ms"`
}

// FormatJSON marshals verification reports for machine consumption.
// Obligations appear in the same deterministic order as the text output.
func FormatJSON(reports []*tt.Report) ([]byte, error) {
	out := make([]jsonReport, 0, len(reports))
	for _, report := range reports {
		jr := jsonReport{
			RunID:       report.RunID,
			Filename:    report.Filename,
			Result:      report.Result.String(),
			Obligations: make([]jsonObligation, 0, len(report.VCs)),
			DurationMS:  report.Duration.Milliseconds(),
		}
		for _, res := range report.VCs {
			jr.Obligations = append(jr.Obligations, jsonObligation{
				ID:        res.VC.ID,
				Role:      res.VC.Role.String(),
				Line:      res.VC.Pos.Line,
				Column:    res.VC.Pos.Col,
				Assertion: res.VC.Assertion.String(),
				Status:    res.Status.String(),
				Reason:    res.Reason,
				Model:     res.Model,
			})
		}
		if report.GenErr != nil {
			jr.GenError = &jsonGenError{
				Reason: report.GenErr.Reason.String(),
				Line:   report.GenErr.Pos.Line,
				Column: report.GenErr.Pos.Col,
			}
		}
		out = append(out, jr)
	}
	return json.Marshal(out)
}
