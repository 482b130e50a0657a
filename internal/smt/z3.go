package smt

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultZ3Path is the binary looked up on PATH when no explicit path is
// configured.
const DefaultZ3Path = "z3"

// Z3 drives the external z3 binary in one-shot mode: a session accumulates
// an SMT-LIB script and Check pipes it through a fresh process, so sessions
// can never leak assertions into one another.
type Z3 struct {
	path    string
	timeout time.Duration
}

// NewZ3 creates a Z3 solver. The timeout bounds each Check; zero means no
// limit beyond the caller's context.
func NewZ3(path string, timeout time.Duration) *Z3 {
	if path == "" {
		path = DefaultZ3Path
	}
	return &Z3{path: path, timeout: timeout}
}

// Available reports whether the z3 binary can be found.
func (z *Z3) Available() error {
	if _, err := exec.LookPath(z.path); err != nil {
		return fmt.Errorf("%w: %v", ErrSolverUnavailable, err)
	}
	return nil
}

// NewSession creates a fresh script-building session.
func (z *Z3) NewSession() (Session, error) {
	return &z3Session{z: z}, nil
}

type z3Session struct {
	z      *Z3
	script strings.Builder
	consts []string
	closed bool
}

func (s *z3Session) DeclareIntConst(name string) error {
	if s.closed {
		return ErrSessionClosed
	}
	fmt.Fprintf(&s.script, "(declare-const %s Int)\n", name)
	s.consts = append(s.consts, name)
	return nil
}

func (s *z3Session) Assert(formula string) error {
	if s.closed {
		return ErrSessionClosed
	}
	fmt.Fprintf(&s.script, "(assert %s)\n", formula)
	return nil
}

func (s *z3Session) Check(ctx context.Context) (CheckResult, error) {
	if s.closed {
		return CheckResult{}, ErrSessionClosed
	}

	var script strings.Builder
	script.WriteString(s.script.String())
	script.WriteString("(check-sat)\n")
	if len(s.consts) > 0 {
		script.WriteString("(get-value (" + strings.Join(s.consts, " ") + "))\n")
	}

	if s.z.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.z.timeout)
		defer cancel()
	}

	args := []string{"-in"}
	if s.z.timeout > 0 {
		// -T is a hard wall-clock limit that makes z3 print "timeout"
		// itself; the context deadline covers a stuck process.
		secs := int(s.z.timeout.Round(time.Second) / time.Second)
		if secs < 1 {
			secs = 1
		}
		args = append(args, fmt.Sprintf("-T:%d", secs))
	}

	cmd := exec.CommandContext(ctx, s.z.path, args...)
	cmd.Stdin = strings.NewReader(script.String())
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	// Trust recognizable solver output over exit status: z3 reports its
	// verdict on the first line even when the process exits non-zero.
	lines := outputLines(stdout.String())
	if len(lines) > 0 {
		switch lines[0] {
		case "unsat":
			return CheckResult{Status: StatusUnsat}, nil
		case "sat":
			if len(s.consts) == 0 {
				return CheckResult{Status: StatusSat}, nil
			}
			model, err := parseGetValue(strings.Join(lines[1:], " "))
			if err != nil {
				return CheckResult{}, fmt.Errorf("parsing z3 model: %w", err)
			}
			return CheckResult{Status: StatusSat, Model: model}, nil
		case "unknown":
			return CheckResult{Status: StatusUnknown, Reason: "solver returned unknown"}, nil
		case "timeout":
			return CheckResult{Status: StatusUnknown, Reason: "timeout"}, nil
		}
	}

	if ctx.Err() == context.DeadlineExceeded {
		return CheckResult{Status: StatusUnknown, Reason: "timeout"}, nil
	}
	if runErr != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = strings.Join(lines, " ")
		}
		return CheckResult{}, fmt.Errorf("running %s: %w: %s", s.z.path, runErr, detail)
	}
	return CheckResult{}, fmt.Errorf("unexpected z3 output: %q", strings.Join(lines, " "))
}

func (s *z3Session) Close() error {
	s.closed = true
	return nil
}

// outputLines splits and trims solver output, dropping empty lines.
func outputLines(out string) []string {
	raw := strings.Split(out, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
