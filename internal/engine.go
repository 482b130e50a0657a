package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gnoverse/wv/internal/lang"
	"github.com/gnoverse/wv/internal/logic"
	"github.com/gnoverse/wv/internal/smt"
	"github.com/gnoverse/wv/internal/types"
	"github.com/gnoverse/wv/internal/vcgen"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine manages the verification process: obligation generation, parallel
// discharge against the solver, and verdict aggregation.
type Engine struct {
	solver        smt.Solver
	logger        *zap.Logger
	workers       int
	checkDivision bool
	cache         *Cache

	// watch mode state, managed in watch.go
	watcher    *fsnotify.Watcher
	watchPaths []string
	watching   bool
	watchMu    sync.Mutex
	onReport   func(*types.Report)
}

// NewEngine creates a verification engine backed by the given solver.
func NewEngine(solver smt.Solver, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		solver:  solver,
		logger:  logger,
		workers: runtime.NumCPU(),
	}
}

// SetWorkers bounds the number of concurrent solver sessions. Values below
// one reset the bound to the number of CPUs.
func (e *Engine) SetWorkers(n int) {
	if n < 1 {
		n = runtime.NumCPU()
	}
	e.workers = n
}

// SetCheckDivision toggles divisor-nonzero side conditions during
// obligation generation.
func (e *Engine) SetCheckDivision(on bool) {
	e.checkDivision = on
}

// SetCache attaches a discharge cache consulted before each solver call.
func (e *Engine) SetCache(c *Cache) {
	e.cache = c
}

// Run verifies a single annotated source file.
func (e *Engine) Run(ctx context.Context, filename string) (*types.Report, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return e.RunSource(ctx, filename, src)
}

// RunSource verifies annotated source held in memory.
func (e *Engine) RunSource(ctx context.Context, filename string, src []byte) (*types.Report, error) {
	prog, err := lang.Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return e.Verify(ctx, filename, prog)
}

// Verify discharges every proof obligation of prog and folds the outcomes
// into a single report. Generation and encoding failures produce a
// GenerationFailed report before any solver session is opened; solver
// infrastructure failures are returned as errors instead.
func (e *Engine) Verify(ctx context.Context, filename string, prog *lang.Program) (*types.Report, error) {
	start := time.Now()
	report := &types.Report{
		RunID:    uuid.New().String(),
		Filename: filename,
	}

	vcs, err := vcgen.Generate(prog, vcgen.Options{CheckDivision: e.checkDivision})
	if err != nil {
		genErr, ok := asGenerationError(err)
		if !ok {
			return nil, err
		}
		return e.failGeneration(report, genErr, start), nil
	}

	// Encode every negated obligation up front so encoding failures abort
	// the run before any solver session is opened.
	jobs := make([]dischargeJob, len(vcs))
	for i, vc := range vcs {
		formula, err := smt.Encode(logic.Not(vc.Assertion))
		if err != nil {
			genErr, ok := asGenerationError(err)
			if !ok {
				return nil, err
			}
			if !genErr.Pos.IsValid() {
				genErr = &types.GenerationError{Reason: genErr.Reason, Pos: vc.Pos}
			}
			return e.failGeneration(report, genErr, start), nil
		}
		jobs[i] = dischargeJob{vc: vc, formula: formula, vars: logic.Vars(vc.Assertion)}
	}

	if err := e.solver.Available(); err != nil {
		return nil, err
	}

	results, err := e.discharge(ctx, jobs)
	if err != nil {
		return nil, err
	}

	types.SortResults(results)
	report.VCs = results
	report.Result, report.Failing = verdict(results)
	report.Duration = time.Since(start)

	e.logger.Debug("run complete",
		zap.String("run", report.RunID),
		zap.String("file", filename),
		zap.Int("vcs", len(results)),
		zap.String("result", report.Result.String()),
		zap.Duration("elapsed", report.Duration))
	return report, nil
}

func (e *Engine) failGeneration(report *types.Report, genErr *types.GenerationError, start time.Time) *types.Report {
	report.Result = types.GenerationFailed
	report.GenErr = genErr
	report.Duration = time.Since(start)
	e.logger.Debug("generation failed",
		zap.String("run", report.RunID),
		zap.String("file", report.Filename),
		zap.String("reason", genErr.Reason.String()),
		zap.String("pos", genErr.Pos.String()))
	return report
}

func asGenerationError(err error) (*types.GenerationError, bool) {
	var genErr *types.GenerationError
	if errors.As(err, &genErr) {
		return genErr, true
	}
	return nil, false
}

// dischargeJob is one obligation ready for the solver: the negation of the
// VC's assertion, already encoded, plus the variables to declare.
type dischargeJob struct {
	vc      types.VC
	formula string
	vars    []string
}

// discharge checks every obligation with at most e.workers solver sessions
// in flight. Results are keyed by job index, so completion order does not
// matter; every job is drained even after a failure or cancellation.
func (e *Engine) discharge(ctx context.Context, jobs []dischargeJob) ([]types.VCResult, error) {
	results := make([]types.VCResult, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	sem := make(chan struct{}, e.workers)
	for i := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i], errs[i] = e.dischargeOne(ctx, jobs[i])
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// dischargeOne decides a single obligation: its negation is checked for
// satisfiability, so unsat proves the obligation and a model refutes it.
func (e *Engine) dischargeOne(ctx context.Context, job dischargeJob) (types.VCResult, error) {
	if err := ctx.Err(); err != nil {
		return types.VCResult{}, err
	}

	start := time.Now()
	check, cached, err := e.checkNegation(ctx, job)
	if err != nil {
		return types.VCResult{}, fmt.Errorf("discharging VC #%d: %w", job.vc.ID, err)
	}

	res := types.VCResult{VC: job.vc}
	switch check.Status {
	case smt.StatusUnsat:
		res.Status = types.VCValid
	case smt.StatusSat:
		res.Status = types.VCInvalid
		res.Model = restrictModel(check.Model, job.vars)
	default:
		res.Status = types.VCUnknown
		res.Reason = check.Reason
	}

	e.logger.Debug("discharged",
		zap.Int("vc", job.vc.ID),
		zap.String("role", job.vc.Role.String()),
		zap.String("status", res.Status.String()),
		zap.Bool("cached", cached),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

// checkNegation runs the satisfiability check for one obligation, consulting
// the cache first. The session is released on every exit path.
func (e *Engine) checkNegation(ctx context.Context, job dischargeJob) (smt.CheckResult, bool, error) {
	key := dischargeKey(job.vars, job.formula)
	if e.cache != nil {
		if res, ok := e.cache.Get(key); ok {
			return res, true, nil
		}
	}

	sess, err := e.solver.NewSession()
	if err != nil {
		return smt.CheckResult{}, false, err
	}
	defer sess.Close()

	for _, name := range job.vars {
		if err := sess.DeclareIntConst(name); err != nil {
			return smt.CheckResult{}, false, err
		}
	}
	if err := sess.Assert(job.formula); err != nil {
		return smt.CheckResult{}, false, err
	}

	res, err := sess.Check(ctx)
	if err != nil {
		return smt.CheckResult{}, false, err
	}

	if e.cache != nil {
		if err := e.cache.Set(key, res); err != nil {
			e.logger.Warn("cache write failed", zap.Error(err))
		}
	}
	return res, false, nil
}

// restrictModel filters a counterexample down to the variables occurring in
// the obligation.
func restrictModel(model map[string]int64, vars []string) map[string]int64 {
	if model == nil {
		return nil
	}
	restricted := make(map[string]int64, len(vars))
	for _, name := range vars {
		if val, ok := model[name]; ok {
			restricted[name] = val
		}
	}
	return restricted
}

// verdict folds ordered per-VC results into the overall result. The first
// non-valid result in reporting order determines the verdict and is
// surfaced as the failing obligation.
func verdict(results []types.VCResult) (types.Result, *types.VCResult) {
	for i := range results {
		switch results[i].Status {
		case types.VCInvalid:
			return types.Falsified, &results[i]
		case types.VCUnknown:
			return types.Inconclusive, &results[i]
		}
	}
	return types.Verified, nil
}

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a
// SourceCode struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	return &SourceCode{Lines: lines}, nil
}
