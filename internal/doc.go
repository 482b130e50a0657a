// Package internal provides the core functionality of the While program
// verifier.
//
// This package implements the verification engine that turns an annotated
// program into a verdict: it generates proof obligations by weakest
// precondition computation, discharges them in parallel against an SMT
// solver, and folds the per-obligation outcomes into a single report.
//
// Key components:
//
// Engine: The main verification engine that coordinates a run.
// It parses source files, generates obligations, schedules solver sessions
// across a bounded worker pool, and aggregates results in a deterministic
// order.
//
// Cache: An optional on-disk cache of discharge outcomes keyed by the
// encoded formula, so unchanged obligations are not sent to the solver
// again on later runs.
//
// SourceCode: A simple structure to represent the content of a source file
// as a collection of lines, used by the diagnostic formatter.
//
// The engine can also watch files or directories and re-verify sources as
// they change; see StartWatching.
//
// Usage:
//
//	engine := internal.NewEngine(smt.NewZ3("", 10*time.Second), logger)
//
//	report, err := engine.Run(ctx, "path/to/file.wl")
//	if err != nil {
//	    // handle error
//	}
//
//	// Inspect the verdict and the per-obligation results
//	fmt.Println(report.Result)
//	for _, res := range report.VCs {
//	    fmt.Printf("#%d %s: %s\n", res.VC.ID, res.VC.Role, res.Status)
//	}
//
// This package is intended for internal use within the verifier and should
// not be imported by external packages.
package internal
