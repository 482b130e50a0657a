package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoverse/wv/formatter"
	"github.com/gnoverse/wv/internal"
	tt "github.com/gnoverse/wv/internal/types"
	"github.com/gnoverse/wv/verify"
)

var (
	workers          int
	solverPath       string
	solverTimeout    time.Duration
	checkDivision    bool
	showAll          bool
	verifyJSONOutput bool
	outPath          string
	watchMode        bool
	useCache         bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify [paths...]",
	Short: "Verify annotated While programs against their specifications",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(2)
		}

		config, err := verify.LoadConfig(cfgFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}

		// flags override the configuration file
		if cmd.Flags().Changed("solver") {
			config.Solver.Path = solverPath
		}
		if cmd.Flags().Changed("timeout") {
			config.Solver.Timeout = solverTimeout.String()
		}
		if cmd.Flags().Changed("workers") {
			config.Workers = workers
		}
		if cmd.Flags().Changed("check-division") {
			config.CheckDivision = checkDivision
		}
		if cmd.Flags().Changed("cache") {
			config.Cache.Enabled = useCache
		}
		// watch mode re-checks the same obligations on every save, so the
		// cache defaults on there unless explicitly disabled
		if watchMode && !cmd.Flags().Changed("cache") {
			config.Cache.Enabled = true
		}

		engine, err := verify.NewFromConfig(config, logger)
		if err != nil {
			logger.Fatal("Failed to initialize verification engine", zap.Error(err))
		}

		if watchMode {
			runWatchProcess(engine, args)
			return
		}

		runVerifyProcess(context.Background(), logger, engine, args)
	},
}

func init() {
	verifyCmd.Flags().IntVar(&workers, "workers", 0, "Number of obligations discharged concurrently (default: number of CPUs)")
	verifyCmd.Flags().StringVar(&solverPath, "solver", "", "Path to the z3 binary")
	verifyCmd.Flags().DurationVar(&solverTimeout, "timeout", 10*time.Second, "Wall-clock limit per obligation")
	verifyCmd.Flags().BoolVar(&checkDivision, "check-division", false, "Prove that no division or modulo divides by zero")
	verifyCmd.Flags().BoolVar(&showAll, "all", false, "Report every failing obligation instead of only the first")
	verifyCmd.Flags().BoolVar(&verifyJSONOutput, "json", false, "Output reports in JSON format")
	verifyCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	verifyCmd.Flags().BoolVar(&watchMode, "watch", false, "Re-verify files whenever they change")
	verifyCmd.Flags().BoolVar(&useCache, "cache", false, "Cache discharge outcomes on disk between runs")
}

func runVerifyProcess(ctx context.Context, logger *zap.Logger, engine verify.VerifyEngine, paths []string) {
	reports, err := verify.ProcessFiles(ctx, logger, engine, paths, verify.ProcessFile)
	if err != nil {
		// show whatever was verified before giving up
		printReports(logger, reports)
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(2)
	}

	printReports(logger, reports)
	os.Exit(exitCode(reports))
}

// exitCode folds reports into the process exit status: zero only when every
// program verified.
func exitCode(reports []*tt.Report) int {
	for _, report := range reports {
		if report.Result != tt.Verified {
			return 1
		}
	}
	return 0
}

func printReports(logger *zap.Logger, reports []*tt.Report) {
	if verifyJSONOutput {
		d, err := formatter.FormatJSON(reports)
		if err != nil {
			logger.Error("Error marshalling reports to JSON", zap.Error(err))
			return
		}
		if outPath == "" {
			fmt.Println(string(d))
			return
		}
		if err := os.WriteFile(outPath, d, 0o644); err != nil {
			logger.Error("Error writing JSON output file", zap.Error(err))
		}
		return
	}

	// text output
	for _, report := range reports {
		var sourceCode *internal.SourceCode
		if sc, err := internal.ReadSourceCode(report.Filename); err == nil {
			sourceCode = sc
		} else {
			logger.Error("Error reading source file", zap.String("file", report.Filename), zap.Error(err))
		}
		fmt.Print(formatter.Format(report, sourceCode, formatter.Options{ShowAll: showAll}))
	}
}

func runWatchProcess(engine *internal.Engine, paths []string) {
	err := engine.StartWatching(paths, func(report *tt.Report) {
		printReports(logger, []*tt.Report{report})
	})
	if err != nil {
		logger.Fatal("Failed to start watching", zap.Error(err))
	}

	fmt.Println("watching for changes; press ctrl-c to stop")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	if err := engine.StopWatching(); err != nil {
		logger.Error("Failed to stop watching", zap.Error(err))
	}
}
